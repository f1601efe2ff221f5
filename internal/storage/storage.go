// /internal/storage/storage.go
package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/keshon/wavebot/datastore"
)

const commandHistoryLimit int = 20

const (
	userPrefix     = "user:"
	guildPrefix    = "guild:"
	commandsPrefix = "commands:"
)

// ErrUserNotFound is returned when no record exists for a user.
var ErrUserNotFound = errors.New("user record not found")

// Storage serialises read-modify-write updates; single reads go straight to
// the datastore.
type Storage struct {
	ds *datastore.DataStore
	mu sync.Mutex
}

// UserFlags groups permission flags by scope.
type UserFlags struct {
	Common []string `json:"common"`
}

type UserRecord struct {
	UserID string    `json:"user"`
	Flags  UserFlags `json:"flags"`
}

type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

type GuildRecord struct {
	CommandsHistory []CommandHistoryRecord `json:"cmd_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// NewWithDataStore wraps an already opened datastore.
func NewWithDataStore(ds *datastore.DataStore) *Storage {
	return &Storage{ds: ds}
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func (s *Storage) getGuildRecord(guildID string) (*GuildRecord, error) {
	var record GuildRecord
	if _, err := s.ds.Get(guildPrefix+guildID, &record); err != nil {
		return nil, fmt.Errorf("error loading guild %s: %w", guildID, err)
	}
	return &record, nil
}

// AppendCommandToHistory appends a command history record for a guild,
// keeping only the most recent entries.
func (s *Storage) AppendCommandToHistory(guildID string, command CommandHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistory = append(record.CommandsHistory, command)
	if len(record.CommandsHistory) > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[len(record.CommandsHistory)-commandHistoryLimit:]
	}
	return s.ds.Put(guildPrefix+guildID, record)
}

func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistory, nil
}
