package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// User returns the record for userID or ErrUserNotFound.
func (s *Storage) User(userID string) (*UserRecord, error) {
	var record UserRecord
	ok, err := s.ds.Get(userPrefix+userID, &record)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return &record, nil
}

// Users returns every stored user record, sorted by id.
func (s *Storage) Users() ([]UserRecord, error) {
	keys := s.ds.Keys(userPrefix)
	users := make([]UserRecord, 0, len(keys))
	for _, k := range keys {
		u, err := s.User(strings.TrimPrefix(k, userPrefix))
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

// GrantFlag adds a common flag, creating the record if needed.
func (s *Storage) GrantFlag(userID, flag string) error {
	if userID == "" || flag == "" {
		return fmt.Errorf("user id and flag are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.User(userID)
	if errors.Is(err, ErrUserNotFound) {
		record = &UserRecord{UserID: userID}
	} else if err != nil {
		return err
	}

	if slices.Contains(record.Flags.Common, flag) {
		return nil
	}
	record.Flags.Common = append(record.Flags.Common, flag)
	return s.ds.Put(userPrefix+userID, record)
}

// RevokeFlag removes a common flag. The record itself is kept.
func (s *Storage) RevokeFlag(userID, flag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.User(userID)
	if err != nil {
		return err
	}

	record.Flags.Common = slices.DeleteFunc(record.Flags.Common, func(f string) bool { return f == flag })
	return s.ds.Put(userPrefix+userID, record)
}
