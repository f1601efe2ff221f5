package bot

import (
	"time"

	"github.com/keshon/wavebot/internal/storage"
)

// LogCommand records a command execution in the guild history. Direct
// messages have no guild and are not recorded.
func LogCommand(store *storage.Storage, guildID, channelID, userID, username, command string) error {
	if store == nil || guildID == "" {
		return nil
	}
	return store.AppendCommandToHistory(guildID, storage.CommandHistoryRecord{
		ChannelID: channelID,
		UserID:    userID,
		Username:  username,
		Command:   command,
		Datetime:  time.Now(),
	})
}
