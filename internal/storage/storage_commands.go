package storage

// CommandHashes returns the registered slash-command hashes for a guild,
// keyed by command name.
func (s *Storage) CommandHashes(guildID string) (map[string]string, error) {
	hashes := make(map[string]string)
	if _, err := s.ds.Get(commandsPrefix+guildID, &hashes); err != nil {
		return nil, err
	}
	return hashes, nil
}

// SetCommandHashes replaces the registered slash-command hashes for a guild.
func (s *Storage) SetCommandHashes(guildID string, hashes map[string]string) error {
	return s.ds.Put(commandsPrefix+guildID, hashes)
}
