package storefront

import (
	"context"

	"github.com/angelmondragon/storefront-vault/pkg/models"
)

// MessageLogs returns the message log, newest first.
func (s *Store) MessageLogs() []models.MessageLog {
	var out []models.MessageLog
	s.read(func(st *State) { out = append([]models.MessageLog{}, st.MessageLogs...) })
	return out
}

// AppendMessageLog prepends entries, assigning ids where missing.
func (s *Store) AppendMessageLog(ctx context.Context, entries ...models.MessageLog) ([]models.MessageLog, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	added := make([]models.MessageLog, len(entries))
	for i, entry := range entries {
		if entry.ID == "" {
			entry.ID = models.NewID()
		}
		if entry.Timestamp.IsZero() {
			entry.Timestamp = s.now().UTC()
		}
		added[i] = entry
	}
	err := s.mutate(ctx, func(st *State) (bool, error) {
		st.MessageLogs = append(append([]models.MessageLog{}, added...), st.MessageLogs...)
		return true, nil
	})
	return added, err
}

// UpdateMessageLog replaces the entry with the same id.
func (s *Store) UpdateMessageLog(ctx context.Context, entry models.MessageLog) (bool, error) {
	found := false
	err := s.mutate(ctx, func(st *State) (bool, error) {
		for i := range st.MessageLogs {
			if st.MessageLogs[i].ID == entry.ID {
				st.MessageLogs[i] = entry
				found = true
				return true, nil
			}
		}
		return false, nil
	})
	return found, err
}
