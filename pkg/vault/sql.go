package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-vault/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLBackend stores slots as rows of the vault_slots table.
type SQLBackend struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLBackend(db *gorm.DB) (*SQLBackend, error) {
	if db == nil {
		return nil, errors.New("gorm db is required")
	}
	return &SQLBackend{db: db, now: time.Now}, nil
}

func (s *SQLBackend) Get(ctx context.Context, key Key) ([]byte, error) {
	var slot models.VaultSlot
	err := s.db.WithContext(ctx).Where("slot_key = ?", string(key)).Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", key, err)
	}
	return []byte(slot.Value), nil
}

func (s *SQLBackend) Put(ctx context.Context, key Key, value []byte) error {
	slot := models.VaultSlot{
		Key:       string(key),
		Value:     string(value),
		UpdatedAt: s.now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

func (s *SQLBackend) Delete(ctx context.Context, key Key) error {
	if err := s.db.WithContext(ctx).Where("slot_key = ?", string(key)).Delete(&models.VaultSlot{}).Error; err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}
