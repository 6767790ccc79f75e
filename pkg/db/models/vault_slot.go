package models

import "time"

// VaultSlot stores one named, JSON-encoded piece of storefront state.
type VaultSlot struct {
	Key       string    `gorm:"column:slot_key;type:varchar(64);primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (VaultSlot) TableName() string {
	return "vault_slots"
}
