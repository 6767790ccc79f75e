package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-vault/pkg/config"
	"github.com/angelmondragon/storefront-vault/pkg/db"
	"github.com/angelmondragon/storefront-vault/pkg/db/models"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
)

func seededClient(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: "file::memory:", MaxOpenConns: 1}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.VaultSlot{}))
	for _, key := range []vault.Key{vault.KeyCart, vault.KeyOrders, vault.KeyBrands} {
		require.NoError(t, client.DB().Create(&models.VaultSlot{Key: key.String(), Value: "[]", UpdatedAt: time.Now()}).Error)
	}
	return client
}

func slotKeys(t *testing.T, client *db.Client) []string {
	t.Helper()
	var keys []string
	require.NoError(t, client.DB().Model(&models.VaultSlot{}).Order("slot_key").Pluck("slot_key", &keys).Error)
	return keys
}

func TestClearSlotsDeletesNamedSlots(t *testing.T) {
	client := seededClient(t)

	err := clearSlots(context.Background(), client, nil, "", options{keys: " rambo_cart, rambo_orders_v4 "})
	require.NoError(t, err)
	assert.Equal(t, []string{vault.KeyBrands.String()}, slotKeys(t, client))
}

func TestClearSlotsRejectsUnknownKeysBeforeDeleting(t *testing.T) {
	client := seededClient(t)

	err := clearSlots(context.Background(), client, nil, "", options{keys: "rambo_cart,bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
	assert.Len(t, slotKeys(t, client), 3)

	err = clearSlots(context.Background(), client, nil, "", options{keys: " , "})
	require.Error(t, err)
}
