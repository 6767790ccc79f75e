package vault

import (
	"fmt"

	"github.com/angelmondragon/storefront-vault/pkg/config"
	"gorm.io/gorm"
)

// LocalBackendFor builds the long-lived backend named by cfg.LocalBackend.
// gormDB is only required for the sql backend.
func LocalBackendFor(cfg config.StoreConfig, gormDB *gorm.DB) (Backend, error) {
	switch cfg.LocalBackend {
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	case config.BackendFile:
		return NewFileBackend(cfg.Dir)
	case config.BackendSQL:
		return NewSQLBackend(gormDB)
	default:
		return nil, fmt.Errorf("unsupported local vault backend %q", cfg.LocalBackend)
	}
}

// SessionBackendFor builds the session backend named by cfg.SessionBackend.
// client is only required for the redis backend.
func SessionBackendFor(cfg config.StoreConfig, client slotStore) (Backend, error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	case config.BackendRedis:
		return NewRedisBackend(client, cfg.SessionTTL)
	default:
		return nil, fmt.Errorf("unsupported session vault backend %q", cfg.SessionBackend)
	}
}
