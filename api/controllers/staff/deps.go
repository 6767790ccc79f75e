package staff

import (
	"context"

	"github.com/angelmondragon/storefront-vault/internal/assistant"
	"github.com/angelmondragon/storefront-vault/pkg/models"
)

type catalogAdmin interface {
	Products() []models.Product
	AddCategory(ctx context.Context, name string) ([]string, error)
	AddBrand(ctx context.Context, name string) ([]string, error)
}

type settingsAdmin interface {
	Settings() models.StoreSettings
	UpdateSettings(ctx context.Context, settings models.StoreSettings) (models.StoreSettings, error)
	LinkSourceSync(ctx context.Context, repo, token string) (models.StoreSettings, error)
}

type messageReader interface {
	MessageLogs() []models.MessageLog
}

type alertReader interface {
	LatestAlert() (assistant.Alert, bool)
}
