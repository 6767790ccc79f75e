package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/angelmondragon/storefront-vault/pkg/config"
	"github.com/angelmondragon/storefront-vault/pkg/db"
	"github.com/angelmondragon/storefront-vault/pkg/db/models"
	"github.com/angelmondragon/storefront-vault/pkg/logger"
	"github.com/angelmondragon/storefront-vault/pkg/migrate"
	"github.com/angelmondragon/storefront-vault/pkg/vault"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type options struct {
	dir     string
	name    string
	version string
	keys    string
}

// runner executes one -cmd against an open vault database.
type runner func(ctx context.Context, client *db.Client, sqlDB *sql.DB, driver string, opts options) error

var dbCommands = map[string]runner{
	"up":     gooseCommand("up"),
	"down":   gooseCommand("down"),
	"status": gooseCommand("status"),
	"version": func(ctx context.Context, _ *db.Client, sqlDB *sql.DB, driver string, opts options) error {
		if opts.version == "" {
			return fmt.Errorf("missing -version for version command")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, driver, opts.dir, opts.version)
	},
	"slots": listSlots,
	"clear": clearSlots,
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "vault-migrate"})
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "up|down|status|version|slots|clear|create|validate")
	var opts options
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "goose migrations directory")
	flag.StringVar(&opts.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.StringVar(&opts.keys, "keys", "", "comma separated vault slots for -cmd=clear")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail(context.Background(), logg, "config", err)
	}
	logg = logger.New(logger.Options{
		ServiceName: "vault-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":       cfg.App.Env,
		"cmd":       *cmd,
		"dir":       opts.dir,
		"db_driver": cfg.DB.Driver,
	})

	// create and validate only touch the migrations directory
	switch *cmd {
	case "create":
		if opts.name == "" {
			fail(ctx, logg, "create", fmt.Errorf("missing -name"))
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			fail(ctx, logg, "create", err)
		}
		fmt.Println("created migration:", path)
		return
	case "validate":
		if err := migrate.ValidateDir(opts.dir); err != nil {
			fail(ctx, logg, "validate", err)
		}
		fmt.Println("migration validation passed")
		return
	}

	run, ok := dbCommands[*cmd]
	if !ok {
		fail(ctx, logg, "flags", fmt.Errorf("unknown -cmd value %q", *cmd))
	}
	if strings.TrimSpace(cfg.DB.DSN) == "" {
		fail(ctx, logg, "config", fmt.Errorf("%s is required for -cmd=%s", config.EnvDBDSN, *cmd))
	}

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		fail(ctx, logg, "database", err)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		fail(ctx, logg, "sql database", err)
	}

	if err := run(ctx, client, sqlDB, cfg.DB.Driver, opts); err != nil {
		fail(ctx, logg, *cmd, err)
	}
	logg.Info(ctx, "migrate.done")
}

func gooseCommand(command string) runner {
	return func(ctx context.Context, _ *db.Client, sqlDB *sql.DB, driver string, opts options) error {
		return migrate.Run(ctx, sqlDB, driver, opts.dir, command)
	}
}

// listSlots prints each persisted vault slot with its size and last write.
func listSlots(ctx context.Context, client *db.Client, _ *sql.DB, _ string, _ options) error {
	var slots []models.VaultSlot
	if err := client.DB().WithContext(ctx).Order("slot_key").Find(&slots).Error; err != nil {
		return fmt.Errorf("list vault slots: %w", err)
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tBYTES\tUPDATED")
	for _, slot := range slots {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", slot.Key, len(slot.Value), slot.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

// clearSlots deletes the -keys slots in one transaction so the storefront
// loads their defaults on next boot. Any unknown key aborts before a delete.
func clearSlots(ctx context.Context, client *db.Client, _ *sql.DB, _ string, opts options) error {
	keys, err := parseSlotKeys(opts.keys)
	if err != nil {
		return err
	}
	return client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := tx.Where("slot_key = ?", key.String()).Delete(&models.VaultSlot{}).Error; err != nil {
				return fmt.Errorf("delete slot %s: %w", key, err)
			}
		}
		return nil
	})
}

func parseSlotKeys(raw string) ([]vault.Key, error) {
	var keys []vault.Key
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := vault.Key(name)
		if !key.Valid() {
			return nil, fmt.Errorf("unknown vault slot %q", name)
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("missing -keys for clear command")
	}
	return keys, nil
}

func fail(ctx context.Context, logg *logger.Logger, stage string, err error) {
	logg.Error(ctx, "migrate."+stage+" failed", err)
	os.Exit(1)
}
