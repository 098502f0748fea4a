package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// ConfigStore implements queuectl.ConfigStore using a SQL backend. It
// also exposes the direct get/set operations behind the "config"
// administrative command.
type ConfigStore struct {
	db *bun.DB
}

// NewConfigStore creates a new SQL-backed ConfigStore.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization must be completed before using ConfigStore.
func NewConfigStore(db *bun.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

// GetAllConfig returns every key/value pair currently stored in the
// config table. Keys absent from the result are left to the caller's
// defaults.
func (c *ConfigStore) GetAllConfig(ctx context.Context) (map[string]string, error) {
	var models []*configModel
	if err := c.db.NewSelect().Model(&models).Scan(ctx); err != nil {
		return nil, err
	}
	ret := make(map[string]string, len(models))
	for _, m := range models {
		ret[m.Key] = m.Value
	}
	return ret, nil
}

// GetConfigValue returns the stored value for key, or ("", false) if
// the key has never been set.
func (c *ConfigStore) GetConfigValue(ctx context.Context, key string) (string, bool, error) {
	var m configModel
	err := c.db.NewSelect().Model(&m).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return m.Value, true, nil
}

// SetConfigValue stores value under key, replacing any existing value.
func (c *ConfigStore) SetConfigValue(ctx context.Context, key string, value string) error {
	m := &configModel{Key: key, Value: value}
	_, err := c.db.NewInsert().
		Model(m).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}
