package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CURRENCY_LAYER_API_KEY", " key ")
	t.Setenv("RATES_CSV_PATH", "testdata/rates.csv")
	t.Setenv("RATES_DATE_LAYOUTS", "2-Jan-06| |2006-01-02")
	t.Setenv("SNAPSHOT_BASE", "eur")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "http://apilayer.net/api", cfg.ProviderURL)
	assert.Equal(t, 20*time.Second, cfg.ClientTimeout)
	assert.Equal(t, []string{"2-Jan-06", "2006-01-02"}, cfg.DateLayouts)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "EUR", cfg.SnapshotBase)
	assert.Equal(t, "0 12 * * *", cfg.CronSpec)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("CURRENCY_LAYER_API_KEY", "")
	t.Setenv("RATES_CSV_PATH", "rates.csv")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestConfig_Normalize(t *testing.T) {
	base := Config{APIKey: "k", RatesCSVPath: "rates.csv", ClientTimeout: time.Second}

	_, err := base.normalize()
	require.NoError(t, err)

	withDB := base
	withDB.DatabaseURL = "postgres://localhost/fx"
	_, err = withDB.normalize()
	assert.ErrorContains(t, err, "ENCODING_KEY")

	withDB.EncodingKey = "secret"
	_, err = withDB.normalize()
	assert.NoError(t, err)

	noTimeout := base
	noTimeout.ClientTimeout = 0
	_, err = noTimeout.normalize()
	assert.ErrorContains(t, err, "CURRENCY_LAYER_TIMEOUT")

	noCSV := base
	noCSV.RatesCSVPath = " "
	_, err = noCSV.normalize()
	assert.ErrorContains(t, err, "RATES_CSV_PATH")
}

func TestConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "WARN"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.SlogLevel())
}
