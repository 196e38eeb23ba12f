package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/internal/domain"
)

const minimalConfig = `
[database]
host = "localhost"
dbname = "farmstand"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 14, cfg.Pickup.GenerateWindowDays)
	assert.Equal(t, 60, cfg.Pickup.OccupancyWindowDays)
	assert.Equal(t, 15*time.Minute, cfg.Pickup.HoldTTL())
	assert.Equal(t, time.UTC, cfg.Pickup.Location())
	assert.Equal(t, "@every 1m", cfg.Scheduler.SweepSpec)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[pickup]
timezone = "America/Chicago"
generate_window_days = 30
hold_ttl_minutes = 20
`))
	require.NoError(t, err)

	assert.Equal(t, "America/Chicago", cfg.Pickup.Location().String())
	assert.Equal(t, 30, cfg.Pickup.GenerateWindowDays)
	assert.Equal(t, 20*time.Minute, cfg.Pickup.HoldTTL())
	// незаданные ключи секции сохраняют значения по умолчанию
	assert.Equal(t, 60, cfg.Pickup.OccupancyWindowDays)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_env")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_env")
	t.Setenv("RESEND_API_KEY", "re_env")
	t.Setenv("ADMIN_TOKEN", "admin-env")

	cfg, err := Load(writeConfig(t, minimalConfig+`
password = "from-file"

[admin]
token = "admin-file"
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "sk_test_env", cfg.Stripe.SecretKey)
	assert.Equal(t, "whsec_env", cfg.Stripe.WebhookSecret)
	assert.Equal(t, "re_env", cfg.Email.APIKey)
	assert.Equal(t, "admin-env", cfg.Admin.Token)
}

func TestLoad_EmptyEnvKeepsFileValue(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "")

	cfg, err := Load(writeConfig(t, minimalConfig+`
[admin]
token = "admin-file"
`))
	require.NoError(t, err)
	assert.Equal(t, "admin-file", cfg.Admin.Token)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.toml")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaults()
		cfg.Database.Host = "localhost"
		cfg.Database.DBName = "farmstand"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.Pickup.Timezone = "Mars/Olympus_Mons" },
			wantErr: "pickup.timezone",
		},
		{
			name:    "zero hold ttl",
			mutate:  func(c *Config) { c.Pickup.HoldTTLMinutes = 0 },
			wantErr: "pickup.hold_ttl_minutes",
		},
		{
			name:    "negative hold ttl",
			mutate:  func(c *Config) { c.Pickup.HoldTTLMinutes = -5 },
			wantErr: "pickup.hold_ttl_minutes",
		},
		{
			name:    "zero generate window",
			mutate:  func(c *Config) { c.Pickup.GenerateWindowDays = 0 },
			wantErr: "pickup.generate_window_days",
		},
		{
			name:    "generate window beyond generator limit",
			mutate:  func(c *Config) { c.Pickup.GenerateWindowDays = domain.MaxGenerateWindowDays + 30 },
			wantErr: "pickup.generate_window_days",
		},
		{
			name:    "zero occupancy window",
			mutate:  func(c *Config) { c.Pickup.OccupancyWindowDays = 0 },
			wantErr: "pickup.occupancy_window_days",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.HTTPPort = 70000 },
			wantErr: "server.http_port",
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database.host",
		},
		{
			name:    "email without sender",
			mutate:  func(c *Config) { c.Email.Enabled = true; c.Email.From = "" },
			wantErr: "email.from",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_UpperBoundWindowAccepted(t *testing.T) {
	cfg := defaults()
	cfg.Database.Host = "localhost"
	cfg.Database.DBName = "farmstand"
	cfg.Pickup.GenerateWindowDays = domain.MaxGenerateWindowDays

	assert.NoError(t, cfg.Validate())
}

func TestLoad_RejectsWindowBeyondGeneratorLimit(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[pickup]
generate_window_days = 120
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pickup.generate_window_days")
}
