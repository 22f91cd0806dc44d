package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "go-api-template", cfg.App.Name)
	assert.Equal(t, ":8000", cfg.Server.HTTPAddress)
	assert.Equal(t, 60, cfg.Server.RequestTimeoutSeconds)
	assert.Equal(t, "sqlite://./app.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "uploads", cfg.Storage.Files.UploadDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"complete config passes", func(cfg *StructuredConfig) {}, nil},
		{"missing server address", func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, errNoServerAddress},
		{"missing database DSN", func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, errNoDatabaseDSN},
		{"missing upload dir", func(cfg *StructuredConfig) { cfg.Storage.Files.UploadDir = "" }, errNoUploadDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// Earlier sources must win: mergo only fills fields still empty after the
// previous merge.
func TestBuilderPrecedence(t *testing.T) {
	builder := newConfigBuilder()
	builder.configs = append(builder.configs,
		&StructuredConfig{Server: Server{HTTPAddress: ":9999"}},
		&StructuredConfig{
			Server:  Server{HTTPAddress: ":7777"},
			Storage: Storage{DB: DB{DSN: "postgres://flags"}},
		},
	)
	builder.withDefaults()

	cfg, err := builder.build()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://flags", cfg.Storage.DB.DSN)
	assert.Equal(t, "go-api-template", cfg.App.Name)
	assert.Equal(t, "uploads", cfg.Storage.Files.UploadDir)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_NAME", "custom-service")
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/app")
	t.Setenv("STORAGE_DB_MAX_OPEN_CONNS", "25")
	t.Setenv("STORAGE_FILES_UPLOAD_DIR", "/var/uploads")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "custom-service", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/app", cfg.Storage.DB.DSN)
	assert.Equal(t, 25, cfg.Storage.DB.MaxOpenConns)
	assert.Equal(t, "/var/uploads", cfg.Storage.Files.UploadDir)
}

func TestParseEnv_InvalidInteger(t *testing.T) {
	t.Setenv("STORAGE_DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
