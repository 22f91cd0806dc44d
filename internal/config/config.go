package config

// StructuredConfig is the top-level configuration container for the API
// server. It is populated by merging values from environment variables,
// command-line flags, and built-in defaults, in that order of precedence.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings exposed through the root and
	// health endpoints.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// relational database and the upload directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`
}

// App holds application-level identity values.
type App struct {
	// Name is the service name reported by the health endpoints.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network settings for the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeoutSeconds bounds how long one request may take before
	// the server gives up reading or writing it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeoutSeconds int `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the upload directory settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects and configures the backend: "postgres://..." for
	// PostgreSQL, "sqlite://path" for the SQLite development default.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns caps the connection pool (PostgreSQL only).
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`

	// MaxIdleConns caps idle pooled connections (PostgreSQL only).
	// Env: STORAGE_DB_MAX_IDLE_CONNS
	MaxIdleConns int `env:"MAX_IDLE_CONNS"`
}

// Files holds file-system settings for the upload store.
type Files struct {
	// UploadDir is the directory where uploads are stored and served from.
	// Env: STORAGE_FILES_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`
}

// defaultConfig carries the out-of-the-box settings: SQLite next to the
// binary, uploads in ./uploads, port 8000.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name:    "go-api-template",
			Version: "1.0.0",
		},
		Server: Server{
			HTTPAddress:           ":8000",
			RequestTimeoutSeconds: 60,
		},
		Storage: Storage{
			DB: DB{
				DSN:          "sqlite://./app.db",
				MaxOpenConns: 10,
				MaxIdleConns: 4,
			},
			Files: Files{
				UploadDir: "uploads",
			},
		},
	}
}

// GetStructuredConfig loads the complete configuration: environment
// variables first, command-line flags for anything the environment left
// unset, defaults for the rest.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withDefaults().
		build()
}
