package config

import "errors"

var (
	errNoServerAddress = errors.New("no HTTP server address specified")
	errNoDatabaseDSN   = errors.New("no database DSN specified")
	errNoUploadDir     = errors.New("no upload directory specified")
)
