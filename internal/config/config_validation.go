package config

// validate checks that the merged configuration is complete enough to
// start the server. Defaults cover every field, so failures here normally
// mean an explicitly empty override.
func (c *StructuredConfig) validate() error {
	if c.Server.HTTPAddress == "" {
		return errNoServerAddress
	}
	if c.Storage.DB.DSN == "" {
		return errNoDatabaseDSN
	}
	if c.Storage.Files.UploadDir == "" {
		return errNoUploadDir
	}

	return nil
}
