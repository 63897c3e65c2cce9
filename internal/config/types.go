package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Fixtures      FixturesConfig
	Store         StoreConfig
	Turso         TursoConfig
	Slack         SlackConfig
	ProjectID     string
}

// FixturesConfig describes where seed data comes from.
type FixturesConfig struct {
	// BaseURL is the HTTP root the fixture files are fetched from.
	BaseURL string
	// Dir is a local directory of fixture files, served statically by the
	// server so a demo deployment is self-contained.
	Dir string
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Backend   string // "sqlite" or "redis"
	RedisAddr string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
