package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Todoist  TodoistConfig  `mapstructure:"todoist"  validate:"required"`
	Runner   RunnerConfig   `mapstructure:"runner"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// TodoistConfig contains the settings for the remote Todoist API.
type TodoistConfig struct {
	APIToken string `mapstructure:"api_token" validate:"required"`
	BaseURL  string `mapstructure:"base_url"  validate:"required,url"`
}

// RunnerConfig contains the settings for the scheduled batch runner.
// Schedule is a cron expression used only when the runner is started in
// daemon mode; one-shot invocations ignore it.
type RunnerConfig struct {
	Schedule string `mapstructure:"schedule"`
}
