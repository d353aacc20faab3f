package driving

import "github.com/custodia-labs/kbbot/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment
	// overrides applied.
	Get() (*domain.AppSettings, error)

	// Set stores one setting by its dotted key after validating it.
	Set(key, value string) error

	// Value returns the effective value of one setting, formatted for display.
	Value(key string) (string, error)

	// Keys lists every recognised setting key, sorted.
	Keys() []string

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// EnvHelp describes the environment variables that override settings.
	EnvHelp() (string, error)

	// Path returns the location of the config file.
	Path() string
}
