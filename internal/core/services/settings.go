package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
)

// setting binds a config key to a field of domain.AppSettings.
type setting struct {
	kind  settingKind
	get   func(s *domain.AppSettings) any
	apply func(s *domain.AppSettings, v any)
}

//nolint:gosec // G101: github.token is a config key name, not a credential.
var settingKeys = map[string]setting{
	"index.root_folder_id": {
		kindString,
		func(s *domain.AppSettings) any { return s.Index.RootFolderID },
		func(s *domain.AppSettings, v any) { s.Index.RootFolderID = v.(string) },
	},
	"index.backend": {
		kindString,
		func(s *domain.AppSettings) any { return string(s.Index.Backend) },
		func(s *domain.AppSettings, v any) { s.Index.Backend = domain.DocumentBackend(v.(string)) },
	},
	"index.storage": {
		kindString,
		func(s *domain.AppSettings) any { return string(s.Index.Storage) },
		func(s *domain.AppSettings, v any) { s.Index.Storage = domain.StorageBackend(v.(string)) },
	},
	"index.data_dir": {
		kindString,
		func(s *domain.AppSettings) any { return s.Index.DataDir },
		func(s *domain.AppSettings, v any) { s.Index.DataDir = v.(string) },
	},
	"index.url_template": {
		kindString,
		func(s *domain.AppSettings) any { return s.Index.URLTemplate },
		func(s *domain.AppSettings, v any) { s.Index.URLTemplate = v.(string) },
	},
	"index.snippet_paragraphs": {
		kindInt,
		func(s *domain.AppSettings) any { return s.Index.SnippetParagraphs },
		func(s *domain.AppSettings, v any) { s.Index.SnippetParagraphs = v.(int) },
	},
	"index.snippet_chars": {
		kindInt,
		func(s *domain.AppSettings) any { return s.Index.SnippetChars },
		func(s *domain.AppSettings, v any) { s.Index.SnippetChars = v.(int) },
	},
	"search.limit": {
		kindInt,
		func(s *domain.AppSettings) any { return s.Search.Limit },
		func(s *domain.AppSettings, v any) { s.Search.Limit = v.(int) },
	},
	"search.per_query_limit": {
		kindInt,
		func(s *domain.AppSettings) any { return s.Search.PerQueryLimit },
		func(s *domain.AppSettings, v any) { s.Search.PerQueryLimit = v.(int) },
	},
	"search.fuzzy_threshold": {
		kindFloat,
		func(s *domain.AppSettings) any { return s.Search.FuzzyThreshold },
		func(s *domain.AppSettings, v any) { s.Search.FuzzyThreshold = v.(float64) },
	},
	"drive.credentials_file": {
		kindString,
		func(s *domain.AppSettings) any { return s.Drive.CredentialsFile },
		func(s *domain.AppSettings, v any) { s.Drive.CredentialsFile = v.(string) },
	},
	"drive.requests_per_second": {
		kindFloat,
		func(s *domain.AppSettings) any { return s.Drive.RequestsPerSecond },
		func(s *domain.AppSettings, v any) { s.Drive.RequestsPerSecond = v.(float64) },
	},
	"github.owner": {
		kindString,
		func(s *domain.AppSettings) any { return s.GitHub.Owner },
		func(s *domain.AppSettings, v any) { s.GitHub.Owner = v.(string) },
	},
	"github.repo": {
		kindString,
		func(s *domain.AppSettings) any { return s.GitHub.Repo },
		func(s *domain.AppSettings, v any) { s.GitHub.Repo = v.(string) },
	},
	"github.branch": {
		kindString,
		func(s *domain.AppSettings) any { return s.GitHub.Branch },
		func(s *domain.AppSettings, v any) { s.GitHub.Branch = v.(string) },
	},
	"github.token": {
		kindString,
		func(s *domain.AppSettings) any { return s.GitHub.Token },
		func(s *domain.AppSettings, v any) { s.GitHub.Token = v.(string) },
	},
}

// SettingKeys returns every recognised config key, sorted.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvOverrides are environment variables that take precedence over the
// config file. Unset variables leave the file value alone.
type EnvOverrides struct {
	RootFolderID    string `env:"KBBOT_ROOT_FOLDER_ID" env-description:"Root folder, directory or repository path to index"`
	Backend         string `env:"KBBOT_BACKEND" env-description:"Document backend: drive, filesystem or github"`
	Storage         string `env:"KBBOT_STORAGE" env-description:"Index storage: sqlite, leveldb or badger"`
	DataDir         string `env:"KBBOT_DATA_DIR" env-description:"Directory holding the index storage files"`
	CredentialsFile string `env:"KBBOT_GOOGLE_CREDENTIALS" env-description:"Google credentials JSON file"`
	GitHubToken     string `env:"KBBOT_GITHUB_TOKEN" env-description:"GitHub token for private repositories"`
}

// EnvHelp describes the environment variables kbbot reads.
func (s *SettingsService) EnvHelp() (string, error) {
	header := "Environment variables:"
	return cleanenv.GetDescription(&EnvOverrides{}, &header)
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
	useEnv      bool
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
		useEnv:      true,
	}
}

// WithoutEnv returns a service that ignores environment overrides.
func (s *SettingsService) WithoutEnv() *SettingsService {
	return &SettingsService{configStore: s.configStore, validate: s.validate}
}

// Get returns the stored settings over the defaults, with environment
// overrides applied. Values of the wrong type are ignored.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	for key, def := range settingKeys {
		if _, ok := s.configStore.Get(key); !ok {
			continue
		}
		if v, ok := s.read(key, def.kind); ok {
			def.apply(&settings, v)
		}
	}

	if s.useEnv {
		if err := applyEnv(&settings); err != nil {
			return nil, err
		}
	}
	settings.Index.RootFolderID = strings.TrimSpace(settings.Index.RootFolderID)

	return &settings, nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	def, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(def.kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	settings, err := s.WithoutEnv().Get()
	if err != nil {
		return err
	}
	def.apply(settings, parsed)

	if err := s.check(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks the effective settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.check(settings)
}

// Keys returns every recognised setting key, sorted.
func (s *SettingsService) Keys() []string {
	return SettingKeys()
}

// Value returns the effective value of key, formatted for display.
func (s *SettingsService) Value(key string) (string, error) {
	def, ok := settingKeys[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	return fmt.Sprint(def.get(settings)), nil
}

// Path returns the location of the config file.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) check(settings *domain.AppSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}
	return nil
}

func (s *SettingsService) read(key string, kind settingKind) (any, bool) {
	raw, _ := s.configStore.Get(key)
	switch kind {
	case kindInt:
		switch raw.(type) {
		case int, int64, float64:
			return s.configStore.GetInt(key), true
		}
	case kindFloat:
		switch raw.(type) {
		case int, int64, float64:
			return s.configStore.GetFloat(key), true
		}
	default:
		if str, ok := raw.(string); ok {
			return str, true
		}
	}
	return nil, false
}

func parseSetting(kind settingKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	default:
		return value, nil
	}
}

func applyEnv(settings *domain.AppSettings) error {
	var env EnvOverrides
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if env.RootFolderID != "" {
		settings.Index.RootFolderID = env.RootFolderID
	}
	if env.Backend != "" {
		settings.Index.Backend = domain.DocumentBackend(env.Backend)
	}
	if env.Storage != "" {
		settings.Index.Storage = domain.StorageBackend(env.Storage)
	}
	if env.DataDir != "" {
		settings.Index.DataDir = env.DataDir
	}
	if env.CredentialsFile != "" {
		settings.Drive.CredentialsFile = env.CredentialsFile
	}
	if env.GitHubToken != "" {
		settings.GitHub.Token = env.GitHubToken
	}
	return nil
}

// describeValidation turns validator errors into "Field: rule" pairs.
func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors) //nolint:errorlint // validator returns the concrete type
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Namespace(), rule, fe.Value()))
	}
	return strings.Join(parts, "; ")
}
