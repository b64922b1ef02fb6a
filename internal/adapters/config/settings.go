package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appName    = "page-migration"
	configName = "config"
	configType = "toml"

	DotEnvFile = ".env"
)

const (
	KeyWorkspaceID     = "dust.workspace_id"
	KeyAgentID         = "dust.agent_id"
	KeyAPIKey          = "dust.api_key"
	KeyBaseURL         = "dust.base_url"
	KeyTimeout         = "dust.timeout"
	KeyMaxRetries      = "dust.max_retries"
	KeyRetryBaseDelay  = "dust.retry_base_delay"
	KeyMaxFragmentSize = "content.max_fragment_size"
	KeyWorkers         = "workers.count"
	KeyLanguage        = "migration.language"
	KeyPromptsDir      = "migration.prompts_dir"
	KeyAnalysisPrompt  = "migration.analysis_prompt"
	KeyOutputDir       = "migration.output_dir"
	KeyCacheEnabled    = "cache.enabled"
	KeySecretsDir      = "secrets.dir"
)

var envBindings = map[string]string{
	KeyWorkspaceID:     "DUST_WORKSPACE_ID",
	KeyAgentID:         "DUST_AGENT_ID",
	KeyAPIKey:          "DUST_API_KEY",
	KeyBaseURL:         "DUST_BASE_URL",
	KeyTimeout:         "DUST_TIMEOUT",
	KeyMaxRetries:      "DUST_MAX_RETRIES",
	KeyRetryBaseDelay:  "DUST_RETRY_BASE_DELAY",
	KeyMaxFragmentSize: "MAX_FRAGMENT_SIZE",
	KeyWorkers:         "WORKER_COUNT",
	KeyLanguage:        "PM_LANGUAGE",
	KeyPromptsDir:      "PM_PROMPTS_DIR",
	KeyAnalysisPrompt:  "PM_ANALYSIS_PROMPT",
	KeyOutputDir:       "PM_OUTPUT_DIR",
	KeyCacheEnabled:    "PM_CACHE_ENABLED",
	KeySecretsDir:      "PM_SECRETS_DIR",
}

type Dust struct {
	WorkspaceID    string
	AgentID        string
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type Settings struct {
	Dust            Dust
	MaxFragmentSize int
	Workers         int
	Language        string
	PromptsDir      string
	AnalysisPrompt  string
	OutputDir       string
	CacheEnabled    bool
	SecretsDir      string
	// ConfigFile is the file settings were read from, empty when none was found.
	ConfigFile string
}

type Options struct {
	// ConfigFile overrides the config.toml search.
	ConfigFile string
	// DotEnv is loaded into the process environment before reading settings.
	DotEnv string
	// ConfigDir replaces the user config directory in the search path.
	ConfigDir string
}

func Load(cfg *viper.Viper, opts Options) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if err := loadDotEnv(opts.DotEnv); err != nil {
		return Settings{}, err
	}

	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return Settings{}, err
		}
		configDir = dir
	}

	setDefaults(cfg, configDir)
	for key, env := range envBindings {
		if err := cfg.BindEnv(key, env); err != nil {
			return Settings{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		cfg.SetConfigFile(opts.ConfigFile)
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		cfg.AddConfigPath(configDir)
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &configNotFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	settings := Settings{
		Dust: Dust{
			WorkspaceID:    strings.TrimSpace(cfg.GetString(KeyWorkspaceID)),
			AgentID:        strings.TrimSpace(cfg.GetString(KeyAgentID)),
			APIKey:         strings.TrimSpace(cfg.GetString(KeyAPIKey)),
			BaseURL:        strings.TrimSpace(cfg.GetString(KeyBaseURL)),
			Timeout:        time.Duration(cfg.GetInt(KeyTimeout)) * time.Second,
			MaxRetries:     cfg.GetInt(KeyMaxRetries),
			RetryBaseDelay: cfg.GetDuration(KeyRetryBaseDelay),
		},
		MaxFragmentSize: cfg.GetInt(KeyMaxFragmentSize),
		Workers:         cfg.GetInt(KeyWorkers),
		Language:        strings.ToLower(strings.TrimSpace(cfg.GetString(KeyLanguage))),
		PromptsDir:      cfg.GetString(KeyPromptsDir),
		AnalysisPrompt:  cfg.GetString(KeyAnalysisPrompt),
		OutputDir:       cfg.GetString(KeyOutputDir),
		CacheEnabled:    cfg.GetBool(KeyCacheEnabled),
		SecretsDir:      cfg.GetString(KeySecretsDir),
		ConfigFile:      cfg.ConfigFileUsed(),
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) Validate() error {
	var errs []error
	if s.Dust.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyTimeout))
	}
	if s.Dust.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyMaxRetries))
	}
	if s.Dust.RetryBaseDelay <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyRetryBaseDelay))
	}
	if s.MaxFragmentSize <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyMaxFragmentSize))
	}
	if s.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyWorkers))
	}
	if s.Language != "fr" && s.Language != "en" {
		errs = append(errs, fmt.Errorf("%s must be fr or en, got %q", KeyLanguage, s.Language))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// DefaultConfigDir is $XDG_CONFIG_HOME/page-migration, falling back to
// ~/.config/page-migration.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

func setDefaults(cfg *viper.Viper, configDir string) {
	cfg.SetDefault(KeyBaseURL, "https://dust.tt/api/v1")
	cfg.SetDefault(KeyTimeout, 300)
	cfg.SetDefault(KeyMaxRetries, 3)
	cfg.SetDefault(KeyRetryBaseDelay, time.Second)
	cfg.SetDefault(KeyMaxFragmentSize, 500_000)
	cfg.SetDefault(KeyWorkers, 5)
	cfg.SetDefault(KeyLanguage, "fr")
	cfg.SetDefault(KeyPromptsDir, filepath.Join("prompts", "migration"))
	cfg.SetDefault(KeyAnalysisPrompt, filepath.Join("prompts", "analysis.prompt.md"))
	cfg.SetDefault(KeyOutputDir, "output")
	cfg.SetDefault(KeyCacheEnabled, true)
	cfg.SetDefault(KeySecretsDir, filepath.Join(configDir, "secrets"))
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	// Variables already present in the environment win.
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
