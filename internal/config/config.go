package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all externally supplied settings. It is loaded once at
// process start and passed explicitly to each component; nothing reads
// configuration ambiently after that.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`

	// DatabasePath is the SQLite database file path.
	DatabasePath string `mapstructure:"database_path"`

	// APIAuthToken is the static bearer token required on every /tasks
	// request.
	APIAuthToken string `mapstructure:"api_auth_token"`

	// OpenAIAPIKeyFile is the path of a file holding the suggestion
	// provider credential. The file is re-read on every call so the key
	// can be rotated without a restart.
	OpenAIAPIKeyFile string `mapstructure:"openai_api_key_file"`

	// OpenAIModel selects the completion model.
	OpenAIModel string `mapstructure:"openai_model"`

	// StrictInit aborts startup when the database bootstrap fails.
	// When false, bootstrap failures are logged and startup continues.
	StrictInit bool `mapstructure:"strict_init"`
}

// Load reads configuration from an optional YAML file at path and from
// TASKAPI_* environment variables. Environment values override file
// values; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("database_path", "data/tasks.db")
	v.SetDefault("api_auth_token", "default_token")
	v.SetDefault("openai_api_key_file", "./openai_api_key.txt")
	v.SetDefault("openai_model", "gpt-3.5-turbo")
	v.SetDefault("strict_init", false)

	v.SetEnvPrefix("TASKAPI")
	v.AutomaticEnv()
	for _, key := range []string{
		"addr", "database_path", "api_auth_token",
		"openai_api_key_file", "openai_model", "strict_init",
	} {
		// Unmarshal only sees env values for explicitly bound keys.
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(*os.PathError); !ok {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return Config{}, fmt.Errorf("reading config %s: %w", path, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
