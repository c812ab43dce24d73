package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads configuration from an optional YAML file, applies
// environment overrides, and validates the result. An empty file path
// boots from defaults and environment alone.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnvironment(v)

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("upload.max_file_size", 100<<20)
	v.SetDefault("store.strategy", "mongo")
	v.SetDefault("store.mongo.database", "reel")
	v.SetDefault("store.mongo.collection", "vlogs")
	v.SetDefault("media.strategy", "filesystem")
	v.SetDefault("media.filesystem.path", "uploads")
	v.SetDefault("media.filesystem.public_path", "/uploads/")
}

func bindEnvironment(v *viper.Viper) {
	// Environment names predate the YAML layout and are kept for
	// deployment compatibility.
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.public_url", "API_BASE_URL")
	v.BindEnv("upload.password", "UPLOAD_PASSWORD")
	v.BindEnv("store.mongo.uri", "MONGODB_URI")
}
