package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/gopenai/internal/batch"
	"github.com/maxbolgarin/gopenai/internal/stub"
	"github.com/maxbolgarin/gopenai/openai"
	"github.com/maxbolgarin/lang"
)

const (
	defaultModel       = "curie"
	defaultSearchModel = "ada"
)

// Config represents the main application configuration
type Config struct {
	Client   openai.Config  `yaml:"client"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Batch    batch.Config   `yaml:"batch"`
	Stub     stub.Config    `yaml:"stub"`
	Debug    bool           `yaml:"debug" env:"GOPENAI_DEBUG"`
}

// DefaultsConfig holds values used when a command flag is not given
type DefaultsConfig struct {
	Model       string  `yaml:"model" env:"GOPENAI_MODEL"`
	SearchModel string  `yaml:"search_model" env:"GOPENAI_SEARCH_MODEL"`
	Temperature float64 `yaml:"temperature" env:"GOPENAI_TEMPERATURE"`
}

// Load reads the config file at path (if not empty) and the environment.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, erro.Wrap(err, "read config")
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, erro.Wrap(err, "read env")
	}

	if err := cfg.PrepareAndValidate(); err != nil {
		return Config{}, erro.Wrap(err, "validate config")
	}
	return cfg, nil
}

// PrepareAndValidate fills defaults of every section and checks model names.
func (c *Config) PrepareAndValidate() error {
	if err := c.Client.PrepareAndValidate(); err != nil {
		return erro.Wrap(err, "client")
	}
	if err := c.Batch.PrepareAndValidate(); err != nil {
		return erro.Wrap(err, "batch")
	}
	if err := c.Stub.PrepareAndValidate(); err != nil {
		return erro.Wrap(err, "stub")
	}

	c.Defaults.Model = lang.Check(c.Defaults.Model, defaultModel)
	c.Defaults.SearchModel = lang.Check(c.Defaults.SearchModel, defaultSearchModel)
	if _, err := openai.ParseModel(c.Defaults.Model); err != nil {
		return erro.Wrap(err, "defaults.model")
	}
	if _, err := openai.ParseModel(c.Defaults.SearchModel); err != nil {
		return erro.Wrap(err, "defaults.search_model")
	}
	if c.Defaults.Temperature < 0 || c.Defaults.Temperature > 2 {
		return erro.Wrap(ErrInvalidTemperature, "defaults.temperature")
	}

	return nil
}

// Model returns the default model.
func (c Config) Model() openai.Model {
	m, _ := openai.ParseModel(c.Defaults.Model)
	return m
}

// SearchModel returns the default search model.
func (c Config) SearchModel() openai.Model {
	m, _ := openai.ParseModel(c.Defaults.SearchModel)
	return m
}
