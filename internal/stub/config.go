package stub

import (
	"time"

	"github.com/maxbolgarin/lang"
)

const (
	defaultAddress = "127.0.0.1:8089"
	defaultTimeout = 30 * time.Second
	defaultPrefix  = "/v1"
)

// Config represents stub server configuration
type Config struct {
	Address string        `yaml:"address" env:"STUB_ADDRESS"`
	Prefix  string        `yaml:"prefix" env:"STUB_PREFIX"`
	Timeout time.Duration `yaml:"timeout" env:"STUB_TIMEOUT"`
}

func (cfg *Config) PrepareAndValidate() error {
	cfg.Address = lang.Check(cfg.Address, defaultAddress)
	cfg.Prefix = lang.Check(cfg.Prefix, defaultPrefix)
	cfg.Timeout = lang.Check(cfg.Timeout, defaultTimeout)
	return nil
}
