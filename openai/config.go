package openai

import (
	"strings"
	"time"

	"github.com/maxbolgarin/lang"
)

const (
	DefaultBaseURL   = "https://api.openai.com/v1"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "gopenai/0.1.0 (https://github.com/maxbolgarin/gopenai)"
)

// Config represents API client configuration
type Config struct {
	APIKey       string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Organization string `yaml:"organization" env:"OPENAI_ORGANIZATION"`

	BaseURL   string        `yaml:"base_url" env:"OPENAI_BASE_URL"` // Stub servers, proxies, compatible APIs
	ProxyURL  string        `yaml:"proxy_url" env:"OPENAI_PROXY_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"OPENAI_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"OPENAI_USER_AGENT"`
}

// PrepareAndValidate fills defaults. The API key is checked by New,
// because a token source can replace it.
func (c *Config) PrepareAndValidate() error {
	c.BaseURL = strings.TrimSuffix(lang.Check(c.BaseURL, DefaultBaseURL), "/")
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)
	return nil
}
