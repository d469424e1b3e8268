package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxbolgarin/gopenai/internal/batch"
	"github.com/maxbolgarin/gopenai/openai"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
client:
  api_key: sk-file
  base_url: http://127.0.0.1:8089/v1/
  timeout: 5s
defaults:
  model: davinci
  temperature: 0.3
batch:
  workers: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Client.APIKey != "sk-file" {
		t.Errorf("APIKey = %q", cfg.Client.APIKey)
	}
	if cfg.Client.BaseURL != "http://127.0.0.1:8089/v1" {
		t.Errorf("BaseURL = %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Client.Timeout)
	}
	if cfg.Model() != openai.Davinci || cfg.SearchModel() != openai.Ada {
		t.Errorf("models = %v, %v", cfg.Model(), cfg.SearchModel())
	}
	if cfg.Defaults.Temperature != 0.3 || cfg.Batch.Workers != 8 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GOPENAI_MODEL", "Babbage")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.APIKey != "sk-env" {
		t.Errorf("APIKey = %q", cfg.Client.APIKey)
	}
	if cfg.Model() != openai.Babbage {
		t.Errorf("Model() = %v", cfg.Model())
	}
	if cfg.Client.BaseURL != openai.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.Client.BaseURL)
	}
}

func TestPrepareAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"unknown model", Config{Defaults: DefaultsConfig{Model: "gpt-9"}}, true},
		{"unknown search model", Config{Defaults: DefaultsConfig{SearchModel: "gpt-9"}}, true},
		{"negative temperature", Config{Defaults: DefaultsConfig{Temperature: -1}}, true},
		{"temperature too high", Config{Defaults: DefaultsConfig{Temperature: 2.5}}, true},
		{"negative workers", Config{Batch: batch.Config{Workers: -1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.PrepareAndValidate()
			if (err != nil) != tt.wantErr {
				t.Errorf("PrepareAndValidate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() error = nil")
	}
}
