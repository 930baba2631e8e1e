// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"
  allowed_origins:
    - "https://app.example.com"
    - "http://localhost:3000"

auth:
  jwt_secret: "test-secret"

database:
  path: "./test.db"

dispatch:
  request_timeout: "10s"
  response_topic: "agent-responses"

routes:
  topics:
    booking: "booking-agent-requests"
    planning: "planning-agent-requests"
  default: "general-agent-requests"

classifier:
  model: "gemini-2.0-flash"
  api_key: "test-key"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify server config
	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("Server.AllowedOrigins len = %d, want 2", len(cfg.Server.AllowedOrigins))
	}

	// Verify auth config
	if cfg.Auth.JWTSecret != "test-secret" {
		t.Errorf("Auth.JWTSecret = %q, want %q", cfg.Auth.JWTSecret, "test-secret")
	}

	// Verify database config
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}

	// Verify dispatch config with duration parsing
	if cfg.Dispatch.RequestTimeout != 10*time.Second {
		t.Errorf("Dispatch.RequestTimeout = %v, want %v", cfg.Dispatch.RequestTimeout, 10*time.Second)
	}
	if cfg.Dispatch.ResponseTopic != "agent-responses" {
		t.Errorf("Dispatch.ResponseTopic = %q, want %q", cfg.Dispatch.ResponseTopic, "agent-responses")
	}

	// Verify routes config
	if cfg.Routes.Topics["booking"] != "booking-agent-requests" {
		t.Errorf("Routes.Topics[booking] = %q, want %q", cfg.Routes.Topics["booking"], "booking-agent-requests")
	}
	if cfg.Routes.Default != "general-agent-requests" {
		t.Errorf("Routes.Default = %q, want %q", cfg.Routes.Default, "general-agent-requests")
	}

	// Verify classifier config
	if cfg.Classifier.Model != "gemini-2.0-flash" {
		t.Errorf("Classifier.Model = %q, want %q", cfg.Classifier.Model, "gemini-2.0-flash")
	}
	if cfg.Classifier.APIKey != "test-key" {
		t.Errorf("Classifier.APIKey = %q, want %q", cfg.Classifier.APIKey, "test-key")
	}

	// Verify logging config
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "secret-from-env")
	t.Setenv("TEST_GEMINI_KEY", "key-from-env")

	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

auth:
  jwt_secret: "${TEST_JWT_SECRET}"

database:
  path: "./test.db"

classifier:
  model: "gemini-2.0-flash"
  api_key: "${TEST_GEMINI_KEY}"

logging:
  level: "info"
  format: "text"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify env var expansion
	if cfg.Auth.JWTSecret != "secret-from-env" {
		t.Errorf("Auth.JWTSecret = %q, want %q", cfg.Auth.JWTSecret, "secret-from-env")
	}
	if cfg.Classifier.APIKey != "key-from-env" {
		t.Errorf("Classifier.APIKey = %q, want %q", cfg.Classifier.APIKey, "key-from-env")
	}
}

func TestLoad_EnvVarExpansion_UnsetVar(t *testing.T) {
	// Ensure the env var is NOT set
	os.Unsetenv("UNSET_VAR_FOR_TEST")

	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

auth:
  jwt_secret: "literal-secret"

database:
  path: "./test.db"

classifier:
  api_key: "${UNSET_VAR_FOR_TEST}"

logging:
  level: "info"
  format: "text"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Unset env vars should expand to empty string
	if cfg.Classifier.APIKey != "" {
		t.Errorf("Classifier.APIKey = %q, want empty string for unset env var", cfg.Classifier.APIKey)
	}
}

func TestLoad_DurationParsing(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

auth:
  jwt_secret: "test-secret"

database:
  path: "./test.db"

dispatch:
  request_timeout: "1m30s"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := 1*time.Minute + 30*time.Second
	if cfg.Dispatch.RequestTimeout != expected {
		t.Errorf("Dispatch.RequestTimeout = %v, want %v", cfg.Dispatch.RequestTimeout, expected)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr "missing colon"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

auth:
  jwt_secret: "test-secret"

database:
  path: "./test.db"

dispatch:
  request_timeout: "invalid-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid duration, got nil")
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		wantErrSubstr string
	}{
		{
			name: "missing http_addr",
			configContent: `
server:
  http_addr: ""
auth:
  jwt_secret: "test-secret"
database:
  path: "./test.db"
`,
			wantErrSubstr: "server.http_addr is required",
		},
		{
			name: "missing jwt_secret",
			configContent: `
server:
  http_addr: "0.0.0.0:8080"
auth:
  jwt_secret: ""
database:
  path: "./test.db"
`,
			wantErrSubstr: "auth.jwt_secret is required",
		},
		{
			name: "missing database path",
			configContent: `
server:
  http_addr: "0.0.0.0:8080"
auth:
  jwt_secret: "test-secret"
database:
  path: ""
`,
			wantErrSubstr: "database.path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, tt.configContent)

			_, err := Load(configPath)
			if err == nil {
				t.Errorf("Load() expected error containing %q, got nil", tt.wantErrSubstr)
				return
			}

			if !strings.Contains(err.Error(), tt.wantErrSubstr) {
				t.Errorf("Load() error = %q, want error containing %q", err.Error(), tt.wantErrSubstr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOO", "bar")
	t.Setenv("BAZ", "qux")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single env var",
			input:    "${FOO}",
			expected: "bar",
		},
		{
			name:     "env var with surrounding text",
			input:    "prefix-${FOO}-suffix",
			expected: "prefix-bar-suffix",
		},
		{
			name:     "multiple env vars",
			input:    "${FOO}/${BAZ}",
			expected: "bar/qux",
		},
		{
			name:     "no env vars",
			input:    "no-vars-here",
			expected: "no-vars-here",
		},
		{
			name:     "unset env var",
			input:    "${UNSET_VAR}",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvVars(tt.input)
			if result != tt.expected {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
