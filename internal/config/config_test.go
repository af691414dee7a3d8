package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{"MEMOCARD_API_BASE_URL", "MEMOCARD_API_TOKEN", "MEMOCARD_USER_ID", "DB_PASSWORD"} {
		t.Setenv(env, "")
	}
}

func defaultConfig(baseURL string) *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          baseURL,
			TimeoutSeconds:   30,
			MaxRetryAttempts: 2,
		},
		Review: ReviewConfig{
			Limit:                  20,
			RetryDelayMilliseconds: 2500,
		},
		Generation: GenerationConfig{
			TimeoutSeconds: 120,
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 3306,
		},
		Outputs: OutputsConfig{
			ExportDirectory: "outputs",
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		want              *Config
		wantErrorContains []string
	}{
		{
			name: "valid config file with custom values",
			configContent: `api:
  base_url: https://lms.example.com/api
  timeout_seconds: 10
  max_retry_attempts: 1
user:
  id: u1
review:
  limit: 5
  retry_delay_milliseconds: 100
outputs:
  export_directory: custom/outputs
`,
			want: func() *Config {
				cfg := defaultConfig("https://lms.example.com/api")
				cfg.API.TimeoutSeconds = 10
				cfg.API.MaxRetryAttempts = 1
				cfg.User.ID = "u1"
				cfg.Review.Limit = 5
				cfg.Review.RetryDelayMilliseconds = 100
				cfg.Outputs.ExportDirectory = "custom/outputs"
				return cfg
			}(),
		},
		{
			name: "partial config uses defaults",
			configContent: `api:
  base_url: https://lms.example.com/api
`,
			useExplicitPath: true,
			want:            defaultConfig("https://lms.example.com/api"),
		},
		{
			name: "environment variables override the file",
			configContent: `api:
  base_url: https://lms.example.com/api
user:
  id: from-file
`,
			useExplicitPath: true,
			env: map[string]string{
				"MEMOCARD_USER_ID":   "from-env",
				"MEMOCARD_API_TOKEN": "secret",
				"DB_PASSWORD":        "db-secret",
			},
			want: func() *Config {
				cfg := defaultConfig("https://lms.example.com/api")
				cfg.User.ID = "from-env"
				cfg.API.Token = "secret"
				cfg.Database.Password = "db-secret"
				return cfg
			}(),
		},
		{
			name: "invalid YAML format",
			configContent: `api:
  base_url: https://lms.example.com/api
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name:              "missing base url",
			configContent:     "user:\n  id: u1\n",
			useExplicitPath:   true,
			wantErrorContains: []string{"invalid configuration", "api.base_url is required (set it in the config file or MEMOCARD_API_BASE_URL)"},
		},
		{
			name: "invalid base url and limit",
			configContent: `api:
  base_url: not a url
review:
  limit: 0
`,
			useExplicitPath:   true,
			wantErrorContains: []string{"api.base_url must be an absolute URL", "review.limit must be 1 or greater"},
		},
		{
			name: "too many retries",
			configContent: `api:
  base_url: https://lms.example.com/api
  max_retry_attempts: 11
`,
			useExplicitPath:   true,
			wantErrorContains: []string{"api.max_retry_attempts must be 10 or less"},
		},
		{
			name: "deck template must exist",
			configContent: `api:
  base_url: https://lms.example.com/api
templates:
  deck_template: /nonexistent/deck.md.go.tmpl
`,
			useExplicitPath:   true,
			wantErrorContains: []string{"templates.deck_template must be an existing and readable template file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "memocard.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				require.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := defaultConfig("https://lms.example.com")
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.Equal(t, 2500*time.Millisecond, cfg.Review.RetryDelay())
	assert.Equal(t, 2*time.Minute, cfg.Generation.Timeout())
	assert.False(t, cfg.Database.Enabled())

	cfg.Database.Database = "memocard"
	assert.True(t, cfg.Database.Enabled())
}
