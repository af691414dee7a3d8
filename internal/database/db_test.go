package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/memocard/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		wantErr error
	}{
		{
			name: "creates connection with valid config",
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "memocard",
				Username: "memocard",
				Password: "testpass",
			},
		},
		{
			name: "creates connection with pool settings",
			cfg: config.DatabaseConfig{
				Host:            "localhost",
				Port:            3306,
				Database:        "memocard",
				Username:        "memocard",
				Password:        "testpass",
				MaxOpenConns:    10,
				MaxIdleConns:    2,
				ConnMaxLifetime: 300,
			},
		},
		{
			name:    "journal disabled",
			cfg:     config.DatabaseConfig{Host: "localhost", Port: 3306},
			wantErr: ErrNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, "mysql", got.DriverName())
			if tt.cfg.MaxOpenConns > 0 {
				assert.Equal(t, tt.cfg.MaxOpenConns, got.Stats().MaxOpenConnections)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	parsed, err := mysql.ParseDSN(dsn(config.DatabaseConfig{
		Host:     "db.example.com",
		Port:     3307,
		Database: "memocard",
		Username: "admin",
		Password: "secret",
		TLS:      true,
		Params:   map[string]string{"sql_mode": "TRADITIONAL"},
	}))
	require.NoError(t, err)

	assert.Equal(t, "db.example.com:3307", parsed.Addr)
	assert.Equal(t, "memocard", parsed.DBName)
	assert.Equal(t, "admin", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.MultiStatements)
	assert.Equal(t, "true", parsed.TLSConfig)
	assert.Equal(t, "TRADITIONAL", parsed.Params["sql_mode"])
}
