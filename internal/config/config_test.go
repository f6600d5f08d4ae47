package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "agenda"
password = "agenda"
dbname = "agenda"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = "logs/agenda-service.log"
level = "info"

[metrics]
enabled = true
service_name = "agenda-service"
path = "/metrics"

[billing_service]
enabled = true
url = "http://localhost:8090"
timeout = 3
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.BillingService.Enabled)
	assert.Equal(t, "http://localhost:8090", cfg.BillingService.URL)
}

func TestLoad_DSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=agenda password=agenda dbname=agenda sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  string
		wantErr error
	}{
		{
			name: "invalid port",
			mutate: `
[server]
http_port = 0

[database]
host = "localhost"
dbname = "agenda"
`,
			wantErr: ErrInvalidConfig,
		},
		{
			name: "missing database host",
			mutate: `
[server]
http_port = 8080

[database]
dbname = "agenda"
`,
			wantErr: ErrInvalidConfig,
		},
		{
			name: "metrics enabled without path",
			mutate: `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "agenda"

[metrics]
enabled = true
`,
			wantErr: ErrInvalidConfig,
		},
		{
			name: "billing enabled without url",
			mutate: `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "agenda"

[billing_service]
enabled = true
`,
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mutate))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
