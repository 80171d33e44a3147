package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
)

const testConfigFile = `[DEFAULT]
region=eu-frankfurt-1
tenancy=ocid1.tenancy.oc1..aaaa
user=ocid1.user.oc1..bbbb
fingerprint=20:3b:97:13
key_file=~/.oci/oci_api_key.pem
retries=3
max_interval_seconds=10
max_wait_seconds=600
log_level=debug

[DEVOPS]
endpoint=http://localhost:8080
token=secret

[BROKEN]
region=us-ashburn-1
retries=many
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testConfigFile), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvConfigFile, EnvProfile, EnvEndpoint, EnvRegion, EnvToken} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultProfile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t)

	c, err := Load(path, "")
	require.NoError(t, err)
	home, _ := os.UserHomeDir()

	assert.Equal(t, DefaultProfile, c.Profile)
	assert.Equal(t, "eu-frankfurt-1", c.Region)
	assert.Equal(t, "ocid1.tenancy.oc1..aaaa", c.Tenancy)
	assert.Equal(t, filepath.Join(home, ".oci", "oci_api_key.pem"), c.KeyFile)
	assert.Equal(t, 3, c.Retries)
	assert.Equal(t, log.DebugLevel, c.LogLevel)
	assert.Equal(t, waiter.Config{MaxIntervalSeconds: 10, MaxWaitSeconds: 600}, c.WaiterConfig())
	assert.Equal(t, "https://devops.eu-frankfurt-1.oci.oraclecloud.com", c.ServiceEndpoint("devops"))
	assert.NoError(t, c.Validate())
}

func TestLoadNamedProfileFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, writeConfig(t))
	t.Setenv(EnvProfile, "DEVOPS")

	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "DEVOPS", c.Profile)
	assert.Equal(t, "secret", c.Token)
	assert.Equal(t, "http://localhost:8080", c.ServiceEndpoint("devops"))
	assert.Equal(t, log.InfoLevel, c.LogLevel)

	client, err := c.NewClient("devops")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", client.HostURL)
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvEndpoint, "http://override:1234")
	t.Setenv(EnvToken, "env-token")
	t.Setenv(EnvRegion, "ap-tokyo-1")

	c, err := Load(writeConfig(t), "DEFAULT")
	require.NoError(t, err)
	assert.Equal(t, "http://override:1234", c.Endpoint)
	assert.Equal(t, "env-token", c.Token)
	assert.Equal(t, "ap-tokyo-1", c.Region)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t)

	_, err := Load(path, "MISSING")
	assert.ErrorContains(t, err, "MISSING")

	_, err = Load(path, "BROKEN")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "does-not-exist"), "")
	assert.Error(t, err, "an explicit file must exist")
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvRegion, "us-phoenix-1")

	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "us-phoenix-1", c.Region)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "region only", config: Config{Region: "eu-frankfurt-1"}},
		{name: "endpoint only", config: Config{Endpoint: "http://localhost"}},
		{name: "nothing", config: Config{}, wantErr: true},
		{name: "negative retries", config: Config{Region: "r", Retries: -1}, wantErr: true},
		{name: "negative wait", config: Config{Region: "r", MaxWaitSeconds: -1}, wantErr: true},
		{name: "fingerprint without key", config: Config{Region: "r", Fingerprint: "aa"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
