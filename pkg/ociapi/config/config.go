// Package config loads client settings from an INI profile file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	ini "gopkg.in/ini.v1"

	"github.com/berops/terraform-provider-oci/pkg/ociapi"
	"github.com/berops/terraform-provider-oci/pkg/ociapi/waiter"
)

const (
	DefaultProfile = "DEFAULT"

	EnvConfigFile = "OCI_CONFIG_FILE"
	EnvProfile    = "OCI_CLI_PROFILE"
	EnvEndpoint   = "OCI_ENDPOINT"
	EnvRegion     = "OCI_REGION"
	EnvToken      = "OCI_TOKEN"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of one profile.
type Config struct {
	File    string
	Profile string

	Endpoint    string
	Region      string
	Tenancy     string
	User        string
	Fingerprint string
	KeyFile     string
	Token       string

	Retries            int
	MaxIntervalSeconds int
	MaxWaitSeconds     int
	LogLevel           log.Level
}

// DefaultConfigFile returns ~/.oci/config.
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".oci", "config")
	}
	return filepath.Join(home, ".oci", "config")
}

// Load reads profile from file and applies environment overrides. Empty
// arguments fall back to OCI_CONFIG_FILE / OCI_CLI_PROFILE and then to the
// defaults. A missing default file is not an error, a missing explicit one is.
func Load(file, profile string) (*Config, error) {
	explicit := true
	if file == "" {
		file = os.Getenv(EnvConfigFile)
	}
	if file == "" {
		file = DefaultConfigFile()
		explicit = false
	}
	if profile == "" {
		profile = os.Getenv(EnvProfile)
	}
	if profile == "" {
		profile = DefaultProfile
	}

	c := &Config{File: file, Profile: profile, LogLevel: log.InfoLevel}

	if _, err := os.Stat(file); err == nil || explicit {
		if err := c.loadFile(); err != nil {
			return nil, err
		}
	}

	c.applyEnv()
	return c, nil
}

func (c *Config) loadFile() error {
	cfgFile, err := ini.Load(c.File)
	if err != nil {
		return errors.Wrapf(err, "cannot load config file %s", c.File)
	}
	section, err := cfgFile.GetSection(c.Profile)
	if err != nil {
		return errors.Wrapf(err, "cannot find profile %s in %s", c.Profile, c.File)
	}

	c.Endpoint = section.Key("endpoint").String()
	c.Region = section.Key("region").String()
	c.Tenancy = section.Key("tenancy").String()
	c.User = section.Key("user").String()
	c.Fingerprint = section.Key("fingerprint").String()
	c.KeyFile = expandHome(section.Key("key_file").String())
	c.Token = section.Key("token").String()

	ints := map[string]*int{
		"retries":              &c.Retries,
		"max_interval_seconds": &c.MaxIntervalSeconds,
		"max_wait_seconds":     &c.MaxWaitSeconds,
	}
	for name, dst := range ints {
		if !section.HasKey(name) {
			continue
		}
		v, err := section.Key(name).Int()
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%s in profile %s: %v", name, c.Profile, err)
		}
		*dst = v
	}

	if section.HasKey("log_level") {
		level, err := log.ParseLevel(section.Key("log_level").String())
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "log_level in profile %s: %v", c.Profile, err)
		}
		c.LogLevel = level
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvRegion); v != "" {
		c.Region = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Validate reports the first setting that makes the profile unusable.
func (c *Config) Validate() error {
	if c.Endpoint == "" && c.Region == "" {
		return errors.Wrap(ErrInvalidConfig, "either endpoint or region must be set")
	}
	if c.Retries < 0 {
		return errors.Wrap(ErrInvalidConfig, "retries must not be negative")
	}
	if c.MaxIntervalSeconds < 0 || c.MaxWaitSeconds < 0 {
		return errors.Wrap(ErrInvalidConfig, "waiter limits must not be negative")
	}
	if c.Fingerprint != "" && c.KeyFile == "" {
		return errors.Wrap(ErrInvalidConfig, "fingerprint is set but key_file is not")
	}
	return nil
}

// ServiceEndpoint returns the base URL of service. An explicit endpoint wins
// over the regional one.
func (c *Config) ServiceEndpoint(service string) string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://%s.%s.oci.oraclecloud.com", service, c.Region)
}

// NewClient builds an HTTP client for service.
func (c *Config) NewClient(service string, opts ...ociapi.HttpClientOption) (*ociapi.HttpClient, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	all := append([]ociapi.HttpClientOption{ociapi.WithRetryableHttpClient(c.Retries)}, opts...)
	return ociapi.NewCustom(c.ServiceEndpoint(service), c.Token, all...)
}

// WaiterConfig returns the wait limits of the profile.
func (c *Config) WaiterConfig() waiter.Config {
	return waiter.Config{
		MaxIntervalSeconds: c.MaxIntervalSeconds,
		MaxWaitSeconds:     c.MaxWaitSeconds,
	}
}
