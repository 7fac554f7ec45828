package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentx-labs/assetctl/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyCatalogPublicURL  = "catalog.public_url"
	KeyCatalogPrivateURL = "catalog.private_url"
	KeyCatalogToken      = "catalog.token"
	KeyCatalogRateLimit  = "catalog.rate_limit"
	KeyRegistryURL       = "registry.url"
	KeyRegistryCacheTTL  = "registry.cache_ttl"
	KeyFetchConcurrency  = "fetch.concurrency"
	KeyLogLevel          = "log.level"
	KeyProjectFile       = "project.file"
	KeyResourcesDir      = "resources.dir"
	KeyTelemetryTextfile = "telemetry.textfile"
)

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	CatalogPublicURL  string
	CatalogPrivateURL string
	CatalogToken      string
	CatalogRateLimit  float64
	RegistryURL       string
	RegistryCacheTTL  time.Duration
	FetchConcurrency  int
	LogLevel          string
	ProjectFile       string
	ResourcesDir      string
	TelemetryTextfile string
}

// Dir returns the path to the config directory (~/.assetctl/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.assetctl/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyCatalogPublicURL, branding.CatalogURL())
	viper.SetDefault(KeyCatalogPrivateURL, strings.TrimRight(branding.CatalogURL(), "/")+"/private")
	viper.SetDefault(KeyCatalogRateLimit, 0)
	viper.SetDefault(KeyRegistryURL, branding.RegistryURL())
	viper.SetDefault(KeyRegistryCacheTTL, "10m")
	viper.SetDefault(KeyFetchConcurrency, 6)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyProjectFile, "project.yaml")
	viper.SetDefault(KeyResourcesDir, "assets")
}

// Load initializes Viper to read from the config file and environment.
// Environment variables use the branding prefix with dots replaced by
// underscores, e.g. ASSETCTL_CATALOG_TOKEN.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the typed settings after Load.
func Current() Settings {
	return Settings{
		CatalogPublicURL:  viper.GetString(KeyCatalogPublicURL),
		CatalogPrivateURL: viper.GetString(KeyCatalogPrivateURL),
		CatalogToken:      viper.GetString(KeyCatalogToken),
		CatalogRateLimit:  viper.GetFloat64(KeyCatalogRateLimit),
		RegistryURL:       viper.GetString(KeyRegistryURL),
		RegistryCacheTTL:  viper.GetDuration(KeyRegistryCacheTTL),
		FetchConcurrency:  viper.GetInt(KeyFetchConcurrency),
		LogLevel:          viper.GetString(KeyLogLevel),
		ProjectFile:       viper.GetString(KeyProjectFile),
		ResourcesDir:      viper.GetString(KeyResourcesDir),
		TelemetryTextfile: viper.GetString(KeyTelemetryTextfile),
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
