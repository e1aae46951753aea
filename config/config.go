// Package config loads and saves the coins settings.
//
// Settings come, by increasing priority, from defaults, the settings.yaml
// file of the data directory, a .env file and COINS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/coinfolio"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// File is the name of the settings file in the data directory.
const File = "settings.yaml"

// Themes.
const (
	Dark  = "dark"
	Light = "light"
)

// Settings are the user preferences.
type Settings struct {
	DataDir  string // where transactions, favorites and settings are stored.
	Currency string // lower case quote currency, like "usd".
	Theme    string // Dark or Light.
	APIKey   string // optional market data API key.
	Verbose  bool
}

// Path returns the path of the settings file.
func (s Settings) Path() string { return filepath.Join(s.DataDir, File) }

// DefaultDataDir returns $HOME/.coinfolio, or .coinfolio if there is no home.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coinfolio"
	}
	return filepath.Join(home, ".coinfolio")
}

// newViper returns a viper reading settings from dir and the COINS_ environment.
func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(File, filepath.Ext(File)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("COINS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("currency", "usd")
	v.SetDefault("theme", Dark)
	v.SetDefault("api-key", "")
	v.SetDefault("verbose", false)
	return v
}

// Load reads the settings. An empty dataDir means the COINS_DATA_DIR
// environment variable, or DefaultDataDir.
//
// A .env file in the working directory is loaded into the environment
// first, when present. A missing settings file is not an error.
func Load(dataDir string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("could not load .env: %w", err)
	}
	if dataDir == "" {
		dataDir = os.Getenv("COINS_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	v := newViper(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("could not read settings: %w", err)
		}
	}

	s := Settings{
		DataDir:  dataDir,
		Currency: v.GetString("currency"),
		Theme:    v.GetString("theme"),
		APIKey:   v.GetString("api-key"),
		Verbose:  v.GetBool("verbose"),
	}
	err := s.Validate()
	return s, err
}

// Validate checks and normalizes the currency and the theme.
func (s *Settings) Validate() error {
	cur, err := coinfolio.ValidateCurrency(s.Currency)
	if err != nil {
		return fmt.Errorf("invalid currency setting: %w", err)
	}
	s.Currency = cur
	theme, err := ParseTheme(s.Theme)
	if err != nil {
		return err
	}
	s.Theme = theme
	return nil
}

// ParseTheme accepts "dark" and "light", in any case.
func ParseTheme(s string) (string, error) {
	switch t := strings.ToLower(s); t {
	case Dark, Light:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q, want %q or %q", s, Dark, Light)
	}
}

// Save persists the currency and the theme to the settings file of the
// data directory. Other settings already in the file are kept.
func Save(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.DataDir, 0o755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(s.Path())
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not read settings: %w", err)
	}
	v.Set("currency", s.Currency)
	v.Set("theme", s.Theme)
	if err := v.WriteConfigAs(s.Path()); err != nil {
		return fmt.Errorf("could not save settings: %w", err)
	}
	return nil
}
