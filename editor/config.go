package editor

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"kartedit/log"
)

type ItemsConfig struct {
	// Offset of the item probabilities in the rom, copier header excluded.
	Offset int `toml:"offset"`
}

type GeneralConfig struct {
	Backup      bool   `toml:"backup"`
	FixChecksum bool   `toml:"fix_checksum"`
	Format      Format `toml:"format"`
}

type Config struct {
	Items   ItemsConfig   `toml:"items"`
	General GeneralConfig `toml:"general"`
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEdit.Fatalf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "kartedit")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModEdit.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

var defaultConfig = Config{
	General: GeneralConfig{
		Backup:      true,
		FixChecksum: true,
		Format:      FormatRaw,
	},
}

// DefaultConfig returns the configuration used when none is found.
func DefaultConfig() Config { return defaultConfig }

const cfgFilename = "config.toml"

// ConfigPath returns the path of the configuration file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfigOrDefault loads the configuration from the kartedit config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	cfg, err := LoadConfig(ConfigPath())
	if err != nil {
		return defaultConfig
	}
	return cfg
}

// LoadConfig loads the configuration file at path. Settings missing from
// the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig into kartedit config directory.
func SaveConfig(cfg Config) error {
	return SaveConfigFile(ConfigPath(), cfg)
}

// SaveConfigFile writes cfg at path.
func SaveConfigFile(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}
