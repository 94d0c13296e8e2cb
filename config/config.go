package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/srlehn/sixelcat"
	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/resize"
	_ "github.com/srlehn/sixelcat/resize/bild"
	_ "github.com/srlehn/sixelcat/resize/gift"
	_ "github.com/srlehn/sixelcat/resize/imaging"
	_ "github.com/srlehn/sixelcat/resize/nfnt"
	_ "github.com/srlehn/sixelcat/resize/xdraw"
	"github.com/srlehn/sixelcat/sixel"
)

// EnvConfigPath names a config file that is read after all others.
const EnvConfigPath = `SIXELCAT_CONFIG`

type Config struct {
	Backend     string `koanf:"backend"`      // registered encoder backend, "go-sixel" or "img2sixel"
	Profile     string `koanf:"profile"`      // quantization profile name, e.g. "xterm256"
	Dither      *bool  `koanf:"dither"`       // error diffusion (default: true)
	MaxWidth    int    `koanf:"max_width"`    // downscale wider images, 0 = unlimited
	MaxHeight   int    `koanf:"max_height"`   // downscale taller images, 0 = unlimited
	Resizer     string `koanf:"resizer"`      // "nfnt", "gift", "imaging", "bild", "approx-bilinear", "catmull-rom"
	OutputLimit int    `koanf:"output_limit"` // max bytes of one encoded image, 0 = unlimited
	LogFile     string `koanf:"log_file"`
	LogLevel    string `koanf:"log_level"` // "debug", "info", "warn", "error" (default: "info")
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Backend:  consts.BackendDefaultName,
		Profile:  sixel.ProfileDefault.String(),
		Resizer:  resize.DefaultName,
		LogLevel: `info`,
	}
}

// Load reads all existing config files in order of priority (last wins)
// on top of the defaults.
func Load() (*Config, error) {
	return LoadFiles(configPaths()...)
}

// LoadFiles is Load with explicit paths. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Errorf(`config %s: %w`, path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal(``, cfg); err != nil {
		return nil, errors.New(err)
	}
	cfg.LogFile = expandPath(cfg.LogFile)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPaths() []string {
	var paths []string

	// 1. $XDG_CONFIG_HOME/sixelcat/config.toml, or in one of $XDG_CONFIG_DIRS
	if path, err := xdg.SearchConfigFile(filepath.Join(consts.LibraryName, `config.toml`)); err == nil {
		paths = append(paths, path)
	}

	// 2. ./sixelcat.toml
	paths = append(paths, consts.LibraryName+`.toml`)

	// 3. $SIXELCAT_CONFIG (highest priority)
	if path := os.Getenv(EnvConfigPath); len(path) > 0 {
		paths = append(paths, expandPath(path))
	}

	return paths
}

func expandPath(path string) string {
	if path != `` && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate checks the values that can be checked without side effects.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NilReceiver()
	}
	if _, err := sixel.ParseProfile(c.Profile); err != nil {
		return err
	}
	if _, err := sixel.Lookup(c.Backend); err != nil {
		return err
	}
	if _, err := resize.Lookup(c.Resizer); err != nil {
		return err
	}
	if c.MaxWidth < 0 || c.MaxHeight < 0 {
		return errors.Errorf(`negative size limit %dx%d`, c.MaxWidth, c.MaxHeight)
	}
	if c.OutputLimit < 0 {
		return errors.Errorf(`negative output limit %d`, c.OutputLimit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// DitherEnabled applies the default to the dither setting.
func (c *Config) DitherEnabled() bool {
	if c == nil || c.Dither == nil {
		return true
	}
	return *c.Dither
}

// Level parses the log level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c == nil || len(c.LogLevel) == 0 {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, errors.Errorf(`log level %q: %w`, c.LogLevel, err)
	}
	return lvl, nil
}

// ResizerImpl returns the configured resizer.
func (c *Config) ResizerImpl() (resize.Resizer, error) {
	if c == nil {
		return nil, errors.NilReceiver()
	}
	return resize.Lookup(c.Resizer)
}

// Options converts the configuration into encoder options.
func (c *Config) Options() (sixelcat.Options, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := sixel.ParseProfile(c.Profile)
	if err != nil {
		return nil, err
	}
	return sixelcat.Options{
		sixelcat.SetBackendName(c.Backend),
		sixelcat.SetProfile(p),
		sixelcat.SetDither(c.DitherEnabled()),
		sixelcat.SetOutputLimit(c.OutputLimit),
	}, nil
}
