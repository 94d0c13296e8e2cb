package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/sixelcat"
	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/sixel"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), `config.toml`)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFilesDefaults(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), `missing.toml`))
	require.NoError(t, err)
	assert.Equal(t, `go-sixel`, cfg.Backend)
	assert.Equal(t, `xterm256`, cfg.Profile)
	assert.True(t, cfg.DitherEnabled())
	assert.Zero(t, cfg.MaxWidth)
	assert.Zero(t, cfg.OutputLimit)
	assert.Equal(t, `nfnt`, cfg.Resizer)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadFilesValues(t *testing.T) {
	path := writeConfig(t, `
backend = "img2sixel"
profile = "vt340-color"
dither = false
max_width = 640
max_height = 480
resizer = "catmull-rom"
output_limit = 1048576
log_level = "debug"
log_file = "~/sixelcat.log"
`)
	cfg, err := LoadFiles(path)
	require.NoError(t, err)
	assert.Equal(t, `img2sixel`, cfg.Backend)
	assert.Equal(t, `vt340-color`, cfg.Profile)
	assert.False(t, cfg.DitherEnabled())
	assert.Equal(t, 640, cfg.MaxWidth)
	assert.Equal(t, 480, cfg.MaxHeight)
	rsz, err := cfg.ResizerImpl()
	require.NoError(t, err)
	assert.Equal(t, `catmull-rom`, rsz.Name())
	assert.Equal(t, 1048576, cfg.OutputLimit)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, `sixelcat.log`), cfg.LogFile)
	}
}

func TestLoadFilesLastWins(t *testing.T) {
	first := writeConfig(t, "profile = \"gray4\"\nmax_width = 100\n")
	second := writeConfig(t, "profile = \"xterm16\"\n")
	cfg, err := LoadFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, `xterm16`, cfg.Profile)
	assert.Equal(t, 100, cfg.MaxWidth)
}

func TestLoadFilesInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    error
	}{
		{name: `unknown profile`, content: `profile = "sepia"`, kind: errors.ErrProfileUnavailable},
		{name: `unknown backend`, content: `backend = "libsixel-ffi"`, kind: errors.ErrUnknownBackend},
		{name: `unknown resizer`, content: `resizer = "seam-carving"`},
		{name: `negative width`, content: `max_width = -1`},
		{name: `negative limit`, content: `output_limit = -5`},
		{name: `bad log level`, content: `log_level = "chatty"`},
		{name: `broken toml`, content: `profile = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFiles(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.kind != nil {
				assert.True(t, errors.Is(err, tt.kind), err.Error())
			}
		})
	}
}

func TestConfigPathsEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, `/tmp/custom-sixelcat.toml`)
	paths := configPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, `/tmp/custom-sixelcat.toml`, paths[len(paths)-1])
	assert.Contains(t, paths, `sixelcat.toml`)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Profile = `gray2`
	no := false
	cfg.Dither = &no
	opts, err := cfg.Options()
	require.NoError(t, err)

	enc, err := sixelcat.New(opts...)
	require.NoError(t, err)
	assert.Equal(t, sixel.ProfileGray2, enc.Profile())
	assert.Equal(t, `go-sixel`, enc.Backend().Name())

	cfg.Profile = `nope`
	_, err = cfg.Options()
	assert.Error(t, err)
}
