package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/sixelcat/config"
	"github.com/srlehn/sixelcat/internal/errors"
)

// execute runs the root command in an isolated configuration environment.
func execute(t *testing.T, cfgContent string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(`XDG_CONFIG_HOME`, dir)
	t.Setenv(`XDG_CONFIG_DIRS`, dir)
	xdg.Reload()
	cfgPath := filepath.Join(dir, `test.toml`)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o644))
	t.Setenv(config.EnvConfigPath, cfgPath)

	debugFlag, silentFlag, logFileFlag, errReported = false, false, ``, false
	var stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stderr)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stderr.String(), err
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	path := filepath.Join(t.TempDir(), `two.png`)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestShowPrintsSixel(t *testing.T) {
	out, err := execute(t, ``, writePNG(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\033P"), `output: %q`, out)
	assert.True(t, strings.HasSuffix(out, "\033\\\n"), `output: %q`, out)
}

func TestShowMissingFile(t *testing.T) {
	out, err := execute(t, ``, filepath.Join(t.TempDir(), `missing.png`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDecodeFailed))
	assert.True(t, errReported)
	assert.NotContains(t, out, "\033P")
	assert.Contains(t, out, `missing.png`)
}

func TestShowNeedsOneArgument(t *testing.T) {
	out, err := execute(t, ``)
	require.Error(t, err)
	assert.False(t, errReported)
	assert.NotContains(t, out, "\033P")

	_, err = execute(t, ``, `a.png`, `b.png`)
	require.Error(t, err)
}

func TestShowInvalidConfig(t *testing.T) {
	out, err := execute(t, `profile = "sepia"`, writePNG(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProfileUnavailable))
	assert.NotContains(t, out, "\033P")
}

func TestShowOutputLimit(t *testing.T) {
	out, err := execute(t, `output_limit = 4`, writePNG(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEncodeFailed))
	assert.NotContains(t, out, "\033P")
}

func TestShowLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), `sixelcat.log`)
	_, err := execute(t, `log_level = "debug"`, `--log-file`, logFile, writePNG(t))
	require.NoError(t, err)
	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), `image printed`)
	assert.Contains(t, string(logged), `sixel encode`)
}

func TestShowSilent(t *testing.T) {
	out, err := execute(t, ``, `--silent`, filepath.Join(t.TempDir(), `missing.png`))
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestShowResizerFromConfig(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	path := filepath.Join(t.TempDir(), `wide.png`)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	full, err := execute(t, ``, path)
	require.NoError(t, err)

	logFile := filepath.Join(t.TempDir(), `sixelcat.log`)
	small, err := execute(t, "resizer = \"gift\"\nmax_width = 8\nlog_level = \"debug\"\n", `--log-file`, logFile, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(small, "\033P"), `output: %q`, small)
	assert.Less(t, len(small), len(full))
	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), `width=8`)
	assert.Contains(t, string(logged), `height=4`)

	_, err = execute(t, `resizer = "seam-carving"`, path)
	require.Error(t, err)
}
