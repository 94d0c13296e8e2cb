package sixel_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/sixel"
)

func TestProfileNames(t *testing.T) {
	for _, p := range sixel.Profiles() {
		parsed, err := sixel.ParseProfile(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	p, err := sixel.ParseProfile(` VT340_Color `)
	require.NoError(t, err)
	assert.Equal(t, sixel.ProfileVT340Color, p)

	_, err = sixel.ParseProfile(`sepia`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProfileUnavailable))

	assert.Equal(t, `profile(42)`, sixel.Profile(42).String())
	assert.Equal(t, 3, int(sixel.ProfileDefault), `default selector of libsixel's xterm256 dither`)
}

func TestPalettes(t *testing.T) {
	tests := []struct {
		profile sixel.Profile
		size    int
	}{
		{sixel.ProfileMonoDark, 2},
		{sixel.ProfileMonoLight, 2},
		{sixel.ProfileXTerm16, 16},
		{sixel.ProfileXTerm256, 249}, // 7 system colors repeat in the color cube
		{sixel.ProfileVT340Color, 16},
		{sixel.ProfileGray1, 2},
		{sixel.ProfileGray2, 4},
		{sixel.ProfileGray4, 16},
		{sixel.ProfileGray8, sixel.MaxPaletteColors}, // one register is reserved
	}
	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			pal := tt.profile.Palette()
			assert.Len(t, pal, tt.size)
			assert.LessOrEqual(t, len(pal), sixel.MaxPaletteColors)
			seen := make(map[color.RGBA]bool)
			for _, c := range pal {
				k := color.RGBAModel.Convert(c).(color.RGBA)
				assert.False(t, seen[k], `duplicate color %v`, k)
				seen[k] = true
			}
		})
	}
	assert.Nil(t, sixel.ProfileAdaptive.Palette())
	assert.NotEmpty(t, sixel.ProfileVT340Mono.Palette())
	assert.LessOrEqual(t, len(sixel.ProfileVT340Mono.Palette()), 16)
}

func TestDitherRelease(t *testing.T) {
	d, err := sixel.NewDither(sixel.ProfileXTerm16, true)
	require.NoError(t, err)
	assert.Equal(t, sixel.ProfileXTerm16, d.Profile())
	assert.True(t, d.Diffuse())
	assert.False(t, sixel.Released(d))
	require.NoError(t, d.Release())
	assert.True(t, sixel.Released(d))
	assert.Error(t, d.Release(), `double release`)

	_, err = sixel.NewDither(sixel.Profile(-1), false)
	assert.True(t, errors.Is(err, errors.ErrProfileUnavailable))
}

func TestOutputForwardsChunks(t *testing.T) {
	var got []string
	out, err := sixel.NewOutput(func(chunk []byte) error {
		got = append(got, string(chunk))
		return nil
	})
	require.NoError(t, err)
	for _, c := range []string{`C1`, `C2`, `C3`} {
		n, err := out.Write([]byte(c))
		require.NoError(t, err)
		assert.Equal(t, len(c), n)
	}
	assert.Equal(t, []string{`C1`, `C2`, `C3`}, got)
	assert.Equal(t, 6, sixel.Written(out))
	assert.NoError(t, out.Err())

	require.NoError(t, out.Release())
	_, err = out.Write([]byte(`C4`))
	assert.Error(t, err, `write after release`)
	assert.Len(t, got, 3)
}

func TestOutputKeepsFirstFailure(t *testing.T) {
	errFull := errors.New(`full`)
	calls := 0
	out, err := sixel.NewOutput(func([]byte) error {
		calls++
		return errFull
	})
	require.NoError(t, err)
	n, err := out.Write([]byte(`abc`))
	assert.Zero(t, n)
	assert.True(t, errors.Is(err, errFull))
	_, err = out.Write([]byte(`def`))
	assert.True(t, errors.Is(err, errFull))
	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(out.Err(), errFull))
}

func TestOutputNilFunc(t *testing.T) {
	_, err := sixel.NewOutput(nil)
	assert.Error(t, err)
}

type namedBackend struct {
	sixel.Backend
	name string
}

func (b *namedBackend) Name() string { return b.name }

func TestRegistry(t *testing.T) {
	sixel.Register(&namedBackend{name: `test-registry`})
	b, err := sixel.Lookup(`test-registry`)
	require.NoError(t, err)
	assert.Equal(t, `test-registry`, b.Name())
	assert.Contains(t, sixel.Names(), `test-registry`)

	_, err = sixel.Lookup(`does-not-exist`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownBackend))
}
