package sixel

import (
	"image/color"
	"strconv"
	"strings"
	"sync"

	"github.com/srlehn/sixelcat/internal/consts"
	"github.com/srlehn/sixelcat/internal/errors"
)

// Profile selects a fixed color reduction strategy.
// The numeric values follow the libsixel built-in dither selectors.
type Profile int

const (
	ProfileMonoDark Profile = iota
	ProfileMonoLight
	ProfileXTerm16
	ProfileXTerm256
	ProfileVT340Mono
	ProfileVT340Color
	ProfileGray1
	ProfileGray2
	ProfileGray4
	ProfileGray8
	// ProfileAdaptive computes a median cut palette from the image itself.
	ProfileAdaptive

	ProfileDefault = ProfileXTerm256
)

var profileNames = [...]string{
	ProfileMonoDark:   `mono-dark`,
	ProfileMonoLight:  `mono-light`,
	ProfileXTerm16:    `xterm16`,
	ProfileXTerm256:   `xterm256`,
	ProfileVT340Mono:  `vt340-mono`,
	ProfileVT340Color: `vt340-color`,
	ProfileGray1:      `gray1`,
	ProfileGray2:      `gray2`,
	ProfileGray4:      `gray4`,
	ProfileGray8:      `gray8`,
	ProfileAdaptive:   `adaptive`,
}

func (p Profile) String() string {
	if !p.Valid() {
		return `profile(` + strconv.Itoa(int(p)) + `)`
	}
	return profileNames[p]
}

func (p Profile) Valid() bool { return p >= 0 && int(p) < len(profileNames) }

// ParseProfile accepts the profile names, case-insensitive, and "_" in place of "-".
func ParseProfile(s string) (Profile, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), `_`, `-`)
	for p, n := range profileNames {
		if n == name {
			return Profile(p), nil
		}
	}
	return 0, errors.Kind(errors.ErrProfileUnavailable, errors.Errorf(`unknown quantization profile %q`, s))
}

// Profiles lists all profiles in selector order.
func Profiles() []Profile {
	ps := make([]Profile, len(profileNames))
	for i := range ps {
		ps[i] = Profile(i)
	}
	return ps
}

var (
	palettesOnce sync.Once
	palettes     map[Profile]color.Palette
)

// Palette returns the fixed palette of the profile, nil for ProfileAdaptive.
// Duplicate colors are removed. The returned palette must not be modified.
func (p Profile) Palette() color.Palette {
	palettesOnce.Do(initPalettes)
	return palettes[p]
}

func initPalettes() {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	palettes = map[Profile]color.Palette{
		ProfileMonoDark:   {black, white},
		ProfileMonoLight:  {white, black},
		ProfileXTerm16:    dedupe(xterm16()),
		ProfileXTerm256:   dedupe(xterm256()),
		ProfileVT340Mono:  dedupe(grayscale(vt340Color())),
		ProfileVT340Color: dedupe(vt340Color()),
		ProfileGray1:      grayLevels(1),
		ProfileGray2:      grayLevels(2),
		ProfileGray4:      grayLevels(4),
		ProfileGray8:      grayLevels(8),
	}
}

// MaxPaletteColors is the largest fixed palette.
// Encoders reserve one more color register and terminals accept 256.
const MaxPaletteColors = 255

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

// xterm's default system colors
func xterm16() color.Palette {
	return color.Palette{
		rgb(0x00, 0x00, 0x00), rgb(0xcd, 0x00, 0x00), rgb(0x00, 0xcd, 0x00), rgb(0xcd, 0xcd, 0x00),
		rgb(0x00, 0x00, 0xee), rgb(0xcd, 0x00, 0xcd), rgb(0x00, 0xcd, 0xcd), rgb(0xe5, 0xe5, 0xe5),
		rgb(0x7f, 0x7f, 0x7f), rgb(0xff, 0x00, 0x00), rgb(0x00, 0xff, 0x00), rgb(0xff, 0xff, 0x00),
		rgb(0x5c, 0x5c, 0xff), rgb(0xff, 0x00, 0xff), rgb(0x00, 0xff, 0xff), rgb(0xff, 0xff, 0xff),
	}
}

// system colors, 6x6x6 color cube, 24 step gray ramp
func xterm256() color.Palette {
	pal := xterm16()
	levels := [6]uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				pal = append(pal, rgb(r, g, b))
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		pal = append(pal, rgb(v, v, v))
	}
	return pal
}

// VT340 power-up color map, given in percent
func vt340Color() color.Palette {
	pct := [16][3]int{
		{0, 0, 0}, {20, 20, 80}, {80, 13, 13}, {20, 80, 20},
		{80, 20, 80}, {20, 80, 80}, {80, 80, 20}, {53, 53, 53},
		{26, 26, 26}, {33, 33, 60}, {60, 26, 26}, {33, 60, 33},
		{60, 33, 60}, {33, 60, 60}, {60, 60, 33}, {80, 80, 80},
	}
	pal := make(color.Palette, 0, len(pct))
	for _, c := range pct {
		pal = append(pal, rgb(pctByte(c[0]), pctByte(c[1]), pctByte(c[2])))
	}
	return pal
}

func pctByte(p int) uint8 { return uint8((p*255 + 50) / 100) }

func grayscale(pal color.Palette) color.Palette {
	ret := make(color.Palette, 0, len(pal))
	for _, c := range pal {
		g := color.GrayModel.Convert(c).(color.Gray)
		ret = append(ret, rgb(g.Y, g.Y, g.Y))
	}
	return ret
}

// 2^bits evenly spaced gray levels from black to white
func grayLevels(bits int) color.Palette {
	n := min(1<<bits, MaxPaletteColors)
	pal := make(color.Palette, 0, n)
	for i := 0; i < n; i++ {
		v := uint8(i * 255 / (n - 1))
		pal = append(pal, rgb(v, v, v))
	}
	return pal
}

// dedupe keeps the first occurrence of every color
func dedupe(pal color.Palette) color.Palette {
	seen := make(map[color.RGBA]struct{}, len(pal))
	ret := make(color.Palette, 0, len(pal))
	for _, c := range pal {
		k := color.RGBAModel.Convert(c).(color.RGBA)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ret = append(ret, c)
	}
	return ret
}

var _ Dither = (*dither)(nil)

type dither struct {
	mu       sync.Mutex
	profile  Profile
	diffuse  bool
	released bool
}

// NewDither returns a quantization handle for p.
func NewDither(p Profile, diffuse bool) (Dither, error) {
	if !p.Valid() {
		return nil, errors.Kind(errors.ErrProfileUnavailable, errors.Errorf(`invalid profile selector %d`, int(p)))
	}
	return &dither{profile: p, diffuse: diffuse}, nil
}

func (d *dither) Profile() Profile { return d.profile }
func (d *dither) Diffuse() bool    { return d.diffuse }

func (d *dither) Release() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return errors.New(consts.ErrReleased)
	}
	d.released = true
	return nil
}

// Released reports whether a Dither created by NewDither was released.
func Released(d Dither) bool {
	dt, ok := d.(*dither)
	if !ok || dt == nil {
		return false
	}
	dt.mu.Lock()
	defer dt.mu.Unlock()
	return dt.released
}
