// Package color resolves the colors used to paint nodes and edges.
//
// Colors are plain strings as they appear in the SVG output: either an SVG
// color keyword ("red", "dodgerblue") or a hex triplet ("#1e90ff", "#f00").
// Keywords are looked up in [colornames.Map]; arithmetic (the score colormap
// and membership blending) goes through go-colorful.
package color

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/graphsvg/pkg/attr"
	"github.com/matzehuels/graphsvg/pkg/errors"
)

// DefaultPalette is the categorical palette used for node and edge labels
// when no label colors are supplied.
var DefaultPalette = []string{
	"dodgerblue", "lime", "orange", "red", "purple", "yellow", "fuchsia",
	"olive", "aqua", "black", "silver", "blue", "gray", "green", "maroon",
	"navy", "teal",
}

// MaxPaletteSize bounds the palette a sparse label color mapping may grow.
const MaxPaletteSize = 256

// Coolwarm endpoints and midpoint, as sRGB.
var (
	coolwarmLow  = colorful.Color{R: 59.0 / 255, G: 76.0 / 255, B: 192.0 / 255}
	coolwarmMid  = colorful.Color{R: 221.0 / 255, G: 221.0 / 255, B: 221.0 / 255}
	coolwarmHigh = colorful.Color{R: 180.0 / 255, G: 4.0 / 255, B: 38.0 / 255}
)

// Parse converts an SVG keyword or hex string into a color.
func Parse(s string) (colorful.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidAttribute, err, "malformed color %q", s)
		}
		return c, nil
	}
	if rgba, ok := colornames.Map[name]; ok {
		c, _ := colorful.MakeColor(rgba)
		return c, nil
	}
	return colorful.Color{}, errors.New(errors.ErrCodeInvalidAttribute, "unknown color %q", s)
}

// Validate reports INVALID_ATTRIBUTE when s is not a usable color.
func Validate(name, s string) error {
	if _, err := Parse(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAttribute, err, "%s", name)
	}
	return nil
}

// Palette builds the label palette from optional label colors.
//
// An absent attribute yields [DefaultPalette]. A dense attribute replaces the
// palette with its values in order. A sparse attribute overrides individual
// entries of the default palette; keys beyond its end extend it, cycling the
// defaults for the gap. Keys must be below [MaxPaletteSize].
func Palette(labelColors attr.Attribute[string]) ([]string, error) {
	var palette []string
	switch labelColors.Kind() {
	case attr.KindDense:
		palette = append(palette, labelColors.Values()...)
		if len(palette) == 0 {
			palette = append(palette, DefaultPalette...)
		}
	case attr.KindSparse:
		palette = append(palette, DefaultPalette...)
		for k, v := range labelColors.Mapping() {
			if k < 0 {
				return nil, errors.New(errors.ErrCodeInvalidIndex, "label_colors: negative label %d", k)
			}
			if k >= MaxPaletteSize {
				return nil, errors.New(errors.ErrCodeInvalidIndex, "label_colors: label %d exceeds palette limit %d", k, MaxPaletteSize)
			}
			for len(palette) <= k {
				palette = append(palette, DefaultPalette[len(palette)%len(DefaultPalette)])
			}
			palette[k] = v
		}
	default:
		palette = append(palette, DefaultPalette...)
	}

	for _, c := range palette {
		if err := Validate("label_colors", c); err != nil {
			return nil, err
		}
	}
	return palette, nil
}

// ForLabel picks the palette entry for a label, wrapping around the palette.
// Negative labels wrap from the end.
func ForLabel(palette []string, label int) string {
	n := len(palette)
	return palette[((label%n)+n)%n]
}

// Coolwarm maps t in [0, 1] onto a diverging blue-grey-red colormap and
// returns a hex color. Values outside the range are clamped.
func Coolwarm(t float64) string {
	if math.IsNaN(t) {
		t = 0.5
	}
	t = max(0, min(1, t))
	if t < 0.5 {
		return coolwarmLow.BlendLab(coolwarmMid, t*2).Clamped().Hex()
	}
	return coolwarmMid.BlendLab(coolwarmHigh, (t-0.5)*2).Clamped().Hex()
}

// Blend mixes colors in sRGB space, weighting each by the matching weight.
// It returns ok=false when the weights sum to zero.
func Blend(colors []string, weights []float64) (string, bool, error) {
	var r, g, b, total float64
	for k, w := range weights {
		if w == 0 {
			continue
		}
		c, err := Parse(colors[k%len(colors)])
		if err != nil {
			return "", false, err
		}
		r += w * c.R
		g += w * c.G
		b += w * c.B
		total += w
	}
	if total == 0 {
		return "", false, nil
	}
	mixed := colorful.Color{R: r / total, G: g / total, B: b / total}
	return mixed.Clamped().Hex(), true, nil
}
