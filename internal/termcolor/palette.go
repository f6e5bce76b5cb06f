package termcolor

import (
	"github.com/phyten/commentmark/internal/colorutil"
	"github.com/phyten/commentmark/internal/token"
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// KeywordStyle marks keyword items; keywords of a method declaration are
// underlined as well.
func KeywordStyle(methodModifier bool) Style {
	magenta := 5
	return Style{Bold: true, Underline: methodModifier, FGBasic: &magenta}
}

func DimStyle() Style {
	return Style{Dim: true}
}

type categoryColor struct {
	basic int
	rgb   colorutil.RGB
}

var categoryColors = map[token.Category]categoryColor{
	token.CategoryError:   {basic: 1, rgb: colorutil.RGB{R: 239, G: 68, B: 68}},
	token.CategoryWarning: {basic: 3, rgb: colorutil.RGB{R: 245, G: 158, B: 11}},
	token.CategoryInfo:    {basic: 4, rgb: colorutil.RGB{R: 59, G: 130, B: 246}},
	token.CategoryCustom1: {basic: 5, rgb: colorutil.RGB{R: 168, G: 85, B: 247}},
	token.CategoryCustom2: {basic: 6, rgb: colorutil.RGB{R: 20, G: 184, B: 166}},
	token.CategoryCustom3: {basic: 2, rgb: colorutil.RGB{R: 34, G: 197, B: 94}},
}

// Background assumed for each scheme when checking contrast.
var (
	darkBackground  = colorutil.RGB{R: 17, G: 24, B: 39}
	lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}
)

func Background(scheme Scheme) colorutil.RGB {
	if scheme == SchemeLight {
		return lightBackground
	}
	return darkBackground
}

// CategoryStyle colors a highlight by category. 256-color and truecolor
// profiles are adjusted to stay readable on the scheme's background; the
// basic profile uses the terminal's own palette. Unknown categories get no
// color.
func CategoryStyle(c token.Category, scheme Scheme, profile Profile) Style {
	cc, ok := categoryColors[c]
	if !ok {
		return Style{}
	}
	bold := c == token.CategoryError
	switch profile {
	case ProfileTrueColor:
		rgb := colorutil.EnsureContrast(cc.rgb, Background(scheme), colorutil.MinContrast).Array()
		return Style{Bold: bold, FGTrue: &rgb}
	case ProfileANSI256:
		rgb := colorutil.EnsureContrast(cc.rgb, Background(scheme), colorutil.MinContrast)
		idx := rgbToANSI256(rgb.R, rgb.G, rgb.B)
		return Style{Bold: bold, FG256: &idx}
	default:
		basic := cc.basic
		return Style{Bold: bold, FGBasic: &basic}
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
