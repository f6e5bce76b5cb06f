package termcolor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/commentmark/internal/colorutil"
	"github.com/phyten/commentmark/internal/token"
)

func TestHeaderStyle(t *testing.T) {
	s := HeaderStyle()
	assert.True(t, s.Bold)
	assert.True(t, s.Underline)
}

func TestCategoryStyleBasic(t *testing.T) {
	want := map[token.Category]int{
		token.CategoryError:   1,
		token.CategoryWarning: 3,
		token.CategoryInfo:    4,
		token.CategoryCustom1: 5,
		token.CategoryCustom2: 6,
		token.CategoryCustom3: 2,
	}
	for c, color := range want {
		s := CategoryStyle(c, SchemeDark, ProfileBasic8)
		require.NotNil(t, s.FGBasic, c.String())
		assert.Equal(t, color, *s.FGBasic, c.String())
		assert.Equal(t, c == token.CategoryError, s.Bold, c.String())
	}
	assert.Equal(t, Style{}, CategoryStyle(token.Category(42), SchemeDark, ProfileBasic8))
}

func TestCategoryStyleContrast(t *testing.T) {
	for _, scheme := range []Scheme{SchemeDark, SchemeLight} {
		for _, c := range token.Categories() {
			s := CategoryStyle(c, scheme, ProfileTrueColor)
			require.NotNil(t, s.FGTrue)
			rgb := *s.FGTrue
			ratio := colorutil.ContrastRatio(colorutil.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}, Background(scheme))
			assert.GreaterOrEqual(t, ratio, colorutil.MinContrast, "%s on scheme %d", c, scheme)

			s256 := CategoryStyle(c, scheme, ProfileANSI256)
			require.NotNil(t, s256.FG256)
			assert.GreaterOrEqual(t, *s256.FG256, 16)
			assert.LessOrEqual(t, *s256.FG256, 255)
		}
	}
}

func TestKeywordStyle(t *testing.T) {
	assert.False(t, KeywordStyle(false).Underline)
	assert.True(t, KeywordStyle(true).Underline)
	assert.True(t, KeywordStyle(true).Bold)
}

func TestRGBToANSI256(t *testing.T) {
	assert.Equal(t, 16, rgbToANSI256(0, 0, 0))
	assert.Equal(t, 231, rgbToANSI256(255, 255, 255))
	assert.Equal(t, 196, rgbToANSI256(255, 0, 0))
	assert.Equal(t, 46, rgbToANSI256(0, 255, 0))
}
