package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"github.com/deweydb/dewey/internal/config"
)

func TestCompactTheme_ForcedVariant(t *testing.T) {
	dark := NewCompactTheme(config.ThemeDark).(*CompactTheme)
	light := NewCompactTheme(config.ThemeLight).(*CompactTheme)
	system := NewCompactTheme(config.ThemeSystem).(*CompactTheme)

	assert.Equal(t, theme.VariantDark, dark.Variant(theme.VariantLight))
	assert.Equal(t, theme.VariantLight, light.Variant(theme.VariantDark))
	assert.Equal(t, theme.VariantDark, system.Variant(theme.VariantDark))

	assert.Equal(t,
		dark.Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.NotEqual(t,
		dark.Color(theme.ColorNameBackground, theme.VariantLight),
		light.Color(theme.ColorNameBackground, theme.VariantLight))
}

func TestCompactTheme_Sizes(t *testing.T) {
	th := NewCompactTheme(config.ThemeSystem)
	assert.Equal(t, float32(3), th.Size(theme.SizeNamePadding))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameInputBorder), th.Size(theme.SizeNameInputBorder))
}
