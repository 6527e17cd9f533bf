package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	catppuccin "github.com/catppuccin/go"
)

// Theme holds the styles the deal browser renders with, grouped by the
// part of the screen that uses them.
type Theme struct {
	// Text
	Normal      lipgloss.Style
	DimText     lipgloss.Style
	HintText    lipgloss.Style
	BoldOnly    lipgloss.Style
	BoldPrimary lipgloss.Style
	PrimaryFg   lipgloss.Style

	// Coupon cards
	Selected  lipgloss.Style
	CodeBadge lipgloss.Style
	DealBadge lipgloss.Style
	Discount  lipgloss.Style
	Verified  lipgloss.Style
	Expired   lipgloss.Style

	// Merchant sidebar
	Featured lipgloss.Style

	// Page chrome
	Hero        lipgloss.Style
	Notice      lipgloss.Style
	ErrorBanner lipgloss.Style
	Rule        lipgloss.Style
	StatusBar   lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	HelpOverlay lipgloss.Style
	MenuTitle   lipgloss.Style

	ChromaStyleName string
}

var activeTheme = ThemeDark()

// SetTheme sets the active global theme.
func SetTheme(t Theme) { activeTheme = t }

// ThemeDark returns the dark theme (Catppuccin Mocha palette).
func ThemeDark() Theme { return newTheme(catppuccin.Mocha, true) }

// ThemeLight returns the light theme (Catppuccin Latte palette).
func ThemeLight() Theme { return newTheme(catppuccin.Latte, false) }

// ThemeForBackground returns the appropriate theme for the terminal background.
func ThemeForBackground(isDark bool) Theme {
	if isDark {
		return ThemeDark()
	}
	return ThemeLight()
}

// palette names the catppuccin tokens by what they color in dealit.
type palette struct {
	brand    color.Color // links, keys, the hero and the selection marker
	discount color.Color
	verified color.Color
	notice   color.Color
	danger   color.Color
	codeBg   color.Color
	titleBg  color.Color
	ink      color.Color // text drawn on a filled badge or banner

	text    color.Color
	dim     color.Color
	hint    color.Color
	rule    color.Color
	surface color.Color
	bar     color.Color
}

// paletteFor maps one flavor. Light terminals swap the dim and hint tokens
// so secondary text keeps its contrast on an inherited light background.
func paletteFor(flavor catppuccin.Flavor, isDark bool) palette {
	p := palette{
		brand:    lipgloss.Color(flavor.Sapphire().Hex),
		discount: lipgloss.Color(flavor.Yellow().Hex),
		verified: lipgloss.Color(flavor.Green().Hex),
		notice:   lipgloss.Color(flavor.Peach().Hex),
		danger:   lipgloss.Color(flavor.Red().Hex),
		codeBg:   lipgloss.Color(flavor.Teal().Hex),
		titleBg:  lipgloss.Color(flavor.Mauve().Hex),
		ink:      lipgloss.Color(flavor.Crust().Hex),

		text:    lipgloss.Color(flavor.Text().Hex),
		dim:     lipgloss.Color(flavor.Overlay1().Hex),
		hint:    lipgloss.Color(flavor.Subtext0().Hex),
		rule:    lipgloss.Color(flavor.Overlay0().Hex),
		surface: lipgloss.Color(flavor.Surface0().Hex),
		bar:     lipgloss.Color(flavor.Mantle().Hex),
	}
	if !isDark {
		p.dim, p.hint = p.hint, p.dim
	}
	return p
}

// filled is a bold label on a solid background, used for badges and
// banners.
func filled(bg, fg color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(fg).Background(bg).Padding(0, 1)
}

func newTheme(flavor catppuccin.Flavor, isDark bool) Theme {
	p := paletteFor(flavor, isDark)
	fg := func(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	t := Theme{
		Normal:      fg(p.text),
		DimText:     fg(p.dim),
		HintText:    fg(p.hint),
		BoldOnly:    lipgloss.NewStyle().Bold(true),
		BoldPrimary: fg(p.brand).Bold(true),
		PrimaryFg:   fg(p.brand),

		Selected:  lipgloss.NewStyle().Background(p.surface).Foreground(p.text).Bold(true),
		CodeBadge: filled(p.codeBg, p.ink),
		DealBadge: fg(p.verified).Border(lipgloss.NormalBorder(), false, true).BorderForeground(p.verified),
		Discount:  fg(p.discount).Bold(true),
		Verified:  fg(p.verified),
		Expired:   fg(p.danger).Strikethrough(true),

		Featured: fg(p.discount),

		Hero:        filled(p.brand, p.ink),
		Notice:      fg(p.notice),
		ErrorBanner: filled(p.danger, p.ink),
		Rule:        fg(p.rule),
		StatusBar:   lipgloss.NewStyle().Background(p.bar).Foreground(p.text).Padding(0, 1),
		ActiveTab:   fg(p.brand).Bold(true).Underline(true),
		InactiveTab: fg(p.dim),
		HelpOverlay: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.brand).Padding(1, 2),
		MenuTitle:   filled(p.titleBg, p.ink),

		ChromaStyleName: "catppuccin-mocha",
	}
	if !isDark {
		t.ChromaStyleName = "catppuccin-latte"
	}
	return t
}
