// Package theme provides the colour palettes of the TUI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colours used by the viewer.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // text drawn on Accent
	AccentDim lipgloss.Color // selected rows, pressed buttons
	Border    lipgloss.Color
	BorderDim lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	SuccessFg lipgloss.Color
	WarnFg    lipgloss.Color
	ErrorFg   lipgloss.Color
	Cyan      lipgloss.Color
}

// Theme names.
const (
	DraculaName         = "dracula"
	DraculaLightName    = "dracula-light"
	NordName            = "nord"
	GruvboxDarkName     = "gruvbox-dark"
	CatppuccinLatteName = "catppuccin-latte"
)

// Dracula is the default dark theme.
func Dracula() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"),
		AccentFg:  lipgloss.Color("#282A36"),
		AccentDim: lipgloss.Color("#44475A"),
		Border:    lipgloss.Color("#6272A4"),
		BorderDim: lipgloss.Color("#44475A"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		SuccessFg: lipgloss.Color("#50FA7B"),
		WarnFg:    lipgloss.Color("#FFB86C"),
		ErrorFg:   lipgloss.Color("#FF5555"),
		Cyan:      lipgloss.Color("#8BE9FD"),
	}
}

// DraculaLight is Dracula adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#c6dbe5"),
		AccentFg:  lipgloss.Color("#24292F"),
		AccentDim: lipgloss.Color("#F3E8FF"),
		Border:    lipgloss.Color("#D0D7DE"),
		BorderDim: lipgloss.Color("#E8E8E8"),
		MutedFg:   lipgloss.Color("#6E7781"),
		TextFg:    lipgloss.Color("#24292F"),
		SuccessFg: lipgloss.Color("#059669"),
		WarnFg:    lipgloss.Color("#D97706"),
		ErrorFg:   lipgloss.Color("#DC2626"),
		Cyan:      lipgloss.Color("#0891B2"),
	}
}

// Nord is an arctic, blue-tinted dark theme.
func Nord() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#88C0D0"),
		AccentFg:  lipgloss.Color("#2E3440"),
		AccentDim: lipgloss.Color("#3B4252"),
		Border:    lipgloss.Color("#4C566A"),
		BorderDim: lipgloss.Color("#3B4252"),
		MutedFg:   lipgloss.Color("#7B88A1"),
		TextFg:    lipgloss.Color("#ECEFF4"),
		SuccessFg: lipgloss.Color("#A3BE8C"),
		WarnFg:    lipgloss.Color("#EBCB8B"),
		ErrorFg:   lipgloss.Color("#BF616A"),
		Cyan:      lipgloss.Color("#8FBCBB"),
	}
}

// GruvboxDark is the retro groove dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#FABD2F"),
		AccentFg:  lipgloss.Color("#282828"),
		AccentDim: lipgloss.Color("#3C3836"),
		Border:    lipgloss.Color("#665C54"),
		BorderDim: lipgloss.Color("#504945"),
		MutedFg:   lipgloss.Color("#A89984"),
		TextFg:    lipgloss.Color("#EBDBB2"),
		SuccessFg: lipgloss.Color("#B8BB26"),
		WarnFg:    lipgloss.Color("#FE8019"),
		ErrorFg:   lipgloss.Color("#FB4934"),
		Cyan:      lipgloss.Color("#83A598"),
	}
}

// CatppuccinLatte is the light Catppuccin flavour.
func CatppuccinLatte() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#8839EF"),
		AccentFg:  lipgloss.Color("#EFF1F5"),
		AccentDim: lipgloss.Color("#DCE0E8"),
		Border:    lipgloss.Color("#BCC0CC"),
		BorderDim: lipgloss.Color("#CCD0DA"),
		MutedFg:   lipgloss.Color("#6C6F85"),
		TextFg:    lipgloss.Color("#4C4F69"),
		SuccessFg: lipgloss.Color("#40A02B"),
		WarnFg:    lipgloss.Color("#FE640B"),
		ErrorFg:   lipgloss.Color("#D20F39"),
		Cyan:      lipgloss.Color("#179299"),
	}
}

// GetTheme returns the theme called name, or Dracula if it is unknown.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaLightName:
		return DraculaLight()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	case CatppuccinLatteName:
		return CatppuccinLatte()
	default:
		return Dracula()
	}
}

// Normalize returns the canonical theme name, or "" when it is unsupported.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}

// IsLight reports whether the theme is meant for light backgrounds.
func IsLight(name string) bool {
	return name == DraculaLightName || name == CatppuccinLatteName
}

// Detect picks the default theme matching the terminal background.
func Detect() string {
	if lipgloss.HasDarkBackground() {
		return DraculaName
	}
	return DraculaLightName
}

// AvailableThemes returns the supported theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		DraculaLightName,
		NordName,
		GruvboxDarkName,
		CatppuccinLatteName,
	}
}
