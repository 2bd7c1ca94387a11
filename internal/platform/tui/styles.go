package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the visual styles of the word-search screens.
type Styles struct {
	// Grid cells
	Cell         lipgloss.Style
	CellCursor   lipgloss.Style
	CellSelected lipgloss.Style
	CellFound    lipgloss.Style

	// HUD
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDWarning   lipgloss.Style
	HUDSeparator lipgloss.Style

	// Word list
	WordPending lipgloss.Style
	WordFound   lipgloss.Style

	// Overlays
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style

	// Menus
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
}

// DefaultStyles returns the default visual styles.
func DefaultStyles() Styles {
	return Styles{
		Cell:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CellCursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true),
		CellSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("51")),
		CellFound:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		WordPending: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		WordFound:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeStyles returns styles that rely on attributes instead of color.
func MonochromeStyles() Styles {
	s := DefaultStyles()
	s.CellCursor = lipgloss.NewStyle().Reverse(true).Bold(true)
	s.CellSelected = lipgloss.NewStyle().Underline(true).Bold(true)
	s.CellFound = lipgloss.NewStyle().Bold(true)
	s.HUDWarning = lipgloss.NewStyle().Bold(true).Blink(true)
	return s
}

// StylesByName returns the styles registered under name.
func StylesByName(name string) (Styles, bool) {
	switch name {
	case "", "default":
		return DefaultStyles(), true
	case "mono", "monochrome":
		return MonochromeStyles(), true
	}
	return Styles{}, false
}
