package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorInk     = lipgloss.Color("#E5E9F0")
	ColorDim     = lipgloss.Color("#7A8291")
	ColorAccent  = lipgloss.Color("#88C0D0")
	ColorSuccess = lipgloss.Color("#A3BE8C")
	ColorWarn    = lipgloss.Color("#EBCB8B")
	ColorFail    = lipgloss.Color("#BF616A")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorInk)
	dimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle    = lipgloss.NewStyle().Foreground(ColorFail)
	promptStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

// Title renders a bold accent heading.
func Title(s string) string { return titleStyle.Render(s) }

// Header renders a per-image heading.
func Header(s string) string { return headerStyle.Render(s) }

// Dim renders secondary detail text.
func Dim(s string) string { return dimStyle.Render(s) }

// Success renders a completed-step line.
func Success(s string) string { return successStyle.Render(s) }

// Warn renders a non-fatal warning line.
func Warn(s string) string { return warnStyle.Render(s) }

// Fail renders a failure line.
func Fail(s string) string { return failStyle.Render(s) }
