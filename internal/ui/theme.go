package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Isekai theme (CLI + TUI).
// Reusable styles and the icons the system speaks in.

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconFailed  = "💀"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
	IconScroll  = "📜"
	IconBoss    = "⚔️"
	IconCurse   = "🔥"
	IconBuff    = "🟢"
	IconDebuff  = "🔻"
	IconDark    = "🌑"
	IconMind    = "🧠"
	IconWorld   = "🌍"
	IconBackup  = "💾"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "completed":
		return Good.Render("completed")
	case "failed":
		return Bad.Render("failed")
	case "pending":
		return Warn.Render("pending")
	default:
		return Muted.Render(status)
	}
}

// EffectIcon picks the icon for an effect by its icon tag, falling back to its kind.
func EffectIcon(icon, kind string) string {
	switch icon {
	case "curse":
		return IconCurse
	case "boss":
		return IconBoss
	case "world":
		return IconWorld
	}
	if kind == "debuff" {
		return IconDebuff
	}
	return IconBuff
}

// Signed renders a delta with an explicit sign, colored by direction.
func Signed(v int) string {
	switch {
	case v > 0:
		return Good.Render(fmt.Sprintf("+%d", v))
	case v < 0:
		return Bad.Render(fmt.Sprintf("%d", v))
	default:
		return Muted.Render("0")
	}
}

// Meter renders value/max as a fixed-width bar.
func Meter(value, max, width int) string {
	if max <= 0 {
		max = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	filled := value * width / max
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
