// Package tui runs Sleigh Run in a terminal with Bubble Tea: the fixed-rate
// tick loop, key mapping, screen rendering, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sleigh-run/internal/core"
)

// TickMsg advances the running game by one frame.
type TickMsg time.Time

// tickCmd schedules the next frame of cfg.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}
