package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sleigh-run/internal/core"
	"github.com/vovakirdan/sleigh-run/internal/games/sleigh"
	"github.com/vovakirdan/sleigh-run/internal/goals"
	"github.com/vovakirdan/sleigh-run/internal/registry"
	"github.com/vovakirdan/sleigh-run/internal/storage"
)

// sleighGame is the optional surface a registered game exposes for goals
// and cosmetics.
type sleighGame interface {
	Subscribe(fn func(sleigh.Event))
	SetCosmetics(c sleigh.Cosmetics)
}

// toast is a short message shared between the model copies Bubble Tea
// passes around.
type toast struct {
	text string
	ttl  int
}

// GameModel runs one game with a fixed tick loop.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	tracker    *goals.Tracker
	player     string
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	toast      *toast
	detach     func()
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a game model. store and tracker may be nil.
func NewGameModel(game registry.Game, store *storage.Store, tracker *goals.Tracker, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	cfg = cfg.WithDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		tracker:    tracker,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		toast:      &toast{},
	}
	if tracker != nil {
		m.player = tracker.Player()
		if sg, ok := game.(sleighGame); ok {
			sg.Subscribe(tracker.Observe)
			sg.SetCosmetics(tracker.Cosmetics())
		}
		t := m.toast
		m.detach = tracker.OnUnlock(func(u goals.Unlock) {
			t.text = fmt.Sprintf("Unlocked %s: %s", u.Category, u.Item)
			t.ttl = cfg.Frames(3 * time.Second)
		})
	}
	return m
}

// Init starts the first run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// The canvas is scaled to the terminal, so a resize keeps the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}
	return m, nil
}

// handleTick advances the game by one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		if sg, ok := m.game.(sleighGame); ok && m.tracker != nil {
			sg.SetCosmetics(m.tracker.Cosmetics())
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}
	if m.toast.ttl > 0 {
		m.toast.ttl--
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config)
}

// saveScore stores a finished run. Failures are logged only.
func (m GameModel) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.player, m.gameState.Score); err != nil {
		m.logger.Error("cannot save score", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".sleigh", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.toast.ttl > 0 && m.toast.text != "" && m.screen.Height() > 2 {
		m.screen.DrawTextColored(1, m.screen.Height()-2, " "+m.toast.text+" ", core.ColorGold)
	}
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to leave the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the latest game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Close stops the model's unlock toasts. The tracker outlives the model in
// an SSH session.
func (m GameModel) Close() {
	if m.detach != nil {
		m.detach()
	}
}

// Run plays game in the local terminal until the user quits.
func Run(game registry.Game, store *storage.Store, tracker *goals.Tracker, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, tracker, cfg, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
