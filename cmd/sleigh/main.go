// sleigh runs Sleigh Run, an endless sleigh runner, in the terminal.
//
// Usage:
//
//	sleigh list               - List ability variants
//	sleigh play [variant]     - Play a variant
//	sleigh menu               - Interactive menu with scores and goals
//	sleigh sim                - Headless deterministic run
//	sleigh scores [variant]   - Show best runs
//	sleigh goals              - Show goal progress and unlocks
//	sleigh serve              - Start the SSH server
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Database path (default: ~/.sleigh/scores.db)
//	--config <path>       - Runner config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--player <name>       - Name for scores and goals
//	--verbose             - Debug logging
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sleigh-run/internal/config"
	"github.com/vovakirdan/sleigh-run/internal/games/sleigh"
	"github.com/vovakirdan/sleigh-run/internal/goals"
	"github.com/vovakirdan/sleigh-run/internal/registry"
	"github.com/vovakirdan/sleigh-run/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagVerbose    bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sleigh",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sleigh",
	Short: "Sleigh Run - dodge rooftops and deliver presents in your terminal",
	Long: `Sleigh Run is an endless runner: steer the sleigh past chimneys,
snowmen, trees and clouds, pick up presents and power-ups, choose a
branch at every fork and survive snowstorms.

Each variant gives the sleigh one ability: dash, shield or slow time.

Examples:
  sleigh list
  sleigh play dash
  sleigh menu
  sleigh sim --frames 3600 --seed 42 --auto-ability
  sleigh serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sleigh/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for scores and goals (default: current user)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup validates global flags and hands them to the game package.
func setup(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
	}

	sleigh.SetConfigPath(flagConfig)
	sleigh.SetDifficultyPreset(flagDifficulty)
	sleigh.SetLogger(logger)
	return nil
}

// playerName returns --player or the OS user.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}

// resolveVariant accepts a full id ("sleigh-dash") or an ability ("dash").
func resolveVariant(arg string) (string, error) {
	if registry.Exists(arg) {
		return arg, nil
	}
	if id := "sleigh-" + strings.ToLower(arg); registry.Exists(id) {
		return id, nil
	}
	return "", fmt.Errorf("unknown variant %q, run 'sleigh list' to see variants", arg)
}

// openStore opens the scores database. Failure is reported and the caller
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "err", err)
		return nil
	}
	return store
}

// progressStore keeps a nil store from becoming a non-nil interface.
func progressStore(store *storage.Store) goals.ProgressStore {
	if store == nil {
		return nil
	}
	return store
}

// tuiLogger returns a logger that does not draw over the alternate screen:
// debug output goes to ~/.sleigh/sleigh.log, everything else is dropped.
func tuiLogger() (*log.Logger, func()) {
	quiet := log.New(io.Discard)
	if !flagVerbose {
		return quiet, func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return quiet, func() {}
	}
	path := filepath.Join(home, ".sleigh", "sleigh.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return quiet, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return quiet, func() {}
	}

	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "sleigh", Level: log.DebugLevel})
	return l, func() { f.Close() }
}
