// Package goals tracks long-term run goals and the cosmetics they unlock.
// A Tracker is scoped to one player and is fed simulation events.
package goals

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sleigh-run/internal/core"
	"github.com/vovakirdan/sleigh-run/internal/games/sleigh"
)

// Category groups unlockable cosmetics.
type Category string

const (
	CategorySleighColor Category = "sleigh_color"
	CategoryHat         Category = "hat"
	CategoryBackground  Category = "background"
)

// Categories lists every cosmetic category in display order.
var Categories = []Category{CategorySleighColor, CategoryHat, CategoryBackground}

// DefaultItem is always unlocked in every category.
const DefaultItem = "default"

// Unlock is a single cosmetic item.
type Unlock struct {
	Category Category
	Item     string
}

// Goal describes one target and its reward.
type Goal struct {
	ID     string
	Name   string
	Target int
	Reward Unlock
}

// Catalog is the fixed set of goals.
var Catalog = []Goal{
	{ID: "deliver10", Name: "Deliver 10 Gifts", Target: 10, Reward: Unlock{CategorySleighColor, "gold"}},
	{ID: "surviveSnowstorm", Name: "Survive a Snowstorm", Target: 1, Reward: Unlock{CategoryHat, "elf"}},
	{ID: "collect3Gold", Name: "Collect 3 Gold Presents", Target: 3, Reward: Unlock{CategorySleighColor, "silver"}},
	{ID: "score5000", Name: "Score 5000 Points", Target: 5000, Reward: Unlock{CategoryBackground, "night"}},
	{ID: "useAbility10", Name: "Use Ability 10 Times", Target: 10, Reward: Unlock{CategoryHat, "reindeer"}},
}

// Progress is a goal with its current value.
type Progress struct {
	Goal
	Value     int
	Completed bool
}

// ProgressStore persists goal progress, unlocks and equipped items per player.
type ProgressStore interface {
	LoadGoals(player string) (map[string]int, error)
	SaveGoal(player, goalID string, progress int, completed bool) error
	LoadUnlocks(player string) (map[string][]string, error)
	SaveUnlock(player, category, item string) error
	LoadEquipped(player string) (map[string]string, error)
	SaveEquipped(player, category, item string) error
}

// Tracker applies simulation events to one player's goals.
type Tracker struct {
	player   string
	store    ProgressStore
	logger   *log.Logger
	progress map[string]int
	unlocked map[Category]map[string]bool
	equipped map[Category]string
	onUnlock []unlockHook
	nextHook int
}

type unlockHook struct {
	id int
	fn func(Unlock)
}

// NewTracker loads the player's saved state from store. A nil store keeps
// progress in memory only. Load failures are logged and start from scratch.
func NewTracker(player string, store ProgressStore, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		player:   player,
		store:    store,
		logger:   logger.With("player", player),
		progress: make(map[string]int),
		unlocked: make(map[Category]map[string]bool),
		equipped: make(map[Category]string),
	}
	for _, c := range Categories {
		t.unlocked[c] = map[string]bool{DefaultItem: true}
		t.equipped[c] = DefaultItem
	}
	t.load()
	return t
}

func (t *Tracker) load() {
	if t.store == nil {
		return
	}

	if saved, err := t.store.LoadGoals(t.player); err != nil {
		t.logger.Warn("cannot load goal progress", "err", err)
	} else {
		for _, g := range Catalog {
			t.progress[g.ID] = min(saved[g.ID], g.Target)
		}
	}

	if saved, err := t.store.LoadUnlocks(t.player); err != nil {
		t.logger.Warn("cannot load unlocks", "err", err)
	} else {
		for c, items := range saved {
			set, ok := t.unlocked[Category(c)]
			if !ok {
				continue
			}
			for _, item := range items {
				set[item] = true
			}
		}
	}

	if saved, err := t.store.LoadEquipped(t.player); err != nil {
		t.logger.Warn("cannot load equipped items", "err", err)
	} else {
		for c, item := range saved {
			// Drop items that are no longer unlocked.
			if t.unlocked[Category(c)][item] {
				t.equipped[Category(c)] = item
			}
		}
	}
}

// Player returns the tracked player name.
func (t *Tracker) Player() string {
	return t.player
}

// OnUnlock registers fn to be called for every newly unlocked item. The
// returned func removes it again; calling it more than once is harmless.
func (t *Tracker) OnUnlock(fn func(Unlock)) (remove func()) {
	t.nextHook++
	id := t.nextHook
	t.onUnlock = append(t.onUnlock, unlockHook{id: id, fn: fn})
	return func() {
		for i, h := range t.onUnlock {
			if h.id == id {
				t.onUnlock = append(t.onUnlock[:i:i], t.onUnlock[i+1:]...)
				return
			}
		}
	}
}

// Observe applies one simulation event.
func (t *Tracker) Observe(e sleigh.Event) {
	switch ev := e.(type) {
	case sleigh.CollectibleCollectedEvent:
		if ev.Type != sleigh.CollectibleGift {
			return
		}
		t.advance("deliver10", 1)
		if ev.Gold {
			t.advance("collect3Gold", 1)
		}
	case sleigh.SnowstormSurvivedEvent:
		t.advance("surviveSnowstorm", 1)
	case sleigh.AbilityActivatedEvent:
		t.advance("useAbility10", 1)
	case sleigh.RunEndedEvent:
		t.reach("score5000", ev.Score)
	}
}

// advance adds n to a goal's progress.
func (t *Tracker) advance(id string, n int) {
	t.reach(id, t.progress[id]+n)
}

// reach raises a goal's progress to v, capped at its target.
func (t *Tracker) reach(id string, v int) {
	g, ok := lookup(id)
	if !ok || t.progress[id] >= g.Target {
		return
	}
	v = min(v, g.Target)
	if v <= t.progress[id] {
		return
	}
	t.progress[id] = v
	done := v >= g.Target

	if t.store != nil {
		if err := t.store.SaveGoal(t.player, id, v, done); err != nil {
			t.logger.Error("cannot save goal progress", "goal", id, "err", err)
		}
	}
	if done {
		t.logger.Info("goal completed", "goal", id)
		t.unlock(g.Reward)
	}
}

func (t *Tracker) unlock(u Unlock) {
	if t.unlocked[u.Category][u.Item] {
		return
	}
	t.unlocked[u.Category][u.Item] = true

	if t.store != nil {
		if err := t.store.SaveUnlock(t.player, string(u.Category), u.Item); err != nil {
			t.logger.Error("cannot save unlock", "category", u.Category, "item", u.Item, "err", err)
		}
	}
	for _, h := range t.onUnlock {
		h.fn(u)
	}
}

func lookup(id string) (Goal, bool) {
	for _, g := range Catalog {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// Progress returns all goals in catalog order.
func (t *Tracker) Progress() []Progress {
	out := make([]Progress, len(Catalog))
	for i, g := range Catalog {
		v := t.progress[g.ID]
		out[i] = Progress{Goal: g, Value: v, Completed: v >= g.Target}
	}
	return out
}

// CompletedCount returns how many goals are done.
func (t *Tracker) CompletedCount() int {
	n := 0
	for _, p := range t.Progress() {
		if p.Completed {
			n++
		}
	}
	return n
}

// Unlocked returns the unlocked items of a category, default first.
func (t *Tracker) Unlocked(c Category) []string {
	items := []string{DefaultItem}
	for _, g := range Catalog {
		if g.Reward.Category == c && t.unlocked[c][g.Reward.Item] && !contains(items, g.Reward.Item) {
			items = append(items, g.Reward.Item)
		}
	}
	return items
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// IsUnlocked reports whether item is available in category c.
func (t *Tracker) IsUnlocked(c Category, item string) bool {
	return t.unlocked[c][item]
}

// Equip selects an unlocked item. It returns false if the item is locked.
func (t *Tracker) Equip(c Category, item string) bool {
	if !t.unlocked[c][item] {
		return false
	}
	t.equipped[c] = item
	if t.store != nil {
		if err := t.store.SaveEquipped(t.player, string(c), item); err != nil {
			t.logger.Error("cannot save equipped item", "category", c, "item", item, "err", err)
		}
	}
	return true
}

// Equipped returns the selected item of category c.
func (t *Tracker) Equipped(c Category) string {
	return t.equipped[c]
}

// Cosmetics maps the equipped items onto the game's visuals.
func (t *Tracker) Cosmetics() sleigh.Cosmetics {
	cos := sleigh.Cosmetics{SleighColor: core.ColorBrightRed}
	if item := t.equipped[CategorySleighColor]; item != DefaultItem {
		if c, ok := core.ColorByName(item); ok {
			cos.SleighColor = c
		}
	}
	switch t.equipped[CategoryHat] {
	case "elf":
		cos.Hat = sleigh.HatElfChar
	case "reindeer":
		cos.Hat = sleigh.HatDeerChar
	}
	cos.Night = t.equipped[CategoryBackground] == "night"
	return cos
}
