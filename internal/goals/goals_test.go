package goals

import (
	"errors"
	"testing"

	"github.com/vovakirdan/sleigh-run/internal/core"
	"github.com/vovakirdan/sleigh-run/internal/games/sleigh"
)

// memStore is an in-memory ProgressStore.
type memStore struct {
	goals    map[string]int
	unlocks  map[string][]string
	equipped map[string]string
	fail     bool
	saves    int
}

func newMemStore() *memStore {
	return &memStore{
		goals:    make(map[string]int),
		unlocks:  make(map[string][]string),
		equipped: make(map[string]string),
	}
}

var errDisk = errors.New("disk full")

func (m *memStore) LoadGoals(string) (map[string]int, error) {
	if m.fail {
		return nil, errDisk
	}
	return m.goals, nil
}

func (m *memStore) SaveGoal(_ string, id string, progress int, _ bool) error {
	m.saves++
	if m.fail {
		return errDisk
	}
	m.goals[id] = progress
	return nil
}

func (m *memStore) LoadUnlocks(string) (map[string][]string, error) {
	if m.fail {
		return nil, errDisk
	}
	return m.unlocks, nil
}

func (m *memStore) SaveUnlock(_ string, category, item string) error {
	if m.fail {
		return errDisk
	}
	m.unlocks[category] = append(m.unlocks[category], item)
	return nil
}

func (m *memStore) LoadEquipped(string) (map[string]string, error) {
	if m.fail {
		return nil, errDisk
	}
	return m.equipped, nil
}

func (m *memStore) SaveEquipped(_ string, category, item string) error {
	if m.fail {
		return errDisk
	}
	m.equipped[category] = item
	return nil
}

func gift(gold bool) sleigh.Event {
	return sleigh.CollectibleCollectedEvent{Type: sleigh.CollectibleGift, Points: 100, Gold: gold}
}

func progressOf(t *Tracker, id string) Progress {
	for _, p := range t.Progress() {
		if p.ID == id {
			return p
		}
	}
	return Progress{}
}

func TestTrackerGoals(t *testing.T) {
	tests := []struct {
		name   string
		events []sleigh.Event
		goal   string
		value  int
		done   bool
	}{
		{"gifts count", []sleigh.Event{gift(false), gift(true)}, "deliver10", 2, false},
		{"power-ups are not gifts", []sleigh.Event{sleigh.CollectibleCollectedEvent{Type: sleigh.CollectibleShield}}, "deliver10", 0, false},
		{"gold presents", []sleigh.Event{gift(true), gift(false), gift(true), gift(true)}, "collect3Gold", 3, true},
		{"snowstorm survived", []sleigh.Event{sleigh.SnowstormSurvivedEvent{}}, "surviveSnowstorm", 1, true},
		{"ability uses", []sleigh.Event{sleigh.AbilityActivatedEvent{}, sleigh.AbilityActivatedEvent{}}, "useAbility10", 2, false},
		{"score below target", []sleigh.Event{sleigh.RunEndedEvent{Score: 1200}}, "score5000", 1200, false},
		{"score capped", []sleigh.Event{sleigh.RunEndedEvent{Score: 9000}}, "score5000", 5000, true},
		{"best score kept", []sleigh.Event{sleigh.RunEndedEvent{Score: 3000}, sleigh.RunEndedEvent{Score: 100}}, "score5000", 3000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker("alice", nil, nil)
			for _, e := range tt.events {
				tr.Observe(e)
			}
			p := progressOf(tr, tt.goal)
			if p.Value != tt.value || p.Completed != tt.done {
				t.Errorf("%s = %d (done %v), expected %d (done %v)", tt.goal, p.Value, p.Completed, tt.value, tt.done)
			}
		})
	}
}

func TestTrackerOnUnlockRemove(t *testing.T) {
	tr := NewTracker("alice", nil, nil)

	var first, second int
	remove := tr.OnUnlock(func(Unlock) { first++ })
	tr.OnUnlock(func(Unlock) { second++ })

	remove()
	remove()
	tr.Observe(sleigh.SnowstormSurvivedEvent{})

	if first != 0 {
		t.Errorf("removed hook called %d times", first)
	}
	if second != 1 {
		t.Errorf("remaining hook called %d times, expected 1", second)
	}
}

func TestTrackerUnlocks(t *testing.T) {
	tr := NewTracker("alice", nil, nil)

	var got []Unlock
	tr.OnUnlock(func(u Unlock) { got = append(got, u) })

	for i := 0; i < 12; i++ {
		tr.Observe(gift(false))
	}
	if len(got) != 1 || got[0] != (Unlock{CategorySleighColor, "gold"}) {
		t.Fatalf("unlocks = %v, expected the gold sleigh once", got)
	}
	if p := progressOf(tr, "deliver10"); p.Value != 10 {
		t.Errorf("progress past target = %d, expected cap at 10", p.Value)
	}
	if tr.CompletedCount() != 1 {
		t.Errorf("completed = %d", tr.CompletedCount())
	}

	items := tr.Unlocked(CategorySleighColor)
	if len(items) != 2 || items[0] != DefaultItem || items[1] != "gold" {
		t.Errorf("unlocked sleigh colors = %v", items)
	}
}

func TestTrackerEquip(t *testing.T) {
	tr := NewTracker("alice", nil, nil)

	if tr.Equip(CategoryHat, "elf") {
		t.Error("locked item must not equip")
	}
	tr.Observe(sleigh.SnowstormSurvivedEvent{})
	if !tr.Equip(CategoryHat, "elf") {
		t.Fatal("unlocked item should equip")
	}
	if tr.Equipped(CategoryHat) != "elf" {
		t.Errorf("equipped hat = %q", tr.Equipped(CategoryHat))
	}

	cos := tr.Cosmetics()
	if cos.Hat != sleigh.HatElfChar {
		t.Errorf("hat glyph = %q", cos.Hat)
	}
	if cos.SleighColor != core.ColorBrightRed || cos.Night {
		t.Errorf("other cosmetics should stay default: %+v", cos)
	}
}

func TestTrackerPersistence(t *testing.T) {
	store := newMemStore()

	tr := NewTracker("bob", store, nil)
	tr.Observe(sleigh.RunEndedEvent{Score: 6000})
	tr.Observe(gift(true))
	if !tr.Equip(CategoryBackground, "night") {
		t.Fatal("night background should be unlocked")
	}

	reloaded := NewTracker("bob", store, nil)
	if p := progressOf(reloaded, "score5000"); !p.Completed {
		t.Error("completed goal should survive reload")
	}
	if p := progressOf(reloaded, "deliver10"); p.Value != 1 {
		t.Errorf("deliver10 after reload = %d", p.Value)
	}
	if !reloaded.IsUnlocked(CategoryBackground, "night") {
		t.Error("unlock should survive reload")
	}
	if !reloaded.Cosmetics().Night {
		t.Error("equipped background should survive reload")
	}
}

func TestTrackerIgnoresLockedEquippedItem(t *testing.T) {
	store := newMemStore()
	store.equipped[string(CategorySleighColor)] = "silver"

	tr := NewTracker("carol", store, nil)
	if tr.Equipped(CategorySleighColor) != DefaultItem {
		t.Errorf("locked saved item should fall back to default, got %q", tr.Equipped(CategorySleighColor))
	}
}

func TestTrackerStoreFailures(t *testing.T) {
	store := newMemStore()
	store.fail = true

	tr := NewTracker("dave", store, nil)
	tr.Observe(sleigh.SnowstormSurvivedEvent{})

	if !progressOf(tr, "surviveSnowstorm").Completed {
		t.Error("progress must be tracked even when saving fails")
	}
	if !tr.IsUnlocked(CategoryHat, "elf") {
		t.Error("unlock must apply even when saving fails")
	}
	if store.saves != 1 {
		t.Errorf("save attempts = %d, expected 1", store.saves)
	}
}

func TestTrackerFromSimulation(t *testing.T) {
	g := sleigh.New(sleigh.AbilityDash)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})

	tr := NewTracker("eve", nil, nil)
	g.Subscribe(tr.Observe)

	in := core.NewInputFrame()
	in.Set(core.ActionAbility)
	g.Step(in)

	if p := progressOf(tr, "useAbility10"); p.Value != 1 {
		t.Errorf("ability activation should count, got %d", p.Value)
	}
}
