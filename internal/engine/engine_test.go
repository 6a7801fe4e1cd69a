package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

// monday 09:00 UTC
var testEpoch = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// scriptedRoller returns queued values in order, then 0. Values are capped to n-1.
type scriptedRoller struct {
	vals []int
}

func (r *scriptedRoller) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptedRoller) Push(vals ...int) { r.vals = append(r.vals, vals...) }

func newTestService(t *testing.T, rolls ...int) (*Service, *fakeClock, *scriptedRoller) {
	t.Helper()
	clock := &fakeClock{t: testEpoch}
	rng := &scriptedRoller{vals: rolls}
	svc := NewService(storage.NewDocument(), rng, WithClock(clock.Now))
	return svc, clock, rng
}

func mustSetEmotion(t *testing.T, svc *Service, dim string, v int) {
	t.Helper()
	if _, err := svc.SetEmotion(dim, v); err != nil {
		t.Fatalf("SetEmotion(%s): %v", dim, err)
	}
}

func TestFinalStatsFatigueLowersStrength(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustSetEmotion(t, svc, storage.EmotionFatigue, 65)

	got := svc.FinalStats()
	if got.Strength != 8 {
		t.Fatalf("strength=%d, want 8", got.Strength)
	}
	if got.Wisdom != 10 || got.Dexterity != 10 {
		t.Fatalf("unexpected side modifiers: wis=%d dex=%d", got.Wisdom, got.Dexterity)
	}
	if base := svc.BaseStats(); base.Strength != 10 {
		t.Fatalf("base strength changed to %d", base.Strength)
	}
}

func TestFinalStatsPositiveRules(t *testing.T) {
	e := storage.EmotionState{Levels: map[string]int{
		storage.EmotionMotivation: 95,
		storage.EmotionClarity:    80,
		storage.EmotionStress:     20,
	}}
	base := storage.NewDocument().Stats
	got := FinalStats(base, e, nil)

	if got.Wisdom != 11 {
		t.Fatalf("wisdom=%d, want 11", got.Wisdom)
	}
	if got.Intelligence != 11 {
		t.Fatalf("intelligence=%d, want 11", got.Intelligence)
	}
	if got.Charisma != 11 {
		t.Fatalf("charisma=%d, want 11", got.Charisma)
	}
	if got.Dexterity != 11 {
		t.Fatalf("dexterity=%d, want 11", got.Dexterity)
	}
}

func TestFinalStatsIgnoresNonAttributeKeys(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.AddEffect(EffectInput{
		Name:      "Café",
		Duration:  time.Hour,
		Modifiers: map[string]int{"strength": 2, "clarity": 5},
	}); err != nil {
		t.Fatalf("AddEffect: %v", err)
	}

	got := svc.FinalStats()
	if got.Strength != 12 {
		t.Fatalf("strength=%d, want 12", got.Strength)
	}
	if got.Level != 1 || got.Energy != 100 {
		t.Fatalf("pass-through fields changed: level=%d energy=%d", got.Level, got.Energy)
	}
	if svc.Emotion().Get(storage.EmotionClarity) != 50 {
		t.Fatalf("effect modifier leaked into emotions")
	}
}

func TestSetEmotionClamps(t *testing.T) {
	svc, _, _ := newTestService(t)

	if v, _ := svc.SetEmotion(storage.EmotionStress, 150); v != 100 {
		t.Fatalf("stress=%d, want 100", v)
	}
	if v, _ := svc.SetEmotion(storage.EmotionAnxiety, -5); v != 0 {
		t.Fatalf("anxiety=%d, want 0", v)
	}
	if _, err := svc.SetEmotion("mood", 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("SetEmotion(mood) err=%v, want ErrInvalidInput", err)
	}
	for _, dim := range svc.Emotion().Dimensions() {
		if v := svc.Emotion().Get(dim); v < 0 || v > 100 {
			t.Fatalf("%s=%d out of range", dim, v)
		}
	}
}

func TestActiveEffectsPrunesExpired(t *testing.T) {
	svc, clock, _ := newTestService(t)

	short, err := svc.AddEffect(EffectInput{Name: "Short", Kind: EffectBuff, Duration: time.Hour, Modifiers: map[string]int{"luck": 1}})
	if err != nil {
		t.Fatalf("AddEffect short: %v", err)
	}
	if _, err := svc.AddEffect(EffectInput{Name: "Long", Kind: EffectBuff, Duration: 2 * time.Hour, Modifiers: map[string]int{"luck": 1}}); err != nil {
		t.Fatalf("AddEffect long: %v", err)
	}
	if got := svc.AggregateModifiers()["luck"]; got != 2 {
		t.Fatalf("stacked luck=%d, want 2", got)
	}

	clock.Advance(time.Hour)
	active := svc.ActiveEffects()
	if len(active) != 1 || active[0].Name != "Long" {
		t.Fatalf("active=%v, want only Long", active)
	}
	for _, e := range active {
		if !e.Expires.After(clock.Now()) {
			t.Fatalf("effect %s expired at %v but still active", e.Name, e.Expires)
		}
	}
	for _, e := range svc.Document().Effects {
		if e.ID == short.ID {
			t.Fatalf("expired effect not pruned from document")
		}
	}
}

func TestAddEffectValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.AddEffect(EffectInput{Name: "", Duration: time.Hour}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty name err=%v", err)
	}
	if _, err := svc.AddEffect(EffectInput{Name: "x", Duration: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero duration err=%v", err)
	}
	if _, err := svc.AddEffect(EffectInput{Name: "x", Kind: "curse", Duration: time.Hour}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad kind err=%v", err)
	}
	e, err := svc.AddEffect(EffectInput{Name: "x", Duration: time.Hour, Modifiers: map[string]int{"wisdom": -2}})
	if err != nil {
		t.Fatalf("AddEffect: %v", err)
	}
	if e.Kind != EffectDebuff {
		t.Fatalf("kind=%q, want debuff", e.Kind)
	}
}

func TestAddExperienceLoopsLevelUps(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.AddExperience(100 + 125 + 10)
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if res.LevelsGained != 2 || res.LevelAfter != 3 {
		t.Fatalf("levels gained=%d after=%d, want 2 and 3", res.LevelsGained, res.LevelAfter)
	}
	st := svc.BaseStats()
	if st.Exp != 10 || st.ExpToNextLevel != 156 {
		t.Fatalf("exp=%d threshold=%d, want 10 and 156", st.Exp, st.ExpToNextLevel)
	}
	if st.Exp >= st.ExpToNextLevel {
		t.Fatalf("residual overflow: exp=%d threshold=%d", st.Exp, st.ExpToNextLevel)
	}
	if st.Strength != 12 || st.Wisdom != 12 {
		t.Fatalf("str=%d wis=%d, want 12 and 12", st.Strength, st.Wisdom)
	}

	if _, err := svc.AddExperience(-1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative exp err=%v", err)
	}
}

func TestGrowThresholdAlwaysGrows(t *testing.T) {
	if got := growThreshold(100, CharacterGrowth); got != 125 {
		t.Fatalf("growThreshold(100)=%d, want 125", got)
	}
	if got := growThreshold(100, DomainGrowth); got != 135 {
		t.Fatalf("growThreshold(100, domain)=%d, want 135", got)
	}
	if got := growThreshold(1, CharacterGrowth); got != 2 {
		t.Fatalf("growThreshold(1)=%d, want 2", got)
	}
}

func TestChangeEnergyClamps(t *testing.T) {
	svc, _, _ := newTestService(t)
	if got := svc.ChangeEnergy(-150); got != 0 {
		t.Fatalf("energy=%d, want 0", got)
	}
	if got := svc.ChangeEnergy(250); got != 100 {
		t.Fatalf("energy=%d, want 100", got)
	}
}

func TestDomainLevelUpUnlocksMilestoneOnce(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.InitializeWorld()

	d, err := svc.Domain("academia")
	if err != nil {
		t.Fatalf("Domain: %v", err)
	}
	d.Level, d.Exp, d.ExpToNext = 2, 90, 100

	res, err := svc.AddDomainExperience("academia", 30)
	if err != nil {
		t.Fatalf("AddDomainExperience: %v", err)
	}
	if d.Exp != 20 || d.Level != 3 || d.ExpToNext != 135 {
		t.Fatalf("domain exp=%d level=%d next=%d, want 20/3/135", d.Exp, d.Level, d.ExpToNext)
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0] != "Capítulo de tesis terminado" {
		t.Fatalf("unlocked=%v", res.Unlocked)
	}
	zone := "academia_lvl_Capítulo de tesis terminado"
	if m := svc.ZoneMap(); len(m.DiscoveredZones) != 1 || m.DiscoveredZones[0] != zone || len(m.ActiveZones) != 1 {
		t.Fatalf("zone map=%+v", m)
	}

	// Reaching level 3 again must not unlock or log twice.
	d.Level, d.Exp, d.ExpToNext = 2, 0, 10
	res, err = svc.AddDomainExperience("academia", 10)
	if err != nil {
		t.Fatalf("AddDomainExperience again: %v", err)
	}
	if len(res.Unlocked) != 0 || len(d.Unlocked) != 1 {
		t.Fatalf("milestone unlocked twice: res=%v stored=%v", res.Unlocked, d.Unlocked)
	}
	if m := svc.ZoneMap(); len(m.DiscoveredZones) != 1 {
		t.Fatalf("zone discovered twice: %v", m.DiscoveredZones)
	}
	logged := 0
	for _, l := range svc.Logs(0) {
		if strings.Contains(l.Entry, "Capítulo de tesis terminado") {
			logged++
		}
	}
	if logged != 1 {
		t.Fatalf("milestone logged %d times, want 1", logged)
	}
}

func TestDomainUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.AddDomainExperience("astrology", 10)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	var nf NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "domain" {
		t.Fatalf("err=%#v, want NotFoundError{Kind: domain}", err)
	}
}

func TestNewServiceNilDocument(t *testing.T) {
	svc := NewService(nil, &scriptedRoller{})
	if svc.Document() == nil {
		t.Fatalf("expected a document")
	}
	if got := svc.FinalStats().Luck; got != storage.DefaultAttribute {
		t.Fatalf("luck=%d, want %d", got, storage.DefaultAttribute)
	}
	if len(svc.Logs(5)) != 0 {
		t.Fatalf("expected no logs")
	}
}
