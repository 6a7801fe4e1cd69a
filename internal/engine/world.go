package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

const (
	EventReal   = "real"
	EventRandom = "random"

	DefaultEventRetention = 90 * 24 * time.Hour
)

// realEventImpact maps a category to emotion deltas per intensity point.
var realEventImpact = map[string]map[string]int{
	"family":   {storage.EmotionStress: 10, storage.EmotionAnxiety: 5},
	"work":     {storage.EmotionStress: 7},
	"finance":  {storage.EmotionAnxiety: 12},
	"emotions": {storage.EmotionFatigue: 8},
}

type randomEvent struct {
	name        string
	description string
	effect      map[string]int
}

var randomEvents = []randomEvent{
	{"Claridad Fugaz", "Tu mente se siente más ligera por unos momentos.", map[string]int{storage.EmotionClarity: 10}},
	{"Viento de Productividad", "Un impulso repentino te anima a avanzar hoy.", map[string]int{storage.EmotionMotivation: 15}},
	{"Sombra de Duda", "Un pensamiento pasajero reduce tu iniciativa.", map[string]int{storage.EmotionMotivation: -10}},
	{"Calma Interior", "Una sensación protectora te envuelve.", map[string]int{storage.EmotionAnxiety: -12}},
	{"Presagio del Mundo", "Algo pequeño te sale bien sin explicación.", map[string]int{string(AttributeLCK): 1}},
}

type RealEventResult struct {
	Event  storage.WorldEvent
	Attack *AttackResult // set when an active boss reacted
}

// RegisterRealEvent records something that happened in real life. Known
// categories shift emotions by intensity; an active boss answers with BossAttack.
func (s *Service) RegisterRealEvent(category, description string, intensity int) (RealEventResult, error) {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" {
		return RealEventResult{}, invalidInput("event category is required")
	}
	if intensity < 1 || intensity > 3 {
		return RealEventResult{}, invalidInput("event intensity must be 1-3, got %d", intensity)
	}
	ev := storage.WorldEvent{
		Type:        EventReal,
		Category:    category,
		Description: description,
		Intensity:   intensity,
		Date:        s.now(),
	}
	s.doc.Events = append(s.doc.Events, ev)
	for dim, d := range realEventImpact[category] {
		s.doc.Emotion.Add(dim, d*intensity)
	}

	res := RealEventResult{Event: ev}
	if b := s.doc.Boss; b != nil && !b.Defeated {
		atk, err := s.BossAttack()
		if err != nil {
			return RealEventResult{}, err
		}
		res.Attack = &atk
	}
	return res, nil
}

type RandomEventResult struct {
	Event  storage.WorldEvent
	Effect *storage.Effect // set when the event touched attributes
}

// RandomWorldEvent applies one soft event from a fixed table. Emotion keys
// shift emotions; attribute keys become a one-day effect.
func (s *Service) RandomWorldEvent() RandomEventResult {
	pick := randomEvents[s.rng.Intn(len(randomEvents))]

	attrs := map[string]int{}
	for key, d := range pick.effect {
		if Attribute(key).IsValid() {
			attrs[key] = d
			continue
		}
		s.doc.Emotion.Add(key, d)
	}

	ev := storage.WorldEvent{
		Type:        EventRandom,
		Name:        pick.name,
		Description: pick.description,
		Date:        s.now(),
	}
	s.doc.Events = append(s.doc.Events, ev)
	res := RandomEventResult{Event: ev}
	if len(attrs) > 0 {
		eff := s.addEffect(EffectInput{
			Name:      pick.name,
			Kind:      effectKindFor(attrs),
			Icon:      "world",
			Duration:  days(1),
			Modifiers: attrs,
		})
		res.Effect = &eff
	}
	return res
}

func (s *Service) Events() []storage.WorldEvent {
	out := make([]storage.WorldEvent, len(s.doc.Events))
	copy(out, s.doc.Events)
	return out
}

func (s *Service) DeleteEvent(index int) (storage.WorldEvent, error) {
	if index < 0 || index >= len(s.doc.Events) {
		return storage.WorldEvent{}, indexNotFound("event", index)
	}
	ev := s.doc.Events[index]
	s.doc.Events = append(s.doc.Events[:index], s.doc.Events[index+1:]...)
	return ev, nil
}

// PruneEvents drops events dated more than retention ago.
func (s *Service) PruneEvents(retention time.Duration) int {
	if retention <= 0 {
		retention = DefaultEventRetention
	}
	cutoff := s.now().Add(-retention)
	kept := s.doc.Events[:0]
	for _, ev := range s.doc.Events {
		if ev.Date.After(cutoff) {
			kept = append(kept, ev)
		}
	}
	removed := len(s.doc.Events) - len(kept)
	s.doc.Events = kept
	return removed
}

// EventsOn returns the events recorded on the given calendar day.
func (s *Service) EventsOn(day time.Time) []storage.WorldEvent {
	key := DateKey(day)
	var out []storage.WorldEvent
	for _, ev := range s.doc.Events {
		if DateKey(ev.Date) == key {
			out = append(out, ev)
		}
	}
	return out
}

func DefaultRealms() map[string]storage.Realm {
	return map[string]storage.Realm{
		"work":     {Progress: 10, Reputation: 5, Difficulty: 2},
		"politics": {Progress: 5, Reputation: 2, Difficulty: 3},
		"startup":  {Progress: 0, Reputation: 0, Difficulty: 4},
		"academia": {Progress: 15, Reputation: 8, Difficulty: 2},
		"finance":  {Progress: 10, Reputation: 3, Difficulty: 4},
		"health":   {Progress: 5, Reputation: 1, Difficulty: 3},
		"family":   {Progress: 5, Reputation: 3, Difficulty: 3},
	}
}

func DefaultRewards() []storage.Reward {
	return []storage.Reward{
		{Name: "Tarde libre de series", Cost: 150},
		{Name: "Cena favorita", Cost: 300},
		{Name: "Día sin alarmas", Cost: 600},
	}
}

type InitResult struct {
	Realms  int
	Domains int
	Rewards int
}

// InitializeWorld seeds realms, domains and the reward store. Existing entries are kept.
func (s *Service) InitializeWorld() InitResult {
	var res InitResult
	for name, r := range DefaultRealms() {
		if _, ok := s.doc.World.Realms[name]; !ok {
			s.doc.World.Realms[name] = r
			res.Realms++
		}
	}
	for id, d := range DefaultDomains() {
		if _, ok := s.doc.Domains[id]; !ok {
			s.doc.Domains[id] = d
			res.Domains++
		}
	}
	if len(s.doc.RewardStore) == 0 {
		s.doc.RewardStore = DefaultRewards()
		res.Rewards = len(s.doc.RewardStore)
	}
	return res
}

// RealmNames returns realm names sorted.
func (s *Service) RealmNames() []string {
	names := make([]string, 0, len(s.doc.World.Realms))
	for n := range s.doc.World.Realms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Service) Realm(name string) (storage.Realm, error) {
	r, ok := s.doc.World.Realms[name]
	if !ok {
		return storage.Realm{}, NotFoundError{Kind: "realm", Key: name}
	}
	return r, nil
}

// UpdateRealm sets a realm's values, clamping progress and reputation to
// [0,100] and difficulty to [1,5].
func (s *Service) UpdateRealm(name string, progress, reputation, difficulty int) (storage.Realm, error) {
	if _, err := s.Realm(name); err != nil {
		return storage.Realm{}, err
	}
	r := storage.Realm{
		Progress:   clampInt(progress, 0, 100),
		Reputation: clampInt(reputation, 0, 100),
		Difficulty: int(clampDifficulty(difficulty)),
	}
	s.doc.World.Realms[name] = r
	return r, nil
}

// DateKey formats t as the YYYY-MM-DD key used for daily logs and backups.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
