package storage

const (
	DefaultAttribute       = 10
	DefaultExpToNextLevel  = 100
	DefaultMaxEnergy       = 100
	DefaultDomainExpToNext = 100
	DefaultCurseCooldown   = 12
	DefaultStreakBonus     = 25
)

// NewDocument returns an empty, normalized document.
func NewDocument() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize fills defaults for missing or zero-valued fields so that engine code
// can read nested state without nil checks. It is idempotent.
func (d *Document) Normalize() {
	s := &d.Stats
	if s.Level < 1 {
		s.Level = 1
		if s.Strength == 0 && s.Intelligence == 0 && s.Wisdom == 0 && s.Charisma == 0 && s.Dexterity == 0 && s.Luck == 0 {
			s.Strength = DefaultAttribute
			s.Intelligence = DefaultAttribute
			s.Wisdom = DefaultAttribute
			s.Charisma = DefaultAttribute
			s.Dexterity = DefaultAttribute
			s.Luck = DefaultAttribute
		}
	}
	if s.Exp < 0 {
		s.Exp = 0
	}
	if s.ExpToNextLevel <= 0 {
		s.ExpToNextLevel = DefaultExpToNextLevel
	}
	if s.MaxEnergy <= 0 {
		s.MaxEnergy = DefaultMaxEnergy
		if s.Energy == 0 {
			s.Energy = DefaultMaxEnergy
		}
	}
	if s.Energy < 0 {
		s.Energy = 0
	}
	if s.Energy > s.MaxEnergy {
		s.Energy = s.MaxEnergy
	}

	if d.Emotion.Levels == nil {
		d.Emotion.Levels = map[string]int{}
	}
	for _, dim := range StandardEmotions {
		if _, ok := d.Emotion.Levels[dim]; !ok {
			d.Emotion.Levels[dim] = EmotionNeutral
		}
	}
	for k, v := range d.Emotion.Levels {
		d.Emotion.Levels[k] = ClampEmotion(v)
	}

	if d.Effects == nil {
		d.Effects = []Effect{}
	}
	if d.Missions == nil {
		d.Missions = map[string][]Mission{}
	}
	if d.Domains == nil {
		d.Domains = map[string]*Domain{}
	}
	for id, dom := range d.Domains {
		if dom == nil {
			dom = &Domain{Name: id}
			d.Domains[id] = dom
		}
		if dom.Name == "" {
			dom.Name = id
		}
		if dom.Level < 1 {
			dom.Level = 1
		}
		if dom.ExpToNext <= 0 {
			dom.ExpToNext = DefaultDomainExpToNext
		}
		if dom.Milestones == nil {
			dom.Milestones = map[string]string{}
		}
		if dom.Unlocked == nil {
			dom.Unlocked = []string{}
		}
		dom.Unlocked = uniqueStrings(dom.Unlocked)
		if dom.WeeklyObjectives == nil {
			dom.WeeklyObjectives = []Objective{}
		}
	}

	if d.Curse.Intensity < 1 {
		d.Curse.Intensity = 1
	}
	if d.Curse.Intensity > 5 {
		d.Curse.Intensity = 5
	}
	if d.Curse.CooldownHours <= 0 {
		d.Curse.CooldownHours = DefaultCurseCooldown
	}

	if d.Events == nil {
		d.Events = []WorldEvent{}
	}
	h := &d.Habits
	if h.Definitions == nil {
		h.Definitions = []HabitDef{}
	}
	if h.DailyLog == nil {
		h.DailyLog = map[string]map[string]bool{}
	}
	if h.Streaks == nil {
		h.Streaks = map[string]int{}
	}
	if h.BonusPaid == nil {
		h.BonusPaid = map[string][]string{}
	}
	if h.StreakBonus <= 0 {
		h.StreakBonus = DefaultStreakBonus
	}

	if d.Logs == nil {
		d.Logs = []LogEntry{}
	}
	if d.World.Realms == nil {
		d.World.Realms = map[string]Realm{}
	}
	if d.Map.ActiveZones == nil {
		d.Map.ActiveZones = []string{}
	}
	if d.Map.DiscoveredZones == nil {
		d.Map.DiscoveredZones = []string{}
	}
	if d.RewardStore == nil {
		d.RewardStore = []Reward{}
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
