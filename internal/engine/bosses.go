package engine

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

const (
	BattleWindowDays   = 30
	BossVictoryExp     = 300
	BossAttackMinAvg   = 50
	bossAttackDuration = 1
)

//go:embed data/bosses.json
var bossCatalogJSON []byte

type PhaseDef struct {
	Name           string         `json:"name"`
	HP             int            `json:"hp"`
	Debuff         map[string]int `json:"debuff"`
	Attack         string         `json:"attack"`
	CounterMission string         `json:"counter_mission"`
}

type BossDef struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Phases   []PhaseDef `json:"phases"`
}

// ParseBossCatalog decodes and validates a boss catalog.
func ParseBossCatalog(data []byte) ([]BossDef, error) {
	var defs []BossDef
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decode boss catalog: %w", err)
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("boss catalog: boss %q has no id", d.Name)
		}
		if len(d.Phases) == 0 {
			return nil, fmt.Errorf("boss catalog: boss %s has no phases", d.ID)
		}
		for i, p := range d.Phases {
			if p.HP <= 0 {
				return nil, fmt.Errorf("boss catalog: boss %s phase %d hp must be positive", d.ID, i+1)
			}
		}
	}
	return defs, nil
}

func indexBosses(defs []BossDef) map[string]BossDef {
	out := make(map[string]BossDef, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out
}

func defaultBosses() map[string]BossDef {
	defs, err := ParseBossCatalog(bossCatalogJSON)
	if err != nil {
		panic(err)
	}
	return indexBosses(defs)
}

// BossCatalog returns the known bosses sorted by id.
func (s *Service) BossCatalog() []BossDef {
	out := make([]BossDef, 0, len(s.bosses))
	for _, d := range s.bosses {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CurrentBoss returns the active or defeated boss, if any.
func (s *Service) CurrentBoss() (storage.BossState, bool) {
	if s.doc.Boss == nil {
		return storage.BossState{}, false
	}
	return *s.doc.Boss, true
}

// CurrentPhase returns the catalog definition of the boss's current phase.
func (s *Service) CurrentPhase() (PhaseDef, error) {
	b, def, err := s.activeBoss()
	if err != nil {
		return PhaseDef{}, err
	}
	return def.Phases[b.Phase-1], nil
}

func (s *Service) StartBattle(id string) (storage.BossState, error) {
	def, ok := s.bosses[id]
	if !ok {
		return storage.BossState{}, UnknownBossError{ID: id}
	}
	if cur := s.doc.Boss; cur != nil && !cur.Defeated {
		return storage.BossState{}, StateError{Entity: "battle " + id, State: "boss " + cur.Name + " is still active", Op: "start"}
	}
	now := s.now()
	b := &storage.BossState{
		ID:          def.ID,
		Name:        def.Name,
		Phase:       1,
		CurrentHP:   def.Phases[0].HP,
		TotalPhases: len(def.Phases),
		StartDate:   now,
		Expires:     now.Add(days(BattleWindowDays)),
	}
	s.doc.Boss = b
	s.appendLog(fmt.Sprintf("⚔ Batalla iniciada contra %s.", def.Name))
	return *b, nil
}

func (s *Service) activeBoss() (*storage.BossState, BossDef, error) {
	b := s.doc.Boss
	if b == nil {
		return nil, BossDef{}, ErrNoActiveBoss
	}
	if b.Defeated {
		return nil, BossDef{}, StateError{Entity: "boss " + b.Name, State: "defeated", Op: "fight"}
	}
	def, ok := s.bosses[b.ID]
	if !ok {
		return nil, BossDef{}, UnknownBossError{ID: b.ID}
	}
	if b.Phase < 1 || b.Phase > len(def.Phases) {
		return nil, BossDef{}, StateError{Entity: "boss " + b.Name, State: fmt.Sprintf("phase %d out of range", b.Phase), Op: "fight"}
	}
	return b, def, nil
}

type DamageResult struct {
	Boss         storage.BossState
	PhaseChanged bool
	Defeated     bool
	Level        LevelResult // set on victory
}

// ApplyDamage subtracts HP. At zero the boss moves to the next phase with that
// phase's full HP; past the last phase it is defeated with HP pinned at 0.
// Overkill does not carry into the next phase.
func (s *Service) ApplyDamage(amount int) (DamageResult, error) {
	if amount < 0 {
		return DamageResult{}, invalidInput("damage must be non-negative, got %d", amount)
	}
	b, def, err := s.activeBoss()
	if err != nil {
		return DamageResult{}, err
	}

	var res DamageResult
	b.CurrentHP -= amount
	if b.CurrentHP <= 0 {
		if b.Phase >= b.TotalPhases {
			b.CurrentHP = 0
			b.Defeated = true
			res.Defeated = true
			lvl, err := s.grantVictory(b)
			if err != nil {
				return DamageResult{}, err
			}
			res.Level = lvl
		} else {
			b.Phase++
			b.CurrentHP = def.Phases[b.Phase-1].HP
			res.PhaseChanged = true
			s.logger.Printf("boss %s entered phase %d", b.ID, b.Phase)
			s.appendLog(fmt.Sprintf("%s entra en fase %d: %s", b.Name, b.Phase, def.Phases[b.Phase-1].Name))
		}
	}
	res.Boss = *b
	return res, nil
}

func (s *Service) grantVictory(b *storage.BossState) (LevelResult, error) {
	lvl, err := s.AddExperience(BossVictoryExp)
	if err != nil {
		return LevelResult{}, err
	}
	s.addEffect(EffectInput{
		Name:      "Victoria Heroica",
		Kind:      EffectBuff,
		Icon:      "buff",
		Duration:  days(5),
		Modifiers: map[string]int{string(AttributeWIS): 2, string(AttributeCHA): 1},
	})
	s.logger.Printf("boss %s defeated", b.ID)
	s.appendLog(fmt.Sprintf("🏆 %s derrotado. +%d EXP", b.Name, BossVictoryExp))
	return lvl, nil
}

type AttackResult struct {
	Attacked bool
	Message  string
	Effect   *storage.Effect
}

// BossAttack attacks when the mean of anxiety, fatigue and stress exceeds 50,
// applying the phase debuff for one day.
func (s *Service) BossAttack() (AttackResult, error) {
	b, def, err := s.activeBoss()
	if err != nil {
		return AttackResult{}, err
	}
	e := s.doc.Emotion
	sum := e.Get(storage.EmotionAnxiety) + e.Get(storage.EmotionFatigue) + e.Get(storage.EmotionStress)
	if sum <= 3*BossAttackMinAvg {
		return AttackResult{Message: "El boss observó… no atacó."}, nil
	}

	phase := def.Phases[b.Phase-1]
	eff := s.addEffect(EffectInput{
		Name:      "Ataque de " + phase.Name,
		Kind:      EffectDebuff,
		Icon:      "boss",
		Duration:  days(bossAttackDuration),
		Modifiers: phase.Debuff,
	})
	msg := fmt.Sprintf("⚠ %s (Ataque activado)", phase.Attack)
	s.appendLog(msg)
	return AttackResult{Attacked: true, Message: msg, Effect: &eff}, nil
}

// ResetBoss clears the boss slot, active or defeated.
func (s *Service) ResetBoss() error {
	if s.doc.Boss == nil {
		return ErrNoActiveBoss
	}
	s.appendLog(fmt.Sprintf("Batalla contra %s reiniciada.", s.doc.Boss.Name))
	s.doc.Boss = nil
	return nil
}
