package engine

import (
	"fmt"
	"time"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

const (
	CurseMaxIntensity = 5
	CurseMinChance    = 5
	CurseMaxChance    = 75
	curseRiskStep     = 20
	curseRiskLevel    = 60

	CurseSourceAuto   = "auto-RNG"
	CurseSourceManual = "manual"
)

var curseEmotionDeltas = map[int]map[string]int{
	1: {storage.EmotionClarity: -3},
	2: {storage.EmotionClarity: -6, storage.EmotionMotivation: -4},
	3: {storage.EmotionClarity: -8, storage.EmotionMotivation: -6},
	4: {storage.EmotionAnxiety: 10, storage.EmotionClarity: -12},
	5: {storage.EmotionAnxiety: 20, storage.EmotionClarity: -18},
}

var curseAttributeDeltas = map[int]map[string]int{
	1: {string(AttributeWIS): -1},
	2: {string(AttributeWIS): -1, string(AttributeCHA): -1},
	3: {string(AttributeWIS): -2, string(AttributeCHA): -1},
	4: {string(AttributeWIS): -2, string(AttributeCHA): -1, string(AttributeDEX): -1},
	5: {string(AttributeWIS): -3, string(AttributeCHA): -2, string(AttributeDEX): -1},
}

func (s *Service) Curse() storage.CurseState { return s.doc.Curse }

// CanTrigger reports whether the cooldown since the last trigger has elapsed.
// A curse that never triggered can always trigger.
func (s *Service) CanTrigger() bool {
	c := s.doc.Curse
	if c.LastTrigger == nil {
		return true
	}
	return s.now().Sub(*c.LastTrigger) >= time.Duration(c.CooldownHours)*time.Hour
}

// CurseChance is the auto-trigger chance in percent for the current emotions.
func (s *Service) CurseChance() int {
	e := s.doc.Emotion
	risk := 0
	for _, dim := range []string{storage.EmotionStress, storage.EmotionAnxiety, storage.EmotionFatigue} {
		if e.Get(dim) > curseRiskLevel {
			risk += curseRiskStep
		}
	}
	return clampInt(risk, CurseMinChance, CurseMaxChance)
}

// TryAutoTrigger rolls 1-100 against the emotional chance. It never rolls
// while the cooldown is running.
func (s *Service) TryAutoTrigger() (bool, error) {
	if !s.CanTrigger() {
		return false, nil
	}
	if s.roll(1, 100) > s.CurseChance() {
		return false, nil
	}
	if _, err := s.Trigger(CurseSourceAuto); err != nil {
		return false, err
	}
	return true, nil
}

type CurseResult struct {
	Curse  storage.CurseState
	Effect storage.Effect
}

// Trigger raises intensity by one (capped at 5) and applies the scaled
// emotion deltas and the 24h attribute debuff.
func (s *Service) Trigger(source string) (CurseResult, error) {
	if source == "" {
		return CurseResult{}, invalidInput("curse source is required")
	}
	c := &s.doc.Curse
	now := s.now()
	c.Active = true
	c.Intensity = clampInt(c.Intensity+1, 1, CurseMaxIntensity)
	c.LastTrigger = &now

	for dim, d := range curseEmotionDeltas[c.Intensity] {
		s.doc.Emotion.Add(dim, d)
	}
	eff := s.addEffect(EffectInput{
		Name:      fmt.Sprintf("Beso de la Bruja (Nivel %d)", c.Intensity),
		Kind:      EffectDebuff,
		Icon:      "curse",
		Duration:  24 * time.Hour,
		Modifiers: curseAttributeDeltas[c.Intensity],
	})
	s.logger.Printf("curse triggered by %s at intensity %d", source, c.Intensity)
	s.appendLog(fmt.Sprintf("🔥 Maldición activada (%s). Intensidad: %d", source, c.Intensity))
	return CurseResult{Curse: *c, Effect: eff}, nil
}

// ForceTrigger triggers regardless of cooldown. It is the manual path.
func (s *Service) ForceTrigger() (CurseResult, error) {
	return s.Trigger(CurseSourceManual)
}

func (s *Service) Dispel() storage.CurseState {
	s.doc.Curse.Active = false
	s.doc.Curse.Intensity = 1
	s.appendLog("✨ Maldición dispersada manualmente.")
	return s.doc.Curse
}
