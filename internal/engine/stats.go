package engine

import (
	"github.com/Reiker1894/isekai-system/internal/storage"
)

// emotionRule adds delta to attr when the emotion state matches.
type emotionRule struct {
	attr  Attribute
	delta int
	match func(e storage.EmotionState) bool
}

func above(dim string, threshold int) func(storage.EmotionState) bool {
	return func(e storage.EmotionState) bool { return e.Get(dim) > threshold }
}

func below(dim string, threshold int) func(storage.EmotionState) bool {
	return func(e storage.EmotionState) bool { return e.Get(dim) < threshold }
}

// emotionRules: negative extremes subtract, positive extremes add.
var emotionRules = []emotionRule{
	{AttributeDEX, -1, above(storage.EmotionAnxiety, 70)},
	{AttributeCHA, -1, above(storage.EmotionStress, 75)},
	{AttributeSTR, -2, above(storage.EmotionFatigue, 60)},
	{AttributeWIS, -1, below(storage.EmotionClarity, 30)},
	{AttributeLCK, -1, below(storage.EmotionMotivation, 25)},

	{AttributeWIS, +1, above(storage.EmotionMotivation, 80)},
	{AttributeINT, +1, above(storage.EmotionClarity, 75)},
	{AttributeCHA, +1, above(storage.EmotionMotivation, 90)},
	{AttributeDEX, +1, func(e storage.EmotionState) bool {
		return e.Get(storage.EmotionStress) < 30 && e.Get(storage.EmotionClarity) > 60
	}},
}

// EmotionModifiers returns the per-attribute deltas derived from the emotion state.
func EmotionModifiers(e storage.EmotionState) map[Attribute]int {
	mods := make(map[Attribute]int, len(Attributes))
	for _, a := range Attributes {
		mods[a] = 0
	}
	for _, r := range emotionRules {
		if r.match(e) {
			mods[r.attr] += r.delta
		}
	}
	return mods
}

// FinalStats combines base attributes, emotion modifiers and effect modifiers.
// Level, experience and energy pass through; modifier keys that are not core
// attributes are ignored.
func FinalStats(base storage.CharacterStats, emotion storage.EmotionState, effects []storage.Effect) storage.CharacterStats {
	emo := EmotionModifiers(emotion)
	eff := sumModifiers(effects)
	out := base
	for _, a := range Attributes {
		setAttribute(&out, a, attributeValue(base, a)+emo[a]+eff[string(a)])
	}
	return out
}

// FinalStats resolves the current character sheet. Expired effects are pruned.
func (s *Service) FinalStats() storage.CharacterStats {
	return FinalStats(s.doc.Stats, s.doc.Emotion, s.ActiveEffects())
}

func (s *Service) BaseStats() storage.CharacterStats { return s.doc.Stats }

func (s *Service) Emotion() storage.EmotionState { return s.doc.Emotion }

// SetEmotion sets a dimension, clamped to [0,100], and returns the stored value.
func (s *Service) SetEmotion(dim string, value int) (int, error) {
	if dim == "" || dim == "mood" || dim == "notes" {
		return 0, invalidInput("invalid emotion dimension %q", dim)
	}
	return s.doc.Emotion.Set(dim, value), nil
}

func (s *Service) SetMood(mood, notes string) {
	s.doc.Emotion.Mood = mood
	s.doc.Emotion.Notes = notes
}

func attributeValue(c storage.CharacterStats, a Attribute) int {
	switch a {
	case AttributeSTR:
		return c.Strength
	case AttributeINT:
		return c.Intelligence
	case AttributeWIS:
		return c.Wisdom
	case AttributeCHA:
		return c.Charisma
	case AttributeDEX:
		return c.Dexterity
	case AttributeLCK:
		return c.Luck
	default:
		return 0
	}
}

func setAttribute(c *storage.CharacterStats, a Attribute, v int) {
	switch a {
	case AttributeSTR:
		c.Strength = v
	case AttributeINT:
		c.Intelligence = v
	case AttributeWIS:
		c.Wisdom = v
	case AttributeCHA:
		c.Charisma = v
	case AttributeDEX:
		c.Dexterity = v
	case AttributeLCK:
		c.Luck = v
	}
}

// AttributeOf exposes attribute lookup for presentation code.
func AttributeOf(c storage.CharacterStats, a Attribute) int {
	return attributeValue(c, a)
}
