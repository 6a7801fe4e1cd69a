package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

// EffectInput describes a time-bound modifier bundle.
type EffectInput struct {
	Name      string
	Kind      string // buff | debuff
	Icon      string
	Duration  time.Duration
	Modifiers map[string]int
}

// AddEffect appends a new effect starting now. Effects never merge; the same
// name may be active several times and all of them stack.
func (s *Service) AddEffect(in EffectInput) (storage.Effect, error) {
	if in.Name == "" {
		return storage.Effect{}, invalidInput("effect name is required")
	}
	if in.Duration <= 0 {
		return storage.Effect{}, invalidInput("effect duration must be positive")
	}
	kind := in.Kind
	switch kind {
	case EffectBuff, EffectDebuff:
	case "":
		kind = effectKindFor(in.Modifiers)
	default:
		return storage.Effect{}, invalidInput("unknown effect kind %q", in.Kind)
	}

	in.Kind = kind
	return s.addEffect(in), nil
}

func (s *Service) addEffect(in EffectInput) storage.Effect {
	mods := make(map[string]int, len(in.Modifiers))
	for k, v := range in.Modifiers {
		mods[k] = v
	}
	now := s.now()
	e := storage.Effect{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Kind:      in.Kind,
		Icon:      in.Icon,
		Modifiers: mods,
		Start:     now,
		Expires:   now.Add(in.Duration),
	}
	s.doc.Effects = append(s.doc.Effects, e)
	return e
}

// ActiveEffects drops every effect whose expiry is at or before now and returns the rest.
func (s *Service) ActiveEffects() []storage.Effect {
	now := s.now()
	kept := s.doc.Effects[:0]
	for _, e := range s.doc.Effects {
		if e.Expires.After(now) {
			kept = append(kept, e)
		}
	}
	s.doc.Effects = kept
	out := make([]storage.Effect, len(kept))
	copy(out, kept)
	return out
}

// AggregateModifiers sums the deltas of all active effects per key.
func (s *Service) AggregateModifiers() map[string]int {
	return sumModifiers(s.ActiveEffects())
}

func sumModifiers(effects []storage.Effect) map[string]int {
	out := map[string]int{}
	for _, e := range effects {
		for k, v := range e.Modifiers {
			out[k] += v
		}
	}
	return out
}

func effectKindFor(mods map[string]int) string {
	total := 0
	for _, v := range mods {
		total += v
	}
	if total < 0 {
		return EffectDebuff
	}
	return EffectBuff
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
