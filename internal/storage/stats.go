package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

type statField struct {
	key      string
	value    *int
	fallback int
}

func (s *CharacterStats) fields() []statField {
	return []statField{
		{"strength", &s.Strength, DefaultAttribute},
		{"intelligence", &s.Intelligence, DefaultAttribute},
		{"wisdom", &s.Wisdom, DefaultAttribute},
		{"charisma", &s.Charisma, DefaultAttribute},
		{"dexterity", &s.Dexterity, DefaultAttribute},
		{"luck", &s.Luck, DefaultAttribute},
		{"level", &s.Level, 1},
		{"exp", &s.Exp, 0},
		{"exp_to_next_level", &s.ExpToNextLevel, DefaultExpToNextLevel},
		{"energy", &s.Energy, DefaultMaxEnergy},
		{"max_energy", &s.MaxEnergy, DefaultMaxEnergy},
	}
}

// UnmarshalJSON reads each stat on its own. A stat that is not a number takes
// its default instead of failing the whole document; absent stats stay zero
// for Normalize.
func (s *CharacterStats) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = CharacterStats{}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode stats: %w", err)
	}

	var out CharacterStats
	for _, f := range out.fields() {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		*f.value = decodeStatValue(v, f.fallback)
	}
	*s = out
	return nil
}

func decodeStatValue(raw json.RawMessage, fallback int) int {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return fallback
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return fallback
	}
	return int(math.Round(f))
}
