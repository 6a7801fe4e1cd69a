package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

const (
	EmotionStress     = "stress"
	EmotionAnxiety    = "anxiety"
	EmotionMotivation = "motivation"
	EmotionClarity    = "clarity"
	EmotionFatigue    = "fatigue"
)

// EmotionNeutral replaces missing or malformed emotion values.
const EmotionNeutral = 50

// StandardEmotions are always present after Normalize.
var StandardEmotions = []string{EmotionStress, EmotionAnxiety, EmotionMotivation, EmotionClarity, EmotionFatigue}

// EmotionState holds numeric emotional dimensions clamped to [0,100] plus free text.
// It is stored as one flat JSON object: {"stress": 40, ..., "mood": "..."}.
type EmotionState struct {
	Levels map[string]int
	Mood   string
	Notes  string
}

func ClampEmotion(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Get returns the dimension value, or EmotionNeutral when it is unset.
func (e EmotionState) Get(dim string) int {
	v, ok := e.Levels[dim]
	if !ok {
		return EmotionNeutral
	}
	return v
}

func (e *EmotionState) Set(dim string, v int) int {
	if e.Levels == nil {
		e.Levels = map[string]int{}
	}
	e.Levels[dim] = ClampEmotion(v)
	return e.Levels[dim]
}

func (e *EmotionState) Add(dim string, delta int) int {
	return e.Set(dim, e.Get(dim)+delta)
}

// Has reports whether dim is a tracked emotional dimension.
func (e EmotionState) Has(dim string) bool {
	_, ok := e.Levels[dim]
	return ok
}

// Dimensions returns the tracked dimension names in a stable order.
func (e EmotionState) Dimensions() []string {
	out := make([]string, 0, len(e.Levels))
	for k := range e.Levels {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (e EmotionState) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(e.Levels)+2)
	for k, v := range e.Levels {
		flat[k] = v
	}
	if e.Mood != "" {
		flat["mood"] = e.Mood
	}
	if e.Notes != "" {
		flat["notes"] = e.Notes
	}
	return json.Marshal(flat)
}

func (e *EmotionState) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = EmotionState{}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode emotion: %w", err)
	}

	out := EmotionState{Levels: make(map[string]int, len(raw))}
	for k, v := range raw {
		switch k {
		case "mood":
			_ = json.Unmarshal(v, &out.Mood)
		case "notes":
			_ = json.Unmarshal(v, &out.Notes)
		default:
			out.Levels[k] = decodeEmotionValue(v)
		}
	}
	*e = out
	return nil
}

// decodeEmotionValue substitutes EmotionNeutral for anything that is not a number.
func decodeEmotionValue(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return EmotionNeutral
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return EmotionNeutral
	}
	return ClampEmotion(int(math.Round(f)))
}
