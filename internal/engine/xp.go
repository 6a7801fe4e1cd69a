package engine

import "fmt"

const (
	// CharacterGrowth multiplies the character level threshold after each level-up.
	CharacterGrowth = 1.25

	// DomainGrowth multiplies a domain level threshold after each level-up.
	DomainGrowth = 1.35

	// MissionDomainXPPerDifficulty is the domain XP granted per difficulty point.
	MissionDomainXPPerDifficulty = 15
)

type LevelResult struct {
	LevelBefore  int
	LevelAfter   int
	LevelsGained int
	Exp          int
	ExpToNext    int
}

func (r LevelResult) LevelUp() bool { return r.LevelsGained > 0 }

// growThreshold returns int(threshold*factor), never less than threshold+1.
func growThreshold(threshold int, factor float64) int {
	next := int(float64(threshold) * factor)
	if next <= threshold {
		next = threshold + 1
	}
	return next
}

// AddExperience grants character XP, leveling up as many times as the amount allows.
// Every level-up adds +1 strength and +1 wisdom.
func (s *Service) AddExperience(amount int) (LevelResult, error) {
	if amount < 0 {
		return LevelResult{}, invalidInput("experience must be non-negative, got %d", amount)
	}
	st := &s.doc.Stats
	res := LevelResult{LevelBefore: st.Level}

	st.Exp += amount
	for st.Exp >= st.ExpToNextLevel {
		st.Exp -= st.ExpToNextLevel
		st.Level++
		st.ExpToNextLevel = growThreshold(st.ExpToNextLevel, CharacterGrowth)
		st.Strength++
		st.Wisdom++
		res.LevelsGained++
		s.logger.Printf("level up: %d", st.Level)
		s.appendLog(fmt.Sprintf("🎉 LEVEL UP! Nivel %d", st.Level))
	}

	res.LevelAfter = st.Level
	res.Exp = st.Exp
	res.ExpToNext = st.ExpToNextLevel
	return res, nil
}

// ChangeEnergy adds delta and clamps energy to [0, max_energy].
func (s *Service) ChangeEnergy(delta int) int {
	st := &s.doc.Stats
	st.Energy = clampInt(st.Energy+delta, 0, st.MaxEnergy)
	return st.Energy
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
