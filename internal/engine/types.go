package engine

import "strings"

type Attribute string

const (
	AttributeSTR Attribute = "strength"
	AttributeINT Attribute = "intelligence"
	AttributeWIS Attribute = "wisdom"
	AttributeCHA Attribute = "charisma"
	AttributeDEX Attribute = "dexterity"
	AttributeLCK Attribute = "luck"
)

// Attributes lists the six core attributes in display order.
var Attributes = []Attribute{AttributeSTR, AttributeINT, AttributeWIS, AttributeCHA, AttributeDEX, AttributeLCK}

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeSTR, AttributeINT, AttributeWIS, AttributeCHA, AttributeDEX, AttributeLCK:
		return true
	default:
		return false
	}
}

// ParseAttribute accepts full names and the usual three-letter abbreviations.
func ParseAttribute(input string) (Attribute, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "str", "strength":
		return AttributeSTR, true
	case "int", "intelligence":
		return AttributeINT, true
	case "wis", "wisdom":
		return AttributeWIS, true
	case "cha", "charisma":
		return AttributeCHA, true
	case "dex", "dexterity":
		return AttributeDEX, true
	case "lck", "luck":
		return AttributeLCK, true
	default:
		return "", false
	}
}

type Difficulty int

const (
	DifficultyTrivial Difficulty = 1
	DifficultyEasy    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyHard    Difficulty = 4
	DifficultyEpic    Difficulty = 5
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyEpic
}

func clampDifficulty(d int) Difficulty {
	if d < int(DifficultyTrivial) {
		return DifficultyTrivial
	}
	if d > int(DifficultyEpic) {
		return DifficultyEpic
	}
	return Difficulty(d)
}

type MissionType string

const (
	MissionDaily  MissionType = "daily"
	MissionWeekly MissionType = "weekly"
	MissionSide   MissionType = "side"
	MissionMain   MissionType = "main"
)

var MissionTypes = []MissionType{MissionDaily, MissionWeekly, MissionSide, MissionMain}

func (t MissionType) IsValid() bool {
	switch t {
	case MissionDaily, MissionWeekly, MissionSide, MissionMain:
		return true
	default:
		return false
	}
}

func ParseMissionType(input string) (MissionType, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "main_quest" {
		s = string(MissionMain)
	}
	t := MissionType(s)
	return t, t.IsValid()
}

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	EffectBuff   = "buff"
	EffectDebuff = "debuff"
)
