package storage

import (
	"time"
)

// Document is the whole persisted state. Every engine component reads and
// mutates one shared *Document; it is written back once per user action.
type Document struct {
	Stats       CharacterStats       `json:"stats"`
	Emotion     EmotionState         `json:"emotion"`
	Effects     []Effect             `json:"effects"`
	Missions    map[string][]Mission `json:"missions"`
	Domains     map[string]*Domain   `json:"domains"`
	Boss        *BossState           `json:"bosses,omitempty"`
	Curse       CurseState           `json:"curse"`
	Events      []WorldEvent         `json:"events"`
	Habits      HabitBook            `json:"habits"`
	DarkPoints  int                  `json:"dark_points"`
	Logs        []LogEntry           `json:"logs"`
	World       World                `json:"world"`
	Map         ZoneMap              `json:"map"`
	RewardStore []Reward             `json:"reward_store"`
}

type CharacterStats struct {
	Strength       int `json:"strength"`
	Intelligence   int `json:"intelligence"`
	Wisdom         int `json:"wisdom"`
	Charisma       int `json:"charisma"`
	Dexterity      int `json:"dexterity"`
	Luck           int `json:"luck"`
	Level          int `json:"level"`
	Exp            int `json:"exp"`
	ExpToNextLevel int `json:"exp_to_next_level"`
	Energy         int `json:"energy"`
	MaxEnergy      int `json:"max_energy"`
}

type Effect struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      string         `json:"kind"` // buff | debuff
	Icon      string         `json:"icon,omitempty"`
	Modifiers map[string]int `json:"modifiers"`
	Start     time.Time      `json:"start"`
	Expires   time.Time      `json:"expires"`
}

type Mission struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"mission_type"`
	Domain      string     `json:"domain,omitempty"`
	Difficulty  int        `json:"difficulty"`
	RewardExp   int        `json:"reward_exp"`
	RewardDark  int        `json:"reward_dark"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	Deadline    time.Time  `json:"deadline"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

type Domain struct {
	Name             string            `json:"name"`
	Level            int               `json:"level"`
	Exp              int               `json:"exp"`
	ExpToNext        int               `json:"exp_to_next"`
	Milestones       map[string]string `json:"milestones"`
	Unlocked         []string          `json:"unlocked"`
	WeeklyObjectives []Objective       `json:"weekly_dynamic_milestones"`
}

type Objective struct {
	Task        string    `json:"task"`
	Completed   bool      `json:"completed"`
	GeneratedAt time.Time `json:"generated_at"`
}

type BossState struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phase       int       `json:"phase"`
	CurrentHP   int       `json:"current_hp"`
	TotalPhases int       `json:"total_phases"`
	StartDate   time.Time `json:"start_date"`
	Expires     time.Time `json:"expires"`
	Defeated    bool      `json:"defeated"`
}

type CurseState struct {
	Active        bool       `json:"active"`
	Intensity     int        `json:"intensity"`
	LastTrigger   *time.Time `json:"last_trigger,omitempty"`
	CooldownHours int        `json:"cooldown_hours"`
}

type WorldEvent struct {
	Type        string    `json:"type"` // real | random
	Category    string    `json:"category,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description"`
	Intensity   int       `json:"intensity,omitempty"`
	Date        time.Time `json:"date"`
}

type HabitBook struct {
	Definitions []HabitDef                 `json:"definitions"`
	DailyLog    map[string]map[string]bool `json:"daily_log"`
	Streaks     map[string]int             `json:"streaks"`
	StreakBonus int                        `json:"streak_bonus_dark_points"`
	// BonusPaid maps a habit id to the date keys on which a streak bonus was paid.
	BonusPaid   map[string][]string        `json:"streak_bonus_paid"`
}

type HabitDef struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Weekdays []string       `json:"weekdays,omitempty"` // empty means every day
	Effects  map[string]int `json:"effects,omitempty"`
	Domains  map[string]int `json:"domains,omitempty"`
}

type LogEntry struct {
	Date  time.Time `json:"date"`
	Entry string    `json:"entry"`
}

type World struct {
	Realms map[string]Realm `json:"realms"`
}

type Realm struct {
	Progress   int `json:"progress"`
	Reputation int `json:"reputation"`
	Difficulty int `json:"difficulty"`
}

type ZoneMap struct {
	ActiveZones     []string   `json:"active_zones"`
	DiscoveredZones []string   `json:"discovered_zones"`
	LastUpdate      *time.Time `json:"last_update,omitempty"`
}

type Reward struct {
	Name string `json:"name"`
	Cost int    `json:"cost"`
}
