package engine

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

// StreakBonusInterval is the streak length that pays the dark point bonus.
const StreakBonusInterval = 7

const statEnergy = "energy"

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

func ParseWeekday(input string) (time.Weekday, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	d, ok := weekdayNames[s]
	if !ok {
		return 0, invalidInput("invalid weekday: %q", input)
	}
	return d, nil
}

type HabitInput struct {
	Name     string
	Weekdays []string       // empty means every day
	Effects  map[string]int // attribute, energy or emotion keys
	Domains  map[string]int // domain id -> exp
}

func (s *Service) AddHabit(in HabitInput) (storage.HabitDef, error) {
	name, err := normalizeTitle(in.Name)
	if err != nil {
		return storage.HabitDef{}, err
	}
	weekdays := make([]string, 0, len(in.Weekdays))
	for _, w := range in.Weekdays {
		d, err := ParseWeekday(w)
		if err != nil {
			return storage.HabitDef{}, err
		}
		day := strings.ToLower(d.String())
		if !containsString(weekdays, day) {
			weekdays = append(weekdays, day)
		}
	}
	effects := map[string]int{}
	for k, v := range in.Effects {
		if !isHabitEffectKey(k) {
			return storage.HabitDef{}, invalidInput("unknown habit effect %q", k)
		}
		effects[k] = v
	}
	domains := map[string]int{}
	for id, exp := range in.Domains {
		if _, err := s.Domain(id); err != nil {
			return storage.HabitDef{}, err
		}
		if exp < 0 {
			return storage.HabitDef{}, invalidInput("domain exp must be non-negative, got %d", exp)
		}
		domains[id] = exp
	}

	h := storage.HabitDef{
		ID:       uuid.NewString(),
		Name:     name,
		Weekdays: weekdays,
		Effects:  effects,
		Domains:  domains,
	}
	s.doc.Habits.Definitions = append(s.doc.Habits.Definitions, h)
	return h, nil
}

func isHabitEffectKey(k string) bool {
	if k == statEnergy || Attribute(k).IsValid() {
		return true
	}
	for _, dim := range storage.StandardEmotions {
		if k == dim {
			return true
		}
	}
	return false
}

func (s *Service) Habit(id string) (storage.HabitDef, error) {
	for _, h := range s.doc.Habits.Definitions {
		if h.ID == id {
			return h, nil
		}
	}
	return storage.HabitDef{}, NotFoundError{Kind: "habit", Key: id}
}

func (s *Service) Habits() []storage.HabitDef {
	out := make([]storage.HabitDef, len(s.doc.Habits.Definitions))
	copy(out, s.doc.Habits.Definitions)
	return out
}

// AppliesOn reports whether h is scheduled on day's weekday.
func AppliesOn(h storage.HabitDef, day time.Time) bool {
	if len(h.Weekdays) == 0 {
		return true
	}
	return containsString(h.Weekdays, strings.ToLower(day.Weekday().String()))
}

// HabitsForDay returns the habits scheduled on day.
func (s *Service) HabitsForDay(day time.Time) []storage.HabitDef {
	var out []storage.HabitDef
	for _, h := range s.doc.Habits.Definitions {
		if AppliesOn(h, day) {
			out = append(out, h)
		}
	}
	return out
}

// HabitDone reports whether the habit was marked done on day.
func (s *Service) HabitDone(id string, day time.Time) bool {
	return s.doc.Habits.DailyLog[DateKey(day)][id]
}

type ToggleResult struct {
	Habit   storage.HabitDef
	Done    bool
	Streak  int
	Bonus   int
	Domains []DomainResult
}

// ToggleHabit flips the habit's mark for day. Marking it done applies its
// effects; unmarking resets the streak.
func (s *Service) ToggleHabit(id string, day time.Time) (ToggleResult, error) {
	h, err := s.Habit(id)
	if err != nil {
		return ToggleResult{}, err
	}
	if !AppliesOn(h, day) {
		return ToggleResult{}, StateError{
			Entity: fmt.Sprintf("habit %q", h.Name),
			State:  "not scheduled on " + strings.ToLower(day.Weekday().String()),
			Op:     "toggle",
		}
	}
	for d := range h.Domains {
		if _, err := s.Domain(d); err != nil {
			return ToggleResult{}, err
		}
	}

	book := &s.doc.Habits
	key := DateKey(day)
	if book.DailyLog[key] == nil {
		book.DailyLog[key] = map[string]bool{}
	}
	done := !book.DailyLog[key][id]
	book.DailyLog[key][id] = done

	res := ToggleResult{Habit: h, Done: done}
	if !done {
		book.Streaks[id] = 0
		return res, nil
	}

	res.Streak = s.streakEnding(id, day)
	book.Streaks[id] = res.Streak
	if res.Streak%StreakBonusInterval == 0 && !slices.Contains(book.BonusPaid[id], key) {
		book.BonusPaid[id] = append(book.BonusPaid[id], key)
		res.Bonus = book.StreakBonus
		s.doc.DarkPoints += book.StreakBonus
		s.appendLog(fmt.Sprintf("Racha de %d días en %s: +%d Dark Points", res.Streak, h.Name, book.StreakBonus))
	}

	s.applyHabitEffects(h.Effects)
	ids := make([]string, 0, len(h.Domains))
	for d := range h.Domains {
		ids = append(ids, d)
	}
	sort.Strings(ids)
	for _, d := range ids {
		dr, err := s.AddDomainExperience(d, h.Domains[d])
		if err != nil {
			return ToggleResult{}, err
		}
		res.Domains = append(res.Domains, dr)
	}
	return res, nil
}

// streakEnding counts consecutive done days ending at day.
func (s *Service) streakEnding(id string, day time.Time) int {
	n := 0
	for d := day; s.doc.Habits.DailyLog[DateKey(d)][id]; d = d.AddDate(0, 0, -1) {
		n++
	}
	return n
}

func (s *Service) applyHabitEffects(effects map[string]int) {
	for k, v := range effects {
		switch {
		case k == statEnergy:
			s.ChangeEnergy(v)
		case Attribute(k).IsValid():
			a := Attribute(k)
			setAttribute(&s.doc.Stats, a, attributeValue(s.doc.Stats, a)+v)
		default:
			s.doc.Emotion.Add(k, v)
		}
	}
}

type DaySummary struct {
	Date      string
	Completed int
}

// WeekSummary counts completed habits for the seven days starting at start.
func (s *Service) WeekSummary(start time.Time) []DaySummary {
	out := make([]DaySummary, 0, 7)
	for i := 0; i < 7; i++ {
		key := DateKey(start.AddDate(0, 0, i))
		n := 0
		for _, done := range s.doc.Habits.DailyLog[key] {
			if done {
				n++
			}
		}
		out = append(out, DaySummary{Date: key, Completed: n})
	}
	return out
}
