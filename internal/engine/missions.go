package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

const (
	MissionExpPerDifficultyMin = 5
	MissionExpPerDifficultyMax = 15
	DefaultMissionRetention    = 30 * 24 * time.Hour
)

type CreateMissionInput struct {
	Title          string
	Description    string
	Type           MissionType
	BaseDifficulty int
	Deadline       time.Duration // offset from now; zero means one day
	Domain         string        // optional domain credited on completion
}

type CompleteResult struct {
	Mission    storage.Mission
	Level      LevelResult
	Domain     *DomainResult
	DarkPoints int
}

// EmotionalDifficultyModifier adds one per stressor: stress>70, anxiety>70, energy<40.
func (s *Service) EmotionalDifficultyModifier() int {
	mod := 0
	if s.doc.Emotion.Get(storage.EmotionStress) > 70 {
		mod++
	}
	if s.doc.Emotion.Get(storage.EmotionAnxiety) > 70 {
		mod++
	}
	if s.doc.Stats.Energy < 40 {
		mod++
	}
	return mod
}

// EffectiveDifficulty applies the mission type and emotional load to a base difficulty.
func (s *Service) EffectiveDifficulty(base int, t MissionType) Difficulty {
	d := base
	if t == MissionWeekly || t == MissionMain {
		d++
	}
	d += s.EmotionalDifficultyModifier()
	return clampDifficulty(d)
}

func (s *Service) CreateMission(in CreateMissionInput) (storage.Mission, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return storage.Mission{}, err
	}
	if !in.Type.IsValid() {
		return storage.Mission{}, invalidInput("unknown mission type %q", in.Type)
	}
	if !Difficulty(in.BaseDifficulty).IsValid() {
		return storage.Mission{}, invalidInput("difficulty must be 1-5, got %d", in.BaseDifficulty)
	}
	if in.Deadline < 0 {
		return storage.Mission{}, invalidInput("deadline must not be in the past")
	}
	if in.Domain != "" {
		if _, err := s.Domain(in.Domain); err != nil {
			return storage.Mission{}, err
		}
	}
	deadline := in.Deadline
	if deadline == 0 {
		deadline = days(1)
	}

	diff := int(s.EffectiveDifficulty(in.BaseDifficulty, in.Type))
	now := s.now()
	m := storage.Mission{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		Type:        string(in.Type),
		Domain:      in.Domain,
		Difficulty:  diff,
		RewardExp:   s.roll(MissionExpPerDifficultyMin*diff, MissionExpPerDifficultyMax*diff),
		RewardDark:  diff * s.roll(1, 3),
		Status:      StatusPending,
		CreatedAt:   now,
		Deadline:    now.Add(deadline),
	}
	key := string(in.Type)
	s.doc.Missions[key] = append(s.doc.Missions[key], m)
	return m, nil
}

// Missions returns a copy of the missions of one type in insertion order.
func (s *Service) Missions(t MissionType) []storage.Mission {
	list := s.doc.Missions[string(t)]
	out := make([]storage.Mission, len(list))
	copy(out, list)
	return out
}

// CompleteMission completes a pending mission and pays its rewards exactly once.
func (s *Service) CompleteMission(ctx context.Context, t MissionType, index int) (CompleteResult, error) {
	list := s.doc.Missions[string(t)]
	if index < 0 || index >= len(list) {
		return CompleteResult{}, indexNotFound(string(t)+" mission", index)
	}
	m := &list[index]
	if m.Domain != "" {
		if _, err := s.Domain(m.Domain); err != nil {
			return CompleteResult{}, err
		}
	}
	if err := transitionMission(ctx, m, eventComplete); err != nil {
		return CompleteResult{}, err
	}
	now := s.now()
	m.CompletedAt = &now

	lvl, err := s.AddExperience(m.RewardExp)
	if err != nil {
		return CompleteResult{}, err
	}
	s.doc.DarkPoints += m.RewardDark
	res := CompleteResult{Level: lvl, DarkPoints: s.doc.DarkPoints}

	if m.Domain != "" {
		dr, err := s.AddDomainExperience(m.Domain, MissionDomainXPPerDifficulty*m.Difficulty)
		if err != nil {
			return CompleteResult{}, err
		}
		res.Domain = &dr
	}
	s.appendLog(fmt.Sprintf("Misión completada: %s (+%d EXP, +%d Dark Points)", m.Title, m.RewardExp, m.RewardDark))
	res.Mission = *m
	return res, nil
}

// FailExpiredMissions fails every pending mission whose deadline has passed.
// When any failed, one penalty debuff is applied for the whole batch.
func (s *Service) FailExpiredMissions(ctx context.Context) ([]storage.Mission, error) {
	now := s.now()
	var failed []storage.Mission
	for _, key := range s.missionKeys() {
		list := s.doc.Missions[key]
		for i := range list {
			m := &list[i]
			if m.Status != StatusPending || !m.Deadline.Before(now) {
				continue
			}
			if err := transitionMission(ctx, m, eventFail); err != nil {
				return failed, err
			}
			at := now
			m.FailedAt = &at
			failed = append(failed, *m)
		}
	}
	if len(failed) > 0 {
		s.addEffect(EffectInput{
			Name:      "Frustración por Misiones Incompletas",
			Kind:      EffectDebuff,
			Icon:      "debuff",
			Duration:  24 * time.Hour,
			Modifiers: map[string]int{string(AttributeWIS): -1, string(AttributeCHA): -1},
		})
		s.appendLog(fmt.Sprintf("%d misiones fallidas por vencimiento.", len(failed)))
	}
	return failed, nil
}

// CleanupMissions drops missions created more than retention ago, whatever their status.
func (s *Service) CleanupMissions(retention time.Duration) int {
	if retention <= 0 {
		retention = DefaultMissionRetention
	}
	now := s.now()
	removed := 0
	for key, list := range s.doc.Missions {
		kept := list[:0]
		for _, m := range list {
			if now.Sub(m.CreatedAt) < retention {
				kept = append(kept, m)
				continue
			}
			removed++
		}
		s.doc.Missions[key] = kept
	}
	return removed
}

// missionKeys returns the known types first, then any other stored keys sorted.
func (s *Service) missionKeys() []string {
	keys := make([]string, 0, len(s.doc.Missions))
	seen := map[string]bool{}
	for _, t := range MissionTypes {
		if _, ok := s.doc.Missions[string(t)]; ok {
			keys = append(keys, string(t))
			seen[string(t)] = true
		}
	}
	var extra []string
	for k := range s.doc.Missions {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func (s *Service) optionalDomain(id string) string {
	if _, ok := s.doc.Domains[id]; ok {
		return id
	}
	return ""
}

// GenerateDailyMissions creates the base daily set plus emotion- and energy-driven extras.
func (s *Service) GenerateDailyMissions() ([]storage.Mission, error) {
	inputs := []CreateMissionInput{
		{Title: "Revisión Estratégica del Día", Description: "Planifica tu día usando el sistema Isekai.", BaseDifficulty: 1},
		{Title: "Acción Profesional", Description: "Avanzar en Mercor, CV o portafolio.", BaseDifficulty: 2, Domain: s.optionalDomain("consulting")},
		{Title: "Romper la Maldición", Description: "Haz una microacción de avance.", BaseDifficulty: 1},
	}
	if s.doc.Emotion.Get(storage.EmotionAnxiety) > 60 {
		inputs = append(inputs, CreateMissionInput{Title: "Calm Quest", Description: "5 minutos de respiración consciente.", BaseDifficulty: 1})
	}
	if s.doc.Stats.Energy > 65 {
		inputs = append(inputs, CreateMissionInput{Title: "Estudio Extra", Description: "30 minutos adicionales de estudio.", BaseDifficulty: 2, Domain: s.optionalDomain("academia")})
	}
	return s.createBatch(MissionDaily, days(1), inputs)
}

func (s *Service) GenerateWeeklyMissions() ([]storage.Mission, error) {
	inputs := []CreateMissionInput{
		{Title: "Progreso en Mercor", Description: "Aplicar a trabajos, mejorar perfil, enviar portafolio.", BaseDifficulty: 3, Domain: s.optionalDomain("consulting")},
		{Title: "Avance Académico", Description: "Tesis, lecturas o tareas del máster.", BaseDifficulty: 2, Domain: s.optionalDomain("academia")},
		{Title: "Mantenimiento del Mundo Exterior", Description: "Acción de orden, finanzas o salud.", BaseDifficulty: 1, Domain: s.optionalDomain("finance")},
	}
	return s.createBatch(MissionWeekly, days(7), inputs)
}

func (s *Service) createBatch(t MissionType, deadline time.Duration, inputs []CreateMissionInput) ([]storage.Mission, error) {
	out := make([]storage.Mission, 0, len(inputs))
	for _, in := range inputs {
		in.Type = t
		in.Deadline = deadline
		m, err := s.CreateMission(in)
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, nil
}
