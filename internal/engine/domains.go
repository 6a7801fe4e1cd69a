package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

type DomainResult struct {
	Domain       string
	LevelsGained int
	NewLevel     int
	Unlocked     []string // milestone descriptions unlocked by this grant
}

func (r DomainResult) LeveledUp() bool { return r.LevelsGained > 0 }

func (s *Service) Domain(id string) (*storage.Domain, error) {
	d, ok := s.doc.Domains[id]
	if !ok {
		return nil, NotFoundError{Kind: "domain", Key: id}
	}
	return d, nil
}

// DomainIDs returns domain ids sorted.
func (s *Service) DomainIDs() []string {
	ids := make([]string, 0, len(s.doc.Domains))
	for id := range s.doc.Domains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddDomainExperience grants XP to a domain. Every crossed level checks its
// milestone; a milestone unlocks at most once and discovers a map zone.
func (s *Service) AddDomainExperience(id string, amount int) (DomainResult, error) {
	if amount < 0 {
		return DomainResult{}, invalidInput("experience must be non-negative, got %d", amount)
	}
	d, err := s.Domain(id)
	if err != nil {
		return DomainResult{}, err
	}

	res := DomainResult{Domain: id}
	d.Exp += amount
	for d.Exp >= d.ExpToNext {
		d.Exp -= d.ExpToNext
		d.Level++
		d.ExpToNext = growThreshold(d.ExpToNext, DomainGrowth)
		res.LevelsGained++
		if event, ok := s.checkMilestone(id, d); ok {
			res.Unlocked = append(res.Unlocked, event)
		}
	}
	res.NewLevel = d.Level
	return res, nil
}

func (s *Service) checkMilestone(id string, d *storage.Domain) (string, bool) {
	key := strconv.Itoa(d.Level)
	event, ok := d.Milestones[key]
	if !ok || containsString(d.Unlocked, key) {
		return "", false
	}
	d.Unlocked = append(d.Unlocked, key)
	s.appendLog(fmt.Sprintf("[DOMINIO] %s alcanzó el hito: %s", d.Name, event))
	s.logger.Printf("domain %s milestone %s unlocked", id, key)
	s.discoverZone(fmt.Sprintf("%s_lvl_%s", id, event))
	return event, true
}

// discoverZone marks a zone discovered and active. Marking it again changes nothing
// but the update timestamp.
func (s *Service) discoverZone(zone string) {
	m := &s.doc.Map
	if !containsString(m.DiscoveredZones, zone) {
		m.DiscoveredZones = append(m.DiscoveredZones, zone)
	}
	if !containsString(m.ActiveZones, zone) {
		m.ActiveZones = append(m.ActiveZones, zone)
	}
	now := s.now()
	m.LastUpdate = &now
}

func (s *Service) ZoneMap() storage.ZoneMap { return s.doc.Map }

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultDomains is the starting set of life domains seeded by InitializeWorld.
func DefaultDomains() map[string]*storage.Domain {
	mk := func(name string, milestones map[string]string) *storage.Domain {
		return &storage.Domain{
			Name:             name,
			Level:            1,
			ExpToNext:        storage.DefaultDomainExpToNext,
			Milestones:       milestones,
			Unlocked:         []string{},
			WeeklyObjectives: []storage.Objective{},
		}
	}
	return map[string]*storage.Domain{
		"academia": mk("Academia", map[string]string{
			"2": "Rutina de estudio estable",
			"3": "Capítulo de tesis terminado",
			"5": "Defensa del máster",
		}),
		"consulting": mk("Consultoría", map[string]string{
			"2": "Portafolio publicado",
			"4": "Primer cliente",
		}),
		"finance": mk("Finanzas", map[string]string{
			"2": "Presupuesto mensual al día",
			"3": "Fondo de emergencia iniciado",
			"5": "Deudas bajo control",
		}),
		"family": mk("Familia", map[string]string{
			"2": "Conversación semanal",
			"4": "Plan familiar cumplido",
		}),
		"politics": mk("Política", map[string]string{
			"3": "Red de contactos activa",
		}),
	}
}
