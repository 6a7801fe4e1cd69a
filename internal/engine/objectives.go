package engine

import (
	"fmt"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

const (
	WeeklyObjectivesPerDomain = 3
	WeeklyObjectiveExp        = 20
)

type objectiveRule struct {
	task string
	when func(storage.EmotionState) bool
}

var objectiveBase = map[string][]string{
	"politics": {
		"Leer análisis de coyuntura nacional",
		"Enviar un mensaje profesional a un contacto político",
		"Actualizar tu agenda de networking político",
		"Leer un informe del BID o CAF",
		"Escribir 3 líneas de opinión política",
	},
	"academia": {
		"Leer 5 páginas de un artículo del máster",
		"Corregir 1 párrafo de tu tesis",
		"Repasar una fórmula o modelo",
		"Hacer 30 minutos de estudio suave",
		"Organizar tus archivos académicos",
	},
	"consulting": {
		"Enviar 1 aplicación en Mercor",
		"Actualizar 1 línea del CV",
		"Mejorar tu bio profesional",
		"Crear una métrica para tu portafolio",
		"Revisar oportunidades laborales",
	},
	"finance": {
		"Ahorrar 20.000 pesos hoy",
		"Registrar gastos del día",
		"Revisar tu presupuesto semanal",
		"Eliminar un gasto innecesario",
		"Actualizar tu control financiero",
	},
	"family": {
		"Enviar un mensaje amable a tu mamá",
		"Hablar 5 minutos con tu papá",
		"Preguntar por el día de tu familia",
		"Proponer un plan sencillo del fin de semana",
		"Agradecer algo pequeño hoy",
	},
}

var objectiveExtras = map[string][]objectiveRule{
	"politics": {
		{"Buscar un nuevo contacto político", above(storage.EmotionMotivation, 70)},
		{"Analizar un discurso político reciente", below(storage.EmotionStress, 40)},
	},
	"academia": {
		{"Resolver un ejercicio académico", below(storage.EmotionAnxiety, 40)},
	},
	"consulting": {
		{"Elegir un proyecto para portafolio", above(storage.EmotionMotivation, 60)},
	},
	"finance": {
		{"Evitar compras impulsivas", above(storage.EmotionStress, 50)},
	},
	"family": {
		{"Proponer mejorar la comunicación con 1 familiar", above(storage.EmotionMotivation, 55)},
	},
}

// ObjectiveCandidates lists the weekly objective pool for a domain under the
// given emotions. Unknown domains have no candidates.
func ObjectiveCandidates(domain string, e storage.EmotionState) []string {
	out := append([]string(nil), objectiveBase[domain]...)
	for _, r := range objectiveExtras[domain] {
		if r.when(e) {
			out = append(out, r.task)
		}
	}
	return out
}

// GenerateWeeklyObjectives replaces every domain's weekly objectives with up to
// three distinct candidates. Domains without candidates are left untouched.
func (s *Service) GenerateWeeklyObjectives() map[string][]storage.Objective {
	now := s.now()
	out := map[string][]storage.Objective{}
	for _, id := range s.DomainIDs() {
		pool := ObjectiveCandidates(id, s.doc.Emotion)
		if len(pool) == 0 {
			continue
		}
		n := WeeklyObjectivesPerDomain
		if len(pool) < n {
			n = len(pool)
		}
		// partial Fisher-Yates
		for i := 0; i < n; i++ {
			j := i + s.rng.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}
		objs := make([]storage.Objective, 0, n)
		for _, task := range pool[:n] {
			objs = append(objs, storage.Objective{Task: task, GeneratedAt: now})
		}
		s.doc.Domains[id].WeeklyObjectives = objs
		out[id] = objs
	}
	return out
}

type ObjectiveResult struct {
	Objective storage.Objective
	Domain    DomainResult
}

func (s *Service) CompleteWeeklyObjective(domain string, index int) (ObjectiveResult, error) {
	d, err := s.Domain(domain)
	if err != nil {
		return ObjectiveResult{}, err
	}
	if index < 0 || index >= len(d.WeeklyObjectives) {
		return ObjectiveResult{}, indexNotFound(domain+" objective", index)
	}
	obj := &d.WeeklyObjectives[index]
	if obj.Completed {
		return ObjectiveResult{}, StateError{Entity: fmt.Sprintf("objective %q", obj.Task), State: StatusCompleted, Op: "complete"}
	}
	obj.Completed = true
	dr, err := s.AddDomainExperience(domain, WeeklyObjectiveExp)
	if err != nil {
		return ObjectiveResult{}, err
	}
	s.appendLog(fmt.Sprintf("Objetivo semanal completado en %s: %s", domain, obj.Task))
	return ObjectiveResult{Objective: *obj, Domain: dr}, nil
}

// ClearWeeklyObjectives empties the weekly objectives of every domain.
func (s *Service) ClearWeeklyObjectives() {
	for _, d := range s.doc.Domains {
		d.WeeklyObjectives = []storage.Objective{}
	}
	s.appendLog("Reset semanal de objetivos dinámicos.")
}
