package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

// RenderChapter narrates a snapshot taken on date (YYYY-MM-DD).
func RenderChapter(date string, doc *storage.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📜 CAPÍTULO DEL %s\n", date)
	b.WriteString("============================\n\n")

	st := doc.Stats
	b.WriteString("📊 ESTADÍSTICAS DEL PERSONAJE:\n")
	for _, a := range Attributes {
		fmt.Fprintf(&b, "  - %s: %d\n", a, attributeValue(st, a))
	}
	fmt.Fprintf(&b, "  - level: %d\n", st.Level)
	fmt.Fprintf(&b, "  - exp: %d/%d\n", st.Exp, st.ExpToNextLevel)
	fmt.Fprintf(&b, "  - energy: %d/%d\n", st.Energy, st.MaxEnergy)

	b.WriteString("\n🧠 ESTADO EMOCIONAL:\n")
	for _, dim := range doc.Emotion.Dimensions() {
		fmt.Fprintf(&b, "  - %s: %d\n", dim, doc.Emotion.Get(dim))
	}
	if doc.Emotion.Mood != "" {
		fmt.Fprintf(&b, "  - mood: %s\n", doc.Emotion.Mood)
	}

	b.WriteString("\n🗺️ ESTADO DEL MUNDO:\n")
	realms := make([]string, 0, len(doc.World.Realms))
	for name := range doc.World.Realms {
		realms = append(realms, name)
	}
	sort.Strings(realms)
	for _, name := range realms {
		r := doc.World.Realms[name]
		fmt.Fprintf(&b, "  - %s: progreso %d%%, reputación %d\n", capitalize(name), r.Progress, r.Reputation)
	}

	b.WriteString("\n⚔️ BOSS DEL MES:\n")
	if boss := doc.Boss; boss != nil {
		fmt.Fprintf(&b, "  - %s (Fase %d, HP actual: %d)\n", boss.Name, boss.Phase, boss.CurrentHP)
	} else {
		b.WriteString("  - No había boss activo.\n")
	}

	b.WriteString("\n📜 EVENTOS DEL DÍA:\n")
	for _, ev := range doc.Events {
		if DateKey(ev.Date) == date {
			fmt.Fprintf(&b, "  - %s: %s\n", strings.ToUpper(ev.Type), ev.Description)
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
