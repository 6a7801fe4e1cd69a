package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/storage"
)

var missionOrder = []engine.MissionType{engine.MissionMain, engine.MissionWeekly, engine.MissionDaily, engine.MissionSide}

type boardModel struct {
	ctx    context.Context
	svc    *engine.Service
	commit CommitFunc

	width  int
	height int

	snap     snapshot
	selected int

	lastLog string
	loading bool
}

// missionLine addresses a mission by its type list and index.
type missionLine struct {
	typ     engine.MissionType
	index   int
	mission storage.Mission
}

// snapshot is everything the view renders. It is captured inside commands so
// View never touches the service while a command may be mutating it.
type snapshot struct {
	stats    storage.CharacterStats
	base     storage.CharacterStats
	emotion  storage.EmotionState
	effects  []storage.Effect
	boss     *storage.BossState
	phase    *engine.PhaseDef
	curse    storage.CurseState
	domains  []storage.Domain
	dark     int
	missions []missionLine
}

type loadedMsg struct {
	snap    snapshot
	keepLog bool
}

type completedMsg struct {
	res engine.CompleteResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, commit CommitFunc) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		commit:  commit,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{snap: takeSnapshot(m.svc)}
	}
}

func (m boardModel) completeCmd(line missionLine) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteMission(m.ctx, line.typ, line.index)
		if err != nil {
			return completedMsg{err: err}
		}
		if m.commit != nil {
			if err := m.commit(m.ctx); err != nil {
				return completedMsg{err: err}
			}
		}
		return completedMsg{res: res}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.snap = msg.snap
		if m.selected >= len(m.snap.missions) {
			m.selected = len(m.snap.missions) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		if !msg.keepLog {
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.loading = false
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completed %q: +%d EXP, +%d dark (level %d → %d)",
			msg.res.Mission.Title, msg.res.Mission.RewardExp, msg.res.DarkPoints, msg.res.Level.LevelBefore, msg.res.Level.LevelAfter)
		return m, func() tea.Msg {
			return loadedMsg{snap: takeSnapshot(m.svc), keepLog: true}
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.snap.missions)-1 {
				m.selected++
			}
			return m, nil
		case "enter", "c", " ":
			if m.loading {
				return m, nil
			}
			if m.selected < 0 || m.selected >= len(m.snap.missions) {
				m.lastLog = "No pending mission selected."
				return m, nil
			}
			line := m.snap.missions[m.selected]
			if !engine.CanComplete(line.mission) {
				m.lastLog = "Already " + line.mission.Status + "."
				return m, nil
			}
			m.loading = true
			m.lastLog = fmt.Sprintf("Completing %q…", line.mission.Title)
			return m, m.completeCmd(line)
		}
	}
	return m, nil
}

func takeSnapshot(svc *engine.Service) snapshot {
	snap := snapshot{
		stats:    svc.FinalStats(),
		base:     svc.BaseStats(),
		emotion:  svc.Emotion(),
		effects:  svc.ActiveEffects(),
		curse:    svc.Curse(),
		dark:     svc.DarkPoints(),
		missions: collectMissions(svc),
	}
	if b, ok := svc.CurrentBoss(); ok {
		snap.boss = &b
		if phase, err := svc.CurrentPhase(); err == nil {
			snap.phase = &phase
		}
	}
	for _, id := range svc.DomainIDs() {
		if d, err := svc.Domain(id); err == nil {
			snap.domains = append(snap.domains, *d)
		}
	}
	return snap
}

// collectMissions lists pending missions, main quests first, soonest deadline first within a type.
func collectMissions(svc *engine.Service) []missionLine {
	var out []missionLine
	for _, t := range missionOrder {
		var lines []missionLine
		for i, ms := range svc.Missions(t) {
			if ms.Status != engine.StatusPending {
				continue
			}
			lines = append(lines, missionLine{typ: t, index: i, mission: ms})
		}
		sort.SliceStable(lines, func(i, j int) bool {
			return lines[i].mission.Deadline.Before(lines[j].mission.Deadline)
		})
		out = append(out, lines...)
	}
	return out
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	st := m.snap.stats
	if st.Level == 0 {
		return "Isekai System — loading…"
	}
	bar := progressBar(st.Exp, st.ExpToNextLevel, 30)
	return fmt.Sprintf("Isekai System | Level %d | EXP %d/%d %s | Energy %d/%d | Dark %d",
		st.Level, st.Exp, st.ExpToNextLevel, bar, st.Energy, st.MaxEnergy, m.snap.dark)
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Attributes"}
	for _, a := range engine.Attributes {
		final := engine.AttributeOf(m.snap.stats, a)
		delta := final - engine.AttributeOf(m.snap.base, a)
		mark := ""
		if delta != 0 {
			mark = fmt.Sprintf(" (%+d)", delta)
		}
		lines = append(lines, fmt.Sprintf("- %-3s %2d%s", strings.ToUpper(string(a)[:3]), final, mark))
	}
	lines = append(lines, "")
	lines = append(lines, "Emotions")
	e := m.snap.emotion
	for _, dim := range storage.StandardEmotions {
		lines = append(lines, fmt.Sprintf("- %-10s %s", dim, progressBar(e.Get(dim), 100, 10)))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter/c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Boss")
	switch b := m.snap.boss; {
	case b == nil:
		out = append(out, "(no active boss)")
	case b.Defeated:
		out = append(out, b.Name+" (defeated)")
	case m.snap.phase != nil:
		hp := m.snap.phase.HP
		out = append(out, fmt.Sprintf("%s phase %d/%d %s %d/%d", b.Name, b.Phase, b.TotalPhases, progressBar(b.CurrentHP, hp, 14), b.CurrentHP, hp))
	}
	if c := m.snap.curse; c.Active {
		out = append(out, fmt.Sprintf("Curse: Beso de la Bruja nivel %d", c.Intensity))
	}
	out = append(out, "")

	out = append(out, fmt.Sprintf("Effects (%d)", len(m.snap.effects)))
	for _, e := range m.snap.effects {
		out = append(out, fmt.Sprintf("- [%s] %s until %s", e.Kind, e.Name, e.Expires.Local().Format("01-02 15:04")))
	}
	out = append(out, "")

	out = append(out, "Domains")
	for _, d := range m.snap.domains {
		out = append(out, fmt.Sprintf("- %-12s L%d %s", d.Name, d.Level, progressBar(d.Exp, d.ExpToNext, 14)))
	}
	out = append(out, "")

	out = append(out, "Missions")
	if len(m.snap.missions) == 0 {
		out = append(out, "(no pending missions)")
		return strings.Join(out, "\n")
	}
	for i, line := range m.snap.missions {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		ms := line.mission
		out = append(out, fmt.Sprintf("%s[%s] %s (diff %d, +%d exp) due %s", cursor, line.typ, ms.Title, ms.Difficulty, ms.RewardExp, ms.Deadline.Local().Format("01-02")))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
