package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/storage"
)

type zeroRoller struct{}

func (zeroRoller) Intn(int) int { return 0 }

func newTestBoard(t *testing.T) (boardModel, *engine.Service, *int) {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := engine.NewService(storage.NewDocument(), zeroRoller{}, engine.WithClock(func() time.Time { return now }))
	for _, in := range []engine.CreateMissionInput{
		{Title: "Correr", Type: engine.MissionDaily, BaseDifficulty: 1},
		{Title: "Informe", Type: engine.MissionMain, BaseDifficulty: 2},
	} {
		if _, err := svc.CreateMission(in); err != nil {
			t.Fatalf("CreateMission: %v", err)
		}
	}
	commits := 0
	m := newBoardModel(context.Background(), svc, func(context.Context) error {
		commits++
		return nil
	})
	return m, svc, &commits
}

// step feeds msg to the model and runs the returned command once.
func step(t *testing.T, m boardModel, msg tea.Msg) (boardModel, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm := next.(boardModel)
	if cmd == nil {
		return bm, nil
	}
	return bm, cmd()
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardLoadsMainQuestsFirst(t *testing.T) {
	m, _, _ := newTestBoard(t)
	m, _ = step(t, m, m.Init()())
	if m.loading {
		t.Fatalf("still loading")
	}
	if len(m.snap.missions) != 2 || m.snap.missions[0].mission.Title != "Informe" {
		t.Fatalf("missions=%+v", m.snap.missions)
	}
	view := m.View()
	for _, want := range []string{"Level 1", "> [main] Informe", "(no active boss)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardCompletesSelectedMission(t *testing.T) {
	m, svc, commits := newTestBoard(t)
	m, _ = step(t, m, m.Init()())

	m, _ = step(t, m, key("j"))
	if m.selected != 1 {
		t.Fatalf("selected=%d, want 1", m.selected)
	}
	m, msg := step(t, m, key("c"))
	done, ok := msg.(completedMsg)
	if !ok || done.err != nil {
		t.Fatalf("msg=%#v", msg)
	}
	m, msg = step(t, m, done)
	m, _ = step(t, m, msg)

	if *commits != 1 {
		t.Fatalf("commits=%d, want 1", *commits)
	}
	if got := svc.Missions(engine.MissionDaily)[0].Status; got != engine.StatusCompleted {
		t.Fatalf("status=%s", got)
	}
	if len(m.snap.missions) != 1 || !strings.Contains(m.lastLog, "Completed \"Correr\"") {
		t.Fatalf("missions=%d log=%q", len(m.snap.missions), m.lastLog)
	}
	if m.selected != 0 {
		t.Fatalf("selection not clamped: %d", m.selected)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(5, 10, 10); got != "[#####-----]" {
		t.Fatalf("got %q", got)
	}
	if got := progressBar(20, 10, 4); got != "[####]" {
		t.Fatalf("overflow got %q", got)
	}
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight=%q", got)
	}
}
