package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

func TestBuyReward(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.AddReward("Cine", 100); err != nil {
		t.Fatalf("AddReward: %v", err)
	}

	svc.Document().DarkPoints = 60
	if _, err := svc.BuyReward("Cine"); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("err=%v, want ErrInsufficientPoints", err)
	}
	if svc.DarkPoints() != 60 {
		t.Fatalf("balance changed on failed purchase: %d", svc.DarkPoints())
	}

	svc.Document().DarkPoints = 130
	if _, err := svc.BuyReward("Cine"); err != nil {
		t.Fatalf("BuyReward: %v", err)
	}
	if svc.DarkPoints() != 30 {
		t.Fatalf("balance=%d, want 30", svc.DarkPoints())
	}
	logs := svc.Logs(1)
	if len(logs) != 1 || !strings.Contains(logs[0].Entry, "Recompensa adquirida: Cine (-100 Dark Points)") {
		t.Fatalf("logs=%+v", logs)
	}

	if _, err := svc.BuyReward("Viaje"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown reward err=%v", err)
	}
}

func TestAddRemoveReward(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.AddReward("Cine", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero cost err=%v", err)
	}
	if _, err := svc.AddReward("Cine", 50); err != nil {
		t.Fatalf("AddReward: %v", err)
	}
	if _, err := svc.AddReward("Cine", 70); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("duplicate err=%v", err)
	}
	if err := svc.RemoveReward("Cine"); err != nil {
		t.Fatalf("RemoveReward: %v", err)
	}
	if err := svc.RemoveReward("Cine"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("remove twice err=%v", err)
	}
	if len(svc.Rewards()) != 0 {
		t.Fatalf("rewards=%v", svc.Rewards())
	}
}

func TestRenderChapter(t *testing.T) {
	svc, clock, _ := newTestService(t)
	svc.InitializeWorld()
	if _, err := svc.RegisterRealEvent("work", "Entrega del proyecto", 1); err != nil {
		t.Fatalf("RegisterRealEvent: %v", err)
	}
	svc.Document().Events = append(svc.Document().Events, storage.WorldEvent{
		Type: EventReal, Description: "Otro día", Date: clock.Now().Add(-48 * time.Hour),
	})

	out := RenderChapter(DateKey(clock.Now()), svc.Document())
	for _, want := range []string{
		"CAPÍTULO DEL 2025-03-10",
		"strength: 10",
		"Academia: progreso 15%",
		"No había boss activo.",
		"REAL: Entrega del proyecto",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("chapter missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Otro día") {
		t.Fatalf("chapter includes events from another day")
	}
}

func TestAchievements(t *testing.T) {
	svc, _, _ := newTestService(t)
	checker := NewAchievementChecker(svc.Document())
	if checker.CountEarned() != 0 {
		t.Fatalf("earned=%d on a fresh sheet", checker.CountEarned())
	}

	if _, err := svc.AddExperience(100); err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	earned := map[string]bool{}
	for _, a := range svc.Achievements() {
		earned[a.ID] = a.Earned
	}
	if !earned["first_steps"] || earned["awakened"] {
		t.Fatalf("earned=%v", earned)
	}
	if checker.CountTotal() != len(svc.Achievements()) {
		t.Fatalf("total mismatch")
	}
}
