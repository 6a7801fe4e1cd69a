package engine

import (
	"errors"
	"testing"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

func TestObjectiveCandidatesFollowEmotions(t *testing.T) {
	calm := storage.EmotionState{Levels: map[string]int{storage.EmotionMotivation: 50, storage.EmotionStress: 50}}
	if got := ObjectiveCandidates("politics", calm); len(got) != 5 {
		t.Fatalf("calm politics candidates=%d, want 5", len(got))
	}
	driven := storage.EmotionState{Levels: map[string]int{storage.EmotionMotivation: 75, storage.EmotionStress: 30}}
	if got := ObjectiveCandidates("politics", driven); len(got) != 7 {
		t.Fatalf("driven politics candidates=%d, want 7", len(got))
	}
	if got := ObjectiveCandidates("astrology", calm); len(got) != 0 {
		t.Fatalf("unknown domain candidates=%v", got)
	}
}

func TestGenerateWeeklyObjectives(t *testing.T) {
	svc, clock, _ := newTestService(t)
	svc.InitializeWorld()

	out := svc.GenerateWeeklyObjectives()
	if len(out) != 5 {
		t.Fatalf("domains with objectives=%d, want 5", len(out))
	}
	for id, objs := range out {
		if len(objs) != WeeklyObjectivesPerDomain {
			t.Fatalf("%s objectives=%d, want %d", id, len(objs), WeeklyObjectivesPerDomain)
		}
		seen := map[string]bool{}
		for _, o := range objs {
			if seen[o.Task] {
				t.Fatalf("%s duplicate objective %q", id, o.Task)
			}
			seen[o.Task] = true
			if o.Completed || !o.GeneratedAt.Equal(clock.Now()) {
				t.Fatalf("objective=%+v", o)
			}
		}
		d, _ := svc.Domain(id)
		if len(d.WeeklyObjectives) != len(objs) {
			t.Fatalf("%s stored objectives=%d", id, len(d.WeeklyObjectives))
		}
	}
}

func TestCompleteWeeklyObjective(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.InitializeWorld()
	svc.GenerateWeeklyObjectives()

	res, err := svc.CompleteWeeklyObjective("finance", 1)
	if err != nil {
		t.Fatalf("CompleteWeeklyObjective: %v", err)
	}
	if !res.Objective.Completed {
		t.Fatalf("objective not completed")
	}
	if d, _ := svc.Domain("finance"); d.Exp != WeeklyObjectiveExp {
		t.Fatalf("finance exp=%d, want %d", d.Exp, WeeklyObjectiveExp)
	}

	if _, err := svc.CompleteWeeklyObjective("finance", 1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second completion err=%v", err)
	}
	if _, err := svc.CompleteWeeklyObjective("finance", 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("out of range err=%v", err)
	}
	if _, err := svc.CompleteWeeklyObjective("astrology", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown domain err=%v", err)
	}

	svc.ClearWeeklyObjectives()
	for _, id := range svc.DomainIDs() {
		if d, _ := svc.Domain(id); len(d.WeeklyObjectives) != 0 {
			t.Fatalf("%s objectives not cleared", id)
		}
	}
}
