package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/Reiker1894/isekai-system/internal/storage"
)

const (
	eventComplete = "complete"
	eventFail     = "fail"
)

// missionLifecycle: pending -> completed | failed. Both targets are terminal.
func missionLifecycle(status string) *fsm.FSM {
	return fsm.NewFSM(
		status,
		fsm.Events{
			{Name: eventComplete, Src: []string{StatusPending}, Dst: StatusCompleted},
			{Name: eventFail, Src: []string{StatusPending}, Dst: StatusFailed},
		},
		fsm.Callbacks{},
	)
}

func transitionMission(ctx context.Context, m *storage.Mission, event string) error {
	f := missionLifecycle(m.Status)
	if err := f.Event(ctx, event); err != nil {
		var invalid fsm.InvalidEventError
		if errors.As(err, &invalid) {
			return StateError{Entity: fmt.Sprintf("mission %q", m.Title), State: m.Status, Op: event}
		}
		return fmt.Errorf("mission %s: %w", event, err)
	}
	m.Status = f.Current()
	return nil
}

// CanComplete reports whether the mission may still be completed.
func CanComplete(m storage.Mission) bool {
	return missionLifecycle(m.Status).Can(eventComplete)
}
