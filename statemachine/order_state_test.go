package statemachine

import (
	"testing"

	"pos-sync-service/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"pending to in progress", models.StatusPending, models.StatusInProgress, true},
		{"in progress to ready", models.StatusInProgress, models.StatusReady, true},
		{"ready to completed", models.StatusReady, models.StatusCompleted, true},
		{"pending to cancelled", models.StatusPending, models.StatusCancelled, true},
		{"in progress to cancelled", models.StatusInProgress, models.StatusCancelled, true},
		{"ready to cancelled", models.StatusReady, models.StatusCancelled, true},
		{"no skipping to completed", models.StatusPending, models.StatusCompleted, false},
		{"no skipping to ready", models.StatusPending, models.StatusReady, false},
		{"no going backwards", models.StatusReady, models.StatusPending, false},
		{"completed is terminal", models.StatusCompleted, models.StatusCancelled, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusPending, false},
		{"no self transition", models.StatusPending, models.StatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.allowed {
				t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestValidTransitionsFromTerminal(t *testing.T) {
	if nexts := ValidTransitionsFrom(models.StatusCompleted); len(nexts) != 0 {
		t.Fatalf("expected no transitions from Completed, got %v", nexts)
	}
	if got := DescribeValidFrom(models.StatusCancelled); got != "none (terminal state)" {
		t.Fatalf("unexpected description: %s", got)
	}
}

func TestTerminalMatchesStateMachine(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusInProgress, models.StatusReady,
		models.StatusCompleted, models.StatusCancelled,
	} {
		hasExit := len(ValidTransitionsFrom(s)) > 0
		if s.IsTerminal() == hasExit {
			t.Fatalf("status %s: IsTerminal=%v but has %d exits", s, s.IsTerminal(), len(ValidTransitionsFrom(s)))
		}
	}
}
