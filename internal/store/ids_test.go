package store

import (
	"errors"
	"math"
	"testing"

	"github.com/tgienger/todo/internal/models"
)

func TestIDAllocatorIndependentCounters(t *testing.T) {
	a := NewIDAllocator()

	if got := a.AllocateTaskID(); got != 1 {
		t.Errorf("first task ID: got %d, want 1", got)
	}
	if got := a.AllocateTaskID(); got != 2 {
		t.Errorf("second task ID: got %d, want 2", got)
	}
	if got := a.AllocateGroupID(); got != 1 {
		t.Errorf("first group ID: got %d, want 1", got)
	}
	nextTask, nextGroup := a.Counters()
	if nextTask != 3 || nextGroup != 2 {
		t.Errorf("counters: got %d/%d, want 3/2", nextTask, nextGroup)
	}
}

func TestIDAllocatorRestore(t *testing.T) {
	tests := []struct {
		name          string
		state         models.State
		wantNextTask  int64
		wantNextGroup int64
	}{
		{
			name:          "fresh",
			state:         models.NewState(),
			wantNextTask:  1,
			wantNextGroup: 1,
		},
		{
			name:          "stored counters ahead of IDs",
			state:         models.State{NextTaskID: 10, NextGroupID: 4, Tasks: []models.Task{{ID: 3}}},
			wantNextTask:  10,
			wantNextGroup: 4,
		},
		{
			name: "stale counters are advanced",
			state: models.State{
				NextTaskID:  2,
				NextGroupID: 1,
				Tasks:       []models.Task{{ID: 7}, {ID: 2}},
				Groups:      []models.Group{{ID: 1}, {ID: 5}},
			},
			wantNextTask:  8,
			wantNextGroup: 6,
		},
		{
			name:          "zero counters",
			state:         models.State{},
			wantNextTask:  1,
			wantNextGroup: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewIDAllocator()
			if err := a.Restore(tt.state); err != nil {
				t.Fatalf("Restore: %v", err)
			}
			nextTask, nextGroup := a.Counters()
			if nextTask != tt.wantNextTask || nextGroup != tt.wantNextGroup {
				t.Errorf("got %d/%d, want %d/%d", nextTask, nextGroup, tt.wantNextTask, tt.wantNextGroup)
			}
		})
	}
}

func TestIDAllocatorRestoreRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		state models.State
	}{
		{"max int64 task", models.State{Tasks: []models.Task{{ID: math.MaxInt64}}}},
		{"task past MaxID", models.State{Tasks: []models.Task{{ID: MaxID + 1}}}},
		{"zero task", models.State{Tasks: []models.Task{{ID: 0}}}},
		{"negative group", models.State{Groups: []models.Group{{ID: -4}}}},
		{"huge counter", models.State{NextGroupID: math.MaxInt64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewIDAllocator()
			if err := a.Restore(tt.state); !errors.Is(err, ErrIDRange) {
				t.Fatalf("got %v, want ErrIDRange", err)
			}
			if nextTask, nextGroup := a.Counters(); nextTask != 1 || nextGroup != 1 {
				t.Errorf("rejected state changed counters to %d/%d", nextTask, nextGroup)
			}
		})
	}
}

func TestIDAllocatorRestoreAtMaxID(t *testing.T) {
	a := NewIDAllocator()
	if err := a.Restore(models.State{Tasks: []models.Task{{ID: MaxID}}}); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if nextTask, _ := a.Counters(); nextTask != MaxID+1 {
		t.Errorf("next task: got %d, want %d", nextTask, MaxID+1)
	}
}
