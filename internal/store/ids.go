package store

import (
	"errors"
	"fmt"

	"github.com/tgienger/todo/internal/models"
)

// MaxID is the largest ID a JSON number holds exactly
const MaxID int64 = 1<<53 - 1

// ErrIDRange is returned by Restore for IDs outside 1..MaxID
var ErrIDRange = errors.New("id out of range")

// IDAllocator hands out task and group IDs from two independent counters.
// IDs are never reused, even after the entity is deleted.
type IDAllocator struct {
	nextTask  int64
	nextGroup int64
}

// NewIDAllocator returns an allocator with both counters at 1
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{nextTask: 1, nextGroup: 1}
}

// AllocateTaskID returns the next task ID and advances the counter
func (a *IDAllocator) AllocateTaskID() int64 {
	id := a.nextTask
	a.nextTask++
	return id
}

// AllocateGroupID returns the next group ID and advances the counter
func (a *IDAllocator) AllocateGroupID() int64 {
	id := a.nextGroup
	a.nextGroup++
	return id
}

// Counters returns the next task and group IDs without consuming them
func (a *IDAllocator) Counters() (nextTask, nextGroup int64) {
	return a.nextTask, a.nextGroup
}

// Restore loads counters from a persisted state. A stored counter that is
// not past every loaded ID is advanced so new IDs cannot collide. A state
// with an ID or counter out of range is rejected and leaves a unchanged.
func (a *IDAllocator) Restore(state models.State) error {
	if state.NextTaskID > MaxID+1 || state.NextGroupID > MaxID+1 {
		return fmt.Errorf("counters %d/%d: %w", state.NextTaskID, state.NextGroupID, ErrIDRange)
	}
	for _, t := range state.Tasks {
		if t.ID < 1 || t.ID > MaxID {
			return fmt.Errorf("task %d: %w", t.ID, ErrIDRange)
		}
	}
	for _, g := range state.Groups {
		if g.ID < 1 || g.ID > MaxID {
			return fmt.Errorf("group %d: %w", g.ID, ErrIDRange)
		}
	}

	a.nextTask = max(state.NextTaskID, 1)
	a.nextGroup = max(state.NextGroupID, 1)

	for _, t := range state.Tasks {
		if t.ID >= a.nextTask {
			a.nextTask = t.ID + 1
		}
	}
	for _, g := range state.Groups {
		if g.ID >= a.nextGroup {
			a.nextGroup = g.ID + 1
		}
	}
	return nil
}
