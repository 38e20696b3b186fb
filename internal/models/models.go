package models

// Group represents a named tab that tasks can belong to
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task represents a single to-do item
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
	GroupID   *int64 `json:"group_id"` // nil if ungrouped
}

// InGroup reports whether the task belongs to the given group (nil = ungrouped)
func (t Task) InGroup(groupID *int64) bool {
	if t.GroupID == nil || groupID == nil {
		return t.GroupID == nil && groupID == nil
	}
	return *t.GroupID == *groupID
}

// State is the full persisted snapshot of the store
type State struct {
	NextTaskID  int64   `json:"next_task_id"`
	NextGroupID int64   `json:"next_group_id"`
	Groups      []Group `json:"groups"`
	Tasks       []Task  `json:"tasks"`
}

// NewState returns an empty state with fresh counters
func NewState() State {
	return State{
		NextTaskID:  1,
		NextGroupID: 1,
		Groups:      []Group{},
		Tasks:       []Task{},
	}
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	out := State{
		NextTaskID:  s.NextTaskID,
		NextGroupID: s.NextGroupID,
		Groups:      make([]Group, len(s.Groups)),
		Tasks:       make([]Task, len(s.Tasks)),
	}
	copy(out.Groups, s.Groups)
	for i, t := range s.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Clone returns a copy of the task that shares no memory with the original
func (t Task) Clone() Task {
	if t.GroupID != nil {
		id := *t.GroupID
		t.GroupID = &id
	}
	return t
}

// Int64 returns a pointer to v, handy for optional group IDs
func Int64(v int64) *int64 {
	return &v
}
