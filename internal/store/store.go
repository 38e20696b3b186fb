// Package store holds the in-memory task list: tasks, groups, the current
// view and the ID counters. Every successful mutation is written through to
// the configured Backend.
package store

import (
	"errors"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tgienger/todo/internal/models"
)

var (
	// ErrNotFound is returned when a task or group ID does not exist
	ErrNotFound = errors.New("not found")
	// ErrEmptyText is returned when text, a name or a search term is blank
	ErrEmptyText = errors.New("empty text")
)

// UngroupedName is the display name of the ungrouped view
const UngroupedName = "Ungrouped"

// CreatedAtLayout is the format of Task.CreatedAt (day/month hour:minute)
const CreatedAtLayout = "02/01 15:04"

// Backend persists full snapshots of the store
type Backend interface {
	Load() (models.State, error)
	Save(models.State) error
}

// Stats are the aggregate counts for a single view
type Stats struct {
	Total   int
	Done    int
	Pending int
}

// SearchResult pairs a matching task with the name of the group it lives in
type SearchResult struct {
	Task      models.Task
	GroupName string
}

// Store owns all tasks and groups. It is not safe for concurrent use.
type Store struct {
	backend Backend
	logger  *log.Logger
	now     func() time.Time

	ids     *IDAllocator
	tasks   []models.Task
	groups  []models.Group
	current *int64 // nil = ungrouped view
}

// New creates a store and loads its state from backend. A failed load
// leaves the store empty. backend may be nil for a memory-only store.
func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{
		backend: backend,
		logger:  logger,
		now:     time.Now,
		ids:     NewIDAllocator(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	state := models.NewState()
	if s.backend != nil {
		loaded, err := s.backend.Load()
		if err != nil {
			s.logger.Warn("load failed, starting empty", "err", err)
		} else {
			state = loaded
		}
	}
	if err := s.replace(state); err != nil {
		s.logger.Warn("invalid state, starting empty", "err", err)
		s.replace(models.NewState())
	}
}

// replace swaps every entity and counter for the given state
func (s *Store) replace(state models.State) error {
	ids := NewIDAllocator()
	if err := ids.Restore(state); err != nil {
		return err
	}
	state = state.Clone()
	s.tasks = state.Tasks
	s.groups = state.Groups
	s.current = nil
	s.ids = ids
	return nil
}

// save writes the full state to the backend. Failures are logged and
// otherwise ignored; the in-memory state stays authoritative.
func (s *Store) save() {
	if s.backend == nil {
		return
	}
	if err := s.backend.Save(s.Snapshot()); err != nil {
		s.logger.Warn("save failed", "err", err)
		return
	}
	s.logger.Debug("saved", "tasks", len(s.tasks), "groups", len(s.groups))
}

// Snapshot returns a deep copy of the persisted part of the store
func (s *Store) Snapshot() models.State {
	nextTask, nextGroup := s.ids.Counters()
	return models.State{
		NextTaskID:  nextTask,
		NextGroupID: nextGroup,
		Groups:      s.groups,
		Tasks:       s.tasks,
	}.Clone()
}

// AddTask appends a new pending task to the given group (nil = ungrouped)
func (s *Store) AddTask(text string, groupID *int64) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, ErrEmptyText
	}
	if groupID != nil && s.groupIndex(*groupID) < 0 {
		return models.Task{}, ErrNotFound
	}

	task := models.Task{
		ID:        s.ids.AllocateTaskID(),
		Text:      text,
		CreatedAt: s.now().Format(CreatedAtLayout),
		GroupID:   groupID,
	}.Clone()
	s.tasks = append(s.tasks, task)
	s.save()
	return task.Clone(), nil
}

// EditTask replaces the text of a task. Blank text leaves it unchanged.
func (s *Store) EditTask(id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	i := s.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks[i].Text = text
	s.save()
	return nil
}

// DeleteTask removes a task
func (s *Store) DeleteTask(id int64) error {
	i := s.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.save()
	return nil
}

// ToggleDone flips a task between pending and completed. The task keeps its
// place in the underlying collection; views reorder it by partition.
func (s *Store) ToggleDone(id int64) error {
	i := s.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks[i].Done = !s.tasks[i].Done
	s.save()
	return nil
}

// CreateGroup appends a new group and makes it the current view
func (s *Store) CreateGroup(name string) (models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Group{}, ErrEmptyText
	}
	group := models.Group{ID: s.ids.AllocateGroupID(), Name: name}
	s.groups = append(s.groups, group)
	s.current = models.Int64(group.ID)
	s.save()
	return group, nil
}

// RenameGroup changes the name of a group
func (s *Store) RenameGroup(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyText
	}
	i := s.groupIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.groups[i].Name = name
	s.save()
	return nil
}

// DeleteGroup removes a group and every task in it. If the group was the
// current view, the view falls back to ungrouped.
func (s *Store) DeleteGroup(id int64) error {
	i := s.groupIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.groups = slices.Delete(s.groups, i, i+1)
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool {
		return t.GroupID != nil && *t.GroupID == id
	})
	if s.current != nil && *s.current == id {
		s.current = nil
	}
	s.save()
	return nil
}

// TasksForView returns the tasks of a group (nil = ungrouped), pending
// first and completed last, each part in insertion order.
func (s *Store) TasksForView(groupID *int64) []models.Task {
	var pending, completed []models.Task
	for _, t := range s.tasks {
		if !t.InGroup(groupID) {
			continue
		}
		if t.Done {
			completed = append(completed, t.Clone())
		} else {
			pending = append(pending, t.Clone())
		}
	}
	return append(pending, completed...)
}

// Search finds tasks in every group whose text contains the trimmed term,
// ignoring case. A blank term is rejected with ErrEmptyText.
func (s *Store) Search(term string) ([]SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyText
	}
	needle := strings.ToLower(term)

	results := []SearchResult{}
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Text), needle) {
			results = append(results, SearchResult{
				Task:      t.Clone(),
				GroupName: s.GroupName(t.GroupID),
			})
		}
	}
	return results, nil
}

// Stats counts the tasks of a view
func (s *Store) Stats(groupID *int64) Stats {
	var st Stats
	for _, t := range s.tasks {
		if !t.InGroup(groupID) {
			continue
		}
		st.Total++
		if t.Done {
			st.Done++
		}
	}
	st.Pending = st.Total - st.Done
	return st
}

// Task returns a task by ID
func (s *Store) Task(id int64) (models.Task, bool) {
	i := s.taskIndex(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Group returns a group by ID
func (s *Store) Group(id int64) (models.Group, bool) {
	i := s.groupIndex(id)
	if i < 0 {
		return models.Group{}, false
	}
	return s.groups[i], true
}

// Groups returns all groups in creation order
func (s *Store) Groups() []models.Group {
	return slices.Clone(s.groups)
}

// GroupName resolves a group reference to its display name. Nil and
// dangling references resolve to UngroupedName.
func (s *Store) GroupName(groupID *int64) string {
	if groupID == nil {
		return UngroupedName
	}
	if g, ok := s.Group(*groupID); ok {
		return g.Name
	}
	return UngroupedName
}

// CurrentGroupID returns the group of the current view (nil = ungrouped)
func (s *Store) CurrentGroupID() *int64 {
	if s.current == nil {
		return nil
	}
	return models.Int64(*s.current)
}

// SetCurrentGroup switches the current view. nil selects the ungrouped view.
func (s *Store) SetCurrentGroup(groupID *int64) error {
	if groupID == nil {
		s.current = nil
		return nil
	}
	if s.groupIndex(*groupID) < 0 {
		return ErrNotFound
	}
	s.current = models.Int64(*groupID)
	return nil
}

func (s *Store) taskIndex(id int64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

func (s *Store) groupIndex(id int64) int {
	return slices.IndexFunc(s.groups, func(g models.Group) bool { return g.ID == id })
}
