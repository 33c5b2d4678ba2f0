// Package readmodel holds the in-memory view of the board that UI collaborators
// read from. A Snapshot is never modified after it is published; every change
// produces a new Snapshot that replaces the previous one in a single step.
package readmodel

import (
	"github.com/yukikurage/kanbanflow/internal/models"
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type DueDateFilter string

const (
	DueDateAny      DueDateFilter = ""
	DueDateOverdue  DueDateFilter = "overdue"
	DueDateThisWeek DueDateFilter = "this_week"
)

func (f DueDateFilter) Valid() bool {
	switch f {
	case DueDateAny, DueDateOverdue, DueDateThisWeek:
		return true
	default:
		return false
	}
}

// FilterState is interpreted by the board view, not by the core
type FilterState struct {
	SearchTerm    string        `json:"search_term"`
	AssigneeIDs   []string      `json:"assignee_ids"`
	ResponsibleID string        `json:"responsible_id,omitempty"`
	DueDate       DueDateFilter `json:"due_date,omitempty"`
}

func (f FilterState) clone() FilterState {
	f.AssigneeIDs = append([]string{}, f.AssigneeIDs...)
	return f
}

type Snapshot struct {
	tasks         []models.Task
	members       []models.Member
	columnNames   models.ColumnNames
	currentUserID string
	filters       FilterState
	phase         Phase
	loadErr       error
}

// Empty returns the snapshot shown before initialization completes
func Empty() *Snapshot {
	return &Snapshot{
		tasks:       []models.Task{},
		members:     []models.Member{},
		columnNames: models.DefaultColumnNames(),
		filters:     FilterState{AssigneeIDs: []string{}},
		phase:       PhaseLoading,
	}
}

func (s *Snapshot) copy() *Snapshot {
	c := *s
	return &c
}

// Tasks returns a copy of the task list
func (s *Snapshot) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Task looks a task up by id
func (s *Snapshot) Task(id string) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return models.Task{}, false
}

func (s *Snapshot) Members() []models.Member {
	return append([]models.Member{}, s.members...)
}

// Member looks a member up by id
func (s *Snapshot) Member(id string) (models.Member, bool) {
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// CurrentUser returns the member acting on the board, if one is set
func (s *Snapshot) CurrentUser() (models.Member, bool) {
	if s.currentUserID == "" {
		return models.Member{}, false
	}
	return s.Member(s.currentUserID)
}

func (s *Snapshot) ColumnNames() models.ColumnNames {
	return s.columnNames.Clone()
}

func (s *Snapshot) Filters() FilterState {
	return s.filters.clone()
}

func (s *Snapshot) Phase() Phase {
	return s.phase
}

func (s *Snapshot) Loading() bool {
	return s.phase == PhaseLoading
}

// LoadError is the initialization failure when Phase is PhaseFailed
func (s *Snapshot) LoadError() error {
	return s.loadErr
}

// WithTasks replaces the whole task list
func (s *Snapshot) WithTasks(tasks []models.Task) *Snapshot {
	c := s.copy()
	c.tasks = append([]models.Task{}, tasks...)
	return c
}

// WithTask replaces the task with the same id, or appends it
func (s *Snapshot) WithTask(task models.Task) *Snapshot {
	c := s.copy()
	c.tasks = append([]models.Task{}, s.tasks...)
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = task
			return c
		}
	}
	c.tasks = append(c.tasks, task)
	return c
}

// WithTaskReplaced replaces the task with the same id; an absent id is left absent
func (s *Snapshot) WithTaskReplaced(task models.Task) *Snapshot {
	return s.WithTasksReplaced([]models.Task{task})
}

// WithTasksReplaced applies several replacements at once, skipping ids no
// longer on the board
func (s *Snapshot) WithTasksReplaced(tasks []models.Task) *Snapshot {
	c := s.copy()
	c.tasks = append([]models.Task{}, s.tasks...)
	for _, task := range tasks {
		for i := range c.tasks {
			if c.tasks[i].ID == task.ID {
				c.tasks[i] = task
				break
			}
		}
	}
	return c
}

func (s *Snapshot) WithoutTask(id string) *Snapshot {
	c := s.copy()
	c.tasks = make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			c.tasks = append(c.tasks, t)
		}
	}
	return c
}

func (s *Snapshot) WithMembers(members []models.Member) *Snapshot {
	c := s.copy()
	c.members = append([]models.Member{}, members...)
	return c
}

// WithMember replaces the member with the same id, or appends it
func (s *Snapshot) WithMember(member models.Member) *Snapshot {
	if _, ok := s.Member(member.ID); ok {
		return s.WithMemberReplaced(member)
	}
	c := s.copy()
	c.members = append(append([]models.Member{}, s.members...), member)
	return c
}

// WithMemberReplaced replaces the member with the same id; an absent id is left absent
func (s *Snapshot) WithMemberReplaced(member models.Member) *Snapshot {
	c := s.copy()
	c.members = append([]models.Member{}, s.members...)
	for i := range c.members {
		if c.members[i].ID == member.ID {
			c.members[i] = member
			break
		}
	}
	return c
}

// WithoutMember drops a member; dropping the current user clears it
func (s *Snapshot) WithoutMember(id string) *Snapshot {
	c := s.copy()
	c.members = make([]models.Member, 0, len(s.members))
	for _, m := range s.members {
		if m.ID != id {
			c.members = append(c.members, m)
		}
	}
	if c.currentUserID == id {
		c.currentUserID = ""
	}
	return c
}

func (s *Snapshot) WithColumnNames(names models.ColumnNames) *Snapshot {
	c := s.copy()
	c.columnNames = names.Clone()
	return c
}

func (s *Snapshot) WithCurrentUser(id string) *Snapshot {
	c := s.copy()
	c.currentUserID = id
	return c
}

func (s *Snapshot) WithFilters(filters FilterState) *Snapshot {
	c := s.copy()
	c.filters = filters.clone()
	return c
}

// WithPhase sets the load phase; err is kept only for PhaseFailed
func (s *Snapshot) WithPhase(phase Phase, err error) *Snapshot {
	c := s.copy()
	c.phase = phase
	c.loadErr = nil
	if phase == PhaseFailed {
		c.loadErr = err
	}
	return c
}
