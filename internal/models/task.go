package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "Backlog"
	TaskStatusTodo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// AllTaskStatuses lists every status in column order
var AllTaskStatuses = []TaskStatus{
	TaskStatusBacklog,
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusDone,
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

var AllTaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TaskPriority) Valid() bool {
	return slices.Contains(AllTaskPriorities, p)
}

// Attachment is the metadata of a file whose bytes live in the attachments blob collection
type Attachment struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	BlobKey   string    `json:"blob_key"`
	CreatedAt time.Time `json:"created_at"`
}

// VoiceNote is the metadata of an audio recording stored in the voice_notes blob collection
type VoiceNote struct {
	ID         string    `json:"id"`
	BlobKey    string    `json:"blob_key"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Note is a discussion entry on a task
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a board card. ResponsibleID must always be contained in AssigneeIDs.
type Task struct {
	ID            string                          `gorm:"primaryKey;size:64" json:"id"`
	Title         string                          `gorm:"size:255;not null" json:"title"`
	Description   string                          `gorm:"type:text" json:"description,omitempty"`
	DueDate       *time.Time                      `json:"due_date,omitempty"`
	Status        TaskStatus                      `gorm:"size:20;not null;index" json:"status"`
	Priority      TaskPriority                    `gorm:"size:20;not null" json:"priority"`
	AssigneeIDs   datatypes.JSONSlice[string]     `json:"assignee_ids"`
	ResponsibleID string                          `gorm:"size:64;not null;index" json:"responsible_id"`
	Attachments   datatypes.JSONSlice[Attachment] `json:"attachments"`
	VoiceNotes    datatypes.JSONSlice[VoiceNote]  `json:"voice_notes"`
	Notes         datatypes.JSONSlice[Note]       `json:"notes"`
	CreatedAt     time.Time                       `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt     time.Time                       `gorm:"autoUpdateTime:false" json:"updated_at"`
	UpdatedBy     string                          `gorm:"size:64" json:"updated_by"`
}

// HasAssignee reports whether memberID is among the task's assignees
func (t Task) HasAssignee(memberID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// SetAssignees replaces the assignee set. If the responsible member is no longer
// assigned, ResponsibleID is cleared and must be chosen again before saving.
func (t *Task) SetAssignees(ids []string) {
	t.AssigneeIDs = datatypes.JSONSlice[string](ids)
	if t.ResponsibleID != "" && !t.HasAssignee(t.ResponsibleID) {
		t.ResponsibleID = ""
	}
}

// Clone returns a copy whose slices can be modified without touching t
func (t Task) Clone() Task {
	c := t
	c.AssigneeIDs = append(datatypes.JSONSlice[string]{}, t.AssigneeIDs...)
	c.Attachments = append(datatypes.JSONSlice[Attachment]{}, t.Attachments...)
	c.VoiceNotes = append(datatypes.JSONSlice[VoiceNote]{}, t.VoiceNotes...)
	c.Notes = append(datatypes.JSONSlice[Note]{}, t.Notes...)
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}
