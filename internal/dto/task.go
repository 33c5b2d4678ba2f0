package dto

import (
	"time"

	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/services"
)

// FileDTO is an uploaded file; Data is base64 in JSON
type FileDTO struct {
	FileName string `json:"file_name" binding:"required"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// VoiceRecordingDTO is recorded audio; Data is base64 in JSON
type VoiceRecordingDTO struct {
	DurationMs int64  `json:"duration_ms" binding:"min=0"`
	Data       []byte `json:"data"`
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description"`
	DueDate         *time.Time          `json:"due_date"`
	Status          models.TaskStatus   `json:"status"`
	Priority        models.TaskPriority `json:"priority"`
	AssigneeIDs     []string            `json:"assignee_ids"`
	ResponsibleID   string              `json:"responsible_id"`
	Files           []FileDTO           `json:"files" binding:"dive"`
	VoiceRecordings []VoiceRecordingDTO `json:"voice_recordings" binding:"dive"`
}

// UpdateTaskRequest replaces a task's fields. Attachments and voice notes
// listed for removal are referenced by id.
type UpdateTaskRequest struct {
	CreateTaskRequest
	RemoveAttachmentIDs []string `json:"remove_attachment_ids"`
	RemoveVoiceNoteIDs  []string `json:"remove_voice_note_ids"`
}

type MoveTaskRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// Input converts the request into the board's task input
func (r CreateTaskRequest) Input() services.TaskInput {
	return services.TaskInput{
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       r.DueDate,
		Status:        r.Status,
		Priority:      r.Priority,
		AssigneeIDs:   r.AssigneeIDs,
		ResponsibleID: r.ResponsibleID,
	}
}

func (r CreateTaskRequest) Uploads() ([]services.FileUpload, []services.VoiceRecording) {
	files := make([]services.FileUpload, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, services.FileUpload{FileName: f.FileName, MimeType: f.MimeType, Data: f.Data})
	}
	recordings := make([]services.VoiceRecording, 0, len(r.VoiceRecordings))
	for _, v := range r.VoiceRecordings {
		recordings = append(recordings, services.VoiceRecording{DurationMs: v.DurationMs, Data: v.Data})
	}
	return files, recordings
}

// Apply copies the request onto existing, keeping its status and priority
// when omitted, and resolves the removal ids against its current attachments
// and voice notes. Unknown ids are ignored.
func (r UpdateTaskRequest) Apply(existing models.Task) (models.Task, []models.Attachment, []models.VoiceNote) {
	task := existing.Clone()
	task.Title = r.Title
	task.Description = r.Description
	task.DueDate = r.DueDate
	if r.Status != "" {
		task.Status = r.Status
	}
	if r.Priority != "" {
		task.Priority = r.Priority
	}
	task.SetAssignees(r.AssigneeIDs)
	task.ResponsibleID = r.ResponsibleID

	var attachments []models.Attachment
	for _, id := range r.RemoveAttachmentIDs {
		for _, a := range existing.Attachments {
			if a.ID == id {
				attachments = append(attachments, a)
			}
		}
	}
	var voiceNotes []models.VoiceNote
	for _, id := range r.RemoveVoiceNoteIDs {
		for _, v := range existing.VoiceNotes {
			if v.ID == id {
				voiceNotes = append(voiceNotes, v)
			}
		}
	}
	return task, attachments, voiceNotes
}
