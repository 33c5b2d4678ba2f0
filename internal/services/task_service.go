package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/readmodel"
	"github.com/yukikurage/kanbanflow/internal/repository"
)

type TaskInput struct {
	Title         string
	Description   string
	DueDate       *time.Time
	Status        models.TaskStatus
	Priority      models.TaskPriority
	AssigneeIDs   []string
	ResponsibleID string
}

// FileUpload is a file to be stored as a task attachment
type FileUpload struct {
	FileName string
	MimeType string
	Data     []byte
}

// VoiceRecording is recorded audio to be stored as a voice note
type VoiceRecording struct {
	DurationMs int64
	Data       []byte
}

func (b *Board) validateTask(snap *readmodel.Snapshot, in TaskInput) (TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, ErrTitleRequired
	}
	if in.Status == "" {
		in.Status = models.TaskStatusTodo
	}
	if !in.Status.Valid() {
		return in, ErrInvalidStatus
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return in, ErrInvalidPriority
	}
	if in.ResponsibleID == "" {
		return in, ErrResponsibleRequired
	}
	if _, ok := snap.Member(in.ResponsibleID); !ok {
		return in, ErrResponsibleUnknown
	}
	in.AssigneeIDs = dedupe(in.AssigneeIDs)
	found := false
	for _, id := range in.AssigneeIDs {
		if id == in.ResponsibleID {
			found = true
			break
		}
	}
	if !found {
		return in, ErrResponsibleNotAssignee
	}
	return in, nil
}

func validateUploads(files []FileUpload, recordings []VoiceRecording) error {
	for _, f := range files {
		if strings.TrimSpace(f.FileName) == "" {
			return ErrFileNameRequired
		}
	}
	for _, r := range recordings {
		if r.DurationMs < 0 {
			return ErrInvalidDuration
		}
	}
	return nil
}

// storeUploads writes every upload under a fresh key and returns the metadata
// plus the keys written. On failure the keys already written are logged as orphans.
func (b *Board) storeUploads(ctx context.Context, op string, files []FileUpload, recordings []VoiceRecording, now time.Time) ([]models.Attachment, []models.VoiceNote, error) {
	attachments := make([]models.Attachment, 0, len(files))
	voiceNotes := make([]models.VoiceNote, 0, len(recordings))
	orphan := func() {
		b.logOrphans(op, models.BlobAttachments, attachmentKeys(attachments))
		b.logOrphans(op, models.BlobVoiceNotes, voiceNoteKeys(voiceNotes))
	}

	for _, f := range files {
		key := b.ids()
		if err := b.blobs.Put(ctx, models.BlobAttachments, key, f.Data); err != nil {
			orphan()
			return nil, nil, err
		}
		attachments = append(attachments, models.Attachment{
			ID:        b.ids(),
			FileName:  strings.TrimSpace(f.FileName),
			MimeType:  f.MimeType,
			SizeBytes: int64(len(f.Data)),
			BlobKey:   key,
			CreatedAt: now,
		})
	}
	for _, r := range recordings {
		key := b.ids()
		if err := b.blobs.Put(ctx, models.BlobVoiceNotes, key, r.Data); err != nil {
			orphan()
			return nil, nil, err
		}
		voiceNotes = append(voiceNotes, models.VoiceNote{
			ID:         b.ids(),
			BlobKey:    key,
			DurationMs: r.DurationMs,
			CreatedAt:  now,
		})
	}
	return attachments, voiceNotes, nil
}

// AddTask stores the uploads, then the task, then publishes it
func (b *Board) AddTask(ctx context.Context, in TaskInput, files []FileUpload, recordings []VoiceRecording) (models.Task, error) {
	const op = "add_task"
	user, err := b.currentUser()
	if err != nil {
		return models.Task{}, b.fail(op, err)
	}
	in, err = b.validateTask(b.state.Load(), in)
	if err != nil {
		return models.Task{}, b.fail(op, err)
	}
	if err := validateUploads(files, recordings); err != nil {
		return models.Task{}, b.fail(op, err)
	}

	now := b.now()
	attachments, voiceNotes, err := b.storeUploads(ctx, op, files, recordings, now)
	if err != nil {
		return models.Task{}, b.fail(op, err)
	}

	task := models.Task{
		ID:            b.ids(),
		Title:         in.Title,
		Description:   in.Description,
		DueDate:       in.DueDate,
		Status:        in.Status,
		Priority:      in.Priority,
		AssigneeIDs:   in.AssigneeIDs,
		ResponsibleID: in.ResponsibleID,
		Attachments:   attachments,
		VoiceNotes:    voiceNotes,
		Notes:         []models.Note{},
		CreatedAt:     now,
		UpdatedAt:     now,
		UpdatedBy:     user.ID,
	}
	if err := b.tasks.Put(ctx, &task); err != nil {
		b.logOrphans(op, models.BlobAttachments, attachmentKeys(attachments))
		b.logOrphans(op, models.BlobVoiceNotes, voiceNoteKeys(voiceNotes))
		return models.Task{}, b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithTask(task.Clone())
	})
	b.notifier.Notify(NotifySuccess, "Task created successfully!")
	return task, nil
}

// UpdateTask replaces a task. Blobs of removed attachments and voice notes
// are deleted first, then new uploads are stored, then the record is written.
func (b *Board) UpdateTask(
	ctx context.Context,
	task models.Task,
	files []FileUpload,
	attachmentsToRemove []models.Attachment,
	recordings []VoiceRecording,
	voiceNotesToRemove []models.VoiceNote,
) (models.Task, error) {
	const op = "update_task"
	user, err := b.currentUser()
	if err != nil {
		return models.Task{}, b.fail(op, err)
	}
	snap := b.state.Load()
	existing, ok := snap.Task(task.ID)
	if !ok {
		return models.Task{}, b.fail(op, ErrTaskNotFound)
	}
	in, err := b.validateTask(snap, TaskInput{
		Title:         task.Title,
		Description:   task.Description,
		DueDate:       task.DueDate,
		Status:        task.Status,
		Priority:      task.Priority,
		AssigneeIDs:   task.AssigneeIDs,
		ResponsibleID: task.ResponsibleID,
	})
	if err != nil {
		return models.Task{}, b.fail(op, err)
	}
	if err := validateUploads(files, recordings); err != nil {
		return models.Task{}, b.fail(op, err)
	}

	b.deleteBlobs(ctx, op, models.BlobAttachments, attachmentKeys(attachmentsToRemove))
	b.deleteBlobs(ctx, op, models.BlobVoiceNotes, voiceNoteKeys(voiceNotesToRemove))

	now := b.now()
	added, addedVoice, err := b.storeUploads(ctx, op, files, recordings, now)
	if err != nil {
		return models.Task{}, b.fail(op, err)
	}

	updated := task.Clone()
	updated.Title = in.Title
	updated.Status = in.Status
	updated.Priority = in.Priority
	updated.AssigneeIDs = in.AssigneeIDs
	updated.Attachments = append(withoutAttachments(updated.Attachments, attachmentsToRemove), added...)
	updated.VoiceNotes = append(withoutVoiceNotes(updated.VoiceNotes, voiceNotesToRemove), addedVoice...)
	if updated.Notes == nil {
		updated.Notes = []models.Note{}
	}
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = now
	updated.UpdatedBy = user.ID

	if err := b.tasks.Put(ctx, &updated); err != nil {
		b.logOrphans(op, models.BlobAttachments, attachmentKeys(added))
		b.logOrphans(op, models.BlobVoiceNotes, voiceNoteKeys(addedVoice))
		return models.Task{}, b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithTaskReplaced(updated.Clone())
	})
	b.notifier.Notify(NotifySuccess, "Task updated successfully!")
	return updated, nil
}

// DeleteTask removes the task's blobs and then its record. Unknown ids are a no-op.
func (b *Board) DeleteTask(ctx context.Context, id string) error {
	const op = "delete_task"
	task, ok := b.state.Load().Task(id)
	if !ok {
		return nil
	}

	b.deleteBlobs(ctx, op, models.BlobAttachments, attachmentKeys(task.Attachments))
	b.deleteBlobs(ctx, op, models.BlobVoiceNotes, voiceNoteKeys(task.VoiceNotes))
	if err := b.tasks.Delete(ctx, id); err != nil {
		return b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithoutTask(id)
	})
	b.notifier.Notify(NotifyInfo, "Task deleted.")
	return nil
}

// MoveTask changes a task's status. Moving to the current status, or moving an
// unknown task, does nothing.
func (b *Board) MoveTask(ctx context.Context, id string, status models.TaskStatus) error {
	const op = "move_task"
	if !status.Valid() {
		return b.fail(op, ErrInvalidStatus)
	}
	task, ok := b.state.Load().Task(id)
	if !ok || task.Status == status {
		return nil
	}
	user, err := b.currentUser()
	if err != nil {
		return b.fail(op, err)
	}

	task.Status = status
	task.UpdatedAt = b.now()
	task.UpdatedBy = user.ID
	if err := b.tasks.Put(ctx, &task); err != nil {
		return b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithTaskReplaced(task)
	})
	return nil
}

// AddNote appends a note authored by the current user
func (b *Board) AddNote(ctx context.Context, taskID, content string) (models.Note, error) {
	const op = "add_note"
	user, err := b.currentUser()
	if err != nil {
		return models.Note{}, b.fail(op, err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Note{}, b.fail(op, ErrNoteContentRequired)
	}
	task, ok := b.state.Load().Task(taskID)
	if !ok {
		return models.Note{}, b.fail(op, ErrTaskNotFound)
	}

	now := b.now()
	note := models.Note{
		ID:        b.ids(),
		Content:   content,
		AuthorID:  user.ID,
		CreatedAt: now,
	}
	task.Notes = append(task.Notes, note)
	task.UpdatedAt = now
	task.UpdatedBy = user.ID
	if err := b.tasks.Put(ctx, &task); err != nil {
		return models.Note{}, b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithTaskReplaced(task)
	})
	return note, nil
}

func (b *Board) DeleteNote(ctx context.Context, taskID, noteID string) error {
	const op = "delete_note"
	user, err := b.currentUser()
	if err != nil {
		return b.fail(op, err)
	}
	task, ok := b.state.Load().Task(taskID)
	if !ok {
		return b.fail(op, ErrTaskNotFound)
	}
	notes := make([]models.Note, 0, len(task.Notes))
	for _, n := range task.Notes {
		if n.ID != noteID {
			notes = append(notes, n)
		}
	}
	if len(notes) == len(task.Notes) {
		return b.fail(op, ErrNoteNotFound)
	}

	task.Notes = notes
	task.UpdatedAt = b.now()
	task.UpdatedBy = user.ID
	if err := b.tasks.Put(ctx, &task); err != nil {
		return b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithTaskReplaced(task)
	})
	return nil
}

// AttachmentContent reads an attachment's bytes from the blob store
func (b *Board) AttachmentContent(ctx context.Context, taskID, attachmentID string) (models.Attachment, []byte, error) {
	task, ok := b.state.Load().Task(taskID)
	if !ok {
		return models.Attachment{}, nil, ErrTaskNotFound
	}
	for _, a := range task.Attachments {
		if a.ID != attachmentID {
			continue
		}
		data, err := b.blobs.Get(ctx, models.BlobAttachments, a.BlobKey)
		if errors.Is(err, repository.ErrNotFound) {
			return a, nil, ErrAttachmentNotFound
		}
		if err != nil {
			return a, nil, err
		}
		return a, data, nil
	}
	return models.Attachment{}, nil, ErrAttachmentNotFound
}

// VoiceNoteContent reads a voice note's audio from the blob store
func (b *Board) VoiceNoteContent(ctx context.Context, taskID, voiceNoteID string) (models.VoiceNote, []byte, error) {
	task, ok := b.state.Load().Task(taskID)
	if !ok {
		return models.VoiceNote{}, nil, ErrTaskNotFound
	}
	for _, v := range task.VoiceNotes {
		if v.ID != voiceNoteID {
			continue
		}
		data, err := b.blobs.Get(ctx, models.BlobVoiceNotes, v.BlobKey)
		if errors.Is(err, repository.ErrNotFound) {
			return v, nil, ErrVoiceNoteNotFound
		}
		if err != nil {
			return v, nil, err
		}
		return v, data, nil
	}
	return models.VoiceNote{}, nil, ErrVoiceNoteNotFound
}

func attachmentKeys(list []models.Attachment) []string {
	keys := make([]string, 0, len(list))
	for _, a := range list {
		keys = append(keys, a.BlobKey)
	}
	return keys
}

func voiceNoteKeys(list []models.VoiceNote) []string {
	keys := make([]string, 0, len(list))
	for _, v := range list {
		keys = append(keys, v.BlobKey)
	}
	return keys
}

func withoutAttachments(list, remove []models.Attachment) []models.Attachment {
	drop := make(map[string]struct{}, len(remove))
	for _, a := range remove {
		drop[a.ID] = struct{}{}
	}
	out := make([]models.Attachment, 0, len(list))
	for _, a := range list {
		if _, ok := drop[a.ID]; !ok {
			out = append(out, a)
		}
	}
	return out
}

func withoutVoiceNotes(list, remove []models.VoiceNote) []models.VoiceNote {
	drop := make(map[string]struct{}, len(remove))
	for _, v := range remove {
		drop[v.ID] = struct{}{}
	}
	out := make([]models.VoiceNote, 0, len(list))
	for _, v := range list {
		if _, ok := drop[v.ID]; !ok {
			out = append(out, v)
		}
	}
	return out
}
