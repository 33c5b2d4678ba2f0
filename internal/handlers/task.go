package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/kanbanflow/internal/dto"
	apierrors "github.com/yukikurage/kanbanflow/internal/errors"
	"github.com/yukikurage/kanbanflow/internal/middleware"
	"github.com/yukikurage/kanbanflow/internal/services"
)

type TaskHandler struct {
	board *services.Board
}

func NewTaskHandler(board *services.Board) *TaskHandler {
	return &TaskHandler{board: board}
}

// CreateTask adds a task with its uploads
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	files, recordings := req.Uploads()
	task, err := h.board.AddTask(c.Request.Context(), req.Input(), files, recordings)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask replaces the task loaded by LoadTask
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	existing, _ := middleware.GetTask(c)

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, removeAttachments, removeVoiceNotes := req.Apply(existing)
	files, recordings := req.Uploads()
	updated, err := h.board.UpdateTask(c.Request.Context(), task, files, removeAttachments, recordings, removeVoiceNotes)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.board.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// MoveTask changes the status of a task
func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	if err := h.board.MoveTask(c.Request.Context(), id, req.Status); err != nil {
		apierrors.Respond(c, err)
		return
	}

	task, ok := h.board.Snapshot().Task(id)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) AddNote(c *gin.Context) {
	var req dto.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	note, err := h.board.AddNote(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *TaskHandler) DeleteNote(c *gin.Context) {
	if err := h.board.DeleteNote(c.Request.Context(), c.Param("id"), c.Param("noteId")); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

// GetAttachment streams an attachment with its stored mime type
func (h *TaskHandler) GetAttachment(c *gin.Context) {
	meta, data, err := h.board.AttachmentContent(c.Request.Context(), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	contentType := meta.MimeType
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": meta.FileName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, contentType, data)
}

func (h *TaskHandler) GetVoiceNote(c *gin.Context) {
	_, data, err := h.board.VoiceNoteContent(c.Request.Context(), c.Param("id"), c.Param("voiceNoteId"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Data(http.StatusOK, "audio/webm", data)
}
