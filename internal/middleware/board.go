package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/kanbanflow/internal/errors"
	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/services"
)

const (
	ContextKeyTask        = "task"
	ContextKeyCurrentUser = "current_user"
)

// LoadTask resolves the :id parameter against the board snapshot
func LoadTask(board *services.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, ok := board.Snapshot().Task(c.Param("id"))
		if !ok {
			apierrors.NotFound(c, "Task not found")
			return
		}

		c.Set(ContextKeyTask, task)
		c.Next()
	}
}

// RequireCurrentUser rejects requests while no member is acting on the board
func RequireCurrentUser(board *services.Board) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := board.Snapshot().CurrentUser()
		if !ok {
			apierrors.Unauthorized(c, "No current user selected")
			return
		}

		c.Set(ContextKeyCurrentUser, user)
		c.Next()
	}
}

// GetTask retrieves the task stored by LoadTask
func GetTask(c *gin.Context) (models.Task, bool) {
	v, exists := c.Get(ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := v.(models.Task)
	return task, ok
}

func GetCurrentUser(c *gin.Context) (models.Member, bool) {
	v, exists := c.Get(ContextKeyCurrentUser)
	if !exists {
		return models.Member{}, false
	}
	user, ok := v.(models.Member)
	return user, ok
}
