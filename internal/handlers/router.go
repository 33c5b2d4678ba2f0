package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/kanbanflow/internal/middleware"
	"github.com/yukikurage/kanbanflow/internal/services"
)

// NewRouter wires every board route onto a fresh gin engine
func NewRouter(board *services.Board, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	taskHandler := NewTaskHandler(board)
	memberHandler := NewMemberHandler(board)
	boardHandler := NewBoardHandler(board)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "KanbanFlow is running",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/board", boardHandler.GetBoard)
		api.PUT("/columns", boardHandler.UpdateColumnNames)
		api.PUT("/filters", boardHandler.SetFilters)
		api.PUT("/current-user", boardHandler.SetCurrentUser)

		tasks := api.Group("/tasks")
		{
			tasks.POST("", middleware.RequireCurrentUser(board), taskHandler.CreateTask)
			tasks.PUT("/:id", middleware.RequireCurrentUser(board), middleware.LoadTask(board), taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/move", middleware.RequireCurrentUser(board), taskHandler.MoveTask)
			tasks.POST("/:id/notes", middleware.RequireCurrentUser(board), taskHandler.AddNote)
			tasks.DELETE("/:id/notes/:noteId", middleware.RequireCurrentUser(board), taskHandler.DeleteNote)
			tasks.GET("/:id/attachments/:attachmentId", taskHandler.GetAttachment)
			tasks.GET("/:id/voice-notes/:voiceNoteId", taskHandler.GetVoiceNote)
		}

		members := api.Group("/members")
		{
			members.POST("", memberHandler.CreateMember)
			members.GET("/:id", memberHandler.GetMember)
			members.PUT("/:id", memberHandler.UpdateMember)
			members.DELETE("/:id", memberHandler.DeleteMember)
			members.GET("/:id/avatar", memberHandler.GetAvatar)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/clear-tasks", boardHandler.ClearTasks)
			admin.POST("/reset", boardHandler.Reset)
			admin.POST("/gc", boardHandler.CollectGarbage)
		}
	}

	return r
}
