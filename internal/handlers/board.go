package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/kanbanflow/internal/dto"
	apierrors "github.com/yukikurage/kanbanflow/internal/errors"
	"github.com/yukikurage/kanbanflow/internal/readmodel"
	"github.com/yukikurage/kanbanflow/internal/services"
)

type BoardHandler struct {
	board *services.Board
}

func NewBoardHandler(board *services.Board) *BoardHandler {
	return &BoardHandler{board: board}
}

// GetBoard returns the current read model
func (h *BoardHandler) GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToBoardResponse(h.board.Snapshot()))
}

func (h *BoardHandler) UpdateColumnNames(c *gin.Context) {
	var req dto.ColumnNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	names, err := h.board.UpdateColumnNames(c.Request.Context(), req.ColumnNames)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"column_names": names})
}

func (h *BoardHandler) SetFilters(c *gin.Context) {
	var req readmodel.FilterState
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if err := h.board.SetFilters(req); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, h.board.Snapshot().Filters())
}

func (h *BoardHandler) SetCurrentUser(c *gin.Context) {
	var req dto.CurrentUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if err := h.board.SetCurrentUser(req.MemberID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	user, _ := h.board.Snapshot().CurrentUser()
	c.JSON(http.StatusOK, user)
}

func (h *BoardHandler) ClearTasks(c *gin.Context) {
	if err := h.board.ClearAllTasks(c.Request.Context()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All tasks cleared"})
}

// Reset wipes tasks and members and reseeds the board
func (h *BoardHandler) Reset(c *gin.Context) {
	if err := h.board.ResetBoard(c.Request.Context()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardResponse(h.board.Snapshot()))
}

func (h *BoardHandler) CollectGarbage(c *gin.Context) {
	removed, err := h.board.CollectOrphanedBlobs(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CollectResponse{Removed: removed})
}
