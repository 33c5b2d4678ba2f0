package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/kanbanflow/internal/dto"
	apierrors "github.com/yukikurage/kanbanflow/internal/errors"
	"github.com/yukikurage/kanbanflow/internal/services"
)

type MemberHandler struct {
	board *services.Board
}

func NewMemberHandler(board *services.Board) *MemberHandler {
	return &MemberHandler{board: board}
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	member, ok := h.board.GetMemberByID(c.Param("id"))
	if !ok {
		apierrors.NotFound(c, "Member not found")
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	member, err := h.board.AddMember(c.Request.Context(), req.Input(), req.AvatarUpload())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// UpdateMember replaces a member's profile and optionally its avatar
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	member, err := h.board.UpdateMember(c.Request.Context(), c.Param("id"), req.Input(), req.AvatarUpload())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	if err := h.board.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

// GetAvatar serves an uploaded avatar image
func (h *MemberHandler) GetAvatar(c *gin.Context) {
	data, err := h.board.AvatarContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
