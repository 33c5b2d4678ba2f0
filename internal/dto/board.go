package dto

import (
	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/readmodel"
	"github.com/yukikurage/kanbanflow/internal/services"
)

// BoardResponse is the read model as served to collaborators
type BoardResponse struct {
	Phase       string                `json:"phase"`
	Loading     bool                  `json:"loading"`
	Error       string                `json:"error,omitempty"`
	Tasks       []models.Task         `json:"tasks"`
	Members     []models.Member       `json:"members"`
	ColumnNames models.ColumnNames    `json:"column_names"`
	CurrentUser *models.Member        `json:"current_user"`
	Filters     readmodel.FilterState `json:"filters"`
}

func ToBoardResponse(snap *readmodel.Snapshot) BoardResponse {
	resp := BoardResponse{
		Phase:       snap.Phase().String(),
		Loading:     snap.Loading(),
		Tasks:       snap.Tasks(),
		Members:     snap.Members(),
		ColumnNames: snap.ColumnNames(),
		Filters:     snap.Filters(),
	}
	if err := snap.LoadError(); err != nil {
		resp.Error = err.Error()
	}
	if user, ok := snap.CurrentUser(); ok {
		resp.CurrentUser = &user
	}
	return resp
}

// MemberRequest creates or updates a member. Avatar is a base64 image that
// replaces any avatar URL.
type MemberRequest struct {
	Name      string            `json:"name" binding:"required"`
	Role      models.MemberRole `json:"role"`
	Email     string            `json:"email"`
	AvatarURL string            `json:"avatar_url"`
	Avatar    []byte            `json:"avatar"`
}

func (r MemberRequest) Input() services.MemberInput {
	return services.MemberInput{
		Name:      r.Name,
		Role:      r.Role,
		Email:     r.Email,
		AvatarURL: r.AvatarURL,
	}
}

func (r MemberRequest) AvatarUpload() *services.AvatarUpload {
	if len(r.Avatar) == 0 {
		return nil
	}
	return &services.AvatarUpload{Data: r.Avatar}
}

type ColumnNamesRequest struct {
	ColumnNames models.ColumnNames `json:"column_names" binding:"required"`
}

type CurrentUserRequest struct {
	MemberID string `json:"member_id" binding:"required"`
}

// CollectResponse reports the blobs removed by an orphan sweep
type CollectResponse struct {
	Removed map[models.BlobCollection]int `json:"removed"`
}
