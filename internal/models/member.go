package models

import (
	"slices"
	"time"
)

type MemberRole string

const (
	RoleAdmin  MemberRole = "Admin"
	RoleMember MemberRole = "Member"
)

// AllMemberRoles lists every role in display order
var AllMemberRoles = []MemberRole{RoleAdmin, RoleMember}

// Valid reports whether r is one of the known roles
func (r MemberRole) Valid() bool {
	return slices.Contains(AllMemberRoles, r)
}

// Member is a team member record. At most one of AvatarURL and AvatarBlobKey is set.
type Member struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Role          MemberRole `gorm:"size:20;not null" json:"role"`
	Email         *string    `gorm:"size:255" json:"email,omitempty"`
	AvatarURL     string     `gorm:"size:1024" json:"avatar_url,omitempty"`
	AvatarBlobKey string     `gorm:"size:64" json:"avatar_blob_key,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// IsAdmin reports whether the member holds the admin role
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// SetAvatarURL points the avatar at an external URL and forgets any stored blob
func (m *Member) SetAvatarURL(url string) {
	m.AvatarURL = url
	m.AvatarBlobKey = ""
}

// SetAvatarBlob points the avatar at a blob-store key and forgets any URL
func (m *Member) SetAvatarBlob(key string) {
	m.AvatarBlobKey = key
	m.AvatarURL = ""
}
