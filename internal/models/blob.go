package models

import "time"

// BlobCollection names a blob namespace
type BlobCollection string

const (
	BlobAttachments BlobCollection = "attachments"
	BlobVoiceNotes  BlobCollection = "voice_notes"
	BlobAvatars     BlobCollection = "avatars"
)

var AllBlobCollections = []BlobCollection{BlobAttachments, BlobVoiceNotes, BlobAvatars}

func (c BlobCollection) Valid() bool {
	switch c {
	case BlobAttachments, BlobVoiceNotes, BlobAvatars:
		return true
	default:
		return false
	}
}

// Blob is one opaque payload row. The same shape backs every blob collection table.
type Blob struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Data      []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// SchemaMeta stores the schema version of the database
type SchemaMeta struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}

func (SchemaMeta) TableName() string {
	return "schema_meta"
}
