package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every input validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrBusinessRule is the parent of every refused board rule.
	ErrBusinessRule = errors.New("business rule violation")
	// ErrNoCurrentUser is returned when an authoring operation has no acting member.
	ErrNoCurrentUser = errors.New("no current user")

	ErrTaskNotFound       = errors.New("task not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrVoiceNoteNotFound  = errors.New("voice note not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrAvatarNotFound     = errors.New("avatar not found")
)

var (
	ErrTitleRequired          = validation("title is required")
	ErrResponsibleRequired    = validation("a responsible person must be selected")
	ErrResponsibleUnknown     = validation("responsible person is not a team member")
	ErrResponsibleNotAssignee = validation("responsible person must be one of the assignees")
	ErrInvalidStatus          = validation("invalid task status")
	ErrInvalidPriority        = validation("invalid task priority")
	ErrFileNameRequired       = validation("attachment file name is required")
	ErrInvalidDuration        = validation("voice note duration cannot be negative")
	ErrNameRequired           = validation("member name is required")
	ErrInvalidEmail           = validation("a valid email is required")
	ErrInvalidRole            = validation("invalid member role")
	ErrNoteContentRequired    = validation("note content is required")
	ErrInvalidColumnName      = validation("column names must be non-empty and belong to a known status")
	ErrInvalidDueDateFilter   = validation("due date filter must be overdue, this_week or empty")

	ErrMemberIsResponsible = businessRule("member is responsible for some tasks and cannot be deleted; reassign those tasks first")
	ErrCannotDeleteSelf    = businessRule("you cannot delete yourself")
)

func validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func businessRule(msg string) error {
	return fmt.Errorf("%w: %s", ErrBusinessRule, msg)
}
