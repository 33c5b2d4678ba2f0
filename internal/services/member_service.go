package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/readmodel"
	"github.com/yukikurage/kanbanflow/internal/repository"
	"github.com/yukikurage/kanbanflow/internal/utils"
)

type MemberInput struct {
	Name      string
	Role      models.MemberRole
	Email     string
	AvatarURL string
}

// AvatarUpload is an uploaded avatar image
type AvatarUpload struct {
	Data []byte
}

func validateMember(in MemberInput) (MemberInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrNameRequired
	}
	if in.Role == "" {
		in.Role = models.RoleMember
	}
	if !in.Role.Valid() {
		return in, ErrInvalidRole
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email != "" && !utils.IsValidEmail(in.Email) {
		return in, ErrInvalidEmail
	}
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)
	return in, nil
}

func optionalEmail(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}

// AddMember creates a member. A supplied avatar is stored before the member
// record and takes precedence over AvatarURL.
func (b *Board) AddMember(ctx context.Context, in MemberInput, avatar *AvatarUpload) (models.Member, error) {
	const op = "add_member"
	in, err := validateMember(in)
	if err != nil {
		return models.Member{}, b.fail(op, err)
	}

	now := b.now()
	member := models.Member{
		ID:        b.ids(),
		Name:      in.Name,
		Role:      in.Role,
		Email:     optionalEmail(in.Email),
		AvatarURL: in.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if avatar != nil {
		key := b.ids()
		if err := b.blobs.Put(ctx, models.BlobAvatars, key, avatar.Data); err != nil {
			return models.Member{}, b.fail(op, err)
		}
		member.SetAvatarBlob(key)
	}
	if err := b.members.Put(ctx, &member); err != nil {
		if avatar != nil {
			b.logOrphans(op, models.BlobAvatars, []string{member.AvatarBlobKey})
		}
		return models.Member{}, b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithMember(member)
	})
	b.notifier.Notify(NotifySuccess, "Team member added!")
	return member, nil
}

// UpdateMember replaces a member's profile. A supplied avatar replaces any
// previous avatar blob; a non-empty AvatarURL without an upload switches the
// member back to a URL avatar.
func (b *Board) UpdateMember(ctx context.Context, id string, in MemberInput, avatar *AvatarUpload) (models.Member, error) {
	const op = "update_member"
	existing, ok := b.state.Load().Member(id)
	if !ok {
		return models.Member{}, b.fail(op, ErrMemberNotFound)
	}
	in, err := validateMember(in)
	if err != nil {
		return models.Member{}, b.fail(op, err)
	}

	updated := existing
	updated.Name = in.Name
	updated.Role = in.Role
	updated.Email = optionalEmail(in.Email)
	updated.UpdatedAt = b.now()

	var staleBlob string
	switch {
	case avatar != nil:
		b.deleteBlobs(ctx, op, models.BlobAvatars, []string{existing.AvatarBlobKey})
		key := b.ids()
		if err := b.blobs.Put(ctx, models.BlobAvatars, key, avatar.Data); err != nil {
			return models.Member{}, b.fail(op, err)
		}
		updated.SetAvatarBlob(key)
	case in.AvatarURL != "":
		staleBlob = existing.AvatarBlobKey
		updated.SetAvatarURL(in.AvatarURL)
	case existing.AvatarBlobKey == "":
		updated.AvatarURL = ""
	}

	if err := b.members.Put(ctx, &updated); err != nil {
		if avatar != nil {
			b.logOrphans(op, models.BlobAvatars, []string{updated.AvatarBlobKey})
		}
		return models.Member{}, b.fail(op, err)
	}
	b.deleteBlobs(ctx, op, models.BlobAvatars, []string{staleBlob})

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithMemberReplaced(updated)
	})
	b.notifier.Notify(NotifySuccess, "Team member updated.")
	return updated, nil
}

// DeleteMember removes a member, dropping them from every task they are
// assigned to. Members responsible for a task, and the current user, cannot
// be deleted.
func (b *Board) DeleteMember(ctx context.Context, id string) error {
	const op = "delete_member"
	snap := b.state.Load()
	member, ok := snap.Member(id)
	if !ok {
		return b.fail(op, ErrMemberNotFound)
	}
	actor, hasActor := snap.CurrentUser()
	if hasActor && actor.ID == id {
		return b.fail(op, ErrCannotDeleteSelf)
	}

	tasks := snap.Tasks()
	for _, t := range tasks {
		if t.ResponsibleID == id {
			return b.fail(op, ErrMemberIsResponsible)
		}
	}

	now := b.now()
	var affected []models.Task
	for _, t := range tasks {
		if !t.HasAssignee(id) {
			continue
		}
		remaining := make([]string, 0, len(t.AssigneeIDs))
		for _, a := range t.AssigneeIDs {
			if a != id {
				remaining = append(remaining, a)
			}
		}
		t.SetAssignees(remaining)
		t.UpdatedAt = now
		t.UpdatedBy = actor.ID
		if err := b.tasks.Put(ctx, &t); err != nil {
			return b.fail(op, err)
		}
		affected = append(affected, t)
	}

	b.deleteBlobs(ctx, op, models.BlobAvatars, []string{member.AvatarBlobKey})
	if err := b.members.Delete(ctx, id); err != nil {
		return b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithTasksReplaced(affected).WithoutMember(id)
	})
	b.notifier.Notify(NotifyInfo, "Team member removed.")
	return nil
}

// AvatarContent reads a member's uploaded avatar image
func (b *Board) AvatarContent(ctx context.Context, memberID string) ([]byte, error) {
	member, ok := b.state.Load().Member(memberID)
	if !ok {
		return nil, ErrMemberNotFound
	}
	if member.AvatarBlobKey == "" {
		return nil, ErrAvatarNotFound
	}
	data, err := b.blobs.Get(ctx, models.BlobAvatars, member.AvatarBlobKey)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAvatarNotFound
	}
	return data, err
}
