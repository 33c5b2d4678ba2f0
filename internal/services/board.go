// Package services holds the synchronization layer that turns board
// operations into ordered durable writes followed by a single snapshot commit.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/readmodel"
	"github.com/yukikurage/kanbanflow/internal/repository"
	"github.com/yukikurage/kanbanflow/internal/utils"
)

// Deps are the collaborators a Board is constructed with. Zero Clock, IDs,
// Notifier and Logger are replaced with defaults.
type Deps struct {
	Tasks    repository.TaskRepository
	Members  repository.MemberRepository
	Config   repository.ConfigRepository
	Blobs    repository.BlobStore
	Notifier Notifier
	Clock    func() time.Time
	IDs      func() string
	Logger   logrus.FieldLogger
}

type Board struct {
	tasks    repository.TaskRepository
	members  repository.MemberRepository
	config   repository.ConfigRepository
	blobs    repository.BlobStore
	notifier Notifier
	clock    func() time.Time
	ids      func() string
	log      logrus.FieldLogger

	state *readmodel.Store
}

func NewBoard(deps Deps) *Board {
	b := &Board{
		tasks:    deps.Tasks,
		members:  deps.Members,
		config:   deps.Config,
		blobs:    deps.Blobs,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		ids:      deps.IDs,
		log:      deps.Logger,
		state:    readmodel.NewStore(),
	}
	if b.log == nil {
		b.log = logrus.StandardLogger()
	}
	if b.notifier == nil {
		b.notifier = NewLogNotifier(b.log)
	}
	if b.clock == nil {
		b.clock = func() time.Time { return time.Now().UTC() }
	}
	if b.ids == nil {
		b.ids = utils.NewID
	}
	return b
}

// Snapshot returns the latest published read model
func (b *Board) Snapshot() *readmodel.Snapshot {
	return b.state.Load()
}

func (b *Board) GetMemberByID(id string) (models.Member, bool) {
	return b.state.Load().Member(id)
}

// SetCurrentUser switches the acting member
func (b *Board) SetCurrentUser(id string) error {
	if _, ok := b.state.Load().Member(id); !ok {
		return ErrMemberNotFound
	}
	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithCurrentUser(id)
	})
	return nil
}

func (b *Board) SetFilters(filters readmodel.FilterState) error {
	if !filters.DueDate.Valid() {
		return ErrInvalidDueDateFilter
	}
	filters.SearchTerm = strings.TrimSpace(filters.SearchTerm)
	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithFilters(filters)
	})
	return nil
}

// now is truncated to milliseconds so timestamps survive every supported driver unchanged
func (b *Board) now() time.Time {
	return b.clock().UTC().Truncate(time.Millisecond)
}

func (b *Board) currentUser() (models.Member, error) {
	user, ok := b.state.Load().CurrentUser()
	if !ok {
		return models.Member{}, ErrNoCurrentUser
	}
	return user, nil
}

// fail logs err and notifies the user. Validation errors are returned for
// inline display and are not sent as notifications.
func (b *Board) fail(op string, err error) error {
	entry := b.log.WithField("op", op).WithError(err)
	switch {
	case errors.Is(err, ErrValidation):
		entry.Debug("operation rejected")
		return err
	case errors.Is(err, ErrBusinessRule), errors.Is(err, ErrNoCurrentUser),
		errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrNoteNotFound):
		entry.Info("operation refused")
		b.notifier.Notify(NotifyError, sentence(err.Error()))
	case errors.Is(err, repository.ErrStorageUnavailable):
		entry.Error("storage unavailable")
		b.notifier.Notify(NotifyError, "Storage is unavailable. The change was not saved.")
	default:
		entry.Error("operation failed")
		b.notifier.Notify(NotifyError, "Something went wrong. The change was not saved.")
	}
	return err
}

// sentence strips the taxonomy prefix and capitalizes the message
func sentence(msg string) string {
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// logOrphans records blobs left without an owning record
func (b *Board) logOrphans(op string, collection models.BlobCollection, keys []string) {
	if len(keys) == 0 {
		return
	}
	b.log.WithFields(logrus.Fields{
		"op":         op,
		"collection": collection,
		"keys":       keys,
		"count":      len(keys),
	}).Warn("orphaned blobs left in storage")
}

// deleteBlobs removes keys from collection, continuing past failures.
// Keys that could not be deleted are logged as orphans.
func (b *Board) deleteBlobs(ctx context.Context, op string, collection models.BlobCollection, keys []string) {
	var failed []string
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := b.blobs.Delete(ctx, collection, key); err != nil {
			b.log.WithError(err).WithField("key", key).Warn("failed to delete blob")
			failed = append(failed, key)
		}
	}
	b.logOrphans(op, collection, failed)
}
