package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/kanbanflow/internal/models"
	"github.com/yukikurage/kanbanflow/internal/readmodel"
	"github.com/yukikurage/kanbanflow/internal/repository"
)

// Initialize loads the board from storage, seeding defaults into empty
// collections. On failure the snapshot is left in PhaseFailed.
func (b *Board) Initialize(ctx context.Context) error {
	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithPhase(readmodel.PhaseLoading, nil)
	})

	loaded, err := b.load(ctx)
	if err != nil {
		b.log.WithError(err).Error("failed to initialize board")
		b.notifier.Notify(NotifyError, "Failed to load board data.")
		b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
			return s.WithPhase(readmodel.PhaseFailed, err)
		})
		return err
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		next := loaded.WithFilters(s.Filters())
		if prev, ok := s.CurrentUser(); ok {
			if _, stillThere := next.Member(prev.ID); stillThere {
				next = next.WithCurrentUser(prev.ID)
			}
		}
		return next
	})
	b.log.WithFields(logrus.Fields{
		"tasks":   len(loaded.Tasks()),
		"members": len(loaded.Members()),
	}).Info("board initialized")
	return nil
}

func (b *Board) load(ctx context.Context) (*readmodel.Snapshot, error) {
	names, err := b.loadColumnNames(ctx)
	if err != nil {
		return nil, err
	}

	members, err := b.members.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		seeded := b.seedMembers(b.now())
		for i := range seeded {
			if err := b.members.Put(ctx, &seeded[i]); err != nil {
				return nil, err
			}
		}
		members = seeded
		b.log.WithField("count", len(seeded)).Info("seeded team members")
	}

	tasks, err := b.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 && len(members) > 0 {
		seeded := b.seedTasks(members, b.now())
		for i := range seeded {
			if err := b.tasks.Put(ctx, &seeded[i]); err != nil {
				return nil, err
			}
		}
		tasks = seeded
		b.log.WithField("count", len(seeded)).Info("seeded tasks")
	}

	snap := readmodel.Empty().
		WithColumnNames(names).
		WithMembers(members).
		WithTasks(tasks).
		WithPhase(readmodel.PhaseReady, nil)
	if len(members) > 0 {
		snap = snap.WithCurrentUser(members[0].ID)
	}
	return snap, nil
}

// loadColumnNames reads the singleton config, creating it when absent.
// Statuses missing from the stored record fall back to their defaults.
func (b *Board) loadColumnNames(ctx context.Context) (models.ColumnNames, error) {
	names := models.DefaultColumnNames()
	cfg, err := b.config.Get(ctx, models.BoardConfigID)
	if errors.Is(err, repository.ErrNotFound) {
		if err := b.config.Put(ctx, models.NewBoardConfig(names)); err != nil {
			return nil, err
		}
		return names, nil
	}
	if err != nil {
		return nil, err
	}
	for status, name := range cfg.ColumnNames.Data() {
		if status.Valid() {
			names[status] = name
		}
	}
	return names, nil
}

// UpdateColumnNames merges updates into the stored column names
func (b *Board) UpdateColumnNames(ctx context.Context, updates models.ColumnNames) (models.ColumnNames, error) {
	const op = "update_column_names"
	cleaned := make(models.ColumnNames, len(updates))
	for status, name := range updates {
		name = strings.TrimSpace(name)
		if !status.Valid() || name == "" {
			return nil, b.fail(op, ErrInvalidColumnName)
		}
		cleaned[status] = name
	}

	merged, err := b.loadColumnNames(ctx)
	if err != nil {
		return nil, b.fail(op, err)
	}
	for status, name := range cleaned {
		merged[status] = name
	}
	if err := b.config.Put(ctx, models.NewBoardConfig(merged)); err != nil {
		return nil, b.fail(op, err)
	}

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithColumnNames(merged)
	})
	b.notifier.Notify(NotifySuccess, "Board columns updated!")
	return merged.Clone(), nil
}

// ClearAllTasks removes every task. Attachment and voice note blobs are kept
// and logged as orphans; CollectOrphanedBlobs reclaims them.
func (b *Board) ClearAllTasks(ctx context.Context) error {
	const op = "clear_all_tasks"
	before := b.state.Load().Tasks()
	if err := b.tasks.Clear(ctx); err != nil {
		return b.fail(op, err)
	}

	attachments, voiceNotes := taskBlobKeys(before)
	b.logOrphans(op, models.BlobAttachments, attachments)
	b.logOrphans(op, models.BlobVoiceNotes, voiceNotes)

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return s.WithTasks(nil)
	})
	b.notifier.Notify(NotifyInfo, "All tasks have been cleared.")
	return nil
}

// ResetBoard clears tasks and members and runs initialization again. Orphaned
// blob keys are read from storage so a board that was never initialized still
// reports them.
func (b *Board) ResetBoard(ctx context.Context) error {
	const op = "reset_board"
	tasks, err := b.tasks.GetAll(ctx)
	if err != nil {
		return b.fail(op, err)
	}
	members, err := b.members.GetAll(ctx)
	if err != nil {
		return b.fail(op, err)
	}
	if err := b.tasks.Clear(ctx); err != nil {
		return b.fail(op, err)
	}
	if err := b.members.Clear(ctx); err != nil {
		return b.fail(op, err)
	}

	attachments, voiceNotes := taskBlobKeys(tasks)
	b.logOrphans(op, models.BlobAttachments, attachments)
	b.logOrphans(op, models.BlobVoiceNotes, voiceNotes)
	b.logOrphans(op, models.BlobAvatars, memberBlobKeys(members))

	b.state.Update(func(s *readmodel.Snapshot) *readmodel.Snapshot {
		return readmodel.Empty().WithFilters(s.Filters())
	})
	if err := b.Initialize(ctx); err != nil {
		return err
	}
	b.notifier.Notify(NotifySuccess, "Board has been reset to default.")
	return nil
}

// CollectOrphanedBlobs deletes every blob not referenced by a stored task or
// member and reports how many were removed per collection. Blobs written by an
// operation that has not yet persisted its record are indistinguishable from
// orphans, so the sweep is meant to run while the board is idle.
func (b *Board) CollectOrphanedBlobs(ctx context.Context) (map[models.BlobCollection]int, error) {
	const op = "collect_orphaned_blobs"
	refs, err := b.referencedBlobs(ctx)
	if err != nil {
		return nil, b.fail(op, err)
	}

	removed := make(map[models.BlobCollection]int, len(models.AllBlobCollections))
	for _, collection := range models.AllBlobCollections {
		keys, err := b.blobs.Keys(ctx, collection)
		if err != nil {
			return removed, b.fail(op, err)
		}
		removed[collection] = 0
		for _, key := range keys {
			if _, ok := refs[collection][key]; ok {
				continue
			}
			if err := b.blobs.Delete(ctx, collection, key); err != nil {
				return removed, b.fail(op, err)
			}
			removed[collection]++
			b.log.WithFields(logrus.Fields{
				"collection": collection,
				"key":        key,
			}).Info("removed orphaned blob")
		}
	}
	return removed, nil
}

func (b *Board) referencedBlobs(ctx context.Context) (map[models.BlobCollection]map[string]struct{}, error) {
	tasks, err := b.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	members, err := b.members.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	attachments, voiceNotes := taskBlobKeys(tasks)
	return map[models.BlobCollection]map[string]struct{}{
		models.BlobAttachments: keySet(attachments),
		models.BlobVoiceNotes:  keySet(voiceNotes),
		models.BlobAvatars:     keySet(memberBlobKeys(members)),
	}, nil
}

func taskBlobKeys(tasks []models.Task) (attachments, voiceNotes []string) {
	for _, t := range tasks {
		for _, a := range t.Attachments {
			attachments = append(attachments, a.BlobKey)
		}
		for _, v := range t.VoiceNotes {
			voiceNotes = append(voiceNotes, v.BlobKey)
		}
	}
	return attachments, voiceNotes
}

func memberBlobKeys(members []models.Member) []string {
	var keys []string
	for _, m := range members {
		if m.AvatarBlobKey != "" {
			keys = append(keys, m.AvatarBlobKey)
		}
	}
	return keys
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
