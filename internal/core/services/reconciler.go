package services

import (
	"context"
	"fmt"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driving"
	"github.com/DEVLlN/canvas-todoist-sync/internal/logger"
)

// Ensure Reconciler implements the interface.
var _ driving.Reconciler = (*Reconciler)(nil)

// Reconciler diffs the calendar feed against stored sync records and
// pushes the resulting operations to the task service. One run is a
// single synchronous pass; the per-assignment decision table is:
//
//	no record                  -> create task, store record
//	record, same fingerprint   -> skip
//	record, changed fingerprint -> update task, overwrite fingerprint
//
// Records whose assignment is absent from the feed are left untouched
// (the task service owns removal), unless the completion pass is on.
//
// Updates overwrite every synced field: the latest feed wins, so manual
// edits made directly in the task service are lost on the next content
// change. This is deliberate, documented behaviour.
type Reconciler struct {
	feed    driven.FeedSource
	parser  driven.FeedParser
	tasks   driven.TaskService
	records driven.RecordStore
	cfg     domain.Config

	// now is injectable for tests.
	now func() time.Time
}

// NewReconciler creates a reconciler. The config must already be
// validated; the reconciler never re-checks required values mid-run.
func NewReconciler(
	feed driven.FeedSource,
	parser driven.FeedParser,
	tasks driven.TaskService,
	records driven.RecordStore,
	cfg domain.Config,
) *Reconciler {
	return &Reconciler{
		feed:    feed,
		parser:  parser,
		tasks:   tasks,
		records: records,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Run executes one reconciliation pass.
func (r *Reconciler) Run(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{StartedAt: r.now()}
	logger.Section("Sync run")

	// 1. Fetch and parse the feed. Both failures are fatal: nothing has
	// been written yet and a partial feed must not drive decisions.
	raw, err := r.feed.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedFetch, err)
	}

	assignments, skipped, err := r.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	report.ParseWarnings = skipped

	// 2. Load prior state.
	state, err := r.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sync records: %w", err)
	}

	// 3. Drop past assignments before any operation is considered.
	now := r.now()
	upcoming := assignments[:0]
	for _, a := range assignments {
		if a.DueAt.Before(now) {
			logger.Debug("Dropping past assignment: %s", a.Title)
			report.PastDue++
			continue
		}
		upcoming = append(upcoming, a)
	}

	if r.cfg.CompletionEnabled {
		r.completeVanished(ctx, state, upcoming, now, report)
	}

	if len(upcoming) == 0 {
		logger.Info("No upcoming assignments in feed")
		report.EndedAt = r.now()
		return report, r.records.SetLastSync(ctx, report.EndedAt)
	}

	// 4. Bootstrap the project before emitting any task operation. An
	// auth or project failure here aborts the run with no writes.
	projectID, err := r.tasks.EnsureProject(ctx, r.cfg.ProjectName)
	if err != nil {
		return nil, fmt.Errorf("ensure project %q: %w", r.cfg.ProjectName, err)
	}

	// 5. Decision table, one assignment at a time. A failed operation
	// leaves the record untouched so the next run retries it.
	for _, a := range upcoming {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}
		r.reconcileOne(ctx, a, projectID, state, now, report)
	}

	report.EndedAt = r.now()
	if err := r.records.SetLastSync(ctx, report.EndedAt); err != nil {
		logger.Warn("Could not record last sync time: %v", err)
	}

	logger.Info("Sync complete: %d created, %d updated, %d skipped, %d failed",
		report.Created, report.Updated, report.Skipped, report.Failed)
	return report, nil
}

// reconcileOne applies the decision table to a single assignment.
func (r *Reconciler) reconcileOne(
	ctx context.Context,
	a domain.Assignment,
	projectID string,
	state map[string]domain.SyncRecord,
	now time.Time,
	report *domain.RunReport,
) {
	fingerprint := a.Fingerprint()

	record, known := state[a.SourceID]
	if known && record.Fingerprint == fingerprint {
		logger.Debug("Skipping unchanged assignment: %s", a.Title)
		report.Skipped++
		return
	}

	req := driven.TaskRequest{
		Title:       a.Title,
		Description: a.Description,
		DueAt:       a.DueAt,
		Priority:    r.cfg.Priority.Classify(a.DueAt, now),
		ProjectID:   projectID,
	}

	// Label failures are warnings: the task still syncs without one.
	if label, err := r.tasks.EnsureLabel(ctx, a.CourseLabel); err != nil {
		logger.Warn("Could not ensure label %q: %v", a.CourseLabel, err)
	} else {
		req.Labels = []string{label}
	}

	if known {
		// The stored task may have been deleted or completed remotely;
		// fall back to creating a fresh one in that case.
		exists, err := r.tasks.TaskExists(ctx, record.TaskID)
		if err != nil {
			logger.Warn("Could not check task %s: %v", record.TaskID, err)
			report.Failed++
			return
		}
		if exists {
			r.updateTask(ctx, a, record, req, fingerprint, now, report)
			return
		}
		logger.Info("Task %s gone remotely, recreating: %s", record.TaskID, a.Title)
	}

	r.createTask(ctx, a, req, fingerprint, now, report)
}

// createTask emits a create operation and commits the new record.
func (r *Reconciler) createTask(
	ctx context.Context,
	a domain.Assignment,
	req driven.TaskRequest,
	fingerprint string,
	now time.Time,
	report *domain.RunReport,
) {
	taskID, err := r.tasks.CreateTask(ctx, req)
	if err != nil {
		logger.Warn("Failed to create task for %q: %v", a.Title, err)
		report.Failed++
		return
	}
	logger.Info("Created task: %s (ID: %s)", a.Title, taskID)

	r.addReminder(ctx, taskID, a.DueAt, now)

	record := domain.SyncRecord{
		SourceID:    a.SourceID,
		TaskID:      taskID,
		Fingerprint: fingerprint,
		DueAt:       a.DueAt,
		SyncedAt:    now,
	}
	if err := r.records.Save(ctx, record); err != nil {
		// The task exists but the record did not commit; the next run
		// will see no record and recreate. Surfaced as a failure so the
		// summary is honest about it.
		logger.Warn("Failed to save record for %q: %v", a.Title, err)
		report.Failed++
		return
	}
	report.Created++
}

// updateTask emits an update operation and overwrites the stored
// fingerprint only after the service call succeeds.
func (r *Reconciler) updateTask(
	ctx context.Context,
	a domain.Assignment,
	record domain.SyncRecord,
	req driven.TaskRequest,
	fingerprint string,
	now time.Time,
	report *domain.RunReport,
) {
	if err := r.tasks.UpdateTask(ctx, record.TaskID, req); err != nil {
		logger.Warn("Failed to update task for %q: %v", a.Title, err)
		report.Failed++
		return
	}
	logger.Info("Updated task: %s (ID: %s)", a.Title, record.TaskID)

	record.Fingerprint = fingerprint
	record.DueAt = a.DueAt
	record.SyncedAt = now
	if err := r.records.Save(ctx, record); err != nil {
		logger.Warn("Failed to save record for %q: %v", a.Title, err)
		report.Failed++
		return
	}
	report.Updated++
}

// addReminder schedules a reminder before the due date on a newly
// created task. Best effort only.
func (r *Reconciler) addReminder(ctx context.Context, taskID string, dueAt, now time.Time) {
	if r.cfg.ReminderDaysBefore <= 0 {
		return
	}
	remindAt := dueAt.Add(-time.Duration(r.cfg.ReminderDaysBefore) * 24 * time.Hour)
	if !remindAt.After(now) {
		return
	}
	if err := r.tasks.AddReminder(ctx, taskID, remindAt); err != nil {
		logger.Warn("Could not add reminder for task %s: %v", taskID, err)
	}
}

// completeVanished closes tasks for assignments that disappeared from
// the feed while their stored due date is still in the future: Canvas
// drops submitted assignments from the feed, so a vanished-but-due
// assignment was most likely handed in. Records past their due date are
// left alone; so is everything else when this pass is disabled.
func (r *Reconciler) completeVanished(
	ctx context.Context,
	state map[string]domain.SyncRecord,
	upcoming []domain.Assignment,
	now time.Time,
	report *domain.RunReport,
) {
	current := make(map[string]struct{}, len(upcoming))
	for _, a := range upcoming {
		current[a.SourceID] = struct{}{}
	}

	for sourceID, record := range state {
		if _, present := current[sourceID]; present {
			continue
		}
		if !record.DueAt.After(now) {
			continue
		}

		exists, err := r.tasks.TaskExists(ctx, record.TaskID)
		if err != nil {
			logger.Warn("Could not check vanished task %s: %v", record.TaskID, err)
			continue
		}
		if exists {
			if err := r.tasks.CloseTask(ctx, record.TaskID); err != nil {
				logger.Warn("Could not complete task %s: %v", record.TaskID, err)
				continue
			}
			logger.Info("Assignment gone from feed, completed task: %s", record.TaskID)
			report.Completed++
		}

		if err := r.records.Delete(ctx, sourceID); err != nil {
			logger.Warn("Could not drop record %s: %v", sourceID, err)
			continue
		}
		delete(state, sourceID)
	}
}
