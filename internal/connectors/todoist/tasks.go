package todoist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
)

// dueFormat is the local date-time format Todoist accepts for
// due_datetime alternatives via due_string.
const dueFormat = "2006-01-02 at 15:04"

type task struct {
	ID string `json:"id"`
}

// taskPayload is the REST v2 task create/update body.
type taskPayload struct {
	Content     string   `json:"content"`
	Description string   `json:"description"`
	ProjectID   string   `json:"project_id,omitempty"`
	DueString   string   `json:"due_string"`
	Labels      []string `json:"labels"`
	Priority    int      `json:"priority"`
}

// priorityValue maps a tier to Todoist's scale, where 4 is urgent (red)
// and 1 is normal.
func priorityValue(tier domain.PriorityTier) int {
	switch tier {
	case domain.TierUrgent:
		return 4
	case domain.TierHigh:
		return 3
	case domain.TierMedium:
		return 2
	default:
		return 1
	}
}

func buildPayload(req driven.TaskRequest) taskPayload {
	description := req.Description
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen]
	}
	labels := req.Labels
	if labels == nil {
		labels = []string{}
	}
	return taskPayload{
		Content:     req.Title,
		Description: description,
		ProjectID:   req.ProjectID,
		DueString:   req.DueAt.Format(dueFormat),
		Labels:      labels,
		Priority:    priorityValue(req.Priority),
	}
}

// CreateTask creates a task and returns its ID.
func (c *Client) CreateTask(ctx context.Context, req driven.TaskRequest) (string, error) {
	var created task
	if err := c.post(ctx, "/tasks", buildPayload(req), &created); err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	return created.ID, nil
}

// UpdateTask overwrites an existing task's fields. The project is not
// changed on update; Todoist moves are a separate endpoint and synced
// tasks stay in the project they were created in.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req driven.TaskRequest) error {
	payload := buildPayload(req)
	payload.ProjectID = ""
	if err := c.post(ctx, "/tasks/"+taskID, payload, nil); err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	return nil
}

// TaskExists reports whether a task is still present. A 404 means the
// task was deleted or completed; any other failure propagates.
func (c *Client) TaskExists(ctx context.Context, taskID string) (bool, error) {
	var t task
	err := c.get(ctx, "/tasks/"+taskID, &t)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("get task %s: %w", taskID, err)
}

// CloseTask marks a task as complete.
func (c *Client) CloseTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks/"+taskID+"/close", nil, nil); err != nil {
		return fmt.Errorf("close task %s: %w", taskID, err)
	}
	return nil
}

// dueTime formats a reminder instant for the Sync API.
func dueTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
