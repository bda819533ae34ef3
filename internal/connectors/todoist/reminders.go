package todoist

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// syncCommand is one command in a Sync v9 request envelope.
type syncCommand struct {
	Type   string         `json:"type"`
	TempID string         `json:"temp_id"`
	UUID   string         `json:"uuid"`
	Args   map[string]any `json:"args"`
}

type syncRequest struct {
	Commands []syncCommand `json:"commands"`
}

// AddReminder attaches an absolute-time reminder to a task. Reminders
// are not exposed by the REST API, so this goes through the Sync API
// with a uuid-identified command.
func (c *Client) AddReminder(ctx context.Context, taskID string, remindAt time.Time) error {
	req := syncRequest{
		Commands: []syncCommand{{
			Type:   "reminder_add",
			TempID: uuid.NewString(),
			UUID:   uuid.NewString(),
			Args: map[string]any{
				"item_id": taskID,
				"due":     map[string]string{"date": dueTime(remindAt)},
			},
		}},
	}

	if err := c.do(ctx, http.MethodPost, c.syncURL, req, nil); err != nil {
		return fmt.Errorf("add reminder for task %s: %w", taskID, err)
	}
	return nil
}
