package todoist

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/DEVLlN/canvas-todoist-sync/internal/logger"
)

var (
	labelInvalidRe    = regexp.MustCompile(`[^\w\s-]`)
	labelWhitespaceRe = regexp.MustCompile(`\s+`)
)

type label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SanitizeLabel converts a course label into a valid Todoist label
// name: special characters stripped, whitespace collapsed to
// underscores.
func SanitizeLabel(name string) string {
	s := labelInvalidRe.ReplaceAllString(name, "")
	s = labelWhitespaceRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// EnsureLabel returns a usable label name for the course, creating the
// label when it does not exist. The label list is fetched once and
// cached.
func (c *Client) EnsureLabel(ctx context.Context, name string) (string, error) {
	sanitized := SanitizeLabel(name)
	if sanitized == "" {
		return "", fmt.Errorf("label %q sanitises to nothing", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.labels == nil {
		var list []label
		if err := c.get(ctx, "/labels", &list); err != nil {
			return "", fmt.Errorf("list labels: %w", err)
		}
		c.labels = make(map[string]string, len(list))
		for _, l := range list {
			c.labels[l.Name] = l.ID
		}
	}

	if _, ok := c.labels[sanitized]; ok {
		return sanitized, nil
	}

	logger.Info("Creating label: %s", sanitized)
	var created label
	if err := c.post(ctx, "/labels", map[string]string{"name": sanitized}, &created); err != nil {
		return "", fmt.Errorf("create label: %w", err)
	}
	c.labels[created.Name] = created.ID
	return created.Name, nil
}
