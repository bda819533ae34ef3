package todoist

import (
	"context"
	"fmt"

	"github.com/DEVLlN/canvas-todoist-sync/internal/logger"
)

type project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnsureProject returns the ID of the named project, creating it when
// it does not exist. The project list is fetched once and cached.
func (c *Client) EnsureProject(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.projects == nil {
		var list []project
		if err := c.get(ctx, "/projects", &list); err != nil {
			return "", fmt.Errorf("list projects: %w", err)
		}
		c.projects = make(map[string]string, len(list))
		for _, p := range list {
			c.projects[p.Name] = p.ID
		}
	}

	if id, ok := c.projects[name]; ok {
		logger.Debug("Using existing project: %s", name)
		return id, nil
	}

	logger.Info("Creating project: %s", name)
	var created project
	if err := c.post(ctx, "/projects", map[string]string{"name": name}, &created); err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	c.projects[name] = created.ID
	return created.ID, nil
}
