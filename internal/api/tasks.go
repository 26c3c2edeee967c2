package api

import (
	"context"
	"fmt"
	"net/url"
)

// Task represents a course task
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// TaskDraft carries the fields for creating a task
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// ListTasks retrieves the tasks of a course
func (c *Client) ListTasks(ctx context.Context, courseID string) ([]Task, error) {
	path := fmt.Sprintf("/tasks/course/%s", url.PathEscape(courseID))

	var tasks []Task
	if err := c.do(ctx, "GET", path, nil, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// CreateTask creates a task in a course and returns the confirmed record
func (c *Client) CreateTask(ctx context.Context, courseID string, draft TaskDraft) (*Task, error) {
	path := fmt.Sprintf("/tasks/course/%s", url.PathEscape(courseID))

	var task Task
	if err := c.do(ctx, "POST", path, draft, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	path := fmt.Sprintf("/tasks/%s", url.PathEscape(taskID))
	return c.do(ctx, "DELETE", path, nil, nil)
}
