package api

import (
	"context"
	"fmt"
	"net/url"
)

// Resource represents a file or link attached to a module
type Resource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Module represents a course module with its nested resources
type Module struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources"`
}

// ModuleDraft carries the fields for creating or updating a module
type ModuleDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListModules retrieves the modules of a course, with nested resources
func (c *Client) ListModules(ctx context.Context, courseID string) ([]Module, error) {
	path := fmt.Sprintf("/modules/course/%s", url.PathEscape(courseID))

	var modules []Module
	if err := c.do(ctx, "GET", path, nil, &modules); err != nil {
		return nil, err
	}

	return modules, nil
}

// CreateModule creates a module in a course and returns the confirmed record
func (c *Client) CreateModule(ctx context.Context, courseID string, draft ModuleDraft) (*Module, error) {
	path := fmt.Sprintf("/modules/course/%s", url.PathEscape(courseID))

	var module Module
	if err := c.do(ctx, "POST", path, draft, &module); err != nil {
		return nil, err
	}

	return &module, nil
}

// UpdateModule updates a module's title and description
func (c *Client) UpdateModule(ctx context.Context, moduleID string, draft ModuleDraft) (*Module, error) {
	path := fmt.Sprintf("/modules/%s", url.PathEscape(moduleID))

	var module Module
	if err := c.do(ctx, "PUT", path, draft, &module); err != nil {
		return nil, err
	}

	return &module, nil
}

// DeleteModule removes a module
func (c *Client) DeleteModule(ctx context.Context, moduleID string) error {
	path := fmt.Sprintf("/modules/%s", url.PathEscape(moduleID))
	return c.do(ctx, "DELETE", path, nil, nil)
}

// AddResource attaches a resource to a module and returns the confirmed record
func (c *Client) AddResource(ctx context.Context, moduleID, name string) (*Resource, error) {
	path := fmt.Sprintf("/modules/%s/resources", url.PathEscape(moduleID))
	req := map[string]string{"name": name}

	var resource Resource
	if err := c.do(ctx, "POST", path, req, &resource); err != nil {
		return nil, err
	}

	return &resource, nil
}

// RemoveResource detaches a resource from a module
func (c *Client) RemoveResource(ctx context.Context, moduleID, resourceID string) error {
	path := fmt.Sprintf("/modules/%s/resources/%s", url.PathEscape(moduleID), url.PathEscape(resourceID))
	return c.do(ctx, "DELETE", path, nil, nil)
}
