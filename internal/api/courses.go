package api

import (
	"context"
	"fmt"
	"net/url"
)

// Course roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Course represents a course record
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TeacherName string `json:"teacher_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Capacity    int    `json:"capacity"`
	Role        string `json:"role"`
}

// CourseDraft carries the fields for creating a course
type CourseDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Capacity    int    `json:"capacity"`
}

// ListCourses retrieves the full course list for the current user
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.do(ctx, "GET", "/courses", nil, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// SearchCourses searches courses by title
func (c *Client) SearchCourses(ctx context.Context, query string) ([]Course, error) {
	path := fmt.Sprintf("/courses/title/%s", url.PathEscape(query))

	var courses []Course
	if err := c.do(ctx, "GET", path, nil, &courses); err != nil {
		return nil, err
	}

	return courses, nil
}

// CreateCourse creates a new course and returns the server-confirmed record
func (c *Client) CreateCourse(ctx context.Context, draft CourseDraft) (*Course, error) {
	var course Course
	if err := c.do(ctx, "POST", "/courses", draft, &course); err != nil {
		return nil, err
	}

	return &course, nil
}

// Enroll enrolls the current user in a course
func (c *Client) Enroll(ctx context.Context, courseID string) error {
	path := fmt.Sprintf("/courses/%s/enroll", url.PathEscape(courseID))
	return c.do(ctx, "POST", path, nil, nil)
}
