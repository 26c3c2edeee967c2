package api

import (
	"context"
	"fmt"
	"net/url"
)

// Question represents one question of an exam
type Question struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// Submission represents the current user's graded submission for an exam
type Submission struct {
	Score float64 `json:"score"`
}

// Exam represents a course exam (assignment)
type Exam struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     string      `json:"due_date"`
	Questions   []Question  `json:"questions,omitempty"`
	Submission  *Submission `json:"submission,omitempty"`
}

// ExamDraft carries the fields for creating an exam
type ExamDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"due_date"`
	Questions   []Question `json:"questions,omitempty"`
}

// ListExams retrieves the exams of a course
func (c *Client) ListExams(ctx context.Context, courseID string) ([]Exam, error) {
	path := fmt.Sprintf("/exams/course/%s", url.PathEscape(courseID))

	var exams []Exam
	if err := c.do(ctx, "GET", path, nil, &exams); err != nil {
		return nil, err
	}

	return exams, nil
}

// CreateExam creates an exam in a course and returns the confirmed record
func (c *Client) CreateExam(ctx context.Context, courseID string, draft ExamDraft) (*Exam, error) {
	path := fmt.Sprintf("/exams/course/%s", url.PathEscape(courseID))

	var exam Exam
	if err := c.do(ctx, "POST", path, draft, &exam); err != nil {
		return nil, err
	}

	return &exam, nil
}

// DeleteExam removes an exam
func (c *Client) DeleteExam(ctx context.Context, examID string) error {
	path := fmt.Sprintf("/exams/%s", url.PathEscape(examID))
	return c.do(ctx, "DELETE", path, nil, nil)
}
