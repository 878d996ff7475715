package models

import "time"

// Enrollment is the caller's role in a course.
type Enrollment struct {
	Type string `json:"type"`
}

// Course is Canvas course listing metadata.
type Course struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	CreatedAt   *time.Time   `json:"created_at"`
	Enrollments []Enrollment `json:"enrollments"`
}

// Assignment is Canvas assignment listing metadata.
type Assignment struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	DueAt       *time.Time `json:"due_at"`
	Published   bool       `json:"published"`
	GradingType string     `json:"grading_type"`
}

// User is the platform-side identity attached to a submission. The email is
// the raw login id as Canvas reports it, classification into an Email
// happens at matching time.
type User struct {
	Name  string `json:"name"`
	Email string `json:"login_id"`
}

func (u User) String() string {
	return u.Name + " (" + u.Email + ")"
}

// Attachment is a remote file descriptor on a submission.
type Attachment struct {
	URL         string `json:"url"`
	DisplayName string `json:"display_name"`
}

// Submission is one piece of uploaded coursework. Attachments is nil when
// the submission carries no files.
type Submission struct {
	ID          uint64       `json:"id"`
	User        User         `json:"user"`
	Attachments []Attachment `json:"attachments"`
}
