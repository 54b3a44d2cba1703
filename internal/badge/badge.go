// Package badge owns the persisted collection of achievement badges and the
// dark-mode display preference.
package badge

import (
	"errors"
	"time"
)

const (
	CollectionKey = "edusign_wallet"
	DarkModeKey   = "edusign_dark_mode"

	idPrefix = "edusign_"

	// TimeLayout matches JavaScript's Date.toISOString output.
	TimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	// ErrStorage wraps every failure of the underlying key-value store
	// (unreadable data, quota, access errors).
	ErrStorage = errors.New("badge storage failure")
	// ErrValidation wraps rejected input; nothing has been written when it is returned.
	ErrValidation = errors.New("invalid badge")
)

// Badge is one completed educational achievement.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CreatedAt   string `json:"createdAt"`
}

// Fields are the user-supplied parts of a new badge.
type Fields struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required,http_url"`
}

// Patch carries optional replacements for an existing badge; nil fields are left unchanged.
type Patch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,http_url"`
}

func (p Patch) apply(b Badge) Badge {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Image != nil {
		b.Image = *p.Image
	}
	return b
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// seeds are written the first time the collection is read.
var seeds = []Badge{
	{
		ID:          "edusign_001",
		Name:        "Python Fundamentals Badge",
		Description: "Awarded for completing the comprehensive Python Fundamentals course on EduSign",
		Image:       "https://images.unsplash.com/photo-1526379095098-d400fd0bf935?w=300&h=300&fit=crop&crop=center",
		CreatedAt:   "2025-01-15T10:30:00.000Z",
	},
	{
		ID:          "edusign_002",
		Name:        "Java OOP Certification",
		Description: "Certified mastery of Object-Oriented Programming principles in Java",
		Image:       "https://images.unsplash.com/photo-1517077304055-6e89abbf09b0?w=300&h=300&fit=crop&crop=center",
		CreatedAt:   "2025-02-20T14:15:00.000Z",
	},
	{
		ID:          "edusign_003",
		Name:        "Web Dev Bootcamp Completion",
		Description: "Successfully completed the full-stack web development bootcamp program",
		Image:       "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=300&h=300&fit=crop&crop=center",
		CreatedAt:   "2025-03-10T16:45:00.000Z",
	},
}

// Seeds returns a copy of the default collection.
func Seeds() []Badge {
	return append([]Badge(nil), seeds...)
}

// SuggestedImages are quick picks for the image field.
var SuggestedImages = []string{
	"https://images.unsplash.com/photo-1526379095098-d400fd0bf935?w=300&h=300&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1517077304055-6e89abbf09b0?w=300&h=300&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=300&h=300&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1555949963-aa79dcee981c?w=300&h=300&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1516321318423-f06f85e504b3?w=300&h=300&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1607706189992-eae578626c86?w=300&h=300&fit=crop&crop=center",
}
