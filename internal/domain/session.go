package domain

import (
	"time"

	"resume-forge/internal/model"

	"github.com/google/uuid"
)

// Wizard steps, 1-based.
const (
	StepPersonalInfo = iota + 1
	StepExperience
	StepEducation
	StepSkills
	StepProjects
	StepCertifications
	StepLanguages
	StepExport
)

// StepNames lists display names indexed by step - 1.
var StepNames = []string{
	"Personal Info",
	"Experience",
	"Education",
	"Skills",
	"Projects",
	"Certifications",
	"Languages",
	"Export",
}

// Session is the per-user editing context: the document under construction
// and the wizard position.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Document  model.Document `json:"document"`
	Step      int            `json:"step"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewSession(userID uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Document:  model.NewDocument(),
		Step:      StepPersonalInfo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
