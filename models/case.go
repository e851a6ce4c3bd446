package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CaseKind distinguishes approved from rejected feedback cases
type CaseKind string

const (
	CaseKindApproved CaseKind = "approved"
	CaseKindRejected CaseKind = "rejected"
)

// Case is a user-curated question/answer pair produced by voting on an
// AI answer. Approved cases feed back into future searches.
type Case struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Provider  string    `json:"provider"` // opaque label of the AI that produced the answer, empty for manual
	Timestamp time.Time `json:"timestamp"`
	Kind      CaseKind  `json:"kind"`
	Reason    string    `json:"reason,omitempty"` // only meaningful for rejected cases
}

// NewCase creates a Case with a fresh ID and the current timestamp.
// Question and answer are trimmed; callers must reject empty results.
func NewCase(question, answer, provider string, kind CaseKind) *Case {
	return &Case{
		ID:        uuid.New().String(),
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		Provider:  provider,
		Timestamp: time.Now(),
		Kind:      kind,
	}
}

// Snapshot is a serializable export of both case collections.
// Import replaces the stored collections wholesale, no merge.
type Snapshot struct {
	Version    string       `json:"version"`
	ExportDate time.Time    `json:"export_date"`
	Data       *SnapshotData `json:"data" validate:"required"`
}

// SnapshotData holds the exported collections
type SnapshotData struct {
	Approved []*Case `json:"approved"`
	Rejected []*Case `json:"rejected"`
}

// Statistics summarizes the feedback collections
type Statistics struct {
	ApprovedCount int       `json:"approved_count"`
	RejectedCount int       `json:"rejected_count"`
	TotalFeedback int       `json:"total_feedback"`
	LastActivity  time.Time `json:"last_activity"` // zero value when both collections are empty
}

// CleanupReport counts cases removed by an age-based cleanup
type CleanupReport struct {
	RemovedApproved int `json:"removed_approved"`
	RemovedRejected int `json:"removed_rejected"`
}
