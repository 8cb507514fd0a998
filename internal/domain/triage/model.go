// Package triage classifies free-text symptom reports against a keyword
// rule set and records the resulting symptom entries.
package triage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when an entry id does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrValidation is returned for rejected input.
	ErrValidation = errors.New("validation failed")
)

// SymptomEntry is one patient-reported episode with its triage outcome.
type SymptomEntry struct {
	ID             uuid.UUID `json:"id"`
	PatientName    string    `json:"patient_name"`
	Phone          string    `json:"phone"`
	Title          string    `json:"title"`
	Age            string    `json:"age"`
	Gender         string    `json:"gender"`
	Symptoms       string    `json:"symptoms"`
	Result         string    `json:"result"`
	Details        string    `json:"details"`
	IsSynced       bool      `json:"is_synced"`
	IsHealthy      bool      `json:"is_healthy"`
	DoctorNotified bool      `json:"doctor_notified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PatientContext carries the demographic details gathered before the
// symptom description is submitted.
type PatientContext struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Age    string `json:"age"`
	Gender string `json:"gender"`
}

// Rule maps a lowercase keyword to a diagnosis. Matching is substring
// containment against the lowercased input, first match wins in rule order.
type Rule struct {
	Keyword   string `json:"keyword"`
	Diagnosis string `json:"diagnosis"`
	Advice    string `json:"advice"`
	Healthy   bool   `json:"healthy"`
}

// Result is the outcome of processing one symptom input.
type Result struct {
	Matched  bool          `json:"matched"`
	Keyword  string        `json:"keyword,omitempty"`
	Response string        `json:"response"`
	Entry    *SymptomEntry `json:"entry,omitempty"`
}

// SyncOutcome reports the fate of one entry during a sync run.
type SyncOutcome struct {
	EntryID uuid.UUID `json:"entry_id"`
	Synced  bool      `json:"synced"`
	Error   string    `json:"error,omitempty"`
}
