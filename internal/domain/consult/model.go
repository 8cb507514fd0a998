// Package consult runs the scripted patient-doctor consultation dialogue:
// a forward-only, step-indexed conversation that can end in a
// prescription-selection exchange.
package consult

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a session id does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrValidation is returned for rejected input.
	ErrValidation = errors.New("validation failed")
)

// Step identifies the dialogue position. Transitions are strictly forward,
// one per patient message.
type Step int

const (
	// StepOpening is the pristine session before the greeting is emitted.
	StepOpening Step = iota
	// StepDescribe waits for the patient's symptom description.
	StepDescribe
	// StepDuration waits for how long the symptoms have lasted.
	StepDuration
	// StepAssessment waits for the patient's reply to the tentative
	// diagnosis.
	StepAssessment
	// StepClosing is the terminal step: the prescription offer has been
	// made and every further message yields the closing remark.
	StepClosing
)

// Message is one transcript line.
type Message struct {
	Text        string    `json:"text"`
	FromPatient bool      `json:"from_patient"`
	At          time.Time `json:"at"`
}

// Session is one consultation between a patient and a doctor about one
// illness. Sessions are transient and live only in memory.
type Session struct {
	ID                    uuid.UUID `json:"id"`
	DoctorID              uuid.UUID `json:"doctor_id"`
	DoctorName            string    `json:"doctor_name"`
	HospitalName          string    `json:"hospital_name,omitempty"`
	Illness               string    `json:"illness"`
	Step                  Step      `json:"step"`
	Transcript            []Message `json:"transcript"`
	AwaitingAgreement     bool      `json:"awaiting_agreement"`
	PrescriptionOpen      bool      `json:"prescription_open"`
	SelectedMedications   []string  `json:"selected_medications"`
	PrescribedMedications []string  `json:"prescribed_medications"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (s *Session) appendLine(text string, fromPatient bool, at time.Time) {
	s.Transcript = append(s.Transcript, Message{Text: text, FromPatient: fromPatient, At: at})
	s.UpdatedAt = at
}

func (s *Session) hasSelected(med string) bool {
	for _, m := range s.SelectedMedications {
		if m == med {
			return true
		}
	}
	return false
}
