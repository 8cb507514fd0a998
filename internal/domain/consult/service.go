package consult

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Practitioner is the slice of a doctor record the dialogue needs.
type Practitioner struct {
	ID           uuid.UUID
	Name         string
	HospitalName string
	Online       bool
}

// PractitionerSource resolves a doctor id at session start.
type PractitionerSource interface {
	Practitioner(ctx context.Context, id uuid.UUID) (Practitioner, error)
}

// Service runs consultation sessions. Sessions are held in memory only and
// are discarded when ended.
type Service struct {
	doctors PractitionerSource
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewService constructs the consultation service.
func NewService(doctors PractitionerSource, log zerolog.Logger) *Service {
	return &Service{
		doctors:  doctors,
		log:      log,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// SetNow overrides the clock. Intended for tests.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

// StartSession opens a consultation with the doctor about the illness and
// emits the opening greeting.
func (s *Service) StartSession(ctx context.Context, doctorID uuid.UUID, illness string) (*Session, error) {
	illness = strings.TrimSpace(illness)
	if illness == "" {
		return nil, fmt.Errorf("%w: illness is required", ErrValidation)
	}

	doc, err := s.doctors.Practitioner(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown doctor %s", ErrNotFound, doctorID)
	}

	now := s.now().UTC()
	sess := &Session{
		ID:           uuid.New(),
		DoctorID:     doc.ID,
		DoctorName:   doc.Name,
		HospitalName: doc.HospitalName,
		Illness:      illness,
		Step:         StepOpening,
		CreatedAt:    now,
	}
	sess.appendLine(openingLine(illness), false, now)
	sess.Step = StepDescribe

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.log.Debug().Stringer("session_id", sess.ID).Str("illness", illness).Msg("consultation started")
	return s.snapshot(sess), nil
}

// GetSession returns a copy of the session transcript and state.
func (s *Service) GetSession(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.snapshot(sess), nil
}

// EndSession discards the session.
func (s *Service) EndSession(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// SubmitPatientMessage records the patient's line and advances the
// dialogue by exactly one step. At the closing step the message is
// tokenized against the agreement keywords while the prescription offer
// stands; afterwards every message draws the same closing remark.
func (s *Service) SubmitPatientMessage(_ context.Context, id uuid.UUID, text string) (*Session, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now().UTC()
	sess.appendLine(text, true, now)

	switch sess.Step {
	case StepDescribe:
		sess.appendLine(durationLine(), false, now)
		sess.Step = StepDuration
	case StepDuration:
		sess.appendLine(assessmentLine(sess.Illness), false, now)
		sess.Step = StepAssessment
	case StepAssessment:
		sess.appendLine(offerLine(), false, now)
		sess.Step = StepClosing
		sess.AwaitingAgreement = true
	case StepClosing:
		if sess.AwaitingAgreement {
			sess.AwaitingAgreement = false
			if agreesToPrescription(text) {
				sess.PrescriptionOpen = true
				break
			}
			sess.appendLine(closingLine(sess.HospitalName), false, now)
			break
		}
		// Terminal loop: the step never advances past closing.
		sess.appendLine(closingLine(sess.HospitalName), false, now)
	}

	return s.snapshot(sess), nil
}

// ToggleMedication adds the medication to the selection, or removes it if
// already selected. Only valid while the prescription exchange is open and
// only for medications offered for the session's illness.
func (s *Service) ToggleMedication(_ context.Context, id uuid.UUID, medication string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !sess.PrescriptionOpen {
		return nil, fmt.Errorf("%w: prescription selection is not open", ErrValidation)
	}
	if !containsString(MedicationsFor(sess.Illness), medication) {
		return nil, fmt.Errorf("%w: medication %q is not offered for %s", ErrValidation, medication, sess.Illness)
	}

	if sess.hasSelected(medication) {
		kept := sess.SelectedMedications[:0]
		for _, m := range sess.SelectedMedications {
			if m != medication {
				kept = append(kept, m)
			}
		}
		sess.SelectedMedications = kept
	} else {
		sess.SelectedMedications = append(sess.SelectedMedications, medication)
	}
	sess.UpdatedAt = s.now().UTC()
	return s.snapshot(sess), nil
}

// ConfirmMedications commits the current selection: each selected item is
// acknowledged in the transcript, appended to the prescribed list, and the
// doctor closes with a confirmation line. The selection is then cleared
// and the prescription exchange closes.
func (s *Service) ConfirmMedications(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !sess.PrescriptionOpen {
		return nil, fmt.Errorf("%w: prescription selection is not open", ErrValidation)
	}
	if len(sess.SelectedMedications) == 0 {
		return nil, fmt.Errorf("%w: no medications selected", ErrValidation)
	}

	now := s.now().UTC()
	confirmed := make([]string, len(sess.SelectedMedications))
	copy(confirmed, sess.SelectedMedications)

	for _, med := range confirmed {
		sess.appendLine(acknowledgementLine(med), true, now)
		sess.PrescribedMedications = append(sess.PrescribedMedications, med)
	}
	sess.appendLine(confirmationLine(confirmed), false, now)

	sess.SelectedMedications = nil
	sess.PrescriptionOpen = false

	s.log.Debug().Stringer("session_id", sess.ID).Int("medications", len(confirmed)).Msg("prescription confirmed")
	return s.snapshot(sess), nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// snapshot copies the session so callers never share internal slices.
// Callers must hold at least a read lock.
func (s *Service) snapshot(sess *Session) *Session {
	out := *sess
	out.Transcript = append([]Message(nil), sess.Transcript...)
	out.SelectedMedications = append([]string(nil), sess.SelectedMedications...)
	out.PrescribedMedications = append([]string(nil), sess.PrescribedMedications...)
	return &out
}
