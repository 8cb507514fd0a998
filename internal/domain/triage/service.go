package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier dispatches a doctor alert for a newly stored entry.
// Implementations must be safe to call concurrently.
type Notifier interface {
	NotifyNewEntry(ctx context.Context, e *SymptomEntry) error
}

// Service implements symptom triage and entry management on top of an
// EntryRepository.
type Service struct {
	entries        EntryRepository
	rules          Rules
	notifier       Notifier
	notifyOnCreate bool
	log            zerolog.Logger
	now            func() time.Time
}

// NewService constructs the triage service. notifier may be nil, which
// disables doctor alerts regardless of notifyOnCreate.
func NewService(entries EntryRepository, rules Rules, notifier Notifier, notifyOnCreate bool, log zerolog.Logger) *Service {
	return &Service{
		entries:        entries,
		rules:          rules,
		notifier:       notifier,
		notifyOnCreate: notifyOnCreate,
		log:            log,
		now:            time.Now,
	}
}

// SetNow overrides the clock. Intended for tests.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

// ProcessSymptomInput classifies a free-text symptom description. On a
// keyword match it stores one new unsynced entry and returns the diagnosis
// response; on empty input or no match it stores nothing and returns a
// conversational prompt.
func (s *Service) ProcessSymptomInput(ctx context.Context, freeText string, pc PatientContext) (*Result, error) {
	trimmed := strings.TrimSpace(freeText)
	if trimmed == "" {
		return &Result{Response: PromptEmpty}, nil
	}

	rule, ok := s.rules.Match(trimmed)
	if !ok {
		return &Result{Response: PromptNoMatch}, nil
	}

	entry := &SymptomEntry{
		PatientName: pc.Name,
		Phone:       pc.Phone,
		Title:       "Symptom Entry - " + s.now().Format("1/2/06, 3:04 PM"),
		Age:         pc.Age,
		Gender:      pc.Gender,
		Symptoms:    trimmed,
		Result:      rule.Diagnosis,
		Details:     "Matched keyword: " + rule.Keyword,
		IsHealthy:   rule.Healthy,
	}
	if err := s.entries.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("store entry: %w", err)
	}

	s.maybeNotify(ctx, entry)

	return &Result{
		Matched:  true,
		Keyword:  rule.Keyword,
		Response: fmt.Sprintf("Based on your symptoms, you may have: %s. %s", rule.Diagnosis, rule.Advice),
		Entry:    entry,
	}, nil
}

// SubmitEntry stores a manually composed entry (the offline form path).
func (s *Service) SubmitEntry(ctx context.Context, e *SymptomEntry) error {
	if strings.TrimSpace(e.PatientName) == "" {
		return fmt.Errorf("%w: patient_name is required", ErrValidation)
	}
	if strings.TrimSpace(e.Symptoms) == "" {
		return fmt.Errorf("%w: symptoms is required", ErrValidation)
	}
	e.IsSynced = false
	e.DoctorNotified = false
	if e.Title == "" {
		e.Title = "Symptom Entry - " + s.now().Format("1/2/06, 3:04 PM")
	}
	if err := s.entries.Add(ctx, e); err != nil {
		return err
	}

	s.maybeNotify(ctx, e)
	return nil
}

// maybeNotify applies the uniform notify-on-create policy: both the chat
// triage path and the manual submission path alert a doctor when enabled.
func (s *Service) maybeNotify(ctx context.Context, e *SymptomEntry) {
	if !s.notifyOnCreate || s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyNewEntry(ctx, e); err != nil {
		s.log.Error().Err(err).Stringer("entry_id", e.ID).Msg("doctor notification failed")
		return
	}
	if err := s.entries.MarkDoctorNotified(ctx, e.ID); err != nil {
		s.log.Error().Err(err).Stringer("entry_id", e.ID).Msg("failed to mark entry notified")
		return
	}
	e.DoctorNotified = true
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*SymptomEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context, limit, offset int) ([]*SymptomEntry, int, error) {
	return s.entries.List(ctx, limit, offset)
}

func (s *Service) UpdateEntry(ctx context.Context, e *SymptomEntry) error {
	if e.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	return s.entries.Update(ctx, e)
}

func (s *Service) RemoveEntry(ctx context.Context, id uuid.UUID) error {
	return s.entries.Remove(ctx, id)
}

func (s *Service) HasPending(ctx context.Context) (bool, error) {
	return s.entries.HasPending(ctx)
}

// SyncAllPending flips every pending entry to synced and reports per-entry
// outcomes. Running it again immediately is a no-op.
func (s *Service) SyncAllPending(ctx context.Context) ([]SyncOutcome, error) {
	outcomes, err := s.entries.SyncAllPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(outcomes) > 0 {
		s.log.Info().Int("count", len(outcomes)).Msg("synced pending entries")
	}
	return outcomes, nil
}

// MarkDoctorNotified records that a doctor has been alerted for the entry.
func (s *Service) MarkDoctorNotified(ctx context.Context, id uuid.UUID) error {
	return s.entries.MarkDoctorNotified(ctx, id)
}
