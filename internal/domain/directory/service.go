package directory

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Listener is invoked after each availability reassignment with the
// doctors now online.
type Listener func(online []*Doctor)

// Service manages the doctor roster and availability reassignment.
type Service struct {
	doctors DoctorRepository
	log     zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	listenerMu sync.RWMutex
	listeners  []Listener
}

// NewService constructs the directory service.
func NewService(doctors DoctorRepository, log zerolog.Logger) *Service {
	return &Service{
		doctors: doctors,
		log:     log,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand overrides the randomness source. Intended for tests.
func (s *Service) SetRand(r *rand.Rand) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng = r
}

// AddListener registers a callback fired after every reassignment.
func (s *Service) AddListener(l Listener) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Service) AddDoctor(ctx context.Context, d *Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.doctors.Add(ctx, d)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) RemoveDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Remove(ctx, id)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.ListAll(ctx)
}

// OnlineDoctors returns the doctors currently online, in roster order.
// Recomputed on every call so it reflects the latest reassignment.
func (s *Service) OnlineDoctors(ctx context.Context) ([]*Doctor, error) {
	all, err := s.doctors.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	online := []*Doctor{}
	for _, d := range all {
		if d.IsOnline {
			online = append(online, d)
		}
	}
	return online, nil
}

// DoctorsFor returns online doctors with a specialty that contains the
// query as a case-insensitive substring, in roster order.
func (s *Service) DoctorsFor(ctx context.Context, symptom string) ([]*Doctor, error) {
	if strings.TrimSpace(symptom) == "" {
		return nil, fmt.Errorf("%w: symptom is required", ErrValidation)
	}
	all, err := s.doctors.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []*Doctor{}
	for _, d := range all {
		if d.IsOnline && specialtyMatches(d.Specialties, symptom) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

// CanTreat reports whether the doctor is online and lists a specialty
// containing the symptom as a case-insensitive substring.
func (s *Service) CanTreat(ctx context.Context, doctorID uuid.UUID, symptom string) (bool, error) {
	d, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return false, err
	}
	return d.IsOnline && specialtyMatches(d.Specialties, symptom), nil
}

func specialtyMatches(specialties []string, symptom string) bool {
	query := strings.ToLower(symptom)
	for _, sp := range specialties {
		if strings.Contains(strings.ToLower(sp), query) {
			return true
		}
	}
	return false
}

// RefreshAvailability reassigns online status across the entire roster:
// a random count k in [1, min(4, doctorCount)] of distinct doctors go
// online, everyone else goes offline. The whole batch is applied
// atomically. Returns the doctors now online.
func (s *Service) RefreshAvailability(ctx context.Context) ([]*Doctor, error) {
	all, err := s.doctors.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return []*Doctor{}, nil
	}

	maxOnline := len(all)
	if maxOnline > 4 {
		maxOnline = 4
	}

	ids := make([]uuid.UUID, len(all))
	for i, d := range all {
		ids[i] = d.ID
	}

	s.rngMu.Lock()
	k := 1 + s.rng.Intn(maxOnline)
	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	s.rngMu.Unlock()

	if err := s.doctors.SetOnline(ctx, ids[:k]); err != nil {
		return nil, fmt.Errorf("reassign availability: %w", err)
	}

	online, err := s.OnlineDoctors(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("online", len(online)).Int("total", len(all)).Msg("availability reassigned")

	s.listenerMu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenerMu.RUnlock()
	for _, l := range listeners {
		l(online)
	}

	return online, nil
}
