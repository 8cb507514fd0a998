// Package directory manages the doctor roster: registration, specialty
// matching, and the periodic online-availability reassignment.
package directory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a doctor id does not exist.
	ErrNotFound = errors.New("doctor not found")
	// ErrValidation is returned for rejected doctor records.
	ErrValidation = errors.New("validation failed")
)

// Coordinate is a geographic position in floating-point degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate is within valid degree ranges.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrValidation, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrValidation, c.Longitude)
	}
	return nil
}

// Doctor is one practitioner record.
type Doctor struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	HospitalName string     `json:"hospital_name,omitempty"`
	City         string     `json:"city"`
	IsOnline     bool       `json:"is_online"`
	Specialties  []string   `json:"specialties"`
	Coordinate   Coordinate `json:"coordinate"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Validate checks the fields required for a doctor to participate in
// matching.
func (d *Doctor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(d.Specialties) == 0 {
		return fmt.Errorf("%w: at least one specialty is required", ErrValidation)
	}
	return d.Coordinate.Validate()
}
