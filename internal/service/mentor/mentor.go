// Package mentor implements the mentor directory: filter parsing, query
// construction, storage backends, relevance ranking and the profile lifecycle.
package mentor

import (
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("mentor profile not found")
	ErrAlreadyExists = errors.New("mentor profile already exists")
	ErrForbidden     = errors.New("mentor profile belongs to another user")
)

// Availability of a mentor for new mentees.
type Availability string

// Availability values.
const (
	Available Availability = "available"
	Limited   Availability = "limited"
	Busy      Availability = "busy"
)

// Valid reports whether a is one of the known values.
func (a Availability) Valid() bool {
	switch a {
	case Available, Limited, Busy:
		return true
	}
	return false
}

// Suggested departments offered by the profile form. Free text is accepted.
var Departments = []string{
	"Engineering",
	"Product",
	"Design",
	"Data Science",
	"Marketing",
	"Sales",
	"Operations",
	"Human Resources",
	"Finance",
}

// Limits on profile content.
const (
	DefaultRating    = 5.0
	MaxRating        = 5.0
	MaxExperience    = 50
	MaxBioLength     = 2000
	MaxSkills        = 30
	MaxInterests     = 30
	MaxListedMentors = 100
)

// History is aggregate mentorship data. It is carried verbatim across edits.
type History struct {
	TotalMentees      int
	CompletedSessions int
	AverageRating     float64
	Specializations   []string
}

// Mentor is a stored mentor profile.
type Mentor struct {
	ID                string
	Email             string
	Name              string
	Title             string
	Department        string
	Bio               string
	YearsOfExperience int
	Skills            []string
	Interests         []string
	Availability      Availability
	Rating            float64
	MenteeCount       int
	History           History
	ProfileImage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	// LastActive is zero when never recorded.
	LastActive time.Time
}

// EffectiveLastActive returns LastActive, falling back to UpdatedAt and then
// CreatedAt. Zero only when all three are zero.
func (m *Mentor) EffectiveLastActive() time.Time {
	switch {
	case !m.LastActive.IsZero():
		return m.LastActive
	case !m.UpdatedAt.IsZero():
		return m.UpdatedAt
	default:
		return m.CreatedAt
	}
}

func (m *Mentor) clone() *Mentor {
	c := *m
	c.Skills = append([]string(nil), m.Skills...)
	c.Interests = append([]string(nil), m.Interests...)
	c.History.Specializations = append([]string(nil), m.History.Specializations...)
	return &c
}
