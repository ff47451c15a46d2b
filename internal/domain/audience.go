package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidAudience is returned when an announcement audience cannot be resolved.
var ErrInvalidAudience = errors.New("invalid audience")

// AudienceType selects how an announcement audience is resolved.
type AudienceType string

const (
	AudienceAll          AudienceType = "all"
	AudienceFitnessLevel AudienceType = "fitness_level"
	AudienceUsers        AudienceType = "users"
)

// Audience is the target filter of a bulk announcement.
type Audience struct {
	Type         AudienceType `json:"type"`
	FitnessLevel FitnessLevel `json:"fitness_level,omitempty"`
	UserIDs      []string     `json:"user_ids,omitempty"`
}

// Validate checks that the audience carries the fields its type needs.
// An explicit empty id list is valid and resolves to nobody.
func (a Audience) Validate() error {
	switch a.Type {
	case AudienceAll, AudienceUsers:
		return nil
	case AudienceFitnessLevel:
		if !a.FitnessLevel.Valid() {
			return fmt.Errorf("%w: fitness level %q", ErrInvalidAudience, a.FitnessLevel)
		}
		return nil
	default:
		return fmt.Errorf("%w: type %q", ErrInvalidAudience, a.Type)
	}
}
