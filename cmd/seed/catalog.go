package main

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"fittrack.io/notifier/internal/domain"
)

// catalogFile is the seed file layout.
type catalogFile struct {
	Workouts []domain.Workout `yaml:"workouts"`
	Users    []seedUser       `yaml:"users"`
}

type seedUser struct {
	ID           string              `yaml:"id"`
	Name         string              `yaml:"name"`
	Email        string              `yaml:"email"`
	FitnessLevel domain.FitnessLevel `yaml:"fitness_level"`
	Timezone     string              `yaml:"timezone"`
	// Preferences defaults to all enabled when omitted.
	Preferences *domain.Preferences `yaml:"preferences"`
	Goals       []seedGoal          `yaml:"goals"`
}

type seedGoal struct {
	ID      string  `yaml:"id"`
	Type    string  `yaml:"type"`
	Target  float64 `yaml:"target"`
	Current float64 `yaml:"current"`
}

// parseCatalog decodes and validates a seed file. Workouts get increasing
// creation times in file order so recommendations follow the file.
func parseCatalog(r io.Reader, base time.Time) (catalogFile, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return catalogFile{}, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Workouts))
	for i := range f.Workouts {
		w := &f.Workouts[i]
		if w.ID == "" || w.Name == "" || w.Type == "" {
			return catalogFile{}, fmt.Errorf("workout #%d: id, name and type are required", i+1)
		}
		if _, dup := seen[w.ID]; dup {
			return catalogFile{}, fmt.Errorf("workout %s: duplicate id", w.ID)
		}
		seen[w.ID] = struct{}{}
		lvl, err := domain.ParseFitnessLevel(string(w.FitnessLevel))
		if err != nil {
			return catalogFile{}, fmt.Errorf("workout %s: %w", w.ID, err)
		}
		w.FitnessLevel = lvl
		if w.DurationMinutes <= 0 {
			return catalogFile{}, fmt.Errorf("workout %s: duration_minutes must be positive", w.ID)
		}
		w.CreatedAt = base.Add(time.Duration(i) * time.Second)
	}

	for i := range f.Users {
		u := &f.Users[i]
		if u.ID == "" || u.Email == "" {
			return catalogFile{}, fmt.Errorf("user #%d: id and email are required", i+1)
		}
		lvl, err := domain.ParseFitnessLevel(string(u.FitnessLevel))
		if err != nil {
			return catalogFile{}, fmt.Errorf("user %s: %w", u.ID, err)
		}
		u.FitnessLevel = lvl
		if u.Timezone != "" {
			if _, err := time.LoadLocation(u.Timezone); err != nil {
				return catalogFile{}, fmt.Errorf("user %s: timezone: %w", u.ID, err)
			}
		}
		for _, g := range u.Goals {
			if g.ID == "" || g.Target <= 0 {
				return catalogFile{}, fmt.Errorf("user %s: goals need an id and a positive target", u.ID)
			}
		}
	}
	return f, nil
}

func (u seedUser) toDomain() domain.User {
	prefs := domain.Preferences{WorkoutReminders: true, GoalMilestones: true, NutritionReminders: true}
	if u.Preferences != nil {
		prefs = *u.Preferences
	}
	return domain.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		FitnessLevel: u.FitnessLevel,
		Preferences:  prefs,
		Timezone:     u.Timezone,
	}
}

func (g seedGoal) toDomain(userID string) domain.Goal {
	return domain.Goal{
		ID:           g.ID,
		UserID:       userID,
		Type:         g.Type,
		TargetValue:  g.Target,
		CurrentValue: g.Current,
		Status:       domain.GoalStatusActive,
	}
}
