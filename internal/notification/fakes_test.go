package notification

import (
	"context"
	"errors"
	"slices"
	"sync"

	"fittrack.io/notifier/internal/domain"
)

type memStore struct {
	mu      sync.Mutex
	rows    []domain.Notification
	keys    map[string]bool
	failErr error
}

func newMemStore() *memStore {
	return &memStore{keys: map[string]bool{}}
}

func (m *memStore) InsertNotification(_ context.Context, n domain.Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return false, m.failErr
	}
	if n.DedupeKey != "" {
		if m.keys[n.DedupeKey] {
			return false, nil
		}
		m.keys[n.DedupeKey] = true
	}
	m.rows = append(m.rows, n)
	return true, nil
}

func (m *memStore) InsertNotifications(_ context.Context, ns []domain.Notification) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	m.rows = append(m.rows, ns...)
	return len(ns), nil
}

type memUsers []domain.User

func (u memUsers) ResolveAudience(_ context.Context, a domain.Audience) ([]string, error) {
	var ids []string
	for _, user := range u {
		switch a.Type {
		case domain.AudienceAll:
			ids = append(ids, user.ID)
		case domain.AudienceFitnessLevel:
			if user.FitnessLevel == a.FitnessLevel {
				ids = append(ids, user.ID)
			}
		case domain.AudienceUsers:
			if slices.Contains(a.UserIDs, user.ID) {
				ids = append(ids, user.ID)
			}
		default:
			return nil, errors.New("unexpected audience")
		}
	}
	return ids, nil
}
