package evaluator

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"fittrack.io/notifier/internal/domain"
	"fittrack.io/notifier/internal/pkg/logger"
)

// zoneCache resolves user timezones once per zone name. An unknown name
// falls back to the default zone and is logged the first time it is seen.
type zoneCache struct {
	def *time.Location

	mu    sync.Mutex
	zones map[string]*time.Location // nil value: name did not load
}

func newZoneCache(def *time.Location) *zoneCache {
	if def == nil {
		def = time.UTC
	}
	return &zoneCache{def: def, zones: make(map[string]*time.Location)}
}

// location returns the zone that defines "today" for user.
func (c *zoneCache) location(user domain.User) *time.Location {
	if user.Timezone == "" {
		return c.def
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if loc, seen := c.zones[user.Timezone]; seen {
		if loc == nil {
			return c.def
		}
		return loc
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		c.zones[user.Timezone] = nil
		logger.Warn("unknown user timezone, using default",
			zap.String("user_id", user.ID),
			zap.String("timezone", user.Timezone),
			zap.String("default", c.def.String()),
			zap.Error(err),
		)
		return c.def
	}
	c.zones[user.Timezone] = loc
	return loc
}
