package saves

import (
	"time"

	"github.com/KirkDiggler/dungeon-saves/internal/uuid"
)

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks -source=time_provider.go

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.UUIDGenerator == nil {
		out.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if out.TimeProvider == nil {
		out.TimeProvider = &RealTimeProvider{}
	}
	return out
}
