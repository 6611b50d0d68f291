package slowlog

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Start(name string)
	Stop(name string) time.Duration
}

// slowLogger writes every measured breakpoint at debug level and the ones
// exceeding threshold at warn level.
type slowLogger struct {
	log           *zerolog.Logger
	threshold     time.Duration
	ongoingTimers map[string]time.Time
	sync.Mutex
}

func (s *slowLogger) Start(name string) {
	s.Lock()
	s.ongoingTimers[name] = time.Now()
	s.Unlock()
}

func (s *slowLogger) Stop(name string) time.Duration {
	s.Lock()
	defer s.Unlock()

	start, ok := s.ongoingTimers[name]
	if !ok {
		return 0
	}

	duration := time.Since(start)
	delete(s.ongoingTimers, name)

	event := s.log.Debug()
	if s.threshold > 0 && duration > s.threshold {
		event = s.log.Warn()
	}

	event.
		Float64("duration", duration.Seconds()).
		Str("breakpoint_name", name).
		Msg("")

	return duration
}

func CreateLogger(log *zerolog.Logger, threshold time.Duration) *slowLogger {
	logger := log.With().Str("label", "slowlog").Logger()
	return &slowLogger{
		log:           &logger,
		threshold:     threshold,
		ongoingTimers: make(map[string]time.Time),
	}
}
