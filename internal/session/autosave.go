package session

import (
	"context"
	"sync"
	"time"

	"mduarte/cca-audit/internal/logging"
)

// Autosaver periodically persists an active session in the background.
// Save requests coalesce: while one save is in flight at most one more is
// queued, and a newer request supersedes the queued one. A failed save only
// logs; the next tick retries with fresher state.
type Autosaver struct {
	session  *Session
	interval time.Duration
	log      logging.Logger

	kick chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewAutosaver creates an autosaver for the session. It does not start
// until Start is called.
func NewAutosaver(s *Session, interval time.Duration, logger logging.Logger) *Autosaver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Autosaver{
		session:  s,
		interval: interval,
		log:      logger,
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Start launches the background writer.
func (a *Autosaver) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.run(ctx)
}

// Kick requests a save outside the regular cadence, after a burst of edits
// for example. If a request is already queued the new one folds into it.
func (a *Autosaver) Kick() {
	select {
	case a.kick <- struct{}{}:
	default:
	}
}

// Stop shuts the writer down after one final save attempt.
func (a *Autosaver) Stop() {
	a.once.Do(func() { close(a.stop) })
	a.wg.Wait()
}

func (a *Autosaver) run(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stop:
			a.save(context.WithoutCancel(ctx))
			return
		case <-ticker.C:
			a.save(ctx)
		case <-a.kick:
			a.save(ctx)
		}
	}
}

func (a *Autosaver) save(ctx context.Context) {
	if a.session.Status() != StatusActive {
		return
	}
	start := time.Now()
	if err := a.session.Save(ctx); err != nil {
		a.log.WithError(err).Warn("Autosave failed, will retry on the next tick",
			logging.Field{Key: logging.FieldIdentity, Value: a.session.Identity()})
		return
	}
	a.log.Debug("Autosave completed",
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
}
