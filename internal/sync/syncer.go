package sync

import (
	"context"
	gosync "sync"
	"time"
)

// Config holds remote sync settings, supplied by the user.
type Config struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	GistID  string `yaml:"gist_id"`
}

// Status is what the UI shows about sync. Failures never surface beyond
// this; local persistence is the source of truth.
type Status struct {
	Enabled    bool
	Syncing    bool
	LastSynced time.Time
	Err        string
}

/// Syncer debounces outgoing snapshot writes: each local save restarts a
// timer, and only after the configured quiet period does one remote write
// carry the latest blob. Bursts of mutations coalesce into a single
// upload.
type Syncer struct {
	client *Client
	config Config

	mu       gosync.Mutex
	timer    *time.Timer
	pending  []byte
	status   Status
	debounce time.Duration

	// onGistCreated persists a freshly created gist id back into config.
	onGistCreated func(gistID string)
	// onStatus observes status changes (UI refresh).
	onStatus func(Status)
}

const defaultDebounce = 3 * time.Second

// NewSyncer creates a Syncer for the given config. A nil-safe no-op Syncer
// is returned even when sync is disabled; Schedule simply does nothing.
func NewSyncer(cfg Config) *Syncer {
	return &Syncer{
		client:   NewClient(cfg.Token),
		config:   cfg,
		status:   Status{Enabled: cfg.Enabled},
		debounce: defaultDebounce,
	}
}

// SetDebounce overrides the quiet period (used by tests).
func (s *Syncer) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// SetBaseURL overrides the API endpoint (used by tests).
func (s *Syncer) SetBaseURL(url string) {
	s.client.SetBaseURL(url)
}

// SetOnGistCreated registers a callback receiving the gist id after the
// first successful create, so it can be stored in configuration.
func (s *Syncer) SetOnGistCreated(fn func(gistID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onGistCreated = fn
}

// SetOnStatus registers a status observer.
func (s *Syncer) SetOnStatus(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStatus = fn
}

// Status returns the current sync status.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Schedule queues the serialized snapshot for upload after the debounce
// period, replacing any previously queued blob and restarting the timer.
func (s *Syncer) Schedule(data []byte) {
	if !s.config.Enabled || s.config.Token == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = data
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flush)
}

// Flush uploads any pending blob immediately (used by "sync now" and on
// clean shutdown).
func (s *Syncer) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.flush()
}

// Stop cancels any pending upload without performing it.
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

// Pull fetches the remote blob, when one is configured.
func (s *Syncer) Pull(ctx context.Context) ([]byte, error) {
	if s.config.GistID == "" {
		return nil, ErrNotFound
	}
	return s.client.Fetch(ctx, s.config.GistID)
}

func (s *Syncer) flush() {
	s.mu.Lock()
	data := s.pending
	s.pending = nil
	gistID := s.config.GistID
	s.mu.Unlock()

	if data == nil {
		return
	}
	s.setStatus(func(st *Status) { st.Syncing = true })

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var err error
	if gistID == "" {
		var created string
		created, err = s.client.Create(ctx, data)
		if err == nil {
			s.mu.Lock()
			s.config.GistID = created
			cb := s.onGistCreated
			s.mu.Unlock()
			if cb != nil {
				cb(created)
			}
		}
	} else {
		err = s.client.Update(ctx, gistID, data)
	}

	s.setStatus(func(st *Status) {
		st.Syncing = false
		if err != nil {
			// Swallowed: sync failure only affects the status display.
			st.Err = err.Error()
		} else {
			st.Err = ""
			st.LastSynced = time.Now()
		}
	})
}

// setStatus mutates the status under the lock, then notifies the observer
// outside it so the observer may safely call back into the Syncer.
func (s *Syncer) setStatus(mutate func(*Status)) {
	s.mu.Lock()
	mutate(&s.status)
	st := s.status
	fn := s.onStatus
	s.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
