package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/de-tools/csr-atlas/pkg/metrics"
	"github.com/de-tools/csr-atlas/pkg/models/domain"
	"github.com/de-tools/csr-atlas/pkg/services/async"
	"github.com/de-tools/csr-atlas/pkg/services/catalog"
	"github.com/de-tools/csr-atlas/pkg/services/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrNothingSaved    = errors.New("no saved progress for session")
	ErrEmptyFramework  = errors.New("empty framework name")
)

// Reports is what the wizard needs from the report operations.
type Reports interface {
	AddReport(ctx context.Context, report domain.Report) (*async.Future[domain.Report], error)
	SaveProgress(ctx context.Context, sessionID string, draft domain.Draft) (*async.Future[domain.Draft], error)
	SavedDraft(sessionID string) (state.SavedDraft, bool)
	LoadDraft(ctx context.Context, sessionID string) (state.SavedDraft, error)
	DiscardDraft(ctx context.Context, sessionID string) error
	CancelOperation(ctx context.Context, id string) error
}

// Session is a snapshot of one wizard. Mutations go through the Manager.
type Session struct {
	ID         string
	Step       Step
	Draft      domain.Draft
	CreatedAt  time.Time
	SavedAt    *time.Time
	SubmitOpID string
	SaveOpID   string

	saves   []*async.Future[domain.Draft]
	closing bool
}

func (s Session) clone() Session {
	out := s
	out.Draft = s.Draft.Clone()
	out.saves = nil
	return out
}

// pendingSaves drops settled saves and returns the ones still running.
func (s *Session) pendingSaves() []*async.Future[domain.Draft] {
	s.saves = slices.DeleteFunc(s.saves, func(f *async.Future[domain.Draft]) bool {
		select {
		case <-f.Done():
			return true
		default:
			return false
		}
	})
	return slices.Clone(s.saves)
}

type Manager struct {
	reports Reports
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(reports Reports, opts ...Option) *Manager {
	m := &Manager{
		reports:  reports,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create opens a session with an empty draft on the first step.
func (m *Manager) Create(ctx context.Context) Session {
	s := &Session{
		ID:        uuid.NewString(),
		Step:      FirstStep,
		Draft:     domain.NewDraft(),
		CreatedAt: m.now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	metrics.WizardSessions.Set(float64(count))
	zerolog.Ctx(ctx).Debug().Str("session_id", s.ID).Msg("wizard session created")
	return s.clone()
}

func (m *Manager) Get(id string) (Session, error) {
	var out Session
	err := m.with(id, func(s *Session) error {
		out = m.snapshot(s)
		return nil
	})
	return out, err
}

func (m *Manager) Next(id string) (Session, error) {
	return m.update(id, func(s *Session) error {
		s.Step = s.Step.Next()
		return nil
	})
}

func (m *Manager) Previous(id string) (Session, error) {
	return m.update(id, func(s *Session) error {
		s.Step = s.Step.Previous()
		return nil
	})
}

func (m *Manager) SetField(id string, field Field, value string) (Session, error) {
	patch, err := FieldPatch(field, value)
	if err != nil {
		return Session{}, err
	}
	return m.Apply(id, patch)
}

func (m *Manager) Apply(id string, patch Patch) (Session, error) {
	return m.update(id, func(s *Session) error {
		d, err := patch.Apply(s.Draft)
		if err != nil {
			return err
		}
		s.Draft = d
		return nil
	})
}

func (m *Manager) ToggleFramework(id, framework string) (Session, error) {
	if framework == "" {
		return Session{}, ErrEmptyFramework
	}
	return m.update(id, func(s *Session) error {
		s.Draft.Frameworks = ToggleFramework(s.Draft.Frameworks, framework)
		return nil
	})
}

func (m *Manager) SetKPI(id string, w KPIWrite) (Session, error) {
	return m.update(id, func(s *Session) error {
		d, err := w.Apply(s.Draft)
		if err != nil {
			return err
		}
		s.Draft = d
		return nil
	})
}

// Submit turns the draft into a submitted report dated today and starts the
// create operation. The session stays open.
func (m *Manager) Submit(ctx context.Context, id string) (*async.Future[domain.Report], error) {
	var draft domain.Draft
	if err := m.with(id, func(s *Session) error {
		draft = s.Draft.Clone()
		return nil
	}); err != nil {
		return nil, err
	}

	report := draft.ToReport(domain.ReportStatusSubmitted, m.now().Format(time.DateOnly))
	future, err := m.reports.AddReport(ctx, report)
	if err != nil {
		return nil, err
	}

	_ = m.with(id, func(s *Session) error {
		s.SubmitOpID = future.ID()
		return nil
	})
	zerolog.Ctx(ctx).Info().
		Str("session_id", id).
		Str("operation_id", future.ID()).
		Msg("report submitted")
	return future, nil
}

// SaveProgress stores a snapshot of the current draft for later Restore. The
// operation starts under the session lock so Discard always sees it.
func (m *Manager) SaveProgress(ctx context.Context, id string) (*async.Future[domain.Draft], error) {
	var future *async.Future[domain.Draft]
	err := m.with(id, func(s *Session) error {
		f, err := m.reports.SaveProgress(ctx, id, s.Draft.Clone())
		if err != nil {
			return err
		}
		s.pendingSaves()
		s.saves = append(s.saves, f)
		s.SaveOpID = f.ID()
		future = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return future, nil
}

// Restore replaces the session's draft with its last saved snapshot, reading
// it back from the backend when it is not held in state.
func (m *Manager) Restore(ctx context.Context, id string) (Session, error) {
	if err := m.with(id, func(*Session) error { return nil }); err != nil {
		return Session{}, err
	}

	saved, err := m.reports.LoadDraft(ctx, id)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return Session{}, fmt.Errorf("%w: %s", ErrNothingSaved, id)
	}
	if err != nil {
		return Session{}, err
	}

	return m.update(id, func(s *Session) error {
		s.Draft = saved.Draft.Clone()
		return nil
	})
}

// Discard closes the session and drops its saved progress. Saves still in
// flight are cancelled first so none of them lands after the delete. The
// session stays open if the backend refuses the delete.
func (m *Manager) Discard(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok || s.closing {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.closing = true
	pending := s.pendingSaves()
	m.mu.Unlock()

	if err := m.discard(ctx, id, pending); err != nil {
		m.mu.Lock()
		s.closing = false
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	delete(m.sessions, id)
	count := len(m.sessions)
	m.mu.Unlock()

	metrics.WizardSessions.Set(float64(count))
	zerolog.Ctx(ctx).Debug().Str("session_id", id).Int("cancelled_saves", len(pending)).Msg("wizard session discarded")
	return nil
}

func (m *Manager) discard(ctx context.Context, id string, pending []*async.Future[domain.Draft]) error {
	for _, f := range pending {
		err := m.reports.CancelOperation(ctx, f.ID())
		if err != nil && !errors.Is(err, async.ErrOperationNotRunning) {
			return fmt.Errorf("cancel save %s: %w", f.ID(), err)
		}
	}
	return m.reports.DiscardDraft(ctx, id)
}

// Review is the read-only rendering of the last step.
type Review struct {
	Title      string
	Type       domain.ReportType
	Frameworks []string
	Analysis   string
	KPIs       domain.KPITree
}

func (m *Manager) Review(id string) (Review, error) {
	var r Review
	err := m.with(id, func(s *Session) error {
		d := s.Draft.Clone()
		r = Review{
			Title:      d.Title,
			Type:       d.Type,
			Frameworks: catalog.OrderFrameworks(d.Frameworks),
			Analysis:   d.Analysis,
			KPIs:       d.KPIs,
		}
		return nil
	})
	return r, err
}

func (m *Manager) update(id string, fn func(s *Session) error) (Session, error) {
	var out Session
	err := m.with(id, func(s *Session) error {
		if err := fn(s); err != nil {
			return err
		}
		out = m.snapshot(s)
		return nil
	})
	return out, err
}

func (m *Manager) with(id string, fn func(s *Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.closing {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return fn(s)
}

func (m *Manager) snapshot(s *Session) Session {
	out := s.clone()
	if saved, ok := m.reports.SavedDraft(s.ID); ok {
		at := saved.SavedAt
		out.SavedAt = &at
	}
	return out
}
