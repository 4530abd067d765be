// Package directory holds the employee list and the edit session, and owns
// every change made to them.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"employee-directory/internal/domain"
	"employee-directory/internal/logging"
	"employee-directory/internal/providers"
	"employee-directory/internal/session"
)

var (
	// ErrBusy is returned when the same kind of request is already in flight.
	ErrBusy        = errors.New("directory: request already in progress")
	ErrNoSelection = errors.New("directory: no employee selected")
)

const DefaultTimeout = 30 * time.Second

type Option func(*Store)

// WithTimeout bounds every remote call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// Store is the single owner of the directory State. Readers get snapshots;
// subscribers are told after every change.
type Store struct {
	id      session.Identity
	remote  providers.EmployeeService
	log     logging.Logger
	timeout time.Duration

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

func NewStore(id session.Identity, remote providers.EmployeeService, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{
		id:      id,
		remote:  remote,
		log:     log,
		timeout: DefaultTimeout,
		subs:    make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Identity returns the identity the store acts for.
func (s *Store) Identity() session.Identity {
	return s.id
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Visible returns the loaded records matching term.
func (s *Store) Visible(term string) []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter(s.state.Records, term)
}

// Subscribe registers fn to receive a snapshot after every change. fn runs on
// the goroutine that made the change, outside the store lock.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// commit must be called with s.mu held; it releases the lock and notifies.
func (s *Store) commit() {
	snap := s.state.clone()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Load fetches the directory and replaces the records wholesale. On failure
// the previous records stay as they were; Loading is cleared either way.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Loading {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state.Loading = true
	s.commit()

	callCtx, cancel := s.callContext(ctx)
	records, err := s.remote.ListEmployees(callCtx, s.id.Token)
	cancel()

	s.mu.Lock()
	var added, changed, removed []domain.Employee
	if err == nil {
		added, changed, removed = Diff(s.state.Records, records)
		s.state.Records = append(make([]domain.Employee, 0, len(records)), records...)
	}
	s.state.Loading = false
	s.commit()

	if err != nil {
		s.log.Error(ctx, "error fetching employees", "error", err)
		return fmt.Errorf("directory: load: %w", err)
	}
	s.log.Info(ctx, "employees loaded",
		"count", len(records),
		"added", len(added),
		"changed", len(changed),
		"removed", len(removed),
	)
	return nil
}

// Select opens an edit session for e with a draft seeded from its fields.
func (s *Store) Select(e domain.Employee) error {
	s.mu.Lock()
	if s.state.Saving {
		s.mu.Unlock()
		return ErrBusy
	}
	d := domain.NewEditDraft(e)
	s.state.Selected = &e
	s.state.Draft = &d
	s.commit()
	return nil
}

// Deselect closes the edit session. Safe to call when none is open.
func (s *Store) Deselect() {
	s.mu.Lock()
	s.state.Selected = nil
	s.state.Draft = nil
	s.commit()
}

// UpdateDraftField sets one draft field by wire name. Values are not
// validated here.
func (s *Store) UpdateDraftField(name, value string) error {
	s.mu.Lock()
	if s.state.Draft == nil {
		s.mu.Unlock()
		return ErrNoSelection
	}
	d := *s.state.Draft
	if err := d.Set(name, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state.Draft = &d
	s.commit()
	return nil
}

// Save sends the draft for the selected employee. Without a selection it does
// nothing. The edit session is closed whether the update succeeds or not;
// only a confirmed update is merged into the records.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Selected == nil {
		s.mu.Unlock()
		return nil
	}
	if s.state.Saving {
		s.mu.Unlock()
		return ErrBusy
	}
	tag := s.state.Selected.EmployeeTag
	draft := *s.state.Draft
	s.state.Saving = true
	s.commit()

	callCtx, cancel := s.callContext(ctx)
	err := s.remote.UpdateEmployee(callCtx, s.id.Token, draft.Payload(tag))
	cancel()

	s.mu.Lock()
	if err == nil {
		for i := range s.state.Records {
			if s.state.Records[i].EmployeeTag == tag {
				s.state.Records[i] = draft.Apply(s.state.Records[i])
			}
		}
	}
	s.state.Selected = nil
	s.state.Draft = nil
	s.state.Saving = false
	s.commit()

	if err != nil {
		s.log.Error(ctx, "error saving employee changes", "employee_tag", tag, "error", err)
		return fmt.Errorf("directory: save %s: %w", tag, err)
	}
	s.log.Info(ctx, "employee updated", "employee_tag", tag)
	return nil
}
