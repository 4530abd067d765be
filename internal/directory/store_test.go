package directory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"employee-directory/internal/domain"
	"employee-directory/internal/logging"
	"employee-directory/internal/providers"
	"employee-directory/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = session.Identity{Token: "tok", Role: "manager", EmployeeTag: "E9"}

func listing(records ...domain.Employee) func(context.Context, string) ([]domain.Employee, error) {
	return func(context.Context, string) ([]domain.Employee, error) {
		return records, nil
	}
}

func newStore(m *providers.MockService, opts ...Option) *Store {
	return NewStore(testIdentity, m, logging.Nop(), opts...)
}

func TestLoadReplacesRecords(t *testing.T) {
	m := &providers.MockService{ListFunc: listing(bob, alice)}
	s := newStore(m)

	var mu sync.Mutex
	var loading []bool
	s.Subscribe(func(st State) {
		mu.Lock()
		loading = append(loading, st.Loading)
		mu.Unlock()
	})

	require.NoError(t, s.Load(context.Background()))

	st := s.State()
	assert.Equal(t, []domain.Employee{bob, alice}, st.Records)
	assert.False(t, st.Loading)
	assert.Equal(t, []bool{true, false}, loading)
	assert.Equal(t, []string{"tok"}, m.ListCalls())
}

func TestLoadIsSnapshotReplace(t *testing.T) {
	m := &providers.MockService{ListFunc: listing(alice, bob)}
	s := newStore(m)
	require.NoError(t, s.Load(context.Background()))

	m.ListFunc = listing(carol)
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, []domain.Employee{carol}, s.State().Records)
}

func TestLoadFailureKeepsRecords(t *testing.T) {
	m := &providers.MockService{ListFunc: listing(alice, bob)}
	s := newStore(m)
	require.NoError(t, s.Load(context.Background()))

	boom := errors.New("pos: list employees: decode failure")
	m.ListFunc = func(context.Context, string) ([]domain.Employee, error) {
		return nil, boom
	}

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	st := s.State()
	assert.Equal(t, []domain.Employee{alice, bob}, st.Records)
	assert.False(t, st.Loading)
}

func TestLoadTimesOut(t *testing.T) {
	m := &providers.MockService{ListFunc: func(ctx context.Context, _ string) ([]domain.Employee, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	s := newStore(m, WithTimeout(20*time.Millisecond))

	err := s.Load(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, s.State().Loading)
}

func TestLoadIsNotReentrant(t *testing.T) {
	release := make(chan struct{})
	m := &providers.MockService{ListFunc: func(context.Context, string) ([]domain.Employee, error) {
		<-release
		return []domain.Employee{alice}, nil
	}}
	s := newStore(m)

	started := make(chan struct{}, 1)
	s.Subscribe(func(st State) {
		if st.Loading {
			started <- struct{}{}
		}
	})

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()
	<-started

	assert.ErrorIs(t, s.Load(context.Background()), ErrBusy)
	close(release)
	require.NoError(t, <-done)
	assert.Len(t, m.ListCalls(), 1)
}

func TestSelectSeedsDraft(t *testing.T) {
	s := newStore(&providers.MockService{})

	require.NoError(t, s.Select(bob))

	st := s.State()
	require.NotNil(t, st.Selected)
	require.NotNil(t, st.Draft)
	assert.Equal(t, bob, *st.Selected)
	assert.Equal(t, domain.EditDraft{Username: "Bob", Email: "bob@corp.com", PhoneNumber: "555-0202"}, *st.Draft)
	assert.True(t, st.Editing())
}

func TestSelectThenDeselectRestoresNone(t *testing.T) {
	s := newStore(&providers.MockService{})

	require.NoError(t, s.Select(alice))
	require.NoError(t, s.UpdateDraftField(domain.FieldUsername, "Alicia"))
	require.NoError(t, s.UpdateDraftField(domain.FieldPassword, "secret"))
	s.Deselect()

	st := s.State()
	assert.Nil(t, st.Selected)
	assert.Nil(t, st.Draft)

	// idempotent
	s.Deselect()
	assert.False(t, s.State().Editing())
}

func TestUpdateDraftField(t *testing.T) {
	s := newStore(&providers.MockService{})

	assert.ErrorIs(t, s.UpdateDraftField(domain.FieldEmail, "x"), ErrNoSelection)

	require.NoError(t, s.Select(alice))
	require.NoError(t, s.UpdateDraftField(domain.FieldEmail, "not validated"))
	assert.Equal(t, "not validated", s.State().Draft.Email)

	assert.ErrorIs(t, s.UpdateDraftField("employee_tag", "E5"), domain.ErrUnknownField)
	assert.Equal(t, alice, *s.State().Selected)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := newStore(&providers.MockService{ListFunc: listing(alice)})
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Select(alice))

	st := s.State()
	st.Records[0].Username = "mutated"
	st.Draft.Username = "mutated"

	again := s.State()
	assert.Equal(t, "Alice", again.Records[0].Username)
	assert.Equal(t, "Alice", again.Draft.Username)
}

func TestSaveWithoutSelectionIsNoop(t *testing.T) {
	m := &providers.MockService{}
	s := newStore(m)

	notified := 0
	s.Subscribe(func(State) { notified++ })
	before := s.State()

	require.NoError(t, s.Save(context.Background()))

	assert.Equal(t, before, s.State())
	assert.Empty(t, m.UpdateCalls())
	assert.Zero(t, notified)
}

func TestSaveSuccessMergesAndCloses(t *testing.T) {
	m := &providers.MockService{ListFunc: listing(alice, bob)}
	s := newStore(m)
	require.NoError(t, s.Load(context.Background()))

	var mu sync.Mutex
	var saving []bool
	s.Subscribe(func(st State) {
		mu.Lock()
		saving = append(saving, st.Saving)
		mu.Unlock()
	})

	require.NoError(t, s.Select(bob))
	require.NoError(t, s.UpdateDraftField(domain.FieldEmail, "robert@corp.com"))
	require.NoError(t, s.UpdateDraftField(domain.FieldPassword, "hunter2"))
	require.NoError(t, s.Save(context.Background()))

	assert.Equal(t, []domain.UpdateRequest{{
		EmployeesTag: "E2",
		Username:     "Bob",
		Email:        "robert@corp.com",
		PhoneNumber:  "555-0202",
		Password:     "hunter2",
	}}, m.UpdateCalls())

	st := s.State()
	assert.Nil(t, st.Selected)
	assert.Nil(t, st.Draft)
	assert.False(t, st.Saving)
	assert.Equal(t, []domain.Employee{alice, {EmployeeTag: "E2", Username: "Bob", Email: "robert@corp.com", PhoneNumber: "555-0202"}}, st.Records)
	assert.Equal(t, []bool{false, false, false, true, false}, saving)
}

func TestSaveFailureClosesWithoutMerge(t *testing.T) {
	boom := errors.New("pos: update employee: transport failure")
	m := &providers.MockService{
		ListFunc:   listing(alice),
		UpdateFunc: func(context.Context, string, domain.UpdateRequest) error { return boom },
	}
	s := newStore(m)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Select(alice))
	require.NoError(t, s.UpdateDraftField(domain.FieldUsername, "Alicia"))

	err := s.Save(context.Background())
	assert.ErrorIs(t, err, boom)

	st := s.State()
	assert.False(t, st.Editing())
	assert.Nil(t, st.Draft)
	assert.False(t, st.Saving)
	assert.Equal(t, []domain.Employee{alice}, st.Records)
}

func TestSaveIsNotReentrant(t *testing.T) {
	release := make(chan struct{})
	m := &providers.MockService{UpdateFunc: func(context.Context, string, domain.UpdateRequest) error {
		<-release
		return nil
	}}
	s := newStore(m)
	require.NoError(t, s.Select(alice))

	started := make(chan struct{}, 1)
	s.Subscribe(func(st State) {
		if st.Saving {
			started <- struct{}{}
		}
	})

	done := make(chan error, 1)
	go func() { done <- s.Save(context.Background()) }()
	<-started

	assert.ErrorIs(t, s.Save(context.Background()), ErrBusy)
	assert.ErrorIs(t, s.Select(bob), ErrBusy)
	close(release)
	require.NoError(t, <-done)
	assert.Len(t, m.UpdateCalls(), 1)
}

func TestUnsubscribe(t *testing.T) {
	s := newStore(&providers.MockService{})

	calls := 0
	unsubscribe := s.Subscribe(func(State) { calls++ })
	s.Deselect()
	unsubscribe()
	s.Deselect()

	assert.Equal(t, 1, calls)
}

func TestVisible(t *testing.T) {
	s := newStore(&providers.MockService{ListFunc: listing(alice, bob)})
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, []domain.Employee{bob}, s.Visible("bob"))
	assert.Equal(t, []domain.Employee{alice, bob}, s.State().Records)
	assert.Equal(t, testIdentity, s.Identity())
}
