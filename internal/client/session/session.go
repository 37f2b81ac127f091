// Package session holds the process-wide authentication state.
//
// New returns a read-only Store and the single Writer allowed to mutate it.
// Consumers read immutable Snapshot values or subscribe to changes; only the
// auth service keeps the Writer.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/common"
)

type Status int

const (
	Uninitialized Status = iota
	Validating
	Authenticated
	Anonymous
)

func (s Status) String() string {
	switch s {
	case Validating:
		return "validating"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Snapshot is an immutable view of the session. User points to a private
// copy and must not be modified.
type Snapshot struct {
	Status  Status
	User    *models.User
	Token   string
	Loading bool
	// TokenExpiry is the token's exp claim, read without verification.
	// Zero when the token carries none.
	TokenExpiry time.Time
}

func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// IsAdmin reports whether a user is present with the admin role.
func (s Snapshot) IsAdmin() bool {
	return s.User != nil && s.User.Role == common.RoleAdmin
}

type Store struct {
	mu   sync.RWMutex
	snap Snapshot

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan Snapshot
}

// Writer mutates a Store. There is exactly one per Store.
type Writer struct {
	s *Store
}

// New creates an Uninitialized session.
func New() (*Store, *Writer) {
	s := &Store{subs: make(map[int]chan Snapshot)}
	return s, &Writer{s: s}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Token returns the current bearer token; it satisfies the API client's
// credential source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Token
}

// Subscribe returns a channel that receives the latest snapshot after each
// change. Undelivered snapshots are replaced by newer ones. cancel closes
// the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) set(next Snapshot) {
	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.publish(next)
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// BeginValidation installs a persisted token while the user is resolved.
func (w *Writer) BeginValidation(token string) {
	w.s.set(Snapshot{
		Status:      Validating,
		Token:       token,
		Loading:     true,
		TokenExpiry: tokenExpiry(token),
	})
}

// Authenticate installs a user together with its token.
func (w *Writer) Authenticate(u models.User, token string) {
	w.s.set(Snapshot{
		Status:      Authenticated,
		User:        &u,
		Token:       token,
		TokenExpiry: tokenExpiry(token),
	})
}

// Clear drops user and token and ends any validation.
func (w *Writer) Clear() {
	w.s.set(Snapshot{Status: Anonymous})
}

// ReplaceUser swaps the whole user record, keeping the token. It is a no-op
// unless the session is Authenticated.
func (w *Writer) ReplaceUser(u models.User) bool {
	cur := w.s.Snapshot()
	if cur.Status != Authenticated {
		return false
	}
	cur.User = &u
	w.s.set(cur)
	return true
}

func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
