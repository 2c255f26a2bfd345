package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- user repository stub ---

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User // by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(u)
	clone.ID = strconv.Itoa(r.nextID)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if !filter.CreatedFrom.IsZero() && u.CreatedAt.Before(filter.CreatedFrom) {
			continue
		}
		if !filter.CreatedTo.IsZero() && u.CreatedAt.After(filter.CreatedTo) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- attendance repository stub ---

type stubAttendanceRepo struct {
	mu      sync.Mutex
	records []*domain.AttendanceRecord
	nextID  int
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{}
}

func cloneRecord(rec *domain.AttendanceRecord) *domain.AttendanceRecord {
	clone := *rec
	if rec.CheckOutTime != nil {
		t := *rec.CheckOutTime
		clone.CheckOutTime = &t
	}
	if rec.WorkingHours != nil {
		h := *rec.WorkingHours
		clone.WorkingHours = &h
	}
	return &clone
}

func (r *stubAttendanceRepo) Create(_ context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := cloneRecord(rec)
	clone.ID = strconv.Itoa(r.nextID)
	r.records = append(r.records, clone)
	return cloneRecord(clone), nil
}

func (r *stubAttendanceRepo) FindLatestOpen(_ context.Context, userID string) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.UserID != userID || !rec.Open() {
			continue
		}
		if latest == nil || rec.CheckInTime.After(latest.CheckInTime) ||
			(rec.CheckInTime.Equal(latest.CheckInTime) && rec.ID > latest.ID) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, domain.ErrNoOpenSession
	}
	return cloneRecord(latest), nil
}

func (r *stubAttendanceRepo) CloseSession(_ context.Context, recordID string, checkOut time.Time, hours float64) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID != recordID {
			continue
		}
		if !rec.Open() {
			return nil, domain.ErrNoOpenSession
		}
		rec.CheckOutTime = &checkOut
		rec.WorkingHours = &hours
		return cloneRecord(rec), nil
	}
	return nil, domain.ErrNoOpenSession
}

func (r *stubAttendanceRepo) ListByUser(_ context.Context, userID string) ([]*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckInTime.Equal(out[j].CheckInTime) {
			return out[i].CheckInTime.After(out[j].CheckInTime)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *stubAttendanceRepo) List(_ context.Context, filter ports.ListAttendanceFilter) ([]*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AttendanceRecord
	for _, rec := range r.records {
		if !filter.CreatedFrom.IsZero() && rec.CreatedAt.Before(filter.CreatedFrom) {
			continue
		}
		if !filter.CreatedTo.IsZero() && rec.CreatedAt.After(filter.CreatedTo) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

// --- sign-in throttle stub ---

type stubThrottle struct {
	failures map[string]int
	max      int
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) Blocked(_ context.Context, username string) (bool, error) {
	return t.failures[username] >= t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}
