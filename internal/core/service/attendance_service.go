package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// AttendanceService is the per-user check-in/check-out state machine.
//
// With allowConcurrent (the legacy behaviour) a user may hold several open
// sessions at once; check-out always targets the most recently opened one, so
// interleaved sessions close LIFO. Strict mode rejects a second check-in.
type AttendanceService struct {
	repo            ports.AttendanceRepository
	allowConcurrent bool
	log             zerolog.Logger

	now func() time.Time
}

func NewAttendanceService(repo ports.AttendanceRepository, allowConcurrent bool, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		repo:            repo,
		allowConcurrent: allowConcurrent,
		log:             log,
		now:             time.Now,
	}
}

// CheckIn opens a new session with the current wall-clock time.
func (s *AttendanceService) CheckIn(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	if !s.allowConcurrent {
		_, err := s.repo.FindLatestOpen(ctx, userID)
		switch {
		case err == nil:
			return nil, domain.ErrSessionAlreadyOpen
		case !errors.Is(err, domain.ErrNoOpenSession):
			return nil, err
		}
	}

	now := s.now().UTC()
	rec, err := s.repo.Create(ctx, &domain.AttendanceRecord{
		UserID:      userID,
		CheckInTime: now,
		CreatedAt:   now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to create attendance record")
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Time("check_in", rec.CheckInTime).Msg("checked in")
	return rec, nil
}

// CheckOut closes the most recently opened still-open session. Working hours
// are computed here, once, as unrounded elapsed hours; the close is a
// conditional write so a concurrent check-out cannot close the same record
// twice. The loser retries against the next open session, if any.
func (s *AttendanceService) CheckOut(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	for {
		open, err := s.repo.FindLatestOpen(ctx, userID)
		if err != nil {
			return nil, err
		}

		now := s.now().UTC()
		closed, err := s.repo.CloseSession(ctx, open.ID, now, open.Hours(now))
		if errors.Is(err, domain.ErrNoOpenSession) {
			// Lost the race on this record; look for an older open session.
			continue
		}
		if err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Str("record_id", open.ID).Msg("failed to close session")
			return nil, err
		}

		s.log.Info().
			Str("user_id", userID).
			Str("record_id", closed.ID).
			Float64("working_hours", *closed.WorkingHours).
			Msg("checked out")
		return closed, nil
	}
}

// ListForUser returns the user's records, newest check-in first. Pure read.
func (s *AttendanceService) ListForUser(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error) {
	return s.repo.ListByUser(ctx, userID)
}
