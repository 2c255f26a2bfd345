package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// UserService covers profile access and administrative account management.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger

	now func() time.Time
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log, now: time.Now}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx, ports.ListUsersFilter{})
}

// CreateUser is the admin path: all fields validated up front, single role.
func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.RoleName == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role, err := domain.ParseRole(in.RoleName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	fullName := in.FullName
	if fullName == "" {
		fullName = in.Username
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Roles:        []domain.Role{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(role)).Msg("user created")
	return created, nil
}

// UpdateUser applies a partial update to the target user. The caller has
// already decided the self-or-admin question; actingIsAdmin only gates the
// role change, which silently stays as-is for non-admins.
func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput, actingIsAdmin bool) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != "" {
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != "" {
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.InternshipStart != nil {
		user.InternshipStart = in.InternshipStart
	}
	if in.InternshipEnd != nil {
		user.InternshipEnd = in.InternshipEnd
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.RoleName != nil && actingIsAdmin {
		role, err := domain.ParseRole(*in.RoleName)
		if err != nil {
			return nil, err
		}
		user.Roles = []domain.Role{role}
	}
	user.UpdatedAt = s.now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) ResetPassword(ctx context.Context, id, password string) error {
	if password == "" {
		return domain.ErrInvalidCredentials
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = s.now().UTC()

	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("password reset")
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Roles returns the fixed role enumeration.
func (s *UserService) Roles() []domain.Role {
	return []domain.Role{domain.RoleAdmin, domain.RoleEmployee, domain.RoleIntern}
}

// InternshipPeriod returns the user's window with the remaining days counted
// from today, rounded up to whole days.
func (s *UserService) InternshipPeriod(ctx context.Context, userID string) (*domain.InternshipPeriod, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.InternshipStart == nil || user.InternshipEnd == nil {
		return nil, domain.ErrNoInternshipPeriod
	}

	return &domain.InternshipPeriod{
		StartDate:     *user.InternshipStart,
		EndDate:       *user.InternshipEnd,
		RemainingDays: domain.RemainingDays(*user.InternshipEnd, s.now()),
	}, nil
}

func (s *UserService) SetInternshipPeriod(ctx context.Context, userID string, start, end time.Time) (*domain.InternshipPeriod, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.InternshipStart = &start
	user.InternshipEnd = &end
	user.UpdatedAt = s.now().UTC()
	if _, err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Time("start", start).Time("end", end).Msg("internship period set")
	return &domain.InternshipPeriod{
		StartDate:     start,
		EndDate:       end,
		RemainingDays: domain.RemainingDays(end, s.now()),
	}, nil
}
