package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

// AuthService implements registration and sign-in.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	throttle ports.SignInThrottle // nil disables throttling
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, throttle ports.SignInThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, log: log}
}

// SignUp registers a new account. Role names default to employee when absent;
// unknown role names are rejected before any write.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	roles := []domain.Role{domain.RoleEmployee}
	if len(in.RoleNames) > 0 {
		roles = roles[:0]
		for _, name := range in.RoleNames {
			r, err := domain.ParseRole(name)
			if err != nil {
				return nil, err
			}
			roles = append(roles, r)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:        in.Username,
		Email:           in.Email,
		PasswordHash:    string(hash),
		FullName:        in.FullName,
		Roles:           roles,
		InternshipStart: in.InternshipStart,
		InternshipEnd:   in.InternshipEnd,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// SignIn authenticates by username and password and issues a token. Failed
// attempts count toward the per-username throttle; a success resets it.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*ports.SignInResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, continuing")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, username); err != nil {
				s.log.Warn().Err(err).Str("username", username).Msg("failed to record sign-in failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset throttle")
		}
	}

	s.log.Info().Str("username", user.Username).Msg("user signed in")
	return &ports.SignInResult{Token: token, User: user}, nil
}
