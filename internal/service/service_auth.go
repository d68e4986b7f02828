package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the opaque
// session token lifecycle, using a UserRepository and a SessionRepository
// for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionRepository stores live sessions. A session row is the single
	// source of truth for whether a token is still valid.
	sessionRepository store.SessionRepository

	// tokens generates opaque session tokens.
	tokens *utils.TokenGenerator

	// sessionTTL is the absolute lifetime of a newly created session.
	sessionTTL time.Duration

	// bcryptCost is the bcrypt cost factor applied at registration time.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		tokens:            utils.NewTokenGenerator(),
		sessionTTL:        cfg.SessionTTL,
		bcryptCost:        cfg.BCryptCost,
		logger:            logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both Login and Password are non-empty, replaces the
// plaintext password with its bcrypt hash, and delegates persistence to the
// UserRepository. The plaintext never reaches the store.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken — see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := utils.HashPassword(user.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = ""
	user.PasswordHash = hash

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// SignIn authenticates an existing user and establishes a session.
//
// It validates that both Login and Password are non-empty, looks up the
// account by login, and verifies the password against the stored bcrypt hash.
// On success a new session row is created with an opaque token and an
// absolute expiry of now+sessionTTL.
//
// Unknown login and wrong password both return ErrInvalidCredentials; the two
// cases are indistinguishable to the caller so that sign-in responses cannot
// be used to probe which logins exist.
//
// Returns the created session or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - ErrInvalidCredentials if the login is unknown or the password is wrong.
//   - A wrapped storage error if a repository call fails for any other reason.
func (a *authService) SignIn(ctx context.Context, user models.User) (models.Session, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.Session{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Str("login", user.Login).Msg("sign-in attempt for unknown login")
			return models.Session{}, ErrInvalidCredentials
		}
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.Session{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !utils.CheckPassword(user.Password, foundUser.PasswordHash) {
		log.Info().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("sign-in attempt with wrong password")
		return models.Session{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session, err := a.sessionRepository.CreateSession(ctx, models.Session{
		Token:     a.tokens.Generate(),
		UserID:    foundUser.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	})
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("session creation ended with error")
		return models.Session{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	return session, nil
}

// Authorize resolves a session token to the owning user id.
//
// A missing token, a token with no session row, and an expired session all
// return ErrUnauthenticated — to the caller they are the same "please sign
// in" condition. An expired session encountered here is deleted on the spot
// so the row does not linger until the sweeper runs.
//
// Storage failures are returned as wrapped errors, never as
// ErrUnauthenticated: an unreachable session store means the request outcome
// is unknown, not that the user is signed out.
func (a *authService) Authorize(ctx context.Context, token string) (int64, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return 0, ErrUnauthenticated
	}

	session, err := a.sessionRepository.FindSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, ErrUnauthenticated
		}
		log.Err(err).Msg("session lookup failed")
		return 0, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		if delErr := a.sessionRepository.DeleteSessionByToken(ctx, token); delErr != nil {
			log.Err(delErr).Int64("id", session.UserID).Msg("expired session cleanup failed")
		}
		return 0, ErrUnauthenticated
	}

	return session.UserID, nil
}

// SignOut revokes the session behind the token.
//
// Sign-out is idempotent: an empty token or one that no longer resolves is a
// no-op, never an error. Only an actual storage failure is returned, wrapped.
func (a *authService) SignOut(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return nil
	}

	if err := a.sessionRepository.DeleteSessionByToken(ctx, token); err != nil {
		log.Err(err).Msg("session deletion ended with error")
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}
