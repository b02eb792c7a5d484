package service

import (
	"context"
	"errors"

	authdomain "github.com/AlibekovAA/tasktracker/internal/auth/domain"
	authrepo "github.com/AlibekovAA/tasktracker/internal/auth/repository"
	"github.com/AlibekovAA/tasktracker/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/tasktracker/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/common/session"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
	userrepo "github.com/AlibekovAA/tasktracker/internal/user/repository"
)

type AuthService struct {
	users       userrepo.Repository
	revoked     authrepo.RevokedSessionRepository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	sessions    *session.Manager
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	users userrepo.Repository,
	revoked authrepo.RevokedSessionRepository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	sessions *session.Manager,
	clk clock.Clock,
	log *logger.Logger,
) *AuthService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &AuthService{
		users:       users,
		revoked:     revoked,
		hasher:      hasher,
		idGenerator: idGenerator,
		sessions:    sessions,
		clock:       clk,
		log:         log,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.User, error) {
	input = input.normalize()

	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateRegister(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		recordRegistration(resultRejected)
		return userdomain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		recordRegistration(resultError)
		return userdomain.User{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		recordRegistration(resultError)
		return userdomain.User{}, err
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, commonerrors.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			recordRegistration(resultRejected)
			return userdomain.User{}, commonerrors.ErrDuplicateUsername
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		recordRegistration(resultError)
		return userdomain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")
	recordRegistration(resultSuccess)

	return user, nil
}

// Login reports ErrInvalidCredentials for both an unknown username and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (authdomain.Session, error) {
	input = input.normalize()

	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(input); err != nil {
		recordLogin(resultRejected)
		return authdomain.Session{}, err
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			recordLogin(resultRejected)
			return authdomain.Session{}, commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		recordLogin(resultError)
		return authdomain.Session{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		recordLogin(resultRejected)
		return authdomain.Session{}, commonerrors.ErrInvalidCredentials
	}

	sess, err := s.issueSession(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_session_issue_failed",
		}).Errorf("login failed: session issue error: %v", err)
		recordLogin(resultError)
		return authdomain.Session{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")
	recordLogin(resultSuccess)

	return sess, nil
}

// Logout revokes the session carried by token. Tokens that no longer verify
// are already unusable, so they are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.sessions.Parse(token)
	if err != nil {
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.SessionID, claims.UserID, claims.ExpiresAt); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  "logout_revoke_failed",
		}).Errorf("logout failed: %v", err)
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": claims.UserID,
		"action":  "logout_success",
	}).Info("logout success")
	incrementLogouts()

	return nil
}

// CurrentUser resolves the user behind a session token. Any reason the token
// cannot be honoured is reported as ErrUnauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (userdomain.User, error) {
	if token == "" {
		recordSessionValidation("missing")
		return userdomain.User{}, commonerrors.ErrUnauthorized
	}

	claims, err := s.sessions.Parse(token)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "session_invalid",
		}).Debugf("session rejected: %v", err)
		recordSessionValidation("invalid")
		return userdomain.User{}, commonerrors.ErrUnauthorized.WithCause(err)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.SessionID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  "session_revocation_check_failed",
		}).Errorf("session revocation check failed: %v", err)
		recordSessionValidation(resultError)
		return userdomain.User{}, err
	}
	if revoked {
		recordSessionValidation("revoked")
		return userdomain.User{}, commonerrors.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, userdomain.ID(claims.UserID))
	if err != nil {
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			recordSessionValidation("unknown_user")
			return userdomain.User{}, commonerrors.ErrUnauthorized
		}
		recordSessionValidation(resultError)
		return userdomain.User{}, err
	}

	recordSessionValidation(resultSuccess)
	return user, nil
}

func (s *AuthService) issueSession(user userdomain.User) (authdomain.Session, error) {
	sessionID, err := s.idGenerator.NewID()
	if err != nil {
		return authdomain.Session{}, err
	}

	token, expiresAt, err := s.sessions.Issue(sessionID, string(user.ID), user.Username)
	if err != nil {
		return authdomain.Session{}, err
	}

	return authdomain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
