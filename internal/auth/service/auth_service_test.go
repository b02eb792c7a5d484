package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/auth/service"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

func storedUser(username, password string) userdomain.User {
	return userdomain.User{
		ID:           "11111111-1111-4111-8111-111111111111",
		Username:     username,
		PasswordHash: "hashed_" + password,
		CreatedAt:    time.Now(),
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, deps := setupAuthService(t)

	var created userdomain.User
	deps.users.createFunc = func(ctx context.Context, user userdomain.User) error {
		created = user
		return nil
	}

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Username:        " alice ",
		Password:        "password1",
		ConfirmPassword: "password1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("expected trimmed username, got %q", user.Username)
	}
	if created.PasswordHash == "password1" || created.PasswordHash == "" {
		t.Errorf("expected hashed password, got %q", created.PasswordHash)
	}
	if created.ID == "" || created.ID != user.ID {
		t.Errorf("expected stored id to match returned user, got %q vs %q", created.ID, user.ID)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input service.RegisterInput
		want  error
	}{
		{
			name:  "missing username",
			input: service.RegisterInput{Password: "password1", ConfirmPassword: "password1"},
			want:  commonerrors.ErrFieldMissing,
		},
		{
			name:  "missing confirmation",
			input: service.RegisterInput{Username: "alice", Password: "password1"},
			want:  commonerrors.ErrFieldMissing,
		},
		{
			name:  "mismatch",
			input: service.RegisterInput{Username: "alice", Password: "password1", ConfirmPassword: "password2"},
			want:  commonerrors.ErrPasswordMismatch,
		},
		{
			name:  "short username",
			input: service.RegisterInput{Username: "abc", Password: "password1", ConfirmPassword: "password1"},
			want:  commonerrors.ErrFieldLength,
		},
		{
			name:  "short password",
			input: service.RegisterInput{Username: "alice", Password: "pass", ConfirmPassword: "pass"},
			want:  commonerrors.ErrFieldLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := setupAuthService(t)
			deps.users.createFunc = func(ctx context.Context, user userdomain.User) error {
				t.Error("create must not be called for invalid input")
				return nil
			}

			if _, err := svc.Register(context.Background(), tt.input); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, deps := setupAuthService(t)

	deps.users.createFunc = func(ctx context.Context, user userdomain.User) error {
		return commonerrors.ErrUsernameAlreadyExists
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username:        "alice",
		Password:        "password1",
		ConfirmPassword: "password1",
	})
	if !errors.Is(err, commonerrors.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
}

func TestAuthService_Register_StoreError(t *testing.T) {
	svc, deps := setupAuthService(t)

	storeErr := errors.New("connection refused")
	deps.users.createFunc = func(ctx context.Context, user userdomain.User) error {
		return storeErr
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username:        "alice",
		Password:        "password1",
		ConfirmPassword: "password1",
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, deps := setupAuthService(t)

	deps.users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		if username != "alice" {
			t.Errorf("expected alice, got %s", username)
		}
		return storedUser("alice", "password1"), nil
	}

	sess, err := svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sess.Token == "" || sess.ID == "" {
		t.Errorf("expected session token and id, got %+v", sess)
	}
	if sess.Username != "alice" || !sess.ExpiresAt.After(deps.clock.Now()) {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestAuthService_Login_FieldMissing(t *testing.T) {
	svc, _ := setupAuthService(t)

	for _, in := range []service.LoginInput{
		{Username: "", Password: "password1"},
		{Username: "alice", Password: ""},
		{Username: "   ", Password: "password1"},
	} {
		if _, err := svc.Login(context.Background(), in); !errors.Is(err, commonerrors.ErrFieldMissing) {
			t.Errorf("input %+v: expected field missing, got %v", in, err)
		}
	}
}

func TestAuthService_Login_IdenticalFailureMessages(t *testing.T) {
	svc, deps := setupAuthService(t)

	deps.users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		if username == "alice" {
			return storedUser("alice", "password1"), nil
		}
		return userdomain.User{}, commonerrors.ErrUserNotFound
	}

	_, unknownErr := svc.Login(context.Background(), service.LoginInput{Username: "mallory", Password: "password1"})
	_, wrongErr := svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "wrongpass"})

	for _, err := range []error{unknownErr, wrongErr} {
		if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	}

	unknown, _ := commonerrors.AsDomainError(unknownErr)
	wrong, _ := commonerrors.AsDomainError(wrongErr)
	if unknown.Message() != wrong.Message() {
		t.Errorf("messages differ: %q vs %q", unknown.Message(), wrong.Message())
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, deps := setupAuthService(t)

	user := storedUser("alice", "password1")
	deps.users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return user, nil
	}
	deps.users.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		if id != user.ID {
			return userdomain.User{}, commonerrors.ErrUserNotFound
		}
		return user, nil
	}

	sess, err := svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected %s, got %s", user.ID, got.ID)
	}
}

func TestAuthService_CurrentUser_Rejections(t *testing.T) {
	svc, deps := setupAuthService(t)

	user := storedUser("alice", "password1")
	deps.users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return user, nil
	}

	sess, err := svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.CurrentUser(context.Background(), ""); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("empty token: expected unauthorized, got %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), "not-a-token"); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("garbage token: expected unauthorized, got %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), sess.Token); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("deleted user: expected unauthorized, got %v", err)
	}

	deps.clock.Advance(2 * time.Hour)
	if _, err := svc.CurrentUser(context.Background(), sess.Token); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("expired token: expected unauthorized, got %v", err)
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	svc, deps := setupAuthService(t)

	user := storedUser("alice", "password1")
	deps.users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return user, nil
	}
	deps.users.findByIDFunc = func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
		return user, nil
	}

	sess, err := svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.CurrentUser(context.Background(), sess.Token); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("expected revoked session to be rejected, got %v", err)
	}

	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Errorf("expected logout with invalid token to succeed, got %v", err)
	}
}

func TestAuthService_Logout_StoreError(t *testing.T) {
	svc, deps := setupAuthService(t)

	deps.users.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return storedUser("alice", "password1"), nil
	}
	storeErr := errors.New("disk full")
	deps.revoked.revokeFunc = func(ctx context.Context, sessionID, userID string, expiresAt time.Time) error {
		return storeErr
	}

	sess, err := svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "password1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), sess.Token); !errors.Is(err, storeErr) {
		t.Errorf("expected store error, got %v", err)
	}
}
