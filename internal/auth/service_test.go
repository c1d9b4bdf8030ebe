package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	sharedauth "capture-backend/internal/shared/auth"
)

func newTestService(t *testing.T) (*Service, *MemoryUsersRepo, *MemoryTokensRepo) {
	t.Helper()
	users := NewMemoryUsersRepo()
	tokens := NewMemoryTokensRepo()
	jwt := sharedauth.NewManager("access-secret", "refresh-secret", 15*time.Minute, 720*time.Hour)
	return NewService(users, tokens, jwt, nil), users, tokens
}

func TestRegisterOpensSession(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Register(ctx, "Maria", "  Maria@Example.COM ", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	present, err := tokens.Exists(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !present {
		t.Fatal("refresh token not persisted")
	}

	// email was lowercased and trimmed before storage
	if _, err := svc.Login(ctx, "maria@example.com", "secret"); err != nil {
		t.Fatalf("Login with normalized email: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Maria", "maria@example.com", "secret"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, "Other", "MARIA@example.com", "different"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongCredentialsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Maria", "maria@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "secret")
	_, wrongErr := svc.Login(ctx, "maria@example.com", "wrong")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("errors differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestRefreshMintsAccessWithoutRotation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Register(ctx, "Maria", "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if access == "" {
		t.Fatal("expected access token")
	}

	// the same refresh token keeps working
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
}

func TestRefreshDistinguishesInvalidFromRevoked(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Register(ctx, "Maria", "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// garbage never verifies
	if _, err := svc.Refresh(ctx, "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// an access token is signed with the wrong secret for this endpoint
	if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}

	// a verifiable token that has been logged out is revoked, not invalid
	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestLogoutSecondTimeReportsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	pair, err := svc.Register(ctx, "Maria", "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := svc.Logout(ctx, pair.RefreshToken); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
	if err := svc.Logout(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank token, got %v", err)
	}
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Maria", "maria@example.com", "secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, err := svc.Users.GetByEmail(ctx, "maria@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	// wrong current password
	err = svc.UpdateProfile(ctx, user.ID, "", "wrong", "newsecret")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	// new password without current password
	err = svc.UpdateProfile(ctx, user.ID, "", "", "newsecret")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// valid change
	if err := svc.UpdateProfile(ctx, user.ID, "Maria Silva", "secret", "newsecret"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if _, err := svc.Login(ctx, "maria@example.com", "newsecret"); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "maria@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}

	profile, err := svc.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Name != "Maria Silva" {
		t.Fatalf("name not updated: %q", profile.Name)
	}
}

type purgeRecorder struct {
	purged []string
}

func (p *purgeRecorder) DeleteByUser(ctx context.Context, userID string) error {
	p.purged = append(p.purged, userID)
	return nil
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, _, tokens := newTestService(t)
	purger := &purgeRecorder{}
	svc.Records = purger
	ctx := context.Background()

	pair, err := svc.Register(ctx, "Maria", "maria@example.com", "secret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, err := svc.Users.GetByEmail(ctx, "maria@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	if err := svc.DeleteAccount(ctx, user.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := svc.Profile(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	present, err := tokens.Exists(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if present {
		t.Fatal("refresh token survived account deletion")
	}
	if len(purger.purged) != 1 || purger.purged[0] != user.ID {
		t.Fatalf("records purge not cascaded: %v", purger.purged)
	}
}
