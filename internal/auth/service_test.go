package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sadmanhossain/urbanland-backend/internal/owners"
	"github.com/sadmanhossain/urbanland-backend/internal/users"
	pkgAuth "github.com/sadmanhossain/urbanland-backend/pkg/auth"
	"github.com/sadmanhossain/urbanland-backend/pkg/auth/session"
	"github.com/sadmanhossain/urbanland-backend/pkg/config"
	"github.com/sadmanhossain/urbanland-backend/pkg/db/models"
	"github.com/sadmanhossain/urbanland-backend/pkg/enums"
	pkgerrors "github.com/sadmanhossain/urbanland-backend/pkg/errors"
	"github.com/sadmanhossain/urbanland-backend/pkg/security"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.OwnerProfile{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

type stubSessionManager struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: make(map[string]string)}
}

func (m *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.NewString()
	m.sessions[accessID] = token
	return token, nil
}

func (m *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.sessions[oldAccessID]
	if !ok || current != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(m.sessions, oldAccessID)
	newID := uuid.NewString()
	newToken := uuid.NewString()
	m.sessions[newID] = newToken
	return newID, newToken, nil
}

func (m *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "auth-service-test-secret",
		Issuer:                 "urbanland-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func newTestService(t *testing.T, conn *gorm.DB) (Service, *stubSessionManager) {
	t.Helper()
	sessions := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		UserRepo:       users.NewRepository(conn),
		ProfilesRepo:   owners.NewRepository(conn),
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, sessions
}

func seedAccount(t *testing.T, conn *gorm.DB, username, password string, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         enums.RoleOwner,
		IsActive:     active,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestRegisterDefaultsToOwnerRole(t *testing.T) {
	conn := newTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterRequest{Username: "Rahim.Uddin", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Role != enums.RoleOwner || !created.IsActive {
		t.Fatalf("unexpected account state: %+v", created)
	}
	if created.Username != "rahim.uddin" {
		t.Fatalf("username must be lowercased, got %q", created.Username)
	}

	_, err = svc.Register(ctx, RegisterRequest{Username: "rahim.uddin", Password: "another-pass"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterRequest{Username: "karim", Password: "short"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for short password, got %v", err)
	}
}

func TestLoginIssuesTokensWithProfileClaim(t *testing.T) {
	conn := newTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	user := seedAccount(t, conn, "salma.begum", "s3cret-pass", true)
	profile := &models.OwnerProfile{
		UserID:     user.ID,
		NationalID: "1988123456789",
		FirstName:  "Salma",
		LastName:   "Begum",
	}
	if err := conn.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	resp, err := svc.Login(ctx, LoginRequest{Username: "salma.begum", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if resp.User.LastLoginAt == nil {
		t.Fatal("login must stamp last_login_at")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.OwnerProfileID == nil || *claims.OwnerProfileID != profile.ID {
		t.Fatalf("expected owner_profile_id claim, got %+v", claims.OwnerProfileID)
	}

	bare := seedAccount(t, conn, "jamal.hossain", "s3cret-pass", true)
	resp, err = svc.Login(ctx, LoginRequest{Username: bare.Username, Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login without profile: %v", err)
	}
	claims, err = pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.OwnerProfileID != nil {
		t.Fatal("owner_profile_id claim must be absent without a profile")
	}
}

func TestLoginRejectsBadCredentialsAndDisabledAccounts(t *testing.T) {
	conn := newTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	seedAccount(t, conn, "rahim.uddin", "s3cret-pass", true)
	seedAccount(t, conn, "disabled.user", "s3cret-pass", false)

	cases := []LoginRequest{
		{Username: "rahim.uddin", Password: "wrong"},
		{Username: "nobody", Password: "s3cret-pass"},
		{Username: "disabled.user", Password: "s3cret-pass"},
		{Username: "", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Login(ctx, req)
		if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("login %q: expected unauthorized, got %v", req.Username, err)
		}
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	conn := newTestDB(t)
	svc, _ := newTestService(t, conn)
	ctx := context.Background()

	seedAccount(t, conn, "rahim.uddin", "s3cret-pass", true)
	login, err := svc.Login(ctx, LoginRequest{Username: "rahim.uddin", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == login.AccessToken || refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("refresh must rotate both tokens")
	}

	_, err = svc.Refresh(ctx, RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized replaying the old pair, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	conn := newTestDB(t)
	svc, sessions := newTestService(t, conn)
	ctx := context.Background()

	seedAccount(t, conn, "rahim.uddin", "s3cret-pass", true)
	login, err := svc.Login(ctx, LoginRequest{Username: "rahim.uddin", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if err := svc.Logout(ctx, claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	sessions.mu.Lock()
	_, alive := sessions.sessions[claims.ID]
	sessions.mu.Unlock()
	if alive {
		t.Fatal("logout must remove the session")
	}

	if err := svc.Logout(ctx, ""); pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for empty access id, got %v", err)
	}
}
