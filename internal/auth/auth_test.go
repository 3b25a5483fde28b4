package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/djangocon/conference-site/internal/model"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("pony")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := CheckPassword(hash, "pony"); err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if err := CheckPassword(hash, "horse"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestSessions_IssueParse(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	now := time.Date(2015, 9, 7, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	token, expires, err := s.Issue(&model.User{ID: 42})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !expires.Equal(now.Add(time.Hour)) {
		t.Fatalf("expires = %v", expires)
	}

	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 42 || claims.Subject != "42" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSessions_Expired(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	now := time.Date(2015, 9, 7, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	token, _, err := s.Issue(&model.User{ID: 1})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := s.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessions_WrongSecret(t *testing.T) {
	token, _, err := NewSessions("one", time.Hour).Issue(&model.User{ID: 1})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewSessions("two", time.Hour).Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

type mockUserStore struct {
	user *model.User
	err  error
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.user, m.err
}

func TestValidateUser_Success(t *testing.T) {
	store := &mockUserStore{user: &model.User{ID: 1, Username: "alice", IsActive: true}}

	u, err := ValidateUser(context.Background(), store, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("unexpected result: %+v", u)
	}
}

func TestValidateUser_InvalidUsername(t *testing.T) {
	_, err := ValidateUser(context.Background(), &mockUserStore{}, "  ")
	if err != ErrInvalidUsername {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestValidateUser_UserNotFound(t *testing.T) {
	_, err := ValidateUser(context.Background(), &mockUserStore{}, "ghost")
	if err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestValidateUser_StoreError(t *testing.T) {
	boom := errors.New("db down")
	_, err := ValidateUser(context.Background(), &mockUserStore{err: boom}, "alice")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestValidateUser_UserInactive(t *testing.T) {
	store := &mockUserStore{user: &model.User{ID: 1, Username: "alice", IsActive: false}}
	_, err := ValidateUser(context.Background(), store, "alice")
	if err != ErrUserInactive {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}
