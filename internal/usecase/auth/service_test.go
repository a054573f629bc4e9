package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamzahalilovic/social-network-developers/internal/domain/user"
)

type mockUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User

	existsErr error
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: map[string]user.User{},
		byID:    map[uuid.UUID]user.User{},
	}
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byEmail[u.Email]; ok {
		return user.ErrDuplicateEmail
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	delete(m.byEmail, u.Email)
	delete(m.byID, id)
	return nil
}

func TestService_Register(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: " A@X.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked in returned user")
	}
	if !strings.HasPrefix(u.Avatar, "https://www.gravatar.com/avatar/") {
		t.Fatalf("expected gravatar avatar, got %q", u.Avatar)
	}

	stored := repo.byEmail["a@x.com"]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatalf("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterInput{Name: "B", Email: "a@x.com", Password: "secret2"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("duplicate registration must not create a second account, have %d", len(repo.byID))
	}
}

func TestService_Register_DuplicateRace(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = user.ErrDuplicateEmail
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestService_Login(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "A@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("login resolved to a different user")
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked in returned user")
	}
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	cases := []LoginInput{
		{Email: "a@x.com", Password: "wrong-password"},
		{Email: "nobody@x.com", Password: "secret1"},
		{Email: "", Password: "secret1"},
		{Email: "a@x.com", Password: ""},
	}
	for _, in := range cases {
		if _, err := svc.Login(context.Background(), in); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %+v, got %v", in, err)
		}
	}
}
