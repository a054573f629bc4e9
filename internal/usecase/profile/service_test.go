package profile

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/hamzahalilovic/social-network-developers/internal/domain/profile"
	"github.com/hamzahalilovic/social-network-developers/internal/domain/user"
)

type mockProfileRepo struct {
	byUserID map[uuid.UUID]domain.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{byUserID: map[uuid.UUID]domain.Profile{}}
}

func (m *mockProfileRepo) Create(_ context.Context, p domain.Profile) error {
	m.byUserID[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) Update(_ context.Context, p domain.Profile) error {
	if _, ok := m.byUserID[p.UserID]; !ok {
		return domain.ErrNotFound
	}
	m.byUserID[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
	p, ok := m.byUserID[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(m.byUserID))
	for _, p := range m.byUserID {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProfileRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	delete(m.byUserID, userID)
	return nil
}

type mockUserRepo struct {
	byID map[uuid.UUID]user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byID: map[uuid.UUID]user.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
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

func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return user.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *mockProfileRepo, *mockUserRepo, uuid.UUID) {
	t.Helper()

	profiles := newMockProfileRepo()
	users := newMockUserRepo()

	userID := uuid.New()
	users.byID[userID] = user.User{ID: userID, Name: "A", Email: "a@x.com"}

	return NewService(profiles, users, nil, nil), profiles, users, userID
}

func TestSplitSkills(t *testing.T) {
	got := SplitSkills("go, rust, python")
	want := []string{"go", "rust", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = SplitSkills(" go ,, rust,")
	want = []string{"go", "rust"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestService_Upsert_CreatesThenMerges(t *testing.T) {
	svc, repo, _, userID := newTestService(t)

	p, err := svc.Upsert(context.Background(), userID, UpsertInput{
		Status:  "Developer",
		Skills:  "go, rust, python",
		Company: "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(p.Skills, []string{"go", "rust", "python"}) {
		t.Fatalf("unexpected skills: %v", p.Skills)
	}
	if p.Company != "Acme" {
		t.Fatalf("unexpected company: %q", p.Company)
	}

	// Second call with an empty company must keep the existing value.
	p, err = svc.Upsert(context.Background(), userID, UpsertInput{
		Status: "Senior Developer",
		Skills: "go",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Company != "Acme" {
		t.Fatalf("merge dropped company: %q", p.Company)
	}
	if p.Status != "Senior Developer" {
		t.Fatalf("merge did not update status: %q", p.Status)
	}
	if !reflect.DeepEqual(p.Skills, []string{"go"}) {
		t.Fatalf("skills not replaced: %v", p.Skills)
	}

	if len(repo.byUserID) != 1 {
		t.Fatalf("expected exactly one profile, got %d", len(repo.byUserID))
	}
}

func TestService_AddExperience_NewestFirst(t *testing.T) {
	svc, _, _, userID := newTestService(t)

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.AddExperience(context.Background(), userID, ExperienceInput{Title: "First", Company: "Acme", From: from}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	p, err := svc.AddExperience(context.Background(), userID, ExperienceInput{Title: "Second", Company: "Acme", From: from.AddDate(1, 0, 0)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Experience))
	}
	if p.Experience[0].Title != "Second" || p.Experience[1].Title != "First" {
		t.Fatalf("expected newest entry first, got %q then %q", p.Experience[0].Title, p.Experience[1].Title)
	}
}

func TestService_AddExperience_NoProfile(t *testing.T) {
	svc, _, _, userID := newTestService(t)

	_, err := svc.AddExperience(context.Background(), userID, ExperienceInput{Title: "T", Company: "C", From: time.Now()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected profile ErrNotFound, got %v", err)
	}
}

func TestService_DeleteExperience(t *testing.T) {
	svc, _, _, userID := newTestService(t)

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	p, err := svc.AddExperience(context.Background(), userID, ExperienceInput{Title: "T", Company: "C", From: time.Now()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// An unknown identifier is an explicit error, never a silent no-op.
	if _, err := svc.DeleteExperience(context.Background(), userID, uuid.New()); !errors.Is(err, ErrExperienceNotFound) {
		t.Fatalf("expected ErrExperienceNotFound, got %v", err)
	}

	p, err = svc.DeleteExperience(context.Background(), userID, p.Experience[0].ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.Experience) != 0 {
		t.Fatalf("expected empty experience list, got %d entries", len(p.Experience))
	}
}

func TestService_DeleteEducation(t *testing.T) {
	svc, _, _, userID := newTestService(t)

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	p, err := svc.AddEducation(context.Background(), userID, EducationInput{School: "S", Degree: "D", FieldOfStudy: "F", From: time.Now()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := svc.DeleteEducation(context.Background(), userID, uuid.New()); !errors.Is(err, ErrEducationNotFound) {
		t.Fatalf("expected ErrEducationNotFound, got %v", err)
	}

	p, err = svc.DeleteEducation(context.Background(), userID, p.Education[0].ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.Education) != 0 {
		t.Fatalf("expected empty education list, got %d entries", len(p.Education))
	}
}

func TestService_DeleteAccount(t *testing.T) {
	svc, profiles, users, userID := newTestService(t)

	if _, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: "Dev", Skills: "go"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := profiles.GetByUserID(context.Background(), userID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("profile should be gone, got %v", err)
	}
	if _, err := users.GetByID(context.Background(), userID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
}

func TestService_DeleteAccount_NoProfile(t *testing.T) {
	svc, _, users, userID := newTestService(t)

	// Users who never created a profile can still delete their account.
	if err := svc.DeleteAccount(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := users.GetByID(context.Background(), userID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
}
