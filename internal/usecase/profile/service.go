package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/hamzahalilovic/social-network-developers/internal/domain/profile"
	"github.com/hamzahalilovic/social-network-developers/internal/domain/user"
	"github.com/hamzahalilovic/social-network-developers/internal/infrastructure/cache"
	"github.com/hamzahalilovic/social-network-developers/internal/infrastructure/github"
)

var (
	ErrExperienceNotFound = errors.New("experience entry not found")
	ErrEducationNotFound  = errors.New("education entry not found")
	ErrInternal           = errors.New("internal error")
)

const (
	cacheKeyAllProfiles = "profiles:all"
	cacheKeyGithubRepos = "github:repos:"

	githubCacheTTL = 10 * time.Minute
)

type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	GithubUsername string
	Skills         string
	Social         domain.SocialLinks
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

type Service struct {
	profiles domain.Repository
	users    user.Repository
	cache    *cache.Redis
	github   github.Client
}

func NewService(profiles domain.Repository, users user.Repository, c *cache.Redis, gh github.Client) *Service {
	return &Service{profiles: profiles, users: users, cache: c, github: gh}
}

func (s *Service) GetMine(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]domain.Profile, error) {
	var cached []domain.Profile
	if hit, err := s.cache.GetJSON(ctx, cacheKeyAllProfiles, &cached); err == nil && hit {
		return cached, nil
	}

	out, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, cacheKeyAllProfiles, out, 0)
	return out, nil
}

// Upsert applies a field-level merge over an existing profile, or creates a
// new one when the user has none. Only supplied scalar fields overwrite;
// skills and social links replace wholesale, matching the update contract
// clients rely on.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, in UpsertInput) (domain.Profile, error) {
	skills := SplitSkills(in.Skills)

	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Profile{}, ErrInternal
		}

		p := domain.Profile{
			ID:             uuid.New(),
			UserID:         userID,
			Company:        strings.TrimSpace(in.Company),
			Website:        strings.TrimSpace(in.Website),
			Location:       strings.TrimSpace(in.Location),
			Status:         strings.TrimSpace(in.Status),
			Bio:            strings.TrimSpace(in.Bio),
			GithubUsername: strings.TrimSpace(in.GithubUsername),
			Skills:         skills,
			Social:         in.Social,
		}
		if err := s.profiles.Create(ctx, p); err != nil {
			return domain.Profile{}, ErrInternal
		}
		return s.finishWrite(ctx, userID)
	}

	merged := existing
	setIfSupplied(&merged.Company, in.Company)
	setIfSupplied(&merged.Website, in.Website)
	setIfSupplied(&merged.Location, in.Location)
	setIfSupplied(&merged.Status, in.Status)
	setIfSupplied(&merged.Bio, in.Bio)
	setIfSupplied(&merged.GithubUsername, in.GithubUsername)
	merged.Skills = skills
	merged.Social = in.Social

	if err := s.profiles.Update(ctx, merged); err != nil {
		return domain.Profile{}, ErrInternal
	}
	return s.finishWrite(ctx, userID)
}

func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	entry := domain.Experience{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: strings.TrimSpace(in.Description),
	}

	// Newest entry first.
	p.Experience = append([]domain.Experience{entry}, p.Experience...)

	if err := s.profiles.Update(ctx, p); err != nil {
		return domain.Profile{}, ErrInternal
	}
	return s.finishWrite(ctx, userID)
}

func (s *Service) DeleteExperience(ctx context.Context, userID uuid.UUID, expID uuid.UUID) (domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	idx := -1
	for i, e := range p.Experience {
		if e.ID == expID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Profile{}, ErrExperienceNotFound
	}

	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)

	if err := s.profiles.Update(ctx, p); err != nil {
		return domain.Profile{}, ErrInternal
	}
	return s.finishWrite(ctx, userID)
}

func (s *Service) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	entry := domain.Education{
		ID:           uuid.New(),
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  strings.TrimSpace(in.Description),
	}

	p.Education = append([]domain.Education{entry}, p.Education...)

	if err := s.profiles.Update(ctx, p); err != nil {
		return domain.Profile{}, ErrInternal
	}
	return s.finishWrite(ctx, userID)
}

func (s *Service) DeleteEducation(ctx context.Context, userID uuid.UUID, eduID uuid.UUID) (domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	idx := -1
	for i, e := range p.Education {
		if e.ID == eduID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Profile{}, ErrEducationNotFound
	}

	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)

	if err := s.profiles.Update(ctx, p); err != nil {
		return domain.Profile{}, ErrInternal
	}
	return s.finishWrite(ctx, userID)
}

// DeleteAccount removes the profile, then the user. The two deletes are
// deliberately sequential: a failure between them leaves the user row in
// place and the operation can simply be retried.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return ErrInternal
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return ErrInternal
	}
	_ = s.cache.Delete(ctx, cacheKeyAllProfiles)
	return nil
}

func (s *Service) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	if s.github == nil {
		return nil, ErrInternal
	}
	username = strings.TrimSpace(username)
	key := cacheKeyGithubRepos + strings.ToLower(username)

	var cached []github.Repo
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	repos, err := s.github.LatestRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, repos, githubCacheTTL)
	return repos, nil
}

func (s *Service) finishWrite(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	_ = s.cache.Delete(ctx, cacheKeyAllProfiles)

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, ErrInternal
	}
	return p, nil
}

// SplitSkills converts the comma-separated skills field into an ordered,
// trimmed list, dropping empty segments.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func setIfSupplied(dst *string, v string) {
	v = strings.TrimSpace(v)
	if v != "" {
		*dst = v
	}
}
