package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamzahalilovic/social-network-developers/internal/domain/profile"
)

type ProfileResponse struct {
	ID             uuid.UUID            `json:"id"`
	User           profile.Owner        `json:"user"`
	Company        string               `json:"company,omitempty"`
	Website        string               `json:"website,omitempty"`
	Location       string               `json:"location,omitempty"`
	Status         string               `json:"status"`
	Bio            string               `json:"bio,omitempty"`
	GithubUsername string               `json:"githubusername,omitempty"`
	Skills         []string             `json:"skills"`
	Social         profile.SocialLinks  `json:"social"`
	Experience     []profile.Experience `json:"experience"`
	Education      []profile.Education  `json:"education"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	res := ProfileResponse{
		ID:             p.ID,
		User:           p.Owner,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		Experience:     p.Experience,
		Education:      p.Education,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if res.Skills == nil {
		res.Skills = []string{}
	}
	if res.Experience == nil {
		res.Experience = []profile.Experience{}
	}
	if res.Education == nil {
		res.Education = []profile.Education{}
	}
	return res
}

func NewProfileListResponse(ps []profile.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProfileResponse(p))
	}
	return out
}
