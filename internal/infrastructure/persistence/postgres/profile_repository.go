package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hamzahalilovic/social-network-developers/internal/database"
	"github.com/hamzahalilovic/social-network-developers/internal/domain/profile"
)

// Profiles are stored as one row per user: scalar columns for the simple
// fields, text[] for skills, and jsonb for social links and the ordered
// experience/education lists. Reads join users for the owner's name/avatar.
type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
	p.id, p.user_id, u.name, u.avatar,
	p.company, p.website, p.location, p.status, p.bio, p.github_username,
	p.skills, p.social, p.experience, p.education,
	p.created_at, p.updated_at`

func (r *ProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles
			(id, user_id, company, website, location, status, bio, github_username,
			 skills, social, experience, education)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.UserID, p.Company, p.Website, p.Location, p.Status, p.Bio, p.GithubUsername,
		p.Skills, p.Social, emptyIfNil(p.Experience), emptyIfNilEdu(p.Education),
	)
	return err
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET company = $2, website = $3, location = $4, status = $5, bio = $6,
		     github_username = $7, skills = $8, social = $9,
		     experience = $10, education = $11, updated_at = now()
		 WHERE user_id = $1`,
		p.UserID, p.Company, p.Website, p.Location, p.Status, p.Bio,
		p.GithubUsername, p.Skills, p.Social,
		emptyIfNil(p.Experience), emptyIfNilEdu(p.Education),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1`,
		userID,
	)
	return scanProfile(row)
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	// Deleting an absent profile is a no-op; account deletion must succeed
	// for users that never created one.
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Owner.Name, &p.Owner.Avatar,
		&p.Company, &p.Website, &p.Location, &p.Status, &p.Bio, &p.GithubUsername,
		&p.Skills, &p.Social, &p.Experience, &p.Education,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.Owner.ID = p.UserID
	return p, nil
}

// jsonb columns hold [] rather than null so list operations never have to
// distinguish the two.
func emptyIfNil(in []profile.Experience) []profile.Experience {
	if in == nil {
		return []profile.Experience{}
	}
	return in
}

func emptyIfNilEdu(in []profile.Education) []profile.Education {
	if in == nil {
		return []profile.Education{}
	}
	return in
}
