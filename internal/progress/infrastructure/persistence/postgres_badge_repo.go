package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/focusfive/internal/progress/domain"
	"github.com/felixgeelhaar/focusfive/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// PostgresBadgeRepository implements domain.Repository using PostgreSQL.
type PostgresBadgeRepository struct {
	conn database.Connection
}

// NewPostgresBadgeRepository creates a new Postgres badge repository.
func NewPostgresBadgeRepository(conn database.Connection) *PostgresBadgeRepository {
	return &PostgresBadgeRepository{conn: conn}
}

// Save persists a badge; duplicate awards are no-ops.
func (r *PostgresBadgeRepository) Save(ctx context.Context, badge *domain.Badge) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO badges (id, user_id, badge_type, earned_at, data, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, badge_type) DO NOTHING`,
		badge.ID(),
		badge.UserID(),
		string(badge.Type()),
		badge.EarnedAt().UTC(),
		nullableString(string(badge.Data())),
		badge.Version()+1,
		badge.CreatedAt().UTC(),
		badge.UpdatedAt().UTC(),
	)
	return err
}

// FindByUser returns a user's badges ordered by when they were earned.
func (r *PostgresBadgeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, badge_type, earned_at, data, version, created_at, updated_at
		FROM badges WHERE user_id = $1 ORDER BY earned_at ASC, badge_type ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []*domain.Badge
	for rows.Next() {
		var (
			id, owner            uuid.UUID
			badgeType            string
			data                 sql.NullString
			version              int
			earnedAt             time.Time
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &owner, &badgeType, &earnedAt, &data, &version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		var raw json.RawMessage
		if data.Valid {
			raw = json.RawMessage(data.String)
		}

		badges = append(badges, domain.RehydrateBadge(id, owner,
			domain.BadgeType(badgeType), earnedAt, raw, version, createdAt, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return badges, nil
}

// TypesByUser returns the set of badge types the user already holds.
func (r *PostgresBadgeRepository) TypesByUser(ctx context.Context, userID uuid.UUID) (map[domain.BadgeType]bool, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		"SELECT badge_type FROM badges WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[domain.BadgeType]bool)
	for rows.Next() {
		var badgeType string
		if err := rows.Scan(&badgeType); err != nil {
			return nil, err
		}
		types[domain.BadgeType(badgeType)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}
