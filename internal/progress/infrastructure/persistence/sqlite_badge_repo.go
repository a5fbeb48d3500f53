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

// SQLiteBadgeRepository implements domain.Repository using SQLite.
type SQLiteBadgeRepository struct {
	conn database.Connection
}

// NewSQLiteBadgeRepository creates a new SQLite badge repository.
func NewSQLiteBadgeRepository(conn database.Connection) *SQLiteBadgeRepository {
	return &SQLiteBadgeRepository{conn: conn}
}

// Save persists a badge. The UNIQUE(user_id, badge_type) constraint
// makes a duplicate award a no-op rather than an error, keeping
// evaluation idempotent under races.
func (r *SQLiteBadgeRepository) Save(ctx context.Context, badge *domain.Badge) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO badges (id, user_id, badge_type, earned_at, data, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, badge_type) DO NOTHING`,
		badge.ID().String(),
		badge.UserID().String(),
		string(badge.Type()),
		badge.EarnedAt().UTC().Format(time.RFC3339),
		nullableString(string(badge.Data())),
		badge.Version()+1,
		badge.CreatedAt().UTC().Format(time.RFC3339),
		badge.UpdatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// FindByUser returns a user's badges ordered by when they were earned.
func (r *SQLiteBadgeRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `
		SELECT id, user_id, badge_type, earned_at, data, version, created_at, updated_at
		FROM badges WHERE user_id = ? ORDER BY earned_at ASC, badge_type ASC`,
		userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []*domain.Badge
	for rows.Next() {
		var (
			id, owner, badgeType         string
			earnedAt, createdAt, updated string
			data                         sql.NullString
			version                      int
		)
		if err := rows.Scan(&id, &owner, &badgeType, &earnedAt, &data, &version, &createdAt, &updated); err != nil {
			return nil, err
		}

		badgeID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			return nil, err
		}
		earned, err := time.Parse(time.RFC3339, earnedAt)
		if err != nil {
			return nil, err
		}
		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}
		updatedAt, err := time.Parse(time.RFC3339, updated)
		if err != nil {
			return nil, err
		}

		var raw json.RawMessage
		if data.Valid {
			raw = json.RawMessage(data.String)
		}

		badges = append(badges, domain.RehydrateBadge(badgeID, ownerID,
			domain.BadgeType(badgeType), earned, raw, version, created, updatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return badges, nil
}

// TypesByUser returns the set of badge types the user already holds.
func (r *SQLiteBadgeRepository) TypesByUser(ctx context.Context, userID uuid.UUID) (map[domain.BadgeType]bool, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx,
		"SELECT badge_type FROM badges WHERE user_id = ?", userID.String())
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

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
