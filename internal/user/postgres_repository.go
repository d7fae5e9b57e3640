package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/profile-directory/internal/apperror"
	"github.com/redmonkez12/profile-directory/internal/database"
)

// PostgresRepository handles user data persistence in Postgres
type PostgresRepository struct {
	db *bun.DB
}

func NewPostgresRepository(db *bun.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByEmail retrieves a user by email
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := new(database.User)
	err := r.db.NewSelect().
		Model(row).
		Where("u.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapPostgresError("failed to get user by email", err)
	}

	u := mapRowToModel(row)
	return &u, nil
}

// Insert stores a new user. The unique index on email turns a lost
// check-then-insert race into ErrDuplicateEmail.
func (r *PostgresRepository) Insert(ctx context.Context, u *User) (string, error) {
	row := mapModelToRow(u)
	row.ID = uuid.New()

	_, err := r.db.NewInsert().
		Model(row).
		Exec(ctx)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return "", ErrDuplicateEmail
		}
		return "", wrapPostgresError("failed to create user", err)
	}

	return row.ID.String(), nil
}

// ListByNewest retrieves all users ordered by creation time, newest first
func (r *PostgresRepository) ListByNewest(ctx context.Context) ([]User, error) {
	var rows []database.User
	err := r.listQuery(&rows).Scan(ctx)
	if err != nil {
		return nil, wrapPostgresError("failed to list users", err)
	}

	return mapRowsToModels(rows), nil
}

// Search retrieves users matching any of the criteria
func (r *PostgresRepository) Search(ctx context.Context, criteria SearchCriteria) ([]User, error) {
	if len(criteria.Conditions) == 0 {
		return []User{}, nil
	}

	var rows []database.User
	err := r.searchQuery(&rows, criteria).Scan(ctx)
	if err != nil {
		return nil, wrapPostgresError("failed to search users", err)
	}

	return mapRowsToModels(rows), nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return apperror.Unavailable(err)
	}
	return nil
}

func (r *PostgresRepository) listQuery(rows *[]database.User) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(rows).
		OrderExpr("u.created_at DESC")
}

func (r *PostgresRepository) searchQuery(rows *[]database.User, criteria SearchCriteria) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(rows).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, c := range criteria.Conditions {
				switch c.Field {
				case FieldName:
					q = q.WhereOr("u.name ILIKE ?", c.LikePattern())
				case FieldCity:
					q = q.WhereOr("u.city ILIKE ?", c.LikePattern())
				case FieldSkills:
					q = q.WhereOr("EXISTS (SELECT 1 FROM unnest(u.skills) AS skill WHERE skill ILIKE ?)", c.LikePattern())
				}
			}
			return q
		})
}

func wrapPostgresError(msg string, err error) error {
	if database.IsPostgresUnavailable(err) {
		return apperror.Unavailable(err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func mapModelToRow(u *User) *database.User {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	return &database.User{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		City:         u.City,
		Skills:       skills,
		Experience:   u.Experience,
		Portfolio:    u.Portfolio,
		ProfilePic:   u.ProfilePic,
		CreatedAt:    u.CreatedAt,
	}
}

// mapRowToModel converts database model to domain model
func mapRowToModel(row *database.User) User {
	return User{
		ID:           row.ID.String(),
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		City:         row.City,
		Skills:       row.Skills,
		Experience:   row.Experience,
		Portfolio:    row.Portfolio,
		ProfilePic:   row.ProfilePic,
		CreatedAt:    row.CreatedAt,
	}
}

func mapRowsToModels(rows []database.User) []User {
	users := make([]User, 0, len(rows))
	for i := range rows {
		users = append(users, mapRowToModel(&rows[i]))
	}
	return users
}

var _ Repository = (*PostgresRepository)(nil)
