package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/deppfellow/printgallery/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const userColumns = "user_id, username, fullname, email_address, date_joined, location, " +
	"owns_printer, designer_tag, avatar, rating"

// UserRepository is the Postgres implementation of Users.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.UserID,
		&u.Username,
		&u.Fullname,
		&u.EmailAddress,
		&u.DateJoined,
		&u.Location,
		&u.OwnsPrinter,
		&u.DesignerTag,
		&u.Avatar,
		&u.Rating,
	)
	return u, err
}

func (r *UserRepository) one(ctx context.Context, sql string, args ...any) (*model.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, sqlerr.HandleError(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, sqlerr.HandleError(err, "user")
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, sqlerr.HandleError(err, "user")
	}
	return users, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// Create inserts a user. Missing flags fall back to false in the statement
// so the NOT NULL defaults hold.
func (r *UserRepository) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	return r.one(ctx,
		`INSERT INTO users (username, fullname, email_address, location, owns_printer, designer_tag, avatar, rating)
		VALUES ($1, $2, $3, $4, COALESCE($5, false), COALESCE($6, false), $7, $8)
		RETURNING `+userColumns,
		in.Username,
		in.Fullname,
		in.EmailAddress,
		in.Location,
		in.OwnsPrinter,
		in.DesignerTag,
		in.Avatar,
		in.Rating,
	)
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.one(ctx, `DELETE FROM users WHERE username = $1 RETURNING `+userColumns, username)
}

func (r *UserRepository) Update(ctx context.Context, userID int32, patch model.Patch[model.User]) (*model.User, error) {
	if patch.Column == "" {
		return nil, errs.InvalidArgument("valueToUpdate", "valueToUpdate is required")
	}

	sql := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE user_id = $2 RETURNING %s`,
		pgx.Identifier{patch.Column}.Sanitize(), userColumns)

	return r.one(ctx, sql, patch.Value, userID)
}
