package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/authd/internal/model"
	"github.com/xxxsen/authd/internal/pkg/dbutil"
	appErr "github.com/xxxsen/authd/internal/pkg/errors"
)

var userColumns = []string{"id", "name", "email", "password", "created_at"}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts the user and fills in the store-assigned id and
// created_at. A unique violation on email maps to ErrDuplicateEmail;
// any other failure maps to ErrStore so no driver error shape leaks
// past the repo.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.PasswordHash,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	sqlStr += " RETURNING id, created_at"
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if dbutil.IsUniqueViolation(err) {
			return appErr.ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %v", appErr.ErrStore, err)
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrStore, err)
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", appErr.ErrStore, err)
		}
		return nil, appErr.ErrUserNotFound
	}
	var user model.User
	if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrStore, err)
	}
	return &user, nil
}

// Now reports the store clock, used by the connectivity diagnostic.
func (r *UserRepo) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.QueryRowContext(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", appErr.ErrStore, err)
	}
	return now, nil
}
