package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles all reads and writes against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads one full users row. Nullable columns land in pointer
// fields which become nil on SQL NULL.
func scanUser(row interface{ Scan(...any) error }, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.Password,
		&user.PasswordHash,
		&user.IsActive,
		&user.LastLogin,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// classifyUserWriteError maps driver-level unique violations to the
// username/email conflict sentinels. The unique indexes are the schema
// backstop for the check-then-act window between the existence check and
// the INSERT, so these can fire even after the application-level check
// passed. Returns nil when err is not a constraint violation.
func classifyUserWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgerrcode.UniqueViolation {
			return nil
		}
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return ErrUsernameAlreadyExists
		case strings.Contains(pgErr.ConstraintName, "email"):
			return ErrEmailAlreadyExists
		default:
			return ErrIntegrityViolation
		}
	}

	if sqliteUniqueViolation(err) {
		switch {
		case strings.Contains(err.Error(), "username"):
			return ErrUsernameAlreadyExists
		case strings.Contains(err.Error(), "email"):
			return ErrEmailAlreadyExists
		default:
			return ErrIntegrityViolation
		}
	}

	return nil
}

// CreateUser persists a new user row and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// Error handling:
//   - unique violation on username/email → [ErrUsernameAlreadyExists] /
//     [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.FullName, user.Password, user.AvatarURL, time.Now().UTC())

	var created models.User
	if err := scanUser(row, &created); err != nil {
		if conflictErr := classifyUserWriteError(err); conflictErr != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("unique constraint violated")
			return models.User{}, conflictErr
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetUserByID retrieves one user row by primary key. Soft-deleted rows are
// returned as well: only the list endpoint filters on is_active.
//
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUserByID, userID)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.GetUserByID").Int64("user_id", userID).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// GetUserByUsernameOrEmail retrieves the row whose username OR email equals
// login. The lookup deliberately spans inactive rows; the caller decides
// what to do with an inactive account.
func (r *userRepository) GetUserByUsernameOrEmail(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUserByUsernameOrEmail, login)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.GetUserByUsernameOrEmail").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// ListActiveUsers returns one page of active users plus the total count of
// active rows.
func (r *userRepository) ListActiveUsers(ctx context.Context, params models.PaginationParams) ([]models.User, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.db.QueryRowContext(ctx, countActiveUsers).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.ListActiveUsers").Msg("failed to count active users")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, listActiveUsers, params.Limit(), params.Offset())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListActiveUsers").Msg("failed to execute query for listing users")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, params.Limit())
	for rows.Next() {
		var user models.User
		if scanErr := scanUser(rows, &user); scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListActiveUsers").Msg("failed to scan user row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*userRepository.ListActiveUsers").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, total, nil
}

// UpdateUser applies a partial update: only fields present in update are
// written. Returns the updated row, or [ErrUserNotFound] when no row with
// userID exists.
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args := buildUpdateUserQuery(userID, update, time.Now().UTC())

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		if conflictErr := classifyUserWriteError(err); conflictErr != nil {
			log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", userID).Msg("unique constraint violated")
			return models.User{}, conflictErr
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", userID).Msg("failed to execute update")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// SoftDeleteUser marks the row inactive. The row remains readable by id
// and disappears from the active list only.
func (r *userRepository) SoftDeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, softDeleteUser, userID, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SoftDeleteUser").Int64("user_id", userID).Msg("failed to execute soft delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetLastLogin stamps the last successful login time.
func (r *userRepository) SetLastLogin(ctx context.Context, userID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, setUserLastLogin, userID, at); err != nil {
		log.Err(err).Str("func", "*userRepository.SetLastLogin").Int64("user_id", userID).Msg("failed to update last login")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ActiveUsernameExists reports whether an active row holds the username.
func (r *userRepository) ActiveUsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, activeUsernameExists, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

// ActiveEmailExists reports whether an active row holds the email.
func (r *userRepository) ActiveEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, activeEmailExists, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}
