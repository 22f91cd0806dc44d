package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a user lookup by id or credentials
	// produces no row.
	ErrUserNotFound = errors.New("user was not found")

	// ErrUsernameAlreadyExists is returned when an active user with the same
	// username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when an active user with the same
	// email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrHeroNotFound is returned when a hero lookup by id or name produces
	// no row.
	ErrHeroNotFound = errors.New("hero was not found")

	// ErrHeroNameAlreadyExists is returned when a hero with the same name
	// already exists.
	ErrHeroNameAlreadyExists = errors.New("hero name already exists")

	// ErrFileNotFound is returned when no stored file matches the requested
	// identifier.
	ErrFileNotFound = errors.New("file was not found")

	// ErrIntegrityViolation is returned when the database rejects a write
	// with a constraint violation that no more specific sentinel covers.
	// The schema's unique indexes are the backstop for check-then-act races,
	// so this can surface even after an application-level uniqueness check
	// passed.
	ErrIntegrityViolation = errors.New("integrity constraint violation")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
