package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-api-template/internal/logger"
	"github.com/MKhiriev/go-api-template/internal/store"
	"github.com/MKhiriev/go-api-template/models"
)

// userService is the concrete implementation of UserService.
//
// Passwords pass through unchanged: this template deliberately skips
// hashing and must never sit in front of real credentials.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService on top of the given repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// CreateUser registers a new user account.
//
// The payload is normalized (username and email lowercased) and validated
// field by field; all violations are reported at once. Password strength
// is checked separately so its issues surface as a WeakPasswordError.
// Username and email uniqueness is checked against active accounts before
// the insert; the database unique indexes back this up under concurrency.
func (s *userService) CreateUser(ctx context.Context, create models.UserCreate) (models.User, error) {
	log := logger.FromContext(ctx)

	create.Normalize()
	if errs := create.Validate(); len(errs) > 0 {
		log.Error().Str("username", create.Username).Any("errors", errs).Msg("user payload failed validation")
		return models.User{}, &ValidationFailedError{Errors: errs}
	}
	if issues := CheckPasswordStrength(create.Password); len(issues) > 0 {
		log.Error().Str("username", create.Username).Msg("password failed strength check")
		return models.User{}, &WeakPasswordError{Issues: issues}
	}

	taken, err := s.userRepository.ActiveUsernameExists(ctx, create.Username)
	if err != nil {
		log.Err(err).Str("username", create.Username).Msg("username uniqueness check ended with error")
		return models.User{}, fmt.Errorf("username uniqueness check ended with error: %w", err)
	}
	if taken {
		return models.User{}, store.ErrUsernameAlreadyExists
	}

	taken, err = s.userRepository.ActiveEmailExists(ctx, create.Email)
	if err != nil {
		log.Err(err).Str("email", create.Email).Msg("email uniqueness check ended with error")
		return models.User{}, fmt.Errorf("email uniqueness check ended with error: %w", err)
	}
	if taken {
		return models.User{}, store.ErrEmailAlreadyExists
	}

	user := models.User{
		Username:  create.Username,
		Email:     create.Email,
		FullName:  create.FullName,
		Password:  create.Password,
		AvatarURL: create.AvatarURL,
		IsActive:  true,
	}

	createdUser, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", create.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Debug().Int64("user_id", createdUser.ID).Msg("user created")
	return createdUser, nil
}

// GetUser returns one user by id. Soft-deleted accounts are still
// returned here; only listing filters on is_active.
func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user lookup ended with error")
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	return user, nil
}

// ListUsers returns one page of active users together with the pagination
// envelope computed from the total count of the same filtered set.
func (s *userService) ListUsers(ctx context.Context, params models.PaginationParams) ([]models.User, models.Pagination, error) {
	log := logger.FromContext(ctx)

	users, total, err := s.userRepository.ListActiveUsers(ctx, params)
	if err != nil {
		log.Err(err).Msg("user listing ended with error")
		return nil, models.Pagination{}, fmt.Errorf("user listing ended with error: %w", err)
	}

	return users, models.NewPagination(total, params), nil
}

// UpdateUser applies a partial update to one user.
//
// Present fields are normalized and validated; a present password is put
// through the same strength check as on registration. An update with no
// fields set returns the current row untouched. Username and email are not
// re-checked for uniqueness here; the unique indexes reject duplicates.
func (s *userService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return s.GetUser(ctx, userID)
	}

	update.Normalize()
	if errs := update.Validate(); len(errs) > 0 {
		log.Error().Int64("user_id", userID).Any("errors", errs).Msg("user update failed validation")
		return models.User{}, &ValidationFailedError{Errors: errs}
	}
	if update.Password != nil {
		if issues := CheckPasswordStrength(*update.Password); len(issues) > 0 {
			log.Error().Int64("user_id", userID).Msg("password failed strength check")
			return models.User{}, &WeakPasswordError{Issues: issues}
		}
	}

	updatedUser, err := s.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updatedUser, nil
}

// DeleteUser deactivates a user account. The row is kept; is_active is
// flipped off so the account disappears from reads.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := s.userRepository.SoftDeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user deactivation ended with error")
		return fmt.Errorf("user deactivation ended with error: %w", err)
	}

	log.Debug().Int64("user_id", userID).Msg("user deactivated")
	return nil
}

// Login verifies credentials and stamps last_login.
//
// The login field accepts either a username or an email address. Unknown
// accounts and wrong passwords both come back as ErrInvalidCredentials so
// the response does not reveal which half was wrong; deactivated accounts
// are rejected with ErrInactiveAccount after the password check.
func (s *userService) Login(ctx context.Context, login models.UserLogin) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.GetUserByUsernameOrEmail(ctx, login.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("login", login.Username).Msg("login lookup ended with error")
		return models.User{}, fmt.Errorf("login lookup ended with error: %w", err)
	}

	if !simplePasswordCheck(login.Password, user.Password) {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, ErrInactiveAccount
	}

	now := time.Now().UTC()
	if err := s.userRepository.SetLastLogin(ctx, user.ID, now); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("last login update ended with error")
		return models.User{}, fmt.Errorf("last login update ended with error: %w", err)
	}
	user.LastLogin = &now

	log.Debug().Int64("user_id", user.ID).Msg("user logged in")
	return user, nil
}
