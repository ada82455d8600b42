package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"sort"
	"strings"
	"time"
)

// UserStore captures the persistence operations needed by the service.
type UserStore interface {
	CreateUser(ctx context.Context, user User, passwordHash string) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher func(password string) (string, error)

// UserService manages instructor and administrator accounts.
type UserService struct {
	users        UserStore
	hashPassword PasswordHasher
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewUserService constructs a user service with the provided dependencies.
func NewUserService(users UserStore, hashPassword PasswordHasher, idGenerator func() string, now func() time.Time) *UserService {
	return NewUserServiceWithLogger(users, hashPassword, idGenerator, now, nil)
}

// NewUserServiceWithLogger constructs a user service with a specified logger.
func NewUserServiceWithLogger(users UserStore, hashPassword PasswordHasher, idGenerator func() string, now func() time.Time, logger *slog.Logger) *UserService {
	if hashPassword == nil {
		hashPassword = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		}
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, hashPassword: hashPassword, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// CreateUser registers a new account. Only administrators may create users,
// and only administrators may grant the admin flag.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (user User, err error) {
	if s == nil || s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	email := strings.TrimSpace(strings.ToLower(params.Input.Email))
	logger := s.loggerWith(ctx, "CreateUser",
		"principal_id", params.Principal.UserID,
		"email", email,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "user created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	vErr := &ValidationError{}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, parseErr := mail.ParseAddress(email); parseErr != nil {
		vErr.add("email", "email is not valid")
	}
	if strings.TrimSpace(params.Input.DisplayName) == "" {
		vErr.add("display_name", "display name is required")
	}
	checkPasswordPolicy(params.Input.Password, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var hash string
	hash, err = s.hashPassword(params.Input.Password)
	if err != nil {
		return
	}

	createdAt := s.now()
	user = User{
		ID:          s.idGenerator(),
		Email:       email,
		DisplayName: strings.TrimSpace(params.Input.DisplayName),
		IsAdmin:     params.Input.IsAdmin,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	var persisted User
	persisted, err = s.users.CreateUser(ctx, user, hash)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	user = persisted
	return
}

// SetUserDisabled toggles whether an account may sign in.
func (s *UserService) SetUserDisabled(ctx context.Context, principal Principal, userID string, disabled bool) (user User, err error) {
	if s == nil || s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	logger := s.loggerWith(ctx, "SetUserDisabled",
		"principal_id", principal.UserID,
		"user_id", userID,
		"disabled", disabled,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user updated")
	}()

	if !principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	var existing User
	existing, err = s.users.GetUser(ctx, userID)
	if err != nil {
		err = mapStoreError(err)
		return
	}

	existing.Disabled = disabled
	existing.UpdatedAt = s.now()

	var persisted User
	persisted, err = s.users.UpdateUser(ctx, existing)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	user = persisted
	return
}

// GetUser returns a single account.
func (s *UserService) GetUser(ctx context.Context, id string) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("user store not configured")
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return User{}, mapStoreError(err)
	}
	return user, nil
}

// ListUsers enumerates accounts ordered by email. Admin-only.
func (s *UserService) ListUsers(ctx context.Context, principal Principal) ([]User, error) {
	if s == nil || s.users == nil {
		return nil, fmt.Errorf("user store not configured")
	}
	if !principal.IsAdmin {
		return nil, ErrUnauthorized
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	ordered := make([]User, len(users))
	copy(ordered, users)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Email < ordered[j].Email })
	return ordered, nil
}
