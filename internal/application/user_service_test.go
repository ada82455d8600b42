package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

type stubUserStore struct {
	mu     sync.Mutex
	users  map[string]User
	hashes map[string]string
}

func newStubUserStore(seed ...User) *stubUserStore {
	store := &stubUserStore{users: make(map[string]User), hashes: make(map[string]string)}
	for _, user := range seed {
		store.users[user.ID] = user
	}
	return store
}

func (s *stubUserStore) CreateUser(_ context.Context, user User, passwordHash string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return User{}, persistence.ErrDuplicate
		}
	}
	s.users[user.ID] = user
	s.hashes[user.ID] = passwordHash
	return user, nil
}

func (s *stubUserStore) GetUser(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return User{}, persistence.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) UpdateUser(_ context.Context, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return User{}, persistence.ErrNotFound
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUserStore) ListUsers(context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	return out, nil
}

func stubHasher(password string) (string, error) {
	return "hash:" + password, nil
}

func TestUserService_CreateUser_AdminOnly(t *testing.T) {
	t.Parallel()

	service := NewUserService(newStubUserStore(), stubHasher, sequentialIDs("user"), fixedTime)
	_, err := service.CreateUser(context.Background(), CreateUserParams{
		Principal: Principal{UserID: "user-1"},
		Input:     UserInput{Email: "new@campus.example", DisplayName: "New", Password: "long enough"},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserService_CreateUser_ValidatesInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input UserInput
		field string
	}{
		{name: "missing email", input: UserInput{DisplayName: "New", Password: "long enough"}, field: "email"},
		{name: "malformed email", input: UserInput{Email: "not-an-email", DisplayName: "New", Password: "long enough"}, field: "email"},
		{name: "missing display name", input: UserInput{Email: "new@campus.example", Password: "long enough"}, field: "display_name"},
		{name: "missing password", input: UserInput{Email: "new@campus.example", DisplayName: "New"}, field: "password"},
		{name: "short password", input: UserInput{Email: "new@campus.example", DisplayName: "New", Password: "short"}, field: "password"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := NewUserService(newStubUserStore(), stubHasher, sequentialIDs("user"), fixedTime)
			_, err := service.CreateUser(context.Background(), CreateUserParams{
				Principal: Principal{UserID: "admin", IsAdmin: true},
				Input:     tt.input,
			})
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tt.field]; !ok {
				t.Fatalf("expected field %q, got %v", tt.field, vErr.FieldErrors)
			}
		})
	}
}

func TestUserService_CreateUser_HashesAndNormalizes(t *testing.T) {
	t.Parallel()

	store := newStubUserStore()
	service := NewUserService(store, stubHasher, sequentialIDs("user"), fixedTime)

	user, err := service.CreateUser(context.Background(), CreateUserParams{
		Principal: Principal{UserID: "admin", IsAdmin: true},
		Input:     UserInput{Email: " Ada@Campus.Example ", DisplayName: " Ada ", Password: "long enough"},
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Email != "ada@campus.example" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.DisplayName != "Ada" {
		t.Fatalf("expected trimmed display name, got %q", user.DisplayName)
	}
	if store.hashes[user.ID] != "hash:long enough" {
		t.Fatalf("expected derived hash stored, got %q", store.hashes[user.ID])
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(User{ID: "user-1", Email: "ada@campus.example"})
	service := NewUserService(store, stubHasher, sequentialIDs("user"), fixedTime)

	_, err := service.CreateUser(context.Background(), CreateUserParams{
		Principal: Principal{UserID: "admin", IsAdmin: true},
		Input:     UserInput{Email: "ada@campus.example", DisplayName: "Ada", Password: "long enough"},
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserService_SetUserDisabled_TogglesFlag(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(User{ID: "user-1", Email: "ada@campus.example"})
	service := NewUserService(store, stubHasher, sequentialIDs("user"), fixedTime)

	user, err := service.SetUserDisabled(context.Background(), Principal{UserID: "admin", IsAdmin: true}, "user-1", true)
	if err != nil {
		t.Fatalf("SetUserDisabled returned error: %v", err)
	}
	if !user.Disabled {
		t.Fatal("expected account to be disabled")
	}

	if _, err := service.SetUserDisabled(context.Background(), Principal{UserID: "user-2"}, "user-1", false); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-admin, got %v", err)
	}
}

func TestUserService_ListUsers_AdminOnly(t *testing.T) {
	t.Parallel()

	store := newStubUserStore(
		User{ID: "user-2", Email: "b@campus.example"},
		User{ID: "user-1", Email: "a@campus.example"},
	)
	service := NewUserService(store, stubHasher, sequentialIDs("user"), fixedTime)

	if _, err := service.ListUsers(context.Background(), Principal{UserID: "user-1"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	users, err := service.ListUsers(context.Background(), Principal{UserID: "admin", IsAdmin: true})
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 || users[0].Email != "a@campus.example" {
		t.Fatalf("expected email ordering, got %+v", users)
	}
}
