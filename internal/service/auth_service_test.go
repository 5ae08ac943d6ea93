package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/pkg/apperror"
)

// fakeUserRepo is an in-memory stand-in for the GORM repository.
// Setting findErr makes lookups fail like a broken connection would.
type fakeUserRepo struct {
	users   map[uuid.UUID]*model.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	users := make([]model.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID, deletedBy string) error {
	if user, ok := r.users[id]; ok {
		user.DeletedBy = deletedBy
		delete(r.users, id)
	}
	return nil
}

func seedWorker(t *testing.T, repo *fakeUserRepo, username, password string, role model.Role, active bool) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Role:     role,
		IsActive: active,
	}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	seedWorker(t, repo, "meena", "secret123", model.RoleCaster, true)
	seedWorker(t, repo, "dormant", "secret123", model.RolePolisher, false)

	svc := NewAuthService(repo)

	t.Run("success", func(t *testing.T) {
		response, err := svc.Login("meena", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if response.Token == "" {
			t.Error("expected a signed token")
		}
		if response.User.Username != "meena" {
			t.Errorf("expected user meena, got %s", response.User.Username)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login("nobody", "secret123")
		if apperror.KindOf(err) != apperror.KindUnauthorized {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("meena", "wrong")
		if apperror.KindOf(err) != apperror.KindUnauthorized {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		_, err := svc.Login("dormant", "secret123")
		if apperror.KindOf(err) != apperror.KindUnauthorized {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	owner := seedWorker(t, repo, "boss", "secret123", model.RoleOwner, true)
	svc := NewAuthService(repo)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Register(&RegisterRequest{
			Username: "sanjay",
			Email:    "sanjay@example.com",
			FullName: "Sanjay",
			Password: "secret123",
			Role:     model.RoleFiler,
		}, owner.ID.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Password == "secret123" {
			t.Error("password stored in plaintext")
		}
		if !user.IsActive {
			t.Error("new accounts should be active")
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{
			Username: "sanjay",
			Email:    "other@example.com",
			FullName: "Another Sanjay",
			Password: "secret123",
			Role:     model.RoleSetter,
		}, owner.ID.String())
		if apperror.KindOf(err) != apperror.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{
			Username: "sanjay2",
			Email:    "sanjay@example.com",
			FullName: "Sanjay Two",
			Password: "secret123",
			Role:     model.RoleSetter,
		}, owner.ID.String())
		if apperror.KindOf(err) != apperror.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{
			Username: "mallory",
			Email:    "mallory@example.com",
			FullName: "Mallory",
			Password: "secret123",
			Role:     model.Role("manager"),
		}, owner.ID.String())
		if apperror.KindOf(err) != apperror.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{
			Username: "shorty",
			Email:    "shorty@example.com",
			FullName: "Shorty",
			Password: "abc",
			Role:     model.RoleCaster,
		}, owner.ID.String())
		if apperror.KindOf(err) != apperror.KindValidation {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestGetProfile(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedWorker(t, repo, "meena", "secret123", model.RoleCaster, true)
	svc := NewAuthService(repo)

	t.Run("success", func(t *testing.T) {
		profile, err := svc.GetProfile(user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.Username != "meena" {
			t.Errorf("expected username meena, got %s", profile.Username)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := svc.GetProfile(uuid.New())
		if apperror.KindOf(err) != apperror.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("repository failure is not a 404", func(t *testing.T) {
		repo.findErr = errors.New("connection refused")
		defer func() { repo.findErr = nil }()

		_, err := svc.GetProfile(user.ID)
		if apperror.KindOf(err) != apperror.KindInternal {
			t.Errorf("expected internal error, got %v", err)
		}
	})
}
