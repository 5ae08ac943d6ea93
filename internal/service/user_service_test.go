package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/pkg/apperror"
)

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedWorker(t, repo, "meena", "secret123", model.RoleCaster, true)
	svc := NewUserService(repo)

	t.Run("records who deleted", func(t *testing.T) {
		if err := svc.DeleteUser(user.ID, "the-owner"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.DeletedBy != "the-owner" {
			t.Errorf("expected DeletedBy the-owner, got %q", user.DeletedBy)
		}
		if _, err := repo.FindByID(user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("expected user gone after delete, got %v", err)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		err := svc.DeleteUser(uuid.New(), "the-owner")
		if apperror.KindOf(err) != apperror.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("repository failure is not a 404", func(t *testing.T) {
		repo.findErr = errors.New("connection refused")
		defer func() { repo.findErr = nil }()

		err := svc.DeleteUser(uuid.New(), "the-owner")
		if apperror.KindOf(err) != apperror.KindInternal {
			t.Errorf("expected internal error, got %v", err)
		}
	})
}

func TestGetUserByID(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedWorker(t, repo, "sanjay", "secret123", model.RoleFiler, true)
	svc := NewUserService(repo)

	t.Run("success", func(t *testing.T) {
		response, err := svc.GetUserByID(user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if response.Username != "sanjay" {
			t.Errorf("expected username sanjay, got %s", response.Username)
		}
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := svc.GetUserByID(uuid.New())
		if apperror.KindOf(err) != apperror.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("repository failure is not a 404", func(t *testing.T) {
		repo.findErr = errors.New("connection refused")
		defer func() { repo.findErr = nil }()

		_, err := svc.GetUserByID(user.ID)
		if apperror.KindOf(err) != apperror.KindInternal {
			t.Errorf("expected internal error, got %v", err)
		}
	})
}
