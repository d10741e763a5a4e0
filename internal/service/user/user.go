package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/query"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UpdateUserRequest struct {
	Name  string
	Email string
	Phone string

	// Admin-only fields
	Role     *domain.Role
	IsActive *bool
}

type SearchUsersRequest struct {
	Filters query.UserFilters
	Sort    query.Sort
	Page    query.Page
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Search(ctx context.Context, actor domain.Actor, req SearchUsersRequest) (*query.Result[domain.User], error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type userService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &userService{db: db}
}

func (s *userService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.User, error) {
	if actor.UserID == uuid.Nil {
		return nil, ErrNoIdentity
	}

	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if !domain.CanAccess(u.ID, actor.UserID, actor.Role) {
		return nil, ErrAccessDenied
	}
	return &u, nil
}

func (s *userService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdateUserRequest) (*domain.User, error) {
	var updated *domain.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("fetch user: %w", err)
		}

		if !u.CanBeModifiedBy(actor.UserID, actor.Role) {
			return ErrAccessDenied
		}

		if req.Email != "" && req.Email != u.Email {
			var count int64
			if err := tx.Model(&domain.User{}).Where("email = ? AND id <> ?", req.Email, u.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if count > 0 {
				return ErrEmailAlreadyExists
			}
		}

		if err := u.UpdateProfile(req.Name, req.Email, req.Phone); err != nil {
			return err
		}

		if req.Role != nil || req.IsActive != nil {
			if !domain.CanChangeRoleOrStatus(actor.Role) {
				return ErrRoleChangeDenied
			}
			if req.Role != nil {
				if err := u.ChangeRole(*req.Role); err != nil {
					return err
				}
			}
			if req.IsActive != nil {
				if *req.IsActive {
					u.Activate()
				} else {
					u.Deactivate()
				}
			}
		}

		if err := tx.Save(&u).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		updated = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("fetch user: %w", err)
		}

		if !u.CanBeModifiedBy(actor.UserID, actor.Role) {
			return ErrAccessDenied
		}

		if err := tx.Delete(&u).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

func (s *userService) Search(ctx context.Context, actor domain.Actor, req SearchUsersRequest) (*query.Result[domain.User], error) {
	if actor.UserID == uuid.Nil {
		return nil, ErrNoIdentity
	}

	req.Filters = NarrowFilters(actor, req.Filters)

	base := req.Filters.Apply(s.db.WithContext(ctx).Model(&domain.User{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	var users []domain.User
	tx := req.Filters.ApplySort(base.Session(&gorm.Session{}), req.Sort)
	if err := req.Page.Apply(tx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	out := query.NewResult(users, total, req.Page)
	return &out, nil
}

// NarrowFilters scopes the search to what the caller may see. Clients only
// ever see themselves; a caller-supplied conflicting id is overwritten, not
// rejected.
func NarrowFilters(actor domain.Actor, f query.UserFilters) query.UserFilters {
	if actor.Role == domain.RoleClient {
		id := actor.UserID
		f.ID = &id
	}
	return f
}
