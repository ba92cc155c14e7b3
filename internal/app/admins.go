package app

import (
	"errors"
	"fmt"
	"time"

	"carlog/pkg/auth"
	"carlog/pkg/domain"
	"carlog/pkg/store"
)

// AdminParams carries the validated fields of an admin create/update body.
type AdminParams struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Role      domain.AdminRole
}

// ListAdmins returns all admin accounts.
func (a *App) ListAdmins() ([]domain.Admin, error) {
	return a.store.ListAdmins()
}

// GetAdmin returns one admin by id.
func (a *App) GetAdmin(id uint) (domain.Admin, error) {
	admin, ok, err := a.store.GetAdminByID(id)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("fetch admin: %w", err)
	}
	if !ok {
		return domain.Admin{}, ErrNotFound
	}
	return admin, nil
}

// CreateAdmin registers a new admin. The email pre-check gives a friendly
// conflict for the common case; the database unique index is authoritative,
// so a losing racer still gets ErrEmailAlreadyUsed, never a duplicate row.
func (a *App) CreateAdmin(p AdminParams) (domain.Admin, error) {
	email := normalizeEmail(p.Email)
	if err := auth.ValidatePassword(p.Password); err != nil {
		return domain.Admin{}, err
	}
	exists, err := a.store.HasAdminEmail(email, 0)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.Admin{}, ErrEmailAlreadyUsed
	}
	passwordHash, err := auth.HashPassword(p.Password)
	if err != nil {
		return domain.Admin{}, err
	}
	role := p.Role
	if role == "" {
		count, err := a.store.AdminCount()
		if err != nil {
			return domain.Admin{}, fmt.Errorf("count admins: %w", err)
		}
		// The very first account manages the rest.
		if count == 0 {
			role = domain.RoleAdmin
		} else {
			role = domain.RoleStaff
		}
	}
	now := time.Now().UTC()
	admin := domain.Admin{
		Firstname:    p.Firstname,
		Lastname:     p.Lastname,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := a.store.CreateAdmin(admin)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Admin{}, ErrEmailAlreadyUsed
		}
		return domain.Admin{}, fmt.Errorf("save admin: %w", err)
	}
	return created, nil
}

// UpdateAdmin replaces an admin's profile. The email uniqueness check
// excludes the admin itself so keeping one's own email succeeds.
func (a *App) UpdateAdmin(id uint, p AdminParams) error {
	email := normalizeEmail(p.Email)
	if err := auth.ValidatePassword(p.Password); err != nil {
		return err
	}
	current, ok, err := a.store.GetAdminByID(id)
	if err != nil {
		return fmt.Errorf("fetch admin: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	taken, err := a.store.HasAdminEmail(email, id)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return ErrEmailAlreadyUsed
	}
	passwordHash, err := auth.HashPassword(p.Password)
	if err != nil {
		return err
	}
	role := p.Role
	if role == "" {
		role = current.Role
	}
	updated := domain.Admin{
		ID:           id,
		Firstname:    p.Firstname,
		Lastname:     p.Lastname,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		UpdatedAt:    time.Now().UTC(),
	}
	ok, err = a.store.UpdateAdmin(updated)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("update admin: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteAdmin removes an admin by id.
func (a *App) DeleteAdmin(id uint) error {
	ok, err := a.store.DeleteAdmin(id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
