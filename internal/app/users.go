package app

import (
	"errors"
	"fmt"
	"time"

	"carlog/pkg/auth"
	"carlog/pkg/domain"
	"carlog/pkg/store"
)

// UserParams carries the validated fields of a user create/update body.
type UserParams struct {
	Firstname  string
	Lastname   string
	Email      string
	Password   string
	Phone      string
	Address    string
	PostalCode string
	City       string
}

func (a *App) ListUsers() ([]domain.User, error) {
	return a.store.ListUsers()
}

func (a *App) GetUser(id uint) (domain.User, error) {
	user, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return user, nil
}

func (a *App) CreateUser(p UserParams) (domain.User, error) {
	email := normalizeEmail(p.Email)
	if err := auth.ValidatePassword(p.Password); err != nil {
		return domain.User{}, err
	}
	exists, err := a.store.HasUserEmail(email, 0)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, ErrEmailAlreadyUsed
	}
	passwordHash, err := auth.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}
	now := time.Now().UTC()
	user := domain.User{
		Firstname:    p.Firstname,
		Lastname:     p.Lastname,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        p.Phone,
		Address:      p.Address,
		PostalCode:   p.PostalCode,
		City:         p.City,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := a.store.CreateUser(user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.User{}, ErrEmailAlreadyUsed
		}
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	return created, nil
}

func (a *App) UpdateUser(id uint, p UserParams) (domain.User, error) {
	email := normalizeEmail(p.Email)
	current, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrNotFound
	}
	taken, err := a.store.HasUserEmail(email, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return domain.User{}, ErrEmailAlreadyUsed
	}
	passwordHash := current.PasswordHash
	if p.Password != "" {
		if err := auth.ValidatePassword(p.Password); err != nil {
			return domain.User{}, err
		}
		passwordHash, err = auth.HashPassword(p.Password)
		if err != nil {
			return domain.User{}, err
		}
	}
	user := domain.User{
		ID:           id,
		Firstname:    p.Firstname,
		Lastname:     p.Lastname,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        p.Phone,
		Address:      p.Address,
		PostalCode:   p.PostalCode,
		City:         p.City,
		CreatedAt:    current.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}
	ok, err = a.store.UpdateUser(user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.User{}, ErrEmailAlreadyUsed
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return user, nil
}

func (a *App) DeleteUser(id uint) error {
	ok, err := a.store.DeleteUser(id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
