package app

import (
	"errors"
	"fmt"
	"time"

	"carlog/pkg/domain"
	"carlog/pkg/store"
)

// ProParams carries the validated fields of a pro create/update body.
type ProParams struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	PostalCode string
	City       string
	Siret      string
}

func (a *App) ListPros() ([]domain.Pro, error) {
	return a.store.ListPros()
}

func (a *App) GetPro(id uint) (domain.Pro, error) {
	pro, ok, err := a.store.GetProByID(id)
	if err != nil {
		return domain.Pro{}, fmt.Errorf("fetch pro: %w", err)
	}
	if !ok {
		return domain.Pro{}, ErrNotFound
	}
	return pro, nil
}

func (a *App) CreatePro(p ProParams) (domain.Pro, error) {
	now := time.Now().UTC()
	pro := domain.Pro{
		Name:       p.Name,
		Email:      normalizeEmail(p.Email),
		Phone:      p.Phone,
		Address:    p.Address,
		PostalCode: p.PostalCode,
		City:       p.City,
		Siret:      p.Siret,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := a.store.CreatePro(pro)
	if err != nil {
		return domain.Pro{}, fmt.Errorf("save pro: %w", err)
	}
	return created, nil
}

func (a *App) UpdatePro(id uint, p ProParams) (domain.Pro, error) {
	pro := domain.Pro{
		ID:         id,
		Name:       p.Name,
		Email:      normalizeEmail(p.Email),
		Phone:      p.Phone,
		Address:    p.Address,
		PostalCode: p.PostalCode,
		City:       p.City,
		Siret:      p.Siret,
		UpdatedAt:  time.Now().UTC(),
	}
	ok, err := a.store.UpdatePro(pro)
	if err != nil {
		return domain.Pro{}, fmt.Errorf("update pro: %w", err)
	}
	if !ok {
		return domain.Pro{}, ErrNotFound
	}
	return a.GetPro(id)
}

// DeletePro fails with ErrResourceInUse while service records or
// appointments still reference the pro.
func (a *App) DeletePro(id uint) error {
	ok, err := a.store.DeletePro(id)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return ErrResourceInUse
		}
		return fmt.Errorf("delete pro: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
