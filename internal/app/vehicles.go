package app

import (
	"errors"
	"fmt"
	"time"

	"carlog/pkg/domain"
	"carlog/pkg/store"
)

// VehicleParams carries the validated fields of a vehicle create/update body.
type VehicleParams struct {
	Registration    string
	UserID          uint
	BrandID         uint
	ModelID         uint
	TypeID          uint
	Color           string
	CirculationDate time.Time
}

func (a *App) ListVehicles() ([]domain.Vehicle, error) {
	return a.store.ListVehicles()
}

func (a *App) GetVehicle(registration string) (domain.Vehicle, error) {
	vehicle, ok, err := a.store.GetVehicle(normalizeRegistration(registration))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("fetch vehicle: %w", err)
	}
	if !ok {
		return domain.Vehicle{}, ErrNotFound
	}
	return vehicle, nil
}

func (a *App) CreateVehicle(p VehicleParams) (domain.Vehicle, error) {
	now := time.Now().UTC()
	vehicle := domain.Vehicle{
		Registration:    normalizeRegistration(p.Registration),
		UserID:          p.UserID,
		BrandID:         p.BrandID,
		ModelID:         p.ModelID,
		TypeID:          p.TypeID,
		Color:           p.Color,
		CirculationDate: p.CirculationDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := a.store.CreateVehicle(vehicle)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return domain.Vehicle{}, ErrRegistrationAlreadyUsed
		case errors.Is(err, store.ErrForeignKey):
			return domain.Vehicle{}, ErrUnknownReference
		}
		return domain.Vehicle{}, fmt.Errorf("save vehicle: %w", err)
	}
	return created, nil
}

// UpdateVehicle replaces the vehicle's mutable fields; the registration in
// the path is the identity and cannot be changed.
func (a *App) UpdateVehicle(registration string, p VehicleParams) (domain.Vehicle, error) {
	vehicle := domain.Vehicle{
		Registration:    normalizeRegistration(registration),
		UserID:          p.UserID,
		BrandID:         p.BrandID,
		ModelID:         p.ModelID,
		TypeID:          p.TypeID,
		Color:           p.Color,
		CirculationDate: p.CirculationDate,
		UpdatedAt:       time.Now().UTC(),
	}
	ok, err := a.store.UpdateVehicle(vehicle)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.Vehicle{}, ErrUnknownReference
		}
		return domain.Vehicle{}, fmt.Errorf("update vehicle: %w", err)
	}
	if !ok {
		return domain.Vehicle{}, ErrNotFound
	}
	return a.GetVehicle(vehicle.Registration)
}

// DeleteVehicle removes the vehicle and, through the cascade, its service
// records.
func (a *App) DeleteVehicle(registration string) error {
	ok, err := a.store.DeleteVehicle(normalizeRegistration(registration))
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
