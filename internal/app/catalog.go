package app

import (
	"errors"
	"fmt"
	"strings"

	"carlog/pkg/domain"
	"carlog/pkg/store"
)

// Brands, models, and vehicle types form the catalog referenced by vehicles.

func (a *App) ListBrands() ([]domain.Brand, error) {
	return a.store.ListBrands()
}

func (a *App) GetBrand(id uint) (domain.Brand, error) {
	brand, ok, err := a.store.GetBrandByID(id)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("fetch brand: %w", err)
	}
	if !ok {
		return domain.Brand{}, ErrNotFound
	}
	return brand, nil
}

func (a *App) CreateBrand(name string) (domain.Brand, error) {
	created, err := a.store.CreateBrand(domain.Brand{Name: strings.TrimSpace(name)})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Brand{}, ErrNameAlreadyUsed
		}
		return domain.Brand{}, fmt.Errorf("save brand: %w", err)
	}
	return created, nil
}

func (a *App) UpdateBrand(id uint, name string) (domain.Brand, error) {
	ok, err := a.store.UpdateBrand(domain.Brand{ID: id, Name: strings.TrimSpace(name)})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return domain.Brand{}, ErrNameAlreadyUsed
		}
		return domain.Brand{}, fmt.Errorf("update brand: %w", err)
	}
	if !ok {
		return domain.Brand{}, ErrNotFound
	}
	return a.GetBrand(id)
}

func (a *App) DeleteBrand(id uint) error {
	ok, err := a.store.DeleteBrand(id)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return ErrResourceInUse
		}
		return fmt.Errorf("delete brand: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (a *App) ListModels() ([]domain.Model, error) {
	return a.store.ListModels()
}

func (a *App) GetModel(id uint) (domain.Model, error) {
	model, ok, err := a.store.GetModelByID(id)
	if err != nil {
		return domain.Model{}, fmt.Errorf("fetch model: %w", err)
	}
	if !ok {
		return domain.Model{}, ErrNotFound
	}
	return model, nil
}

func (a *App) CreateModel(name string, brandID uint) (domain.Model, error) {
	created, err := a.store.CreateModel(domain.Model{Name: strings.TrimSpace(name), BrandID: brandID})
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.Model{}, ErrUnknownReference
		}
		return domain.Model{}, fmt.Errorf("save model: %w", err)
	}
	return created, nil
}

func (a *App) UpdateModel(id uint, name string, brandID uint) (domain.Model, error) {
	ok, err := a.store.UpdateModel(domain.Model{ID: id, Name: strings.TrimSpace(name), BrandID: brandID})
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.Model{}, ErrUnknownReference
		}
		return domain.Model{}, fmt.Errorf("update model: %w", err)
	}
	if !ok {
		return domain.Model{}, ErrNotFound
	}
	return a.GetModel(id)
}

func (a *App) DeleteModel(id uint) error {
	ok, err := a.store.DeleteModel(id)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return ErrResourceInUse
		}
		return fmt.Errorf("delete model: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (a *App) ListVehicleTypes() ([]domain.VehicleType, error) {
	return a.store.ListVehicleTypes()
}

func (a *App) GetVehicleType(id uint) (domain.VehicleType, error) {
	t, ok, err := a.store.GetVehicleTypeByID(id)
	if err != nil {
		return domain.VehicleType{}, fmt.Errorf("fetch type: %w", err)
	}
	if !ok {
		return domain.VehicleType{}, ErrNotFound
	}
	return t, nil
}

func (a *App) CreateVehicleType(name string) (domain.VehicleType, error) {
	created, err := a.store.CreateVehicleType(domain.VehicleType{Name: strings.TrimSpace(name)})
	if err != nil {
		return domain.VehicleType{}, fmt.Errorf("save type: %w", err)
	}
	return created, nil
}

func (a *App) UpdateVehicleType(id uint, name string) (domain.VehicleType, error) {
	ok, err := a.store.UpdateVehicleType(domain.VehicleType{ID: id, Name: strings.TrimSpace(name)})
	if err != nil {
		return domain.VehicleType{}, fmt.Errorf("update type: %w", err)
	}
	if !ok {
		return domain.VehicleType{}, ErrNotFound
	}
	return a.GetVehicleType(id)
}

func (a *App) DeleteVehicleType(id uint) error {
	ok, err := a.store.DeleteVehicleType(id)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return ErrResourceInUse
		}
		return fmt.Errorf("delete type: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
