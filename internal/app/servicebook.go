package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"carlog/pkg/domain"
	"carlog/pkg/store"
)

// ServiceRecordParams carries the validated fields of a service record body.
type ServiceRecordParams struct {
	Date                time.Time
	Service             string
	Observations        string
	Kilometrage         int
	InvoiceURL          string
	ProID               uint
	VehicleRegistration string
}

func (a *App) ListServiceRecords() ([]domain.ServiceRecord, error) {
	return a.store.ListServiceRecords()
}

// ListVehicleServiceBook returns the full service history of one vehicle in
// date order.
func (a *App) ListVehicleServiceBook(registration string) ([]domain.ServiceRecord, error) {
	registration = normalizeRegistration(registration)
	if _, ok, err := a.store.GetVehicle(registration); err != nil {
		return nil, fmt.Errorf("fetch vehicle: %w", err)
	} else if !ok {
		return nil, ErrNotFound
	}
	return a.store.ListServiceRecordsByVehicle(registration)
}

func (a *App) GetServiceRecord(id uint) (domain.ServiceRecord, error) {
	record, ok, err := a.store.GetServiceRecordByID(id)
	if err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("fetch service record: %w", err)
	}
	if !ok {
		return domain.ServiceRecord{}, ErrNotFound
	}
	return record, nil
}

func (a *App) CreateServiceRecord(p ServiceRecordParams) (domain.ServiceRecord, error) {
	now := time.Now().UTC()
	record := domain.ServiceRecord{
		Date:                p.Date,
		Service:             p.Service,
		Observations:        p.Observations,
		Kilometrage:         p.Kilometrage,
		InvoiceURL:          p.InvoiceURL,
		ProID:               p.ProID,
		VehicleRegistration: normalizeRegistration(p.VehicleRegistration),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	created, err := a.store.CreateServiceRecord(record)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.ServiceRecord{}, ErrUnknownReference
		}
		return domain.ServiceRecord{}, fmt.Errorf("save service record: %w", err)
	}
	return created, nil
}

func (a *App) UpdateServiceRecord(id uint, p ServiceRecordParams) (domain.ServiceRecord, error) {
	current, ok, err := a.store.GetServiceRecordByID(id)
	if err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("fetch service record: %w", err)
	}
	if !ok {
		return domain.ServiceRecord{}, ErrNotFound
	}
	record := domain.ServiceRecord{
		ID:                  id,
		Date:                p.Date,
		Service:             p.Service,
		Observations:        p.Observations,
		Kilometrage:         p.Kilometrage,
		InvoiceURL:          p.InvoiceURL,
		InvoiceKey:          current.InvoiceKey,
		ProID:               p.ProID,
		VehicleRegistration: normalizeRegistration(p.VehicleRegistration),
		UpdatedAt:           time.Now().UTC(),
	}
	ok, err = a.store.UpdateServiceRecord(record)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.ServiceRecord{}, ErrUnknownReference
		}
		return domain.ServiceRecord{}, fmt.Errorf("update service record: %w", err)
	}
	if !ok {
		return domain.ServiceRecord{}, ErrNotFound
	}
	return a.GetServiceRecord(id)
}

func (a *App) DeleteServiceRecord(id uint) error {
	record, ok, err := a.store.GetServiceRecordByID(id)
	if err != nil {
		return fmt.Errorf("fetch service record: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if _, err := a.store.DeleteServiceRecord(id); err != nil {
		return fmt.Errorf("delete service record: %w", err)
	}
	if record.InvoiceKey != "" && a.objects != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// Best effort; an orphaned object is harmless.
		_ = a.objects.Delete(ctx, record.InvoiceKey)
	}
	return nil
}

// AttachInvoice uploads an invoice file for the record and stores its object
// key. Replacing an invoice overwrites the key; the old object is deleted.
func (a *App) AttachInvoice(ctx context.Context, id uint, filename string, r io.Reader, size int64, contentType string) (domain.ServiceRecord, error) {
	if a.objects == nil {
		return domain.ServiceRecord{}, ErrInvoiceStorageUnavailable
	}
	record, ok, err := a.store.GetServiceRecordByID(id)
	if err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("fetch service record: %w", err)
	}
	if !ok {
		return domain.ServiceRecord{}, ErrNotFound
	}
	key := "invoices/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	if err := a.objects.Put(ctx, key, r, size, contentType); err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("store invoice: %w", err)
	}
	oldKey := record.InvoiceKey
	record.InvoiceKey = key
	record.UpdatedAt = time.Now().UTC()
	if _, err := a.store.UpdateServiceRecord(record); err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("update service record: %w", err)
	}
	if oldKey != "" {
		_ = a.objects.Delete(ctx, oldKey)
	}
	return record, nil
}

// InvoiceLink returns a short-lived download URL for the record's invoice.
// Records created with an external invoice URL return that URL unchanged.
func (a *App) InvoiceLink(ctx context.Context, id uint) (string, error) {
	record, ok, err := a.store.GetServiceRecordByID(id)
	if err != nil {
		return "", fmt.Errorf("fetch service record: %w", err)
	}
	if !ok {
		return "", ErrNotFound
	}
	if record.InvoiceKey == "" {
		if record.InvoiceURL != "" {
			return record.InvoiceURL, nil
		}
		return "", ErrNoInvoice
	}
	if a.objects == nil {
		return "", ErrInvoiceStorageUnavailable
	}
	url, err := a.objects.PresignGet(ctx, record.InvoiceKey, a.invoiceTTL)
	if err != nil {
		return "", fmt.Errorf("presign invoice: %w", err)
	}
	return url, nil
}
