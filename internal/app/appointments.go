package app

import (
	"errors"
	"fmt"
	"time"

	"carlog/pkg/domain"
	"carlog/pkg/store"
)

// AppointmentParams carries the validated fields of an appointment body.
type AppointmentParams struct {
	ScheduledAt         time.Time
	Reason              string
	Status              domain.AppointmentStatus
	UserID              uint
	ProID               uint
	VehicleRegistration string
}

func (a *App) ListAppointments() ([]domain.Appointment, error) {
	return a.store.ListAppointments()
}

func (a *App) GetAppointment(id uint) (domain.Appointment, error) {
	appt, ok, err := a.store.GetAppointmentByID(id)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("fetch appointment: %w", err)
	}
	if !ok {
		return domain.Appointment{}, ErrNotFound
	}
	return appt, nil
}

// CreateAppointment books a slot; new appointments start out pending unless
// the caller sets a status explicitly.
func (a *App) CreateAppointment(p AppointmentParams) (domain.Appointment, error) {
	status := p.Status
	if status == "" {
		status = domain.AppointmentPending
	}
	now := time.Now().UTC()
	appt := domain.Appointment{
		ScheduledAt: p.ScheduledAt,
		Reason:      p.Reason,
		Status:      status,
		UserID:      p.UserID,
		ProID:       p.ProID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.VehicleRegistration != "" {
		appt.VehicleRegistration = normalizeRegistration(p.VehicleRegistration)
	}
	created, err := a.store.CreateAppointment(appt)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.Appointment{}, ErrUnknownReference
		}
		return domain.Appointment{}, fmt.Errorf("save appointment: %w", err)
	}
	return created, nil
}

func (a *App) UpdateAppointment(id uint, p AppointmentParams) (domain.Appointment, error) {
	current, ok, err := a.store.GetAppointmentByID(id)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("fetch appointment: %w", err)
	}
	if !ok {
		return domain.Appointment{}, ErrNotFound
	}
	status := p.Status
	if status == "" {
		status = current.Status
	}
	appt := domain.Appointment{
		ID:          id,
		ScheduledAt: p.ScheduledAt,
		Reason:      p.Reason,
		Status:      status,
		UserID:      p.UserID,
		ProID:       p.ProID,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if p.VehicleRegistration != "" {
		appt.VehicleRegistration = normalizeRegistration(p.VehicleRegistration)
	}
	ok, err = a.store.UpdateAppointment(appt)
	if err != nil {
		if errors.Is(err, store.ErrForeignKey) {
			return domain.Appointment{}, ErrUnknownReference
		}
		return domain.Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	if !ok {
		return domain.Appointment{}, ErrNotFound
	}
	return appt, nil
}

func (a *App) DeleteAppointment(id uint) error {
	ok, err := a.store.DeleteAppointment(id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
