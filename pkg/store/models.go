package store

import (
	"time"

	"gorm.io/datatypes"

	"carlog/pkg/domain"
)

// GORM models used for persistence. Unique and foreign-key constraints live
// here; the application layer only translates the resulting errors.
type AdminModel struct {
	ID           uint   `gorm:"primaryKey"`
	Firstname    string `gorm:"not null"`
	Lastname     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Firstname    string `gorm:"not null"`
	Lastname     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	Phone        string
	Address      string
	PostalCode   string
	City         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Email      string
	Phone      string
	Address    string
	PostalCode string
	City       string
	Siret      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type BrandModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

type ModelModel struct {
	ID      uint       `gorm:"primaryKey"`
	Name    string     `gorm:"not null"`
	BrandID uint       `gorm:"not null;index"`
	Brand   BrandModel `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
}

type VehicleTypeModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

type VehicleModel struct {
	Registration    string `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index"`
	BrandID         uint   `gorm:"not null"`
	ModelID         uint   `gorm:"not null"`
	TypeID          uint   `gorm:"not null"`
	Color           string
	CirculationDate datatypes.Date
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User  UserModel        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Brand BrandModel       `gorm:"foreignKey:BrandID"`
	Model ModelModel       `gorm:"foreignKey:ModelID"`
	Type  VehicleTypeModel `gorm:"foreignKey:TypeID"`
}

type ServiceRecordModel struct {
	ID                  uint           `gorm:"primaryKey"`
	Date                datatypes.Date `gorm:"not null"`
	Service             string         `gorm:"not null"`
	Observations        string
	Kilometrage         int
	InvoiceURL          string
	InvoiceKey          string
	ProID               uint   `gorm:"not null;index"`
	VehicleRegistration string `gorm:"not null;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Pro     ProModel     `gorm:"foreignKey:ProID"`
	Vehicle VehicleModel `gorm:"foreignKey:VehicleRegistration;references:Registration;constraint:OnDelete:CASCADE"`
}

type AppointmentModel struct {
	ID                  uint      `gorm:"primaryKey"`
	ScheduledAt         time.Time `gorm:"not null;index"`
	Reason              string    `gorm:"not null"`
	Status              string    `gorm:"not null"`
	UserID              uint      `gorm:"not null;index"`
	ProID               uint      `gorm:"not null;index"`
	VehicleRegistration *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	User UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Pro  ProModel  `gorm:"foreignKey:ProID"`
}

func adminToModel(a domain.Admin) AdminModel {
	return AdminModel{
		ID:           a.ID,
		Firstname:    a.Firstname,
		Lastname:     a.Lastname,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func adminFromModel(m AdminModel) domain.Admin {
	return domain.Admin{
		ID:           m.ID,
		Firstname:    m.Firstname,
		Lastname:     m.Lastname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.AdminRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Address:      u.Address,
		PostalCode:   u.PostalCode,
		City:         u.City,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Firstname:    m.Firstname,
		Lastname:     m.Lastname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Address:      m.Address,
		PostalCode:   m.PostalCode,
		City:         m.City,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func proToModel(p domain.Pro) ProModel {
	return ProModel{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		PostalCode: p.PostalCode,
		City:       p.City,
		Siret:      p.Siret,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func proFromModel(m ProModel) domain.Pro {
	return domain.Pro{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		PostalCode: m.PostalCode,
		City:       m.City,
		Siret:      m.Siret,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func vehicleToModel(v domain.Vehicle) VehicleModel {
	return VehicleModel{
		Registration:    v.Registration,
		UserID:          v.UserID,
		BrandID:         v.BrandID,
		ModelID:         v.ModelID,
		TypeID:          v.TypeID,
		Color:           v.Color,
		CirculationDate: datatypes.Date(v.CirculationDate),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func vehicleFromModel(m VehicleModel) domain.Vehicle {
	return domain.Vehicle{
		Registration:    m.Registration,
		UserID:          m.UserID,
		BrandID:         m.BrandID,
		ModelID:         m.ModelID,
		TypeID:          m.TypeID,
		Color:           m.Color,
		CirculationDate: time.Time(m.CirculationDate),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func serviceRecordToModel(r domain.ServiceRecord) ServiceRecordModel {
	return ServiceRecordModel{
		ID:                  r.ID,
		Date:                datatypes.Date(r.Date),
		Service:             r.Service,
		Observations:        r.Observations,
		Kilometrage:         r.Kilometrage,
		InvoiceURL:          r.InvoiceURL,
		InvoiceKey:          r.InvoiceKey,
		ProID:               r.ProID,
		VehicleRegistration: r.VehicleRegistration,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func serviceRecordFromModel(m ServiceRecordModel) domain.ServiceRecord {
	return domain.ServiceRecord{
		ID:                  m.ID,
		Date:                time.Time(m.Date),
		Service:             m.Service,
		Observations:        m.Observations,
		Kilometrage:         m.Kilometrage,
		InvoiceURL:          m.InvoiceURL,
		InvoiceKey:          m.InvoiceKey,
		ProID:               m.ProID,
		VehicleRegistration: m.VehicleRegistration,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func appointmentToModel(a domain.Appointment) AppointmentModel {
	var registration *string
	if a.VehicleRegistration != "" {
		value := a.VehicleRegistration
		registration = &value
	}
	return AppointmentModel{
		ID:                  a.ID,
		ScheduledAt:         a.ScheduledAt,
		Reason:              a.Reason,
		Status:              string(a.Status),
		UserID:              a.UserID,
		ProID:               a.ProID,
		VehicleRegistration: registration,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func appointmentFromModel(m AppointmentModel) domain.Appointment {
	registration := ""
	if m.VehicleRegistration != nil {
		registration = *m.VehicleRegistration
	}
	status := domain.AppointmentStatus(m.Status)
	if status == "" {
		status = domain.AppointmentPending
	}
	return domain.Appointment{
		ID:                  m.ID,
		ScheduledAt:         m.ScheduledAt,
		Reason:              m.Reason,
		Status:              status,
		UserID:              m.UserID,
		ProID:               m.ProID,
		VehicleRegistration: registration,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func (ModelModel) TableName() string { return "vehicle_models" }
