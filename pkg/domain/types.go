package domain

import "time"

type AdminRole string

const (
	RoleAdmin AdminRole = "admin"
	RoleStaff AdminRole = "staff"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Admin is a back-office operator account.
type Admin struct {
	ID           uint      `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"hashedPassword"`
	Role         AdminRole `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// User is a vehicle owner.
type User struct {
	ID           uint      `json:"id"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PostalCode   string    `json:"postalCode"`
	City         string    `json:"city"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Pro is a garage professional performing services.
type Pro struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postalCode"`
	City       string    `json:"city"`
	Siret      string    `json:"siret"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Brand struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Model struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	BrandID uint   `json:"brandId"`
}

// VehicleType categorizes vehicles (car, motorbike, utility...).
type VehicleType struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Vehicle is identified by its registration plate.
type Vehicle struct {
	Registration    string    `json:"registration"`
	UserID          uint      `json:"userId"`
	BrandID         uint      `json:"brandId"`
	ModelID         uint      `json:"modelId"`
	TypeID          uint      `json:"typeId"`
	Color           string    `json:"color"`
	CirculationDate time.Time `json:"circulationDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceRecord is one entry in a vehicle's service book.
type ServiceRecord struct {
	ID                  uint      `json:"id"`
	Date                time.Time `json:"date"`
	Service             string    `json:"service"`
	Observations        string    `json:"observations"`
	Kilometrage         int       `json:"kilometrage"`
	InvoiceURL          string    `json:"invoiceUrl,omitempty"`
	InvoiceKey          string    `json:"-"`
	ProID               uint      `json:"proId"`
	VehicleRegistration string    `json:"vehicleRegistration"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type Appointment struct {
	ID                  uint              `json:"id"`
	ScheduledAt         time.Time         `json:"scheduledAt"`
	Reason              string            `json:"reason"`
	Status              AppointmentStatus `json:"status"`
	UserID              uint              `json:"userId"`
	ProID               uint              `json:"proId"`
	VehicleRegistration string            `json:"vehicleRegistration,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}
