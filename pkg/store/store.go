package store

import (
	"errors"

	"carlog/pkg/domain"
)

// Sentinel errors shared by all Store implementations. GormStore derives them
// from translated database errors, MemoryStore enforces them directly.
var (
	// ErrDuplicate reports a unique-constraint violation (e.g. admin email).
	ErrDuplicate = errors.New("duplicate value for unique column")
	// ErrForeignKey reports a reference to a row that does not exist.
	ErrForeignKey = errors.New("referenced row does not exist")
)

// Store defines persistence operations for every resource of the service book.
// Get methods return (zero, false, nil) when the row is absent; Update and
// Delete report absence through their bool result.
type Store interface {
	// admins
	CreateAdmin(domain.Admin) (domain.Admin, error)
	UpdateAdmin(domain.Admin) (bool, error)
	GetAdminByID(id uint) (domain.Admin, bool, error)
	GetAdminByEmail(email string) (domain.Admin, bool, error)
	HasAdminEmail(email string, excludeID uint) (bool, error)
	ListAdmins() ([]domain.Admin, error)
	DeleteAdmin(id uint) (bool, error)
	AdminCount() (int, error)

	// users
	CreateUser(domain.User) (domain.User, error)
	UpdateUser(domain.User) (bool, error)
	GetUserByID(id uint) (domain.User, bool, error)
	HasUserEmail(email string, excludeID uint) (bool, error)
	ListUsers() ([]domain.User, error)
	DeleteUser(id uint) (bool, error)

	// pros
	CreatePro(domain.Pro) (domain.Pro, error)
	UpdatePro(domain.Pro) (bool, error)
	GetProByID(id uint) (domain.Pro, bool, error)
	ListPros() ([]domain.Pro, error)
	DeletePro(id uint) (bool, error)

	// brands
	CreateBrand(domain.Brand) (domain.Brand, error)
	UpdateBrand(domain.Brand) (bool, error)
	GetBrandByID(id uint) (domain.Brand, bool, error)
	ListBrands() ([]domain.Brand, error)
	DeleteBrand(id uint) (bool, error)

	// models
	CreateModel(domain.Model) (domain.Model, error)
	UpdateModel(domain.Model) (bool, error)
	GetModelByID(id uint) (domain.Model, bool, error)
	ListModels() ([]domain.Model, error)
	DeleteModel(id uint) (bool, error)

	// vehicle types
	CreateVehicleType(domain.VehicleType) (domain.VehicleType, error)
	UpdateVehicleType(domain.VehicleType) (bool, error)
	GetVehicleTypeByID(id uint) (domain.VehicleType, bool, error)
	ListVehicleTypes() ([]domain.VehicleType, error)
	DeleteVehicleType(id uint) (bool, error)

	// vehicles, keyed by registration plate
	CreateVehicle(domain.Vehicle) (domain.Vehicle, error)
	UpdateVehicle(domain.Vehicle) (bool, error)
	GetVehicle(registration string) (domain.Vehicle, bool, error)
	ListVehicles() ([]domain.Vehicle, error)
	DeleteVehicle(registration string) (bool, error)

	// service records
	CreateServiceRecord(domain.ServiceRecord) (domain.ServiceRecord, error)
	UpdateServiceRecord(domain.ServiceRecord) (bool, error)
	GetServiceRecordByID(id uint) (domain.ServiceRecord, bool, error)
	ListServiceRecords() ([]domain.ServiceRecord, error)
	ListServiceRecordsByVehicle(registration string) ([]domain.ServiceRecord, error)
	DeleteServiceRecord(id uint) (bool, error)

	// appointments
	CreateAppointment(domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(domain.Appointment) (bool, error)
	GetAppointmentByID(id uint) (domain.Appointment, bool, error)
	ListAppointments() ([]domain.Appointment, error)
	DeleteAppointment(id uint) (bool, error)
}

// SessionStore issues and validates admin session tokens.
type SessionStore interface {
	NewSession(adminID uint) (string, error)
	AdminIDByToken(token string) (uint, bool, error)
	DeleteSession(token string) error
}
