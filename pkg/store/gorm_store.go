package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"carlog/pkg/domain"
)

const migrateLockID int64 = 52415241

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations under an advisory lock so
// concurrent instances do not race on schema changes.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&AdminModel{},
			&UserModel{},
			&ProModel{},
			&BrandModel{},
			&ModelModel{},
			&VehicleTypeModel{},
			&VehicleModel{},
			&ServiceRecordModel{},
			&AppointmentModel{},
		)
	}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)"); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)")
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string) error {
	_, err := conn.ExecContext(ctx, query, migrateLockID)
	return err
}

// translateErr maps gorm's translated driver errors onto store sentinels so
// callers never import gorm.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	default:
		return err
	}
}

// admins

func (s *GormStore) CreateAdmin(a domain.Admin) (domain.Admin, error) {
	model := adminToModel(a)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Admin{}, translateErr(err)
	}
	return adminFromModel(model), nil
}

func (s *GormStore) UpdateAdmin(a domain.Admin) (bool, error) {
	model := adminToModel(a)
	res := s.db.Model(&AdminModel{}).Where("id = ?", a.ID).
		Select("firstname", "lastname", "email", "password_hash", "role", "updated_at").
		Updates(&model)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetAdminByID(id uint) (domain.Admin, bool, error) {
	var model AdminModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Admin{}, false, nil
		}
		return domain.Admin{}, false, err
	}
	return adminFromModel(model), true, nil
}

func (s *GormStore) GetAdminByEmail(email string) (domain.Admin, bool, error) {
	var model AdminModel
	if err := s.db.First(&model, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Admin{}, false, nil
		}
		return domain.Admin{}, false, err
	}
	return adminFromModel(model), true, nil
}

func (s *GormStore) HasAdminEmail(email string, excludeID uint) (bool, error) {
	var count int64
	tx := s.db.Model(&AdminModel{}).Where("email = ?", email)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListAdmins() ([]domain.Admin, error) {
	var models []AdminModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Admin, 0, len(models))
	for _, m := range models {
		res = append(res, adminFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteAdmin(id uint) (bool, error) {
	res := s.db.Delete(&AdminModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) AdminCount() (int, error) {
	var count int64
	if err := s.db.Model(&AdminModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// users

func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	model := userToModel(u)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, translateErr(err)
	}
	return userFromModel(model), nil
}

func (s *GormStore) UpdateUser(u domain.User) (bool, error) {
	model := userToModel(u)
	res := s.db.Model(&UserModel{}).Where("id = ?", u.ID).
		Select("firstname", "lastname", "email", "password_hash", "phone", "address", "postal_code", "city", "updated_at").
		Updates(&model)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetUserByID(id uint) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

func (s *GormStore) HasUserEmail(email string, excludeID uint) (bool, error) {
	var count int64
	tx := s.db.Model(&UserModel{}).Where("email = ?", email)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteUser(id uint) (bool, error) {
	res := s.db.Delete(&UserModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// pros

func (s *GormStore) CreatePro(p domain.Pro) (domain.Pro, error) {
	model := proToModel(p)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Pro{}, translateErr(err)
	}
	return proFromModel(model), nil
}

func (s *GormStore) UpdatePro(p domain.Pro) (bool, error) {
	model := proToModel(p)
	res := s.db.Model(&ProModel{}).Where("id = ?", p.ID).
		Select("name", "email", "phone", "address", "postal_code", "city", "siret", "updated_at").
		Updates(&model)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetProByID(id uint) (domain.Pro, bool, error) {
	var model ProModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Pro{}, false, nil
		}
		return domain.Pro{}, false, err
	}
	return proFromModel(model), true, nil
}

func (s *GormStore) ListPros() ([]domain.Pro, error) {
	var models []ProModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Pro, 0, len(models))
	for _, m := range models {
		res = append(res, proFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeletePro(id uint) (bool, error) {
	res := s.db.Delete(&ProModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// brands

func (s *GormStore) CreateBrand(b domain.Brand) (domain.Brand, error) {
	model := BrandModel{ID: b.ID, Name: b.Name}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Brand{}, translateErr(err)
	}
	return domain.Brand{ID: model.ID, Name: model.Name}, nil
}

func (s *GormStore) UpdateBrand(b domain.Brand) (bool, error) {
	res := s.db.Model(&BrandModel{}).Where("id = ?", b.ID).Update("name", b.Name)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetBrandByID(id uint) (domain.Brand, bool, error) {
	var model BrandModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Brand{}, false, nil
		}
		return domain.Brand{}, false, err
	}
	return domain.Brand{ID: model.ID, Name: model.Name}, true, nil
}

func (s *GormStore) ListBrands() ([]domain.Brand, error) {
	var models []BrandModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Brand, 0, len(models))
	for _, m := range models {
		res = append(res, domain.Brand{ID: m.ID, Name: m.Name})
	}
	return res, nil
}

func (s *GormStore) DeleteBrand(id uint) (bool, error) {
	res := s.db.Delete(&BrandModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// models

func (s *GormStore) CreateModel(m domain.Model) (domain.Model, error) {
	model := ModelModel{ID: m.ID, Name: m.Name, BrandID: m.BrandID}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Model{}, translateErr(err)
	}
	return domain.Model{ID: model.ID, Name: model.Name, BrandID: model.BrandID}, nil
}

func (s *GormStore) UpdateModel(m domain.Model) (bool, error) {
	res := s.db.Model(&ModelModel{}).Where("id = ?", m.ID).
		Select("name", "brand_id").
		Updates(&ModelModel{Name: m.Name, BrandID: m.BrandID})
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetModelByID(id uint) (domain.Model, bool, error) {
	var model ModelModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Model{}, false, nil
		}
		return domain.Model{}, false, err
	}
	return domain.Model{ID: model.ID, Name: model.Name, BrandID: model.BrandID}, true, nil
}

func (s *GormStore) ListModels() ([]domain.Model, error) {
	var models []ModelModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Model, 0, len(models))
	for _, m := range models {
		res = append(res, domain.Model{ID: m.ID, Name: m.Name, BrandID: m.BrandID})
	}
	return res, nil
}

func (s *GormStore) DeleteModel(id uint) (bool, error) {
	res := s.db.Delete(&ModelModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// vehicle types

func (s *GormStore) CreateVehicleType(t domain.VehicleType) (domain.VehicleType, error) {
	model := VehicleTypeModel{ID: t.ID, Name: t.Name}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.VehicleType{}, translateErr(err)
	}
	return domain.VehicleType{ID: model.ID, Name: model.Name}, nil
}

func (s *GormStore) UpdateVehicleType(t domain.VehicleType) (bool, error) {
	res := s.db.Model(&VehicleTypeModel{}).Where("id = ?", t.ID).Update("name", t.Name)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetVehicleTypeByID(id uint) (domain.VehicleType, bool, error) {
	var model VehicleTypeModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VehicleType{}, false, nil
		}
		return domain.VehicleType{}, false, err
	}
	return domain.VehicleType{ID: model.ID, Name: model.Name}, true, nil
}

func (s *GormStore) ListVehicleTypes() ([]domain.VehicleType, error) {
	var models []VehicleTypeModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.VehicleType, 0, len(models))
	for _, m := range models {
		res = append(res, domain.VehicleType{ID: m.ID, Name: m.Name})
	}
	return res, nil
}

func (s *GormStore) DeleteVehicleType(id uint) (bool, error) {
	res := s.db.Delete(&VehicleTypeModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// vehicles

func (s *GormStore) CreateVehicle(v domain.Vehicle) (domain.Vehicle, error) {
	model := vehicleToModel(v)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Vehicle{}, translateErr(err)
	}
	return vehicleFromModel(model), nil
}

func (s *GormStore) UpdateVehicle(v domain.Vehicle) (bool, error) {
	model := vehicleToModel(v)
	res := s.db.Model(&VehicleModel{}).Where("registration = ?", v.Registration).
		Select("user_id", "brand_id", "model_id", "type_id", "color", "circulation_date", "updated_at").
		Updates(&model)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetVehicle(registration string) (domain.Vehicle, bool, error) {
	var model VehicleModel
	if err := s.db.First(&model, "registration = ?", registration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Vehicle{}, false, nil
		}
		return domain.Vehicle{}, false, err
	}
	return vehicleFromModel(model), true, nil
}

func (s *GormStore) ListVehicles() ([]domain.Vehicle, error) {
	var models []VehicleModel
	if err := s.db.Order("registration ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Vehicle, 0, len(models))
	for _, m := range models {
		res = append(res, vehicleFromModel(m))
	}
	return res, nil
}

// DeleteVehicle removes the vehicle; its service records go with it through
// the ON DELETE CASCADE constraint.
func (s *GormStore) DeleteVehicle(registration string) (bool, error) {
	res := s.db.Delete(&VehicleModel{}, "registration = ?", registration)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// service records

func (s *GormStore) CreateServiceRecord(r domain.ServiceRecord) (domain.ServiceRecord, error) {
	model := serviceRecordToModel(r)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.ServiceRecord{}, translateErr(err)
	}
	return serviceRecordFromModel(model), nil
}

func (s *GormStore) UpdateServiceRecord(r domain.ServiceRecord) (bool, error) {
	model := serviceRecordToModel(r)
	res := s.db.Model(&ServiceRecordModel{}).Where("id = ?", r.ID).
		Select("date", "service", "observations", "kilometrage", "invoice_url", "invoice_key", "pro_id", "vehicle_registration", "updated_at").
		Updates(&model)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetServiceRecordByID(id uint) (domain.ServiceRecord, bool, error) {
	var model ServiceRecordModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ServiceRecord{}, false, nil
		}
		return domain.ServiceRecord{}, false, err
	}
	return serviceRecordFromModel(model), true, nil
}

func (s *GormStore) ListServiceRecords() ([]domain.ServiceRecord, error) {
	return s.listServiceRecords()
}

func (s *GormStore) ListServiceRecordsByVehicle(registration string) ([]domain.ServiceRecord, error) {
	return s.listServiceRecords("vehicle_registration = ?", registration)
}

func (s *GormStore) listServiceRecords(conds ...any) ([]domain.ServiceRecord, error) {
	var models []ServiceRecordModel
	tx := s.db.Order("date ASC, id ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ServiceRecord, 0, len(models))
	for _, m := range models {
		res = append(res, serviceRecordFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteServiceRecord(id uint) (bool, error) {
	res := s.db.Delete(&ServiceRecordModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// appointments

func (s *GormStore) CreateAppointment(a domain.Appointment) (domain.Appointment, error) {
	model := appointmentToModel(a)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Appointment{}, translateErr(err)
	}
	return appointmentFromModel(model), nil
}

func (s *GormStore) UpdateAppointment(a domain.Appointment) (bool, error) {
	model := appointmentToModel(a)
	res := s.db.Model(&AppointmentModel{}).Where("id = ?", a.ID).
		Select("scheduled_at", "reason", "status", "user_id", "pro_id", "vehicle_registration", "updated_at").
		Updates(&model)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) GetAppointmentByID(id uint) (domain.Appointment, bool, error) {
	var model AppointmentModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Appointment{}, false, nil
		}
		return domain.Appointment{}, false, err
	}
	return appointmentFromModel(model), true, nil
}

func (s *GormStore) ListAppointments() ([]domain.Appointment, error) {
	var models []AppointmentModel
	if err := s.db.Order("scheduled_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		res = append(res, appointmentFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteAppointment(id uint) (bool, error) {
	res := s.db.Delete(&AppointmentModel{}, id)
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}
