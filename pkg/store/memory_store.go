package store

import (
	"sort"
	"strings"
	"sync"

	"carlog/pkg/domain"
)

// MemoryStore keeps every table in process memory. It mirrors the relational
// constraints of GormStore (unique indexes, foreign keys, cascades) so
// handler tests observe the same errors without a database.
type MemoryStore struct {
	mu sync.RWMutex

	admins       map[uint]domain.Admin
	users        map[uint]domain.User
	pros         map[uint]domain.Pro
	brands       map[uint]domain.Brand
	models       map[uint]domain.Model
	types        map[uint]domain.VehicleType
	vehicles     map[string]domain.Vehicle
	records      map[uint]domain.ServiceRecord
	appointments map[uint]domain.Appointment

	nextID map[string]uint
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:       make(map[uint]domain.Admin),
		users:        make(map[uint]domain.User),
		pros:         make(map[uint]domain.Pro),
		brands:       make(map[uint]domain.Brand),
		models:       make(map[uint]domain.Model),
		types:        make(map[uint]domain.VehicleType),
		vehicles:     make(map[string]domain.Vehicle),
		records:      make(map[uint]domain.ServiceRecord),
		appointments: make(map[uint]domain.Appointment),
		nextID:       make(map[string]uint),
	}
}

func (m *MemoryStore) allocID(table string) uint {
	m.nextID[table]++
	return m.nextID[table]
}

// admins

func (m *MemoryStore) CreateAdmin(a domain.Admin) (domain.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return domain.Admin{}, ErrDuplicate
		}
	}
	a.ID = m.allocID("admins")
	m.admins[a.ID] = a
	return a, nil
}

func (m *MemoryStore) UpdateAdmin(a domain.Admin) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.admins[a.ID]
	if !ok {
		return false, nil
	}
	for id, existing := range m.admins {
		if id != a.ID && strings.EqualFold(existing.Email, a.Email) {
			return false, ErrDuplicate
		}
	}
	a.CreatedAt = current.CreatedAt
	m.admins[a.ID] = a
	return true, nil
}

func (m *MemoryStore) GetAdminByID(id uint) (domain.Admin, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.admins[id]
	return a, ok, nil
}

func (m *MemoryStore) GetAdminByEmail(email string) (domain.Admin, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			return a, true, nil
		}
	}
	return domain.Admin{}, false, nil
}

func (m *MemoryStore) HasAdminEmail(email string, excludeID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, a := range m.admins {
		if id != excludeID && strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) ListAdmins() ([]domain.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) DeleteAdmin(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[id]; !ok {
		return false, nil
	}
	delete(m.admins, id)
	return true, nil
}

func (m *MemoryStore) AdminCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.admins), nil
}

// users

func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.User{}, ErrDuplicate
		}
	}
	u.ID = m.allocID("users")
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) UpdateUser(u domain.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.users[u.ID]
	if !ok {
		return false, nil
	}
	for id, existing := range m.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return false, ErrDuplicate
		}
	}
	u.CreatedAt = current.CreatedAt
	m.users[u.ID] = u
	return true, nil
}

func (m *MemoryStore) GetUserByID(id uint) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *MemoryStore) HasUserEmail(email string, excludeID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, u := range m.users {
		if id != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		res = append(res, u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// DeleteUser cascades to the user's vehicles (and their service records) and
// appointments, matching the database constraints.
func (m *MemoryStore) DeleteUser(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	for registration, v := range m.vehicles {
		if v.UserID == id {
			m.dropVehicleLocked(registration)
		}
	}
	for aid, a := range m.appointments {
		if a.UserID == id {
			delete(m.appointments, aid)
		}
	}
	delete(m.users, id)
	return true, nil
}

// pros

func (m *MemoryStore) CreatePro(p domain.Pro) (domain.Pro, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.allocID("pros")
	m.pros[p.ID] = p
	return p, nil
}

func (m *MemoryStore) UpdatePro(p domain.Pro) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.pros[p.ID]
	if !ok {
		return false, nil
	}
	p.CreatedAt = current.CreatedAt
	m.pros[p.ID] = p
	return true, nil
}

func (m *MemoryStore) GetProByID(id uint) (domain.Pro, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pros[id]
	return p, ok, nil
}

func (m *MemoryStore) ListPros() ([]domain.Pro, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Pro, 0, len(m.pros))
	for _, p := range m.pros {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) DeletePro(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pros[id]; !ok {
		return false, nil
	}
	for _, r := range m.records {
		if r.ProID == id {
			return false, ErrForeignKey
		}
	}
	for _, a := range m.appointments {
		if a.ProID == id {
			return false, ErrForeignKey
		}
	}
	delete(m.pros, id)
	return true, nil
}

// brands

func (m *MemoryStore) CreateBrand(b domain.Brand) (domain.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.brands {
		if strings.EqualFold(existing.Name, b.Name) {
			return domain.Brand{}, ErrDuplicate
		}
	}
	b.ID = m.allocID("brands")
	m.brands[b.ID] = b
	return b, nil
}

func (m *MemoryStore) UpdateBrand(b domain.Brand) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[b.ID]; !ok {
		return false, nil
	}
	for id, existing := range m.brands {
		if id != b.ID && strings.EqualFold(existing.Name, b.Name) {
			return false, ErrDuplicate
		}
	}
	m.brands[b.ID] = b
	return true, nil
}

func (m *MemoryStore) GetBrandByID(id uint) (domain.Brand, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.brands[id]
	return b, ok, nil
}

func (m *MemoryStore) ListBrands() ([]domain.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Brand, 0, len(m.brands))
	for _, b := range m.brands {
		res = append(res, b)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// DeleteBrand cascades to the brand's models; it fails when a vehicle still
// references the brand or one of those models, like the database would.
func (m *MemoryStore) DeleteBrand(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[id]; !ok {
		return false, nil
	}
	for _, v := range m.vehicles {
		if v.BrandID == id {
			return false, ErrForeignKey
		}
		if model, ok := m.models[v.ModelID]; ok && model.BrandID == id {
			return false, ErrForeignKey
		}
	}
	for mid, model := range m.models {
		if model.BrandID == id {
			delete(m.models, mid)
		}
	}
	delete(m.brands, id)
	return true, nil
}

// models

func (m *MemoryStore) CreateModel(mod domain.Model) (domain.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.brands[mod.BrandID]; !ok {
		return domain.Model{}, ErrForeignKey
	}
	mod.ID = m.allocID("models")
	m.models[mod.ID] = mod
	return mod, nil
}

func (m *MemoryStore) UpdateModel(mod domain.Model) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.models[mod.ID]; !ok {
		return false, nil
	}
	if _, ok := m.brands[mod.BrandID]; !ok {
		return false, ErrForeignKey
	}
	m.models[mod.ID] = mod
	return true, nil
}

func (m *MemoryStore) GetModelByID(id uint) (domain.Model, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mod, ok := m.models[id]
	return mod, ok, nil
}

func (m *MemoryStore) ListModels() ([]domain.Model, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Model, 0, len(m.models))
	for _, mod := range m.models {
		res = append(res, mod)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) DeleteModel(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.models[id]; !ok {
		return false, nil
	}
	for _, v := range m.vehicles {
		if v.ModelID == id {
			return false, ErrForeignKey
		}
	}
	delete(m.models, id)
	return true, nil
}

// vehicle types

func (m *MemoryStore) CreateVehicleType(t domain.VehicleType) (domain.VehicleType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.allocID("types")
	m.types[t.ID] = t
	return t, nil
}

func (m *MemoryStore) UpdateVehicleType(t domain.VehicleType) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.types[t.ID]; !ok {
		return false, nil
	}
	m.types[t.ID] = t
	return true, nil
}

func (m *MemoryStore) GetVehicleTypeByID(id uint) (domain.VehicleType, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[id]
	return t, ok, nil
}

func (m *MemoryStore) ListVehicleTypes() ([]domain.VehicleType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.VehicleType, 0, len(m.types))
	for _, t := range m.types {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) DeleteVehicleType(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.types[id]; !ok {
		return false, nil
	}
	for _, v := range m.vehicles {
		if v.TypeID == id {
			return false, ErrForeignKey
		}
	}
	delete(m.types, id)
	return true, nil
}

// vehicles

func (m *MemoryStore) CreateVehicle(v domain.Vehicle) (domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.vehicles[v.Registration]; exists {
		return domain.Vehicle{}, ErrDuplicate
	}
	if err := m.checkVehicleRefsLocked(v); err != nil {
		return domain.Vehicle{}, err
	}
	m.vehicles[v.Registration] = v
	return v, nil
}

func (m *MemoryStore) UpdateVehicle(v domain.Vehicle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.vehicles[v.Registration]
	if !ok {
		return false, nil
	}
	if err := m.checkVehicleRefsLocked(v); err != nil {
		return false, err
	}
	v.CreatedAt = current.CreatedAt
	m.vehicles[v.Registration] = v
	return true, nil
}

func (m *MemoryStore) checkVehicleRefsLocked(v domain.Vehicle) error {
	if _, ok := m.users[v.UserID]; !ok {
		return ErrForeignKey
	}
	if _, ok := m.brands[v.BrandID]; !ok {
		return ErrForeignKey
	}
	if _, ok := m.models[v.ModelID]; !ok {
		return ErrForeignKey
	}
	if _, ok := m.types[v.TypeID]; !ok {
		return ErrForeignKey
	}
	return nil
}

func (m *MemoryStore) GetVehicle(registration string) (domain.Vehicle, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vehicles[registration]
	return v, ok, nil
}

func (m *MemoryStore) ListVehicles() ([]domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Registration < res[j].Registration })
	return res, nil
}

func (m *MemoryStore) DeleteVehicle(registration string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[registration]; !ok {
		return false, nil
	}
	m.dropVehicleLocked(registration)
	return true, nil
}

func (m *MemoryStore) dropVehicleLocked(registration string) {
	for rid, r := range m.records {
		if r.VehicleRegistration == registration {
			delete(m.records, rid)
		}
	}
	delete(m.vehicles, registration)
}

// service records

func (m *MemoryStore) CreateServiceRecord(r domain.ServiceRecord) (domain.ServiceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkRecordRefsLocked(r); err != nil {
		return domain.ServiceRecord{}, err
	}
	r.ID = m.allocID("records")
	m.records[r.ID] = r
	return r, nil
}

func (m *MemoryStore) UpdateServiceRecord(r domain.ServiceRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.records[r.ID]
	if !ok {
		return false, nil
	}
	if err := m.checkRecordRefsLocked(r); err != nil {
		return false, err
	}
	r.CreatedAt = current.CreatedAt
	m.records[r.ID] = r
	return true, nil
}

func (m *MemoryStore) checkRecordRefsLocked(r domain.ServiceRecord) error {
	if _, ok := m.pros[r.ProID]; !ok {
		return ErrForeignKey
	}
	if _, ok := m.vehicles[r.VehicleRegistration]; !ok {
		return ErrForeignKey
	}
	return nil
}

func (m *MemoryStore) GetServiceRecordByID(id uint) (domain.ServiceRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	return r, ok, nil
}

func (m *MemoryStore) ListServiceRecords() ([]domain.ServiceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedRecordsLocked(func(domain.ServiceRecord) bool { return true }), nil
}

func (m *MemoryStore) ListServiceRecordsByVehicle(registration string) ([]domain.ServiceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedRecordsLocked(func(r domain.ServiceRecord) bool {
		return r.VehicleRegistration == registration
	}), nil
}

func (m *MemoryStore) sortedRecordsLocked(keep func(domain.ServiceRecord) bool) []domain.ServiceRecord {
	res := make([]domain.ServiceRecord, 0, len(m.records))
	for _, r := range m.records {
		if keep(r) {
			res = append(res, r)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Date.Equal(res[j].Date) {
			return res[i].ID < res[j].ID
		}
		return res[i].Date.Before(res[j].Date)
	})
	return res
}

func (m *MemoryStore) DeleteServiceRecord(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	delete(m.records, id)
	return true, nil
}

// appointments

func (m *MemoryStore) CreateAppointment(a domain.Appointment) (domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAppointmentRefsLocked(a); err != nil {
		return domain.Appointment{}, err
	}
	a.ID = m.allocID("appointments")
	m.appointments[a.ID] = a
	return a, nil
}

func (m *MemoryStore) UpdateAppointment(a domain.Appointment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.appointments[a.ID]
	if !ok {
		return false, nil
	}
	if err := m.checkAppointmentRefsLocked(a); err != nil {
		return false, err
	}
	a.CreatedAt = current.CreatedAt
	m.appointments[a.ID] = a
	return true, nil
}

func (m *MemoryStore) checkAppointmentRefsLocked(a domain.Appointment) error {
	if _, ok := m.users[a.UserID]; !ok {
		return ErrForeignKey
	}
	if _, ok := m.pros[a.ProID]; !ok {
		return ErrForeignKey
	}
	return nil
}

func (m *MemoryStore) GetAppointmentByID(id uint) (domain.Appointment, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.appointments[id]
	return a, ok, nil
}

func (m *MemoryStore) ListAppointments() ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (m *MemoryStore) DeleteAppointment(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[id]; !ok {
		return false, nil
	}
	delete(m.appointments, id)
	return true, nil
}
