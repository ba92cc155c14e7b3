package server

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"carlog/pkg/domain"
)

var seedSeq atomic.Uint64

// seedCatalog creates the rows a vehicle references. Names and emails carry a
// sequence number so repeated seeds within one test do not trip the unique
// constraints.
func (ts *testServer) seedCatalog(t *testing.T, token string) (userID, brandID, modelID, typeID, proID uint) {
	t.Helper()
	seq := seedSeq.Add(1)
	var created struct {
		ID uint `json:"id"`
	}

	rec := ts.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"firstname": "Jean",
		"lastname":  "Dupont",
		"email":     fmt.Sprintf("owner-%d@example.com", seq),
		"password":  "long enough password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &created)
	userID = created.ID

	rec = ts.do(t, http.MethodPost, "/api/brands", token, map[string]any{"name": fmt.Sprintf("Renault-%d", seq)})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create brand status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &created)
	brandID = created.ID

	rec = ts.do(t, http.MethodPost, "/api/models", token, map[string]any{"name": "Clio", "brandId": brandID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create model status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &created)
	modelID = created.ID

	rec = ts.do(t, http.MethodPost, "/api/types", token, map[string]any{"name": "car"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create type status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &created)
	typeID = created.ID

	rec = ts.do(t, http.MethodPost, "/api/pros", token, map[string]any{"name": "Garage Martin"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create pro status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &created)
	proID = created.ID
	return
}

func (ts *testServer) seedVehicle(t *testing.T, token, plate string) (string, uint) {
	t.Helper()
	userID, brandID, modelID, typeID, proID := ts.seedCatalog(t, token)
	rec := ts.do(t, http.MethodPost, "/api/vehicles", token, map[string]any{
		"registration": plate,
		"userId":       userID,
		"brandId":      brandID,
		"modelId":      modelID,
		"typeId":       typeID,
		"color":        "blue",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create vehicle status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Registration string `json:"registration"`
	}
	decodeBody(t, rec, &created)
	return created.Registration, proID
}

func TestUsersArePublic(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"firstname": "Jean",
		"lastname":  "Dupont",
		"email":     "jean@example.com",
		"password":  "long enough password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/users", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var users []domain.User
	decodeBody(t, rec, &users)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestUserResponseHidesPasswordHash(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"firstname": "Jean",
		"lastname":  "Dupont",
		"email":     "jean@example.com",
		"password":  "long enough password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var raw map[string]any
	decodeBody(t, rec, &raw)
	for _, key := range []string{"password", "passwordHash", "hashedPassword"} {
		if _, ok := raw[key]; ok {
			t.Fatalf("user response leaks %q", key)
		}
	}
}

func TestUserUpdateKeepsPasswordWhenOmitted(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"firstname": "Jean",
		"lastname":  "Dupont",
		"email":     "jean@example.com",
		"password":  "long enough password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &created)

	before, _, _ := ts.store.GetUserByID(created.ID)
	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID), "", map[string]any{
		"firstname": "Renamed",
		"lastname":  "Dupont",
		"email":     "jean@example.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	after, _, _ := ts.store.GetUserByID(created.ID)
	if after.PasswordHash != before.PasswordHash {
		t.Fatalf("password hash changed on update without password")
	}
	if after.Firstname != "Renamed" {
		t.Fatalf("firstname = %q, want Renamed", after.Firstname)
	}
}

func TestVehicleLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	plate, _ := ts.seedVehicle(t, token, "ab-123-cd")

	// Plates are normalized to uppercase.
	if plate != "AB-123-CD" {
		t.Fatalf("stored plate = %q, want AB-123-CD", plate)
	}

	rec := ts.do(t, http.MethodGet, "/api/vehicles/AB-123-CD", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/vehicles/ZZ-999-ZZ", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get unknown status = %d, want 404", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, "/api/vehicles/AB-123-CD", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = ts.do(t, http.MethodGet, "/api/vehicles/AB-123-CD", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestVehicleDuplicatePlateConflicts(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	_, _ = ts.seedVehicle(t, token, "AB-123-CD")

	userID, brandID, modelID, typeID, _ := ts.seedCatalog(t, token)
	rec := ts.do(t, http.MethodPost, "/api/vehicles", token, map[string]any{
		"registration": "AB-123-CD",
		"userId":       userID,
		"brandId":      brandID,
		"modelId":      modelID,
		"typeId":       typeID,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
}

func TestVehicleUnknownReferenceRejected(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	userID, _, modelID, typeID, _ := ts.seedCatalog(t, token)

	rec := ts.do(t, http.MethodPost, "/api/vehicles", token, map[string]any{
		"registration": "EF-456-GH",
		"userId":       userID,
		"brandId":      999,
		"modelId":      modelID,
		"typeId":       typeID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestBrandDuplicateNameConflicts(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	rec := ts.do(t, http.MethodPost, "/api/brands", token, map[string]any{"name": "Renault"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	rec = ts.do(t, http.MethodPost, "/api/brands", token, map[string]any{"name": "renault"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
}

func TestReferencedProDeleteConflicts(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	plate, proID := ts.seedVehicle(t, token, "AB-123-CD")

	rec := ts.do(t, http.MethodPost, "/api/service-records", token, map[string]any{
		"date":                "2024-03-01T00:00:00Z",
		"service":             "oil change",
		"kilometrage":         120000,
		"proId":               proID,
		"vehicleRegistration": plate,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create record status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/pros/%d", proID), token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete pro status = %d, want 409", rec.Code)
	}
}

func TestServiceRecordLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	plate, proID := ts.seedVehicle(t, token, "AB-123-CD")

	rec := ts.do(t, http.MethodPost, "/api/service-records", token, map[string]any{
		"date":                "2024-03-01T00:00:00Z",
		"service":             "oil change",
		"observations":        "5W30",
		"kilometrage":         120000,
		"proId":               proID,
		"vehicleRegistration": plate,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &created)

	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/service-records/%d", created.ID), token, map[string]any{
		"date":                "2024-03-01T00:00:00Z",
		"service":             "oil change + filter",
		"kilometrage":         120000,
		"proId":               proID,
		"vehicleRegistration": plate,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Service string `json:"service"`
	}
	decodeBody(t, rec, &updated)
	if updated.Service != "oil change + filter" {
		t.Fatalf("service = %q after update", updated.Service)
	}

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/service-records/%d", created.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/service-records/%d", created.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestVehicleServiceBookSortedByDate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	plate, proID := ts.seedVehicle(t, token, "AB-123-CD")

	for _, date := range []string{"2024-06-01T00:00:00Z", "2024-01-01T00:00:00Z"} {
		rec := ts.do(t, http.MethodPost, "/api/service-records", token, map[string]any{
			"date":                date,
			"service":             "service",
			"proId":               proID,
			"vehicleRegistration": plate,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	rec := ts.do(t, http.MethodGet, "/api/vehicles/AB-123-CD/service-records", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var records []domain.ServiceRecord
	decodeBody(t, rec, &records)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].Date.Before(records[1].Date) {
		t.Fatalf("records not in date order: %v then %v", records[0].Date, records[1].Date)
	}
}

func TestAppointmentDefaultsToPending(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	userID, _, _, _, proID := ts.seedCatalog(t, token)

	rec := ts.do(t, http.MethodPost, "/api/appointments", token, map[string]any{
		"scheduledAt": "2024-05-01T09:00:00Z",
		"reason":      "yearly inspection",
		"userId":      userID,
		"proId":       proID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, rec, &created)
	if created.Status != "pending" {
		t.Fatalf("status = %q, want pending", created.Status)
	}

	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/appointments/%d", created.ID), token, map[string]any{
		"scheduledAt": "2024-05-02T09:00:00Z",
		"reason":      "yearly inspection",
		"status":      "confirmed",
		"userId":      userID,
		"proId":       proID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Status string `json:"status"`
	}
	decodeBody(t, rec, &updated)
	if updated.Status != "confirmed" {
		t.Fatalf("status = %q, want confirmed", updated.Status)
	}
}

func TestAppointmentRejectsInvalidStatus(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	userID, _, _, _, proID := ts.seedCatalog(t, token)

	rec := ts.do(t, http.MethodPost, "/api/appointments", token, map[string]any{
		"scheduledAt": "2024-05-01T09:00:00Z",
		"reason":      "inspection",
		"status":      "maybe",
		"userId":      userID,
		"proId":       proID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestAppointmentUnknownUserRejected(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	_, _, _, _, proID := ts.seedCatalog(t, token)

	rec := ts.do(t, http.MethodPost, "/api/appointments", token, map[string]any{
		"scheduledAt": "2024-05-01T09:00:00Z",
		"reason":      "inspection",
		"userId":      999,
		"proId":       proID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}
