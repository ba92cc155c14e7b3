package server

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func (ts *testServer) createRecord(t *testing.T, token string) uint {
	t.Helper()
	plate, proID := ts.seedVehicle(t, token, "AB-123-CD")
	rec := ts.do(t, http.MethodPost, "/api/service-records", token, map[string]any{
		"date":                "2024-03-01T00:00:00Z",
		"service":             "oil change",
		"proId":               proID,
		"vehicleRegistration": plate,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create record status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &created)
	return created.ID
}

func (ts *testServer) uploadInvoice(t *testing.T, token string, recordID uint, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("invoice", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/service-records/%d/invoice", recordID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, req)
	return rec
}

func TestInvoiceUploadAndDownload(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	recordID := ts.createRecord(t, token)

	rec := ts.uploadInvoice(t, token, recordID, "facture.pdf", []byte("%PDF-1.4 fake"))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}

	stored, _, err := ts.store.GetServiceRecordByID(recordID)
	if err != nil {
		t.Fatalf("fetch record: %v", err)
	}
	if stored.InvoiceKey == "" || !strings.HasPrefix(stored.InvoiceKey, "invoices/") {
		t.Fatalf("invoice key = %q, want invoices/ prefix", stored.InvoiceKey)
	}
	if !strings.HasSuffix(stored.InvoiceKey, ".pdf") {
		t.Fatalf("invoice key = %q, want .pdf extension", stored.InvoiceKey)
	}
	if data, ok := ts.objects.Get(stored.InvoiceKey); !ok || string(data) != "%PDF-1.4 fake" {
		t.Fatalf("object store content mismatch, ok=%v", ok)
	}

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/service-records/%d/invoice", recordID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		URL string `json:"url"`
	}
	decodeBody(t, rec, &res)
	if !strings.Contains(res.URL, stored.InvoiceKey) {
		t.Fatalf("url = %q, want link to %q", res.URL, stored.InvoiceKey)
	}
}

func TestInvoiceUploadReplacesPrevious(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	recordID := ts.createRecord(t, token)

	if rec := ts.uploadInvoice(t, token, recordID, "first.pdf", []byte("first")); rec.Code != http.StatusOK {
		t.Fatalf("first upload status = %d", rec.Code)
	}
	firstRecord, _, _ := ts.store.GetServiceRecordByID(recordID)

	if rec := ts.uploadInvoice(t, token, recordID, "second.pdf", []byte("second")); rec.Code != http.StatusOK {
		t.Fatalf("second upload status = %d", rec.Code)
	}
	secondRecord, _, _ := ts.store.GetServiceRecordByID(recordID)

	if firstRecord.InvoiceKey == secondRecord.InvoiceKey {
		t.Fatalf("expected a new object key on re-upload")
	}
	if _, ok := ts.objects.Get(firstRecord.InvoiceKey); ok {
		t.Fatalf("expected previous invoice object to be deleted")
	}
	if data, ok := ts.objects.Get(secondRecord.InvoiceKey); !ok || string(data) != "second" {
		t.Fatalf("expected replacement invoice content, ok=%v", ok)
	}
}

func TestInvoiceUploadRejectsUnknownExtension(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	recordID := ts.createRecord(t, token)

	rec := ts.uploadInvoice(t, token, recordID, "malware.exe", []byte("MZ"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	stored, _, _ := ts.store.GetServiceRecordByID(recordID)
	if stored.InvoiceKey != "" {
		t.Fatalf("rejected upload must not attach an invoice")
	}
}

func TestInvoiceDownloadWithoutInvoice(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	recordID := ts.createRecord(t, token)

	rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/service-records/%d/invoice", recordID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestInvoiceDownloadReturnsExternalURL(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)
	plate, proID := ts.seedVehicle(t, token, "EF-456-GH")

	rec := ts.do(t, http.MethodPost, "/api/service-records", token, map[string]any{
		"date":                "2024-03-01T00:00:00Z",
		"service":             "tires",
		"invoiceUrl":          "https://billing.example.com/invoice/42",
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

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/service-records/%d/invoice", created.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	var res struct {
		URL string `json:"url"`
	}
	decodeBody(t, rec, &res)
	if res.URL != "https://billing.example.com/invoice/42" {
		t.Fatalf("url = %q, want the stored external url", res.URL)
	}
}
