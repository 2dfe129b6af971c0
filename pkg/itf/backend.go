package itf

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// BackendRecord mirrors the registration backend's wire format. Seeded
// records without an ID get one assigned on insert.
type BackendRecord struct {
	ID               string `json:"_id,omitempty"`
	OwnerID          string `json:"ownerId"`
	PlateNo          string `json:"plateNo"`
	Manufacturer     string `json:"manufacturer"`
	Model            string `json:"model,omitempty"`
	ManufacturedYear int    `json:"manufacturedYear"`
	VehicleType      string `json:"vehicle"`
	Color            string `json:"color,omitempty"`
	Owner            string `json:"owner"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

type backendFailure struct {
	status  int
	message string
}

// Backend fakes the registration REST service for suite tests. Each
// operation can be forced to fail so error paths are reachable without a
// real backend.
type Backend struct {
	mu        sync.Mutex
	records   []BackendRecord
	nextID    int
	listCalls int

	failList   *backendFailure
	failCreate *backendFailure
	failUpdate *backendFailure
	failDelete *backendFailure

	server *httptest.Server
}

func NewBackend(tb testing.TB) *Backend {
	tb.Helper()

	b := &Backend{}
	r := mux.NewRouter()
	r.HandleFunc("/registrations", b.handleList).Methods(http.MethodGet)
	r.HandleFunc("/registrations/new", b.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/registrations/update/{id}", b.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/registrations/delete/{id}", b.handleDelete).Methods(http.MethodDelete)

	b.server = httptest.NewServer(r)
	tb.Cleanup(b.server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

// Seed inserts records directly into the store and returns the stored
// copies, IDs included.
func (b *Backend) Seed(records ...BackendRecord) []BackendRecord {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]BackendRecord, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			b.nextID++
			record.ID = fmt.Sprintf("veh-%d", b.nextID)
		}
		b.records = append(b.records, record)
		stored = append(stored, record)
	}
	return stored
}

// Records returns a snapshot of the store.
func (b *Backend) Records() []BackendRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]BackendRecord(nil), b.records...)
}

// ListCalls reports how many times the collection was fetched. Cache tests
// use it to prove a request was served without a backend round trip.
func (b *Backend) ListCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls
}

// FailListWith makes every collection fetch return the given error until
// RestoreList is called.
func (b *Backend) FailListWith(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failList = &backendFailure{status: status, message: message}
}

func (b *Backend) RestoreList() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failList = nil
}

func (b *Backend) FailCreateWith(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failCreate = &backendFailure{status: status, message: message}
}

func (b *Backend) FailUpdateWith(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failUpdate = &backendFailure{status: status, message: message}
}

func (b *Backend) FailDeleteWith(status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failDelete = &backendFailure{status: status, message: message}
}

func (b *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.listCalls++
	failure := b.failList
	records := append([]BackendRecord(nil), b.records...)
	b.mu.Unlock()

	if failure != nil {
		writeBackendError(w, failure)
		return
	}
	writeBackendJSON(w, http.StatusOK, map[string]any{
		"existingRegistrations": records,
	})
}

func (b *Backend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var record BackendRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeBackendError(w, &backendFailure{status: http.StatusBadRequest, message: "invalid payload"})
		return
	}

	b.mu.Lock()
	failure := b.failCreate
	if failure == nil {
		b.nextID++
		record.ID = fmt.Sprintf("veh-%d", b.nextID)
		b.records = append(b.records, record)
	}
	b.mu.Unlock()

	if failure != nil {
		writeBackendError(w, failure)
		return
	}
	writeBackendJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"registration": record,
	})
}

func (b *Backend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var record BackendRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeBackendError(w, &backendFailure{status: http.StatusBadRequest, message: "invalid payload"})
		return
	}

	b.mu.Lock()
	failure := b.failUpdate
	idx := -1
	if failure == nil {
		idx = b.indexOf(id)
		if idx >= 0 {
			record.ID = id
			b.records[idx] = record
		}
	}
	b.mu.Unlock()

	if failure != nil {
		writeBackendError(w, failure)
		return
	}
	if idx < 0 {
		writeBackendError(w, &backendFailure{status: http.StatusNotFound, message: "Registration not found"})
		return
	}
	writeBackendJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"registration": record,
	})
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b.mu.Lock()
	failure := b.failDelete
	var deleted *BackendRecord
	if failure == nil {
		if idx := b.indexOf(id); idx >= 0 {
			record := b.records[idx]
			deleted = &record
			b.records = append(b.records[:idx], b.records[idx+1:]...)
		}
	}
	b.mu.Unlock()

	if failure != nil {
		writeBackendError(w, failure)
		return
	}
	if deleted == nil {
		writeBackendError(w, &backendFailure{status: http.StatusNotFound, message: "Registration not found"})
		return
	}
	writeBackendJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"deletedRegistration": deleted,
	})
}

// indexOf must be called with the mutex held.
func (b *Backend) indexOf(id string) int {
	for i, record := range b.records {
		if record.ID == id {
			return i
		}
	}
	return -1
}

func writeBackendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeBackendError(w http.ResponseWriter, failure *backendFailure) {
	writeBackendJSON(w, failure.status, map[string]string{"error": failure.message})
}
