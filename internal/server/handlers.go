// Package server is a wire-compatible implementation of the employee
// directory REST service, used for local development and end-to-end tests.
// Responses follow the directory's conventions: bare JSON arrays and
// objects on success, {"field": ["msg"]} maps for validation failures and
// {"detail": "..."} for everything else.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"empdir/internal/domain/directory"
)

type Handler struct {
	store Store
	// now anchors hire-date validation; overridable in tests.
	now func() time.Time
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not list employees")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	emp, err := h.store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not load employee")
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	normalizeDraft(&draft)

	if issues := h.validate(r, draft, 0); len(issues) > 0 {
		writeFieldErrors(w, issues)
		return
	}

	email, err := deriveEmail(r.Context(), h.store, draft.FirstName, draft.FirstSurname, draft.EmploymentCountry)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not allocate employee email")
		return
	}

	emp := recordFromDraft(draft)
	emp.Email = email
	emp.Status = directory.StatusActive
	emp.CreatedAt = h.now().UTC()

	created, err := h.store.Create(r.Context(), emp)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not create employee")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	current, err := h.store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not load employee")
		return
	}

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	normalizeDraft(&draft)

	if issues := h.validate(r, draft, id); len(issues) > 0 {
		writeFieldErrors(w, issues)
		return
	}

	// Email and creation time survive the update untouched.
	emp := recordFromDraft(draft)
	emp.Email = current.Email
	emp.Status = current.Status
	emp.CreatedAt = current.CreatedAt
	updatedAt := h.now().UTC()
	emp.UpdatedAt = &updatedAt

	updated, err := h.store.Update(r.Context(), id, emp)
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not update employee")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(w, r)
	if !ok {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not delete employee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validate runs the shared draft rules plus the server-only uniqueness
// check on (id_type, id_number).
func (h *Handler) validate(r *http.Request, draft directory.Draft, excludeID int64) []directory.ValidationIssue {
	issues := directory.ValidateDraft(draft, h.now())

	if draft.IDType != "" && draft.IDNumber != "" {
		exists, err := h.store.IdentityExists(r.Context(), draft.IDType, draft.IDNumber, excludeID)
		if err != nil {
			slog.Warn("identity uniqueness check failed", "err", err)
		} else if exists {
			issues = append(issues, directory.ValidationIssue{
				Field:  "id_number",
				Reason: "an employee with this identification already exists",
			})
		}
	}
	return issues
}

// normalizeDraft applies the service-side name convention: trimmed,
// uppercased. The interactive client warns instead, but the service is the
// one that coerces.
func normalizeDraft(d *directory.Draft) {
	d.FirstName = strings.ToUpper(strings.TrimSpace(d.FirstName))
	d.OtherNames = strings.ToUpper(strings.TrimSpace(d.OtherNames))
	d.FirstSurname = strings.ToUpper(strings.TrimSpace(d.FirstSurname))
	d.SecondSurname = strings.ToUpper(strings.TrimSpace(d.SecondSurname))
	d.IDType = strings.ToUpper(strings.TrimSpace(d.IDType))
	d.IDNumber = strings.TrimSpace(d.IDNumber)
	d.EmploymentCountry = strings.ToUpper(strings.TrimSpace(d.EmploymentCountry))
	d.Department = strings.ToUpper(strings.TrimSpace(d.Department))
	d.HireDate = strings.TrimSpace(d.HireDate)
}

func recordFromDraft(d directory.Draft) directory.Employee {
	return directory.Employee{
		FirstName:         d.FirstName,
		OtherNames:        d.OtherNames,
		FirstSurname:      d.FirstSurname,
		SecondSurname:     d.SecondSurname,
		EmploymentCountry: d.EmploymentCountry,
		IDType:            d.IDType,
		IDNumber:          d.IDNumber,
		HireDate:          d.HireDate,
		Department:        d.Department,
	}
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (directory.Draft, bool) {
	var draft directory.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeDetail(w, http.StatusBadRequest, "request body must be valid JSON")
		return draft, false
	}
	return draft, true
}

func employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "employeeID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeFieldErrors(w http.ResponseWriter, issues []directory.ValidationIssue) {
	fields := make(map[string][]string, len(issues))
	for _, issue := range issues {
		fields[issue.Field] = append(fields[issue.Field], issue.Reason)
	}
	writeJSON(w, http.StatusBadRequest, fields)
}
