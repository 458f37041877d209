package formshandler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"enroll/internal/domain/submission"
	"enroll/internal/platform/metrics"
	"enroll/internal/platform/requestctx"
	"enroll/internal/transport/http/api"
	"enroll/internal/transport/http/middleware"
	"enroll/internal/transport/http/shared"
)

type Handler struct {
	Submissions *submission.Service
	Metrics     *metrics.Metrics
}

func NewHandler(submissions *submission.Service, collector *metrics.Metrics) *Handler {
	return &Handler{Submissions: submissions, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/forms", h.HandleSubmit)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/forms", h.HandleList)
		r.Get("/forms/export/csv", h.HandleExportCSV)
		r.Get("/forms/export/pdf", h.HandleExportPDF)
	})
}

// HandleSubmit is the public submission endpoint. The payload is validated
// server-side regardless of what the client form already checked, then
// encoded and persisted.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var sub submission.Submission
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sub); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	if issues := submission.Validate(&sub); len(issues) > 0 {
		h.Metrics.SubmissionsRejects.Inc()
		fields := make([]shared.ValidationIssue, 0, len(issues))
		for _, issue := range issues {
			fields = append(fields, shared.ValidationIssue{Field: issue.Field, Reason: issue.Reason})
		}
		shared.FailValidation(w, reqID, fields)
		return
	}

	id, err := h.Submissions.Submit(r.Context(), sub)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to store submission", reqID)
		return
	}

	h.Metrics.SubmissionsTotal.Inc()
	api.Created(w, map[string]int64{"id": id}, reqID)
}

// HandleList returns decoded submissions, newest first. Rows that fail to
// decode are dropped and only counted.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	records, undecodable, err := h.Submissions.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to load submissions", reqID)
		return
	}
	h.countDecodeFailures(undecodable)

	api.Success(w, map[string]any{
		"records":     records,
		"undecodable": undecodable,
	}, reqID)
}

func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	records, undecodable, err := h.Submissions.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to load submissions", reqID)
		return
	}
	h.countDecodeFailures(undecodable)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.csv"`)

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{
		"id", "createdAt", "type",
		"name", "surname", "gender", "pesel", "birthDate", "email", "phone",
		"street", "houseNumber", "flatNumber", "zip", "postOffice", "city", "country", "region",
		"familyName", "familySurname", "familyGender", "familyIdentityMethod",
		"familyPesel", "familyBirthDate", "familyDocumentType", "familyDocNumber", "familyIssuingCountry",
	})
	for _, rec := range records {
		emp := rec.Submission.Employee
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			string(rec.Submission.Type),
			emp.Name, emp.Surname, emp.Gender, emp.Pesel, emp.BirthDate, emp.Email, emp.Phone,
			emp.Address.Street, emp.Address.HouseNumber, emp.Address.FlatNumber, emp.Address.Zip,
			emp.Address.PostOffice, emp.Address.City, emp.Address.Country, emp.Address.Region,
		}
		if member := rec.Submission.Family; member != nil {
			row = append(row,
				member.Name, member.Surname, member.Gender, string(member.IdentityMethod),
				member.Pesel, member.BirthDate, member.DocumentType, member.DocNumber, member.IssuingCountry,
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "", "")
		}
		_ = writer.Write(row)
	}
	writer.Flush()
}

func (h *Handler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	records, undecodable, err := h.Submissions.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to load submissions", reqID)
		return
	}
	h.countDecodeFailures(undecodable)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Form submissions")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)

	for _, rec := range records {
		emp := rec.Submission.Employee
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("#%d  %s %s (%s)", rec.ID, emp.Name, emp.Surname, rec.Submission.Type))
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Submitted: %s   PESEL: %s   Born: %s", rec.CreatedAt.Format("2006-01-02"), emp.Pesel, emp.BirthDate))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Contact: %s, %s", emp.Email, emp.Phone))
		pdf.Ln(5)
		if member := rec.Submission.Family; member != nil {
			pdf.Cell(0, 6, fmt.Sprintf("Family member: %s %s, born %s (%s)", member.Name, member.Surname, member.BirthDate, member.IdentityMethod))
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.pdf"`)
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "failed to render export", reqID)
	}
}

func (h *Handler) countDecodeFailures(n int) {
	if n > 0 {
		h.Metrics.DecodeFailures.Add(float64(n))
	}
}
