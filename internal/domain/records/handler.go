package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"health-vault/internal/middleware"
	"health-vault/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc))
		rr.Get("/", listRecordsHandler(svc))
	})
}

// createRecordRequest es el cuerpo para registrar un nuevo registro médico.
type createRecordRequest struct {
	Category   Category `json:"category" enums:"lab_result,prescription,imaging,diagnosis,vaccination,allergy,note"`
	Title      string   `json:"title"`
	Notes      string   `json:"notes"`
	RecordedAt string   `json:"recorded_at"` // RFC3339, opcional
}

// RecordResponse es la forma pública de un registro (también la usa shares).
type RecordResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Category   Category  `json:"category"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
	Status     Status    `json:"status"`
}

// createRecordHandler godoc
// @Summary Crear registro médico
// @Description Crea un registro médico del paciente autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createRecordRequest true "Datos del registro"
// @Success 201 {object} RecordResponse
// @Failure 400 {string} string "invalid json / recorded_at inválido / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RolePatient {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var recordedAt time.Time
		if strings.TrimSpace(req.RecordedAt) != "" {
			t, err := time.Parse(time.RFC3339, req.RecordedAt)
			if err != nil {
				http.Error(w, "recorded_at must be RFC3339", http.StatusBadRequest)
				return
			}
			recordedAt = t
		}

		rec, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Category:   req.Category,
			Title:      req.Title,
			Notes:      req.Notes,
			RecordedAt: recordedAt,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros propios
// @Description Lista los registros médicos del paciente autenticado, más recientes primero.
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param categories query string false "Lista CSV de categorías (ej: lab_result,imaging)"
// @Param limit query int false "Máximo de registros (1-200). Por defecto 50"
// @Success 200 {array} RecordResponse
// @Failure 400 {string} string "Parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != auth.RolePatient {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID, filter)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]RecordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, ToResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	var f ListFilter

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 200 {
			return ListFilter{}, errors.New("limit must be between 1 and 200")
		}
		f.Limit = n
	}

	if raw := strings.TrimSpace(q.Get("categories")); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			c := Category(strings.TrimSpace(p))
			if c == "" {
				continue
			}
			f.Categories = append(f.Categories, c)
		}
	}
	return f, nil
}

func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:         rec.ID,
		OwnerID:    rec.OwnerID,
		Category:   rec.Category,
		Title:      rec.Title,
		Notes:      rec.Notes,
		RecordedAt: rec.RecordedAt,
		CreatedAt:  rec.CreatedAt,
		Status:     rec.Status,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
