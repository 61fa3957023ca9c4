package shares

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"health-vault/internal/domain/records"
	"health-vault/internal/middleware"
	"health-vault/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Acciones del paciente dueño
	r.Route("/shares", func(sr chi.Router) {
		sr.Post("/", issueShareHandler(svc))
		sr.Get("/active", listActiveSharesHandler(svc))
		sr.Get("/history", listShareHistoryHandler(svc))
		sr.Post("/{grantID}/revoke", revokeShareHandler(svc))
	})

	// Acciones del médico que recibe el link/código
	r.Route("/shared", func(sr chi.Router) {
		sr.Post("/access", accessShareHandler(svc))
		sr.Get("/{token}", resolveShareHandler(svc))
	})
}

// issueShareRequest es el cuerpo para compartir registros.
type issueShareRequest struct {
	RecordIDs     []string `json:"record_ids"`
	DurationHours float64  `json:"duration_hours"` // admite fracciones; 0 => 1h
	Method        Method   `json:"method" enums:"link,code"`
}

// shareResponse es la vista del dueño: incluye PIN y link.
type shareResponse struct {
	ID         string     `json:"id"`
	Method     Method     `json:"method"`
	Token      string     `json:"token"`
	Link       string     `json:"link"`
	PIN        string     `json:"pin"`
	RecordIDs  []string   `json:"record_ids"`
	Status     Status     `json:"status"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ExpiresIn  string     `json:"expires_in"`
	AccessedAt *time.Time `json:"accessed_at,omitempty"`
	AccessedBy *string    `json:"accessed_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

// sharedGrantResponse es lo que ve el médico: nunca el PIN.
type sharedGrantResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Method      Method    `json:"method"`
	Status      Status    `json:"status"`
	RecordCount int       `json:"record_count"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   string    `json:"expires_in"`
}

type accessShareRequest struct {
	Token string `json:"token"`
	Link  string `json:"link"` // alternativa a token
	PIN   string `json:"pin"`
}

type accessShareResponse struct {
	Share   sharedGrantResponse      `json:"share"`
	Records []records.RecordResponse `json:"records"`
}

// issueShareHandler godoc
// @Summary Compartir registros
// @Description Crea un acceso temporal (token + PIN de 5 dígitos) a un conjunto de registros propios. El PIN se devuelve en claro solo al dueño.
// @Tags shares
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-User-Role header string false "Solo en modo dev: patient | doctor"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body issueShareRequest true "Registros y duración"
// @Success 201 {object} shareResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /shares [post]
func issueShareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireRole(w, r, auth.RolePatient)
		if !ok {
			return
		}

		var req issueShareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		g, err := svc.Issue(r.Context(), IssueInput{
			OwnerID:       claims.UserID,
			RecordIDs:     req.RecordIDs,
			DurationHours: req.DurationHours,
			Method:        req.Method,
		})
		if err != nil {
			writeShareError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, svc.toShareResponse(g))
	}
}

// listActiveSharesHandler godoc
// @Summary Listar accesos vigentes
// @Description Accesos compartidos del paciente que siguen activos y sin vencer.
// @Tags shares
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} shareResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /shares/active [get]
func listActiveSharesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireRole(w, r, auth.RolePatient)
		if !ok {
			return
		}

		items, err := svc.ListActive(r.Context(), claims.UserID)
		if err != nil {
			writeShareError(w, err)
			return
		}

		out := make([]shareResponse, 0, len(items))
		for _, g := range items {
			out = append(out, svc.toShareResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listShareHistoryHandler godoc
// @Summary Historial de accesos compartidos
// @Description Todos los accesos del paciente (activos, vencidos, revocados), más nuevos primero.
// @Tags shares
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Máximo de elementos (1-100). Por defecto 20"
// @Success 200 {array} shareResponse
// @Failure 400 {string} string "limit inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /shares/history [get]
func listShareHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireRole(w, r, auth.RolePatient)
		if !ok {
			return
		}

		limit := 0
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxHistoryLimit {
				http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
				return
			}
			limit = n
		}

		items, err := svc.ListHistory(r.Context(), claims.UserID, limit)
		if err != nil {
			writeShareError(w, err)
			return
		}

		out := make([]shareResponse, 0, len(items))
		for _, g := range items {
			out = append(out, svc.toShareResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// revokeShareHandler godoc
// @Summary Revocar acceso compartido
// @Description Revoca un acceso del paciente. Responde 204 también si el acceso no existe o no es suyo.
// @Tags shares
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param grantID path string true "ID del acceso"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /shares/{grantID}/revoke [post]
func revokeShareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireRole(w, r, auth.RolePatient)
		if !ok {
			return
		}

		if err := svc.Revoke(r.Context(), chi.URLParam(r, "grantID"), claims.UserID); err != nil {
			writeShareError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// resolveShareHandler godoc
// @Summary Validar link/código
// @Description Confirma que el token está vigente antes de pedir el PIN. No devuelve registros.
// @Tags shared
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-User-Role header string false "Solo en modo dev: patient | doctor"
// @Param Authorization header string false "Bearer token en producción"
// @Param token path string true "Token del acceso"
// @Success 200 {object} sharedGrantResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "share is invalid or expired"
// @Failure 500 {string} string "internal error"
// @Router /shared/{token} [get]
func resolveShareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, auth.RoleDoctor); !ok {
			return
		}

		g, err := svc.Resolve(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			writeShareError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, svc.toSharedGrantResponse(g))
	}
}

// accessShareHandler godoc
// @Summary Acceder a registros compartidos
// @Description Canjea token (o link) + PIN y devuelve los registros incluidos en el acceso.
// @Tags shared
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-User-Role header string false "Solo en modo dev: patient | doctor"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body accessShareRequest true "Token o link, y PIN"
// @Success 200 {object} accessShareResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden / invalid pin"
// @Failure 404 {string} string "share is invalid or expired"
// @Failure 429 {string} string "too many pin attempts"
// @Failure 500 {string} string "internal error"
// @Router /shared/access [post]
func accessShareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireRole(w, r, auth.RoleDoctor)
		if !ok {
			return
		}

		var req accessShareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		token := strings.TrimSpace(req.Token)
		if token == "" {
			token = strings.TrimSpace(req.Link)
		}

		res, err := svc.Access(r.Context(), AccessInput{
			Token:      token,
			AccessorID: claims.UserID,
			PIN:        strings.TrimSpace(req.PIN),
		})
		if err != nil {
			writeShareError(w, err)
			return
		}

		out := accessShareResponse{
			Share:   svc.toSharedGrantResponse(res.Grant),
			Records: make([]records.RecordResponse, 0, len(res.Records)),
		}
		for _, rec := range res.Records {
			out.Records = append(out.Records, records.ToResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func requireRole(w http.ResponseWriter, r *http.Request, role auth.Role) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	if claims.Role != role {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}

func writeShareError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidOrExpired):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidPIN):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrTooManyAttempts):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Service) toShareResponse(g Grant) shareResponse {
	now := s.now()
	return shareResponse{
		ID:         g.ID,
		Method:     g.Method,
		Token:      g.Token,
		Link:       s.Link(g),
		PIN:        g.PIN,
		RecordIDs:  g.RecordIDs,
		Status:     EffectiveStatus(g, now),
		ExpiresAt:  g.ExpiresAt,
		ExpiresIn:  RemainingLabel(g, now),
		AccessedAt: g.AccessedAt,
		AccessedBy: g.AccessedBy,
		CreatedAt:  g.CreatedAt,
		RevokedAt:  g.RevokedAt,
	}
}

func (s *Service) toSharedGrantResponse(g Grant) sharedGrantResponse {
	now := s.now()
	return sharedGrantResponse{
		ID:          g.ID,
		OwnerID:     g.OwnerID,
		Method:      g.Method,
		Status:      EffectiveStatus(g, now),
		RecordCount: len(g.RecordIDs),
		ExpiresAt:   g.ExpiresAt,
		ExpiresIn:   RemainingLabel(g, now),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
