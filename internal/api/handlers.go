package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"dockside/internal/metrics"
	"dockside/internal/models"
	"dockside/internal/query"
	"dockside/internal/service"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body registerRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.auth.Register(r.Context(), service.RegisterInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
		Phone:    body.Phone,
		Role:     body.Role,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user.Sanitized()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.tokens.Issue(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user.Sanitized()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if err := s.tokens.Revoke(r.Context(), raw); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type yachtRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	YachtType   string      `json:"yacht_type"`
	Capacity    json.Number `json:"capacity"`
	Bedrooms    json.Number `json:"bedrooms"`
	HasCatering bool        `json:"has_catering"`
	HourlyPrice json.Number `json:"hourly_price"`
	DailyPrice  json.Number `json:"daily_price"`
	Images      []string    `json:"images"`
	Amenities   []string    `json:"amenities,omitempty"`
	Included    []string    `json:"included,omitempty"`
	Excluded    []string    `json:"excluded,omitempty"`
	Terms       []string    `json:"terms,omitempty"`
}

func (s *Server) handleYachts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		r = s.withOptionalAuth(r)
		q := r.URL.Query()
		yachts, err := s.yachts.List(r.Context(), actorFrom(r.Context()), service.YachtListOptions{
			Status:     q.Get("status"),
			OperatorID: q.Get("operator_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"yachts": yachts})

	case http.MethodPost:
		actor, err := s.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}

		var body yachtRequest
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		yacht, err := s.yachts.Create(r.Context(), actor, service.YachtInput{
			Name:        body.Name,
			Description: body.Description,
			Location:    body.Location,
			YachtType:   body.YachtType,
			Capacity:    body.Capacity.String(),
			Bedrooms:    body.Bedrooms.String(),
			HasCatering: body.HasCatering,
			HourlyPrice: body.HourlyPrice.String(),
			DailyPrice:  body.DailyPrice.String(),
			Images:      body.Images,
			Amenities:   body.Amenities,
			Included:    body.Included,
			Excluded:    body.Excluded,
			Terms:       body.Terms,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"yacht": yacht})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type yachtPatchRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Location    *string      `json:"location"`
	YachtType   *string      `json:"yacht_type"`
	Capacity    *json.Number `json:"capacity"`
	Bedrooms    *json.Number `json:"bedrooms"`
	HasCatering *bool        `json:"has_catering"`
	HourlyPrice *json.Number `json:"hourly_price"`
	DailyPrice  *json.Number `json:"daily_price"`
	Images      *[]string    `json:"images"`
	Amenities   *[]string    `json:"amenities"`
	Included    *[]string    `json:"included"`
	Excluded    *[]string    `json:"excluded"`
	Terms       *[]string    `json:"terms"`
	Rating      *json.Number `json:"rating"`
}

func numString(n *json.Number) *string {
	if n == nil {
		return nil
	}
	v := n.String()
	return &v
}

// handleYachtByID разводит маршруты /yachts/{id} и /yachts/{id}/approve|reject.
// Карточка лота публичная, все мутации требуют токен.
func (s *Server) handleYachtByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/yachts/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if action == "" && r.Method == http.MethodGet {
		yacht, err := s.yachts.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"yacht": yacht})
		return
	}

	actor, err := s.authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodPatch:
		var body yachtPatchRequest
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		yacht, err := s.yachts.Update(r.Context(), actor, id, service.YachtPatch{
			Name:        body.Name,
			Description: body.Description,
			Location:    body.Location,
			YachtType:   body.YachtType,
			Capacity:    numString(body.Capacity),
			Bedrooms:    numString(body.Bedrooms),
			HasCatering: body.HasCatering,
			HourlyPrice: numString(body.HourlyPrice),
			DailyPrice:  numString(body.DailyPrice),
			Images:      body.Images,
			Amenities:   body.Amenities,
			Included:    body.Included,
			Excluded:    body.Excluded,
			Terms:       body.Terms,
			Rating:      numString(body.Rating),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"yacht": yacht})

	case action == "approve" && r.Method == http.MethodPost:
		yacht, err := s.yachts.Approve(r.Context(), actor, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"yacht": yacht})

	case action == "reject" && r.Method == http.MethodPost:
		yacht, err := s.yachts.Reject(r.Context(), actor, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"yacht": yacht})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSearch фильтрует публичный каталог одобренных яхт.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filter, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	yachts, err := s.yachts.List(r.Context(), nil, service.YachtListOptions{})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"yachts": filter.Apply(yachts)})
}

type bookingRequest struct {
	YachtID        string      `json:"yacht_id"`
	Date           string      `json:"date"`
	StartTime      string      `json:"start_time"`
	EndTime        string      `json:"end_time"`
	Hours          json.Number `json:"hours"`
	SpecialRequest string      `json:"special_request,omitempty"`
}

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		bookings, err := s.bookings.List(r.Context(), actor, service.BookingListOptions{
			Status:  q.Get("status"),
			GuestID: q.Get("guest_id"),
			YachtID: q.Get("yacht_id"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})

	case http.MethodPost:
		var body bookingRequest
		if err := decodeBody(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		booking, err := s.bookings.Create(r.Context(), actor, service.BookingInput{
			YachtID:        body.YachtID,
			Date:           body.Date,
			StartTime:      body.StartTime,
			EndTime:        body.EndTime,
			Hours:          body.Hours.String(),
			SpecialRequest: body.SpecialRequest,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		metrics.IncBookings()
		writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/bookings/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPatch {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.UpdateStatus(r.Context(), actorFrom(r.Context()), id, body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

// handleExport отдает xlsx-отчет по всем броням. Только для супер-админа.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	actor := actorFrom(r.Context())
	if actor == nil || actor.Role != models.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	bookings, err := s.bookings.List(r.Context(), actor, service.BookingListOptions{})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	path, err := s.exporter.BookingsReport(r.Context(), bookings)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
