package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/device"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/geo"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/i18n"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/identity"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/service"
)

// AttendanceStore is the store surface the attendance endpoints need.
type AttendanceStore interface {
	service.AttendanceReader
	service.AttendanceWriter
}

type AttendanceHandler struct {
	store    AttendanceStore
	checker  *geo.Checker
	fallback model.Coordinates

	// One registration at a time per user. The registrar carries its own
	// guard, but a fresh registrar serves each request, so concurrent
	// submissions from the same user must be fenced here.
	inFlight sync.Map
}

func NewAttendanceHandler(store AttendanceStore, checker *geo.Checker, fallback model.Coordinates) *AttendanceHandler {
	return &AttendanceHandler{store: store, checker: checker, fallback: fallback}
}

func (h *AttendanceHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/attendance/checkin", func(w http.ResponseWriter, r *http.Request) {
		h.handleRegister(w, r, model.TypeEntrada)
	})
	mux.HandleFunc("POST /api/attendance/checkout", func(w http.ResponseWriter, r *http.Request) {
		h.handleRegister(w, r, model.TypeSalida)
	})
	mux.HandleFunc("GET /api/attendance/today", h.HandleToday)
	mux.HandleFunc("GET /api/attendance/history", h.HandleHistory)
}

// RegisterRequest carries the caller's identity plus whatever the client
// device managed to capture. Everything but user_id is optional: missing
// device data degrades the record, it never rejects the request.
type RegisterRequest struct {
	UserID         string           `json:"user_id"`
	Position       *PositionPayload `json:"position,omitempty"`
	CachedPosition *PositionPayload `json:"cached_position,omitempty"`
	Photo          string           `json:"photo,omitempty"`
}

type RegisterResponse struct {
	Record     *model.AttendanceRecord `json:"record"`
	Message    string                  `json:"message"`
	Location   string                  `json:"location"`
	Advisories []string                `json:"advisories,omitempty"`
}

func (h *AttendanceHandler) handleRegister(w http.ResponseWriter, r *http.Request, typ model.AttendanceType) {
	ctx := withRequestLocale(r)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "error.bad_request", nil)
		return
	}

	if req.UserID != "" {
		if _, busy := h.inFlight.LoadOrStore(req.UserID, struct{}{}); busy {
			writeError(ctx, w, http.StatusTooManyRequests, "error.in_flight", nil)
			return
		}
		defer h.inFlight.Delete(req.UserID)
	}

	// One tracker and registrar per request, scoped to the caller: the
	// projection is loaded fresh and the store's unique index stays the
	// authoritative guard across concurrent sessions.
	ident := identity.NewStatic(req.UserID)
	tracker := service.NewTracker(h.store, ident)
	if err := tracker.Reload(ctx); err != nil {
		log.Printf("handler: reload before %s: %v", typ, err)
	}

	// A live fix without the high-accuracy flag must still reach the
	// resolver: back the standard strategy with it when the client sent
	// no cached position, so only genuinely absent data falls through
	// to the default coordinate.
	standby := req.CachedPosition
	if standby == nil {
		standby = req.Position
	}
	resolver := device.NewLocationResolver(
		payloadLocation{pos: req.Position},
		payloadLocation{pos: standby},
		h.fallback,
	)
	capturer := device.NewPhotoCapturer(
		payloadCamera{photo: req.Photo},
		device.NewStreamCapturer(nil),
	)
	registrar := service.NewRegistrar(h.store, resolver, h.checker, capturer, tracker, ident)

	record, err := registrar.Register(ctx, typ)
	if err != nil {
		writeRegisterError(ctx, w, err, typ)
		return
	}

	resp := RegisterResponse{
		Record: record,
		Message: i18n.T(ctx, "attendance.registered", map[string]any{
			"Tipo": string(record.Type),
			"Hora": record.Time,
		}),
		Location: h.checker.Describe(ctx, record.Location.Latitude, record.Location.Longitude),
	}
	if record.LocationSource == model.SourceDefault {
		resp.Advisories = append(resp.Advisories, i18n.T(ctx, "advisory.default_location"))
	}
	if record.PhotoURL == "" {
		resp.Advisories = append(resp.Advisories, i18n.T(ctx, "advisory.no_photo"))
	}
	writeJSON(w, resp)
}

type TodayResponse struct {
	Entrada     *model.AttendanceRecord `json:"entrada,omitempty"`
	Salida      *model.AttendanceRecord `json:"salida,omitempty"`
	CanCheckIn  bool                    `json:"can_check_in"`
	CanCheckOut bool                    `json:"can_check_out"`
	WorkedHours float64                 `json:"worked_hours"`
}

func (h *AttendanceHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestLocale(r)
	tracker, ok := h.trackerFor(ctx, w, r)
	if !ok {
		return
	}

	day := tracker.Today()
	writeJSON(w, TodayResponse{
		Entrada:     day.Entrada,
		Salida:      day.Salida,
		CanCheckIn:  tracker.CanCheckIn(),
		CanCheckOut: tracker.CanCheckOut(),
		WorkedHours: day.WorkedHours(),
	})
}

func (h *AttendanceHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestLocale(r)
	tracker, ok := h.trackerFor(ctx, w, r)
	if !ok {
		return
	}

	records := tracker.HistoryBetween(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if records == nil {
		records = []*model.AttendanceRecord{}
	}
	writeJSON(w, map[string]any{"records": records})
}

func (h *AttendanceHandler) trackerFor(ctx context.Context, w http.ResponseWriter, r *http.Request) (*service.Tracker, bool) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(ctx, w, http.StatusUnauthorized, "error.not_authenticated", nil)
		return nil, false
	}
	tracker := service.NewTracker(h.store, identity.NewStatic(userID))
	if err := tracker.Reload(ctx); err != nil {
		log.Printf("handler: reload for %s: %v", userID, err)
		writeError(ctx, w, http.StatusInternalServerError, "error.persistence", nil)
		return nil, false
	}
	return tracker, true
}

func writeRegisterError(ctx context.Context, w http.ResponseWriter, err error, typ model.AttendanceType) {
	data := map[string]any{"Tipo": string(typ)}
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		writeError(ctx, w, http.StatusUnauthorized, "error.not_authenticated", nil)
	case errors.Is(err, service.ErrOutOfOrder):
		writeError(ctx, w, http.StatusConflict, "error.out_of_order", nil)
	case errors.Is(err, service.ErrAlreadyRegistered):
		writeError(ctx, w, http.StatusConflict, "error.already_registered", data)
	case errors.Is(err, service.ErrUnknownType):
		writeError(ctx, w, http.StatusBadRequest, "error.unknown_type", nil)
	case errors.Is(err, service.ErrRegistrationInFlight):
		writeError(ctx, w, http.StatusTooManyRequests, "error.in_flight", nil)
	default:
		log.Printf("handler: register %s: %v", typ, err)
		writeError(ctx, w, http.StatusInternalServerError, "error.persistence", nil)
	}
}

// withRequestLocale picks the locale from the Accept-Language header.
func withRequestLocale(r *http.Request) context.Context {
	lang := r.Header.Get("Accept-Language")
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.TrimSpace(lang)
	if i := strings.Index(lang, "-"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return r.Context()
	}
	return i18n.WithLocale(r.Context(), lang)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, messageID string, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: i18n.T(ctx, messageID, data)}); err != nil {
		log.Printf("ERROR encoding response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR encoding response: %v", err)
	}
}
