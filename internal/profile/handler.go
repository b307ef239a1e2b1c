package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"food-menu-api/internal/menu"
)

type Handler struct {
	svc      Service
	validate *validator.Validate
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

type CreateProfileRequest struct {
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AddConditionRequest struct {
	Condition string `json:"condition" validate:"required"`
	Severity  string `json:"severity" validate:"omitempty,oneof=Mild Moderate Severe"`
}

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Create(r.Context(), req.Username, req.FirstName, req.LastName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, p)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (h *Handler) AddCondition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	var req AddConditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.AddCondition(r.Context(), id, ConditionAssignment{
		Condition: req.Condition,
		Severity:  Severity(req.Severity),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	maxItems := queryInt(r, "max_items", 5)
	recs, err := h.svc.Recommendations(r.Context(), id, maxItems)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, recs)
}

func (h *Handler) GetMealPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	mealCount := queryInt(r, "meals", 3)
	plan, err := h.svc.MealPlan(r.Context(), id, mealCount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, plan)
}

func (h *Handler) SendReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.profileID(w, r)
	if !ok {
		return
	}
	if err := h.svc.SendReport(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusAccepted, map[string]string{"status": "report sent"})
}

func (h *Handler) profileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid profile ID")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func respondFailure(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, menu.ErrNotFound):
		respondFailure(w, http.StatusNotFound, err.Error())
	case errors.Is(err, menu.ErrInvalidInput):
		respondFailure(w, http.StatusBadRequest, err.Error())
	default:
		respondFailure(w, http.StatusInternalServerError, err.Error())
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/profiles", h.CreateProfile)
	r.Get("/profiles/{profileID}", h.GetProfile)
	r.Post("/profiles/{profileID}/conditions", h.AddCondition)
	r.Get("/profiles/{profileID}/recommendations", h.GetRecommendations)
	r.Get("/profiles/{profileID}/meal-plan", h.GetMealPlan)
	r.Post("/profiles/{profileID}/report", h.SendReport)
}
