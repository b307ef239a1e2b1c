package menu

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	svc      Service
	validate *validator.Validate
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

type RecommendationsRequest struct {
	HealthConditions []string `json:"health_conditions" validate:"required,min=1"`
	MaxItems         int      `json:"max_items" validate:"omitempty,min=1"`
}

type MealPlanRequest struct {
	HealthConditions []string `json:"health_conditions" validate:"required,min=1"`
	MealCount        int      `json:"meal_count" validate:"omitempty,min=1"`
}

type CompareRequest struct {
	FoodIDs []string `json:"food_ids" validate:"required,len=2"`
}

type AllergenFilterRequest struct {
	// An empty list is a pass-through returning the whole catalog.
	ExcludeAllergens []string `json:"exclude_allergens"`
}

func (h *Handler) ListFoods(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	respondData(w, http.StatusOK, h.svc.Foods(search, category))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.svc.Categories())
}

func (h *Handler) ListConditions(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.svc.Conditions())
}

func (h *Handler) GetNutrition(w http.ResponseWriter, r *http.Request) {
	foodID := chi.URLParam(r, "foodID")
	food, err := h.svc.FoodInfo(foodID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, food)
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.MaxItems == 0 {
		req.MaxItems = 5
	}
	recs, err := h.svc.Recommend(req.HealthConditions, req.MaxItems)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, recs)
}

func (h *Handler) ClassifyFoods(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if !h.decode(w, r, &req) {
		return
	}
	respondData(w, http.StatusOK, h.svc.Classify(req.HealthConditions))
}

func (h *Handler) GenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req MealPlanRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.MealCount == 0 {
		req.MealCount = 3
	}
	plan, err := h.svc.BuildMealPlan(req.HealthConditions, req.MealCount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, plan)
}

func (h *Handler) CompareFoods(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !h.decode(w, r, &req) {
		return
	}
	cmp, err := h.svc.Compare(req.FoodIDs[0], req.FoodIDs[1])
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, cmp)
}

func (h *Handler) FilterAllergens(w http.ResponseWriter, r *http.Request) {
	var req AllergenFilterRequest
	if !h.decode(w, r, &req) {
		return
	}
	respondData(w, http.StatusOK, h.svc.FilterByExcludedAllergens(req.ExcludeAllergens))
}

// decode parses and validates a JSON request body, writing a 400 response
// itself when the body is unusable.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondFailure(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondFailure(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
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
	case errors.Is(err, ErrNotFound):
		respondFailure(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		respondFailure(w, http.StatusBadRequest, err.Error())
	default:
		respondFailure(w, http.StatusInternalServerError, err.Error())
	}
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/foods", h.ListFoods)
	r.Get("/food-categories", h.ListCategories)
	r.Get("/health-conditions", h.ListConditions)
	r.Get("/nutrition/{foodID}", h.GetNutrition)
	r.Post("/food-recommendations", h.GetRecommendations)
	r.Post("/food-classification", h.ClassifyFoods)
	r.Post("/meal-plan", h.GenerateMealPlan)
	r.Post("/compare-foods", h.CompareFoods)
	r.Post("/allergen-filter", h.FilterAllergens)
}
