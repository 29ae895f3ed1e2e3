package api

import (
	"errors"
	"net/http"
	"time"

	"fitforge/fitness-planner/internal/recommend"
	"fitforge/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Response Structs ---

type PlanResponse struct {
	ID                string                `json:"id"`
	WeekStartDate     time.Time             `json:"weekStartDate"`
	EquipmentNeeded   []string              `json:"equipmentNeeded,omitempty"`
	GeneralGuidelines []string              `json:"generalGuidelines,omitempty"`
	Days              []DailyWorkoutResponse `json:"days"`
}

type DailyWorkoutResponse struct {
	ID          string                `json:"id"`
	Day         string                `json:"day"`
	Focus       string                `json:"focus"`
	Description string                `json:"description,omitempty"`
	Duration    string                `json:"duration,omitempty"`
	Intensity   int                   `json:"intensity"`
	Notes       string                `json:"notes,omitempty"`
	Sent        bool                  `json:"sent"`
	Exercises   []ExerciseSetResponse `json:"exercises"`
}

type ExerciseSetResponse struct {
	Name         string   `json:"name"`
	MuscleGroups []string `json:"muscleGroups"`
	Sets         int      `json:"sets"`
	Reps         string   `json:"reps"`
	RestTime     string   `json:"restTime"`
	Weight       string   `json:"weight,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// --- Handler Methods ---

// GeneratePlan regenerates the authenticated user's plan for the current week.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	view, err := h.planService.GenerateWeeklyPlan(c.Request.Context(), userID)
	if err != nil {
		abortWithPlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(view))
}

// GenerateDay generates a workout for a single named day of the current week.
func (h *PlanHandler) GenerateDay(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	day := c.Param("day")
	view, err := h.planService.GenerateDailyWorkout(c.Request.Context(), userID, day)
	if err != nil {
		abortWithPlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapDayToResponse(view))
}

// GetCurrentPlan returns the authenticated user's plan for the current week.
func (h *PlanHandler) GetCurrentPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	view, err := h.planService.GetCurrentPlan(c.Request.Context(), userID)
	if err != nil {
		abortWithPlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(view))
}

// abortWithPlanError maps plan service errors onto HTTP statuses.
func abortWithPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusBadRequest, "complete your fitness profile before generating a plan")
	case errors.Is(err, service.ErrUnknownDay):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanConflict):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, recommend.ErrProvider),
		errors.Is(err, recommend.ErrMalformedResponse),
		errors.Is(err, service.ErrInvalidPlanResponse):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- DTO mapping ---

// MapPlanToResponse converts a resolved plan view to its DTO.
func MapPlanToResponse(view *service.PlanView) PlanResponse {
	resp := PlanResponse{
		ID:                view.Plan.ID.Hex(),
		WeekStartDate:     view.Plan.WeekStartDate,
		EquipmentNeeded:   view.Plan.EquipmentNeeded,
		GeneralGuidelines: view.Plan.GeneralGuidelines,
		Days:              make([]DailyWorkoutResponse, 0, len(view.Days)),
	}
	for i := range view.Days {
		resp.Days = append(resp.Days, MapDayToResponse(&view.Days[i]))
	}
	return resp
}

// MapDayToResponse converts one resolved day to its DTO.
func MapDayToResponse(day *service.DayView) DailyWorkoutResponse {
	resp := DailyWorkoutResponse{
		ID:          day.Workout.ID.Hex(),
		Day:         day.Workout.Day,
		Focus:       day.Workout.Focus,
		Description: day.Workout.Description,
		Duration:    day.Workout.Duration,
		Intensity:   day.Workout.Intensity,
		Notes:       day.Workout.Notes,
		Sent:        day.Workout.Sent,
		Exercises:   make([]ExerciseSetResponse, 0, len(day.Sets)),
	}
	for _, set := range day.Sets {
		resp.Exercises = append(resp.Exercises, ExerciseSetResponse{
			Name:         set.Exercise.Name,
			MuscleGroups: set.Exercise.MuscleGroups,
			Sets:         set.Set.Sets,
			Reps:         set.Set.Reps,
			RestTime:     set.Set.RestTime,
			Weight:       set.Set.Weight,
			Notes:        set.Set.Notes,
			Instructions: set.Exercise.Instructions,
		})
	}
	return resp
}
