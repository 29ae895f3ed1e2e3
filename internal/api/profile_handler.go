package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

type ProfileRequest struct {
	Goal             string   `json:"goal" binding:"required,oneof=strength endurance flexibility weight_loss general_fitness"`
	WorkoutsPerWeek  int      `json:"workoutsPerWeek" binding:"required,min=1,max=7"`
	Equipment        []string `json:"equipment" binding:"required,min=1"`
	PhoneNumber      string   `json:"phoneNumber"`
	WhoopAccessToken string   `json:"whoopAccessToken"`
}

type ProfileResponse struct {
	ID              string    `json:"id"`
	Goal            string    `json:"goal"`
	WorkoutsPerWeek int       `json:"workoutsPerWeek"`
	Equipment       []string  `json:"equipment"`
	FitnessLevel    int       `json:"fitnessLevel"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// --- Handler Methods ---

// SaveProfile creates or updates the authenticated user's fitness profile.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), userID, service.ProfileInput{
		Goal:             req.Goal,
		WorkoutsPerWeek:  req.WorkoutsPerWeek,
		Equipment:        req.Equipment,
		PhoneNumber:      req.PhoneNumber,
		WhoopAccessToken: req.WhoopAccessToken,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// GetProfile returns the authenticated user's fitness profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// MapProfileToResponse converts a domain UserProfile to its DTO. The whoop
// access token never leaves the server.
func MapProfileToResponse(profile *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:              profile.ID.Hex(),
		Goal:            string(profile.Goal),
		WorkoutsPerWeek: profile.WorkoutsPerWeek,
		Equipment:       profile.Equipment,
		FitnessLevel:    profile.FitnessLevel,
		PhoneNumber:     profile.PhoneNumber,
		UpdatedAt:       profile.UpdatedAt,
	}
}
