package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fitforge/fitness-planner/internal/config"
	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/notify"
	"fitforge/fitness-planner/internal/repository"
)

// --- Error Definitions ---
var (
	ErrNoRecoveryLink      = errors.New("user has no recovery integration linked")
	ErrRecoveryUnavailable = errors.New("no recovery data available")
)

// RecoveryRecord is one recovery measurement from the wearable API.
type RecoveryRecord struct {
	Score float64 `json:"score"`
}

// --- Service Interface ---
type RecoveryService interface {
	// GetRecoveryScore fetches yesterday's recovery score for the user.
	GetRecoveryScore(ctx context.Context, email string) (float64, error)

	// SuggestWorkout maps a recovery score and training preference to a
	// workout suggestion.
	SuggestWorkout(score float64, preference string) string

	// SendSuggestion fetches the score, picks a suggestion and emails it.
	// Returns the suggested workout text.
	SendSuggestion(ctx context.Context, email, preference string) (string, error)
}

// --- Service Implementation ---

type recoveryService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	mailer      notify.Mailer
	client      *http.Client
	baseURL     string
	now         func() time.Time
}

// NewRecoveryService creates a new instance of recoveryService.
func NewRecoveryService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	mailer notify.Mailer,
	cfg config.WhoopConfig,
) RecoveryService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &recoveryService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		mailer:      mailer,
		client:      &http.Client{Timeout: timeout},
		baseURL:     cfg.BaseURL,
		now:         time.Now,
	}
}

// GetRecoveryScore looks up the user's access token and fetches yesterday's
// recovery window. When the day holds several records the latest one wins.
func (s *recoveryService) GetRecoveryScore(ctx context.Context, email string) (float64, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrProfileNotFound
		}
		return 0, err
	}
	if profile.WhoopAccessToken == "" {
		return 0, ErrNoRecoveryLink
	}

	record, err := s.fetchRecovery(ctx, profile.WhoopAccessToken)
	if err != nil {
		return 0, err
	}
	return record.Score, nil
}

// fetchRecovery queries the recovery endpoint for yesterday's UTC window.
func (s *recoveryService) fetchRecovery(ctx context.Context, accessToken string) (*RecoveryRecord, error) {
	yesterday := s.now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	url := fmt.Sprintf("%s/recovery?start=%sT00:00:00.000Z&end=%sT23:59:59.000Z",
		s.baseURL, yesterday, yesterday)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRecoveryUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryUnavailable, err)
	}
	var records []RecoveryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecoveryUnavailable, err)
	}
	if len(records) == 0 {
		return nil, ErrRecoveryUnavailable
	}
	return &records[len(records)-1], nil
}

// SuggestWorkout maps (score, preference) onto a suggestion. Scores of 80 and
// above rate a hard session, 50 and above a moderate one, everything else
// light. An unknown preference falls through to a rest day.
func (s *recoveryService) SuggestWorkout(score float64, preference string) string {
	level := "light"
	if score >= 80 {
		level = "hard"
	} else if score >= 50 {
		level = "moderate"
	}

	suggestions := map[string]map[string]string{
		"cardio": {
			"hard":     "HIIT run, 5x800m intervals",
			"moderate": "30 min steady state jog",
			"light":    "20 min walk or light cycling",
		},
		"strength": {
			"hard":     "Full body powerlifting circuit",
			"moderate": "Push-pull split workout",
			"light":    "Bodyweight resistance routine",
		},
		"mixed": {
			"hard":     "CrossFit-style metcon",
			"moderate": "Kettlebell circuit",
			"light":    "Yoga and mobility drills",
		},
	}

	if suggestion, ok := suggestions[preference][level]; ok {
		return suggestion
	}
	return "Rest day!"
}

// SendSuggestion emails the user a workout suggestion based on yesterday's
// recovery. An empty preference is derived from the profile goal.
func (s *recoveryService) SendSuggestion(ctx context.Context, email, preference string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if preference == "" {
		profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
		if err == nil {
			preference = PreferenceForGoal(profile.Goal)
		}
	}

	score, err := s.GetRecoveryScore(ctx, email)
	if err != nil {
		return "", err
	}

	workout := s.SuggestWorkout(score, preference)
	body := fmt.Sprintf("Based on your recovery score of %.0f, here's your suggested workout:\n\n%s", score, workout)
	if err := s.mailer.Send(ctx, user.Email, "Your Personalized Workout Suggestion", body); err != nil {
		return "", err
	}
	return workout, nil
}

// PreferenceForGoal maps a fitness goal onto a training preference for the
// suggestion matrix.
func PreferenceForGoal(goal domain.Goal) string {
	switch goal {
	case domain.GoalStrength:
		return "strength"
	case domain.GoalEndurance, domain.GoalWeightLoss:
		return "cardio"
	case domain.GoalFlexibility, domain.GoalGeneralFitness:
		return "mixed"
	default:
		return ""
	}
}
