package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/notify"
	"fitforge/fitness-planner/internal/repository"
	"fitforge/fitness-planner/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestRecoveryService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, mailer notify.Mailer, baseURL string) *recoveryService {
	return &recoveryService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		mailer:      mailer,
		client:      &http.Client{Timeout: 5 * time.Second},
		baseURL:     baseURL,
		now:         func() time.Time { return fixedNow },
	}
}

func linkedUserAndProfile(t *testing.T, token string) (*mocks.UserRepository, *mocks.ProfileRepository, *domain.User) {
	t.Helper()
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	profileRepo := new(mocks.ProfileRepository)
	profileRepo.On("GetByUserID", mock.Anything, user.ID).Return(&domain.UserProfile{
		UserID:           user.ID,
		Goal:             domain.GoalStrength,
		WhoopAccessToken: token,
	}, nil)

	return userRepo, profileRepo, user
}

func TestSuggestWorkout(t *testing.T) {
	svc := &recoveryService{}

	tests := []struct {
		score      float64
		preference string
		want       string
	}{
		{95, "cardio", "HIIT run, 5x800m intervals"},
		{80, "cardio", "HIIT run, 5x800m intervals"}, // 80 is inclusive
		{79, "cardio", "30 min steady state jog"},
		{50, "cardio", "30 min steady state jog"}, // 50 is inclusive
		{49, "cardio", "20 min walk or light cycling"},
		{85, "strength", "Full body powerlifting circuit"},
		{60, "strength", "Push-pull split workout"},
		{10, "strength", "Bodyweight resistance routine"},
		{90, "mixed", "CrossFit-style metcon"},
		{55, "mixed", "Kettlebell circuit"},
		{0, "mixed", "Yoga and mobility drills"},
		{90, "swimming", "Rest day!"},
		{90, "", "Rest day!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.SuggestWorkout(tt.score, tt.preference),
			"score %.0f preference %q", tt.score, tt.preference)
	}
}

func TestPreferenceForGoal(t *testing.T) {
	assert.Equal(t, "strength", PreferenceForGoal(domain.GoalStrength))
	assert.Equal(t, "cardio", PreferenceForGoal(domain.GoalEndurance))
	assert.Equal(t, "cardio", PreferenceForGoal(domain.GoalWeightLoss))
	assert.Equal(t, "mixed", PreferenceForGoal(domain.GoalFlexibility))
	assert.Equal(t, "mixed", PreferenceForGoal(domain.GoalGeneralFitness))
	assert.Equal(t, "", PreferenceForGoal(domain.Goal("crossfit")))
}

func TestGetRecoveryScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recovery", r.URL.Path)
		assert.Equal(t, "Bearer whoop-token", r.Header.Get("Authorization"))
		// fixedNow is 2025-06-04, so the window covers the day before.
		assert.Equal(t, "2025-06-03T00:00:00.000Z", r.URL.Query().Get("start"))
		assert.Equal(t, "2025-06-03T23:59:59.000Z", r.URL.Query().Get("end"))

		w.Write([]byte(`[{"score": 33.0}, {"score": 76.5}]`))
	}))
	defer server.Close()

	userRepo, profileRepo, user := linkedUserAndProfile(t, "whoop-token")
	svc := newTestRecoveryService(userRepo, profileRepo, nil, server.URL)

	score, err := svc.GetRecoveryScore(context.Background(), user.Email)
	require.NoError(t, err)

	// The latest record of the day wins.
	assert.Equal(t, 76.5, score)
}

func TestGetRecoveryScore_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	userRepo, profileRepo, user := linkedUserAndProfile(t, "whoop-token")
	svc := newTestRecoveryService(userRepo, profileRepo, nil, server.URL)

	_, err := svc.GetRecoveryScore(context.Background(), user.Email)
	assert.ErrorIs(t, err, ErrRecoveryUnavailable)
}

func TestGetRecoveryScore_NoRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	userRepo, profileRepo, user := linkedUserAndProfile(t, "whoop-token")
	svc := newTestRecoveryService(userRepo, profileRepo, nil, server.URL)

	_, err := svc.GetRecoveryScore(context.Background(), user.Email)
	assert.ErrorIs(t, err, ErrRecoveryUnavailable)
}

func TestGetRecoveryScore_NoLinkedIntegration(t *testing.T) {
	userRepo, profileRepo, user := linkedUserAndProfile(t, "")
	svc := newTestRecoveryService(userRepo, profileRepo, nil, "http://whoop.invalid")

	_, err := svc.GetRecoveryScore(context.Background(), user.Email)
	assert.ErrorIs(t, err, ErrNoRecoveryLink)
}

func TestGetRecoveryScore_UnknownUser(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	svc := newTestRecoveryService(userRepo, new(mocks.ProfileRepository), nil, "http://whoop.invalid")

	_, err := svc.GetRecoveryScore(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendSuggestion_DerivesPreferenceFromGoal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"score": 92.0}]`))
	}))
	defer server.Close()

	// Strength goal plus a 92 recovery score lands on the hard strength row.
	userRepo, profileRepo, user := linkedUserAndProfile(t, "whoop-token")

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, user.Email, "Your Personalized Workout Suggestion",
		"Based on your recovery score of 92, here's your suggested workout:\n\nFull body powerlifting circuit").
		Return(nil)

	svc := newTestRecoveryService(userRepo, profileRepo, mailer, server.URL)

	workout, err := svc.SendSuggestion(context.Background(), user.Email, "")
	require.NoError(t, err)

	assert.Equal(t, "Full body powerlifting circuit", workout)
	mailer.AssertExpectations(t)
}

func TestSendSuggestion_ExplicitPreferenceWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"score": 30.0}]`))
	}))
	defer server.Close()

	userRepo, profileRepo, user := linkedUserAndProfile(t, "whoop-token")

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.Anything).Return(nil)

	svc := newTestRecoveryService(userRepo, profileRepo, mailer, server.URL)

	workout, err := svc.SendSuggestion(context.Background(), user.Email, "cardio")
	require.NoError(t, err)

	assert.Equal(t, "20 min walk or light cycling", workout)
}
