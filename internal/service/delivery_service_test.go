package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/repository"
	"fitforge/fitness-planner/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type mockSMSSender struct {
	mock.Mock
}

func (m *mockSMSSender) Send(ctx context.Context, phoneNumber, message string) error {
	args := m.Called(ctx, phoneNumber, message)
	return args.Error(0)
}

// stubPlanSvc returns a canned plan view; ResolveDay echoes the workout it is
// given so delivery tests control the rendered content.
type stubPlanSvc struct {
	view *PlanView
	err  error
}

func (s *stubPlanSvc) GenerateWeeklyPlan(context.Context, primitive.ObjectID) (*PlanView, error) {
	return s.view, s.err
}

func (s *stubPlanSvc) GenerateDailyWorkout(context.Context, primitive.ObjectID, string) (*DayView, error) {
	return nil, s.err
}

func (s *stubPlanSvc) GetCurrentPlan(context.Context, primitive.ObjectID) (*PlanView, error) {
	return s.view, s.err
}

func (s *stubPlanSvc) ResolveDay(_ context.Context, workout domain.DailyWorkout) (*DayView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &DayView{Workout: workout}, nil
}

// deliveryDate is a Monday; its week starts Sunday 2025-06-01.
var deliveryDate = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func TestSendWeeklyPlan(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com"}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	planSvc := &stubPlanSvc{view: &PlanView{
		Plan: &domain.WorkoutPlan{
			UserID:            user.ID,
			WeekStartDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			GeneralGuidelines: []string{"Stay hydrated"},
		},
		Days: []DayView{
			{Workout: domain.DailyWorkout{Day: "Monday", Focus: "Upper Body"}},
		},
	}}

	var sentBody string
	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, user.Email, "Your Weekly Workout Plan", mock.Anything).
		Run(func(args mock.Arguments) { sentBody = args.String(3) }).
		Return(nil)

	svc := NewDeliveryService(userRepo, new(mocks.ProfileRepository), new(mocks.PlanRepository), planSvc, mailer, nil)

	require.NoError(t, svc.SendWeeklyPlan(context.Background(), user.Email))
	mailer.AssertExpectations(t)

	assert.Contains(t, sentBody, "Workout plan for the week of June 1, 2025")
	assert.Contains(t, sentBody, "Monday: Upper Body")
	assert.Contains(t, sentBody, "Stay hydrated")
}

func TestSendWeeklyPlan_UnknownUser(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	svc := NewDeliveryService(userRepo, new(mocks.ProfileRepository), new(mocks.PlanRepository), &stubPlanSvc{}, new(mockMailer), nil)

	err := svc.SendWeeklyPlan(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendDailyWorkouts_MarksWorkoutSent(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	plan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: user.ID}
	workout := &domain.DailyWorkout{ID: primitive.NewObjectID(), WorkoutPlanID: plan.ID, Day: "Monday", Focus: "Upper Body"}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	planRepo := new(mocks.PlanRepository)
	planRepo.On("ListByWeek", mock.Anything, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).
		Return([]domain.WorkoutPlan{plan}, nil)
	planRepo.On("GetWorkoutByDay", mock.Anything, plan.ID, "Monday").Return(workout, nil)
	planRepo.On("MarkWorkoutSent", mock.Anything, workout.ID, mock.Anything).Return(nil)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, user.Email, "Your Workout for Monday", mock.Anything).Return(nil)

	svc := NewDeliveryService(userRepo, new(mocks.ProfileRepository), planRepo, &stubPlanSvc{}, mailer, nil)

	report, err := svc.SendDailyWorkouts(context.Background(), deliveryDate, "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Zero(t, report.Skipped)
	assert.Empty(t, report.Failures)
	planRepo.AssertCalled(t, "MarkWorkoutSent", mock.Anything, workout.ID, mock.Anything)
}

func TestSendDailyWorkouts_MailFailureLeavesWorkoutUnsent(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	plan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: user.ID}
	workout := &domain.DailyWorkout{ID: primitive.NewObjectID(), WorkoutPlanID: plan.ID, Day: "Monday"}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	planRepo := new(mocks.PlanRepository)
	planRepo.On("ListByWeek", mock.Anything, mock.Anything).Return([]domain.WorkoutPlan{plan}, nil)
	planRepo.On("GetWorkoutByDay", mock.Anything, plan.ID, "Monday").Return(workout, nil)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	svc := NewDeliveryService(userRepo, new(mocks.ProfileRepository), planRepo, &stubPlanSvc{}, mailer, nil)

	report, err := svc.SendDailyWorkouts(context.Background(), deliveryDate, "")
	require.NoError(t, err)

	assert.Zero(t, report.Sent)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0], user.Email)
	// The workout stays unsent so the next run retries it.
	planRepo.AssertNotCalled(t, "MarkWorkoutSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendDailyWorkouts_SkipsRestDaysAndAlreadySent(t *testing.T) {
	restUser := &domain.User{ID: primitive.NewObjectID(), Email: "rest@example.com"}
	sentUser := &domain.User{ID: primitive.NewObjectID(), Email: "done@example.com"}
	restPlan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: restUser.ID}
	sentPlan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: sentUser.ID}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByID", mock.Anything, restUser.ID).Return(restUser, nil)
	userRepo.On("GetByID", mock.Anything, sentUser.ID).Return(sentUser, nil)

	planRepo := new(mocks.PlanRepository)
	planRepo.On("ListByWeek", mock.Anything, mock.Anything).
		Return([]domain.WorkoutPlan{restPlan, sentPlan}, nil)
	planRepo.On("GetWorkoutByDay", mock.Anything, restPlan.ID, "Monday").
		Return(nil, repository.ErrNotFound)
	planRepo.On("GetWorkoutByDay", mock.Anything, sentPlan.ID, "Monday").
		Return(&domain.DailyWorkout{ID: primitive.NewObjectID(), Day: "Monday", Sent: true}, nil)

	mailer := new(mockMailer)

	svc := NewDeliveryService(userRepo, new(mocks.ProfileRepository), planRepo, &stubPlanSvc{}, mailer, nil)

	report, err := svc.SendDailyWorkouts(context.Background(), deliveryDate, "")
	require.NoError(t, err)

	assert.Zero(t, report.Sent)
	assert.Equal(t, 2, report.Skipped)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendDailyWorkouts_EmailFilter(t *testing.T) {
	alice := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	bob := &domain.User{ID: primitive.NewObjectID(), Email: "bob@example.com"}
	alicePlan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: alice.ID}
	bobPlan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: bob.ID}
	workout := &domain.DailyWorkout{ID: primitive.NewObjectID(), Day: "Monday", Focus: "Upper Body"}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByID", mock.Anything, alice.ID).Return(alice, nil)
	userRepo.On("GetByID", mock.Anything, bob.ID).Return(bob, nil)

	planRepo := new(mocks.PlanRepository)
	planRepo.On("ListByWeek", mock.Anything, mock.Anything).
		Return([]domain.WorkoutPlan{alicePlan, bobPlan}, nil)
	planRepo.On("GetWorkoutByDay", mock.Anything, alicePlan.ID, "Monday").Return(workout, nil)
	planRepo.On("MarkWorkoutSent", mock.Anything, workout.ID, mock.Anything).Return(nil)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, alice.Email, mock.Anything, mock.Anything).Return(nil)

	svc := NewDeliveryService(userRepo, new(mocks.ProfileRepository), planRepo, &stubPlanSvc{}, mailer, nil)

	report, err := svc.SendDailyWorkouts(context.Background(), deliveryDate, alice.Email)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Skipped)
	mailer.AssertNotCalled(t, "Send", mock.Anything, bob.Email, mock.Anything, mock.Anything)
}

func TestSendDailyWorkouts_SMSNudge(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	plan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: user.ID}
	workout := &domain.DailyWorkout{ID: primitive.NewObjectID(), Day: "Monday", Focus: "Upper Body", Duration: "45 minutes", Intensity: 6}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	profileRepo := new(mocks.ProfileRepository)
	profileRepo.On("GetByUserID", mock.Anything, user.ID).
		Return(&domain.UserProfile{UserID: user.ID, PhoneNumber: "+15550100"}, nil)

	planRepo := new(mocks.PlanRepository)
	planRepo.On("ListByWeek", mock.Anything, mock.Anything).Return([]domain.WorkoutPlan{plan}, nil)
	planRepo.On("GetWorkoutByDay", mock.Anything, plan.ID, "Monday").Return(workout, nil)
	planRepo.On("MarkWorkoutSent", mock.Anything, workout.ID, mock.Anything).Return(nil)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.Anything).Return(nil)

	smsSender := new(mockSMSSender)
	smsSender.On("Send", mock.Anything, "+15550100",
		"Today's workout: Upper Body (45 minutes, intensity 6/10). Details in your email.").Return(nil)

	svc := NewDeliveryService(userRepo, profileRepo, planRepo, &stubPlanSvc{}, mailer, smsSender)

	report, err := svc.SendDailyWorkouts(context.Background(), deliveryDate, "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	smsSender.AssertExpectations(t)
}

func TestSendDailyWorkouts_SMSFailureDoesNotFailDelivery(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	plan := domain.WorkoutPlan{ID: primitive.NewObjectID(), UserID: user.ID}
	workout := &domain.DailyWorkout{ID: primitive.NewObjectID(), Day: "Monday", Focus: "Upper Body"}

	userRepo := new(mocks.UserRepository)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	profileRepo := new(mocks.ProfileRepository)
	profileRepo.On("GetByUserID", mock.Anything, user.ID).
		Return(&domain.UserProfile{UserID: user.ID, PhoneNumber: "+15550100"}, nil)

	planRepo := new(mocks.PlanRepository)
	planRepo.On("ListByWeek", mock.Anything, mock.Anything).Return([]domain.WorkoutPlan{plan}, nil)
	planRepo.On("GetWorkoutByDay", mock.Anything, plan.ID, "Monday").Return(workout, nil)
	planRepo.On("MarkWorkoutSent", mock.Anything, workout.ID, mock.Anything).Return(nil)

	mailer := new(mockMailer)
	mailer.On("Send", mock.Anything, user.Email, mock.Anything, mock.Anything).Return(nil)

	smsSender := new(mockSMSSender)
	smsSender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sns throttled"))

	svc := NewDeliveryService(userRepo, profileRepo, planRepo, &stubPlanSvc{}, mailer, smsSender)

	report, err := svc.SendDailyWorkouts(context.Background(), deliveryDate, "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	assert.Empty(t, report.Failures)
}
