package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/notify"
	"fitforge/fitness-planner/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// DeliveryReport summarizes one batch delivery run. Failures are collected
// per recipient; a failed send never rolls back the ones that went out.
type DeliveryReport struct {
	Sent     int
	Skipped  int
	Failures []string
}

// --- Service Interface ---
type DeliveryService interface {
	// SendWeeklyPlan emails the user their current week's plan.
	SendWeeklyPlan(ctx context.Context, email string) error

	// SendDailyWorkouts delivers the unsent daily workout of every plan
	// covering the given date, marking each one sent on success. A non-empty
	// emailFilter restricts the batch to that one recipient.
	SendDailyWorkouts(ctx context.Context, date time.Time, emailFilter string) (*DeliveryReport, error)
}

// --- Service Implementation ---

type deliveryService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	planRepo    repository.PlanRepository
	planSvc     PlanService
	mailer      notify.Mailer
	smsSender   notify.SMSSender // nil when SMS delivery is disabled
}

// NewDeliveryService creates a new instance of deliveryService. Pass a nil
// smsSender to disable SMS delivery.
func NewDeliveryService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	planRepo repository.PlanRepository,
	planSvc PlanService,
	mailer notify.Mailer,
	smsSender notify.SMSSender,
) DeliveryService {
	return &deliveryService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		planRepo:    planRepo,
		planSvc:     planSvc,
		mailer:      mailer,
		smsSender:   smsSender,
	}
}

// SendWeeklyPlan renders the user's current plan and emails it.
func (s *deliveryService) SendWeeklyPlan(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	view, err := s.planSvc.GetCurrentPlan(ctx, user.ID)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, user.Email, "Your Weekly Workout Plan", renderPlanText(view))
}

// SendDailyWorkouts walks every plan of the date's week and delivers the
// workout scheduled for that calendar day, unless it was already sent.
func (s *deliveryService) SendDailyWorkouts(ctx context.Context, date time.Time, emailFilter string) (*DeliveryReport, error) {
	weekStart, _ := domain.WeekRange(date)
	dayName := date.UTC().Weekday().String()

	plans, err := s.planRepo.ListByWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	report := &DeliveryReport{}
	for _, plan := range plans {
		if err := s.sendDayForPlan(ctx, plan, dayName, emailFilter, report); err != nil {
			report.Failures = append(report.Failures, err.Error())
		}
	}
	return report, nil
}

// sendDayForPlan delivers one plan's workout for the named day.
func (s *deliveryService) sendDayForPlan(ctx context.Context, plan domain.WorkoutPlan, dayName, emailFilter string, report *DeliveryReport) error {
	user, err := s.userRepo.GetByID(ctx, plan.UserID)
	if err != nil {
		return fmt.Errorf("plan %s: load user: %v", plan.ID.Hex(), err)
	}
	if emailFilter != "" && user.Email != emailFilter {
		report.Skipped++
		return nil
	}

	workout, err := s.planRepo.GetWorkoutByDay(ctx, plan.ID, dayName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			report.Skipped++ // Rest day for this plan
			return nil
		}
		return fmt.Errorf("plan %s: %v", plan.ID.Hex(), err)
	}
	if workout.Sent {
		report.Skipped++
		return nil
	}

	dayView, err := s.planSvc.ResolveDay(ctx, *workout)
	if err != nil {
		return fmt.Errorf("%s: resolve workout: %v", user.Email, err)
	}

	subject := fmt.Sprintf("Your Workout for %s", dayName)
	if err := s.mailer.Send(ctx, user.Email, subject, renderWorkoutText(dayView)); err != nil {
		// Leave the workout unsent so the next run retries it.
		return fmt.Errorf("%s: %v", user.Email, err)
	}

	s.sendSMS(ctx, plan, dayView)

	if err := s.planRepo.MarkWorkoutSent(ctx, workout.ID, time.Now().UTC()); err != nil {
		// The mail is out; log and move on rather than failing the batch.
		log.Printf("ERROR: Failed to mark workout %s sent: %v", workout.ID.Hex(), err)
	}
	report.Sent++
	return nil
}

// sendSMS pushes a short nudge when the profile carries a phone number.
// SMS problems never fail a delivery that already went out by email.
func (s *deliveryService) sendSMS(ctx context.Context, plan domain.WorkoutPlan, day *DayView) {
	if s.smsSender == nil {
		return
	}
	profile, err := s.profileRepo.GetByUserID(ctx, plan.UserID)
	if err != nil || profile.PhoneNumber == "" {
		return
	}

	message := fmt.Sprintf("Today's workout: %s (%s, intensity %d/10). Details in your email.",
		day.Workout.Focus, day.Workout.Duration, day.Workout.Intensity)
	if err := s.smsSender.Send(ctx, profile.PhoneNumber, message); err != nil {
		log.Printf("WARN: SMS to %s failed: %v", profile.PhoneNumber, err)
	}
}

// --- Text rendering ---

// renderPlanText formats a resolved plan as the plain-text weekly email.
func renderPlanText(view *PlanView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workout plan for the week of %s\n\n", view.Plan.WeekStartDate.Format("January 2, 2006"))

	for i := range view.Days {
		b.WriteString(renderWorkoutText(&view.Days[i]))
		b.WriteString("\n")
	}

	if len(view.Plan.EquipmentNeeded) > 0 {
		fmt.Fprintf(&b, "Equipment needed: %s\n", domain.EquipmentLabels(view.Plan.EquipmentNeeded))
	}
	if len(view.Plan.GeneralGuidelines) > 0 {
		b.WriteString("General guidelines:\n")
		for _, guideline := range view.Plan.GeneralGuidelines {
			fmt.Fprintf(&b, "- %s\n", guideline)
		}
	}
	return b.String()
}

// renderWorkoutText formats one day's workout with its exercises.
func renderWorkoutText(day *DayView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", day.Workout.Day, day.Workout.Focus)
	if day.Workout.Description != "" {
		fmt.Fprintf(&b, "%s\n", day.Workout.Description)
	}
	if day.Workout.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s, intensity %d/10\n", day.Workout.Duration, day.Workout.Intensity)
	}

	for _, set := range day.Sets {
		fmt.Fprintf(&b, "- %s: %dx%s, rest %s", set.Exercise.Name, set.Set.Sets, set.Set.Reps, set.Set.RestTime)
		if set.Set.Weight != "" {
			fmt.Fprintf(&b, ", %s", set.Set.Weight)
		}
		b.WriteString("\n")
		if set.Set.Notes != "" {
			fmt.Fprintf(&b, "  %s\n", set.Set.Notes)
		}
	}
	if day.Workout.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", day.Workout.Notes)
	}
	return b.String()
}
