package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/recommend"
	"fitforge/fitness-planner/internal/repository"
	"fitforge/fitness-planner/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound = errors.New("no workout plan for the current week")
	// ErrPlanConflict marks a lost regeneration race for the same (user, week).
	// Safe to retry.
	ErrPlanConflict = errors.New("concurrent plan generation for this week")
	// ErrInvalidPlanResponse marks a provider response that failed validation.
	// Nothing is persisted when this is returned.
	ErrInvalidPlanResponse = errors.New("recommendation response failed validation")
	ErrUnknownDay          = errors.New("unknown day name")
)

// PlanView is a fully resolved plan: the container, its daily workouts in
// calendar order, and each set joined with its exercise.
type PlanView struct {
	Plan *domain.WorkoutPlan
	Days []DayView
}

// DayView is one daily workout with its resolved sets.
type DayView struct {
	Workout domain.DailyWorkout
	Sets    []SetView
}

// SetView joins an exercise set with the exercise it prescribes.
type SetView struct {
	Set      domain.ExerciseSet
	Exercise domain.Exercise
}

// --- Service Interface ---
type PlanService interface {
	// GenerateWeeklyPlan builds a fresh plan for the current week from the
	// user's profile, replacing any existing plan for that week.
	GenerateWeeklyPlan(ctx context.Context, userID primitive.ObjectID) (*PlanView, error)

	// GenerateDailyWorkout generates a single day and appends it to the
	// current week's plan, creating the plan if the week has none. If the day
	// already has a workout the stored one wins.
	GenerateDailyWorkout(ctx context.Context, userID primitive.ObjectID, day string) (*DayView, error)

	// GetCurrentPlan returns the current week's plan with days in calendar
	// order and exercises resolved.
	GetCurrentPlan(ctx context.Context, userID primitive.ObjectID) (*PlanView, error)

	// ResolveDay joins a stored daily workout with its sets and exercises.
	ResolveDay(ctx context.Context, workout domain.DailyWorkout) (*DayView, error)
}

// --- Service Implementation ---

type planService struct {
	profileRepo  repository.ProfileRepository
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
	provider     recommend.Provider
	archive      storage.ResponseArchive
	now          func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	profileRepo repository.ProfileRepository,
	planRepo repository.PlanRepository,
	exerciseRepo repository.ExerciseRepository,
	provider recommend.Provider,
	archive storage.ResponseArchive,
) PlanService {
	return &planService{
		profileRepo:  profileRepo,
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		provider:     provider,
		archive:      archive,
		now:          time.Now,
	}
}

// GenerateWeeklyPlan runs the full pipeline: profile → provider → validate →
// normalize → transactional replace. A provider or validation failure leaves
// the previous plan untouched.
func (s *planService) GenerateWeeklyPlan(ctx context.Context, userID primitive.ObjectID) (*PlanView, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	response, err := s.provider.GenerateWeeklyPlan(ctx, summaryFromProfile(profile))
	if err != nil {
		return nil, err
	}
	s.archiveResponse(ctx, userID, response)

	if err := validateWeeklyResponse(response); err != nil {
		return nil, err
	}

	weekStart, _ := domain.WeekRange(s.now())
	plan := &domain.WorkoutPlan{
		UserID:            userID,
		WeekStartDate:     weekStart,
		EquipmentNeeded:   response.EquipmentNeeded,
		GeneralGuidelines: response.GeneralGuidelines,
	}

	days := make([]repository.DayInsert, 0, len(response.WeeklyPlan))
	exercises := newExerciseResolver(s.exerciseRepo)
	for _, entry := range response.WeeklyPlan {
		day, err := buildDay(ctx, entry, exercises)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	saved, err := s.planRepo.ReplaceForWeek(ctx, plan, days)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrPlanConflict
		}
		return nil, err
	}

	return assembleView(saved, days, exercises.byID), nil
}

// GenerateDailyWorkout generates one day's workout and appends it to the
// current week's plan.
func (s *planService) GenerateDailyWorkout(ctx context.Context, userID primitive.ObjectID, day string) (*DayView, error) {
	if domain.DayOrdinal(day) > 6 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.provider.GenerateDailyWorkout(ctx, summaryFromProfile(profile), day)
	if err != nil {
		return nil, err
	}
	s.archiveResponse(ctx, userID, entry)

	// The caller picked the day; the provider's label does not override it.
	entry.Day = day
	if err := validateDayEntry(*entry); err != nil {
		return nil, err
	}

	exercises := newExerciseResolver(s.exerciseRepo)
	dayInsert, err := buildDay(ctx, *entry, exercises)
	if err != nil {
		return nil, err
	}

	weekStart, _ := domain.WeekRange(s.now())
	plan, err := s.planRepo.GetByUserAndWeek(ctx, userID, weekStart)
	if errors.Is(err, repository.ErrNotFound) {
		// First generation this week: create the plan shell around the day.
		days := []repository.DayInsert{dayInsert}
		_, err = s.planRepo.ReplaceForWeek(ctx, &domain.WorkoutPlan{
			UserID:        userID,
			WeekStartDate: weekStart,
		}, days)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, ErrPlanConflict
			}
			return nil, err
		}
		// The repository assigned IDs into days on insert.
		return s.ResolveDay(ctx, days[0].Workout)
	}
	if err != nil {
		return nil, err
	}

	workout, err := s.planRepo.AppendDay(ctx, plan.ID, dayInsert)
	if err != nil {
		return nil, err
	}
	return s.ResolveDay(ctx, *workout)
}

// GetCurrentPlan resolves the current week's plan into a PlanView.
func (s *planService) GetCurrentPlan(ctx context.Context, userID primitive.ObjectID) (*PlanView, error) {
	weekStart, _ := domain.WeekRange(s.now())
	plan, err := s.planRepo.GetByUserAndWeek(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return s.planView(ctx, plan)
}

// planView loads a plan's workouts and sets and joins in the exercises.
func (s *planService) planView(ctx context.Context, plan *domain.WorkoutPlan) (*PlanView, error) {
	workouts, err := s.planRepo.GetDailyWorkouts(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	domain.SortWorkoutsByDay(workouts)

	setsByWorkout := make(map[primitive.ObjectID][]domain.ExerciseSet, len(workouts))
	var exerciseIDs []primitive.ObjectID
	for _, workout := range workouts {
		sets, err := s.planRepo.GetSetsByWorkout(ctx, workout.ID)
		if err != nil {
			return nil, err
		}
		setsByWorkout[workout.ID] = sets
		for _, set := range sets {
			exerciseIDs = append(exerciseIDs, set.ExerciseID)
		}
	}

	exercisesByID, err := s.exerciseRepo.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}

	view := &PlanView{Plan: plan, Days: make([]DayView, 0, len(workouts))}
	for _, workout := range workouts {
		dayView := DayView{Workout: workout}
		for _, set := range setsByWorkout[workout.ID] {
			dayView.Sets = append(dayView.Sets, SetView{
				Set:      set,
				Exercise: exercisesByID[set.ExerciseID],
			})
		}
		view.Days = append(view.Days, dayView)
	}
	return view, nil
}

// ResolveDay resolves a single stored workout into a DayView.
func (s *planService) ResolveDay(ctx context.Context, workout domain.DailyWorkout) (*DayView, error) {
	sets, err := s.planRepo.GetSetsByWorkout(ctx, workout.ID)
	if err != nil {
		return nil, err
	}
	exerciseIDs := make([]primitive.ObjectID, len(sets))
	for i, set := range sets {
		exerciseIDs[i] = set.ExerciseID
	}
	exercisesByID, err := s.exerciseRepo.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}

	view := &DayView{Workout: workout}
	for _, set := range sets {
		view.Sets = append(view.Sets, SetView{Set: set, Exercise: exercisesByID[set.ExerciseID]})
	}
	return view, nil
}

func (s *planService) loadProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// archiveResponse stores the raw provider payload for auditing. Best effort:
// an archive failure never blocks plan generation.
func (s *planService) archiveResponse(ctx context.Context, userID primitive.ObjectID, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if _, err := s.archive.Store(ctx, userID.Hex(), raw); err != nil {
		log.Printf("WARN: Failed to archive generation response for user %s: %v", userID.Hex(), err)
	}
}

// summaryFromProfile projects a profile into the provider's input shape,
// translating equipment codes to display labels.
func summaryFromProfile(profile *domain.UserProfile) recommend.ProfileSummary {
	labels := make([]string, len(profile.Equipment))
	for i, code := range profile.Equipment {
		labels[i] = domain.Equipment(code).Label()
	}
	return recommend.ProfileSummary{
		Goal:            string(profile.Goal),
		Equipment:       labels,
		WorkoutsPerWeek: profile.WorkoutsPerWeek,
	}
}

// --- Response validation ---

// validateWeeklyResponse checks the whole response before anything touches
// the database.
func validateWeeklyResponse(response *recommend.WeeklyPlanResponse) error {
	if len(response.WeeklyPlan) > 7 {
		return fmt.Errorf("%w: %d day entries for a 7-day week", ErrInvalidPlanResponse, len(response.WeeklyPlan))
	}
	if err := domain.ValidateEquipment(response.EquipmentNeeded); err != nil {
		return fmt.Errorf("%w: plan equipment: %v", ErrInvalidPlanResponse, err)
	}
	seen := make(map[string]bool, len(response.WeeklyPlan))
	for _, entry := range response.WeeklyPlan {
		if err := validateDayEntry(entry); err != nil {
			return err
		}
		// A second entry for the same day would otherwise surface as a unique
		// index violation mid-transaction and masquerade as a retryable
		// conflict.
		if seen[entry.Day] {
			return fmt.Errorf("%w: duplicate entry for %s", ErrInvalidPlanResponse, entry.Day)
		}
		seen[entry.Day] = true
	}
	return nil
}

// validateDayEntry checks one day entry and its exercise specs. Sets and reps
// have no defensible default, so their absence fails the whole response.
func validateDayEntry(entry recommend.DayEntry) error {
	if entry.Day == "" {
		return fmt.Errorf("%w: day entry missing day name", ErrInvalidPlanResponse)
	}
	if entry.Focus == "" {
		return fmt.Errorf("%w: day %q missing focus", ErrInvalidPlanResponse, entry.Day)
	}
	if entry.Intensity < 1 || entry.Intensity > 10 {
		return fmt.Errorf("%w: day %q intensity %d out of range 1-10", ErrInvalidPlanResponse, entry.Day, entry.Intensity)
	}
	for _, spec := range entry.Exercises {
		if spec.Name == "" {
			return fmt.Errorf("%w: day %q has an unnamed exercise", ErrInvalidPlanResponse, entry.Day)
		}
		if spec.Sets == nil {
			return fmt.Errorf("%w: exercise %q missing sets", ErrInvalidPlanResponse, spec.Name)
		}
		if *spec.Sets < 1 {
			return fmt.Errorf("%w: exercise %q has non-positive sets", ErrInvalidPlanResponse, spec.Name)
		}
		if spec.Reps == "" {
			return fmt.Errorf("%w: exercise %q missing reps", ErrInvalidPlanResponse, spec.Name)
		}
		if err := domain.ValidateEquipment(spec.Equipment); err != nil {
			return fmt.Errorf("%w: exercise %q: %v", ErrInvalidPlanResponse, spec.Name, err)
		}
	}
	return nil
}

// --- Normalization ---

// exerciseResolver deduplicates get-or-create calls within one generation:
// the same (name, muscle groups) identity resolves once and every later
// reference reuses the row.
type exerciseResolver struct {
	repo  repository.ExerciseRepository
	cache map[string]primitive.ObjectID
	byID  map[primitive.ObjectID]domain.Exercise
}

func newExerciseResolver(repo repository.ExerciseRepository) *exerciseResolver {
	return &exerciseResolver{
		repo:  repo,
		cache: make(map[string]primitive.ObjectID),
		byID:  make(map[primitive.ObjectID]domain.Exercise),
	}
}

func (r *exerciseResolver) resolve(ctx context.Context, spec recommend.ExerciseSpec) (primitive.ObjectID, error) {
	muscleKey := domain.MuscleKey(spec.MuscleGroups)
	cacheKey := spec.Name + "\x00" + muscleKey
	if id, ok := r.cache[cacheKey]; ok {
		return id, nil
	}

	difficulty := spec.Difficulty
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}

	exercise, err := r.repo.GetOrCreate(ctx, &domain.Exercise{
		Name:         spec.Name,
		MuscleKey:    muscleKey,
		Description:  spec.Description,
		MuscleGroups: spec.MuscleGroups,
		Equipment:    spec.Equipment,
		Difficulty:   difficulty,
		Instructions: spec.Instructions,
		Tips:         spec.Tips,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	r.cache[cacheKey] = exercise.ID
	r.byID[exercise.ID] = *exercise
	return exercise.ID, nil
}

// buildDay normalizes one validated day entry into its storable form,
// applying the documented defaults.
func buildDay(ctx context.Context, entry recommend.DayEntry, exercises *exerciseResolver) (repository.DayInsert, error) {
	day := repository.DayInsert{
		Workout: domain.DailyWorkout{
			Day:         entry.Day,
			Focus:       entry.Focus,
			Description: entry.Description,
			Duration:    entry.Duration,
			Intensity:   entry.Intensity,
			Notes:       entry.Notes,
		},
	}

	for _, spec := range entry.Exercises {
		exerciseID, err := exercises.resolve(ctx, spec)
		if err != nil {
			return repository.DayInsert{}, err
		}

		rest := spec.Rest
		if rest == "" {
			rest = domain.DefaultRestTime
		}
		day.Sets = append(day.Sets, domain.ExerciseSet{
			ExerciseID: exerciseID,
			Sets:       *spec.Sets,
			Reps:       spec.Reps,
			RestTime:   rest,
			Weight:     spec.Weight,
			Notes:      spec.Notes,
		})
	}
	return day, nil
}

// assembleView builds a PlanView from freshly inserted rows without another
// round of reads.
func assembleView(plan *domain.WorkoutPlan, days []repository.DayInsert, exercisesByID map[primitive.ObjectID]domain.Exercise) *PlanView {
	view := &PlanView{Plan: plan, Days: make([]DayView, 0, len(days))}
	for _, day := range days {
		dayView := DayView{Workout: day.Workout}
		for _, set := range day.Sets {
			dayView.Sets = append(dayView.Sets, SetView{Set: set, Exercise: exercisesByID[set.ExerciseID]})
		}
		view.Days = append(view.Days, dayView)
	}
	sortDayViews(view.Days)
	return view
}

// sortDayViews orders day views Sunday through Saturday, matching
// domain.SortWorkoutsByDay.
func sortDayViews(days []DayView) {
	sort.SliceStable(days, func(i, j int) bool {
		return domain.DayOrdinal(days[i].Workout.Day) < domain.DayOrdinal(days[j].Workout.Day)
	})
}
