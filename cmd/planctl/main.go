package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"fitforge/fitness-planner/internal/config"
	"fitforge/fitness-planner/internal/domain"
	"fitforge/fitness-planner/internal/notify"
	"fitforge/fitness-planner/internal/recommend"
	"fitforge/fitness-planner/internal/repository"
	mongorepo "fitforge/fitness-planner/internal/repository/mongo"
	"fitforge/fitness-planner/internal/service"
	"fitforge/fitness-planner/internal/storage"

	"go.mongodb.org/mongo-driver/mongo"
)

const usage = `Usage: planctl <command> [flags]

Commands:
  generate      generate the current week's plan for a user
  send-plan     email weekly plans (all users, or one with -email)
  send-workout  email the day's unsent workouts (and SMS when configured)
  suggest       email a recovery-based workout suggestion
`

// app bundles the wired repositories and services the subcommands share.
type app struct {
	cfg      config.Config
	dbClient *mongo.Client

	userRepo repository.UserRepository
	planRepo repository.PlanRepository

	planSvc     service.PlanService
	deliverySvc service.DeliveryService
	recoverySvc service.RecoveryService
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	a, err := newApp()
	if err != nil {
		log.Fatalf("planctl: %v", err)
	}
	defer func() {
		if err := mongorepo.DisconnectDB(a.dbClient); err != nil {
			log.Printf("WARN: failed to disconnect MongoDB: %v", err)
		}
	}()

	ctx := context.Background()
	switch command {
	case "generate":
		err = a.runGenerate(ctx, args)
	case "send-plan":
		err = a.runSendPlan(ctx, args)
	case "send-workout":
		err = a.runSendWorkout(ctx, args)
	case "suggest":
		err = a.runSuggest(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("planctl %s: %v", command, err)
	}
}

// newApp loads configuration and wires the same stack the server uses.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)

	provider, err := recommend.NewProvider(cfg.AI)
	if err != nil {
		return nil, err
	}

	var archive storage.ResponseArchive = storage.NoopArchive{}
	if cfg.Archive.BucketName != "" {
		archive, err = storage.NewS3Archive(cfg.Archive)
		if err != nil {
			return nil, err
		}
	}

	var mailer notify.Mailer = &notify.LogMailer{}
	if cfg.Email.From != "" {
		mailer, err = notify.NewSESMailer(cfg.Email)
		if err != nil {
			return nil, err
		}
	}

	var smsSender notify.SMSSender
	if cfg.SMS.Enabled {
		smsSender, err = notify.NewSNSSender(cfg.SMS)
		if err != nil {
			return nil, err
		}
	}

	userRepo := mongorepo.NewMongoUserRepository(appDB)
	profileRepo := mongorepo.NewMongoProfileRepository(appDB)
	exerciseRepo := mongorepo.NewMongoExerciseRepository(appDB)
	planRepo := mongorepo.NewMongoPlanRepository(appDB)

	planSvc := service.NewPlanService(profileRepo, planRepo, exerciseRepo, provider, archive)
	deliverySvc := service.NewDeliveryService(userRepo, profileRepo, planRepo, planSvc, mailer, smsSender)
	recoverySvc := service.NewRecoveryService(userRepo, profileRepo, mailer, cfg.Whoop)

	return &app{
		cfg:         cfg,
		dbClient:    dbClient,
		userRepo:    userRepo,
		planRepo:    planRepo,
		planSvc:     planSvc,
		deliverySvc: deliverySvc,
		recoverySvc: recoverySvc,
	}, nil
}

// runGenerate builds a fresh weekly plan for one user.
func (a *app) runGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	email := fs.String("email", "", "email of the user to generate a plan for")
	debug := fs.Bool("debug", false, "print the full generated plan")
	fs.Parse(args)
	if *email == "" {
		return fmt.Errorf("-email is required")
	}

	user, err := a.userRepo.GetByEmail(ctx, *email)
	if err != nil {
		return fmt.Errorf("user %s: %w", *email, err)
	}

	view, err := a.planSvc.GenerateWeeklyPlan(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Generated plan %s for %s (week of %s)\n",
		view.Plan.ID.Hex(), *email, view.Plan.WeekStartDate.Format("2006-01-02"))
	for _, day := range view.Days {
		fmt.Printf("  %s: %s\n", day.Workout.Day, day.Workout.Focus)
		if *debug {
			for _, set := range day.Sets {
				fmt.Printf("    - %s: %dx%s\n", set.Exercise.Name, set.Set.Sets, set.Set.Reps)
			}
		}
	}
	return nil
}

// runSendPlan emails weekly plans.
func (a *app) runSendPlan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send-plan", flag.ExitOnError)
	email := fs.String("email", "", "restrict delivery to one user")
	fs.Parse(args)

	if *email != "" {
		if err := a.deliverySvc.SendWeeklyPlan(ctx, *email); err != nil {
			return err
		}
		fmt.Printf("Sent weekly plan to %s\n", *email)
		return nil
	}

	// No filter: send to every user with a plan this week.
	weekStart, _ := domain.WeekRange(time.Now())
	plans, err := a.planRepo.ListByWeek(ctx, weekStart)
	if err != nil {
		return err
	}
	for _, plan := range plans {
		user, err := a.userRepo.GetByID(ctx, plan.UserID)
		if err != nil {
			log.Printf("ERROR: plan %s: load user: %v", plan.ID.Hex(), err)
			continue
		}
		if err := a.deliverySvc.SendWeeklyPlan(ctx, user.Email); err != nil {
			log.Printf("ERROR: failed to send weekly plan to %s: %v", user.Email, err)
			continue
		}
		fmt.Printf("Sent weekly plan to %s\n", user.Email)
	}
	return nil
}

// runSendWorkout delivers the day's unsent workouts.
func (a *app) runSendWorkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send-workout", flag.ExitOnError)
	email := fs.String("email", "", "restrict delivery to one user")
	dateStr := fs.String("date", "", "date to deliver (YYYY-MM-DD, default today)")
	fs.Parse(args)

	date := time.Now().UTC()
	if *dateStr != "" {
		parsed, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			return fmt.Errorf("invalid -date %q, use YYYY-MM-DD", *dateStr)
		}
		date = parsed
	}

	report, err := a.deliverySvc.SendDailyWorkouts(ctx, date, *email)
	if err != nil {
		return err
	}
	fmt.Printf("Sent %d, skipped %d\n", report.Sent, report.Skipped)
	for _, failure := range report.Failures {
		log.Printf("ERROR: %s", failure)
	}
	return nil
}

// runSuggest emails a recovery-based workout suggestion.
func (a *app) runSuggest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	email := fs.String("email", "", "email of the user to suggest for")
	preference := fs.String("preference", "", "cardio, strength or mixed (default: derived from goal)")
	fs.Parse(args)
	if *email == "" {
		return fmt.Errorf("-email is required")
	}

	workout, err := a.recoverySvc.SendSuggestion(ctx, *email, *preference)
	if err != nil {
		return err
	}
	fmt.Printf("Suggested for %s: %s\n", *email, workout)
	return nil
}
