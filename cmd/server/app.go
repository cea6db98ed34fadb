package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jpcastanov/siga-api/internal/config"
	"github.com/jpcastanov/siga-api/internal/platform/logger"
	"github.com/jpcastanov/siga-api/internal/platform/postgres"
	"github.com/jpcastanov/siga-api/internal/service"
	"github.com/jpcastanov/siga-api/internal/service/auth"
)

// application holds the initialized dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	periodService     service.PeriodService
	careerService     service.CareerService
	curriculumService service.CurriculumService
	subjectService    service.SubjectService
	scheduleService   service.ScheduleService
	noteService       service.NoteService
	userService       service.UserService
}

// initializeApp loads configuration, connects to the database, runs the
// migrations, and wires the store and service layers together.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_period", cfg.Academic.DefaultPeriod)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, err
	}

	// Stores
	periodStore := postgres.NewPostgresPeriodStore(db, appLogger)
	careerStore := postgres.NewPostgresCareerStore(db, appLogger)
	curriculumStore := postgres.NewPostgresCurriculumStore(db, appLogger)
	subjectStore := postgres.NewPostgresSubjectStore(db, appLogger)
	scheduleStore := postgres.NewPostgresScheduleStore(db, appLogger)
	noteStore := postgres.NewPostgresNoteStore(db, appLogger)
	userStore := postgres.NewPostgresUserStore(db, appLogger)

	// Auth components
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	// Services
	periodService, err := service.NewPeriodService(periodStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create period service: %w", err)
	}

	careerService, err := service.NewCareerService(
		careerStore,
		curriculumStore,
		service.NewTxRunner(db),
		cfg.Academic.DefaultPeriod,
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create career service: %w", err)
	}

	curriculumService, err := service.NewCurriculumService(
		curriculumStore,
		careerStore,
		periodStore,
		subjectStore,
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create curriculum service: %w", err)
	}

	subjectService, err := service.NewSubjectService(subjectStore, periodStore, userStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create subject service: %w", err)
	}

	scheduleService, err := service.NewScheduleService(scheduleStore, subjectStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule service: %w", err)
	}

	noteService, err := service.NewNoteService(noteStore, subjectStore, periodStore, userStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create note service: %w", err)
	}

	userService, err := service.NewUserService(
		userStore,
		auth.NewBcryptHasher(),
		auth.NewBcryptVerifier(),
		jwtService,
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            appLogger,
		db:                db,
		jwtService:        jwtService,
		periodService:     periodService,
		careerService:     careerService,
		curriculumService: curriculumService,
		subjectService:    subjectService,
		scheduleService:   scheduleService,
		noteService:       noteService,
		userService:       userService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
