package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/hanifm/school-management/internal"
	"github.com/hanifm/school-management/internal/assignment"
	assignmentPostgres "github.com/hanifm/school-management/internal/assignment/postgres"
	"github.com/hanifm/school-management/internal/attendance"
	attendancePostgres "github.com/hanifm/school-management/internal/attendance/postgres"
	"github.com/hanifm/school-management/internal/auth"
	authPostgres "github.com/hanifm/school-management/internal/auth/postgres"
	authRedis "github.com/hanifm/school-management/internal/auth/redis"
	"github.com/hanifm/school-management/internal/classroom"
	classroomPostgres "github.com/hanifm/school-management/internal/classroom/postgres"
	"github.com/hanifm/school-management/internal/cms"
	cmsPostgres "github.com/hanifm/school-management/internal/cms/postgres"
	"github.com/hanifm/school-management/internal/core/events"
	"github.com/hanifm/school-management/internal/crm"
	crmPostgres "github.com/hanifm/school-management/internal/crm/postgres"
	"github.com/hanifm/school-management/internal/fee"
	feePostgres "github.com/hanifm/school-management/internal/fee/postgres"
	"github.com/hanifm/school-management/internal/grade"
	gradePostgres "github.com/hanifm/school-management/internal/grade/postgres"
	"github.com/hanifm/school-management/internal/notification"
	notificationPostgres "github.com/hanifm/school-management/internal/notification/postgres"
	"github.com/hanifm/school-management/internal/student"
	studentPostgres "github.com/hanifm/school-management/internal/student/postgres"
	"github.com/hanifm/school-management/internal/teacher"
	teacherPostgres "github.com/hanifm/school-management/internal/teacher/postgres"
	"github.com/hanifm/school-management/internal/transport/rest"
	"github.com/hanifm/school-management/internal/transport/swagger"
	"github.com/hanifm/school-management/internal/user"
	userPostgres "github.com/hanifm/school-management/internal/user/postgres"
	"github.com/hanifm/school-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Observability.Logging.Format == "json" {
		logger.Init("production")
	} else {
		logger.Init("development")
	}
	log := logger.L()

	if err := swagger.ValidateSpec("./api/openapi.yml"); err != nil {
		log.Warn("openapi spec validation failed", "error", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the same connection pool the health checks and
	// goose use.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	var activityCache auth.ActivityCache
	if config.Redis.Enabled() {
		client := goredis.NewClient(&goredis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		activityCache = authRedis.NewActivityCache(client)
		log.Info("redis session cache enabled", "addr", config.Redis.Addr)
	}

	bus := events.NewEventBus(log)
	roles := auth.NewRoleTable()

	sessionRepo := authPostgres.NewSessionRepository(gormDB)
	tracker := auth.NewSessionTracker(sessionRepo, activityCache, log)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(
		authPostgres.NewRepository(gormDB),
		tracker,
		tokenGen,
		roles,
		bus,
		config.Security.BCryptCost,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
		log,
	)

	userRepo := userPostgres.NewRepository(gormDB)
	studentRepo := studentPostgres.NewStudentRepository(gormDB)
	teacherRepo := teacherPostgres.NewTeacherRepository(gormDB)

	notificationService := notification.NewService(
		notificationPostgres.NewRepository(gormDB), userRepo, studentRepo, log)
	notificationService.RegisterEventHandlers(bus)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(user.NewService(userRepo, config.Security.BCryptCost, log)),
		Student:      student.NewHandler(student.NewService(studentRepo, log)),
		Teacher:      teacher.NewHandler(teacher.NewService(teacherRepo, log)),
		Classroom:    classroom.NewHandler(classroom.NewService(classroomPostgres.NewClassroomRepository(gormDB), log)),
		Assignment:   assignment.NewHandler(assignment.NewService(assignmentPostgres.NewAssignmentRepository(gormDB), log), studentRepo, teacherRepo),
		Grade:        grade.NewHandler(grade.NewService(gradePostgres.NewGradeRepository(gormDB), log)),
		Attendance:   attendance.NewHandler(attendance.NewService(attendancePostgres.NewRepository(gormDB), log)),
		Fee:          fee.NewHandler(fee.NewService(feePostgres.NewRepository(gormDB), bus, log)),
		Notification: notification.NewHandler(notificationService),
		CMS:          cms.NewHandler(cms.NewService(cmsPostgres.NewRepository(gormDB), log)),
		CRM:          crm.NewHandler(crm.NewService(crmPostgres.NewRepository(gormDB), bus, log)),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, handlers, auth.NewRBAC(roles, log), log)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: log,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
