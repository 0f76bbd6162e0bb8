package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/pitwall/gridbet/external/racefeed"
	"github.com/pitwall/gridbet/internal/config"
	"github.com/pitwall/gridbet/internal/domain/bet"
	"github.com/pitwall/gridbet/internal/domain/driver"
	"github.com/pitwall/gridbet/internal/domain/race"
	"github.com/pitwall/gridbet/internal/domain/scoring"
	"github.com/pitwall/gridbet/internal/domain/user"
	"github.com/pitwall/gridbet/internal/infrastructure/auth"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/memory"
	"github.com/pitwall/gridbet/internal/infrastructure/repository/postgres"
	"github.com/pitwall/gridbet/internal/interfaces/httpapi"
	"github.com/pitwall/gridbet/internal/platform/cache"
	idgen "github.com/pitwall/gridbet/internal/platform/id"
	"github.com/pitwall/gridbet/internal/platform/logging"
	"github.com/pitwall/gridbet/internal/platform/resilience"
	"github.com/pitwall/gridbet/internal/usecase"
)

type repositories struct {
	races   race.Repository
	bets    bet.Repository
	users   user.Repository
	drivers driver.Repository
	rules   scoring.Repository
}

// NewHTTPServer wires repositories, services, and the HTTP layer into a
// ready-to-run server. The returned close function releases the database
// handle when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeRepos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tokenManager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTokenTTL)
	if err != nil {
		closeRepos()
		return nil, nil, fmt.Errorf("build token manager: %w", err)
	}

	idGen := idgen.NewRandomGenerator()
	rulesCache := cache.NewStore(cfg.CacheTTL)

	feedClient := racefeed.NewClient(racefeed.ClientConfig{
		BaseURL:    cfg.RaceFeedBaseURL,
		Timeout:    cfg.RaceFeedTimeout,
		MaxRetries: cfg.RaceFeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RaceFeedCircuitEnabled,
			FailureThreshold: cfg.RaceFeedCircuitFailureCount,
			OpenTimeout:      cfg.RaceFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RaceFeedCircuitHalfOpenMaxReq,
		},
	})

	authSvc := usecase.NewAuthService(repos.users, tokenManager)
	raceSvc := usecase.NewRaceService(repos.races, repos.bets, idGen)
	betSvc := usecase.NewBetService(repos.bets, repos.races, idGen)
	driverSvc := usecase.NewDriverService(repos.drivers, idGen)
	userSvc := usecase.NewUserService(repos.users, idGen)
	rulesSvc := usecase.NewRulesService(repos.rules, rulesCache, idGen)
	scoringSvc := usecase.NewScoringService(repos.races, repos.bets, repos.users, repos.rules)
	leaderboardSvc := usecase.NewLeaderboardService(repos.users, repos.bets, repos.races)
	calendarSvc := usecase.NewCalendarService(repos.races, feedClient, idGen, logger)

	handler := httpapi.NewHandler(
		authSvc,
		raceSvc,
		betSvc,
		driverSvc,
		userSvc,
		rulesSvc,
		scoringSvc,
		leaderboardSvc,
		calendarSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, tokenManager, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		closeRepos()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeRepos, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("database url not set, using seeded in-memory repositories")
		return repositories{
			races:   memory.NewRaceRepository(memory.SeedRaces()),
			bets:    memory.NewBetRepository(nil),
			users:   memory.NewUserRepository(memory.SeedUsers()),
			drivers: memory.NewDriverRepository(memory.SeedDrivers()),
			rules:   memory.NewRulesRepository(memory.SeedRules()),
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg.DBURL)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL))
	return repositories{
		races:   postgres.NewRaceRepository(db),
		bets:    postgres.NewBetRepository(db),
		users:   postgres.NewUserRepository(db),
		drivers: postgres.NewDriverRepository(db),
		rules:   postgres.NewRulesRepository(db),
	}, db.Close, nil
}

func openDB(dbURL string) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	return db, nil
}
