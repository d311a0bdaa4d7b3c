package app

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/league"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	cacherepo "github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-cricket/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const seedTimeout = 30 * time.Second

type repositories struct {
	leagues league.Repository
	players player.Repository
	squads  fantasy.Repository
	close   func() error
}

// NewHTTPServer wires storage, services and the router. The returned closer
// releases the database pool for the postgres driver.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	logger = logging.OrDefault(logger)

	repos, err := newRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	locks := &resilience.KeyedMutex{}
	handler := httpapi.NewHandler(
		usecase.NewLeagueService(repos.leagues),
		usecase.NewPlayerService(repos.leagues, repos.players),
		usecase.NewSquadService(repos.leagues, repos.players, repos.squads, idgen.NewUUIDGenerator("sq"), locks, logger),
		usecase.NewTransferService(repos.leagues, repos.players, repos.squads, locks, logger),
		usecase.NewReversalService(repos.leagues, repos.squads, locks, logger),
		usecase.NewRecalculationService(repos.leagues, repos.squads, locks, logger, cfg.RecalcMaxWorkers),
		usecase.NewPoolSyncService(repos.leagues, repos.players, repos.squads, locks, logger, cfg.RecalcMaxWorkers),
		usecase.NewStandingsService(repos.leagues, repos.squads),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = repos.close()
		return nil, nil, crerr.New("http server addr cannot be empty")
	}

	return server, repos.close, nil
}

func newRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		defer cancel()
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, crerr.Wrap(err, "bootstrap seed")
		}

		repos = repositories{
			leagues: postgres.NewLeagueRepository(db),
			players: postgres.NewPlayerRepository(db),
			squads:  postgres.NewSquadRepository(db),
			close:   db.Close,
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))
	default:
		repos = repositories{
			leagues: memory.NewLeagueRepository(memory.SeedLeagues()),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			squads:  memory.NewSquadRepository(),
			close:   func() error { return nil },
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if cfg.CacheEnabled {
		breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Enabled:          cfg.StoreCircuitEnabled,
			FailureThreshold: cfg.StoreCircuitFailureCount,
			OpenTimeout:      cfg.StoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StoreCircuitHalfOpenMaxReq,
		})
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, basecache.NewStore(cfg.CacheTTL), breaker)
		repos.players = cacherepo.NewPlayerRepository(repos.players, basecache.NewStore(cfg.CacheTTL), breaker)
		logger.Info("read cache enabled", "ttl", cfg.CacheTTL.String(), "circuit_enabled", cfg.StoreCircuitEnabled)
	}

	return repos, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping postgres")
	}

	return db, nil
}
