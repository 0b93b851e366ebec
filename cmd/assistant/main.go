// cmd/assistant/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"krishi-assistant/internal/common/cache"
	"krishi-assistant/internal/common/camunda"
	"krishi-assistant/internal/common/config"
	"krishi-assistant/internal/common/database"
	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/observability"
	"krishi-assistant/internal/common/providers"
	"krishi-assistant/internal/common/providers/agmarknet"
	"krishi-assistant/internal/common/providers/cropdb"
	"krishi-assistant/internal/common/providers/nominatim"
	"krishi-assistant/internal/common/providers/openmeteo"
	"krishi-assistant/internal/common/providers/schemes"
	"krishi-assistant/internal/common/ratelimit"
	"krishi-assistant/internal/models"
	aq "krishi-assistant/internal/workers/conversation/answer-query"
	sessioncontext "krishi-assistant/internal/workers/conversation/session-context"
	"krishi-assistant/pkg/registry"
)

// backends holds the optional stores. Any of them may be nil; the assistant
// then runs with in-memory state and reference-table answers.
type backends struct {
	redis    *database.RedisClient
	postgres *database.PostgresClient
	es       *database.ElasticsearchClient
}

func (b *backends) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.postgres != nil {
		_ = b.postgres.Close()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting krishi assistant", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores := connectBackends(ctx, cfg, log)
	defer stores.Close()

	lex := buildLexicon(cfg, log)
	limiters := buildLimiters(cfg)

	var responseCache cache.Store = cache.NewMemoryStore()
	var sessions sessioncontext.Store
	if stores.redis != nil {
		responseCache = cache.NewRedisStore(stores.redis.Client, "agri:cache:")
		sessions = sessioncontext.NewRedisStore(
			stores.redis.Client,
			cfg.Session.KeyPrefix,
			config.GetDuration(cfg.Session.InactivityWindow),
		)
	}

	var geocoder providers.Geocoder
	if gc := cfg.Providers.Geocoding; gc.Enabled {
		geocoder = providers.NewCachedGeocoder(
			nominatim.New(gc, limiters.Get(providers.NameGeocoding), log),
			responseCache,
			config.GetDuration(gc.CacheTTL),
			log,
		)
	}

	handler := aq.NewHandler(aq.FromAppConfig(cfg), aq.Dependencies{
		Lexicon:       lex,
		Geocoder:      geocoder,
		Sessions:      sessions,
		Cache:         responseCache,
		Fetchers:      buildFetchers(ctx, cfg, stores, limiters, log),
		Observability: obs,
	}, log)

	var jobWorker *camunda.Worker
	if cfg.Camunda.Enabled && config.IsWorkerEnabled(cfg, aq.TaskType) {
		jobWorker = startJobWorker(ctx, cfg, handler, log)
	}

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      routes(handler, stores),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server failed", nil)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed", nil)
	}
	if jobWorker != nil {
		jobWorker.Stop()
	}

	log.Info("Krishi assistant stopped", nil)
}

func connectBackends(ctx context.Context, cfg *config.Config, log logger.Logger) *backends {
	b := &backends{}

	if cfg.Database.Redis.Enabled() {
		err := database.RetryWithBackoff(ctx, func(ctx context.Context) error {
			client, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := client.Ping(ctx); err != nil {
				_ = client.Close()
				return err
			}
			b.redis = client
			return nil
		}, 5, 2*time.Second, log, "Redis connection")
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, using in-memory cache and sessions", nil)
		}
	}

	if cfg.Database.Postgres.Enabled() {
		err := database.RetryWithBackoff(ctx, func(ctx context.Context) error {
			client, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := client.Ping(ctx); err != nil {
				_ = client.Close()
				return err
			}
			b.postgres = client
			return nil
		}, 5, 2*time.Second, log, "PostgreSQL connection")
		if err != nil {
			log.WithError(err).Warn("PostgreSQL unavailable, crop advice from reference tables", nil)
		}
	}

	if cfg.Database.Elasticsearch.Enabled() {
		err := database.RetryWithBackoff(ctx, func(ctx context.Context) error {
			client, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := client.Ping(ctx); err != nil {
				return err
			}
			b.es = client
			return nil
		}, 5, 2*time.Second, log, "Elasticsearch connection")
		if err != nil {
			log.WithError(err).Warn("Elasticsearch unavailable, schemes from reference tables", nil)
		}
	}

	return b
}

func buildLexicon(cfg *config.Config, log logger.Logger) *lexicon.Lexicon {
	path := cfg.Lexicon.RegistryPath
	if path == "" {
		return lexicon.New()
	}

	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.WithError(err).Warn("Lexicon registry not loaded, using built-in vocabulary", map[string]interface{}{
			"path": path,
		})
		return lexicon.New()
	}
	return lexicon.New(reg.Options()...)
}

// buildLimiters creates one limiter per provider. Limiters are shared by
// every request so concurrent turns serialize on the same provider clock.
func buildLimiters(cfg *config.Config) *ratelimit.Registry {
	reg := ratelimit.NewRegistry()
	for name, p := range cfg.Providers.All() {
		reg.Register(ratelimit.New(name, config.GetDuration(p.MinInterval), config.GetDuration(p.MaxWait)))
	}
	return reg
}

func buildFetchers(ctx context.Context, cfg *config.Config, b *backends, limiters *ratelimit.Registry, log logger.Logger) map[models.Intent]providers.Fetcher {
	fetchers := make(map[models.Intent]providers.Fetcher)
	p := cfg.Providers

	if p.MarketPrice.Enabled {
		fetchers[models.IntentMarketPrice] = agmarknet.New(p.MarketPrice, limiters.Get(providers.NameMarketPrice), log)
	}
	if p.Weather.Enabled {
		fetchers[models.IntentWeather] = openmeteo.New(p.Weather, limiters.Get(providers.NameWeather), log)
	}
	if p.Crops.Enabled && b.postgres != nil {
		fetchers[models.IntentCropRecommendation] = cropdb.New(b.postgres.DB, limiters.Get(providers.NameCrops), log)
	}
	if p.Schemes.Enabled && b.es != nil {
		sc := schemes.New(b.es.Client, b.es.Index, limiters.Get(providers.NameSchemes), log)
		if err := sc.EnsureIndex(ctx); err != nil {
			log.WithError(err).Warn("Scheme index not ready", nil)
		}
		fetchers[models.IntentGovernmentScheme] = sc
	}

	for intent, f := range fetchers {
		log.Info("Live provider enabled", map[string]interface{}{
			"intent":   intent,
			"provider": f.Name(),
		})
	}
	return fetchers
}

func startJobWorker(ctx context.Context, cfg *config.Config, handler *aq.Handler, log logger.Logger) *camunda.Worker {
	client, err := camunda.NewClient(ctx, cfg.Camunda)
	if err != nil {
		log.WithError(err).Error("Zeebe unavailable, job worker not started", nil)
		return nil
	}

	wcfg := config.GetWorkerConfig(cfg, aq.TaskType)
	return camunda.NewWorker(client, aq.TaskType, wcfg.MaxJobsActive, config.GetDuration(wcfg.Timeout), handler, log)
}

func routes(handler *aq.Handler, b *backends) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(aq.Route, handler)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		deps := map[string]string{}
		ready := true
		if b.redis != nil {
			deps["redis"] = "ok"
			if err := b.redis.Ping(r.Context()); err != nil {
				deps["redis"] = err.Error()
				ready = false
			}
		}
		if b.postgres != nil {
			deps["postgres"] = "ok"
			if err := b.postgres.Ping(r.Context()); err != nil {
				deps["postgres"] = err.Error()
				ready = false
			}
		}

		status := http.StatusOK
		body := map[string]interface{}{"status": "ready", "dependencies": deps}
		if !ready {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		writeStatus(w, status, body)
	})

	return mux
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
