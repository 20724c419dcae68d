package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/config"
	httpapi "github.com/didigamnithin/Homemates2.0-Backend/internal/http"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/logger"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/secret"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/service"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/store"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "homemates-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("Starting Homemates backend",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("auth_enabled", cfg.AuthEnabled),
	)

	properties, err := repository.NewCSVPropertiesRepo(filepath.Join(cfg.DataDir, "properties.csv"))
	if err != nil {
		log.Fatal("open property store failed", zap.Error(err))
	}
	tenants, err := repository.NewCSVTenantsRepo(filepath.Join(cfg.DataDir, "tenants.csv"))
	if err != nil {
		log.Fatal("open tenant store failed", zap.Error(err))
	}
	leads, err := repository.NewJSONLeadsRepo(filepath.Join(cfg.DataDir, "leads.json"))
	if err != nil {
		log.Fatal("open lead store failed", zap.Error(err))
	}
	users, err := repository.NewJSONUsersRepo(filepath.Join(cfg.DataDir, "users.json"))
	if err != nil {
		log.Fatal("open user store failed", zap.Error(err))
	}
	calls, err := repository.NewJSONCallsRepo(filepath.Join(cfg.DataDir, "calls.json"))
	if err != nil {
		log.Fatal("open call store failed", zap.Error(err))
	}

	kv := openKV(cfg, log)
	sessions := httpapi.NewSessions(kv, cfg.AuthEnabled)
	keeper := secret.NewKeeper(cfg.TokenSecret)

	voiceClient := service.NewVoiceAgentClient(cfg.VoiceAgent.BaseURL, cfg.VoiceAgent.APIKey, log)
	dialerClient := service.NewDialerClient(cfg.Dialer.BaseURL, cfg.Dialer.APIKey, log)
	searchClient := service.NewSearchClient(cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.NumResults, log)
	leadService := service.NewLeadService(leads, tenants, properties, log)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(users, sessions, keeper, log))
	router.RegisterPropertyRoutes(httpapi.NewPropertyHandler(properties, sessions, log))
	router.RegisterTenantRoutes(httpapi.NewTenantHandler(tenants, log))
	router.RegisterLeadRoutes(httpapi.NewLeadHandler(leads, leadService, log))
	router.RegisterUploadRoutes(httpapi.NewUploadHandler(properties, tenants, log))
	router.RegisterVoiceAgentRoutes(httpapi.NewVoiceAgentHandler(voiceClient, log))
	router.RegisterCallRoutes(httpapi.NewCallHandler(calls, dialerClient, voiceClient, leadService, log))
	router.RegisterSearchRoutes(httpapi.NewSearchHandler(searchClient, log))

	server := service.NewServer(cfg.HTTP.Addr, router, log)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("Homemates backend stopped")
}

// openKV connects to Redis when configured and reachable, otherwise the
// sessions live in process memory and die with it.
func openKV(cfg *config.Config, log *zap.Logger) store.KV {
	if !cfg.Redis.Enabled {
		log.Info("Redis disabled, using in-memory sessions")
		return store.NewMemoryKV()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, falling back to in-memory sessions",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
		return store.NewMemoryKV()
	}

	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	return store.NewRedisKV(client)
}
