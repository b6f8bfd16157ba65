package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/janisto/travel-profiles/internal/config"
	"github.com/janisto/travel-profiles/internal/http/health"
	"github.com/janisto/travel-profiles/internal/http/v1/routes"
	"github.com/janisto/travel-profiles/internal/platform/auth"
	"github.com/janisto/travel-profiles/internal/platform/database"
	"github.com/janisto/travel-profiles/internal/platform/firebase"
	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	"github.com/janisto/travel-profiles/internal/platform/mail"
	appmiddleware "github.com/janisto/travel-profiles/internal/platform/middleware"
	"github.com/janisto/travel-profiles/internal/platform/password"
	"github.com/janisto/travel-profiles/internal/platform/respond"
	"github.com/janisto/travel-profiles/internal/platform/storage"
	profilerepo "github.com/janisto/travel-profiles/internal/repository/profile"
	travellerrepo "github.com/janisto/travel-profiles/internal/repository/traveller"
	profilesvc "github.com/janisto/travel-profiles/internal/service/profile"
	"github.com/janisto/travel-profiles/internal/service/recovery"
	travellersvc "github.com/janisto/travel-profiles/internal/service/traveller"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/api-docs"

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "load configuration", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogWarn(ctx, "invalid log level, keeping default", zap.Error(err))
	}

	deps, err := newApp(ctx, cfg)
	if err != nil {
		applog.LogFatal(ctx, "initialize application", err)
	}
	defer deps.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, deps.services, deps.db),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		deps.Close()
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}

// app owns the long-lived clients behind the HTTP services.
type app struct {
	db       *database.DB
	services routes.Services
	closers  []func() error
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	db, err := database.Open(ctx, cfg.Postgres, func(pc *pgxpool.Config) {
		pc.ConnConfig.RuntimeParams["application_name"] = "travel-profiles"
	})
	if err != nil {
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, func() error { db.Close(); return nil })
	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx, &profilerepo.Profile{}, &travellerrepo.Traveller{}); err != nil {
			return nil, err
		}
	}

	images, err := storage.New(ctx, cfg.Images)
	if err != nil {
		return nil, fmt.Errorf("initialize image storage: %w", err)
	}
	if c, isCloser := images.(io.Closer); isCloser {
		a.closers = append(a.closers, c.Close)
	}

	mailer, err := a.newMailer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewIssuer(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("initialize token issuer: %w", err)
	}
	hasher := password.NewHasher(cfg.BcryptCost)

	profiles := profilerepo.NewGormRepository(db.Gorm)
	a.services = routes.Services{
		Profiles:      profilesvc.NewManager(profiles, images, hasher, tokens),
		Travellers:    travellersvc.NewManager(travellerrepo.NewGormRepository(db.Gorm)),
		Recovery:      recovery.NewService(profiles, hasher, mailer),
		MaxImageBytes: cfg.Images.MaxBytes,
	}
	ok = true
	return a, nil
}

func (a *app) newMailer(ctx context.Context, cfg config.Config) (mail.Mailer, error) {
	if cfg.Mail.Backend != mail.BackendFirestore {
		return mail.NewSMTPMailer(cfg.Mail), nil
	}
	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:       cfg.FirebaseProject(),
		CredentialsFile: cfg.Firebase.CredentialsFile,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, clients.Close)
	return mail.NewFirestoreOutbox(clients.Firestore, cfg.Mail.Collection), nil
}

// Close releases clients in reverse order of creation. It is safe to call twice.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			applog.LogError(context.Background(), "close dependency", err)
		}
	}
	a.closers = nil
}

// newRouter builds the HTTP handler. db may be nil, in which case /health does not
// probe the database.
func newRouter(cfg config.Config, svc routes.Services, db health.Pinger) http.Handler {
	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For. Deploy behind a trusted proxy only.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(max(cfg.MaxBodyBytes, svc.MaxImageBytes+64<<10)),
		applog.RequestLogger(cfg.GCPProject),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(db))

	hcfg := huma.DefaultConfig("Travel Profiles API", Version)
	hcfg.DocsPath = docsPath
	api := humachi.New(router, hcfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, svc)
	return router
}
