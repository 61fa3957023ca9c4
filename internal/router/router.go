package router

import (
	"net/http"
	"time"

	_ "health-vault/docs"
	auditsink "health-vault/internal/adapters/audit"
	mem "health-vault/internal/adapters/storage/memory"
	pg "health-vault/internal/adapters/storage/postgres"
	"health-vault/internal/domain/records"
	"health-vault/internal/domain/shares"
	"health-vault/internal/limiter"
	"health-vault/internal/middleware"
	"health-vault/internal/ports/audit"
	"health-vault/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *pg.DB

	Logger *zap.Logger

	// Sinks extra (postgres, webhook, sqlite); zap va siempre.
	AuditSinks []audit.Sink

	ShareBaseURL      string
	ShareDefaultHours float64
	ShareMaxHours     float64
	PIN               limiter.Config

	// 0 => sin timeout por request.
	RequestTimeout time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		recordRepo records.Repository
		shareRepo  shares.Repository
		attempts   limiter.Limiter
	)

	sinks := append([]audit.Sink{auditsink.NewZapSink(log)}, opts.AuditSinks...)

	if opts.DB != nil {
		recordRepo = pg.NewRecordsRepo(opts.DB)
		shareRepo = pg.NewSharesRepo(opts.DB)
		attempts = limiter.NewPG(opts.DB.Pool, opts.PIN)
	} else {
		recordRepo = mem.NewRecordRepo()
		shareRepo = mem.NewShareRepo()
		attempts = limiter.NewMemory(opts.PIN)
	}

	// Services por módulo
	recordsSvc := records.NewService(recordRepo)
	sharesSvc := shares.NewService(shareRepo, recordsSvc, shares.Options{
		Limiter:      attempts,
		Audit:        audit.Multi(sinks...),
		Logger:       log.Named("shares"),
		BaseURL:      opts.ShareBaseURL,
		DefaultHours: opts.ShareDefaultHours,
		MaxHours:     opts.ShareMaxHours,
	})

	// Rutas por módulo
	records.RegisterRoutes(r, recordsSvc)
	shares.RegisterRoutes(r, sharesSvc)

	return r
}
