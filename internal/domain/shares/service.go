package shares

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-vault/internal/domain/records"
	"health-vault/internal/errs"
	"health-vault/internal/ports/audit"

	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidOrExpired agrupa "no existe", "vencido" y "revocado"
	// para no filtrar cuál de los tres es.
	ErrInvalidOrExpired = errors.New("share is invalid or expired")
	ErrInvalidPIN       = errors.New("invalid pin")
	ErrTooManyAttempts  = errors.New("too many pin attempts")
	ErrPersistence      = errors.New("share storage failure")
)

const (
	DefaultDurationHours = 1.0
	DefaultMaxHours      = 168.0

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// RecordStore es lo que shares necesita del módulo records.
type RecordStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]records.Record, error)
	OwnsAll(ctx context.Context, ownerID string, ids []string) (bool, error)
}

// AttemptLimiter limita intentos de PIN por grant.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	Success(ctx context.Context, key string) error
	Failure(ctx context.Context, key string) (bool, time.Duration, error)
}

type Options struct {
	Tokens  TokenGenerator
	Limiter AttemptLimiter // nil = sin límite
	Audit   audit.Sink
	Logger  *zap.Logger

	BaseURL      string
	DefaultHours float64
	MaxHours     float64
}

type Service struct {
	repo    Repository
	records RecordStore
	tokens  TokenGenerator
	limiter AttemptLimiter
	audit   audit.Sink
	log     *zap.Logger

	baseURL      string
	defaultHours float64
	maxHours     float64

	now func() time.Time
}

func NewService(repo Repository, recs RecordStore, opts Options) *Service {
	s := &Service{
		repo:         repo,
		records:      recs,
		tokens:       opts.Tokens,
		limiter:      opts.Limiter,
		audit:        opts.Audit,
		log:          opts.Logger,
		baseURL:      opts.BaseURL,
		defaultHours: opts.DefaultHours,
		maxHours:     opts.MaxHours,
		now:          time.Now,
	}
	if s.tokens == nil {
		s.tokens = CryptoTokens{}
	}
	if s.audit == nil {
		s.audit = audit.Nop{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.defaultHours <= 0 {
		s.defaultHours = DefaultDurationHours
	}
	if s.maxHours <= 0 {
		s.maxHours = DefaultMaxHours
	}
	return s
}

// Link arma el link público del grant.
func (s *Service) Link(g Grant) string {
	return BuildLink(s.baseURL, g.Token)
}

// ListActive devuelve los grants usables del dueño. Se vuelve a filtrar
// con IsUsable aunque el repo ya filtre: el flag active puede estar viejo.
func (s *Service) ListActive(ctx context.Context, ownerID string) ([]Grant, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	items, err := s.repo.ListActiveByOwner(ctx, ownerID, now)
	if err != nil {
		return nil, s.persistenceErr("list active shares", err, zap.String("owner_id", ownerID))
	}

	out := make([]Grant, 0, len(items))
	for _, g := range items {
		if IsUsable(g, now) {
			out = append(out, g)
		}
	}
	return out, nil
}

// ListHistory devuelve todos los grants del dueño, más nuevos primero,
// con el status efectivo (sin escribir nada).
func (s *Service) ListHistory(ctx context.Context, ownerID string, limit int) ([]Grant, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, s.persistenceErr("list share history", err, zap.String("owner_id", ownerID))
	}

	now := s.now()
	for i := range items {
		items[i].Status = EffectiveStatus(items[i], now)
	}
	return items, nil
}

// findByToken resuelve el token y aplica la transición perezosa a expired:
// nunca devuelve un active vencido.
func (s *Service) findByToken(ctx context.Context, token string) (Grant, error) {
	g, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Grant{}, ErrInvalidOrExpired
		}
		return Grant{}, s.persistenceErr("get share by token", err)
	}

	if EffectiveStatus(g, s.now()) == StatusExpired && g.Status == StatusActive {
		if err := s.repo.MarkExpired(ctx, g.ID); err != nil {
			s.log.Warn("mark share expired failed", zap.String("grant_id", g.ID), zap.Error(err))
		}
		g.Status = StatusExpired
	}
	return g, nil
}

func (s *Service) record(ctx context.Context, e audit.Entry) {
	if e.At.IsZero() {
		e.At = s.now()
	}
	if err := s.audit.Log(ctx, e); err != nil {
		s.log.Warn("audit log failed",
			zap.String("action", string(e.Action)),
			zap.String("user_id", e.UserID),
			zap.Error(err),
		)
	}
}

func (s *Service) persistenceErr(op string, err error, fields ...zap.Field) error {
	s.log.Error(op, append(fields, zap.Error(err))...)
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
