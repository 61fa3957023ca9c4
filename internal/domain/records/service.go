package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Category   Category
	Title      string
	Notes      string
	RecordedAt time.Time
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Record, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Record{}, ErrInvalidInput
	}
	if !in.Category.Valid() {
		return Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Record{}, ErrInvalidInput
	}

	now := s.now()
	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = now
	}

	rec := Record{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Category:   in.Category,
		Title:      strings.TrimSpace(in.Title),
		Notes:      strings.TrimSpace(in.Notes),
		RecordedAt: recordedAt,
		CreatedAt:  now,
		Status:     StatusActive,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// GetByIDs busca por conjunto de ids, sin filtrar por dueño: quien llama
// decide el límite de acceso (p.ej. un grant de compartir).
func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]Record, error) {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return []Record{}, nil
	}
	return s.repo.GetByIDs(ctx, clean)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Record, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	for _, c := range filter.Categories {
		if !c.Valid() {
			return nil, ErrInvalidInput
		}
	}
	return s.repo.ListByOwner(ctx, ownerID, filter)
}
