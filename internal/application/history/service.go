// Package history implements the history item use cases.
package history

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/ports/inbound"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// Service provides CRUD over a user's generation history.
type Service struct {
	histories outbound.HistoryRepository
	logger    *zap.Logger
}

func NewService(histories outbound.HistoryRepository, logger *zap.Logger) *Service {
	return &Service{
		histories: histories,
		logger:    logger,
	}
}

var _ inbound.HistoryService = (*Service)(nil)

func (s *Service) List(ctx context.Context, userID string) ([]*history.Item, error) {
	return s.histories.FindByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id string) (*history.Item, error) {
	item, err := s.histories.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, history.ErrNotFound) {
			return nil, errors.NewHistoryItemNotFoundError(id)
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, item *history.Item) (*history.Item, error) {
	created, err := history.NewItem(item.UserID, item.Link, item.Text)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.histories.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, upd history.Update) (*history.Item, error) {
	item, err := s.histories.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, history.ErrNotFound) {
			return nil, errors.NewHistoryItemNotFoundError(id)
		}
		return nil, err
	}

	item.Apply(upd)

	if err := s.histories.Update(ctx, item); err != nil {
		if stderrors.Is(err, history.ErrNotFound) {
			return nil, errors.NewHistoryItemNotFoundError(id)
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.histories.Delete(ctx, id); err != nil {
		if stderrors.Is(err, history.ErrNotFound) {
			return errors.NewHistoryItemNotFoundError(id)
		}
		return err
	}
	return nil
}
