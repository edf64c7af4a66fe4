package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portsrepo "github.com/mainmeal/mainmeal_backend/internal/core/ports/repositories"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/models"
)

type pantryService struct {
	pantryRepo portsrepo.PantryRepositoryFacade
}

// NewPantryService creates a new instance of pantryService.
func NewPantryService(pantryRepo portsrepo.PantryRepositoryFacade) portssvc.PantrySvcFacade {
	return &pantryService{pantryRepo: pantryRepo}
}

var _ portssvc.PantrySvcFacade = (*pantryService)(nil)

func (s *pantryService) ListItems(ctx context.Context, userID string) ([]models.PantryItem, error) {
	items, err := s.pantryRepo.FindPantryItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	if items == nil {
		items = []models.PantryItem{}
	}
	return items, nil
}

func (s *pantryService) AddItem(ctx context.Context, userID string, req dto.CreatePantryItemRequest) (*models.PantryItem, error) {
	item := models.PantryItem{
		UserID:   userID,
		Name:     req.Name,
		Category: req.Category,
		AddedAt:  time.Now().UTC(),
	}
	if err := s.pantryRepo.SavePantryItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to add pantry item: %w", err)
	}
	return &item, nil
}

func (s *pantryService) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	existed, err := s.pantryRepo.DeletePantryItem(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove pantry item: %w", err)
	}
	if !existed {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *pantryService) ClearPantry(ctx context.Context, userID string) error {
	if _, err := s.pantryRepo.ClearPantry(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear pantry: %w", err)
	}
	return nil
}
