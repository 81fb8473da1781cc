package service

import (
	"context"

	catalogerrors "marketplace/internal/catalog/errors"
	"marketplace/internal/catalog/validator"
	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
	"marketplace/pkg/validation"
)

type CatalogService interface {
	GetAll(ctx context.Context) ([]*model.Service, error)
	GetByID(ctx context.Context, id string) (*model.Service, error)
	ListForProvider(ctx context.Context, providerID string) ([]*model.Service, error)
	Search(ctx context.Context, filter model.ServiceFilter) ([]*model.Service, error)
	Create(ctx context.Context, svc *model.Service) error
	Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	repo      store.ServiceRepository
	validator *validator.ServiceValidator
	cfg       *config.Config
}

func NewCatalogService(repo store.ServiceRepository, validator *validator.ServiceValidator, cfg *config.Config) CatalogService {
	return &catalogService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *catalogService) GetAll(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.FindAllServices(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list services", "error", err)
		return nil, store.AppError(err, "Service", "", "retrieve services")
	}
	return services, nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*model.Service, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Service ID cannot be empty")
	}

	svc, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		return nil, store.AppError(err, "Service", id, "retrieve service")
	}
	return svc, nil
}

func (s *catalogService) ListForProvider(ctx context.Context, providerID string) ([]*model.Service, error) {
	if providerID == "" {
		return nil, apperrors.InvalidInput("Provider ID cannot be empty")
	}

	services, err := s.repo.FindServicesByProvider(ctx, providerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list provider services", "provider_id", providerID, "error", err)
		return nil, store.AppError(err, "Provider", providerID, "retrieve services")
	}
	return services, nil
}

func (s *catalogService) Search(ctx context.Context, filter model.ServiceFilter) ([]*model.Service, error) {
	services, err := s.repo.SearchServices(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to search services", "filter", filter, "error", err)
		return nil, store.AppError(err, "Service", "", "search services")
	}

	s.cfg.Log.Debug("Service search completed",
		"category", filter.Category,
		"state", filter.State,
		"city", filter.City,
		"query", filter.Query,
		"count", len(services),
	)
	return services, nil
}

// Create lists a new service for a provider. Its rating starts at the
// provider's current average.
func (s *catalogService) Create(ctx context.Context, svc *model.Service) error {
	s.sanitize(svc)
	if err := s.validate(svc); err != nil {
		return err
	}
	s.validator.Canonicalize(svc)

	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		provider, err := tx.FindUserByID(svc.ProviderID)
		if err != nil {
			return store.AppError(err, "Provider", svc.ProviderID, "load provider")
		}
		if !provider.IsProvider() {
			return apperrors.Validation(catalogerrors.ErrNotProvider.Error(), map[string]any{"provider_id": svc.ProviderID})
		}

		svc.ID = ""
		svc.CompletedJobs = 0
		svc.Rating = model.AverageRating(tx.FindReviews(func(r *model.Review) bool {
			return r.ProviderID == svc.ProviderID
		}))
		return tx.CreateService(svc)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create service", "provider_id", svc.ProviderID, "error", err)
		return store.AppError(err, "Service", svc.ID, "create service")
	}

	s.cfg.Log.Info("Service created successfully",
		"id", svc.ID,
		"provider_id", svc.ProviderID,
		"category", svc.Category,
		"price", svc.Price.String(),
	)
	return nil
}

func (s *catalogService) Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Service ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Service update validation failed", "id", id, "error", err)
		return nil, validation.AppError("Invalid update input", err)
	}

	var merged *model.Service
	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		existing, err := tx.FindServiceByID(id)
		if err != nil {
			return err
		}

		merged = mergeServiceUpdates(existing, updates)
		s.sanitize(merged)
		if err := s.validate(merged); err != nil {
			return err
		}
		s.validator.Canonicalize(merged)
		return tx.UpdateService(merged)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update service", "id", id, "error", err)
		return nil, store.AppError(err, "Service", id, "update service")
	}

	s.cfg.Log.Info("Service updated successfully", "id", id)
	return merged, nil
}

// Delete withdraws a service. Existing bookings keep their service id and
// amount.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Service ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(tx *store.Tx) error {
		return tx.DeleteService(id)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to delete service", "id", id, "error", err)
		return store.AppError(err, "Service", id, "delete service")
	}

	s.cfg.Log.Info("Service deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *catalogService) sanitize(svc *model.Service) {
	svc.ProviderID = sanitizer.TrimAndNormalize(svc.ProviderID)
	svc.Title = sanitizer.TrimAndNormalize(svc.Title)
	svc.Description = sanitizer.NormalizeText(svc.Description)
	svc.Category = sanitizer.NormalizeCategory(svc.Category)
	svc.State = sanitizer.TrimAndNormalize(svc.State)
	svc.City = sanitizer.TrimAndNormalize(svc.City)
	svc.Address = sanitizer.TrimAndNormalize(svc.Address)
}

func (s *catalogService) validate(svc *model.Service) error {
	if err := s.validator.Validate(svc); err != nil {
		s.cfg.Log.Warn("Service validation failed", "error", err)
		return validation.AppError("Service validation failed", err)
	}
	return nil
}

func mergeServiceUpdates(existing *model.Service, updates *model.ServiceUpdate) *model.Service {
	merged := *existing

	if updates.Title != "" {
		merged.Title = updates.Title
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Category != "" {
		merged.Category = updates.Category
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.State != "" {
		merged.State = updates.State
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}

	return &merged
}
