package service

import (
	"context"

	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/model"
)

type PaymentService interface {
	Commission(amount model.Money) (commission, earnings model.Money)
	ListForProvider(ctx context.Context, providerID string) ([]*model.Payment, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Payment, error)
	EarningsSummary(ctx context.Context, providerID string) (*model.EarningsSummary, error)
}

type paymentService struct {
	repo store.PaymentRepository
	cfg  *config.Config
}

func NewPaymentService(repo store.PaymentRepository, cfg *config.Config) PaymentService {
	return &paymentService{
		repo: repo,
		cfg:  cfg,
	}
}

// Commission splits amount at the configured platform rate.
func (s *paymentService) Commission(amount model.Money) (commission, earnings model.Money) {
	return model.SplitCommission(amount, s.cfg.CommissionRate)
}

func (s *paymentService) ListForProvider(ctx context.Context, providerID string) ([]*model.Payment, error) {
	if providerID == "" {
		return nil, apperrors.InvalidInput("Provider ID cannot be empty")
	}

	payments, err := s.repo.FindPaymentsByProvider(ctx, providerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list provider payments", "provider_id", providerID, "error", err)
		return nil, store.AppError(err, "Provider", providerID, "retrieve payments")
	}
	return payments, nil
}

func (s *paymentService) ListForUser(ctx context.Context, userID string) ([]*model.Payment, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	payments, err := s.repo.FindPaymentsByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list user payments", "user_id", userID, "error", err)
		return nil, store.AppError(err, "User", userID, "retrieve payments")
	}
	return payments, nil
}

func (s *paymentService) EarningsSummary(ctx context.Context, providerID string) (*model.EarningsSummary, error) {
	payments, err := s.ListForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return Summarize(providerID, payments), nil
}

// Summarize totals a provider's payments.
func Summarize(providerID string, payments []*model.Payment) *model.EarningsSummary {
	summary := &model.EarningsSummary{ProviderID: providerID}
	for _, p := range payments {
		summary.Payments++
		summary.GrossAmount += p.Amount
		summary.TotalCommission += p.Commission
		summary.ProviderEarnings += p.ProviderEarnings
	}
	return summary
}
