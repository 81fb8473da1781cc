package service

import (
	"context"
	"testing"

	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
)

func newTestService(rate float64) PaymentService {
	return NewPaymentService(store.New(store.Options{}), &config.Config{Log: logger.Discard(), CommissionRate: rate})
}

func TestCommission(t *testing.T) {
	tests := []struct {
		name           string
		amount         model.Money
		rate           float64
		wantCommission model.Money
	}{
		{"ten percent of 100.00", model.NewMoney(100), 0.10, model.NewMoney(10)},
		{"rounds half up", model.Money(5), 0.10, model.Money(1)},
		{"rounds down", model.Money(1234), 0.10, model.Money(123)},
		{"zero rate", model.NewMoney(500), 0, 0},
		{"fifteen percent", model.NewMoney(333.33), 0.15, model.Money(5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commission, earnings := newTestService(tt.rate).Commission(tt.amount)
			if commission != tt.wantCommission {
				t.Errorf("commission = %s, want %s", commission, tt.wantCommission)
			}
			if commission+earnings != tt.amount {
				t.Errorf("commission %s + earnings %s != amount %s", commission, earnings, tt.amount)
			}
		})
	}
}

func TestListings(t *testing.T) {
	svc := newTestService(0.10)
	ctx := context.Background()

	byProvider, err := svc.ListForProvider(ctx, "provider-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byProvider) != 1 || byProvider[0].ProviderID != "provider-1" {
		t.Errorf("provider payments = %+v", byProvider)
	}

	byUser, err := svc.ListForUser(ctx, "user-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(byUser) != 1 || byUser[0].UserID != "user-2" {
		t.Errorf("user payments = %+v", byUser)
	}

	none, err := svc.ListForProvider(ctx, "provider-3")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("provider-3 has no payments, got %d", len(none))
	}

	if _, err := svc.ListForUser(ctx, ""); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("empty id: error = %v", err)
	}
}

func TestEarningsSummary(t *testing.T) {
	svc := newTestService(0.10)

	summary, err := svc.EarningsSummary(context.Background(), "provider-2")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Payments != 1 {
		t.Errorf("payments = %d", summary.Payments)
	}
	if summary.GrossAmount != model.NewMoney(60000) {
		t.Errorf("gross = %s", summary.GrossAmount)
	}
	if summary.TotalCommission != model.NewMoney(6000) || summary.ProviderEarnings != model.NewMoney(54000) {
		t.Errorf("split = %s / %s", summary.TotalCommission, summary.ProviderEarnings)
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize("provider-9", nil)
	if summary.Payments != 0 || summary.GrossAmount != 0 || summary.ProviderID != "provider-9" {
		t.Errorf("summary = %+v", summary)
	}
}
