// Package smoke drives a running marketplace through one booking from
// demo login to review, checking each response on the way.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/pkg/client"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/google/uuid"
)

var ErrNoServices = errors.New("catalog has no services")

type Options struct {
	UserID string
	Date   string
	Time   string
	Rating int

	HealthWait time.Duration
}

func (o *Options) defaults() {
	if o.UserID == "" {
		o.UserID = "user-1"
	}
	if o.Date == "" {
		o.Date = time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)
	}
	if o.Time == "" {
		o.Time = "10:00"
	}
	if o.Rating == 0 {
		o.Rating = 5
	}
	if o.HealthWait == 0 {
		o.HealthWait = 30 * time.Second
	}
}

type Report struct {
	BookingID  string
	ServiceID  string
	ProviderID string
	Amount     model.Money
	Rating     float64
	Earnings   model.Money
}

func Run(ctx context.Context, c *client.Client, opts Options, log *logger.Logger) (*Report, error) {
	opts.defaults()

	if err := c.HTTP.WaitForHealthy(ctx, opts.HealthWait); err != nil {
		return nil, err
	}

	services, err := c.Catalog.Search(ctx, model.ServiceFilter{})
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	if len(services) == 0 {
		return nil, ErrNoServices
	}
	service := services[0]
	log.Info("Catalog searched", "services", len(services), "service_id", service.ID)

	session, err := c.Sessions.DemoLogin(ctx, model.RoleUser, opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("demo login: %w", err)
	}
	me, err := c.Sessions.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if me.User.ID != opts.UserID || me.Graph != model.GraphUser {
		return nil, fmt.Errorf("session belongs to %s on graph %q", me.User.ID, me.Graph)
	}
	log.Info("Signed in", "user_id", session.User.ID)

	before, err := c.Providers.Earnings(ctx, service.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("load earnings: %w", err)
	}

	key := uuid.NewString()
	request := &model.Booking{
		UserID:    opts.UserID,
		ServiceID: service.ID,
		Date:      opts.Date,
		Time:      opts.Time,
		Address:   "12 Smoke Test Close, Ikeja",
	}
	booking, err := c.Bookings.Create(ctx, request, key)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	replayed, err := c.Bookings.Create(ctx, request, key)
	if err != nil {
		return nil, fmt.Errorf("replay booking: %w", err)
	}
	if replayed.ID != booking.ID {
		return nil, fmt.Errorf("idempotent replay created %s, want %s", replayed.ID, booking.ID)
	}
	log.Info("Booking created", "booking_id", booking.ID, "amount", booking.Amount.String())

	for _, status := range []string{model.StatusAccepted, model.StatusCompleted} {
		if _, err := c.Bookings.UpdateStatus(ctx, booking.ID, status); err != nil {
			return nil, fmt.Errorf("move booking to %s: %w", status, err)
		}
	}

	after, err := c.Providers.Earnings(ctx, service.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("load earnings: %w", err)
	}
	if after.Payments != before.Payments+1 || after.GrossAmount-before.GrossAmount != booking.Amount {
		return nil, fmt.Errorf("completion recorded %d payments worth %s, want 1 worth %s",
			after.Payments-before.Payments, (after.GrossAmount - before.GrossAmount).String(), booking.Amount.String())
	}

	if _, err := c.Providers.Review(ctx, &model.Review{
		BookingID: booking.ID,
		UserID:    opts.UserID,
		Rating:    opts.Rating,
		Comment:   "Smoke test review",
	}); err != nil {
		return nil, fmt.Errorf("review booking: %w", err)
	}
	rating, err := c.Providers.Rating(ctx, service.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("load rating: %w", err)
	}

	if err := c.Sessions.Logout(ctx); err != nil {
		return nil, fmt.Errorf("logout: %w", err)
	}

	report := &Report{
		BookingID:  booking.ID,
		ServiceID:  service.ID,
		ProviderID: service.ProviderID,
		Amount:     booking.Amount,
		Rating:     rating,
		Earnings:   after.ProviderEarnings - before.ProviderEarnings,
	}
	log.Info("Smoke run passed",
		"booking_id", report.BookingID,
		"provider_id", report.ProviderID,
		"rating", report.Rating,
		"earnings", report.Earnings.String(),
	)
	return report, nil
}
