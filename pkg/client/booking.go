package client

import (
	"context"
	"net/http"
	"net/url"

	"marketplace/pkg/model"
)

const idempotencyKeyHeader = "Idempotency-Key"

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(httpClient *HttpClient) *BookingClient {
	return &BookingClient{httpClient: httpClient}
}

// Create books a service. A non-empty idempotencyKey makes retries of the
// same request return the original booking.
func (c *BookingClient) Create(ctx context.Context, booking *model.Booking, idempotencyKey string) (*model.Booking, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[idempotencyKeyHeader] = idempotencyKey
	}
	resp, err := c.httpClient.POSTWithHeaders(ctx, "/api/v1/bookings", booking, headers)
	if err != nil {
		return nil, err
	}
	var created model.Booking
	if err := decode(resp, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decode(resp, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/status"
	resp, err := c.httpClient.PATCH(ctx, path, model.BookingStatusUpdate{Status: status})
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decode(resp, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingClient) Reschedule(ctx context.Context, id, date, time string) (*model.Booking, error) {
	path := "/api/v1/bookings/id/" + url.PathEscape(id) + "/reschedule"
	resp, err := c.httpClient.PATCH(ctx, path, model.BookingReschedule{Date: date, Time: time})
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decode(resp, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingClient) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/bookings/id/"+url.PathEscape(id)+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	var booking model.Booking
	if err := decode(resp, http.StatusOK, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingClient) ListForUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return c.list(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/bookings")
}

func (c *BookingClient) ListForProvider(ctx context.Context, providerID string) ([]*model.Booking, error) {
	return c.list(ctx, "/api/v1/providers/"+url.PathEscape(providerID)+"/bookings")
}

func (c *BookingClient) list(ctx context.Context, path string) ([]*model.Booking, error) {
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	var bookings []*model.Booking
	if err := decode(resp, http.StatusOK, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
