package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc          func(ctx context.Context, b *model.Booking) error
	listForUserFunc     func(ctx context.Context, userID string, q model.BookingQuery) ([]*model.Booking, error)
	updateStatusFunc    func(ctx context.Context, id, status string) (*model.Booking, error)
	rescheduleFunc      func(ctx context.Context, id string, r *model.BookingReschedule) (*model.Booking, error)
	listForProviderFunc func(ctx context.Context, providerID string, q model.BookingQuery) ([]*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, b *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	return nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (m *mockBookingService) ListForUser(ctx context.Context, userID string, q model.BookingQuery) ([]*model.Booking, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, userID, q)
	}
	return nil, nil
}

func (m *mockBookingService) ListForProvider(ctx context.Context, providerID string, q model.BookingQuery) ([]*model.Booking, error) {
	if m.listForProviderFunc != nil {
		return m.listForProviderFunc(ctx, providerID, q)
	}
	return nil, nil
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, id, status string) (*model.Booking, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &model.Booking{ID: id, Status: status}, nil
}

func (m *mockBookingService) Reschedule(ctx context.Context, id string, r *model.BookingReschedule) (*model.Booking, error) {
	if m.rescheduleFunc != nil {
		return m.rescheduleFunc(ctx, id, r)
	}
	return &model.Booking{ID: id, Date: r.Date, Time: r.Time, Status: model.StatusRescheduled}, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return m.UpdateStatus(ctx, id, model.StatusCancelled)
}

func newRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCreate(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, b *model.Booking) error {
			b.ID = "booking-9"
			b.Status = model.StatusPending
			return nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"user_id":"user-1","service_id":"service-1","date":"2024-12-25","time":"10:00","address":"1 Marina"}`, http.StatusCreated},
		{"malformed", `{"user_id":`, http.StatusBadRequest},
		{"unknown field", `{"user_id":"user-1","colour":"red"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusCreated {
				var resp struct {
					Data model.Booking `json:"data"`
				}
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatal(err)
				}
				if resp.Data.ID != "booking-9" || resp.Data.Status != model.StatusPending {
					t.Errorf("response = %+v", resp.Data)
				}
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/id/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListForUser_PassesQuery(t *testing.T) {
	var gotUser string
	var gotQuery model.BookingQuery
	svc := &mockBookingService{
		listForUserFunc: func(ctx context.Context, userID string, q model.BookingQuery) ([]*model.Booking, error) {
			gotUser, gotQuery = userID, q
			return []*model.Booking{{ID: "b1", UserID: userID}}, nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user-1/bookings?status=Pending&sort=date_asc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotUser != "user-1" || gotQuery.Status != model.StatusPending || gotQuery.Sort != model.SortDateAsc {
		t.Errorf("service called with %s %+v", gotUser, gotQuery)
	}
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("body = %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/user-1/bookings?sort=cheapest", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad sort: status = %d, want 400", w.Code)
	}
}

func TestUpdateStatus_Conflict(t *testing.T) {
	svc := &mockBookingService{
		updateStatusFunc: func(ctx context.Context, id, status string) (*model.Booking, error) {
			return nil, apperrors.Conflict("Cannot change booking status from Completed to Pending")
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/b1/status", strings.NewReader(`{"status":"Pending"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestReschedule(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/b1/reschedule", strings.NewReader(`{"date":"2025-01-02","time":"09:30"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"Rescheduled"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCancel(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/id/b1/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"Cancelled"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
