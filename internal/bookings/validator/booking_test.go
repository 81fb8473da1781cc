package validator

import (
	"errors"
	"testing"

	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/validation"
)

func validBooking() *model.Booking {
	return &model.Booking{
		UserID:    "user-1",
		ServiceID: "service-1",
		Date:      "2024-12-25",
		Time:      "10:00",
		Address:   "12 Admiralty Way, Lekki",
	}
}

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{"valid", func(b *model.Booking) {}, ""},
		{"missing user", func(b *model.Booking) { b.UserID = "" }, "user_id"},
		{"missing service", func(b *model.Booking) { b.ServiceID = "" }, "service_id"},
		{"bad date", func(b *model.Booking) { b.Date = "2024-12-32" }, "date"},
		{"bad time", func(b *model.Booking) { b.Time = "7pm" }, "time"},
		{"short address", func(b *model.Booking) { b.Address = "x" }, "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := v.Validate(b)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error = %v, want ValidationErrors", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("field = %s, want %s", verrs[0].Field, tt.wantField)
			}
		})
	}
}

func TestBookingValidator_ValidateQuery(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name    string
		query   model.BookingQuery
		wantErr bool
	}{
		{"empty", model.BookingQuery{}, false},
		{"status and sort", model.BookingQuery{Status: model.StatusPending, Sort: model.SortDateAsc}, false},
		{"unknown status", model.BookingQuery{Status: "Done"}, true},
		{"unknown sort", model.BookingQuery{Sort: "price"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateQuery(tt.query); (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookingValidator_ValidateReschedule(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	if err := v.ValidateReschedule(&model.BookingReschedule{Date: "2025-01-15", Time: "14:30"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.ValidateReschedule(&model.BookingReschedule{Date: "2025-01-15"}); err == nil {
		t.Error("missing time should fail")
	}
}
