package service

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/bookings/validator"
	"marketplace/internal/events"
	paymentservice "marketplace/internal/payments/service"
	"marketplace/internal/store"
	"marketplace/pkg/config"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/kafka"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
)

type recordingPublisher struct {
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	p.types = append(p.types, msg.GetEventType())
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func testSeed() *store.Dataset {
	return &store.Dataset{
		Users: []*model.User{
			{ID: "U", Name: "Ada", Email: "ada@example.com", Role: model.RoleUser},
			{ID: "U2", Name: "Bola", Email: "bola@example.com", Role: model.RoleUser},
			{ID: "P", Name: "Emeka", Email: "emeka@example.com", Role: model.RoleProvider},
			{ID: "P2", Name: "Funmi", Email: "funmi@example.com", Role: model.RoleProvider},
		},
		Services: []*model.Service{
			{ID: "S", ProviderID: "P", Title: "Cleaning", Category: "cleaning", Price: model.NewMoney(100), State: "Lagos", City: "Ikeja"},
			{ID: "S2", ProviderID: "P2", Title: "Makeup", Category: "beauty", Price: model.NewMoney(50), State: "Lagos", City: "Ikeja"},
		},
	}
}

func newTestService(t *testing.T) (BookingService, *store.Store, *recordingPublisher) {
	t.Helper()
	log := logger.Discard()
	st := store.New(store.Options{Seed: testSeed})
	pub := &recordingPublisher{}
	cfg := &config.Config{Log: log, CommissionRate: 0.10}
	svc := NewBookingService(st, validator.NewBookingValidator(log), events.NewEmitter(pub, "test", log), paymentservice.NewPaymentService(st, cfg), cfg)
	return svc, st, pub
}

func newBooking(userID, serviceID, date string) *model.Booking {
	return &model.Booking{
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
		Time:      "10:00",
		Address:   "1 Marina Road, Lagos",
	}
}

func TestCreate_SetsPendingProviderAndAmount(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	b := newBooking("U", "S", "2024-12-25")
	b.Status = model.StatusCompleted
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if b.ID == "" {
		t.Error("expected generated id")
	}
	if b.Status != model.StatusPending {
		t.Errorf("status = %s, want Pending", b.Status)
	}
	if b.ProviderID != "P" {
		t.Errorf("provider = %s, want P", b.ProviderID)
	}
	if b.Amount != model.NewMoney(100) {
		t.Errorf("amount = %s, want 100.00", b.Amount)
	}
	if len(pub.types) != 1 || pub.types[0] != events.BookingCreated {
		t.Errorf("events = %v", pub.types)
	}

	other := newBooking("U", "S", "2024-12-26")
	if err := svc.Create(ctx, other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if other.ID == b.ID {
		t.Error("booking ids must be unique")
	}
}

func TestCreate_Rejects(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		booking  *model.Booking
		wantCode string
	}{
		{"invalid date", newBooking("U", "S", "25-12-2024"), apperrors.CodeValidation},
		{"unknown user", newBooking("nobody", "S", "2024-12-25"), apperrors.CodeNotFound},
		{"unknown service", newBooking("U", "missing", "2024-12-25"), apperrors.CodeNotFound},
		{"provider account", newBooking("P", "S", "2024-12-25"), apperrors.CodeValidation},
		{"provider mismatch", func() *model.Booking {
			b := newBooking("U", "S", "2024-12-25")
			b.ProviderID = "P2"
			return b
		}(), apperrors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, tt.booking)
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}

	if n := st.Counts()["bookings"]; n != 0 {
		t.Errorf("rejected bookings were stored: %d", n)
	}
}

func TestLifecycle_CompletionRecordsPayment(t *testing.T) {
	svc, st, pub := newTestService(t)
	ctx := context.Background()

	b := newBooking("U", "S", "2024-12-25")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, b.ID, model.StatusAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	done, err := svc.UpdateStatus(ctx, b.ID, model.StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.StatusCompleted {
		t.Errorf("status = %s", done.Status)
	}

	payment, err := st.FindPaymentByBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("payment not recorded: %v", err)
	}
	if payment.Commission != model.NewMoney(10) || payment.ProviderEarnings != model.NewMoney(90) {
		t.Errorf("split = %s / %s, want 10.00 / 90.00", payment.Commission, payment.ProviderEarnings)
	}
	if payment.Amount != payment.Commission+payment.ProviderEarnings {
		t.Error("amount != commission + earnings")
	}

	service, err := st.FindServiceByID(ctx, "S")
	if err != nil {
		t.Fatal(err)
	}
	if service.CompletedJobs != 1 {
		t.Errorf("completed jobs = %d, want 1", service.CompletedJobs)
	}

	want := []string{events.BookingCreated, events.BookingStatusChanged, events.BookingStatusChanged, events.PaymentRecorded}
	if len(pub.types) != len(want) {
		t.Fatalf("events = %v, want %v", pub.types, want)
	}
	for i := range want {
		if pub.types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, pub.types[i], want[i])
		}
	}
}

type flatCommission struct {
	fee model.Money
}

func (c flatCommission) Commission(amount model.Money) (model.Money, model.Money) {
	return c.fee, amount - c.fee
}

func TestCompletion_UsesCommissioner(t *testing.T) {
	log := logger.Discard()
	st := store.New(store.Options{Seed: testSeed})
	cfg := &config.Config{Log: log, CommissionRate: 0.10}
	svc := NewBookingService(st, validator.NewBookingValidator(log), events.Nop(), flatCommission{fee: model.NewMoney(7)}, cfg)
	ctx := context.Background()

	b := newBooking("U", "S", "2024-12-25")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}
	for _, status := range []string{model.StatusAccepted, model.StatusCompleted} {
		if _, err := svc.UpdateStatus(ctx, b.ID, status); err != nil {
			t.Fatalf("%s: %v", status, err)
		}
	}

	payment, err := st.FindPaymentByBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("payment not recorded: %v", err)
	}
	if payment.Commission != model.NewMoney(7) || payment.ProviderEarnings != model.NewMoney(93) {
		t.Errorf("split = %s / %s, want 7.00 / 93.00", payment.Commission, payment.ProviderEarnings)
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("U", "S", "2024-12-25")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateStatus(ctx, "missing", model.StatusAccepted); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("unknown id: error = %v, want NOT_FOUND", err)
	}
	if _, err := svc.UpdateStatus(ctx, b.ID, "Done"); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("unknown status: error = %v, want VALIDATION_ERROR", err)
	}
	if _, err := svc.UpdateStatus(ctx, b.ID, model.StatusCompleted); !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("Pending -> Completed: error = %v, want CONFLICT", err)
	}

	if _, err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, b.ID, model.StatusAccepted); !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("Cancelled -> Accepted: error = %v, want CONFLICT", err)
	}
}

func TestReschedule_KeepsIdentity(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("U", "S", "2024-12-25")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, b.ID, model.StatusAccepted); err != nil {
		t.Fatal(err)
	}

	moved, err := svc.Reschedule(ctx, b.ID, &model.BookingReschedule{Date: "2024-12-28", Time: "15:30"})
	if err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	if moved.Status != model.StatusRescheduled {
		t.Errorf("status = %s, want Rescheduled", moved.Status)
	}
	if moved.Date != "2024-12-28" || moved.Time != "15:30" {
		t.Errorf("schedule = %s %s", moved.Date, moved.Time)
	}
	if moved.ID != b.ID || moved.UserID != b.UserID || moved.ProviderID != b.ProviderID || moved.ServiceID != b.ServiceID {
		t.Errorf("identity changed: %+v", moved)
	}
	if moved.Amount != b.Amount {
		t.Errorf("amount changed: %s -> %s", b.Amount, moved.Amount)
	}
}

func TestReschedule_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("U", "S", "2024-12-25")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Reschedule(ctx, b.ID, &model.BookingReschedule{Date: "2024-12-28", Time: "3pm"}); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("bad time: error = %v, want VALIDATION_ERROR", err)
	}
	if _, err := svc.Reschedule(ctx, "missing", &model.BookingReschedule{Date: "2024-12-28", Time: "15:00"}); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("unknown id: error = %v, want NOT_FOUND", err)
	}

	if _, err := svc.UpdateStatus(ctx, b.ID, model.StatusDeclined); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reschedule(ctx, b.ID, &model.BookingReschedule{Date: "2024-12-28", Time: "15:00"}); !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Errorf("declined booking: error = %v, want CONFLICT", err)
	}
}

func TestListing_FiltersAndSorts(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, b := range []*model.Booking{
		newBooking("U", "S", "2024-12-27"),
		newBooking("U2", "S", "2024-12-20"),
		newBooking("U", "S2", "2024-12-21"),
		newBooking("U", "S", "2024-12-23"),
	} {
		if err := svc.Create(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := svc.ListForUser(ctx, "U", model.BookingQuery{Sort: model.SortDateAsc})
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 3 {
		t.Fatalf("got %d bookings for U, want 3", len(mine))
	}
	for i, want := range []string{"2024-12-21", "2024-12-23", "2024-12-27"} {
		if mine[i].UserID != "U" {
			t.Errorf("booking of %s returned for U", mine[i].UserID)
		}
		if mine[i].Date != want {
			t.Errorf("mine[%d].Date = %s, want %s", i, mine[i].Date, want)
		}
	}

	theirs, err := svc.ListForProvider(ctx, "P", model.BookingQuery{Sort: model.SortDateDesc})
	if err != nil {
		t.Fatal(err)
	}
	if len(theirs) != 3 {
		t.Fatalf("got %d bookings for P, want 3", len(theirs))
	}
	if theirs[0].Date != "2024-12-27" || theirs[2].Date != "2024-12-20" {
		t.Errorf("provider order = %s..%s", theirs[0].Date, theirs[2].Date)
	}
	for _, b := range theirs {
		if b.ProviderID != "P" {
			t.Errorf("booking for %s returned for P", b.ProviderID)
		}
	}

	if _, err := svc.UpdateStatus(ctx, mine[0].ID, model.StatusAccepted); err != nil {
		t.Fatal(err)
	}
	accepted, err := svc.ListForUser(ctx, "U", model.BookingQuery{Status: model.StatusAccepted})
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 1 || accepted[0].ID != mine[0].ID {
		t.Errorf("accepted filter = %v", accepted)
	}

	if _, err := svc.ListForUser(ctx, "U", model.BookingQuery{Status: "Whatever"}); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("bad status filter: error = %v", err)
	}
}

func TestStoreFailureSurfacesAsUnavailable(t *testing.T) {
	log := logger.Discard()
	st := store.New(store.Options{
		Seed:        testSeed,
		FailureHook: func(string) error { return errors.New("network down") },
	})
	cfg := &config.Config{Log: log, CommissionRate: 0.10}
	svc := NewBookingService(st, validator.NewBookingValidator(log), events.Nop(), paymentservice.NewPaymentService(st, cfg), cfg)

	_, err := svc.ListForUser(context.Background(), "U", model.BookingQuery{})
	if !apperrors.HasCode(err, apperrors.CodeUnavailable) {
		t.Errorf("error = %v, want SERVICE_UNAVAILABLE", err)
	}
}
