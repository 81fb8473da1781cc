package store

import (
	"errors"
	"fmt"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
	"strings"
	"time"

	"github.com/google/uuid"
)

var errReadOnly = errors.New("write attempted outside a transaction")

// Tx gives direct access to the collections. It is only valid inside the
// callback it was passed to. Reads return copies; writes go through the
// Create/Update/Delete methods.
type Tx struct {
	data     *Dataset
	now      func() time.Time
	readOnly bool
}

func (tx *Tx) writable() error {
	if tx.readOnly {
		return errReadOnly
	}
	return nil
}

func (tx *Tx) timestamp() time.Time {
	return tx.now().UTC().Truncate(time.Millisecond)
}

// newID returns a uuid not used by any record in the collection.
func newID[T any](items []*T, idOf func(*T) string) string {
	for {
		id := uuid.NewString()
		if indexOf(items, func(item *T) bool { return idOf(item) == id }) < 0 {
			return id
		}
	}
}

func assignID[T any](items []*T, id *string, idOf func(*T) string) error {
	if *id == "" {
		*id = newID(items, idOf)
		return nil
	}
	if indexOf(items, func(item *T) bool { return idOf(item) == *id }) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, *id)
	}
	return nil
}

func userID(u *model.User) string       { return u.ID }
func serviceID(s *model.Service) string { return s.ID }
func bookingID(b *model.Booking) string { return b.ID }
func reviewID(r *model.Review) string   { return r.ID }
func paymentID(p *model.Payment) string { return p.ID }

// --- Users ---

func (tx *Tx) FindUserByID(id string) (*model.User, error) {
	i := indexOf(tx.data.Users, func(u *model.User) bool { return u.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return cloneOne(tx.data.Users[i]), nil
}

func (tx *Tx) FindUserByEmail(email string) (*model.User, error) {
	email = sanitizer.NormalizeEmail(email)
	i := indexOf(tx.data.Users, func(u *model.User) bool { return sanitizer.NormalizeEmail(u.Email) == email })
	if i < 0 {
		return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
	}
	return cloneOne(tx.data.Users[i]), nil
}

func (tx *Tx) FindUsers(keep func(*model.User) bool) []*model.User {
	return filter(tx.data.Users, keep)
}

func (tx *Tx) CreateUser(u *model.User) error {
	if err := tx.writable(); err != nil {
		return err
	}
	if err := assignID(tx.data.Users, &u.ID, userID); err != nil {
		return err
	}
	u.CreatedAt = tx.timestamp()
	tx.data.Users = append(tx.data.Users, cloneOne(u))
	return nil
}

func (tx *Tx) UpdateUser(u *model.User) error {
	if err := tx.writable(); err != nil {
		return err
	}
	i := indexOf(tx.data.Users, func(existing *model.User) bool { return existing.ID == u.ID })
	if i < 0 {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	tx.data.Users[i] = cloneOne(u)
	return nil
}

// --- Services ---

func (tx *Tx) FindServiceByID(id string) (*model.Service, error) {
	i := indexOf(tx.data.Services, func(s *model.Service) bool { return s.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	return cloneOne(tx.data.Services[i]), nil
}

func (tx *Tx) FindServices(keep func(*model.Service) bool) []*model.Service {
	return filter(tx.data.Services, keep)
}

func (tx *Tx) CreateService(s *model.Service) error {
	if err := tx.writable(); err != nil {
		return err
	}
	if err := assignID(tx.data.Services, &s.ID, serviceID); err != nil {
		return err
	}
	s.CreatedAt = tx.timestamp()
	tx.data.Services = append(tx.data.Services, cloneOne(s))
	return nil
}

func (tx *Tx) UpdateService(s *model.Service) error {
	if err := tx.writable(); err != nil {
		return err
	}
	i := indexOf(tx.data.Services, func(existing *model.Service) bool { return existing.ID == s.ID })
	if i < 0 {
		return fmt.Errorf("service %s: %w", s.ID, ErrNotFound)
	}
	tx.data.Services[i] = cloneOne(s)
	return nil
}

func (tx *Tx) DeleteService(id string) error {
	if err := tx.writable(); err != nil {
		return err
	}
	i := indexOf(tx.data.Services, func(s *model.Service) bool { return s.ID == id })
	if i < 0 {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	tx.data.Services = append(tx.data.Services[:i], tx.data.Services[i+1:]...)
	return nil
}

// --- Bookings ---

func (tx *Tx) FindBookingByID(id string) (*model.Booking, error) {
	i := indexOf(tx.data.Bookings, func(b *model.Booking) bool { return b.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return cloneOne(tx.data.Bookings[i]), nil
}

func (tx *Tx) FindBookings(keep func(*model.Booking) bool) []*model.Booking {
	return filter(tx.data.Bookings, keep)
}

// CreateBooking appends b with a fresh id and status Pending.
func (tx *Tx) CreateBooking(b *model.Booking) error {
	if err := tx.writable(); err != nil {
		return err
	}
	b.ID = ""
	if err := assignID(tx.data.Bookings, &b.ID, bookingID); err != nil {
		return err
	}
	b.Status = model.StatusPending
	b.Reviewed = false
	b.CreatedAt = tx.timestamp()
	b.UpdatedAt = b.CreatedAt
	tx.data.Bookings = append(tx.data.Bookings, cloneOne(b))
	return nil
}

func (tx *Tx) UpdateBooking(b *model.Booking) error {
	if err := tx.writable(); err != nil {
		return err
	}
	i := indexOf(tx.data.Bookings, func(existing *model.Booking) bool { return existing.ID == b.ID })
	if i < 0 {
		return fmt.Errorf("booking %s: %w", b.ID, ErrNotFound)
	}
	b.UpdatedAt = tx.timestamp()
	tx.data.Bookings[i] = cloneOne(b)
	return nil
}

// --- Reviews ---

func (tx *Tx) FindReviews(keep func(*model.Review) bool) []*model.Review {
	return filter(tx.data.Reviews, keep)
}

func (tx *Tx) FindReviewByBooking(bookingID string) (*model.Review, error) {
	i := indexOf(tx.data.Reviews, func(r *model.Review) bool { return r.BookingID == bookingID })
	if i < 0 {
		return nil, fmt.Errorf("review for booking %s: %w", bookingID, ErrNotFound)
	}
	return cloneOne(tx.data.Reviews[i]), nil
}

func (tx *Tx) CreateReview(r *model.Review) error {
	if err := tx.writable(); err != nil {
		return err
	}
	r.ID = ""
	if err := assignID(tx.data.Reviews, &r.ID, reviewID); err != nil {
		return err
	}
	r.CreatedAt = tx.timestamp()
	tx.data.Reviews = append(tx.data.Reviews, cloneOne(r))
	return nil
}

// --- Payments ---

func (tx *Tx) FindPayments(keep func(*model.Payment) bool) []*model.Payment {
	return filter(tx.data.Payments, keep)
}

func (tx *Tx) FindPaymentByBooking(bookingID string) (*model.Payment, error) {
	i := indexOf(tx.data.Payments, func(p *model.Payment) bool { return p.BookingID == bookingID })
	if i < 0 {
		return nil, fmt.Errorf("payment for booking %s: %w", bookingID, ErrNotFound)
	}
	return cloneOne(tx.data.Payments[i]), nil
}

func (tx *Tx) CreatePayment(p *model.Payment) error {
	if err := tx.writable(); err != nil {
		return err
	}
	p.ID = ""
	if err := assignID(tx.data.Payments, &p.ID, paymentID); err != nil {
		return err
	}
	p.CreatedAt = tx.timestamp()
	tx.data.Payments = append(tx.data.Payments, cloneOne(p))
	return nil
}

// MatchService reports whether s satisfies every non-empty filter field.
func MatchService(s *model.Service, f model.ServiceFilter) bool {
	if f.ProviderID != "" && s.ProviderID != f.ProviderID {
		return false
	}
	if f.Category != "" && sanitizer.NormalizeCategory(s.Category) != sanitizer.NormalizeCategory(f.Category) {
		return false
	}
	if f.State != "" && !strings.EqualFold(s.State, sanitizer.TrimAndNormalize(f.State)) {
		return false
	}
	if f.City != "" && !strings.EqualFold(s.City, sanitizer.TrimAndNormalize(f.City)) {
		return false
	}
	if q := strings.ToLower(sanitizer.TrimAndNormalize(f.Query)); q != "" {
		haystack := strings.ToLower(s.Title + " " + s.Description + " " + s.Category)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}
