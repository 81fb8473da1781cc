package store

import (
	"marketplace/pkg/model"
)

// Dataset holds every collection in insertion order.
type Dataset struct {
	Users    []*model.User
	Services []*model.Service
	Bookings []*model.Booking
	Reviews  []*model.Review
	Payments []*model.Payment
}

func (d *Dataset) clone() *Dataset {
	return &Dataset{
		Users:    cloneAll(d.Users),
		Services: cloneAll(d.Services),
		Bookings: cloneAll(d.Bookings),
		Reviews:  cloneAll(d.Reviews),
		Payments: cloneAll(d.Payments),
	}
}

// cloneAll copies every record; the records hold no reference fields, so a
// struct copy is a deep copy.
func cloneAll[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		c := *item
		out = append(out, &c)
	}
	return out
}

func cloneOne[T any](item *T) *T {
	c := *item
	return &c
}

func filter[T any](items []*T, keep func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, item := range items {
		if keep == nil || keep(item) {
			out = append(out, cloneOne(item))
		}
	}
	return out
}

func indexOf[T any](items []*T, match func(*T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
