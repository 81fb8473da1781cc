package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/model"
)

// DecodeJSON reads a single JSON object from the request body into dst,
// rejecting unknown fields and trailing data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.InvalidInput(fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("request body is empty")
		default:
			return apperrors.InvalidInput("Invalid request body").WithDetails(map[string]any{"error": err.Error()})
		}
	}
	if dec.More() {
		return apperrors.InvalidInput("request body must contain a single JSON object")
	}
	return nil
}

// ExtractBookingQuery reads the status and sort filters of a booking listing.
func ExtractBookingQuery(r *http.Request) (model.BookingQuery, error) {
	query := r.URL.Query()
	q := model.BookingQuery{
		Status: query.Get("status"),
		Sort:   query.Get("sort"),
	}

	switch q.Sort {
	case "", model.SortDateAsc, model.SortDateDesc:
	default:
		return q, apperrors.InvalidInput(fmt.Sprintf("invalid sort parameter: %s", q.Sort))
	}
	return q, nil
}

// ExtractServiceFilter reads catalog search filters from the query string.
func ExtractServiceFilter(r *http.Request) model.ServiceFilter {
	query := r.URL.Query()
	return model.ServiceFilter{
		ProviderID: query.Get("provider_id"),
		Category:   query.Get("category"),
		State:      query.Get("state"),
		City:       query.Get("city"),
		Query:      query.Get("q"),
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>"
// header, or "" when the header is missing or uses another scheme.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
