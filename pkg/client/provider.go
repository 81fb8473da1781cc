package client

import (
	"context"
	"net/http"
	"net/url"

	"marketplace/pkg/model"
)

// ProviderClient covers reviews, ratings and earnings.
type ProviderClient struct {
	httpClient *HttpClient
}

func NewProviderClient(httpClient *HttpClient) *ProviderClient {
	return &ProviderClient{httpClient: httpClient}
}

func (c *ProviderClient) Review(ctx context.Context, review *model.Review) (*model.Review, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/reviews", review)
	if err != nil {
		return nil, err
	}
	var created model.Review
	if err := decode(resp, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *ProviderClient) Rating(ctx context.Context, providerID string) (float64, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/providers/"+url.PathEscape(providerID)+"/rating")
	if err != nil {
		return 0, err
	}
	var rating struct {
		Rating float64 `json:"rating"`
	}
	if err := decode(resp, http.StatusOK, &rating); err != nil {
		return 0, err
	}
	return rating.Rating, nil
}

func (c *ProviderClient) Earnings(ctx context.Context, providerID string) (*model.EarningsSummary, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/providers/"+url.PathEscape(providerID)+"/earnings")
	if err != nil {
		return nil, err
	}
	var summary model.EarningsSummary
	if err := decode(resp, http.StatusOK, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *ProviderClient) Dashboard(ctx context.Context, providerID string) (*model.ProviderOverview, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/providers/"+url.PathEscape(providerID)+"/dashboard")
	if err != nil {
		return nil, err
	}
	var dashboard model.ProviderOverview
	if err := decode(resp, http.StatusOK, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
