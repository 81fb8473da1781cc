package client

import (
	"context"
	"net/http"
	"net/url"

	"marketplace/pkg/model"
)

type CatalogClient struct {
	httpClient *HttpClient
}

func NewCatalogClient(httpClient *HttpClient) *CatalogClient {
	return &CatalogClient{httpClient: httpClient}
}

func (c *CatalogClient) Search(ctx context.Context, filter model.ServiceFilter) ([]*model.Service, error) {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("provider_id", filter.ProviderID)
	set("category", filter.Category)
	set("state", filter.State)
	set("city", filter.City)
	set("q", filter.Query)

	resp, err := c.httpClient.GET(ctx, "/api/v1/services/search?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var services []*model.Service
	if err := decode(resp, http.StatusOK, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *CatalogClient) GetByID(ctx context.Context, id string) (*model.Service, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/services/id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var service model.Service
	if err := decode(resp, http.StatusOK, &service); err != nil {
		return nil, err
	}
	return &service, nil
}
