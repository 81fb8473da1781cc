package client

// Client groups the marketplace API clients over one connection and
// session.
type Client struct {
	HTTP      *HttpClient
	Sessions  *SessionClient
	Catalog   *CatalogClient
	Bookings  *BookingClient
	Providers *ProviderClient
}

func NewClient(baseURL string) *Client {
	httpClient := NewHttpClient(baseURL)
	return &Client{
		HTTP:      httpClient,
		Sessions:  NewSessionClient(httpClient),
		Catalog:   NewCatalogClient(httpClient),
		Bookings:  NewBookingClient(httpClient),
		Providers: NewProviderClient(httpClient),
	}
}
