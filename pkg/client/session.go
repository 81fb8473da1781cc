package client

import (
	"context"
	"net/http"
	"net/url"

	"marketplace/pkg/model"
)

type SessionClient struct {
	httpClient *HttpClient
}

func NewSessionClient(httpClient *HttpClient) *SessionClient {
	return &SessionClient{httpClient: httpClient}
}

type Me struct {
	User  *model.User `json:"user"`
	Theme string      `json:"theme"`
	Graph string      `json:"graph"`
}

// DemoLogin opens a session for a seeded account of the given role and
// authenticates later requests with it.
func (c *SessionClient) DemoLogin(ctx context.Context, role, id string) (*model.Session, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/auth/demo/"+url.PathEscape(role)+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return c.open(resp, http.StatusOK)
}

func (c *SessionClient) Login(ctx context.Context, email, password string) (*model.Session, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/auth/login", model.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return c.open(resp, http.StatusOK)
}

func (c *SessionClient) Register(ctx context.Context, registration *model.Registration) (*model.Session, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/auth/register", registration)
	if err != nil {
		return nil, err
	}
	return c.open(resp, http.StatusCreated)
}

func (c *SessionClient) Me(ctx context.Context) (*Me, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/auth/me")
	if err != nil {
		return nil, err
	}
	var me Me
	if err := decode(resp, http.StatusOK, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *SessionClient) SetTheme(ctx context.Context, theme string) error {
	resp, err := c.httpClient.PUT(ctx, "/api/v1/auth/me/theme", model.ThemeUpdate{Theme: theme})
	if err != nil {
		return err
	}
	return decode(resp, http.StatusOK, nil)
}

func (c *SessionClient) Logout(ctx context.Context) error {
	resp, err := c.httpClient.POST(ctx, "/api/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	if err := decode(resp, http.StatusNoContent, nil); err != nil {
		return err
	}
	c.httpClient.Token = ""
	return nil
}

func (c *SessionClient) open(resp *Response, want int) (*model.Session, error) {
	var session model.Session
	if err := decode(resp, want, &session); err != nil {
		return nil, err
	}
	c.httpClient.Token = session.Token
	return &session, nil
}
