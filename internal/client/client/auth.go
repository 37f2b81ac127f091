package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/manuelmariscal/coursera/internal/client/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the user record.
func (c *RESTClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	raw, err := c.execute(ctx, call{
		method: http.MethodPost,
		path:   pathLogin,
		body:   loginRequest{Username: username, Password: password},
	})
	if err != nil {
		return "", nil, err
	}

	if _, err := decodeObject(raw); err != nil {
		return "", nil, err
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", nil, &APIError{Kind: KindMalformedResponse, Message: "decode login response", Err: err}
	}
	if resp.Token == "" || resp.User == nil {
		return "", nil, malformed("login response lacks token or user")
	}
	return resp.Token, resp.User, nil
}

// Me resolves the user owning the current bearer token.
func (c *RESTClient) Me(ctx context.Context) (*models.User, error) {
	return c.getUser(ctx, pathMe)
}

func (c *RESTClient) GetProfile(ctx context.Context) (*models.User, error) {
	return c.getUser(ctx, pathProfile)
}

// UpdateProfile replaces the profile and returns the stored record.
func (c *RESTClient) UpdateProfile(ctx context.Context, u models.User) (*models.User, error) {
	raw, err := c.execute(ctx, call{method: http.MethodPut, path: pathProfile, body: u})
	if err != nil {
		return nil, err
	}
	return decodeItem[models.User](raw, "user")
}

func (c *RESTClient) getUser(ctx context.Context, path string) (*models.User, error) {
	raw, err := c.execute(ctx, call{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	return decodeItem[models.User](raw, "user")
}

func (c *RESTClient) UserRecords(ctx context.Context) ([]models.UserRecord, error) {
	raw, err := c.execute(ctx, call{method: http.MethodGet, path: pathUserRecords})
	if err != nil {
		return nil, err
	}
	return decodeDirectList[models.UserRecord](raw)
}

func (c *RESTClient) UserMotorcycles(ctx context.Context) ([]models.UserMotorcycle, error) {
	raw, err := c.execute(ctx, call{method: http.MethodGet, path: pathUserMotorcycles})
	if err != nil {
		return nil, err
	}
	return decodeDirectList[models.UserMotorcycle](raw)
}
