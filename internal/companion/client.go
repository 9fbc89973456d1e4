// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package companion talks to the optional companion server that keeps user
// accounts and exported game states. Every failure is reported as
// ErrUnavailable; callers treat the server as best-effort and never retry.
package companion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable wraps every transport, status and decoding failure.
var ErrUnavailable = errors.New("companion server unavailable")

// User is a companion server account.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
}

// Client is a thin REST client for the companion server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL (e.g. http://localhost:1337).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, name, password string) error {
	form := url.Values{"name": {name}, "password": {password}}
	return c.do(ctx, http.MethodPost, "/user", form, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/user/"+strconv.Itoa(id), nil, nil)
}

// Users lists all accounts.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GameStates lists every stored game state.
func (c *Client) GameStates(ctx context.Context) ([]GameState, error) {
	var out []GameState
	if err := c.do(ctx, http.MethodGet, "/state", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LatestGameState returns the most recent state stored for a user.
func (c *Client) LatestGameState(ctx context.Context, userID int) (GameState, error) {
	var all []GameState
	if err := c.do(ctx, http.MethodGet, "/user/"+strconv.Itoa(userID)+"/state", nil, &all); err != nil {
		return GameState{}, err
	}
	if len(all) == 0 {
		return GameState{}, fmt.Errorf("%w: no states for user %d", ErrUnavailable, userID)
	}
	return all[len(all)-1], nil
}

// CreateGameState uploads a state.
func (c *Client) CreateGameState(ctx context.Context, st GameState) error {
	return c.do(ctx, http.MethodPost, "/state", st.form(), nil)
}

// DeleteGameState removes a stored state.
func (c *Client) DeleteGameState(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/state/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: status %s", ErrUnavailable, method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode: %v", ErrUnavailable, method, path, err)
	}
	return nil
}
