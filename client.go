package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

var _ AuthAPI = &Client{}

// Client is the HTTP implementation of AuthAPI. Every call is a single
// attempt; retry policy belongs to the caller, not the transport.
type Client struct {
	cfg    Config
	http   *http.Client
	logger Logger
}

// NewClient returns an Auth API client configured from cfg.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.GetHTTPTimeout()},
		logger: defLogger{},
	}
}

func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithHTTPClient swaps the underlying http.Client (useful for tests and
// custom transports).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthPayload, error) {
	env, err := c.post(ctx, c.cfg.GetLoginPath(), "", creds)
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(env)
}

func (c *Client) Register(ctx context.Context, payload Registration) (*AuthPayload, error) {
	env, err := c.post(ctx, c.cfg.GetRegisterPath(), "", payload)
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(env)
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, c.cfg.GetCurrentUserPath(), token, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.User == nil {
		return nil, ErrMalformedPayload
	}
	return data.User, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.post(ctx, c.cfg.GetLogoutPath(), token, nil)
	return err
}

func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	env, err := c.post(ctx, c.cfg.GetRefreshPath(), token, nil)
	if err != nil {
		return "", err
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return "", ErrMalformedPayload
	}
	return data.Token, nil
}

// VerifyEmail confirms an email verification token. Session neutral: the
// Manager's state is never involved.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	_, err := c.post(ctx, c.cfg.GetVerifyEmailPath(), "", map[string]string{"token": token})
	return err
}

// ForgotPassword asks the Auth API to start a password reset for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.post(ctx, c.cfg.GetForgotPasswordPath(), "", map[string]string{"email": email})
	return err
}

// ResetPassword finalizes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	_, err := c.post(ctx, c.cfg.GetResetPasswordPath(), "", map[string]string{
		"token":    token,
		"password": password,
	})
	return err
}

// ChangePassword rotates the password of the authenticated account.
func (c *Client) ChangePassword(ctx context.Context, token, current, next string) error {
	_, err := c.post(ctx, c.cfg.GetChangePasswordPath(), token, map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	})
	return err
}

func (c *Client) post(ctx context.Context, path, token string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, token, body)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.GetBaseURL()+path, reader)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build auth api request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", c.cfg.GetAuthScheme()+" "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("auth api %s %s failed: %s", method, path, err)
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "auth api request failed")
	}
	defer res.Body.Close()

	env := &Envelope{}
	if err := json.NewDecoder(res.Body).Decode(env); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{Status: res.StatusCode}
		}
		return nil, ErrMalformedPayload
	}

	if !env.Success {
		return nil, &APIError{Status: res.StatusCode, Message: env.Message}
	}

	return env, nil
}

func decodeAuthPayload(env *Envelope) (*AuthPayload, error) {
	payload := &AuthPayload{}
	if err := json.Unmarshal(env.Data, payload); err != nil {
		return nil, ErrMalformedPayload
	}
	if payload.User == nil || payload.Token == "" {
		return nil, ErrMalformedPayload
	}
	return payload, nil
}
