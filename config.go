package session

import (
	"os"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

var _ Config = &FileConfig{}

// FileConfig is a Config implementation loadable from YAML, with env var
// overrides for the values that change between deploy targets.
type FileConfig struct {
	BaseURL string `yaml:"base_url"`
	// HTTPTimeoutSeconds bounds every Auth API call.
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`
	AuthScheme         string `yaml:"auth_scheme"`

	LoginPath          string `yaml:"login_path"`
	RegisterPath       string `yaml:"register_path"`
	CurrentUserPath    string `yaml:"current_user_path"`
	LogoutPath         string `yaml:"logout_path"`
	RefreshPath        string `yaml:"refresh_path"`
	VerifyEmailPath    string `yaml:"verify_email_path"`
	ForgotPasswordPath string `yaml:"forgot_password_path"`
	ResetPasswordPath  string `yaml:"reset_password_path"`
	ChangePasswordPath string `yaml:"change_password_path"`

	// TokenKey and UserKey name the persisted store entries.
	TokenKey string `yaml:"token_key"`
	UserKey  string `yaml:"user_key"`
}

// DefaultConfig returns the conventional Auth API layout.
func DefaultConfig() *FileConfig {
	return &FileConfig{
		BaseURL:            getEnv("SESSION_BASE_URL", "http://localhost:3000/api"),
		HTTPTimeoutSeconds: 15,
		AuthScheme:         "Bearer",
		LoginPath:          "/auth/login",
		RegisterPath:       "/auth/register",
		CurrentUserPath:    "/auth/me",
		LogoutPath:         "/auth/logout",
		RefreshPath:        "/auth/refresh-token",
		VerifyEmailPath:    "/auth/verify-email",
		ForgotPasswordPath: "/auth/forgot-password",
		ResetPasswordPath:  "/auth/reset-password",
		ChangePasswordPath: "/auth/change-password",
		TokenKey:           "token",
		UserKey:            "user",
	}
}

// LoadConfig reads a YAML file over the defaults. Missing file fields keep
// their default values.
func LoadConfig(path string) (*FileConfig, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read session config")
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse session config")
	}

	return cfg, nil
}

func (c *FileConfig) GetBaseURL() string    { return c.BaseURL }
func (c *FileConfig) GetAuthScheme() string { return c.AuthScheme }

func (c *FileConfig) GetHTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
func (c *FileConfig) GetLoginPath() string          { return c.LoginPath }
func (c *FileConfig) GetRegisterPath() string       { return c.RegisterPath }
func (c *FileConfig) GetCurrentUserPath() string    { return c.CurrentUserPath }
func (c *FileConfig) GetLogoutPath() string         { return c.LogoutPath }
func (c *FileConfig) GetRefreshPath() string        { return c.RefreshPath }
func (c *FileConfig) GetVerifyEmailPath() string    { return c.VerifyEmailPath }
func (c *FileConfig) GetForgotPasswordPath() string { return c.ForgotPasswordPath }
func (c *FileConfig) GetResetPasswordPath() string  { return c.ResetPasswordPath }
func (c *FileConfig) GetChangePasswordPath() string { return c.ChangePasswordPath }

// GetTokenKey is the store key the bearer token persists under.
func (c *FileConfig) GetTokenKey() string {
	if c.TokenKey == "" {
		return "token"
	}
	return c.TokenKey
}

// GetUserKey is the store key the user snapshot persists under.
func (c *FileConfig) GetUserKey() string {
	if c.UserKey == "" {
		return "user"
	}
	return c.UserKey
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
