package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/black-swan-sentinel/internal/config"
	"github.com/MKhiriev/black-swan-sentinel/internal/logger"
	"github.com/MKhiriev/black-swan-sentinel/internal/utils"
	"github.com/MKhiriev/black-swan-sentinel/models"
)

const (
	registerPath       = "/api/v1/auth/register"
	loginPath          = "/api/v1/auth/login"
	loginFormPath      = "/api/v1/auth/login/oauth"
	refreshPath        = "/api/v1/auth/refresh"
	mePath             = "/api/v1/auth/me"
	changePasswordPath = "/api/v1/auth/change-password"
	healthPath         = "/health"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter].
// The base URL defaults to the http scheme when none is given. cfg.Token,
// when set, is used for authenticated requests until replaced.
func NewHTTPServerAdapter(cfg config.Client, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error) {
	var user models.UserResponse

	resp, err := h.request(ctx).
		SetBody(req).
		SetResult(&user).
		Post(registerPath)
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	return h.obtainPair("login", h.request(ctx).SetBody(req), loginPath)
}

func (h *httpServerAdapter) LoginForm(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	r := h.request(ctx).SetFormData(map[string]string{
		"username": req.Username,
		"password": req.Password,
	})
	return h.obtainPair("login form", r, loginFormPath)
}

func (h *httpServerAdapter) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	r := h.request(ctx).SetBody(models.RefreshTokenRequest{RefreshToken: refreshToken})
	return h.obtainPair("refresh", r, refreshPath)
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	var user models.UserResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get(mePath)
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	resp, err := h.authedRequest(ctx).
		SetBody(req).
		Post(changePasswordPath)
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse

	resp, err := h.request(ctx).
		SetResult(&health).
		Get(healthPath)
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return health, nil
}

// obtainPair posts r to path, stores the returned access token and
// returns the pair.
func (h *httpServerAdapter) obtainPair(op string, r *resty.Request, path string) (models.TokenPair, error) {
	var pair models.TokenPair

	resp, err := r.SetResult(&pair).Post(path)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenPair{}, err
	}
	if pair.AccessToken == "" {
		return models.TokenPair{}, fmt.Errorf("%s: %w: empty access token", op, ErrUnexpectedResponse)
	}

	h.SetToken(pair.AccessToken)
	h.logger.Debug().Str("func", "httpServerAdapter.obtainPair").Msgf("%s succeeded", op)

	return pair, nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetError(&models.ErrorResponse{})
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
