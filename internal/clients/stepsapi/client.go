// Package stepsapi talks to the course step endpoints over HTTP and
// satisfies steps.Gateway for command-line authoring.
package stepsapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type Config struct {
	BaseURL string
	Token   string
	// Role is sent as X-User-Role; authoring endpoints need "teacher".
	Role    string
	Timeout time.Duration
}

// HTTPError is returned for any non-2xx answer.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("steps api: status %d: %s", e.StatusCode, body)
}

type Client struct {
	rc  *resty.Client
	log *logger.Logger
}

var _ steps.Gateway = (*Client)(nil)

func New(cfg Config, log *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("steps api: base url required")
	}
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	role := cfg.Role
	if role == "" {
		role = "teacher"
	}

	rc := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("X-User-Role", role)
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}
	return &Client{rc: rc, log: log.With("client", "StepsAPI")}, nil
}

func (c *Client) ListSteps(ctx context.Context, courseID uuid.UUID) ([]steps.Step, error) {
	var out []steps.Step
	resp, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", courseID.String()).
		SetResult(&out).
		Get("/api/courses/{id}/steps")
	if err := c.check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStep(ctx context.Context, courseID uuid.UUID, p steps.Payload) (steps.Step, error) {
	var out steps.Step
	resp, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", courseID.String()).
		SetBody(p).
		SetResult(&out).
		Post("/api/teacher/courses/{id}/steps")
	if err := c.check(resp, err); err != nil {
		return steps.Step{}, err
	}
	return out, nil
}

func (c *Client) UpdateStep(ctx context.Context, stepID uuid.UUID, p steps.Payload) (steps.Step, error) {
	var out steps.Step
	resp, err := c.rc.R().
		SetContext(ctx).
		SetPathParam("id", stepID.String()).
		SetBody(p).
		SetResult(&out).
		Put("/api/teacher/steps/{id}")
	if err := c.check(resp, err); err != nil {
		return steps.Step{}, err
	}
	return out, nil
}

func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("steps api: %w", err)
	}
	if resp.IsError() || resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		c.log.Warn("steps api request failed",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
		)
		return &HTTPError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
