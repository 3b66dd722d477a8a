package studentclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/edukube/gradebook/core"
	"github.com/edukube/gradebook/core/grade"
)

// UnknownName is what name resolution degrades to on any failure.
const UnknownName = "Unknown"

// Client talks to the student subsystem over HTTP.
//
// Existence checks fail OPEN: when the student service is unreachable the
// grade workflow keeps accepting grades instead of rejecting them. That is a
// deliberate availability-over-consistency choice for the demo; do not
// tighten it to fail-closed.
type Client struct {
	baseURL string
	client  *http.Client
	logger  core.Logger
}

var _ grade.StudentDirectory = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.StudentService.URL, "/"),
		client:  &http.Client{Timeout: conf.StudentService.Timeout},
		logger:  logger,
	}
}

type studentEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

func (c *Client) StudentExists(ctx context.Context, id int) bool {
	resp, err := c.get(ctx, id)
	if err != nil {
		// fail open: assume the student exists when the service is unreachable
		c.logger.Warn(fmt.Sprintf("could not reach student service, assuming student %d exists: %v", id, err))
		return true
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) StudentName(ctx context.Context, id int) string {
	resp, err := c.get(ctx, id)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("could not reach student service for student %d: %v", id, err))
		return UnknownName
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return UnknownName
	}
	var env studentEnvelope
	if err = json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Warn(fmt.Sprintf("decoding student %d response: %v", id, err))
		return UnknownName
	}
	if !env.Success || env.Data.Name == "" {
		return UnknownName
	}
	return env.Data.Name
}

func (c *Client) get(ctx context.Context, id int) (*http.Response, error) {
	url := fmt.Sprintf("%s/api/students/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}
