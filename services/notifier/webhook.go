package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/edukube/gradebook/core"
	"github.com/edukube/gradebook/core/grade"
)

const notifyPath = "/webhook/grade-notification"

type (
	// Webhook posts grade notifications to the external receiver and
	// classifies each attempt: delivered, rejected by the receiver, or
	// blocked at the network level (the NetworkPolicy egress demo). It
	// never returns an error and never panics past its boundary.
	Webhook struct {
		url     string
		enabled bool
		client  *http.Client
		logger  core.Logger

		mutex sync.Mutex
		stats stats
	}

	stats struct {
		lastAttempt    string
		lastSuccess    string
		lastError      string
		totalAttempts  int
		totalSuccesses int
		totalFailures  int
	}

	// Status is a point-in-time snapshot of delivery statistics.
	Status struct {
		URL            string `json:"webhook_url"`
		Enabled        bool   `json:"webhook_enabled"`
		LastAttempt    string `json:"last_attempt,omitempty"`
		LastSuccess    string `json:"last_success,omitempty"`
		LastError      string `json:"last_error,omitempty"`
		TotalAttempts  int    `json:"total_attempts"`
		TotalSuccesses int    `json:"total_successes"`
		TotalFailures  int    `json:"total_failures"`
	}

	payload struct {
		Event     string      `json:"event"`
		Timestamp string      `json:"timestamp"`
		Data      payloadData `json:"data"`
		Message   string      `json:"message"`
	}

	payloadData struct {
		StudentID   int    `json:"student_id"`
		StudentName string `json:"student_name"`
		Course      string `json:"course"`
		Grade       string `json:"grade"`
		Semester    string `json:"semester"`
		Credits     int    `json:"credits"`
	}
)

var _ grade.Notifier = (*Webhook)(nil)

func NewWebhook(conf *core.Config, logger core.Logger) *Webhook {
	return &Webhook{
		url:     strings.TrimRight(conf.Webhook.URL, "/"),
		enabled: conf.Webhook.Enabled,
		client:  &http.Client{Timeout: conf.Webhook.Timeout},
		logger:  logger,
	}
}

// NotifyGradeCreated makes a single outbound attempt; no retries.
func (w *Webhook) NotifyGradeCreated(ctx context.Context, g grade.Grade, studentName string) grade.NotifyResult {
	if !w.enabled {
		return grade.NotifyResult{Detail: "webhooks disabled"}
	}
	p := payload{
		Event:     "grade_created",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data: payloadData{
			StudentID:   g.StudentID,
			StudentName: studentName,
			Course:      g.Course,
			Grade:       g.Grade,
			Semester:    g.Semester,
			Credits:     g.Credits,
		},
		Message: fmt.Sprintf("New grade posted: %s received %s in %s", studentName, g.Grade, g.Course),
	}
	return w.send(ctx, p)
}

// TestConnection probes the receiver through the same path the workflow
// uses, so the demo endpoints exercise the real classification code.
func (w *Webhook) TestConnection(ctx context.Context) grade.NotifyResult {
	p := payload{
		Event:     "test",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data: payloadData{
			StudentName: "Test Student",
			Course:      "TEST",
			Grade:       "A",
			Semester:    "Test",
		},
		Message: "Test webhook - demonstrating egress",
	}
	return w.send(ctx, p)
}

func (w *Webhook) Status() Status {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return Status{
		URL:            w.url,
		Enabled:        w.enabled,
		LastAttempt:    w.stats.lastAttempt,
		LastSuccess:    w.stats.lastSuccess,
		LastError:      w.stats.lastError,
		TotalAttempts:  w.stats.totalAttempts,
		TotalSuccesses: w.stats.totalSuccesses,
		TotalFailures:  w.stats.totalFailures,
	}
}

func (w *Webhook) send(ctx context.Context, p payload) grade.NotifyResult {
	w.recordAttempt()

	body, err := json.Marshal(p)
	if err != nil {
		return w.failure(grade.NotifyResult{Detail: fmt.Sprintf("unexpected error: %v", err)})
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url+notifyPath, bytes.NewReader(body))
	if err != nil {
		return w.failure(grade.NotifyResult{Detail: fmt.Sprintf("unexpected error: %v", err)})
	}
	req.Header.Set("Content-Type", "application/json")

	w.logger.Info(fmt.Sprintf("egress: sending webhook to %s%s", w.url, notifyPath))

	resp, err := w.client.Do(req)
	if err != nil {
		return w.failure(classifyTransportError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return w.failure(grade.NotifyResult{
			Detail: fmt.Sprintf("external service returned status %d", resp.StatusCode),
		})
	}

	res := grade.NotifyResult{
		Delivered: true,
		Detail:    "external notification sent successfully",
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var data map[string]interface{}
		if err = json.NewDecoder(resp.Body).Decode(&data); err == nil {
			res.Response = data
		}
	}
	w.recordSuccess()
	return res
}

// classifyTransportError separates infrastructure-level denial (timeouts,
// refused connections, typically a NetworkPolicy in the demo) from anything
// else.
func classifyTransportError(err error) grade.NotifyResult {
	if uErr, ok := err.(*url.Error); ok {
		if uErr.Timeout() {
			return grade.NotifyResult{
				Blocked: true,
				Detail:  "connection timed out - likely blocked by NetworkPolicy",
			}
		}
		return grade.NotifyResult{
			Blocked: true,
			Detail:  fmt.Sprintf("connection failed - likely blocked by NetworkPolicy: %v", uErr.Err),
		}
	}
	return grade.NotifyResult{Detail: fmt.Sprintf("unexpected error: %v", err)}
}

func (w *Webhook) recordAttempt() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.stats.totalAttempts++
	w.stats.lastAttempt = time.Now().UTC().Format(time.RFC3339)
}

func (w *Webhook) recordSuccess() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.stats.totalSuccesses++
	w.stats.lastSuccess = time.Now().UTC().Format(time.RFC3339)
	w.stats.lastError = ""
}

func (w *Webhook) failure(res grade.NotifyResult) grade.NotifyResult {
	if res.Blocked {
		w.logger.Error("egress blocked: " + res.Detail)
	} else {
		w.logger.Warn("egress failed: " + res.Detail)
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.stats.totalFailures++
	w.stats.lastError = res.Detail
	return res
}
