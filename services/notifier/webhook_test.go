package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukube/gradebook/core"
	"github.com/edukube/gradebook/core/grade"
	testutil "github.com/edukube/gradebook/tests"
)

func newWebhook(url string, enabled bool) *Webhook {
	conf := &core.Config{}
	conf.Webhook.URL = url
	conf.Webhook.Enabled = enabled
	conf.Webhook.Timeout = 500 * time.Millisecond
	return NewWebhook(conf, testutil.NopLogger{})
}

func sampleGrade() grade.Grade {
	return grade.Grade{
		ID:        1,
		StudentID: 1,
		Course:    "Data Structures",
		Grade:     "A",
		Semester:  "Fall 2024",
		Credits:   4,
	}
}

func TestWebhook_NotifyGradeCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("delivered", func(t *testing.T) {
		var got payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/webhook/grade-notification", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": true, "webhook_id": 1}`))
		}))
		defer srv.Close()

		hook := newWebhook(srv.URL, true)
		res := hook.NotifyGradeCreated(ctx, sampleGrade(), "Jane Doe")

		assert.True(t, res.Delivered)
		assert.False(t, res.Blocked)
		assert.NotNil(t, res.Response)

		assert.Equal(t, "grade_created", got.Event)
		assert.Equal(t, "Jane Doe", got.Data.StudentName)
		assert.Equal(t, "New grade posted: Jane Doe received A in Data Structures", got.Message)

		status := hook.Status()
		assert.Equal(t, 1, status.TotalAttempts)
		assert.Equal(t, 1, status.TotalSuccesses)
		assert.Zero(t, status.TotalFailures)
		assert.Empty(t, status.LastError)
	})

	t.Run("rejected by receiver", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		hook := newWebhook(srv.URL, true)
		res := hook.NotifyGradeCreated(ctx, sampleGrade(), "Jane Doe")

		assert.False(t, res.Delivered)
		assert.False(t, res.Blocked)
		assert.Equal(t, "external service returned status 500", res.Detail)

		status := hook.Status()
		assert.Equal(t, 1, status.TotalFailures)
		assert.Equal(t, res.Detail, status.LastError)
	})

	t.Run("blocked when unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		hook := newWebhook(srv.URL, true)
		res := hook.NotifyGradeCreated(ctx, sampleGrade(), "Jane Doe")

		assert.False(t, res.Delivered)
		assert.True(t, res.Blocked)
		assert.Contains(t, res.Detail, "likely blocked by NetworkPolicy")

		status := hook.Status()
		assert.Equal(t, 1, status.TotalAttempts)
		assert.Equal(t, 1, status.TotalFailures)
	})

	t.Run("disabled skips the attempt", func(t *testing.T) {
		hook := newWebhook("http://example.invalid", false)
		res := hook.NotifyGradeCreated(ctx, sampleGrade(), "Jane Doe")

		assert.False(t, res.Delivered)
		assert.False(t, res.Blocked)
		assert.Equal(t, "webhooks disabled", res.Detail)
		assert.Zero(t, hook.Status().TotalAttempts)
	})
}

func TestWebhook_TestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "test", p.Event)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	hook := newWebhook(srv.URL, true)
	res := hook.TestConnection(context.Background())
	assert.True(t, res.Delivered)
	assert.Equal(t, 1, hook.Status().TotalAttempts)
}

func TestWebhook_Status(t *testing.T) {
	hook := newWebhook("http://webhook-receiver:5005", true)
	status := hook.Status()

	assert.Equal(t, "http://webhook-receiver:5005", status.URL)
	assert.True(t, status.Enabled)
	assert.Empty(t, status.LastAttempt)
}
