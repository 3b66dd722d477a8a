package studentapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukube/gradebook/api/helpers"
	"github.com/edukube/gradebook/core"
	"github.com/edukube/gradebook/core/student"
	inmemdb "github.com/edukube/gradebook/storage/database/inmem"
	testutil "github.com/edukube/gradebook/tests"
)

func setup(t *testing.T) (helpers.Server, student.Repository) {
	conf := &core.Config{Version: "test", TestMode: true}

	validate, translator := testutil.NewValidators()
	repo := inmemdb.NewStudentRepository(inmemdb.Open())
	svc := student.NewService(repo, testutil.NopLogger{}, validate, translator)

	server := NewServer(
		&helpers.Options{
			Address:        ":0",
			ServiceName:    "student-service",
			DisableReqLogs: true,
			Conf:           conf,
			Logger:         testutil.NopLogger{},
		},
		svc,
	)
	return server, repo
}

func do(server helpers.Server, method, path string, body ...[]byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if len(body) > 0 {
		buf.Write(body[0])
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	res := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func TestStudentAPI_create(t *testing.T) {
	server, _ := setup(t)

	tests := []struct {
		name      string
		body      string
		wantCode  int
		wantError string
	}{
		{
			name:     "valid",
			body:     `{"name": "Jane Doe", "email": "jane@test.cd", "age": 20, "major": "CS", "gpa": 3.5}`,
			wantCode: http.StatusCreated,
		},
		{
			name:      "invalid fields",
			body:      `{"name": "J", "email": "nope"}`,
			wantCode:  http.StatusBadRequest,
			wantError: "name must be at least 2 characters; invalid email address",
		},
		{
			name:      "age coercion failure",
			body:      `{"name": "John Doe", "email": "john@test.cd", "age": "twenty"}`,
			wantCode:  http.StatusBadRequest,
			wantError: "age must be a number",
		},
		{
			name:      "duplicate email",
			body:      `{"name": "Jane Again", "email": "jane@test.cd"}`,
			wantCode:  http.StatusConflict,
			wantError: "Email already exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(server, http.MethodPost, "/api/students", []byte(tt.body))
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			res := decode(t, rec)
			if tt.wantError != "" {
				assert.Equal(t, false, res["success"])
				assert.Equal(t, tt.wantError, res["error"])
				return
			}
			assert.Equal(t, true, res["success"])
			assert.Equal(t, "Student created successfully", res["message"])
			data := res["data"].(map[string]interface{})
			assert.Equal(t, float64(1), data["id"])
		})
	}
}

func TestStudentAPI_query(t *testing.T) {
	server, repo := setup(t)

	testutil.CreateStudent(t, repo, "Jane Doe", "jane@test.cd", "Computer Science")
	testutil.CreateStudent(t, repo, "Adam Smith", "adam@test.cd", "Economics")

	t.Run("all ordered by name", func(t *testing.T) {
		rec := do(server, http.MethodGet, "/api/students")
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode(t, rec)
		assert.Equal(t, true, res["success"])
		assert.Equal(t, float64(2), res["count"])
		data := res["data"].([]interface{})
		assert.Equal(t, "Adam Smith", data[0].(map[string]interface{})["name"])
		assert.Equal(t, "Jane Doe", data[1].(map[string]interface{})["name"])
	})

	t.Run("search", func(t *testing.T) {
		rec := do(server, http.MethodGet, "/api/students?search=doe")
		res := decode(t, rec)
		assert.Equal(t, float64(1), res["count"])
	})

	t.Run("filter by major", func(t *testing.T) {
		rec := do(server, http.MethodGet, "/api/students?major=Economics")
		res := decode(t, rec)
		assert.Equal(t, float64(1), res["count"])
	})

	t.Run("majors", func(t *testing.T) {
		rec := do(server, http.MethodGet, "/api/students/majors")
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode(t, rec)
		assert.Equal(t, []interface{}{"Computer Science", "Economics"}, res["data"])
	})
}

func TestStudentAPI_retrieve(t *testing.T) {
	server, repo := setup(t)
	jane := testutil.CreateStudent(t, repo, "Jane Doe", "jane@test.cd", "CS")

	t.Run("found", func(t *testing.T) {
		rec := do(server, http.MethodGet, "/api/students/1")
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode(t, rec)
		data := res["data"].(map[string]interface{})
		assert.Equal(t, jane.Name, data["name"])
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(server, http.MethodGet, "/api/students/999")
		require.Equal(t, http.StatusNotFound, rec.Code)

		res := decode(t, rec)
		assert.Equal(t, false, res["success"])
		assert.Equal(t, "Student not found", res["error"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := do(server, http.MethodGet, "/api/students/abc")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStudentAPI_update(t *testing.T) {
	server, repo := setup(t)
	testutil.CreateStudent(t, repo, "Jane Doe", "jane@test.cd", "CS")

	t.Run("partial update keeps the rest", func(t *testing.T) {
		rec := do(server, http.MethodPut, "/api/students/1", []byte(`{"name": "Janet Doe"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res := decode(t, rec)
		assert.Equal(t, "Student updated successfully", res["message"])
		data := res["data"].(map[string]interface{})
		assert.Equal(t, "Janet Doe", data["name"])
		assert.Equal(t, "jane@test.cd", data["email"])
	})

	t.Run("invalid", func(t *testing.T) {
		rec := do(server, http.MethodPut, "/api/students/1", []byte(`{"gpa": 9}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "gpa must be between 0 and 4.0", decode(t, rec)["error"])
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(server, http.MethodPut, "/api/students/999", []byte(`{"name": "Ghost"}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStudentAPI_destroy(t *testing.T) {
	server, repo := setup(t)
	testutil.CreateStudent(t, repo, "Jane Doe", "jane@test.cd", "CS")

	rec := do(server, http.MethodDelete, "/api/students/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Student deleted successfully", decode(t, rec)["message"])

	rec = do(server, http.MethodDelete, "/api/students/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentAPI_health(t *testing.T) {
	server, _ := setup(t)

	rec := do(server, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode(t, rec)
	assert.Equal(t, "healthy", res["status"])
	assert.Equal(t, "student-service", res["service"])
}
