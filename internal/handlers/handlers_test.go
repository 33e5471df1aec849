package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/router"
	"github.com/taskhive-dev/taskhive/internal/store/memstore"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*gin.Engine, *memstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	guard, err := auth.NewGuard("test-secret", time.Hour)
	require.NoError(t, err)

	s := memstore.New()
	h := handlers.New(guard, s.Users, s.Tasks, s.Projects, bcrypt.MinCost)
	return router.NewRouter(h, config.Config{}.CORSOrigins()), s
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerAndSignin creates a user through the public endpoint and returns a
// bearer token plus the user's id.
func registerAndSignin(t *testing.T, r *gin.Engine, email string) (token, userID string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/users", "",
		`{"name": "Test User", "email": "`+email+`", "password": "password123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeBody(t, w)["data"].(map[string]any)
	userID = data["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/auth/signin", "",
		`{"email": "`+email+`", "password": "password123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token = decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token, userID
}

func TestSignin(t *testing.T) {
	r, _ := newTestServer(t)

	registerAndSignin(t, r, "dev@example.com")

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/signin", "",
			`{"email": "dev@example.com", "password": "wrong-password"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/signin", "",
			`{"email": "nobody@example.com", "password": "password123"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	r, _ := newTestServer(t)

	body := `{"name": "Test User", "email": "dup@example.com", "password": "password123"}`

	w := doJSON(t, r, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/users", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/projects", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskLifecycleThroughAPI(t *testing.T) {
	r, _ := newTestServer(t)
	token, userID := registerAndSignin(t, r, "dev@example.com")

	w := doJSON(t, r, http.MethodPost, "/projects", token,
		`{"title": "Backend"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := decodeBody(t, w)["data"].(map[string]any)["id"].(string)

	w = doJSON(t, r, http.MethodPost, "/tasks", token,
		`{"title": "Wire up login", "projectId": "`+projectID+`", "assignedTo": "`+userID+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	task := decodeBody(t, w)["data"].(map[string]any)
	taskID := task["id"].(string)
	assert.Equal(t, "to-do", task["status"])

	// The project's populated task list includes the new task.
	w = doJSON(t, r, http.MethodGet, "/projects/"+projectID+"/tasks", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeBody(t, w)["data"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, taskID, tasks[0].(map[string]any)["id"])

	// Cascade: deleting the project removes its tasks.
	w = doJSON(t, r, http.MethodDelete, "/projects/"+projectID, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/tasks/"+taskID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/projects/"+projectID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Every 404 names the missing entity kind, direct lookups included.
func TestNotFoundNamesEntityKind(t *testing.T) {
	r, _ := newTestServer(t)
	token, userID := registerAndSignin(t, r, "dev@example.com")

	const missingID = "64f1b2c3d4e5f6a7b8c9d0e1"

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   string
	}{
		{"get task", http.MethodGet, "/tasks/" + missingID, "", "Task not found"},
		{"update task", http.MethodPatch, "/tasks/" + missingID, `{"title": "x"}`, "Task not found"},
		{"get user", http.MethodGet, "/users/" + missingID, "", "User not found"},
		{"update user", http.MethodPatch, "/users/" + missingID, `{"name": "Someone"}`, "User not found"},
		{"delete user", http.MethodDelete, "/users/" + missingID, "", "User not found"},
		{"get project", http.MethodGet, "/projects/" + missingID, "", "Project not found"},
		{"update project", http.MethodPatch, "/projects/" + missingID, `{"title": "x"}`, "Project not found"},
		{"delete project", http.MethodDelete, "/projects/" + missingID, "", "Project not found"},
		{"project tasks", http.MethodGet, "/projects/" + missingID + "/tasks", "", "Project not found"},
		{"project members", http.MethodGet, "/projects/" + missingID + "/users", "", "Project not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, tt.method, tt.path, token, tt.body)
			require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}

	// Me after deleting the account names the user kind too.
	w := doJSON(t, r, http.MethodDelete, "/users/"+userID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestCreateTask_ReferentialErrors(t *testing.T) {
	r, _ := newTestServer(t)
	token, _ := registerAndSignin(t, r, "dev@example.com")

	t.Run("malformed project id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/tasks", token,
			`{"title": "Bad ref", "projectId": "not-an-id"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown project", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/tasks", token,
			`{"title": "Orphan", "projectId": "64f1b2c3d4e5f6a7b8c9d0e1"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Project not found")
	})
}

func TestAddProjectMember_Validation(t *testing.T) {
	r, _ := newTestServer(t)
	token, userID := registerAndSignin(t, r, "dev@example.com")

	w := doJSON(t, r, http.MethodPost, "/projects", token, `{"title": "Backend"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := decodeBody(t, w)["data"].(map[string]any)["id"].(string)

	t.Run("malformed user id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/projects/"+projectID+"/users", token,
			`{"userId": "nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/projects/"+projectID+"/users", token,
			`{"userId": "64f1b2c3d4e5f6a7b8c9d0e1"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("member added and listed", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/projects/"+projectID+"/users", token,
			`{"userId": "`+userID+`"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodGet, "/projects/"+projectID+"/users", token, "")
		require.Equal(t, http.StatusOK, w.Code)
		members := decodeBody(t, w)["data"].([]any)
		require.Len(t, members, 1)
		assert.Equal(t, userID, members[0].(map[string]any)["id"])
	})
}

func TestDeleteUser_NullifiesAssignment(t *testing.T) {
	r, _ := newTestServer(t)
	token, userID := registerAndSignin(t, r, "dev@example.com")

	w := doJSON(t, r, http.MethodPost, "/tasks", token,
		`{"title": "Assigned", "assignedTo": "`+userID+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["data"].(map[string]any)["id"].(string)

	w = doJSON(t, r, http.MethodDelete, "/users/"+userID, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	// The still-unexpired token keeps working after the user is gone.
	w = doJSON(t, r, http.MethodGet, "/tasks/"+taskID, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	task := decodeBody(t, w)["data"].(map[string]any)
	assert.Nil(t, task["assignedTo"])
}

func TestMe(t *testing.T) {
	r, _ := newTestServer(t)
	token, userID := registerAndSignin(t, r, "dev@example.com")

	w := doJSON(t, r, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, userID, user["id"])

	// The token still authenticates after the user is deleted; only the
	// lookup fails.
	w = doJSON(t, r, http.MethodDelete, "/users/"+userID, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
