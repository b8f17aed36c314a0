package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repos "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/data/repos/lesson"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/data/repos/testutil"
	httpH "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/handlers"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/response"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := services.NewStepService(db, log, repos.NewCourseStepRepo(db, log), nil)
	return NewRouter(RouterConfig{
		StepHandler:   httpH.NewCourseStepHandler(svc),
		HealthHandler: httpH.NewHealthHandler(nil),
		Log:           log,
	})
}

func do(t *testing.T, r *gin.Engine, method, path, role string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthcheck(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStepLifecycle(t *testing.T) {
	r := newTestRouter(t)
	course := uuid.New()

	body := `{"title":"Intro","description":"","order":1,"content":{"blocks":[
		{"id":null,"type":"text","data":{"text":"hello"}},
		{"id":null,"type":"quiz","data":{"questions":[{"question":"q","options":["a","b"],"answerIndex":1}]}}
	]}}`

	rec := do(t, r, http.MethodPost, "/api/teacher/courses/"+course.String()+"/steps", "student", body)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/teacher/courses/"+course.String()+"/steps", "teacher", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created steps.Step
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.Persisted())
	require.NotNil(t, created.Content.Blocks[0].ID)

	rec = do(t, r, http.MethodGet, "/api/courses/"+course.String()+"/steps", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []steps.Step
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Intro", list[0].Title)

	update := steps.Payload{Title: "Intro v2", Order: 1, Content: created.Content}
	rec = do(t, r, http.MethodPut, "/api/teacher/steps/"+created.ID.String(), "teacher", update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/api/steps/"+created.ID.String()+"/render", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "answerIndex")
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	var rendered struct {
		Nodes       []map[string]any `json:"nodes"`
		Stats       content.Stats    `json:"stats"`
		ContentHash string           `json:"content_hash"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rendered))
	require.Len(t, rendered.Nodes, 2)
	assert.Equal(t, "text", rendered.Nodes[0]["kind"])
	assert.Equal(t, 2, rendered.Stats.Blocks)

	rec = do(t, r, http.MethodGet, "/api/steps/"+created.ID.String()+"/render", "teacher", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"answerIndex":1`)
}

func TestStepErrors(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/courses/not-a-uuid/steps", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPut, "/api/teacher/steps/"+uuid.NewString(), "teacher", steps.Payload{Order: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var env response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "step_not_found", env.Error.Code)
	assert.Equal(t, rec.Header().Get("X-Request-Id"), env.Error.RequestID)
	assert.NotEmpty(t, env.Error.RequestID)

	rec = do(t, r, http.MethodPost, "/api/teacher/courses/"+uuid.NewString()+"/steps", "teacher", steps.Payload{Order: 0})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/teacher/courses/"+uuid.NewString()+"/steps", "teacher", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderContentAcceptsLegacyBodies(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/render", "", `{"type":"video","value":"https://youtu.be/abc123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "https://www.youtube.com/embed/abc123")

	rec = do(t, r, http.MethodPost, "/api/render", "", `{"blocks":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nodes":[]`)

	rec = do(t, r, http.MethodPost, "/api/render", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
