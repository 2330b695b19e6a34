package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	activityUC "github.com/asyncopatedsoul/health-protocol/internal/activity/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	importerHTTP "github.com/asyncopatedsoul/health-protocol/internal/importer/delivery/http"
	"github.com/asyncopatedsoul/health-protocol/internal/importer/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/middleware"
	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/memory"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	_, err := store.CreateUser(context.Background(), model.User{ID: "u1", Email: "lifter@example.com"})
	require.NoError(t, err)

	l := log.NewNop()
	dates, err := datemath.NewParser(model.DefaultTimezone)
	require.NoError(t, err)

	resolver := activityUC.New(store, nil, l)
	uc := usecase.New(l, store, store, store, store, resolver, nil, importer.DefaultConfig())

	r := gin.New()
	importerHTTP.RegisterRoutes(r.Group("/api/v1"), importerHTTP.New(l, uc, dates), middleware.New(l, middleware.Config{}))
	return r
}

func do(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestParse(t *testing.T) {
	r := newRouter(t)

	w, env := do(r, http.MethodPost, "/api/v1/notes/parse", `{"content":"2025-04-17\n\nBench Press\n100 x 5\n120 x 3"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Date       string `json:"date"`
		Activities []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Parsed struct {
				Sets []struct {
					Weight float64 `json:"weight"`
					Reps   int     `json:"reps"`
				} `json:"sets"`
			} `json:"parsed"`
		} `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	// Local noon in Los Angeles on 2025-04-17 is 19:00 UTC.
	require.Equal(t, "2025-04-17 19:00:00", resp.Date)
	require.Len(t, resp.Activities, 1)
	require.Equal(t, "Bench Press", resp.Activities[0].Name)
	require.Len(t, resp.Activities[0].Parsed.Sets, 2)
	require.Equal(t, 120.0, resp.Activities[0].Parsed.Sets[1].Weight)
}

func TestCreateAndImport(t *testing.T) {
	r := newRouter(t)

	w, env := do(r, http.MethodPost, "/api/v1/notes", `{"user_id":"u1","content":"Squat\n100 x 5\n\nPlank\n60s"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var note struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &note))
	require.NotEmpty(t, note.ID)

	type importResult struct {
		ActivitiesFound int `json:"activities_found"`
		EventsCreated   int `json:"events_created"`
		Skipped         int `json:"skipped"`
	}

	w, env = do(r, http.MethodPost, "/api/v1/notes/"+note.ID+"/import", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var first importResult
	require.NoError(t, json.Unmarshal(env.Data, &first))
	require.Equal(t, importResult{ActivitiesFound: 2, EventsCreated: 2}, first)

	w, env = do(r, http.MethodPost, "/api/v1/notes/"+note.ID+"/import", `{"skip_duplicates":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var second importResult
	require.NoError(t, json.Unmarshal(env.Data, &second))
	require.Equal(t, importResult{ActivitiesFound: 2, Skipped: 2}, second)

	w, env = do(r, http.MethodPost, "/api/v1/notes/import", `{"email":"lifter@example.com","skip_duplicates":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var bulk struct {
		UserID         string `json:"user_id"`
		NotesProcessed int    `json:"notes_processed"`
		EventsCreated  int    `json:"events_created"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &bulk))
	require.Equal(t, "u1", bulk.UserID)
	require.Equal(t, 1, bulk.NotesProcessed)
	require.Equal(t, 2, bulk.EventsCreated)
}

func TestImportErrors(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{name: "unknown note", target: "/api/v1/notes/missing/import", want: http.StatusNotFound},
		{name: "threshold out of range", target: "/api/v1/notes/n1/import", body: `{"threshold":2}`, want: http.StatusBadRequest},
		{name: "bulk without user", target: "/api/v1/notes/import", body: `{}`, want: http.StatusBadRequest},
		{name: "bulk unknown user", target: "/api/v1/notes/import", body: `{"user_id":"ghost"}`, want: http.StatusNotFound},
		{name: "bulk bad import_by", target: "/api/v1/notes/import", body: `{"user_id":"u1","import_by":"updatedAt"}`, want: http.StatusBadRequest},
		{name: "bulk inverted range", target: "/api/v1/notes/import", body: `{"user_id":"u1","start_date":"2025-05-02","end_date":"2025-05-01"}`, want: http.StatusBadRequest},
		{name: "batch without ids", target: "/api/v1/notes/import/batch", body: `{"note_ids":[]}`, want: http.StatusBadRequest},
		{name: "create without content", target: "/api/v1/notes", body: `{"user_id":"u1","content":"  "}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(r, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}
