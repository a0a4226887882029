package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/coveyrise/steward/internal/blob"
	"github.com/coveyrise/steward/internal/playbook"
	"github.com/coveyrise/steward/internal/repository"
	"github.com/coveyrise/steward/internal/service"
	"github.com/coveyrise/steward/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "portal-test-token"

type env struct {
	server   *httptest.Server
	projects service.ProjectService
	tasks    service.TaskService
	funding  repository.FundingRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	practiceRepo := repository.NewSQLiteProjectPracticeRepo(database)
	fundingRepo := repository.NewSQLiteFundingRepo(database)
	fileRepo := repository.NewSQLiteFileRepo(database)

	services := Services{
		Projects:  service.NewProjectService(projectRepo),
		Tasks:     service.NewTaskService(taskRepo, projectRepo),
		Playbooks: service.NewPlaybookService(playbook.DefaultCatalog(), projectRepo, taskRepo, practiceRepo, fundingRepo),
		Funding:   service.NewFundingService(fundingRepo, practiceRepo, testutil.NewTestUoW(database)),
		Files:     service.NewFileService(fileRepo, projectRepo, blob.NewMemory()),
	}

	s := NewServer(Config{Token: testToken}, services)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return &env{
		server:   srv,
		projects: services.Projects,
		tasks:    services.Tasks,
		funding:  fundingRepo,
	}
}

func (e *env) do(t *testing.T, method, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *env) postForm(t *testing.T, path string, form url.Values) *http.Response {
	return e.do(t, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func decodeJSON(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestHealth_NoTokenRequired(t *testing.T) {
	e := newEnv(t)

	resp, err := http.Get(e.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_RejectsMissingToken(t *testing.T) {
	e := newEnv(t)

	resp, err := http.Get(e.server.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_AcceptsQueryToken(t *testing.T) {
	e := newEnv(t)

	resp, err := http.Get(e.server.URL + "/api/projects?token=" + testToken)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndViewProject(t *testing.T) {
	e := newEnv(t)

	resp := e.postForm(t, "/api/projects", url.Values{
		"title":    {"North Forty"},
		"location": {"Stillwater, OK"},
		"acreage":  {"40"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "active", created.Status)

	view := e.do(t, http.MethodGet, "/portal/projects/"+created.ID, nil, "")
	require.Equal(t, http.StatusOK, view.StatusCode)

	var body struct {
		Project struct {
			Title string `json:"title"`
		} `json:"project"`
		Tasks     []json.RawMessage `json:"tasks"`
		Practices []json.RawMessage `json:"practices"`
		Files     []json.RawMessage `json:"files"`
	}
	decodeJSON(t, view, &body)
	assert.Equal(t, "North Forty", body.Project.Title)
	assert.Empty(t, body.Tasks)
	assert.NotNil(t, body.Tasks, "empty collections serialize as [], not null")
}

func TestProjectView_Missing(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/portal/projects/ghost", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApplyPlaybook_RedirectsOK(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	testutil.SeedReferenceData(t, e.funding)
	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, e.projects.Create(ctx, proj))

	resp := e.postForm(t, "/portal/projects/"+proj.ID+"/playbooks/apply", url.Values{
		"playbook": {"upland-habitat"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/portal/projects/"+proj.ID+"?seed=ok", resp.Header.Get("Location"))

	tasks, err := e.tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 5)
}

func TestApplyPlaybook_UnknownKeyRedirectsErr(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, e.projects.Create(ctx, proj))

	resp := e.postForm(t, "/portal/projects/"+proj.ID+"/playbooks/apply", url.Values{
		"playbook": {"does-not-exist"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/portal/projects/"+proj.ID+"?seed=err", resp.Header.Get("Location"))

	tasks, err := e.tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestApplyPlaybook_MissingProjectIs404(t *testing.T) {
	e := newEnv(t)

	resp := e.postForm(t, "/portal/projects/ghost/playbooks/apply", url.Values{
		"playbook": {"upland-habitat"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateTask(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, e.projects.Create(ctx, proj))

	resp := e.postForm(t, "/api/tasks?project="+proj.ID, url.Values{
		"title": {"Walk the fence line"},
		"due":   {"2024-04-01"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var task struct {
		Status string `json:"status"`
		DueOn  string `json:"due_on"`
	}
	decodeJSON(t, resp, &task)
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "2024-04-01", task.DueOn)
}

func TestCreateTask_BadInput(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, e.projects.Create(ctx, proj))

	resp := e.postForm(t, "/api/tasks", url.Values{"title": {"No project"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = e.postForm(t, "/api/tasks?project="+proj.ID, url.Values{
		"title": {"Bad date"},
		"due":   {"04/01/2024"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMarkTaskDone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, e.projects.Create(ctx, proj))
	resp := e.postForm(t, "/api/tasks?project="+proj.ID, url.Values{"title": {"Walk the fence line"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)

	done := e.postForm(t, "/api/tasks/"+created.ID+"/done", nil)
	require.Equal(t, http.StatusOK, done.StatusCode)
	var task struct {
		Status string `json:"status"`
	}
	decodeJSON(t, done, &task)
	assert.Equal(t, "done", task.Status)
}

func TestUploadAndDownloadFile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("North Forty")
	require.NoError(t, e.projects.Create(ctx, proj))

	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("project", proj.ID))
	require.NoError(t, mw.WriteField("label", "Burn plan"))
	fw, err := mw.CreateFormFile("file", "burn-plan.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp := e.do(t, http.MethodPost, "/api/files", strings.NewReader(buf.String()), mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec struct {
		ID        string `json:"id"`
		Label     string `json:"label"`
		SizeBytes int64  `json:"size_bytes"`
	}
	decodeJSON(t, resp, &rec)
	assert.Equal(t, "Burn plan", rec.Label)
	assert.Equal(t, int64(13), rec.SizeBytes)

	// The memory backend cannot presign, so the handler streams the bytes.
	dl := e.do(t, http.MethodGet, "/api/files/"+rec.ID, nil, "")
	require.Equal(t, http.StatusOK, dl.StatusCode)
	data, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestKnowledge_Unconfigured(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/api/knowledge", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestListProjects(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, e.projects.Create(ctx, testutil.NewTestProject(fmt.Sprintf("Tract %d", i))))
	}

	resp := e.do(t, http.MethodGet, "/api/projects", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []json.RawMessage
	decodeJSON(t, resp, &list)
	assert.Len(t, list, 3)
}
