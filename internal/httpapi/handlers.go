package httpapi

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coveyrise/steward/internal/blob"
	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/playbook"
	"github.com/coveyrise/steward/internal/repository"
)

const maxUploadBytes = 32 << 20

type projectJSON struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Location  string  `json:"location,omitempty"`
	Acreage   float64 `json:"acreage"`
	Objective string  `json:"objective,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

type taskJSON struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	OrderIndex int    `json:"order_index"`
	Status     string `json:"status"`
	DueOn      string `json:"due_on,omitempty"`
}

type practiceJSON struct {
	ID         string   `json:"id"`
	PracticeID *string  `json:"practice_id"`
	Title      string   `json:"title"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	EstRate    *float64 `json:"estimated_payment_rate,omitempty"`
	Status     string   `json:"status"`
	Deadline   string   `json:"deadline,omitempty"`
}

type fileJSON struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Label       string `json:"label,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	CreatedAt   string `json:"created_at"`
}

func toProjectJSON(p *domain.Project) projectJSON {
	return projectJSON{
		ID:        p.ID,
		Title:     p.Title,
		Location:  p.Location,
		Acreage:   p.Acreage,
		Objective: p.Objective,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func toTaskJSON(t *domain.Task) taskJSON {
	out := taskJSON{
		ID:         t.ID,
		ProjectID:  t.ProjectID,
		Title:      t.Title,
		Notes:      t.Notes,
		OrderIndex: t.OrderIndex,
		Status:     string(t.Status),
	}
	if t.DueOn != nil {
		out.DueOn = t.DueOn.Format("2006-01-02")
	}
	return out
}

func toPracticeJSON(p *domain.ProjectPractice) practiceJSON {
	out := practiceJSON{
		ID:         p.ID,
		PracticeID: p.PracticeID,
		Title:      p.CustomTitle,
		Quantity:   p.Quantity,
		Unit:       p.Unit,
		EstRate:    p.EstimatedPaymentRate,
		Status:     string(p.Status),
	}
	if p.Deadline != nil {
		out.Deadline = p.Deadline.Format("2006-01-02")
	}
	return out
}

func toFileJSON(f *domain.FileRecord) fileJSON {
	return fileJSON{
		ID:          f.ID,
		ProjectID:   f.ProjectID,
		Label:       f.Label,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
}

// serviceError maps domain failures onto HTTP statuses.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, playbook.ErrUnknownPlaybook):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleProjectView returns the full portal view of one project: the project
// itself plus its tasks, funding practices, and file attachments.
func (s *Server) handleProjectView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	project, err := s.services.Projects.GetByID(ctx, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	tasks, err := s.services.Tasks.ListByProject(ctx, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	practices, err := s.services.Funding.ListByProject(ctx, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	files, err := s.services.Files.ListByProject(ctx, id)
	if err != nil {
		serviceError(w, err)
		return
	}

	view := struct {
		Project   projectJSON    `json:"project"`
		Tasks     []taskJSON     `json:"tasks"`
		Practices []practiceJSON `json:"practices"`
		Files     []fileJSON     `json:"files"`
	}{
		Project:   toProjectJSON(project),
		Tasks:     make([]taskJSON, 0, len(tasks)),
		Practices: make([]practiceJSON, 0, len(practices)),
		Files:     make([]fileJSON, 0, len(files)),
	}
	for _, t := range tasks {
		view.Tasks = append(view.Tasks, toTaskJSON(t))
	}
	for _, p := range practices {
		view.Practices = append(view.Practices, toPracticeJSON(p))
	}
	for _, f := range files {
		view.Files = append(view.Files, toFileJSON(f))
	}
	writeJSON(w, http.StatusOK, view)
}

// handleApplyPlaybook seeds a project from the posted playbook key and then
// redirects back to the project view with a seed outcome flag. Browser-form
// semantics: failures after the project check land on ?seed=err rather than
// an error page.
func (s *Server) handleApplyPlaybook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if _, err := s.services.Projects.GetByID(ctx, id); err != nil {
		serviceError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	key := r.PostFormValue("playbook")

	dest := url.URL{Path: "/portal/projects/" + id}
	q := url.Values{}
	if _, err := s.services.Playbooks.Apply(ctx, id, key); err != nil {
		s.logger.Warn("playbook apply failed", "project", id, "playbook", key, "err", err)
		q.Set("seed", "err")
	} else {
		q.Set("seed", "ok")
	}
	dest.RawQuery = q.Encode()
	http.Redirect(w, r, dest.String(), http.StatusSeeOther)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"
	projects, err := s.services.Projects.List(r.Context(), includeArchived)
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]projectJSON, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	p := &domain.Project{
		Title:     r.PostFormValue("title"),
		Location:  r.PostFormValue("location"),
		Objective: r.PostFormValue("objective"),
	}
	if acreage := r.PostFormValue("acreage"); acreage != "" {
		v, err := strconv.ParseFloat(acreage, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid acreage")
			return
		}
		p.Acreage = v
	}
	if err := s.services.Projects.Create(r.Context(), p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toProjectJSON(p))
}

// handleCreateTask accepts a form task create against ?project= (or a form
// field of the same name).
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	projectID := r.FormValue("project")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "project is required")
		return
	}
	task := &domain.Task{
		ProjectID: projectID,
		Title:     r.PostFormValue("title"),
		Notes:     r.PostFormValue("notes"),
	}
	if due := r.PostFormValue("due"); due != "" {
		d, err := time.ParseInLocation("2006-01-02", due, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid due date, want YYYY-MM-DD")
			return
		}
		task.DueOn = &d
	}
	if err := s.services.Tasks.Create(r.Context(), task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			serviceError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toTaskJSON(task))
}

func (s *Server) handleTaskDone(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.services.Tasks.MarkDone(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	task, err := s.services.Tasks.GetByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskJSON(task))
}

// handleUploadFile accepts a multipart form with project, label, and file
// fields, stores the bytes, and records the attachment.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	projectID := r.FormValue("project")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "project is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	rec, err := s.services.Files.Upload(
		r.Context(),
		projectID,
		r.FormValue("label"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			serviceError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toFileJSON(rec))
}

// handleDownloadFile redirects to a presigned URL when the blob backend can
// mint one, and streams the bytes itself otherwise.
func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	location, err := s.services.Files.DownloadURL(ctx, id)
	if err == nil {
		http.Redirect(w, r, location, http.StatusFound)
		return
	}
	if !errors.Is(err, blob.ErrPresignUnsupported) {
		serviceError(w, err)
		return
	}

	rec, rc, err := s.services.Files.Open(ctx, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	defer rc.Close()
	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(rec.SizeBytes, 10))
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("file stream interrupted", "file", id, "err", err)
	}
}

func (s *Server) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	if s.services.Feed == nil {
		writeError(w, http.StatusServiceUnavailable, "knowledge feed not configured")
		return
	}
	posts, err := s.services.Feed.Posts(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, posts)
}
