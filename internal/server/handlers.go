package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/buildinfo"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/manifest"
	"github.com/matzehuels/argwheel/pkg/pipeline"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/sink"
	"github.com/matzehuels/argwheel/pkg/session"
	"github.com/matzehuels/argwheel/pkg/viewer"
)

// viewResponse is the body returned by every view endpoint.
type viewResponse struct {
	ID        string        `json:"id"`
	Dataset   string        `json:"dataset"`
	Stack     []argument.ID `json:"stack"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	ExpiresAt time.Time     `json:"expires_at"`
	Changed   *bool         `json:"changed,omitempty"`
	View      sink.Document `json:"view"`
}

type createViewRequest struct {
	Dataset string        `json:"dataset"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Zoom    []argument.ID `json:"zoom"`
}

type clickRequest struct {
	Node  argument.ID `json:"node"`
	Depth int         `json:"depth"`
}

type sizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "build": buildinfo.Get()})
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	names, err := manifest.Read(s.cfg.Server.Datasets)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": names})
}

func (s *Server) handleCreateView(w http.ResponseWriter, r *http.Request) {
	var body createViewRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Dataset == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "dataset is required"))
		return
	}

	loaded, err := s.dataset(r.Context(), body.Dataset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	width, height := s.frameSize(body.Width, body.Height)
	vs := s.runner.View(loaded.Tree, pipeline.Options{Zoom: body.Zoom})
	sess := session.New(body.Dataset, loaded.Hash, vs, s.cfg.Session.TTL)
	sess.Width, sess.Height = width, height

	v := s.restore(sess, loaded)
	if err := s.save(r, sess, v); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("created view", "view", sess.ID, "dataset", sess.Dataset)
	writeJSON(w, http.StatusCreated, s.response(sess, v, nil))
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	sess, v, ok := s.open(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.response(sess, v, nil))
}

func (s *Server) handleDeleteView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "view")
	if !session.ValidID(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "view %s not found", id))
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "delete view"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleViewSVG(w http.ResponseWriter, r *http.Request) {
	sess, v, ok := s.open(w, r)
	if !ok {
		return
	}
	loaded, err := s.dataset(r.Context(), sess.Dataset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
		Width:   sess.Width,
		Height:  sess.Height,
		Labels:  r.URL.Query().Get("labels") == "true",
	}
	artifacts, err := s.runner.Render(r.Context(), loaded, v.Layout(), v.State(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

// handleNode is the hover interaction: it returns the detail card of a node
// drawn in the current view.
func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	_, v, ok := s.open(w, r)
	if !ok {
		return
	}
	id := argument.ID(chi.URLParam(r, "node"))
	if !v.Hover(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "node %s is not in the current view", id))
		return
	}
	card, _ := v.HoveredCard()
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var body clickRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.interact(w, r, func(v *viewer.Viewer) bool { return v.Click(body.Node, body.Depth) })
}

func (s *Server) handleZoomOut(w http.ResponseWriter, r *http.Request) {
	s.interact(w, r, func(v *viewer.Viewer) bool { return v.ZoomOut() })
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "level must be an integer"))
		return
	}
	s.interact(w, r, func(v *viewer.Viewer) bool { return v.ZoomToLevel(index) })
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var body sizeRequest
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Width <= 0 || body.Height <= 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "width and height must be positive"))
		return
	}
	s.interact(w, r, func(v *viewer.Viewer) bool { return v.Resize(body.Width, body.Height) })
}

// interact restores the view, applies fn, persists the result and writes
// the new view. Interactions that change nothing still succeed.
func (s *Server) interact(w http.ResponseWriter, r *http.Request, fn func(*viewer.Viewer) bool) {
	sess, v, ok := s.open(w, r)
	if !ok {
		return
	}
	changed := fn(v)
	if err := s.save(r, sess, v); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.response(sess, v, &changed))
}

// open loads the session named in the URL and restores it into a viewer.
func (s *Server) open(w http.ResponseWriter, r *http.Request) (*session.Session, *viewer.Viewer, bool) {
	id := chi.URLParam(r, "view")
	if !session.ValidID(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "view %s not found", id))
		return nil, nil, false
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load view"))
		return nil, nil, false
	}
	if sess == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "view %s not found", id))
		return nil, nil, false
	}

	loaded, err := s.dataset(r.Context(), sess.Dataset)
	if err != nil {
		s.writeError(w, r, err)
		return nil, nil, false
	}
	if loaded.Hash != sess.DatasetHash {
		s.logger.Debug("dataset changed under view", "view", sess.ID, "dataset", sess.Dataset)
		sess.DatasetHash = loaded.Hash
	}
	return sess, s.restore(sess, loaded), true
}

func (s *Server) restore(sess *session.Session, loaded *pipeline.Loaded) *viewer.Viewer {
	v := viewer.New(
		viewer.WithLayoutConfig(s.cfg.Layout),
		viewer.WithSize(sess.Width, sess.Height),
		viewer.WithLogger(s.logger),
	)
	v.Install(loaded.Tree, sess.View)
	return v
}

func (s *Server) save(r *http.Request, sess *session.Session, v *viewer.Viewer) error {
	sess.View = v.State()
	sess.Width, sess.Height = v.Size()
	sess.Touch(s.cfg.Session.TTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save view")
	}
	return nil
}

func (s *Server) response(sess *session.Session, v *viewer.Viewer, changed *bool) viewResponse {
	state := v.State()
	return viewResponse{
		ID:        sess.ID,
		Dataset:   sess.Dataset,
		Stack:     state.Stack,
		Width:     sess.Width,
		Height:    sess.Height,
		ExpiresAt: sess.ExpiresAt,
		Changed:   changed,
		View: sink.NewDocument(v.Layout(), v.Tree(),
			sink.WithJSONPalette(s.palette),
			sink.WithJSONBreadcrumbs(v.Breadcrumbs()),
			sink.WithJSONDetails()),
	}
}

func (s *Server) frameSize(width, height float64) (float64, float64) {
	if width <= 0 || height <= 0 {
		return s.cfg.Render.Width, s.cfg.Render.Height
	}
	return width, height
}
