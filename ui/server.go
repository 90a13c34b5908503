// Package ui serves a JSON view of the workspace for quick inspection of
// what the parser and the semantic model extracted.
package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tliron/commonlog"

	"github.com/wpsteak/Natalie/storyboard"
	"github.com/wpsteak/Natalie/workspace"
)

var log = commonlog.GetLogger("natalie.ui")

// Server is the HTTP preview server.
type Server struct {
	router    chi.Router
	workspace *workspace.Workspace
}

func NewServer(w *workspace.Workspace) *Server {
	s := &Server{workspace: w}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/storyboards", s.handleListStoryboards)
	r.Get("/storyboards/{name}", s.handleStoryboard)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

type storyboardSummary struct {
	Name        string   `json:"name"`
	OS          string   `json:"os"`
	Scenes      int      `json:"scenes"`
	Identifiers []string `json:"identifiers,omitempty"`
}

func (s *Server) handleListStoryboards(w http.ResponseWriter, r *http.Request) {
	summaries := []storyboardSummary{}
	for _, sb := range s.workspace.Storyboards() {
		summaries = append(summaries, storyboardSummary{
			Name:        sb.Name,
			OS:          string(sb.OS),
			Scenes:      len(sb.Scenes),
			Identifiers: sb.Identifiers(),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

type sceneDetail struct {
	ID         string   `json:"id"`
	Controller string   `json:"controller,omitempty"`
	Class      string   `json:"class,omitempty"`
	Segues     []string `json:"segues,omitempty"`
	Reusables  []string `json:"reusables,omitempty"`
}

type storyboardDetail struct {
	Name                  string        `json:"name"`
	OS                    string        `json:"os"`
	Version               string        `json:"version"`
	InitialViewController string        `json:"initialViewController,omitempty"`
	Scenes                []sceneDetail `json:"scenes"`
	Tree                  string        `json:"tree"`
}

func (s *Server) handleStoryboard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sb := s.workspace.StoryboardByName(name)
	if sb == nil {
		http.Error(w, "no such storyboard", http.StatusNotFound)
		return
	}

	detail := storyboardDetail{
		Name:                  sb.Name,
		OS:                    string(sb.OS),
		Version:               sb.Version,
		InitialViewController: sb.InitialViewControllerID,
		Scenes:                []sceneDetail{},
		Tree:                  sb.Doc.String(),
	}
	for _, scene := range sb.Scenes {
		detail.Scenes = append(detail.Scenes, describeScene(scene, sb.OS))
	}
	writeJSON(w, http.StatusOK, detail)
}

func describeScene(scene *storyboard.Scene, os storyboard.OSType) sceneDetail {
	d := sceneDetail{ID: scene.ID}
	vc := scene.ViewController
	if vc == nil {
		return d
	}
	d.Controller = vc.Kind
	d.Class = vc.ClassName(os)
	for _, segue := range vc.Segues {
		if segue.Identifier != "" {
			d.Segues = append(d.Segues, segue.Identifier)
		}
	}
	for _, reusable := range vc.Reusables {
		d.Reusables = append(d.Reusables, reusable.ReuseIdentifier)
	}
	return d
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %s", err.Error())
	}
}
