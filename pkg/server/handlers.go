package server

import (
	"bytes"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/graph"
	gio "github.com/matzehuels/deptree/pkg/io"
	"github.com/matzehuels/deptree/pkg/render/d2"
	"github.com/matzehuels/deptree/pkg/render/nodelink"
)

// GET /healthz
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type packageInfo struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

type packagesResponse struct {
	Root     string        `json:"root,omitempty"`
	Packages []packageInfo `json:"packages"`
}

// GET /api/packages
func (s *Server) packages(w http.ResponseWriter, r *http.Request) {
	g, root := s.snapshot()
	rev := g.ReverseIndex()

	resp := packagesResponse{Root: root, Packages: make([]packageInfo, 0, g.Len())}
	for _, name := range g.Names() {
		resp.Packages = append(resp.Packages, packageInfo{
			Name:         name,
			Dependencies: nonNil(g.Dependencies(name)),
			Dependents:   nonNil(slices.Clone(rev.Dependents(name))),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type treeResponse struct {
	Root      string         `json:"root"`
	Direction string         `json:"direction"`
	Exclude   string         `json:"exclude,omitempty"`
	Records   []graph.Record `json:"records"`
	Lines     []string       `json:"lines"`
}

// GET /api/tree/{name}?exclude=&reverse=&direction=
//
// The name is the rest of the path, so scoped names like @types/node work
// with or without escaping the slash.
func (s *Server) tree(w http.ResponseWriter, r *http.Request) {
	g, _ := s.snapshot()
	name := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if !g.Has(name) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "package %q not in graph", name))
		return
	}

	dir, err := direction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	exclude := r.URL.Query().Get("exclude")

	records := slices.Collect(g.Walk(name, graph.WalkOptions{Direction: dir, Exclude: exclude}))
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = graph.FormatRecord(rec)
	}
	writeJSON(w, http.StatusOK, treeResponse{
		Root:      name,
		Direction: dir.String(),
		Exclude:   exclude,
		Records:   records,
		Lines:     lines,
	})
}

// GET /api/diagram?format=d2|dot|json&reverse=
func (s *Server) diagram(w http.ResponseWriter, r *http.Request) {
	g, root := s.snapshot()
	dir, err := direction(r)
	if err != nil {
		writeError(w, err)
		return
	}

	switch format := strings.ToLower(r.URL.Query().Get("format")); format {
	case "", "d2":
		writeText(w, d2.Export(g, dir))
	case "dot":
		writeText(w, nodelink.ToDOT(g, nodelink.Options{Reverse: dir == graph.Reverse, Highlight: root}))
	case "json":
		var buf bytes.Buffer
		if err := gio.WriteJSON(g, &buf); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode graph"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(buf.Bytes())
	default:
		writeError(w, errors.New(errors.ErrCodeInvalidValue, "unsupported format %q (want d2, dot or json)", format))
	}
}

// direction reads ?direction=forward|reverse, falling back to the boolean
// ?reverse= flag.
func direction(r *http.Request) (graph.Direction, error) {
	if raw := r.URL.Query().Get("direction"); raw != "" {
		dir, err := graph.ParseDirection(raw)
		if err != nil {
			return graph.Forward, errors.Wrap(errors.ErrCodeInvalidValue, err, "direction")
		}
		return dir, nil
	}
	raw := r.URL.Query().Get("reverse")
	if raw == "" {
		return graph.Forward, nil
	}
	rev, err := strconv.ParseBool(raw)
	if err != nil {
		return graph.Forward, errors.New(errors.ErrCodeInvalidValue, "reverse must be a boolean, got %q", raw)
	}
	if rev {
		return graph.Reverse, nil
	}
	return graph.Forward, nil
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
