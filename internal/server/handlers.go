package server

import (
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dashforge/pkg/buildinfo"
	"github.com/matzehuels/dashforge/pkg/editor"
	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/pipeline"
	"github.com/matzehuels/dashforge/pkg/preset"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// contentTypes maps rendered formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatHTML:     "text/html; charset=utf-8",
	pipeline.FormatTSX:      "text/plain; charset=utf-8",
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatVector:   "application/json",
	pipeline.FormatTransfer: "application/json",
	pipeline.FormatJSON:     "application/json",
}

// exportFormats are the formats served by POST /api/export.
var exportFormats = []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatVector}

// =============================================================================
// Metadata
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	defs := s.reg.Definitions()
	if c := r.URL.Query().Get("category"); c != "" {
		defs = s.reg.ByCategory(registry.Category(c))
	}
	if defs == nil {
		defs = []registry.Definition{}
	}
	writeJSON(w, defs)
}

func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	def, ok := s.reg.Lookup(typ)
	if !ok {
		writeError(w, s.logger, errors.New(errors.ErrCodeNotFound, "unknown component type %q", typ))
		return
	}
	writeJSON(w, def)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]string{"presets": preset.Names()})
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	d, err := preset.Load(s.reg, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	data, err := ir.MarshalDashboard(d)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeBytes(w, contentTypes[pipeline.FormatJSON], data)
}

// =============================================================================
// Rendering
// =============================================================================

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.renderFormat(w, r, pipeline.FormatHTML)
}

func (s *Server) handleCodegen(w http.ResponseWriter, r *http.Request) {
	s.renderFormat(w, r, pipeline.FormatTSX)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	s.renderFormat(w, r, pipeline.FormatTransfer)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatSVG
	}
	if !slices.Contains(exportFormats, format) {
		writeError(w, s.logger, errors.New(errors.ErrCodeInvalidFormat,
			"invalid export format %q (must be one of: %s)", format, strings.Join(exportFormats, ", ")))
		return
	}
	s.renderFormat(w, r, format)
}

// renderFormat decodes the request dashboard, renders one format through the
// runner and writes the artifact.
func (s *Server) renderFormat(w http.ResponseWriter, r *http.Request, format string) {
	d, err := readDashboard(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	opts, err := s.options(r, format)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	res, err := s.runner.Render(r.Context(), d, opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if len(res.CacheHits) > 0 {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeBytes(w, contentTypes[format], res.Artifacts[format])
}

// options derives render options from the server defaults and the query
// string: import_path, primary_color and refresh.
func (s *Server) options(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.render
	opts.Formats = []string{format}
	opts.Now = s.now
	if v := q.Get("import_path"); v != "" {
		opts.ImportPath = v
	}
	if v := q.Get("primary_color"); v != "" {
		if err := errors.ValidateColor(v); err != nil {
			return opts, err
		}
		opts.PrimaryColor = v
	}
	if q.Get("refresh") == "true" {
		opts.Refresh = true
	}
	return opts, nil
}

// =============================================================================
// Import
// =============================================================================

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	session := editor.NewSession(s.reg)
	if err := session.Import(body); err != nil {
		writeError(w, s.logger, err)
		return
	}
	data, err := ir.MarshalDashboard(session.Dashboard())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeBytes(w, contentTypes[pipeline.FormatJSON], data)
}

// =============================================================================
// Request Decoding
// =============================================================================

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return body, nil
}

// readDashboard decodes a plain dashboard or a transfer message.
func readDashboard(r *http.Request) (*ir.Dashboard, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	return transfer.DecodeDashboard(body)
}
