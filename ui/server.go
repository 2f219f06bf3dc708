// Package ui serves a small web playground for the registered grammars.
package ui

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/dhamidi/parsec/config"
	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/parser"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsec.ui")

// maxInput bounds the size of a request body.
const maxInput = 1 << 20

type Server struct {
	templates      *template.Template
	mux            *http.ServeMux
	defaultGrammar string
}

// ParseRequest is the body accepted by POST /api/parse.
type ParseRequest struct {
	Grammar string `json:"grammar"`
	Input   string `json:"input"`
	Full    bool   `json:"full"`
}

func NewServer(defaultGrammar string) (*Server, error) {
	if _, ok := grammar.Lookup(defaultGrammar); !ok {
		defaultGrammar = config.DefaultGrammar
	}

	templates, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, err
	}

	s := &Server{
		templates:      templates,
		mux:            http.NewServeMux(),
		defaultGrammar: defaultGrammar,
	}

	s.mux.HandleFunc("POST /api/parse", s.handleParse)
	s.mux.HandleFunc("GET /api/grammars", s.handleGrammars)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxInput)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Grammar = r.FormValue("grammar")
		req.Input = r.FormValue("input")
		req.Full = r.FormValue("full") != ""
	}

	st, ok := s.run(req)
	if !ok {
		http.Error(w, "unknown grammar: "+req.Grammar, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(format.BuildState(st)); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

func (s *Server) handleGrammars(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(grammar.Names()); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

type indexData struct {
	Grammars []string
	Request  ParseRequest
	Output   string
	IsError  bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Grammars: grammar.Names(),
		Request: ParseRequest{
			Grammar: s.defaultGrammar,
			Full:    true,
		},
	}

	query := r.URL.Query()
	if query.Has("input") {
		data.Request = ParseRequest{
			Grammar: query.Get("grammar"),
			Input:   query.Get("input"),
			Full:    query.Get("full") != "",
		}
		st, ok := s.run(data.Request)
		if !ok {
			http.Error(w, "unknown grammar: "+data.Request.Grammar, http.StatusNotFound)
			return
		}
		var out strings.Builder
		if err := format.NewTextEncoder(&out).Encode(st); err != nil {
			http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		data.Output = out.String()
		data.IsError = st.IsError()
	}

	if err := s.templates.ExecuteTemplate(w, "index", data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) run(req ParseRequest) (parser.State, bool) {
	name := req.Grammar
	if name == "" {
		name = s.defaultGrammar
	}
	p, ok := grammar.Lookup(name)
	if !ok {
		return parser.State{}, false
	}
	if req.Full {
		p = parser.Full(p)
	}
	st := p.Run(req.Input)
	log.Debugf("parse %q with %s: error=%t index=%d", req.Input, name, st.IsError(), st.Index)
	return st, true
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>parsec playground</title></head>
<body>
<form method="get" action="/">
  <select name="grammar">
  {{- range .Grammars}}
    <option value="{{.}}"{{if eq . $.Request.Grammar}} selected{{end}}>{{.}}</option>
  {{- end}}
  </select>
  <input type="text" name="input" value="{{.Request.Input}}" autofocus>
  <label><input type="checkbox" name="full" value="1"{{if .Request.Full}} checked{{end}}> whole input</label>
  <button type="submit">Parse</button>
</form>
{{- if .Output}}
<pre class="{{if .IsError}}error{{else}}ok{{end}}">{{.Output}}</pre>
{{- end}}
</body>
</html>
`
