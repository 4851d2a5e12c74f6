// Package module wires the analysis service into the API using modkit
package module

import (
	"net/http"

	"moodring/internal/core/lexicon"
	modkit "moodring/internal/modkit"
	"moodring/internal/modkit/httpkit"
	str "moodring/internal/platform/strings"
	"moodring/internal/services/analysis/domain"
	analysishttp "moodring/internal/services/analysis/http"
	analysissvc "moodring/internal/services/analysis/service"
	trendsdomain "moodring/internal/services/trends/domain"
)

// Ports exposed by the analysis module
type Ports struct {
	Enricher domain.EnricherPort
}

// Module implements modkit.Module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the analysis module. The injected domain.Ports supply the
// classifier (required), the explainer, and the archive writer; summarizer
// attaches batch summaries to HTTP responses when the trends module is mounted
func New(deps modkit.Deps, o Options, pack *lexicon.Pack, summarizer trendsdomain.SummarizerPort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analysis"),
		modkit.WithPrefix("/analysis"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok || ports.Classifier == nil {
		panic("analysis module requires domain.Ports with a Classifier")
	}
	if pack == nil {
		pack = lexicon.MustLoad()
	}

	svc := analysissvc.New(ports.Classifier, ports.Explainer, pack, o.Thresholds, analysissvc.Config{
		Workers:   o.Workers,
		TopTokens: o.TopTokens,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}
	m.ports = Ports{Enricher: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		analysishttp.Register(r, analysishttp.Deps{
			Enricher:   svc,
			Archive:    ports.Archive,
			Summarizer: summarizer,
			BatchMax:   o.BatchMax,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports for cross-module lookups
func (m *Module) Ports() any { return m.ports }
