// Package module wires the trends service into the API using modkit
package module

import (
	"net/http"

	"moodring/internal/core/lexicon"
	"moodring/internal/core/taxonomy"
	modkit "moodring/internal/modkit"
	"moodring/internal/modkit/httpkit"
	str "moodring/internal/platform/strings"
	"moodring/internal/services/trends/domain"
	trendshttp "moodring/internal/services/trends/http"
	trendssvc "moodring/internal/services/trends/service"
)

// Ports exposed by the trends module
type Ports struct {
	Summarizer domain.SummarizerPort
	Service    domain.ServicePort
}

// Options configure the trends module
type Options struct {
	Pack       *lexicon.Pack
	Thresholds taxonomy.Thresholds
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

	svc trendssvc.Service
}

// New constructs the trends module. The injected domain.Ports carry the
// optional archive reader for persisted-batch queries
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("trends"),
		modkit.WithPrefix("/trends"),
	}, opts...)...)

	pack := o.Pack
	if pack == nil {
		pack = lexicon.MustLoad()
	}

	var reader domain.BatchReader
	if p, ok := b.Ports.(domain.Ports); ok {
		reader = p.Batches
	}

	svc := trendssvc.New(pack.Taxonomy, o.Thresholds, reader)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Summarizer: svc, Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		trendshttp.Register(r, m.svc)
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
