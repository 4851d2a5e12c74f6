// Package module wires the batch archive into the API using modkit
package module

import (
	"context"
	"fmt"
	"net/http"

	modkit "moodring/internal/modkit"
	"moodring/internal/modkit/httpkit"
	"moodring/internal/modkit/repokit"
	str "moodring/internal/platform/strings"
	andom "moodring/internal/services/analysis/domain"
	"moodring/internal/services/archive/domain"
	archivehttp "moodring/internal/services/archive/http"
	"moodring/internal/services/archive/repo"
	archivesvc "moodring/internal/services/archive/service"
)

// Ports exposed by the archive module. Writer satisfies the analysis
// ArchiveWriter port; Service also satisfies the trends BatchReader
type Ports struct {
	Writer  andom.ArchiveWriter
	Service domain.ServicePort
}

// statementTimeout caps each archive transaction server-side so a stuck
// batch insert cannot hold a connection indefinitely
func statementTimeout(ms int) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", ms))
		return err
	}
}

// writerAdapter narrows the service to the analysis-side writer contract
type writerAdapter struct{ svc archivesvc.Service }

func (w writerAdapter) SaveBatch(ctx context.Context, source string, preds []andom.Enriched) (string, error) {
	ref, err := w.svc.SaveBatch(ctx, source, preds)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
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

	svc archivesvc.Service
}

// New constructs the archive module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("archive"),
		modkit.WithPrefix("/archive"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)

	runner := repokit.TxRunner(deps.PG)
	if runner != nil && o.TxTimeoutMs > 0 {
		runner = repokit.WithBeginHooks(runner, statementTimeout(o.TxTimeoutMs))
	}

	binder := repo.NewPG()
	svc := archivesvc.New(runner, binder, archivesvc.Config{
		ListLimit: o.ListLimit,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Writer: writerAdapter{svc: svc}, Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		archivehttp.Register(r, m.svc)
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
