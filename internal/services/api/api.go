// Package api provides the HTTP API for the application
package api

import (
	"moodring/internal/platform/config"
	"moodring/internal/platform/logger"
	phttp "moodring/internal/platform/net/http"
	"moodring/internal/platform/store"

	"moodring/internal/adapters/classifier"
	"moodring/internal/core/lexicon"
	"moodring/internal/modkit"
	"moodring/internal/modkit/httpkit"
	"moodring/internal/modkit/module"
	"moodring/internal/modkit/swaggerkit"

	analysisdom "moodring/internal/services/analysis/domain"
	analysismod "moodring/internal/services/analysis/module"
	archivemod "moodring/internal/services/archive/module"
	metamod "moodring/internal/services/api/meta/module"
	trendsdom "moodring/internal/services/trends/domain"
	trendsmod "moodring/internal/services/trends/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// one lexicon pack and baseline classifier per process
	pack := lexicon.MustLoad()
	scorer := classifier.MustNew(pack)

	anOpts := analysismod.FromConfig(deps.Cfg)

	// archive first: its ports feed both analysis (writer) and trends (reader)
	archive := archivemod.New(deps)
	archivePorts := module.MustPortsOf[archivemod.Ports](archive)

	trends := trendsmod.New(
		deps,
		trendsmod.Options{Pack: pack, Thresholds: anOpts.Thresholds},
		modkit.WithPorts(trendsdom.Ports{
			Batches: archivePorts.Service,
		}),
	)
	summarizer := module.MustPortsOf[trendsmod.Ports](trends).Summarizer

	analysis := analysismod.New(
		deps,
		anOpts,
		pack,
		summarizer,
		modkit.WithPorts(analysisdom.Ports{
			Classifier: scorer,
			Explainer:  scorer,
			Archive:    archivePorts.Writer,
		}),
	)

	mods := []module.Module{
		metamod.New(deps, pack),
		analysis,
		trends,
		archive,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
