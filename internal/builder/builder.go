// Package builder constructs the three graph kinds: structural
// (directory/file containment), dependency (resolved imports), and scope
// (symbol-level detail over the user's chosen file subset). Builders are
// single-threaded; only the parse stage underneath them fans out.
package builder

import (
	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/scan"
	"github.com/mkoster/codeatlas/internal/store"
)

// Progress receives coarse build progress, throttled by the emitters.
type Progress func(current, total int, message string)

// Builder bundles what every graph build needs: the project root, the
// snapshot store, the parser capability, and the tunables.
type Builder struct {
	Cfg    *config.Config
	Store  *store.Store
	Parser scan.FileParser
	Root   string
}

// New returns a Builder rooted at projectRoot.
func New(cfg *config.Config, st *store.Store, projectRoot string) *Builder {
	return &Builder{
		Cfg:    cfg,
		Store:  st,
		Parser: scan.TreeSitterParser{},
		Root:   projectRoot,
	}
}

// graphName is the raster/artifact naming scheme: "<kind>_<tier>".
func graphName(kind store.Kind, tier store.Tier) string {
	return string(kind) + "_" + string(tier)
}

func report(cb Progress, current, total int, msg string) {
	if cb != nil {
		cb(current, total, msg)
	}
}
