package options

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jopts/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jopts/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jopts/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jopts/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jopts/internal/adapters/watcher"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
)

const (
	// SourceNodeID is the unique identifier for the build script source Graft node.
	SourceNodeID graft.ID = "engine.options.source"
	// NodeID is the unique identifier for the options registry Graft node.
	NodeID graft.ID = "engine.options.registry"
)

func init() {
	graft.Register(graft.Node[ports.BuildScriptSource]{
		ID:        SourceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.BuildScriptSource, error) {
			fsys, err := graft.Dep[fs.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return fs.NewBuildScripts(fsys, settings.BuildFile), nil
		},
	})

	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			SourceNodeID,
			watcher.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
			source, err := graft.Dep[ports.BuildScriptSource](ctx)
			if err != nil {
				return nil, err
			}

			changes, err := graft.Dep[ports.ChangeSource](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewRegistry(source, changes, WithLogger(log), WithTracer(tracer)), nil
		},
	})
}
