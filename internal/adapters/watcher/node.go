package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jopts/internal/adapters/config"
	"go.trai.ch/jopts/internal/adapters/logger"
	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
)

const (
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// NodeID is the unique identifier for the project change source Graft node.
	NodeID graft.ID = "adapter.watcher.changes"
)

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})

	graft.Register(graft.Node[ports.ChangeSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WatcherNodeID, config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ChangeSource, error) {
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewProjectWatcher(w, settings, log), nil
		},
	})
}
