package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/jopts/internal/adapters/fs"
	"go.trai.ch/jopts/internal/adapters/logger"
	"go.trai.ch/jopts/internal/core/domain"
	"go.trai.ch/jopts/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// SettingsNodeID is the unique identifier for the resolved settings Graft node.
	SettingsNodeID graft.ID = "adapter.config.settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.FileSystemNodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[fs.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			return NewLoader(log, fsys), nil
		},
	})

	// Settings are discovered from the working directory of the process.
	graft.Register(graft.Node[domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Settings, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Settings{}, err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return domain.Settings{}, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
			}

			return loader.Load(cwd)
		},
	})
}
