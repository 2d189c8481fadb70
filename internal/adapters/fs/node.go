package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

// FileSystemNodeID is the unique identifier for the OS filesystem Graft node.
const FileSystemNodeID graft.ID = "adapter.fs.filesystem"

func init() {
	graft.Register(graft.Node[FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (FileSystem, error) {
			return NewOSFS(), nil
		},
	})
}
