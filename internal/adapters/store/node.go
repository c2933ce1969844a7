package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/psync/internal/adapters/fs"
	"go.trai.ch/psync/internal/adapters/msbuild"
	"go.trai.ch/psync/internal/core/ports"
)

const NodeID graft.ID = "adapter.manifest_store"

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			msbuild.NodeID,
			fs.HasherNodeID,
		},
		Run: func(ctx context.Context) (ports.ManifestStore, error) {
			codec, err := graft.Dep[ports.ManifestCodec](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			return NewStore(codec, hasher), nil
		},
	})
}
