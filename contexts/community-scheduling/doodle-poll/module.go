package doodlepoll

import (
	"log/slog"
	"time"

	httpadapter "doodle/contexts/community-scheduling/doodle-poll/adapters/http"
	"doodle/contexts/community-scheduling/doodle-poll/adapters/memory"
	"doodle/contexts/community-scheduling/doodle-poll/application/commands"
	"doodle/contexts/community-scheduling/doodle-poll/application/votestore"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Blobs    ports.BlobStore
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Events   ports.EventPublisher
	Location *time.Location
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	store := votestore.VoteStore{
		Blobs:  deps.Blobs,
		Logger: deps.Logger,
	}
	voteUseCase := commands.VoteUseCase{
		Store:  store,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Events: deps.Events,
		Logger: deps.Logger,
	}
	renderUseCase := commands.RenderUseCase{
		Votes:    voteUseCase,
		Location: deps.Location,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Render: renderUseCase,
			Store:  store,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed map[string][]byte, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Blobs:  store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
