package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"internship-journey-agent/internal/changeset"
	"internship-journey-agent/internal/store"
	"internship-journey-agent/internal/update"
	"internship-journey-agent/pkg/log"
)

// Handler is the public interface for the update HTTP delivery layer.
type Handler interface {
	Interpret(c *gin.Context)
	Apply(c *gin.Context)
	SheetInfo(c *gin.Context)
}

// pendingChangeset pins a previewed changeset together with the snapshot
// it was derived from, so apply can run against the exact same baseline.
type pendingChangeset struct {
	cs   changeset.Changeset
	snap *store.Snapshot
}

type handler struct {
	l       log.Logger
	uc      update.UseCase
	pending *expirable.LRU[string, pendingChangeset]
}

// New creates a new HTTP handler for the update domain. Previewed
// changesets are held for pendingTTL; after that apply returns 404 and the
// client must interpret again.
func New(l log.Logger, uc update.UseCase, pendingTTL time.Duration) *handler {
	if pendingTTL <= 0 {
		pendingTTL = 15 * time.Minute
	}
	return &handler{
		l:       l,
		uc:      uc,
		pending: expirable.NewLRU[string, pendingChangeset](256, nil, pendingTTL),
	}
}
