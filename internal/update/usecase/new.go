package usecase

import (
	"sync"
	"time"

	"internship-journey-agent/internal/inference"
	"internship-journey-agent/internal/matcher"
	"internship-journey-agent/internal/segment"
	"internship-journey-agent/internal/update/repository"
	"internship-journey-agent/pkg/datemath"
	pkgLog "internship-journey-agent/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	extractor segment.Extractor
	repo      repository.SheetRepository
	inf       *inference.Inferencer
	match     *matcher.Matcher
	dates     *datemath.Parser
	backupDir string

	// applyMu serializes Apply: at most one apply in flight per store.
	applyMu sync.Mutex

	now func() time.Time
}

// New creates a new update UseCase instance.
func New(
	l pkgLog.Logger,
	extractor segment.Extractor,
	repo repository.SheetRepository,
	inf *inference.Inferencer,
	match *matcher.Matcher,
	dates *datemath.Parser,
	backupDir string,
) *implUseCase {
	return &implUseCase{
		l:         l,
		extractor: extractor,
		repo:      repo,
		inf:       inf,
		match:     match,
		dates:     dates,
		backupDir: backupDir,
		now:       time.Now,
	}
}
