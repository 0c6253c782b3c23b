package repository

import (
	"sync"

	"ocr-notes-server/internal/domain"
)

// MemoryArtifactRepository keeps artifacts in process memory, in insertion
// order. File names are not unique; FindByName returns the oldest match.
type MemoryArtifactRepository struct {
	mu           sync.RWMutex
	artifacts    []*domain.Artifact
	maxArtifacts int // 0 = unlimited
	logger       domain.Logger
}

// NewMemoryArtifactRepository creates an empty repository. maxArtifacts <= 0
// keeps every artifact; a positive value evicts the oldest ones on Append.
func NewMemoryArtifactRepository(maxArtifacts int, logger domain.Logger) *MemoryArtifactRepository {
	if maxArtifacts < 0 {
		maxArtifacts = 0
	}
	return &MemoryArtifactRepository{
		maxArtifacts: maxArtifacts,
		logger:       logger,
	}
}

// Append stores a copy of artifact at the end of the sequence.
func (r *MemoryArtifactRepository) Append(artifact *domain.Artifact) error {
	stored := cloneArtifact(artifact)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.artifacts = append(r.artifacts, stored)
	r.evictIfNeeded()
	return nil
}

// FindByName returns the first artifact, in insertion order, named name.
func (r *MemoryArtifactRepository) FindByName(name string) (*domain.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.artifacts {
		if a.FileName == name {
			return cloneArtifact(a), nil
		}
	}
	return nil, domain.ErrArtifactNotFound
}

// ListAll returns a snapshot of every artifact in insertion order.
func (r *MemoryArtifactRepository) ListAll() []*domain.Artifact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Artifact, 0, len(r.artifacts))
	for _, a := range r.artifacts {
		out = append(out, cloneArtifact(a))
	}
	return out
}

// Count returns the number of stored artifacts.
func (r *MemoryArtifactRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.artifacts)
}

// evictIfNeeded drops the oldest artifacts once the bound is exceeded.
// Must be called with lock held
func (r *MemoryArtifactRepository) evictIfNeeded() {
	if r.maxArtifacts <= 0 || len(r.artifacts) <= r.maxArtifacts {
		return
	}

	removeCount := len(r.artifacts) - r.maxArtifacts
	for _, a := range r.artifacts[:removeCount] {
		if r.logger != nil {
			r.logger.Info("Evicting oldest artifact", "artifact_id", a.ID, "file_name", a.FileName)
		}
	}
	kept := make([]*domain.Artifact, r.maxArtifacts)
	copy(kept, r.artifacts[removeCount:])
	r.artifacts = kept
}

func cloneArtifact(a *domain.Artifact) *domain.Artifact {
	c := *a
	c.RawBytes = append([]byte(nil), a.RawBytes...)
	c.FailedPages = append([]int(nil), a.FailedPages...)
	return &c
}
