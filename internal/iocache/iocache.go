// Package iocache is for caching I/O calls.
package iocache

import (
	"sync"

	"github.com/mosegui/lookout/internal/contract"
)

// CacheStoreManager manages multiple CacheStore instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	complexity   contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetComplexityStore returns the complexity CacheStore.
func (mgr *CacheStoreManager) GetComplexityStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.complexity
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
