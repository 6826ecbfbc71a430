package floatcp

// branch.go: per-branch ownership of the registry/optimizer pair. Sharing
// a single bound cache across concurrently explored branches is unsafe:
// two branches may hold mutually contradictory effective bounds for the
// same variable at the same time. Forking gives each branch its own
// registry copy, a cold cache, and its own domain store.

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gitrdm/floatcp/internal/parallel"
)

// Branch bundles the mutable search state one branch owns exclusively. All
// registration and propagation for a branch must go through its own
// Registry, Optimizer, and Store; nothing here is shared with siblings.
type Branch struct {
	ID        string
	Registry  *ConstraintRegistry
	Optimizer *PrecisionOptimizer
	Store     *FloatStore

	prop *BoundaryPropagator
}

// NewBranch creates a root branch with empty state.
func NewBranch() *Branch {
	return &Branch{
		ID:        uuid.NewString(),
		Registry:  NewConstraintRegistry(),
		Optimizer: NewPrecisionOptimizer(),
		Store:     NewFloatStore(),
	}
}

// Fork deep-copies the branch's registry and domains under a new id. The
// child starts with a cold optimizer cache and fresh statistics; cached
// bounds never cross a branch boundary.
func (b *Branch) Fork() *Branch {
	return &Branch{
		ID:        uuid.NewString(),
		Registry:  b.Registry.clone(),
		Optimizer: NewPrecisionOptimizer(),
		Store:     b.Store.clone(),
	}
}

// Propagator returns the branch's boundary propagator, created on first
// use and reused for the branch's lifetime so per-variable state — in
// particular terminal infeasibility — carries across propagation calls.
// A fork starts with a fresh propagator of its own.
func (b *Branch) Propagator() *BoundaryPropagator {
	if b.prop == nil {
		b.prop = NewBoundaryPropagator(b.Registry, b.Optimizer, b.Store)
	}
	return b.prop
}

// BranchSet runs boundary propagation across independent branches in
// parallel. Because every branch owns its state outright, the only shared
// structure is the result map, guarded here.
type BranchSet struct {
	mu       sync.Mutex
	branches []*Branch
	pool     *parallel.WorkerPool
}

// NewBranchSet creates a set backed by a pool of maxWorkers workers (zero
// means one per CPU).
func NewBranchSet(maxWorkers int) *BranchSet {
	return &BranchSet{pool: parallel.NewWorkerPool(maxWorkers)}
}

// Add registers a branch with the set.
func (bs *BranchSet) Add(b *Branch) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.branches = append(bs.branches, b)
}

// Branches returns the current branches.
func (bs *BranchSet) Branches() []*Branch {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return append([]*Branch(nil), bs.branches...)
}

// PropagateAll runs boundary propagation for the given variables on every
// branch and returns the per-branch outcome keyed by branch id. A nil map
// entry value means the branch propagated cleanly; a contradiction for one
// branch does not stop the others, since each explores its own subtree.
func (bs *BranchSet) PropagateAll(ctx context.Context, vars []VariableID) (map[string]error, error) {
	branches := bs.Branches()

	results := make(map[string]error, len(branches))
	var resultMu sync.Mutex
	var wg sync.WaitGroup

	for _, b := range branches {
		b := b
		// Materialize the propagator before handing off, so lazy
		// creation stays on one goroutine per branch.
		prop := b.Propagator()
		wg.Add(1)
		err := bs.pool.Submit(ctx, func() {
			defer wg.Done()
			perr := prop.Propagate(vars)
			resultMu.Lock()
			results[b.ID] = perr
			resultMu.Unlock()
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return results, err
		}
	}

	wg.Wait()
	return results, nil
}

// Close shuts down the worker pool.
func (bs *BranchSet) Close() {
	bs.pool.Shutdown()
}
