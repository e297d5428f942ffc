package atlas

import (
	"fmt"
	"runtime"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"

	"github.com/benchq/dihedral/dihedral"
)

// NextLayerParallel computes the same layer as [NextLayer] with the
// candidate construction fanned out over worker goroutines. Prior
// layers are only read, so sharing them is safe; deduplication within
// the new layer goes through a concurrent map. The returned layer has
// exactly the key set of the sequential result.
func NextLayerParallel(n int, prior []Layer) (Layer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d qubits", dihedral.ErrInvalidDimension, n)
	}
	if len(prior) == 0 {
		return nil, ErrNoLayers
	}
	dedup := xsync.NewMapOf[string, Entry]()
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, ent := range prior[len(prior)-1] {
		ent := ent
		g.Go(func() error {
			return candidates(n, ent, func(key string, cand Entry) error {
				if seen(key, prior) {
					return nil
				}
				dedup.LoadOrStore(key, cand)
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	next := make(Layer, dedup.Size())
	dedup.Range(func(key string, ent Entry) bool {
		next[key] = ent
		return true
	})
	return next, nil
}
