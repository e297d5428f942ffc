package atlas

import (
	"errors"
	"fmt"
	"slices"

	"github.com/benchq/dihedral/circuit"
	"github.com/benchq/dihedral/dihedral"
)

// ErrNoLayers reports a next-layer request without the zero layer.
var ErrNoLayers = errors.New("atlas: at least the zero-CNOT layer is required")

// Entry is one enumerated element together with a minimal generator
// sequence producing it. Entries are never mutated once inserted.
type Entry struct {
	Elem *dihedral.Element
	Ops  []circuit.Op
}

// Layer maps canonical keys to entries for one CNOT count.
type Layer map[string]Entry

// ZeroCNOTLayer returns the dictionary of all 16^n elements reachable
// with zero CNOTs, built by walking every base-16 digit vector of
// length n and applying the phase power and flip it encodes per qubit.
func ZeroCNOTLayer(n int) (Layer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d qubits", dihedral.ErrInvalidDimension, n)
	}
	total := 1
	for i := 0; i < n; i++ {
		total *= 16
	}
	layer := make(Layer, total)
	for i := 0; i < total; i++ {
		elem, err := dihedral.Identity(n)
		if err != nil {
			return nil, err
		}
		var ops []circuit.Op
		num := i
		for q := 0; q < n; q++ {
			xpower := num % 2
			tpower := (num / 2) % 8
			if tpower > 0 {
				if err := elem.Phase(tpower, q); err != nil {
					return nil, err
				}
				ops = append(ops, circuit.PhaseOp(tpower, q))
			}
			if xpower == 1 {
				if err := elem.Flip(q); err != nil {
					return nil, err
				}
				ops = append(ops, circuit.NotOp(q))
			}
			num /= 16
		}
		layer[elem.Key()] = Entry{Elem: elem, Ops: ops}
	}
	return layer, nil
}

// candidates invokes fn with every candidate derived from one entry:
// each ordered pair of distinct qubits as a CNOT, followed by each
// phase power 0..3 on the target.
func candidates(n int, ent Entry, fn func(key string, cand Entry) error) error {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			for tpower := 0; tpower < 4; tpower++ {
				cand := ent.Elem.Clone()
				if err := cand.CNOT(i, j); err != nil {
					return err
				}
				ops := append(slices.Clone(ent.Ops), circuit.CNOTOp(i, j))
				if tpower > 0 {
					if err := cand.Phase(tpower, j); err != nil {
						return err
					}
					ops = append(ops, circuit.PhaseOp(tpower, j))
				}
				if err := fn(cand.Key(), Entry{Elem: cand, Ops: ops}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seen(key string, layers []Layer) bool {
	for _, l := range layers {
		if _, ok := l[key]; ok {
			return true
		}
	}
	return false
}

// NextLayer returns the layer with one more CNOT than the last of the
// prior layers. A candidate is kept only when its key is absent from
// every prior layer and from the layer under construction.
func NextLayer(n int, prior []Layer) (Layer, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d qubits", dihedral.ErrInvalidDimension, n)
	}
	if len(prior) == 0 {
		return nil, ErrNoLayers
	}
	next := make(Layer)
	for _, ent := range prior[len(prior)-1] {
		err := candidates(n, ent, func(key string, cand Entry) error {
			if seen(key, prior) {
				return nil
			}
			if _, ok := next[key]; ok {
				return nil
			}
			next[key] = cand
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return next, nil
}
