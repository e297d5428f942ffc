package circuit

import (
	"errors"
	"fmt"

	"github.com/benchq/dihedral/dihedral"
)

// ErrUnsupportedSynthesis reports a synthesis request for an element
// with three or more qubits.
var ErrUnsupportedSynthesis = errors.New("circuit: synthesis is defined for 1- and 2-qubit elements only")

// errNotNormalForm flags an element whose state cannot be produced by
// the group generators, such as a nonzero constant term or an odd
// quadratic coefficient. Well-formed elements never hit it.
var errNotNormalForm = errors.New("circuit: element is not in CNOT-dihedral normal form")

// Synthesize returns a minimal elementary-operation sequence that
// reproduces elem when applied to the identity element.
func Synthesize(elem *dihedral.Element) ([]Op, error) {
	switch elem.NumQubits() {
	case 1:
		return synthesize1(elem)
	case 2:
		return synthesize2(elem)
	}
	return nil, fmt.Errorf("%w: got %d qubits", ErrUnsupportedSynthesis, elem.NumQubits())
}

func mod8(v int) int {
	v %= 8
	if v < 0 {
		v += 8
	}
	return v
}

func synthesize1(elem *dihedral.Element) ([]Op, error) {
	p := elem.Poly()
	if w0, _ := p.Term(nil); w0 != 0 {
		return nil, fmt.Errorf("%w: constant term %d", errNotNormalForm, w0)
	}
	l0, _ := p.Term([]int{0})
	k0 := elem.Shift()[0]
	var ops []Op
	if l0 > 0 {
		ops = append(ops, PhaseOp(l0, 0))
	}
	if k0 == 1 {
		ops = append(ops, NotOp(0))
	}
	if len(ops) == 0 {
		ops = append(ops, IdentityOp(0))
	}
	return ops, nil
}

// localPrefix emits the single-qubit phase and flip corrections that
// precede the entangling structure of every two-qubit class.
func localPrefix(l0, k0, l1, k1 int) []Op {
	var ops []Op
	if l0 > 0 {
		ops = append(ops, PhaseOp(l0, 0))
	}
	if k0 == 1 {
		ops = append(ops, NotOp(0))
	}
	if l1 > 0 {
		ops = append(ops, PhaseOp(l1, 1))
	}
	if k1 == 1 {
		ops = append(ops, NotOp(1))
	}
	return ops
}

// cnotClassCorrections derives, for the five classes with a nontrivial
// linear part, the trailing phase power m and the corrected linear
// phase coefficients from the quadratic coefficient and shift parity.
func cnotClassCorrections(w2, l0, l1, k0, k1 int) (m, c0, c1 int) {
	if k0 == k1 {
		m = ((8 - w2) / 2) % 4
		return m, mod8(l0 - m), mod8(l1 - m)
	}
	m = (w2 / 2) % 4
	return m, mod8(l0 + m), mod8(l1 + m)
}

func synthesize2(elem *dihedral.Element) ([]Op, error) {
	p := elem.Poly()
	if w0, _ := p.Term(nil); w0 != 0 {
		return nil, fmt.Errorf("%w: constant term %d", errNotNormalForm, w0)
	}
	w1 := []int{0, 0}
	w1[0], _ = p.Term([]int{0})
	w1[1], _ = p.Term([]int{1})
	w2, _ := p.Term([]int{0, 1})
	if w2%2 != 0 {
		return nil, fmt.Errorf("%w: odd quadratic coefficient %d", errNotNormalForm, w2)
	}
	linear := elem.Linear()
	shift := elem.Shift()

	type matrix = [4]int
	key := matrix{linear[0][0], linear[0][1], linear[1][0], linear[1][1]}

	switch key {
	case matrix{1, 0, 0, 1}:
		// Identity linear part: sub-classify on the quadratic
		// coefficient and shift parity.
		k0, k1 := shift[0], shift[1]
		switch {
		case w2 == 0:
			ops := localPrefix(w1[0], k0, w1[1], k1)
			if len(ops) == 0 {
				ops = append(ops, IdentityOp(0), IdentityOp(1))
			}
			return ops, nil
		case (w2 == 2 && k0 == k1) || (w2 == 6 && k0 != k1):
			// CS class: the controlled phase is built from two CNOTs.
			l0 := mod8(w1[0] - 2*k1 - 4*k0*k1)
			l1 := mod8(w1[1] - 2*k0 - 4*k0*k1)
			ops := localPrefix(l0, k0, l1, k1)
			return append(ops,
				PhaseOp(1, 0), PhaseOp(1, 1),
				CNOTOp(0, 1), PhaseOp(7, 1), CNOTOp(0, 1)), nil
		case (w2 == 6 && k0 == k1) || (w2 == 2 && k0 != k1):
			// CS-dagger class.
			l0 := mod8(w1[0] - 6*k1 - 4*k0*k1)
			l1 := mod8(w1[1] - 6*k0 - 4*k0*k1)
			ops := localPrefix(l0, k0, l1, k1)
			return append(ops,
				PhaseOp(7, 0), PhaseOp(7, 1),
				CNOTOp(0, 1), PhaseOp(1, 1), CNOTOp(0, 1)), nil
		default: // w2 == 4
			// CZ class.
			l0 := mod8(w1[0] - 4*k1)
			l1 := mod8(w1[1] - 4*k0)
			ops := localPrefix(l0, k0, l1, k1)
			return append(ops,
				PhaseOp(7, 1), PhaseOp(7, 0),
				CNOTOp(1, 0), PhaseOp(2, 0), CNOTOp(1, 0),
				PhaseOp(7, 1), PhaseOp(7, 0)), nil
		}

	case matrix{1, 0, 1, 1}:
		// Single forward CNOT.
		k0 := shift[0]
		k1 := (shift[1] + k0) % 2
		m, l0, l1 := cnotClassCorrections(w2, w1[0], w1[1], k0, k1)
		ops := append(localPrefix(l0, k0, l1, k1), CNOTOp(0, 1))
		if m > 0 {
			ops = append(ops, PhaseOp(m, 1))
		}
		return ops, nil

	case matrix{1, 1, 0, 1}:
		// Single reverse CNOT.
		k1 := shift[1]
		k0 := (shift[0] + k1) % 2
		m, l0, l1 := cnotClassCorrections(w2, w1[0], w1[1], k0, k1)
		ops := append(localPrefix(l0, k0, l1, k1), CNOTOp(1, 0))
		if m > 0 {
			ops = append(ops, PhaseOp(m, 0))
		}
		return ops, nil

	case matrix{0, 1, 1, 1}:
		// Forward then reverse CNOT.
		k1 := shift[0]
		k0 := (shift[1] + k1) % 2
		m, l0, l1 := cnotClassCorrections(w2, w1[0], w1[1], k0, k1)
		ops := append(localPrefix(l0, k0, l1, k1), CNOTOp(0, 1), CNOTOp(1, 0))
		if m > 0 {
			ops = append(ops, PhaseOp(m, 1))
		}
		return ops, nil

	case matrix{1, 1, 1, 0}:
		// Reverse then forward CNOT.
		k0 := shift[1]
		k1 := (shift[0] + k0) % 2
		m, l0, l1 := cnotClassCorrections(w2, w1[0], w1[1], k0, k1)
		ops := append(localPrefix(l0, k0, l1, k1), CNOTOp(1, 0), CNOTOp(0, 1))
		if m > 0 {
			ops = append(ops, PhaseOp(m, 0))
		}
		return ops, nil

	case matrix{0, 1, 1, 0}:
		// Swap-equivalent three-CNOT form.
		k0 := shift[1]
		k1 := shift[0]
		m, l0, l1 := cnotClassCorrections(w2, w1[0], w1[1], k0, k1)
		ops := append(localPrefix(l0, k0, l1, k1), CNOTOp(0, 1), CNOTOp(1, 0))
		if m > 0 {
			ops = append(ops, PhaseOp(m, 1))
		}
		return append(ops, CNOTOp(0, 1)), nil
	}
	// The six cases above are the full set of invertible 2x2 matrices
	// over Z_2; the linear-part invariant makes this unreachable.
	return nil, fmt.Errorf("%w: singular linear part %v", errNotNormalForm, linear)
}
