package circuit

import (
	"errors"
	"fmt"

	"github.com/benchq/dihedral/dihedral"
)

// ErrUnknownOp reports an operation kind outside the closed gate set.
var ErrUnknownOp = errors.New("circuit: not a CNOT-dihedral operation")

// Apply updates elem in place by applying ops left to right. When
// qubits is non-nil it maps each op's local qubit indices to elem's
// indices; nil means the identity mapping. On error elem is left
// unchanged.
func Apply(elem *dihedral.Element, ops []Op, qubits []int) error {
	remap := func(q int) (int, error) {
		if qubits == nil {
			return q, nil
		}
		if q < 0 || q >= len(qubits) {
			return 0, fmt.Errorf("%w: local qubit %d outside the %d-entry mapping",
				dihedral.ErrInvalidDimension, q, len(qubits))
		}
		return qubits[q], nil
	}
	work := elem.Clone()
	for _, op := range ops {
		target, err := remap(op.Target)
		if err != nil {
			return err
		}
		switch op.Kind {
		case NOT:
			err = work.Flip(target)
		case Phase:
			err = work.Phase(op.Power, target)
		case CNOT:
			var control int
			control, err = remap(op.Control)
			if err == nil {
				err = work.CNOT(control, target)
			}
		case Identity:
			if target < 0 || target >= work.NumQubits() {
				err = fmt.Errorf("%w: qubit %d out of range [0,%d)",
					dihedral.ErrInvalidDimension, target, work.NumQubits())
			}
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownOp, op)
		}
		if err != nil {
			return err
		}
	}
	*elem = *work
	return nil
}
