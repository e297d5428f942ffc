package circuit

import "fmt"

// Kind identifies an elementary operation in the CNOT-dihedral gate
// set. The string values follow the conventional wire names.
type Kind string

const (
	// NOT is the bit flip X.
	NOT Kind = "x"
	// Phase is a power of the order-8 phase gate T.
	Phase Kind = "u1"
	// CNOT is the controlled NOT.
	CNOT Kind = "cx"
	// Identity is a no-op placeholder.
	Identity Kind = "id"
)

// Op is one elementary operation. Target is the acted-on qubit for
// every kind; Power is used by Phase ops and Control by CNOT ops.
type Op struct {
	Kind    Kind
	Power   int
	Control int
	Target  int
}

// NotOp returns a NOT on qubit q.
func NotOp(q int) Op { return Op{Kind: NOT, Target: q} }

// PhaseOp returns the k-th phase-gate power on qubit q.
func PhaseOp(k, q int) Op { return Op{Kind: Phase, Power: k, Target: q} }

// CNOTOp returns a CNOT with the given control and target.
func CNOTOp(control, target int) Op { return Op{Kind: CNOT, Control: control, Target: target} }

// IdentityOp returns a no-op on qubit q.
func IdentityOp(q int) Op { return Op{Kind: Identity, Target: q} }

func (o Op) String() string {
	switch o.Kind {
	case Phase:
		return fmt.Sprintf("u1^%d q%d", o.Power, o.Target)
	case CNOT:
		return fmt.Sprintf("cx q%d q%d", o.Control, o.Target)
	case NOT, Identity:
		return fmt.Sprintf("%s q%d", string(o.Kind), o.Target)
	}
	return fmt.Sprintf("%q q%d", string(o.Kind), o.Target)
}
