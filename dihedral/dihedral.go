package dihedral

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/benchq/dihedral/poly"
)

var (
	// ErrInvalidDimension reports a qubit count below one or a qubit
	// index outside [0, n).
	ErrInvalidDimension = errors.New("dihedral: invalid qubit count or index")
	// ErrMismatchedQubits reports composition of elements with
	// different qubit counts.
	ErrMismatchedQubits = errors.New("dihedral: mismatched qubit counts")
)

// Element is a CNOT-dihedral group element on n qubits: a phase
// polynomial, an invertible n x n matrix over Z_2 and a binary shift
// vector. The zero value is not usable; construct with [Identity] or
// [Sample].
type Element struct {
	n      int
	poly   *poly.Poly
	linear []*bitset.BitSet // matrix rows; invariant: invertible over Z_2
	shift  *bitset.BitSet
}

// Identity returns the identity element on n qubits: zero polynomial,
// identity matrix, zero shift.
func Identity(n int) (*Element, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d qubits", ErrInvalidDimension, n)
	}
	p, err := poly.New(n)
	if err != nil {
		return nil, err
	}
	rows := make([]*bitset.BitSet, n)
	for i := range rows {
		rows[i] = bitset.New(uint(n))
		rows[i].Set(uint(i))
	}
	return &Element{n: n, poly: p, linear: rows, shift: bitset.New(uint(n))}, nil
}

// NumQubits returns the qubit count.
func (e *Element) NumQubits() int { return e.n }

// Poly returns a copy of the phase polynomial.
func (e *Element) Poly() *poly.Poly { return e.poly.Clone() }

// Linear returns a copy of the linear part as a 0/1 matrix.
func (e *Element) Linear() [][]int {
	m := make([][]int, e.n)
	for i := range m {
		m[i] = make([]int, e.n)
		for j := 0; j < e.n; j++ {
			if e.linear[i].Test(uint(j)) {
				m[i][j] = 1
			}
		}
	}
	return m
}

// Shift returns a copy of the shift vector as 0/1 values.
func (e *Element) Shift() []int {
	v := make([]int, e.n)
	for i := 0; i < e.n; i++ {
		if e.shift.Test(uint(i)) {
			v[i] = 1
		}
	}
	return v
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	rows := make([]*bitset.BitSet, e.n)
	for i := range rows {
		rows[i] = e.linear[i].Clone()
	}
	return &Element{n: e.n, poly: e.poly.Clone(), linear: rows, shift: e.shift.Clone()}
}

func (e *Element) checkQubit(i int) error {
	if i < 0 || i >= e.n {
		return fmt.Errorf("%w: qubit %d out of range [0,%d)", ErrInvalidDimension, i, e.n)
	}
	return nil
}

// CNOT left-multiplies e by CNOT_{control,target}: the target row and
// shift bit absorb the control row and shift bit over Z_2.
func (e *Element) CNOT(control, target int) error {
	if err := e.checkQubit(control); err != nil {
		return err
	}
	if err := e.checkQubit(target); err != nil {
		return err
	}
	if control == target {
		return fmt.Errorf("%w: control equals target %d", ErrInvalidDimension, control)
	}
	e.linear[target].InPlaceSymmetricDifference(e.linear[control])
	if e.shift.Test(uint(control)) {
		e.shift.Flip(uint(target))
	}
	return nil
}

// Phase left-multiplies e by the k-th power of the order-8 phase gate
// on the given qubit. k may be any integer and is used modulo 8. For
// every subset of the qubit's row support of size 1, 2 and 3 the
// corresponding polynomial term gains k, -2k and 4k modulo 8.
func (e *Element) Phase(k, qubit int) error {
	if err := e.checkQubit(qubit); err != nil {
		return err
	}
	k = ((k % 8) + 8) % 8
	// A preceding bit flip conjugates the phase gate.
	if e.shift.Test(uint(qubit)) {
		k = (7 * k) % 8
	}
	support := e.rowSupport(qubit)
	for _, j := range support {
		if err := e.poly.AddTerm([]int{j}, k); err != nil {
			return err
		}
	}
	for a := 0; a < len(support)-1; a++ {
		for b := a + 1; b < len(support); b++ {
			if err := e.poly.AddTerm([]int{support[a], support[b]}, -2*k); err != nil {
				return err
			}
		}
	}
	for a := 0; a < len(support)-2; a++ {
		for b := a + 1; b < len(support)-1; b++ {
			for c := b + 1; c < len(support); c++ {
				if err := e.poly.AddTerm([]int{support[a], support[b], support[c]}, 4*k); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Flip left-multiplies e by NOT on the given qubit.
func (e *Element) Flip(qubit int) error {
	if err := e.checkQubit(qubit); err != nil {
		return err
	}
	e.shift.Flip(uint(qubit))
	return nil
}

// rowSupport returns the sorted column indices where row i is set.
func (e *Element) rowSupport(i int) []int {
	support := make([]int, 0, e.n)
	for j, ok := e.linear[i].NextSet(0); ok && j < uint(e.n); j, ok = e.linear[i].NextSet(j + 1) {
		support = append(support, int(j))
	}
	return support
}

// Compose returns the element "apply other, then e". Neither operand
// is mutated.
func (e *Element) Compose(other *Element) (*Element, error) {
	if other == nil || e.n != other.n {
		got := 0
		if other != nil {
			got = other.n
		}
		return nil, fmt.Errorf("%w: %d and %d", ErrMismatchedQubits, e.n, got)
	}
	r, err := Identity(e.n)
	if err != nil {
		return nil, err
	}
	r.linear = matMul(e.linear, other.linear, e.n)
	r.shift = matVec(e.linear, other.shift, e.n)
	r.shift.InPlaceSymmetricDifference(e.shift)

	// Push e's phase polynomial through other's affine map: each
	// variable x_i becomes p_J on the support of other's row i,
	// negated with a constant 1 when other's shift bit is set.
	vars := make([]*poly.Poly, e.n)
	for i := 0; i < e.n; i++ {
		pj, perr := poly.New(e.n)
		if perr != nil {
			return nil, perr
		}
		if perr := pj.SetPJ(other.rowSupport(i)); perr != nil {
			return nil, perr
		}
		if other.shift.Test(uint(i)) {
			pj = pj.Scale(-1)
			if perr := pj.AddTerm(nil, 1); perr != nil {
				return nil, perr
			}
		}
		vars[i] = pj
	}
	sub, err := e.poly.Substitute(vars)
	if err != nil {
		return nil, err
	}
	r.poly, err = other.poly.Add(sub)
	if err != nil {
		return nil, err
	}
	// The substitution can surface a constant term, e.g. when a flip
	// precedes a phase gate (X T X = w T^7). The constant is a global
	// phase; Phase already drops it, so Compose must too.
	if err := r.poly.SetTerm(nil, 0); err != nil {
		return nil, err
	}
	return r, nil
}

// Then returns the element "apply e, then other": the mirrored
// orientation of [Element.Compose].
func (e *Element) Then(other *Element) (*Element, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: %d and 0", ErrMismatchedQubits, e.n)
	}
	return other.Compose(e)
}

// matMul multiplies two Z_2 matrices given as bitset rows: row i of the
// product is the XOR of the rows of b selected by row i of a.
func matMul(a, b []*bitset.BitSet, n int) []*bitset.BitSet {
	out := make([]*bitset.BitSet, n)
	for i := 0; i < n; i++ {
		row := bitset.New(uint(n))
		for k := 0; k < n; k++ {
			if a[i].Test(uint(k)) {
				row.InPlaceSymmetricDifference(b[k])
			}
		}
		out[i] = row
	}
	return out
}

// matVec multiplies a Z_2 matrix by a vector: bit i of the product is
// the parity of the intersection of row i with the vector.
func matVec(a []*bitset.BitSet, v *bitset.BitSet, n int) *bitset.BitSet {
	out := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		if a[i].IntersectionCardinality(v)%2 == 1 {
			out.Set(uint(i))
		}
	}
	return out
}

// Key returns a canonical serialization of the full state. Two
// elements are structurally equal exactly when their keys are equal.
func (e *Element) Key() string {
	var b strings.Builder
	b.Grow(e.n*(e.n+1) + 2*e.n + 8)
	b.WriteString(e.poly.Key())
	for i := 0; i < e.n; i++ {
		b.WriteByte('|')
		for j := 0; j < e.n; j++ {
			if e.linear[i].Test(uint(j)) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	b.WriteByte('|')
	for i := 0; i < e.n; i++ {
		if e.shift.Test(uint(i)) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Equal reports whether e and x are structurally equal.
func (e *Element) Equal(x *Element) bool {
	return x != nil && e.n == x.n && e.Key() == x.Key()
}

// String renders the phase polynomial and the affine function, e.g.
//
//	phase polynomial =
//	 0 + 3*x_0 + 3*x_1 + 2*x_0*x_1
//	affine function =
//	 (x_0, x_0 + x_1 + 1)
func (e *Element) String() string {
	var b strings.Builder
	b.WriteString("phase polynomial =\n ")
	b.WriteString(e.poly.String())
	b.WriteString("\naffine function =\n (")
	for i := 0; i < e.n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		wrote := false
		for _, j := range e.rowSupport(i) {
			if wrote {
				b.WriteString(" + ")
			}
			fmt.Fprintf(&b, "x_%d", j)
			wrote = true
		}
		if e.shift.Test(uint(i)) {
			if wrote {
				b.WriteString(" + ")
			}
			b.WriteByte('1')
		}
	}
	b.WriteString(")\n")
	return b.String()
}
