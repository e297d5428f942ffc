// Package circuit maps between CNOT-dihedral group elements and
// ordered sequences of elementary operations.
//
// The operation vocabulary is the closed set [NOT], [Phase], [CNOT]
// and [Identity]; it is the only circuit representation the group core
// exchanges with callers, so no external circuit object model is
// involved.
//
// [Apply] consumes a sequence left to right and updates an element by
// invoking the matching group generator per operation, optionally
// remapping the sequence's local qubit indices. [Synthesize] is the
// inverse direction for one- and two-qubit elements: it reads the
// element's normal form and emits a minimal sequence, case-splitting
// exhaustively on the six invertible 2x2 matrices over Z_2 for the
// two-qubit classes. Synthesis for three or more qubits is not
// defined.
package circuit
