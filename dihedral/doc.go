// Package dihedral implements elements of the CNOT-dihedral group, the
// finite group generated by controlled-NOT, NOT and order-8 phase gates
// on n qubits.
//
// An [Element] acts on basis labels by an affine permutation
//
//	x -> linear*x + shift  (over Z_2)
//
// while accumulating a phase described by a degree-3 [poly.Poly] with
// Z_8 coefficients. The linear part is always invertible over Z_2; its
// rows and the shift vector are stored as bitsets.
//
// # Generators and composition
//
// [Identity] constructs the identity element. The three generators
// [Element.CNOT], [Element.Phase] and [Element.Flip] mutate the element
// in place and require exclusive access when an element is shared
// between goroutines. [Element.Compose] and [Element.Then] are pure:
// they return a new element and never touch their operands, so they are
// safe to call concurrently on shared, read-only elements.
//
// [Element.Key] is a canonical, injective serialization of the full
// state. Two elements are equal exactly when their keys are equal,
// independent of the generator sequences that produced them.
//
// # Sampling
//
// [Sample] draws a uniformly random element for a qubit count and
// seed. It is deterministic for a fixed seed: the seed is expanded
// into a keyed PRNG, so no ambient global randomness is involved.
package dihedral
