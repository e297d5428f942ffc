// Package atlas enumerates the CNOT-dihedral group stratified by CNOT
// count: layer k holds every element whose minimal generator sequence
// uses exactly k CNOTs.
//
// [ZeroCNOTLayer] builds the 16^n elements reachable without any CNOT,
// the per-qubit tensor product of eight phase powers and two flip
// states. [NextLayer] extends a list of layers by one CNOT: every
// element of the newest layer is followed by every ordered CNOT and
// every phase power up to 3 on its target, and a candidate survives
// only if its canonical key appears in no earlier layer. Each [Entry]
// records the element together with a minimal operation sequence that
// produces it.
//
// [NextLayerParallel] computes the same layer with the candidate space
// fanned out over worker goroutines; the candidate construction is
// independent per source element, only deduplication is shared.
package atlas
