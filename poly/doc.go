// Package poly implements the phase polynomials of the CNOT-dihedral
// group: multivariate polynomials on n boolean variables with
// coefficients in Z_8 and degree at most three.
//
// A [Poly] stores one coefficient per term, grouped by degree: the
// constant, the n linear terms, the C(n,2) quadratic terms and the
// C(n,3) cubic terms. Coefficients are kept reduced modulo 8 at all
// times. A term is addressed by its strictly increasing list of
// variable indices, so []int{0, 3} is the coefficient of x_0*x_3 and
// nil (or the empty list) is the constant.
//
// # Arithmetic
//
// Arithmetic is exposed as distinct named operations: [Poly.Add],
// [Poly.Scale], [Poly.Mul] and [Poly.MulMonomial] all return new
// polynomials and never mutate their operands. Because the variables
// are boolean, x^2 = x, so multiplication unions variable sets; a
// product whose terms would exceed degree three is a contract error.
//
// [Poly.Evaluate] substitutes bit values for the variables and returns
// a Z_8 scalar. [Poly.Substitute] substitutes polynomials for the
// variables and returns a new polynomial, which is how a phase
// polynomial is pushed through an affine change of variables during
// group composition.
//
// [Poly.SetPJ] resets a polynomial to the inclusion-exclusion form
//
//	p_J(x) = sum over nonempty a subseteq J of (-2)^(|a|-1) x^a
//
// which models the conjugation of a phase generator by a Z_2 linear
// map.
package poly
