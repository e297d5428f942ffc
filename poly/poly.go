package poly

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDimension reports a variable count below one.
	ErrInvalidDimension = errors.New("poly: number of variables must be at least 1")
	// ErrInvalidTerm reports a term index list that is too long, not
	// strictly increasing, or out of range.
	ErrInvalidTerm = errors.New("poly: invalid term indices")
	// ErrMismatchedVars reports an operation mixing polynomials with
	// different variable counts.
	ErrMismatchedVars = errors.New("poly: mismatched variable counts")
)

// Poly is a polynomial on n boolean variables with coefficients in Z_8
// and degree at most three. The zero value is not usable; construct
// with [New].
type Poly struct {
	n  int
	w0 int   // constant term
	w1 []int // linear terms x_i
	w2 []int // quadratic terms x_i*x_j, i < j, lexicographic
	w3 []int // cubic terms x_i*x_j*x_k, i < j < k, lexicographic
}

// New returns the zero polynomial on n variables.
func New(n int) (*Poly, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, n)
	}
	return &Poly{
		n:  n,
		w1: make([]int, n),
		w2: make([]int, choose2(n)),
		w3: make([]int, choose3(n)),
	}, nil
}

func choose2(n int) int { return n * (n - 1) / 2 }
func choose3(n int) int { return n * (n - 1) * (n - 2) / 6 }

func mod8(v int) int {
	v %= 8
	if v < 0 {
		v += 8
	}
	return v
}

// NumVars returns the number of variables.
func (p *Poly) NumVars() int { return p.n }

// Clone returns a deep copy of p.
func (p *Poly) Clone() *Poly {
	return &Poly{
		n:  p.n,
		w0: p.w0,
		w1: append([]int(nil), p.w1...),
		w2: append([]int(nil), p.w2...),
		w3: append([]int(nil), p.w3...),
	}
}

// checkTerm validates a term index list: at most three indices, each in
// [0, n), strictly increasing.
func (p *Poly) checkTerm(indices []int) error {
	if len(indices) > 3 {
		return fmt.Errorf("%w: %v has more than 3 variables", ErrInvalidTerm, indices)
	}
	for i, v := range indices {
		if v < 0 || v >= p.n {
			return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidTerm, v, p.n)
		}
		if i > 0 && indices[i-1] >= v {
			return fmt.Errorf("%w: %v is not strictly increasing", ErrInvalidTerm, indices)
		}
	}
	return nil
}

// offset2 returns the position of x_i*x_j (i < j) within the quadratic
// block. Terms are ordered (0,1),(0,2),...,(0,n-1),(1,2),... so the
// offset is sum(n-t for t in 1..i) plus the distance past x_i*x_{i+1}.
func (p *Poly) offset2(i, j int) int {
	return i*p.n - (i+1)*i/2 + (j - i - 1)
}

// offset3 returns the position of x_i*x_j*x_k (i < j < k) within the
// cubic block, again lexicographic: a closed form for
// sum(C(n-t,2) for t in 1..i) + sum(n-1-t for t in i+1..j-1) + (k-j-1).
func (p *Poly) offset3(i, j, k int) int {
	o1 := i * (2 + i*i - 3*i*(p.n-1) - 6*p.n + 3*p.n*p.n) / 6
	o2 := (j - i - 1) * (2*p.n - 2 - i - j) / 2
	return o1 + o2 + (k - j - 1)
}

// term reads a coefficient without validation.
func (p *Poly) term(indices []int) int {
	switch len(indices) {
	case 0:
		return p.w0
	case 1:
		return p.w1[indices[0]]
	case 2:
		return p.w2[p.offset2(indices[0], indices[1])]
	default:
		return p.w3[p.offset3(indices[0], indices[1], indices[2])]
	}
}

// setTerm writes a coefficient without validation, reducing mod 8.
func (p *Poly) setTerm(indices []int, value int) {
	value = mod8(value)
	switch len(indices) {
	case 0:
		p.w0 = value
	case 1:
		p.w1[indices[0]] = value
	case 2:
		p.w2[p.offset2(indices[0], indices[1])] = value
	default:
		p.w3[p.offset3(indices[0], indices[1], indices[2])] = value
	}
}

// Term returns the coefficient of the term with the given strictly
// increasing variable indices. The empty list addresses the constant.
func (p *Poly) Term(indices []int) (int, error) {
	if err := p.checkTerm(indices); err != nil {
		return 0, err
	}
	return p.term(indices), nil
}

// SetTerm sets the coefficient of the term with the given strictly
// increasing variable indices, reduced modulo 8.
func (p *Poly) SetTerm(indices []int, value int) error {
	if err := p.checkTerm(indices); err != nil {
		return err
	}
	p.setTerm(indices, value)
	return nil
}

// AddTerm adds delta to the coefficient of the given term, modulo 8.
func (p *Poly) AddTerm(indices []int, delta int) error {
	if err := p.checkTerm(indices); err != nil {
		return err
	}
	p.setTerm(indices, p.term(indices)+delta)
	return nil
}

// eachTerm visits every term index list of degree 0 through 3 in the
// canonical order, stopping at the first error.
func (p *Poly) eachTerm(fn func(indices []int) error) error {
	if err := fn(nil); err != nil {
		return err
	}
	var buf [3]int
	for i := 0; i < p.n; i++ {
		buf[0] = i
		if err := fn(buf[:1]); err != nil {
			return err
		}
	}
	for i := 0; i < p.n-1; i++ {
		for j := i + 1; j < p.n; j++ {
			buf[0], buf[1] = i, j
			if err := fn(buf[:2]); err != nil {
				return err
			}
		}
	}
	for i := 0; i < p.n-2; i++ {
		for j := i + 1; j < p.n-1; j++ {
			for k := j + 1; k < p.n; k++ {
				buf[0], buf[1], buf[2] = i, j, k
				if err := fn(buf[:3]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Add returns the termwise sum p + q modulo 8.
func (p *Poly) Add(q *Poly) (*Poly, error) {
	if p.n != q.n {
		return nil, fmt.Errorf("%w: %d and %d", ErrMismatchedVars, p.n, q.n)
	}
	r := p.Clone()
	r.w0 = mod8(r.w0 + q.w0)
	for i := range r.w1 {
		r.w1[i] = mod8(r.w1[i] + q.w1[i])
	}
	for i := range r.w2 {
		r.w2[i] = mod8(r.w2[i] + q.w2[i])
	}
	for i := range r.w3 {
		r.w3[i] = mod8(r.w3[i] + q.w3[i])
	}
	return r, nil
}

// Scale returns k*p with every coefficient reduced modulo 8. Negative
// k is accepted, so Scale(-1) negates.
func (p *Poly) Scale(k int) *Poly {
	r := p.Clone()
	r.w0 = mod8(r.w0 * k)
	for i := range r.w1 {
		r.w1[i] = mod8(r.w1[i] * k)
	}
	for i := range r.w2 {
		r.w2[i] = mod8(r.w2[i] * k)
	}
	for i := range r.w3 {
		r.w3[i] = mod8(r.w3[i] * k)
	}
	return r
}

// MulMonomial returns p multiplied by the single monomial with the
// given strictly increasing variable indices. Since the variables are
// boolean, each term's variable set is unioned with the monomial's; a
// union of more than three variables is a contract error.
func (p *Poly) MulMonomial(indices []int) (*Poly, error) {
	if err := p.checkTerm(indices); err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return p.Clone(), nil
	}
	r, err := New(p.n)
	if err != nil {
		return nil, err
	}
	err = p.eachTerm(func(term []int) error {
		value := p.term(term)
		if value == 0 {
			return nil
		}
		union := mergeIndices(term, indices)
		if len(union) > 3 {
			return fmt.Errorf("%w: product term %v exceeds degree 3", ErrInvalidTerm, union)
		}
		r.setTerm(union, r.term(union)+value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// mergeIndices unions two strictly increasing index lists, keeping the
// result strictly increasing.
func mergeIndices(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Mul returns the product p*q, computed as the sum over the monomials
// of q of coefficient times [Poly.MulMonomial].
func (p *Poly) Mul(q *Poly) (*Poly, error) {
	if p.n != q.n {
		return nil, fmt.Errorf("%w: %d and %d", ErrMismatchedVars, p.n, q.n)
	}
	r, err := New(p.n)
	if err != nil {
		return nil, err
	}
	err = q.eachTerm(func(term []int) error {
		value := q.term(term)
		if value == 0 {
			return nil
		}
		part, merr := p.MulMonomial(term)
		if merr != nil {
			return merr
		}
		r, merr = r.Add(part.Scale(value))
		return merr
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Evaluate substitutes bit values for the variables and returns the
// resulting Z_8 scalar. The inputs are reduced modulo 2; their count
// must equal the variable count.
func (p *Poly) Evaluate(bits []int) (int, error) {
	if len(bits) != p.n {
		return 0, fmt.Errorf("%w: %d values for %d variables", ErrMismatchedVars, len(bits), p.n)
	}
	vals := make([]int, p.n)
	for i, b := range bits {
		vals[i] = b & 1
	}
	result := 0
	p.eachTerm(func(term []int) error {
		value := p.term(term)
		if value == 0 {
			return nil
		}
		prod := 1
		for _, j := range term {
			prod *= vals[j]
		}
		result = mod8(result + value*prod)
		return nil
	})
	return result, nil
}

// Substitute replaces variable i by vars[i] and returns the resulting
// polynomial. All substituted polynomials must be on the same variable
// count as p.
func (p *Poly) Substitute(vars []*Poly) (*Poly, error) {
	if len(vars) != p.n {
		return nil, fmt.Errorf("%w: %d polynomials for %d variables", ErrMismatchedVars, len(vars), p.n)
	}
	for i, v := range vars {
		if v == nil || v.n != p.n {
			return nil, fmt.Errorf("%w: substituted polynomial %d is not on %d variables", ErrMismatchedVars, i, p.n)
		}
	}
	result, err := New(p.n)
	if err != nil {
		return nil, err
	}
	err = p.eachTerm(func(term []int) error {
		value := p.term(term)
		if value == 0 {
			return nil
		}
		prod, perr := New(p.n)
		if perr != nil {
			return perr
		}
		prod.w0 = 1
		for _, j := range term {
			prod, perr = prod.Mul(vars[j])
			if perr != nil {
				return perr
			}
		}
		result, perr = result.Add(prod.Scale(value))
		return perr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetPJ resets p to the inclusion-exclusion polynomial
//
//	p_J(x) = sum over nonempty a subseteq J of (-2)^(|a|-1) x^a
//
// for the given index set J: linear terms get coefficient 1, quadratic
// terms 6 and cubic terms 4. The indices may be given in any order but
// must be distinct and in range.
func (p *Poly) SetPJ(indices []int) error {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v < 0 || v >= p.n {
			return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidTerm, v, p.n)
		}
		if i > 0 && sorted[i-1] == v {
			return fmt.Errorf("%w: duplicate index %d", ErrInvalidTerm, v)
		}
	}
	p.w0 = 0
	for i := range p.w1 {
		p.w1[i] = 0
	}
	for i := range p.w2 {
		p.w2[i] = 0
	}
	for i := range p.w3 {
		p.w3[i] = 0
	}
	for _, j := range sorted {
		p.setTerm([]int{j}, 1)
	}
	for a := 0; a < len(sorted)-1; a++ {
		for b := a + 1; b < len(sorted); b++ {
			p.setTerm([]int{sorted[a], sorted[b]}, 6)
		}
	}
	for a := 0; a < len(sorted)-2; a++ {
		for b := a + 1; b < len(sorted)-1; b++ {
			for c := b + 1; c < len(sorted); c++ {
				p.setTerm([]int{sorted[a], sorted[b], sorted[c]}, 4)
			}
		}
	}
	return nil
}

// Key returns a canonical serialization of p. Two polynomials on the
// same variable count are equal exactly when their keys are equal.
func (p *Poly) Key() string {
	var b strings.Builder
	b.Grow(4 + len(p.w1) + len(p.w2) + len(p.w3))
	b.WriteByte('0' + byte(p.w0))
	for _, block := range [][]int{p.w1, p.w2, p.w3} {
		b.WriteByte('|')
		for _, v := range block {
			b.WriteByte('0' + byte(v))
		}
	}
	return b.String()
}

// Equal reports whether p and q have identical coefficients.
func (p *Poly) Equal(q *Poly) bool {
	return q != nil && p.n == q.n && p.Key() == q.Key()
}

// String renders p in the form "1 + 3*x_0 + 2*x_0*x_1".
func (p *Poly) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(p.w0))
	p.eachTerm(func(term []int) error {
		if len(term) == 0 {
			return nil
		}
		value := p.term(term)
		if value == 0 {
			return nil
		}
		b.WriteString(" + ")
		if value != 1 {
			b.WriteString(strconv.Itoa(value))
			b.WriteByte('*')
		}
		for i, j := range term {
			if i > 0 {
				b.WriteByte('*')
			}
			b.WriteString("x_")
			b.WriteString(strconv.Itoa(j))
		}
		return nil
	})
	return b.String()
}
