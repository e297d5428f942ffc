package dihedral

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/blake2b"
)

// Sample returns a uniformly random element on n qubits. The draw is
// deterministic for a fixed seed: the seed is expanded with blake2b
// into the key of a keyed PRNG, and every coefficient is drawn from
// that stream in a fixed order (linear, quadratic, cubic polynomial
// weights, then the linear part by rejection until invertible, then
// the shift).
//
// Quadratic coefficients are drawn from {0, 2, 4} only, matching the
// subgroup reachable by the generators (every Phase application adds
// an even value to quadratic terms).
func Sample(n int, seed int64) (*Element, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d qubits", ErrInvalidDimension, n)
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	key := blake2b.Sum256(buf[:])
	prng, err := utils.NewKeyedPRNG(key[:])
	if err != nil {
		return nil, err
	}
	e, err := Identity(n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		v, err := randInt(prng, 8)
		if err != nil {
			return nil, err
		}
		if err := e.poly.SetTerm([]int{i}, v); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			v, err := randInt(prng, 3)
			if err != nil {
				return nil, err
			}
			if err := e.poly.SetTerm([]int{i, j}, 2*v); err != nil {
				return nil, err
			}
		}
	}
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			for k := j + 1; k < n; k++ {
				v, err := randInt(prng, 8)
				if err != nil {
					return nil, err
				}
				if err := e.poly.SetTerm([]int{i, j, k}, v); err != nil {
					return nil, err
				}
			}
		}
	}

	for {
		rows := make([]*bitset.BitSet, n)
		for i := range rows {
			rows[i] = bitset.New(uint(n))
			for j := 0; j < n; j++ {
				b, err := randInt(prng, 2)
				if err != nil {
					return nil, err
				}
				if b == 1 {
					rows[i].Set(uint(j))
				}
			}
		}
		if invertible(rows, n) {
			e.linear = rows
			break
		}
	}

	for i := 0; i < n; i++ {
		b, err := randInt(prng, 2)
		if err != nil {
			return nil, err
		}
		if b == 1 {
			e.shift.Set(uint(i))
		}
	}
	return e, nil
}

// randInt draws a value in [0, max) from the PRNG stream.
func randInt(prng utils.PRNG, max int64) (int, error) {
	buf := make([]byte, 8)
	if _, err := prng.Read(buf); err != nil {
		return 0, err
	}
	r := new(big.Int).SetBytes(buf)
	return int(r.Mod(r, big.NewInt(max)).Int64()), nil
}

// invertible reports whether the Z_2 matrix given by rows has nonzero
// determinant, by Gaussian elimination on a copy.
func invertible(rows []*bitset.BitSet, n int) bool {
	m := make([]*bitset.BitSet, n)
	for i := range rows {
		m[i] = rows[i].Clone()
	}
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if m[r].Test(uint(col)) {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return false
		}
		m[col], m[pivot] = m[pivot], m[col]
		for r := col + 1; r < n; r++ {
			if m[r].Test(uint(col)) {
				m[r].InPlaceSymmetricDifference(m[col])
			}
		}
	}
	return true
}
