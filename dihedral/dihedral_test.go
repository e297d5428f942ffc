package dihedral

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustIdentity(t *testing.T, n int) *Element {
	t.Helper()
	e, err := Identity(n)
	if err != nil {
		t.Fatalf("Identity(%d): %v", n, err)
	}
	return e
}

func mustSample(t *testing.T, n int, seed int64) *Element {
	t.Helper()
	e, err := Sample(n, seed)
	if err != nil {
		t.Fatalf("Sample(%d, %d): %v", n, seed, err)
	}
	return e
}

func TestIdentityElement(t *testing.T) {
	if _, err := Identity(0); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("Identity(0): want ErrInvalidDimension, got %v", err)
	}
	e := mustIdentity(t, 3)
	want := [][]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if diff := cmp.Diff(want, e.Linear()); diff != "" {
		t.Fatalf("identity linear part (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 0, 0}, e.Shift()); diff != "" {
		t.Fatalf("identity shift (-want +got):\n%s", diff)
	}
}

// TestPhaseFlipScenario: phase(4,0) then flip(0) on one qubit gives
// linear polynomial coefficient 4 and shift 1.
func TestPhaseFlipScenario(t *testing.T) {
	e := mustIdentity(t, 1)
	if err := e.Phase(4, 0); err != nil {
		t.Fatalf("Phase: %v", err)
	}
	if err := e.Flip(0); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	if got, _ := e.Poly().Term([]int{0}); got != 4 {
		t.Fatalf("linear coefficient: got %d want 4", got)
	}
	if diff := cmp.Diff([]int{1}, e.Shift()); diff != "" {
		t.Fatalf("shift (-want +got):\n%s", diff)
	}
}

// TestCNOTScenario: cnot(0,1) from the identity on two qubits.
func TestCNOTScenario(t *testing.T) {
	e := mustIdentity(t, 2)
	id := mustIdentity(t, 2)
	if err := e.CNOT(0, 1); err != nil {
		t.Fatalf("CNOT: %v", err)
	}
	if diff := cmp.Diff([][]int{{1, 0}, {1, 1}}, e.Linear()); diff != "" {
		t.Fatalf("linear part (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 0}, e.Shift()); diff != "" {
		t.Fatalf("shift (-want +got):\n%s", diff)
	}
	if e.Key() == id.Key() {
		t.Fatalf("CNOT element shares key with identity: %q", e.Key())
	}
}

// TestPhaseOnEntangledRow reproduces the worked example from the group
// definition: cnot(0,1), flip(2), phase(3,1) on three qubits.
func TestPhaseOnEntangledRow(t *testing.T) {
	e := mustIdentity(t, 3)
	if err := e.CNOT(0, 1); err != nil {
		t.Fatalf("CNOT: %v", err)
	}
	if err := e.Flip(2); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	if err := e.Phase(3, 1); err != nil {
		t.Fatalf("Phase: %v", err)
	}
	p := e.Poly()
	if got, _ := p.Term([]int{0}); got != 3 {
		t.Fatalf("x_0 coefficient: got %d want 3", got)
	}
	if got, _ := p.Term([]int{1}); got != 3 {
		t.Fatalf("x_1 coefficient: got %d want 3", got)
	}
	if got, _ := p.Term([]int{0, 1}); got != 2 {
		t.Fatalf("x_0*x_1 coefficient: got %d want 2", got)
	}
	if diff := cmp.Diff([][]int{{1, 0, 0}, {1, 1, 0}, {0, 0, 1}}, e.Linear()); diff != "" {
		t.Fatalf("linear part (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 0, 1}, e.Shift()); diff != "" {
		t.Fatalf("shift (-want +got):\n%s", diff)
	}
}

func TestGeneratorValidation(t *testing.T) {
	e := mustIdentity(t, 2)
	before := e.Key()
	cases := []error{
		e.CNOT(0, 0),
		e.CNOT(-1, 1),
		e.CNOT(0, 2),
		e.Phase(1, -1),
		e.Phase(1, 2),
		e.Flip(2),
	}
	for i, err := range cases {
		if !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("case %d: want ErrInvalidDimension, got %v", i, err)
		}
	}
	if e.Key() != before {
		t.Fatalf("failed operations mutated the element")
	}
}

func TestCNOTInvolution(t *testing.T) {
	e := mustSample(t, 3, 7)
	linear, shift := e.Linear(), e.Shift()
	for i := 0; i < 2; i++ {
		if err := e.CNOT(0, 2); err != nil {
			t.Fatalf("CNOT: %v", err)
		}
	}
	if diff := cmp.Diff(linear, e.Linear()); diff != "" {
		t.Fatalf("linear part not restored (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(shift, e.Shift()); diff != "" {
		t.Fatalf("shift not restored (-want +got):\n%s", diff)
	}
}

func TestFlipInvolution(t *testing.T) {
	e := mustSample(t, 2, 11)
	shift := e.Shift()
	for i := 0; i < 2; i++ {
		if err := e.Flip(1); err != nil {
			t.Fatalf("Flip: %v", err)
		}
	}
	if diff := cmp.Diff(shift, e.Shift()); diff != "" {
		t.Fatalf("shift not restored (-want +got):\n%s", diff)
	}
}

func TestPhaseInverse(t *testing.T) {
	for _, k := range []int{1, 2, 3, 5, 7} {
		for seed := int64(0); seed < 5; seed++ {
			e := mustSample(t, 3, seed)
			before := e.Poly()
			if err := e.Phase(k, 1); err != nil {
				t.Fatalf("Phase(%d): %v", k, err)
			}
			if err := e.Phase(8-k, 1); err != nil {
				t.Fatalf("Phase(%d): %v", 8-k, err)
			}
			if !e.Poly().Equal(before) {
				t.Fatalf("k=%d seed=%d: polynomial not restored: %s vs %s", k, seed, e.Poly(), before)
			}
		}
	}
}

func TestComposeIdentityLaw(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for seed := int64(0); seed < 5; seed++ {
			e := mustSample(t, n, seed)
			id := mustIdentity(t, n)
			left, err := id.Compose(e)
			if err != nil {
				t.Fatalf("n=%d id∘e: %v", n, err)
			}
			right, err := e.Compose(id)
			if err != nil {
				t.Fatalf("n=%d e∘id: %v", n, err)
			}
			if !left.Equal(e) || !right.Equal(e) {
				t.Fatalf("n=%d seed=%d: identity law violated", n, seed)
			}
		}
	}
}

func TestComposeAssociativity(t *testing.T) {
	for n := 1; n <= 3; n++ {
		for seed := int64(0); seed < 10; seed++ {
			a := mustSample(t, n, seed)
			b := mustSample(t, n, seed+100)
			c := mustSample(t, n, seed+200)
			ab, err := a.Compose(b)
			if err != nil {
				t.Fatalf("a∘b: %v", err)
			}
			left, err := ab.Compose(c)
			if err != nil {
				t.Fatalf("(a∘b)∘c: %v", err)
			}
			bc, err := b.Compose(c)
			if err != nil {
				t.Fatalf("b∘c: %v", err)
			}
			right, err := a.Compose(bc)
			if err != nil {
				t.Fatalf("a∘(b∘c): %v", err)
			}
			if left.Key() != right.Key() {
				t.Fatalf("n=%d seed=%d: associativity violated", n, seed)
			}
		}
	}
}

// TestComposeMatchesSequentialApplication builds two elements from
// generator runs on disjoint qubits and checks that their composition
// equals applying both runs in order to a single element.
func TestComposeMatchesSequentialApplication(t *testing.T) {
	first := mustIdentity(t, 2)
	first.Phase(3, 0)
	first.Flip(0)

	second := mustIdentity(t, 2)
	second.Phase(5, 1)

	sequential := mustIdentity(t, 2)
	sequential.Phase(3, 0)
	sequential.Flip(0)
	sequential.Phase(5, 1)

	composed, err := second.Compose(first)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !composed.Equal(sequential) {
		t.Fatalf("composition mismatch:\n%s\nvs\n%s", composed, sequential)
	}

	// The mirrored orientation reads left to right.
	chained, err := first.Then(second)
	if err != nil {
		t.Fatalf("Then: %v", err)
	}
	if !chained.Equal(sequential) {
		t.Fatalf("Then mismatch:\n%s\nvs\n%s", chained, sequential)
	}
}

func TestComposeDoesNotMutateOperands(t *testing.T) {
	a := mustSample(t, 2, 3)
	b := mustSample(t, 2, 4)
	ka, kb := a.Key(), b.Key()
	if _, err := a.Compose(b); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if a.Key() != ka || b.Key() != kb {
		t.Fatalf("Compose mutated an operand")
	}
}

func TestComposeMismatchedQubits(t *testing.T) {
	a := mustIdentity(t, 2)
	b := mustIdentity(t, 3)
	if _, err := a.Compose(b); !errors.Is(err, ErrMismatchedQubits) {
		t.Fatalf("Compose: want ErrMismatchedQubits, got %v", err)
	}
	if _, err := a.Then(nil); !errors.Is(err, ErrMismatchedQubits) {
		t.Fatalf("Then(nil): want ErrMismatchedQubits, got %v", err)
	}
}

// TestComposeDropsGlobalPhase: a flip between two phase gates is the
// same element as a conjugated phase up to a global phase (X T X is
// w T^7), so composing must agree with sequential application and keep
// the constant term at zero.
func TestComposeDropsGlobalPhase(t *testing.T) {
	a := mustIdentity(t, 1)
	if err := a.Phase(1, 0); err != nil {
		t.Fatalf("Phase: %v", err)
	}
	if err := a.Flip(0); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	b := mustIdentity(t, 1)
	if err := b.Phase(1, 0); err != nil {
		t.Fatalf("Phase: %v", err)
	}

	composed, err := b.Compose(a)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	sequential := a.Clone()
	if err := sequential.Phase(1, 0); err != nil {
		t.Fatalf("Phase: %v", err)
	}
	if !composed.Equal(sequential) {
		t.Fatalf("compose differs from sequential application:\n%svs\n%s", composed, sequential)
	}
	if w0, err := composed.Poly().Term(nil); err != nil || w0 != 0 {
		t.Fatalf("composed constant term = %d (err %v), want 0", w0, err)
	}
}

func TestCloneIndependence(t *testing.T) {
	e := mustSample(t, 2, 9)
	c := e.Clone()
	if !c.Equal(e) {
		t.Fatalf("clone differs from original")
	}
	if err := c.CNOT(0, 1); err != nil {
		t.Fatalf("CNOT: %v", err)
	}
	c.Flip(0)
	if c.Equal(e) {
		t.Fatalf("mutating the clone changed the original")
	}
}
