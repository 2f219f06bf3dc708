package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func TestRunInitialState(t *testing.T) {
	var seen State
	p := New("probe", func(s State) State {
		seen = s
		return s
	})

	p.Run("input")

	if seen.Index != 0 || seen.Result != nil || seen.Err != nil {
		t.Errorf("expected zero initial state, got %+v", seen)
	}
	if seen.Input() != "input" {
		t.Errorf("expected input %q, got %q", "input", seen.Input())
	}
}

func TestMap(t *testing.T) {
	upper := Letters.Map(func(v any) any { return strings.ToUpper(v.(string)) })

	st := upper.Run("abc1")
	if st.IsError() {
		t.Fatalf("unexpected error: %v", st.Err)
	}
	if st.Result != "ABC" {
		t.Errorf("expected %q, got %v", "ABC", st.Result)
	}
	if st.Index != 3 {
		t.Errorf("expected index 3, got %d", st.Index)
	}
}

func TestMapNotCalledOnError(t *testing.T) {
	called := false
	p := Digits.Map(func(v any) any {
		called = true
		return v
	})

	st := p.Run("abc")
	if !st.IsError() {
		t.Fatal("expected error")
	}
	if called {
		t.Error("expected map function not to be called")
	}
}

func TestMapComposition(t *testing.T) {
	f := func(v any) any { return len(v.(string)) }
	g := func(v any) any { return v.(int) * 2 }

	chained := Letters.Map(f).Map(g)
	fused := Letters.Map(func(v any) any { return g(f(v)) })

	for _, in := range []string{"", "abc", "abc123", "123", "Zz"} {
		a, b := chained.Run(in), fused.Run(in)
		if a.Index != b.Index || a.Result != b.Result || a.IsError() != b.IsError() {
			t.Errorf("input %q: %+v != %+v", in, a, b)
		}
	}
}

func TestChain(t *testing.T) {
	// N:xxxxx takes exactly N letters after the colon.
	sized := SequenceOf(Digits, Str(":")).Chain(func(v any) Parser {
		n, _ := strconv.Atoi(v.([]any)[0].(string))
		return New("take", func(s State) State {
			rest := s.Remaining()
			if len(rest) < n {
				return s.Fail(Errorf(s.Index, "need %d characters", n))
			}
			return s.Advance(n, rest[:n])
		})
	})

	st := sized.Run("3:abcdef")
	if st.IsError() {
		t.Fatalf("unexpected error: %v", st.Err)
	}
	if st.Result != "abc" {
		t.Errorf("expected %q, got %v", "abc", st.Result)
	}
	if st.Index != 5 {
		t.Errorf("expected index 5, got %d", st.Index)
	}

	st = sized.Run("9:abc")
	if !st.IsError() {
		t.Fatal("expected error")
	}
	if st.Err.Error() != "need 9 characters" {
		t.Errorf("unexpected message %q", st.Err.Error())
	}
}

func TestChainShortCircuits(t *testing.T) {
	called := false
	p := Digits.Chain(func(any) Parser {
		called = true
		return Succeed(nil)
	})

	st := p.Run("x")
	if !st.IsError() {
		t.Fatal("expected error")
	}
	if called {
		t.Error("expected continuation not to be called")
	}
}

func TestErrorMap(t *testing.T) {
	p := Digits.ErrorMap(func(err error, index int) error {
		return fmt.Errorf("expected a number at %d: %w", index, err)
	})

	st := p.Run("abc")
	if !st.IsError() {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(st.Err.Error(), "expected a number at 0: ") {
		t.Errorf("unexpected message %q", st.Err.Error())
	}
	var perr *Error
	if !errors.As(st.Err, &perr) || perr.Op != "digits" {
		t.Errorf("expected wrapped digits error, got %v", st.Err)
	}

	st = p.Run("42")
	if st.IsError() || st.Result != "42" {
		t.Errorf("expected success to pass through, got %+v", st)
	}
}

func TestErrorMapNeverClearsError(t *testing.T) {
	p := Digits.ErrorMap(func(error, int) error { return nil })

	st := p.Run("abc")
	if !st.IsError() {
		t.Fatal("expected error to survive a nil rewrite")
	}
}

func TestSucceedAndFail(t *testing.T) {
	st := Succeed(7).Run("abc")
	if st.IsError() || st.Result != 7 || st.Index != 0 {
		t.Errorf("unexpected state %+v", st)
	}

	boom := errors.New("boom")
	st = Fail(boom).Run("abc")
	if st.Err != boom || st.Index != 0 {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestLazyRecursion(t *testing.T) {
	// nested := "(" nested ")" | letters
	var nested Parser
	nested = Lazy(func() Parser {
		return Choice(Between(Str("("), Str(")"))(nested), Letters)
	})

	st := nested.Run("(((deep)))")
	if st.IsError() {
		t.Fatalf("unexpected error: %v", st.Err)
	}
	if st.Result != "deep" {
		t.Errorf("expected %q, got %v", "deep", st.Result)
	}
	if st.Index != 10 {
		t.Errorf("expected index 10, got %d", st.Index)
	}
}

func TestConcurrentRuns(t *testing.T) {
	p := SequenceOf(Digits, Str("d"), Digits)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := fmt.Sprintf("%dd%d", i, i+1)
			st := p.Run(in)
			if st.IsError() {
				errs <- st.Err
				return
			}
			if st.Index != len(in) {
				errs <- fmt.Errorf("input %q: index %d", in, st.Index)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
