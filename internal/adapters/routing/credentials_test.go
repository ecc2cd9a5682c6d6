package routing

import "testing"

func TestGatherPrecedenceAndDedupe(t *testing.T) {
	t.Setenv(envCredentialList, "alpha, beta ,alpha")
	t.Setenv(envCredentialSingle, "gamma")

	r := NewCredentialRotator()
	r.Register("beta", "delta", "  ", "")

	got := r.Gather()
	want := []string{"alpha", "beta", "gamma", "delta"}
	if len(got) != len(want) {
		t.Fatalf("pool = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pool[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGatherDefaultsOnlyWhenEmpty(t *testing.T) {
	t.Setenv(envCredentialList, "")
	t.Setenv(envCredentialSingle, "")

	r := NewCredentialRotator()
	if got := r.Gather(); len(got) != len(defaultCredentials) {
		t.Fatalf("expected built-in defaults, got %v", got)
	}

	// Any supplied credential suppresses the defaults entirely.
	r.Register("mine")
	got := r.Gather()
	if len(got) != 1 || got[0] != "mine" {
		t.Fatalf("pool = %v, want [mine]", got)
	}
}

func TestNextCyclesInOrder(t *testing.T) {
	t.Setenv(envCredentialList, "a,b,c")
	t.Setenv(envCredentialSingle, "")

	r := NewCredentialRotator()

	want := []string{"a", "b", "c", "a", "b"}
	for i, w := range want {
		got, ok := r.Next()
		if !ok {
			t.Fatalf("draw %d: pool unexpectedly empty", i)
		}
		if got != w {
			t.Fatalf("draw %d = %q, want %q", i, got, w)
		}
	}
}
