package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	if k, ok := LookupKeyword("fn"); !ok || k != KwFn {
		t.Fatalf("expected KwFn, got %v ok=%v", k, ok)
	}
	if _, ok := LookupKeyword("not_a_keyword"); ok {
		t.Fatalf("expected lookup miss for ordinary identifier")
	}
}

func TestKindString(t *testing.T) {
	if EOF.String() != "eof" {
		t.Fatalf("unexpected EOF string: %q", EOF.String())
	}
	if Plus.String() != "token" {
		t.Fatalf("unexpected default Kind string: %q", Plus.String())
	}
}
