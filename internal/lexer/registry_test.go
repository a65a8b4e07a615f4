package lexer

import (
	"testing"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/errors"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(Family{Name: "test", Version: "1.0.0"}, wordProducer{})
	r.Register(Family{Name: "test", Version: "1.2.0"}, wordProducer{}, spaceProducer{})
	r.Register(Family{Name: "test", Version: "2.0.0"}, spaceProducer{})

	if got := len(r.Lookup(Family{Name: "test", Version: "1.2.0"})); got != 2 {
		t.Fatalf("expected 2 producers for 1.2.0, got %d", got)
	}
	if got := r.Lookup(Family{Name: "test"}); len(got) != 1 || got[0].ID() != "space" {
		t.Fatalf("unversioned lookup should pick 2.0.0, got %v", got)
	}
	mustPanic(t, errors.CodeUnregisteredFamily, func() {
		r.Lookup(Family{Name: "test", Version: "3.0.0"})
	})
	mustPanic(t, errors.CodeUnregisteredFamily, func() {
		r.Lookup(Family{Name: "other"})
	})
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(Family{Name: "theme", Version: "1.0.0"})
	r.Register(Family{Name: "theme", Version: "1.4.2"})
	r.Register(Family{Name: "theme", Version: "2.1.0"})

	tests := []struct {
		spec     string
		expected string
		fails    bool
	}{
		{"theme", "theme@2.1.0", false},
		{"theme@^1", "theme@1.4.2", false},
		{"theme@~1.0", "theme@1.0.0", false},
		{"theme@>=2", "theme@2.1.0", false},
		{"theme@^3", "", true},
		{"theme@not-a-constraint", "", true},
		{"nope", "", true},
	}

	for i, tt := range tests {
		f, err := r.ResolveSpec(tt.spec)
		if tt.fails {
			if err == nil {
				t.Errorf("tests[%d] - %q: expected an error, got %s", i, tt.spec, f)
			}
			continue
		}
		if err != nil {
			t.Errorf("tests[%d] - %q: unexpected error %v", i, tt.spec, err)
			continue
		}
		if f.String() != tt.expected {
			t.Errorf("tests[%d] - %q: expected=%s, got=%s", i, tt.spec, tt.expected, f)
		}
	}
}

func TestRegistryContract(t *testing.T) {
	r := NewRegistry()
	r.Register(Family{Name: "test", Version: "1.0.0"})

	mustPanic(t, errors.CodeDuplicateFamily, func() {
		r.Register(Family{Name: "test", Version: "1.0.0"})
	})
	mustPanic(t, errors.CodeInvalidVersion, func() {
		r.Register(Family{Name: "test", Version: "one"})
	})

	r.Lookup(Family{Name: "test"})
	mustPanic(t, errors.CodeRegistrySealed, func() {
		r.Register(Family{Name: "late", Version: "1.0.0"})
	})

	fams := r.Families()
	if len(fams) != 1 || fams[0].String() != "test@1.0.0" {
		t.Fatalf("Families() wrong: %v", fams)
	}
}
