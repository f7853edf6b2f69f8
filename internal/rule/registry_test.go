package rule

import (
	"testing"

	"github.com/jeduden/hclmark/internal/lint"
)

// stubRule is a minimal rule for registry tests.
type stubRule struct {
	id         string
	importance int
}

func (s *stubRule) ID() string                           { return s.id }
func (s *stubRule) Name() string                         { return "stub-" + s.id }
func (s *stubRule) Description() string                  { return "stub rule" }
func (s *stubRule) Importance() int                      { return s.importance }
func (s *stubRule) Check(d *lint.Document) []lint.Finding { return nil }

func TestRegister_PreservesOrder(t *testing.T) {
	Reset()
	defer Reset()

	Register(&stubRule{id: "HM901", importance: 2})
	Register(&stubRule{id: "HM902", importance: 1})
	Register(&stubRule{id: "HM903", importance: 1})

	all := All()
	if len(all) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(all))
	}
	// Catalog order is registration order, not importance order.
	for i, want := range []string{"HM901", "HM902", "HM903"} {
		if all[i].ID() != want {
			t.Errorf("position %d: expected %s, got %s", i, want, all[i].ID())
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	Reset()
	defer Reset()

	Register(&stubRule{id: "HM901"})
	all := All()
	all[0] = nil

	if got := All(); got[0] == nil {
		t.Error("mutating All() result must not affect the registry")
	}
}

func TestByID(t *testing.T) {
	Reset()
	defer Reset()

	Register(&stubRule{id: "HM901"})

	if r := ByID("HM901"); r == nil {
		t.Error("expected to find HM901")
	}
	if r := ByID("HM999"); r != nil {
		t.Error("expected nil for unknown ID")
	}
}
