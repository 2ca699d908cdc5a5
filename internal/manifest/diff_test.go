package manifest

import (
	"strings"
	"testing"
)

func TestDiffLines(t *testing.T) {
	t.Run("insert_and_delete", func(t *testing.T) {
		a := []string{"one", "two", "three"}
		b := []string{"one", "2", "three"}

		edits := DiffLines(a, b)

		var inserts, deletes, equals int
		for _, e := range edits {
			switch e.Op {
			case OpInsert:
				inserts++
			case OpDelete:
				deletes++
			case OpEqual:
				equals++
			}
		}
		if inserts != 1 || deletes != 1 || equals != 2 {
			t.Errorf("edits = %+v", edits)
		}
	})

	t.Run("identical_inputs_all_equal", func(t *testing.T) {
		a := []string{"x", "y"}
		for _, e := range DiffLines(a, a) {
			if e.Op != OpEqual {
				t.Errorf("unexpected edit %+v for identical inputs", e)
			}
		}
	})

	t.Run("empty_to_content", func(t *testing.T) {
		edits := DiffLines(nil, []string{"a", "b"})
		if len(edits) != 2 || edits[0].Op != OpInsert || edits[1].Op != OpInsert {
			t.Errorf("edits = %+v", edits)
		}
	})
}

func TestUnifiedDiff(t *testing.T) {
	t.Run("identical_returns_empty", func(t *testing.T) {
		if d := UnifiedDiff("f.json", []byte("a\nb\n"), []byte("a\nb\n")); d != "" {
			t.Errorf("diff of identical content = %q", d)
		}
	})

	t.Run("renders_markers", func(t *testing.T) {
		d := UnifiedDiff("package.json", []byte("{\n  \"a\": 1\n}\n"), []byte("{\n  \"a\": 2\n}\n"))
		if !strings.Contains(d, "--- a/package.json") || !strings.Contains(d, "+++ b/package.json") {
			t.Errorf("missing headers:\n%s", d)
		}
		if !strings.Contains(d, "-  \"a\": 1") || !strings.Contains(d, "+  \"a\": 2") {
			t.Errorf("missing change lines:\n%s", d)
		}
	})
}
