package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var opsCmp = cmpopts.EquateEmpty()

func assertOps(t *testing.T, got []Operation, want ...Operation) {
	t.Helper()
	if diff := cmp.Diff(want, got, opsCmp); diff != "" {
		t.Errorf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffBothNil(t *testing.T) {
	ops := Diff(nil, nil)
	if len(ops) != 0 {
		t.Errorf("Expected 0 operations, got %d", len(ops))
	}
}

func TestDiffLeafVsElement(t *testing.T) {
	leaf := Text("aaa")
	div := El("div")

	d := NewDiffer()

	ops := d.Diff(leaf)
	assertOps(t, ops, AddOp(nil, leaf))

	ops = d.Diff(div)
	assertOps(t, ops, ReplaceOp(nil, div))

	ops = d.Diff(leaf)
	assertOps(t, ops, ReplaceOp(nil, leaf))

	ops = d.Diff(nil)
	assertOps(t, ops, RemoveOp(nil))
}

func TestDiffNonMatchingElements(t *testing.T) {
	prev := El("span", Section("aaa"))
	next := El("div", Section("aaa"))

	ops := Diff(prev, next)
	assertOps(t, ops, ReplaceOp(nil, next))
}

func TestDiffNonMatchingIgnoresAttributes(t *testing.T) {
	prev := El("span", Attrs{IdentityAttr: "x", "a": 1}, El("i"))
	next := El("div", Attrs{IdentityAttr: "x", "a": 2, "b": 3}, El("b"))

	ops := Diff(prev, next)
	if len(ops) != 1 || ops[0].Op != OpReplace || !ops[0].Path.IsRoot() {
		t.Fatalf("ops = %v, want a single root replace", ops)
	}
}

func TestDiffIdentical(t *testing.T) {
	el := El("span", Section("aaa"))
	leaf := Text("aa")

	d := NewDiffer()
	d.Diff(el)
	if ops := d.Diff(el); len(ops) != 0 {
		t.Errorf("element: expected no operations, got %v", ops)
	}

	d = NewDiffer()
	d.Diff(leaf)
	if ops := d.Diff(leaf); len(ops) != 0 {
		t.Errorf("leaf: expected no operations, got %v", ops)
	}
}

func TestDiffIdempotent(t *testing.T) {
	tree := El("ul", Attrs{"class": "list"},
		El("li", Key("a"), "one"),
		El("li", Key("b"), Attrs{"checked": true}, "two"),
		nil,
		Leaf(42),
	)

	d := NewDiffer()
	first := d.Diff(tree)
	if len(first) != 1 || first[0].Op != OpAdd {
		t.Fatalf("first diff = %v, want a single add", first)
	}
	if ops := d.Diff(tree); len(ops) != 0 {
		t.Errorf("second diff = %v, want none", ops)
	}
	if ops := d.Diff(tree.Clone()); len(ops) != 0 {
		t.Errorf("diff against an equal clone = %v, want none", ops)
	}
}

func TestDiffTextChange(t *testing.T) {
	// Leaves match only on equal content, so changed text is a remove
	// and an insert within the parent.
	prev := El("p", "Hello")
	next := El("p", "World")

	ops := Diff(prev, next)
	assertOps(t, ops,
		RemoveOp(MustParsePath("/children#0")),
		InsertOp(MustParsePath("/children#0"), next.Children[0]),
	)

	ops = Diff(Text("Hello"), Text("World"))
	assertOps(t, ops, ReplaceOp(nil, Text("World")))
}

func TestDiffAttributes(t *testing.T) {
	prev := El("span", Attrs{
		IdentityAttr: "aaa",
		"toRemove":   1,
		"toModify":   2,
		"toIgnore":   3,
	})
	next := El("span", Attrs{
		IdentityAttr: "aaa",
		"toModify":   5,
		"toIgnore":   3,
		"toAdd":      4,
	})

	ops := Diff(prev, next)
	assertOps(t, ops,
		ModifyOp(MustParsePath(".toAdd"), 4),
		ModifyOp(MustParsePath(".toModify"), 5),
		ModifyOp(MustParsePath(".toRemove"), nil),
	)
}

func TestDiffAttributeGroupsSorted(t *testing.T) {
	prev := El("div", Attrs{"z": 1, "y": 1, "c": 1, "b": 1})
	next := El("div", Attrs{"z": 2, "c": 2, "x": 0, "a": 0})

	ops := Diff(prev, next)
	var got []string
	for _, op := range ops {
		got = append(got, op.Path.String())
	}
	want := []string{".a", ".x", ".c", ".z", ".b", ".y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("attribute order (-want +got):\n%s", diff)
	}
}

func TestDiffAttributeValueEquality(t *testing.T) {
	tests := []struct {
		name       string
		prev, next any
		wantOps    int
	}{
		{"same string", "a", "a", 0},
		{"different string", "a", "b", 1},
		{"int vs int64", 3, int64(3), 0},
		{"int vs float", 3, 3.0, 0},
		{"int vs string", 3, "3", 1},
		{"large int64 differ", int64(9007199254740993), int64(9007199254740992), 1},
		{"large uint64 differ", uint64(1<<63 + 1), uint64(1 << 63), 1},
		{"int64 vs uint64", int64(9007199254740993), uint64(9007199254740993), 0},
		{"negative vs uint64", -1, uint64(1<<64 - 1), 1},
		{"bool flip", true, false, 1},
		{"equal maps", map[string]any{"a": 1}, map[string]any{"a": 1}, 0},
		{"different maps", map[string]any{"a": 1}, map[string]any{"a": 2}, 1},
		{"nil vs nil", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := Diff(El("div", Attrs{"v": tt.prev}), El("div", Attrs{"v": tt.next}))
			if len(ops) != tt.wantOps {
				t.Errorf("got %d operations (%v), want %d", len(ops), ops, tt.wantOps)
			}
		})
	}
}

func TestDiffChildrenIntroduced(t *testing.T) {
	prev := El("span")
	next := El("span", El("a"), "text", El("b"))

	ops := Diff(prev, next)
	children := MustParsePath("/children")
	assertOps(t, ops,
		AddOp(children, next.Children[0]),
		AddOp(children, next.Children[1]),
		AddOp(children, next.Children[2]),
	)
}

func TestDiffChildrenEmptied(t *testing.T) {
	prev := El("span", Leaf(3), El("a"))

	for name, next := range map[string]*Node{
		"empty":    El("span"),
		"holes":    El("span", (*Node)(nil), (*Node)(nil)),
		"explicit": {Kind: KindElement, Tag: "span", Children: []*Node{}},
	} {
		t.Run(name, func(t *testing.T) {
			ops := Diff(prev, next)
			assertOps(t, ops, RemoveOp(MustParsePath("/children")))
		})
	}
}

func TestDiffHolesIgnored(t *testing.T) {
	prev := El("div", nil, El("a"), (*Node)(nil), El("b"))
	next := El("div", El("a"), El("b"), (*Node)(nil))

	if ops := Diff(prev, next); len(ops) != 0 {
		t.Errorf("holes should not produce operations, got %v", ops)
	}

	holesOnly := El("div", (*Node)(nil), (*Node)(nil))
	ops := Diff(holesOnly, El("div", El("a")))
	assertOps(t, ops, AddOp(MustParsePath("/children"), El("a")))
}

func TestDiffMatchingElementsWithChildren(t *testing.T) {
	prev := El("span",
		El("div"),
		El("span", Attrs{"width": 3}),
		El("slot", Attrs{"name": "aaa"}),
		Leaf(3),
	)
	next := El("span",
		Text("AA"),
		El("span", Attrs{"width": 20}),
		El("div", Attrs{"height": 5}),
		El("div"),
		El("slot", Attrs{"name": "aaa", "color": "blue"}),
	)

	ops := Diff(prev, next)
	assertOps(t, ops,
		ModifyOp(MustParsePath("/children#0.height"), 5),
		ModifyOp(MustParsePath("/children#1.width"), 20),
		ModifyOp(MustParsePath("/children#2.color"), "blue"),
		RemoveOp(MustParsePath("/children#3")),
		InsertOp(MustParsePath("/children#0"), next.Children[3]),
		InsertOp(MustParsePath("/children#0"), next.Children[0]),
		MoveOp(MustParsePath("/children#3"), 1),
	)
}

func TestDiffPreviousChildMatchedOnce(t *testing.T) {
	prev := El("ul", El("li"))
	next := El("ul", El("li"), El("li"))

	ops := Diff(prev, next)
	// The second li cannot reuse the already matched one.
	assertOps(t, ops,
		InsertOp(MustParsePath("/children#0"), next.Children[1]),
		MoveOp(MustParsePath("/children#1"), 0),
	)
}

func TestDiffFirstAvailableMatch(t *testing.T) {
	prev := El("div", El("p", Attrs{"n": 1}), El("p", Attrs{"n": 2}))
	next := El("div", El("p", Attrs{"n": 2}))

	// No best-match search: the first p is kept and modified, the second removed.
	ops := Diff(prev, next)
	assertOps(t, ops,
		ModifyOp(MustParsePath("/children#0.n"), 2),
		RemoveOp(MustParsePath("/children#1")),
	)
}

func TestDiffRemovalsDescending(t *testing.T) {
	prev := El("ul", El("li", Key("a")), El("li", Key("b")), El("li", Key("c")), El("li", Key("d")))
	next := El("ul", El("li", Key("b")), El("li", Key("d")))

	ops := Diff(prev, next)
	assertOps(t, ops,
		RemoveOp(MustParsePath("/children#2")),
		RemoveOp(MustParsePath("/children#0")),
	)
}

func TestDiffRecursionUsesPreviousIndex(t *testing.T) {
	prev := El("div", El("a", Key("x")), El("b", Key("y"), Attrs{"v": 1}))
	next := El("div", El("b", Key("y"), Attrs{"v": 2}))

	ops := Diff(prev, next)
	assertOps(t, ops,
		ModifyOp(MustParsePath("/children#1.v"), 2),
		RemoveOp(MustParsePath("/children#0")),
	)
}

func TestDiffNested(t *testing.T) {
	prev := El("div", El("section", Section("s1"), El("p", "a")))
	next := El("div", El("section", Section("s1"), El("p", Attrs{"class": "x"}, "a"), El("p", "b")))

	ops := Diff(prev, next)
	assertOps(t, ops,
		ModifyOp(MustParsePath("/children#0/children#0.class"), "x"),
		InsertOp(MustParsePath("/children#0/children#0"), next.Children[0].Children[1]),
		MoveOp(MustParsePath("/children#0/children#1"), 0),
	)
}

func TestDiffAppendMoves(t *testing.T) {
	prev := El("ul", El("li", Key("a")), El("li", Key("b")))
	next := El("ul", El("li", Key("a")), El("li", Key("b")), El("li", Key("c")))

	ops := Diff(prev, next)
	assertOps(t, ops,
		InsertOp(MustParsePath("/children#0"), next.Children[2]),
		MoveOp(MustParsePath("/children#1"), 0),
		MoveOp(MustParsePath("/children#2"), 1),
	)
}

func TestDifferRetainsNewTree(t *testing.T) {
	d := NewDiffer()
	if d.Last() != nil {
		t.Fatal("new Differ should retain nothing")
	}

	a := El("div")
	d.Diff(a)
	if d.Last() != a {
		t.Error("Last() should be the tree passed to Diff")
	}

	b := El("div")
	if ops := d.Diff(b); len(ops) != 0 {
		t.Errorf("ops = %v, want none", ops)
	}
	if d.Last() != b {
		t.Error("retained tree should be replaced even when no operations result")
	}

	d.Diff(nil)
	if d.Last() != nil {
		t.Error("diffing nil should retain nil")
	}
}

func TestDifferResetAndSeed(t *testing.T) {
	tree := El("div", El("p"))

	d := NewDiffer()
	d.Seed(tree)
	if ops := d.Diff(tree.Clone()); len(ops) != 0 {
		t.Errorf("seeded Differ: ops = %v, want none", ops)
	}

	d.Reset()
	ops := d.Diff(tree)
	assertOps(t, ops, AddOp(nil, tree))
}

func TestDifferWithMatcher(t *testing.T) {
	prev := El("div", Attrs{"data-id": "1"})
	next := El("div", Attrs{"data-id": "2"})

	if ops := NewDiffer().Diff(prev); len(ops) != 1 {
		t.Fatalf("setup: %v", ops)
	}

	d := NewDiffer(WithMatcher(Matcher{IdentityAttr: "data-id"}))
	d.Diff(prev)
	ops := d.Diff(next)
	assertOps(t, ops, ReplaceOp(nil, next))

	ops = Diff(prev, next)
	assertOps(t, ops, ModifyOp(MustParsePath(".data-id"), "2"))
}
