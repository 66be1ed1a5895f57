package vdom

import "testing"

func TestMatching(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs node", nil, El("div"), false},
		{"same tag no identity", El("div"), El("div", Attrs{"class": "x"}), true},
		{"different tag", El("div"), El("span"), false},
		{"same section id", El("div", Section("a")), El("div", Section("a")), true},
		{"different section id", El("div", Section("a")), El("div", Section("b")), false},
		{"section id vs none", El("div", Section("a")), El("div"), false},
		{"same tag different key", El("li", Key("1")), El("li", Key("2")), false},
		{"empty key is a key", El("li", Key("")), El("li"), false},
		{"key wins over section id", El("li", Key("k"), Section("a")), El("li", Key("k"), Section("b")), true},
		{"key equals section id", El("li", Key("a")), El("li", Section("a")), true},
		{"numeric section id", El("div", Attrs{IdentityAttr: 3}), El("div", Attrs{IdentityAttr: "3"}), true},
		{"nil section id ignored", El("div", Attrs{IdentityAttr: nil}), El("div"), true},
		{"slot by name", Slot("a"), Slot("a", Attrs{"color": "red"}), true},
		{"slot different name", Slot("a"), Slot("b"), false},
		{"style by title", Style("t", "a{}"), Style("t", "b{}"), true},
		{"name only counts on slot", El("input", Attrs{"name": "a"}), El("input", Attrs{"name": "b"}), true},
		{"equal text", Text("a"), Text("a"), true},
		{"different text", Text("a"), Text("b"), false},
		{"number vs text", Leaf(3), Text("3"), true},
		{"nil contents", Leaf(nil), Leaf(nil), true},
		{"nil vs empty content", Leaf(nil), Text(""), false},
		{"leaf vs element", Text("div"), El("div"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matching(tt.a, tt.b); got != tt.want {
				t.Errorf("Matching() = %v, want %v", got, tt.want)
			}
			if got := Matching(tt.b, tt.a); got != tt.want {
				t.Errorf("Matching() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcherIdentityAttr(t *testing.T) {
	zero := Matcher{}
	if !zero.Match(El("div", Section("a")), El("div", Section("b"))) {
		t.Error("zero Matcher should ignore the identity attribute")
	}

	custom := Matcher{IdentityAttr: "data-id"}
	if custom.Match(El("div", Attrs{"data-id": "a"}), El("div", Attrs{"data-id": "b"})) {
		t.Error("custom Matcher should compare data-id")
	}
	if !custom.Match(Slot("x"), Slot("x")) {
		t.Error("slot fallback applies to every Matcher")
	}
}

func TestIdentify(t *testing.T) {
	id := DefaultMatcher.Identify(El("div", Section("main")))
	want := Identity{Tag: "div", Value: "main", Set: true}
	if id != want {
		t.Errorf("Identify() = %+v, want %+v", id, want)
	}

	id = DefaultMatcher.Identify(Leaf(1.5))
	want = Identity{Leaf: true, Value: "1.5", Set: true}
	if id != want {
		t.Errorf("Identify(leaf) = %+v, want %+v", id, want)
	}
}
