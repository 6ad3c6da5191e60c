package vdom

import "testing"

func TestText(t *testing.T) {
	node := Text("Hello, World!")

	if node.Kind != KindText {
		t.Errorf("Kind = %v, want KindText", node.Kind)
	}
	if node.Text != "Hello, World!" {
		t.Errorf("Text = %v, want 'Hello, World!'", node.Text)
	}
}

func TestTextf(t *testing.T) {
	node := Textf("Count: %d", 42)
	if node.Text != "Count: 42" {
		t.Errorf("Text = %v, want 'Count: 42'", node.Text)
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	nodes := Range(items, func(item string, i int) *VNode {
		if item == "b" {
			return nil
		}
		return Li(Key(item), item)
	})
	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
	if nodes[1].Key != "c" {
		t.Errorf("Key = %q, want c", nodes[1].Key)
	}
}

func TestWhen(t *testing.T) {
	called := false
	When(false, func() *VNode { called = true; return nil })
	if called {
		t.Error("When(false) should not call fn")
	}
	if When(true, func() *VNode { return Div() }) == nil {
		t.Error("When(true) should return the node")
	}
}
