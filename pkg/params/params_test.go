package params

import (
	"reflect"
	"testing"
)

func TestSetKeepsInsertionOrder(t *testing.T) {
	p := New().Set("id", "20").Set("width", 300).Set("theme", "dark")
	p.Set("width", 400)

	want := []string{"id", "width", "theme"}
	if got := p.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := p.String("width"); got != "400" {
		t.Errorf("String(width) = %q, want 400", got)
	}
}

func TestSetIgnoresUnsupportedTypes(t *testing.T) {
	p := New().Set("a", 1.5).Set("b", []string{"x"}).Set("c", int64(7))

	if p.Has("a") || p.Has("b") {
		t.Error("float and slice values should be ignored")
	}
	if v, _ := p.Get("c"); v != 7 {
		t.Errorf("int64 value should be stored as int, got %#v", v)
	}
}

func TestDelete(t *testing.T) {
	p := New().Set("a", "1").Set("b", "2").Set("c", "3")
	p.Delete("b")
	p.Delete("missing")

	if got := p.Keys(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Keys() after delete = %v", got)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestQuery(t *testing.T) {
	p := New().
		Set("url", "https://twitter.com/_/status/20").
		Set("hide_media", true).
		Set("maxwidth", 350).
		Set("link_color", "#E95F28")

	want := "url=https%3A%2F%2Ftwitter.com%2F_%2Fstatus%2F20&hide_media=true&maxwidth=350&link_color=%23E95F28"
	if got := p.Query(); got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}
}

func TestDataAttributes(t *testing.T) {
	p := New().Set("id", "20").Set("cards", "hidden")

	want := []Attribute{
		{Name: "data-id", Value: "20"},
		{Name: "data-cards", Value: "hidden"},
	}
	if got := p.DataAttributes(); !reflect.DeepEqual(got, want) {
		t.Errorf("DataAttributes() = %v, want %v", got, want)
	}
}

func TestNilParams(t *testing.T) {
	var p *Params

	if p.Len() != 0 || p.Has("x") || p.Keys() != nil {
		t.Error("nil Params should behave as empty")
	}
	if p.Query() != "" {
		t.Error("nil Params should encode to an empty query")
	}
	if !p.Equal(New()) {
		t.Error("nil Params should equal an empty Params")
	}
}

func TestMergeAndEqual(t *testing.T) {
	base := New().Set("omit_script", true).Set("lang", "en")
	widget := New().Set("url", "https://twitter.com/_/status/20").Set("lang", "fi")

	merged := base.Clone().Merge(widget)

	want := New().Set("omit_script", true).Set("lang", "fi").Set("url", "https://twitter.com/_/status/20")
	if !merged.Equal(want) {
		t.Errorf("merged = %q, want %q", merged.Query(), want.Query())
	}
	if base.String("lang") != "en" {
		t.Error("Clone should not share storage with the original")
	}

	reordered := New().Set("lang", "fi").Set("omit_script", true).Set("url", "https://twitter.com/_/status/20")
	if merged.Equal(reordered) {
		t.Error("Equal should be order sensitive")
	}
}

func TestNilReceiverMutators(t *testing.T) {
	var p *Params

	merged := p.Merge(New().Set("a", 1))
	if merged == nil || merged.String("a") != "1" {
		t.Errorf("Merge on nil = %v", merged)
	}

	set := p.Set("b", true)
	if set == nil || set.String("b") != "true" {
		t.Errorf("Set on nil = %v", set)
	}

	p.Delete("a")
	if p.Len() != 0 {
		t.Error("nil Params should stay empty")
	}
}
