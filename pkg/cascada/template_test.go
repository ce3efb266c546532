package cascada

import (
	"errors"
	"testing"
)

func TestRenderMapSource(t *testing.T) {
	out, used, err := render("color: <c>; width: <w>px;", SourceMap{"c": "red", "w": 40}, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "color: red; width: 40px;" {
		t.Errorf("unexpected output: %q", out)
	}
	if len(used) != 2 {
		t.Fatalf("expected 2 used params, got %d", len(used))
	}
	if used[0].Name != "c" || used[0].Value != "red" {
		t.Errorf("used[0] = %+v", used[0])
	}
	if used[1].Name != "w" || used[1].Value != "40" {
		t.Errorf("used[1] = %+v", used[1])
	}
}

func TestRenderParamFallback(t *testing.T) {
	out, _, err := render("margin: <m>;", SourceMap{}, Params{"m": "1rem"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "margin: 1rem;" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderFuncSource(t *testing.T) {
	src := SourceFunc(func(name string) any { return "val-" + name })
	out, _, err := render("<a> <b>", src, Params{"a": "shadowed"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	// A callable source is authoritative; params never shadow it.
	if out != "val-a val-b" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderCallableValues(t *testing.T) {
	inner := func() any { return 12 }
	outer := func() any { return inner }
	out, used, err := render("padding: <p>px;", SourceMap{"p": outer}, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "padding: 12px;" {
		t.Errorf("unexpected output: %q", out)
	}
	if used[0].Value != "12" {
		t.Errorf("used value = %q, want resolved primitive", used[0].Value)
	}
}

func TestRenderResolverCapability(t *testing.T) {
	// func(Resolver) any receives the engine's own resolver and may recurse
	// through further callables with it.
	v := func(resolve Resolver) any {
		r, err := resolve(func() any { return "deep" })
		if err != nil {
			t.Fatalf("resolver failed: %v", err)
		}
		return r
	}
	out, _, err := render("content: <x>;", SourceMap{"x": v}, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "content: deep;" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderFirstOccurrenceOrder(t *testing.T) {
	_, used, err := render("<b> <a> <b>", SourceMap{"a": 1, "b": 2}, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(used) != 2 || used[0].Name != "b" || used[1].Name != "a" {
		t.Errorf("used order = %+v, want b then a, each once", used)
	}
}

func TestRenderEmptyPlaceholderSurvives(t *testing.T) {
	out, used, err := render("@keyframes <> { } .<> { animation: <>; }", SourceMap{}, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "@keyframes <> { } .<> { animation: <>; }" {
		t.Errorf("empty placeholders must pass through, got %q", out)
	}
	if len(used) != 0 {
		t.Errorf("empty placeholder must not record a used param, got %+v", used)
	}
}

func TestRenderLiteralAngleBrackets(t *testing.T) {
	// '<' with whitespace, nesting, or no closer is plain text.
	for _, tmpl := range []string{"a < b", "a <x", "a <<c>"} {
		if tmpl == "a <<c>" {
			out, _, err := render(tmpl, SourceMap{"c": "v"}, nil)
			if err != nil {
				t.Fatalf("render(%q) failed: %v", tmpl, err)
			}
			if out != "a <v" {
				t.Errorf("render(%q) = %q, want first '<' literal", tmpl, out)
			}
			continue
		}
		out, _, err := render(tmpl, SourceMap{}, nil)
		if err != nil {
			t.Fatalf("render(%q) failed: %v", tmpl, err)
		}
		if out != tmpl {
			t.Errorf("render(%q) = %q, want unchanged", tmpl, out)
		}
	}
}

func TestRenderUnresolved(t *testing.T) {
	_, _, err := render("color: <missing>;", SourceMap{}, nil)
	if !errors.Is(err, ErrPlaceholderUnresolved) {
		t.Errorf("expected ErrPlaceholderUnresolved, got %v", err)
	}

	_, _, err = render("color: <c>;", SourceMap{"c": []string{"no"}}, nil)
	if !errors.Is(err, ErrPlaceholderUnresolved) {
		t.Errorf("expected ErrPlaceholderUnresolved for non-primitive, got %v", err)
	}
}
