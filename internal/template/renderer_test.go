package template

import "testing"

func TestRender(t *testing.T) {
	t.Run("variable_substitution", func(t *testing.T) {
		got := Render("# {{projectName}} ({{projectSlug}})", map[string]string{
			"projectName": "My App",
			"projectSlug": "my-app",
		}, nil)

		want := "# My App (my-app)"
		if got != want {
			t.Errorf("Render = %q, want %q", got, want)
		}
	})

	t.Run("whitespace_inside_braces", func(t *testing.T) {
		got := Render("{{ projectName }}", map[string]string{"projectName": "x"}, nil)
		if got != "x" {
			t.Errorf("Render = %q, want %q", got, "x")
		}
	})

	t.Run("unknown_placeholder_left_verbatim", func(t *testing.T) {
		in := "hello {{mystery}} world"
		got := Render(in, map[string]string{"projectName": "x"}, nil)
		if got != in {
			t.Errorf("Render = %q, want input unchanged %q", got, in)
		}
	})

	t.Run("conditional_true_keeps_branch", func(t *testing.T) {
		got := Render("a{{#if database}}B{{/if}}c", nil, map[string]bool{"database": true})
		if got != "aBc" {
			t.Errorf("Render = %q, want %q", got, "aBc")
		}
	})

	t.Run("conditional_false_drops_branch", func(t *testing.T) {
		got := Render("a{{#if database}}B{{/if}}c", nil, map[string]bool{"database": false})
		if got != "ac" {
			t.Errorf("Render = %q, want %q", got, "ac")
		}
	})

	t.Run("conditional_unknown_flag_is_falsy", func(t *testing.T) {
		got := Render("a{{#if nope}}B{{/if}}c", nil, nil)
		if got != "ac" {
			t.Errorf("Render = %q, want %q", got, "ac")
		}
	})

	t.Run("else_branch", func(t *testing.T) {
		tmpl := "{{#if monorepo}}workspace{{else}}flat{{/if}}"

		if got := Render(tmpl, nil, map[string]bool{"monorepo": true}); got != "workspace" {
			t.Errorf("truthy Render = %q, want %q", got, "workspace")
		}
		if got := Render(tmpl, nil, map[string]bool{"monorepo": false}); got != "flat" {
			t.Errorf("falsy Render = %q, want %q", got, "flat")
		}
	})

	t.Run("multiline_conditional", func(t *testing.T) {
		tmpl := "start\n{{#if docs}}line one\nline two\n{{/if}}end\n"
		got := Render(tmpl, nil, map[string]bool{"docs": true})
		want := "start\nline one\nline two\nend\n"
		if got != want {
			t.Errorf("Render = %q, want %q", got, want)
		}
	})

	t.Run("variables_inside_conditional", func(t *testing.T) {
		tmpl := "{{#if database}}DB={{database}}{{/if}}"
		got := Render(tmpl,
			map[string]string{"database": "turso"},
			map[string]bool{"database": true})
		if got != "DB=turso" {
			t.Errorf("Render = %q, want %q", got, "DB=turso")
		}
	})

	t.Run("multiple_independent_conditionals", func(t *testing.T) {
		tmpl := "{{#if a}}A{{/if}}-{{#if b}}B{{/if}}"
		got := Render(tmpl, nil, map[string]bool{"a": true, "b": false})
		if got != "A-" {
			t.Errorf("Render = %q, want %q", got, "A-")
		}
	})

	t.Run("idempotent_on_plain_text", func(t *testing.T) {
		in := "no markup here\n"
		if got := Render(in, nil, nil); got != in {
			t.Errorf("Render = %q, want %q", got, in)
		}
	})
}
