package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeModels(t *testing.T, models ...string) []string {
	dir := t.TempDir()
	var names []string
	for i, src := range models {
		name := filepath.Join(dir, string(rune('a'+i))+".essence")
		if err := os.WriteFile(name, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}
	return names
}

func TestCheckFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.cli")
	defer teardown()
	//
	names := writeModels(t,
		"find x : int(1..3)\nsuch that x > 1\n",
		"find x : bool\nfind x : bool\n",
		"find y : int(1..\n",
	)
	names = append(names, filepath.Join(filepath.Dir(names[0]), "missing.essence"))
	results := checkFiles(context.Background(), names)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, failed := range []bool{false, true, true, true} {
		if results[i].name != names[i] {
			t.Errorf("%d: results out of order: %s", i, results[i].name)
		}
		if results[i].failed() != failed {
			t.Errorf("%d: expected failed=%v", i, failed)
		}
	}
	var b strings.Builder
	if n := report(&b, results, "text"); n != 3 {
		t.Errorf("expected 3 failed files, got %d", n)
	}
	out := b.String()
	for _, s := range []string{"Redeclaration of variable 'x'", "missing.essence", "ok"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected report to contain %q:\n%s", s, out)
		}
	}
}

func TestCheckCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.cli")
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := checkFiles(ctx, writeModels(t, "find b : bool\n"))
	if results[0].err == nil {
		t.Errorf("expected cancelled check to fail")
	}
}

func TestFormatModels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.cli")
	defer teardown()
	//
	names := writeModels(t, "find   x:int(1..3)\nsuch that ((x)) + (1) = 2 $ comment\n")
	var out, errs strings.Builder
	if n := formatModels(&out, &errs, checkFiles(context.Background(), names)); n != 0 {
		t.Fatalf("expected no failures, have:\n%s", errs.String())
	}
	expected := "find x : int(1..3)\nsuch that x + 1 = 2\n"
	if out.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, out.String())
	}
}

func TestYAMLAndTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.cli")
	defer teardown()
	//
	names := writeModels(t, "find x : int(1..3)\nsuch that x + 1 = 2\n", "such that y\n")
	results := checkFiles(context.Background(), names)
	var b strings.Builder
	report(&b, results[:1], "yaml")
	for _, s := range []string{"node: find", "node: Comparison", "node: Sum", "- x"} {
		if !strings.Contains(b.String(), s) {
			t.Errorf("expected YAML to contain %q:\n%s", s, b.String())
		}
	}
	b.Reset()
	report(&b, results[1:], "pretty")
	if !strings.Contains(b.String(), "Undefined variable: 'y'") {
		t.Errorf("expected diagnostics table, got\n%s", b.String())
	}
	b.Reset()
	printTokens(&b, "model", "find x $ note\n")
	for _, s := range []string{"find", `"x"`, "$ note"} {
		if !strings.Contains(b.String(), s) {
			t.Errorf("expected token table to contain %q:\n%s", s, b.String())
		}
	}
}

func TestSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.cli")
	defer teardown()
	//
	s := newSession()
	for i, x := range []struct {
		line, out, err string
	}{
		{"letting n be 4", "▶ letting n be 4", ""},
		{"eval n * 2 + 1", "▶ 9 : int", ""},
		{"find x : int(1..n)", "▶ find x : int(1..n)", ""},
		{"find x : bool", "", "Redeclaration of variable 'x'"},
		{"(1 + 2) * x", "▶ (1 + 2) * x", ""},
		{"mode + 1", "▶ mode + 1", ""},
		{"eval x", "", "not a constant"},
		{"x +", "", "Missing Expression"},
		{"tokens such that", "such that", ""},
		{"show", "find x : int(1..n)", ""},
	} {
		var out, errw strings.Builder
		s.interpret(x.line, &out, &errw)
		if x.out != "" && !strings.Contains(out.String(), x.out) {
			t.Errorf("%d: expected output %q, got %q", i, x.out, out.String())
		}
		if x.err != "" && !strings.Contains(errw.String(), x.err) {
			t.Errorf("%d: expected error %q, got %q", i, x.err, errw.String())
		}
		if x.err == "" && errw.Len() > 0 {
			t.Errorf("%d: unexpected error %q", i, errw.String())
		}
	}
}

func TestIncompleteInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.cli")
	defer teardown()
	//
	for i, x := range []struct {
		text       string
		incomplete bool
	}{
		{"find x : bool", false},
		{"find x :", true},
		{"find m : matrix indexed by [int(1..3),", true},
		{"such that x +", true},
		{"such that x + 1 = 2,", true},
		{"such that x + 1 = 2", false},
		{"letting n be", true},
		{"such that", true},
		{"mode + 1", false},
		{"such that (x /\\\n y)", false},
	} {
		if incomplete(x.text) != x.incomplete {
			t.Errorf("test %d: expected incomplete(%q) = %v", i, x.text, x.incomplete)
		}
	}
}

func TestMergeConfigFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "essence.cli")
	defer teardown()
	//
	name := filepath.Join(t.TempDir(), "essence.toml")
	conf := "format = \"yaml\"\nvalidate = false\n\n[tracing]\nlevel = \"Debug\"\n"
	if err := os.WriteFile(name, []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	k := koanf.New(".")
	if err := mergeConfigFile(k, name); err != nil {
		t.Fatal(err)
	}
	if k.String("format") != "yaml" || k.Bool("validate") {
		t.Errorf("configuration not loaded: %v", k.All())
	}
	if k.String("tracing.level") != "Debug" {
		t.Errorf("expected nested key tracing.level, have %v", k.All())
	}
	if err := mergeConfigFile(k, name+".missing"); err == nil {
		t.Errorf("expected error for missing configuration file")
	}
}
