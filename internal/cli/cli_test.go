package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/knightpaths/pkg/cache"
	errs "github.com/matzehuels/knightpaths/pkg/errors"
	"github.com/matzehuels/knightpaths/pkg/knight"
	"github.com/matzehuels/knightpaths/pkg/observability"
	"github.com/matzehuels/knightpaths/pkg/render"
)

// isolate points the XDG directories at temp dirs and returns the cache home.
func isolate(t *testing.T) string {
	t.Helper()
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
	return cacheHome
}

// runCLI executes the root command with args and stdin, returning stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCLIContext(t, context.Background(), stdin, args...)
	return stdout, err
}

// runCLIContext is runCLI with an explicit context, also returning stderr.
func runCLIContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var logs, stdout, stderr syncBuffer

	c := New(&logs, LogInfo)
	c.In = strings.NewReader(stdin)

	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestFindWritesFiles(t *testing.T) {
	isolate(t)
	base := filepath.Join(t.TempDir(), "paths")

	out, err := runCLI(t, "", "find", "a1", "b3", "-f", "dot,json", "-o", base)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	for _, want := range []string{"Number of shortest paths: 1", "a1 -> b3", base + ".dot", base + ".json"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), `graph "Knight Paths" {`) {
		t.Errorf("unexpected dot file:\n%s", dot)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json file not written: %v", err)
	}
}

func TestFindPrompts(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "D4\n f5 \n", "find", "--no-render")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	for _, want := range []string{
		"Welcome to the Knight Path Finder!",
		"Enter the starting position (e.g., d4): ",
		"Enter the ending position (e.g., f5): ",
		"Number of shortest paths: 1",
		"d4 -> f5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFindPromptWithoutTrailingNewline(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "a1\nh8", "find", "--no-render")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out, "Number of shortest paths:") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFindPromptEOF(t *testing.T) {
	isolate(t)

	if _, err := runCLI(t, "a1\n", "find", "--no-render"); err == nil {
		t.Error("missing second square should fail")
	}
}

func TestFindInputErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
		code  errs.Code
	}{
		{"bad column", "", []string{"find", "z9", "a1"}, "Invalid coordinates entered. Use the format 'a1', 'h8', etc.", errs.ErrCodeInvalidSquare},
		{"bad rank", "", []string{"find", "a1", "a9"}, "Invalid coordinates entered. Use the format 'a1', 'h8', etc.", errs.ErrCodeInvalidSquare},
		{"swapped", "", []string{"find", "1a", "a1"}, "Invalid coordinates entered. Use the format 'a1', 'h8', etc.", errs.ErrCodeInvalidSquare},
		{"too long", "", []string{"find", "a10", "a1"}, "Invalid format. Please enter coordinates in the format (e.g., d4).", errs.ErrCodeInvalidFormat},
		{"empty prompt", "\nd4\n", []string{"find"}, "Invalid format. Please enter coordinates in the format (e.g., d4).", errs.ErrCodeInvalidFormat},
		{"non-ascii letter", "", []string{"find", "é4", "a1"}, "Invalid coordinates entered. Use the format 'a1', 'h8', etc.", errs.ErrCodeInvalidSquare},
		{"non-ascii single", "", []string{"find", "a1", "é"}, "Invalid format. Please enter coordinates in the format (e.g., d4).", errs.ErrCodeInvalidFormat},
		{"distance", "", []string{"distance", "aa", "b1"}, "Invalid coordinates entered. Use the format 'a1', 'h8', etc.", errs.ErrCodeInvalidSquare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, err := runCLI(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !Reported(err) {
				t.Errorf("input error should be reported: %v", err)
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errs.GetCode(err), tt.code)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if strings.Contains(out, "Number of shortest paths") {
				t.Error("no paths should be printed after an input error")
			}
		})
	}
}

func TestFindInvalidOptions(t *testing.T) {
	tests := [][]string{
		{"find", "a1", "b3", "-f", "gif"},
		{"find", "a1", "b3", "--engine", "sfdp2"},
		{"find", "a1", "b3", "-f", " , "},
		{"find", "a1", "b3", "-o", "out/"},
	}
	for _, args := range tests {
		isolate(t)
		_, err := runCLI(t, "", args...)
		if err == nil {
			t.Errorf("%v: expected error", args)
			continue
		}
		if Reported(err) {
			t.Errorf("%v: option errors are printed by main, not reported", args)
		}
	}
}

func TestFindPrintsPathsBeforeRendering(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := runCLIContext(t, ctx, "", "find", "a1", "b3", "-f", "dot", "-o", filepath.Join(dir, "x"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if !strings.Contains(out, "Number of shortest paths: 1") || !strings.Contains(out, "a1 -> b3") {
		t.Errorf("paths should be printed before rendering:\n%s", out)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("canceled render wrote %d files", len(entries))
	}
}

func TestFindRenderFailure(t *testing.T) {
	if render.Available() {
		t.Skip("rsvg-convert installed, pdf rendering succeeds")
	}
	isolate(t)

	out, stderr, err := runCLIContext(t, context.Background(), "", "find", "a1", "b3", "-f", "pdf", "-o", filepath.Join(t.TempDir(), "x"))
	if !errs.Is(err, errs.ErrCodeRenderFailed) {
		t.Fatalf("err = %v, want RENDER_FAILED", err)
	}
	if !strings.Contains(out, "Number of shortest paths: 1") {
		t.Errorf("paths should be printed before the render error:\n%s", out)
	}
	if !strings.Contains(stderr, "Rendering failed") {
		t.Errorf("stderr missing failure message:\n%s", stderr)
	}
}

func TestReportInputErrorPassesOtherErrors(t *testing.T) {
	var out syncBuffer
	plain := errs.New(errs.ErrCodeRenderFailed, "boom")
	if err := reportInputError(&out, plain); err != plain || Reported(err) {
		t.Errorf("reportInputError(render error) = %v, want it unchanged", err)
	}
	if out.String() != "" {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

func TestFindArgCount(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, "", "find", "a1"); err == nil {
		t.Error("a single square should be rejected")
	}
}

func TestFindNoRenderWritesNothing(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, err := runCLI(t, "", "find", "a1", "h8", "--no-render", "-o", filepath.Join(dir, "x"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Number of shortest paths: 108") {
		t.Errorf("unexpected output:\n%s", out)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("--no-render wrote %d files", len(entries))
	}
}

func TestFindUsesConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	base := filepath.Join(dir, "from_config")

	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "output = \"" + filepath.ToSlash(base) + "\"\nformats = [\"dot\"]\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "", "--config", cfgPath, "find", "c3", "c3"); err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("config output not used: %v", err)
	}

	// Flags beat the config file.
	override := filepath.Join(dir, "from_flag")
	if _, err := runCLI(t, "", "--config", cfgPath, "find", "c3", "c3", "-o", override); err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, err := os.Stat(override + ".dot"); err != nil {
		t.Errorf("flag output not used: %v", err)
	}
}

func TestBadConfigFails(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte(`engine = "nope"`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "", "--config", cfgPath, "distance", "a1", "b3"); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"distance", "a1", "h8"}, "6\n"},
		{[]string{"distance", "A1", "B3"}, "1\n"},
		{[]string{"distance", "e4", "e4"}, "0\n"},
	}
	for _, tt := range tests {
		isolate(t)
		out, err := runCLI(t, "", tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if out != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestCachePath(t *testing.T) {
	cacheHome := isolate(t)

	out, err := runCLI(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(cacheHome, "knightpaths") + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClear(t *testing.T) {
	cacheHome := isolate(t)

	out, err := runCLI(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("empty cache: %q", out)
	}

	fc, err := cache.NewFileCache(filepath.Join(cacheHome, "knightpaths"))
	if err != nil {
		t.Fatal(err)
	}
	_ = fc.Set(context.Background(), "k1", []byte("png"), time.Hour)
	_ = fc.Set(context.Background(), "k2", []byte("svg"), time.Hour)

	out, err = runCLI(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("cache clear output: %q", out)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "knightpaths") {
		t.Error("bash completion should mention the program name")
	}
}

func TestPrintPaths(t *testing.T) {
	var out syncBuffer
	printPaths(&out, knight.PathSet{})
	if out.String() != "No paths found!\n" {
		t.Errorf("empty set = %q", out.String())
	}
}

func TestPrintStats(t *testing.T) {
	var out syncBuffer
	printStats(&out, 6, 26, 41, false)
	for _, want := range []string{"6 moves", "26 squares", "41 edges"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stats line %q missing %q", out.String(), want)
		}
	}
}

func TestCacheDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "knightpaths"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}
