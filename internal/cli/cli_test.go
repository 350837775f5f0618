package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/mwis/pkg/buildinfo"
	"github.com/matzehuels/mwis/pkg/cache"
	"github.com/matzehuels/mwis/pkg/config"
	"github.com/matzehuels/mwis/pkg/errors"
	"github.com/matzehuels/mwis/pkg/mis"
)

const labeledPath = `{
  "vertices": [
    {"id": "a", "weight": 2},
    {"id": "b", "weight": 10},
    {"id": "c", "weight": 2}
  ],
  "edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]
}`

const square = `{"weights": [1, 4, 1, 4], "edges": [[0, 1], [1, 2], [2, 3], [3, 0]]}`

// isolate points config and cache lookups at fresh temp directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSolveJSON(t *testing.T) {
	isolate(t)
	path := writeFile(t, "path.json", labeledPath)

	out, err := execute(t, "solve", path, "--json")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	var got solveOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Weight != 10 {
		t.Errorf("Weight = %v, want 10", got.Weight)
	}
	if !reflect.DeepEqual(got.Vertices, []int{1}) || !reflect.DeepEqual(got.Labels, []string{"b"}) {
		t.Errorf("selection = %v %v, want [1] [b]", got.Vertices, got.Labels)
	}
	if got.Cached {
		t.Error("first solve should not be cached")
	}

	out, err = execute(t, "solve", path, "--json")
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Cached {
		t.Error("second solve should come from the cache")
	}

	out, err = execute(t, "solve", path, "--json", "--refresh")
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Cached {
		t.Error("--refresh should bypass the cache")
	}
}

func TestSolveText(t *testing.T) {
	isolate(t)
	path := writeFile(t, "square.json", square)

	out, err := execute(t, "solve", path, "--no-cache")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	for _, want := range []string{"Selected 2 of 4 vertices", "8", "1, 3", "cyclic", "4 vertices"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSolveStrategyNone(t *testing.T) {
	isolate(t)
	path := writeFile(t, "square.json", square)

	_, err := execute(t, "solve", path, "--strategy", "none", "--no-cache")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("err = %v, want UNSUPPORTED", err)
	}
}

func TestSolveInvalidStrategy(t *testing.T) {
	isolate(t)
	path := writeFile(t, "square.json", square)

	_, err := execute(t, "solve", path, "--strategy", "greedy")
	if err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
}

func TestSolveMissingFile(t *testing.T) {
	isolate(t)
	_, err := execute(t, "solve", filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestConfigSuppliesDefaults(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, "config.toml", "[solver]\nstrategy = \"none\"\n\n[cache]\nbackend = \"none\"\n")
	path := writeFile(t, "square.json", square)

	_, err := execute(t, "--config", cfg, "solve", path)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("config strategy not applied: err = %v", err)
	}

	// Flags win over the file.
	if _, err := execute(t, "--config", cfg, "solve", path, "--strategy", "branch"); err != nil {
		t.Fatalf("flag did not override config: %v", err)
	}
}

func TestConfigPrefixScopesKeys(t *testing.T) {
	isolate(t)
	cfgPath := writeFile(t, "config.toml", "[cache]\nbackend = \"none\"\nprefix = \"tenant:\"\n")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	c.Config = cfg

	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if key := r.Keyer.ResultKey("h", cache.ResultKeyOpts{}); !strings.HasPrefix(key, "tenant:result:") {
		t.Errorf("ResultKey = %q, want tenant:result: prefix", key)
	}
	if key := r.Keyer.RenderKey("h", cache.RenderKeyOpts{}); !strings.HasPrefix(key, "tenant:render:") {
		t.Errorf("RenderKey = %q, want tenant:render: prefix", key)
	}
}

func TestBadConfig(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, "config.toml", "[solver]\nstrateg = \"branch\"\n")

	_, err := execute(t, "--config", cfg, "demo")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderDOT(t *testing.T) {
	isolate(t)
	path := writeFile(t, "path.json", labeledPath)
	output := filepath.Join(t.TempDir(), "out.dot")

	out, err := execute(t, "render", path, "-o", output, "--weights")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, output) {
		t.Errorf("output does not mention %s:\n%s", output, out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("not an undirected DOT graph:\n%s", dot)
	}
	if !strings.Contains(dot, "#4c9be8") {
		t.Errorf("selected vertex not highlighted:\n%s", dot)
	}
}

func TestRenderBadLayout(t *testing.T) {
	isolate(t)
	path := writeFile(t, "path.json", labeledPath)
	output := filepath.Join(t.TempDir(), "out.dot")

	_, err := execute(t, "render", path, "-o", output, "--layout", "bogus")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("no output should be written for a bad layout")
	}
}

func TestRenderTarget(t *testing.T) {
	tests := []struct {
		name, output, format string
		wantFormat, wantPath string
		wantErr              bool
	}{
		{"defaults", "", "", "svg", "g.svg", false},
		{"from extension", "x.png", "", "png", "x.png", false},
		{"flag wins", "x.out", "dot", "dot", "x.out", false},
		{"format only", "", "dot", "dot", "g.dot", false},
		{"bad extension", "x.pdf", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, path, err := renderTarget("g.json", tt.output, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if format != tt.wantFormat || path != tt.wantPath {
				t.Errorf("renderTarget = %q %q, want %q %q", format, path, tt.wantFormat, tt.wantPath)
			}
		})
	}
}

func TestDemo(t *testing.T) {
	isolate(t)

	out, err := execute(t, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	for _, want := range []string{
		"BFS traversal from 1:",
		"BFS traversal from 2:",
		"BFS traversal from 5:",
		"12 (w=1)",
		"16",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestDemoGraph(t *testing.T) {
	g, err := demoGraph()
	if err != nil {
		t.Fatalf("demoGraph: %v", err)
	}
	if g.VertexCount() != 13 || g.EdgeCount() != 11 {
		t.Fatalf("demo graph has %d vertices and %d edges", g.VertexCount(), g.EdgeCount())
	}

	res, err := mis.Solve(context.Background(), g, mis.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Weight != 16 {
		t.Errorf("Weight = %v, want 16", res.Weight)
	}
	if !mis.IsIndependent(g, res.Vertices) {
		t.Errorf("%v is not independent", res.Vertices)
	}
}

func TestCachePathAndClear(t *testing.T) {
	isolate(t)
	path := writeFile(t, "path.json", labeledPath)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	dir := strings.TrimSpace(out)
	if want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName); dir != want {
		t.Errorf("cache path = %q, want %q", dir, want)
	}

	if _, err := execute(t, "solve", path); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) == 0 {
		t.Fatal("solve left no cache entries")
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("cache not cleared: %d entries", len(entries))
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	isolate(t)
	want := filepath.Join(t.TempDir(), "results")
	cfg := writeFile(t, "config.toml", "[cache]\ndir = \""+filepath.ToSlash(want)+"\"\n")

	out, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != filepath.ToSlash(want) {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "mwis version "+buildinfo.Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != buildinfo.String()+"\n" {
		t.Errorf("version = %q, want %q", out, buildinfo.String())
	}
}
