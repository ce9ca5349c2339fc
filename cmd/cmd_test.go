package cmd_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/sparqlbench/cmd"
)

// execRoot runs the root command with args and returns stdout.
func execRoot(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rc := cmd.NewRootCommand(stdin, &stdout, &stderr)
	rc.SetArgs(args)
	err := rc.Execute()

	return stdout.String(), err
}

// sparqlServer answers every query and update with a minimal valid response
// and counts updates.
type sparqlServer struct {
	*httptest.Server

	mu      sync.Mutex
	updates []string
}

func newSPARQLServer(t *testing.T) *sparqlServer {
	t.Helper()

	s := &sparqlServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/sparql-update") {
			b, _ := io.ReadAll(r.Body)
			s.mu.Lock()
			s.updates = append(s.updates, string(b))
			s.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
			return
		}

		_ = r.ParseForm()
		query := r.Form.Get("query")
		switch {
		case r.Header.Get("Accept") == "text/turtle":
			_, _ = io.WriteString(w, "<http://example.org/a> <http://example.org/b> <http://example.org/c> .\n")
		case strings.HasPrefix(query, "ASK"):
			_, _ = io.WriteString(w, `{"head":{},"boolean":true}`)
		default:
			_, _ = io.WriteString(w, `{"head":{"vars":[]},"results":{"bindings":[]}}`)
		}
	}))
	t.Cleanup(s.Close)

	return s
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execRoot(t, nil, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	for _, sub := range []string{"run", "summarize", "catalog", "libraries"} {
		assert.Contains(t, out, sub)
	}
}

func TestLibrariesCommand(t *testing.T) {
	out, err := execRoot(t, nil, "libraries")
	require.NoError(t, err)

	for _, lib := range []string{"nethttp", "nethttp_async", "retryablehttp", "resty", "fasthttp"} {
		assert.Contains(t, out, lib)
	}
	assert.Contains(t, out, "25s")
}

func TestLibrariesCommand_JSON(t *testing.T) {
	r := require.New(t)

	out, err := execRoot(t, nil, "libraries", "--json")
	r.NoError(err)

	var got []map[string]any
	r.NoError(json.Unmarshal([]byte(out), &got))
	r.Len(got, 5)

	byLibrary := make(map[string]map[string]any, len(got))
	for _, p := range got {
		byLibrary[p["library"].(string)] = p
	}
	r.Equal("5s", byLibrary["resty"]["connect_timeout"])
	r.Equal("25s", byLibrary["resty"]["read_timeout"])
	r.Equal("0s", byLibrary["resty"]["total_timeout"])
	r.Equal("30s", byLibrary["nethttp"]["total_timeout"])
	r.EqualValues(0, byLibrary["retryablehttp"]["retries"])
}

func TestCatalogCommand(t *testing.T) {
	out, err := execRoot(t, nil, "catalog", "--text")
	require.NoError(t, err)

	assert.Contains(t, out, "select_simple")
	assert.Contains(t, out, "delete_data")
	assert.Contains(t, out, "INSERT DATA")
}

func TestRunCommand(t *testing.T) {
	r := require.New(t)

	srv := newSPARQLServer(t)
	dir := t.TempDir()

	out, err := execRoot(t, nil, "run",
		"--endpoint", srv.URL+"/sparql",
		"--libraries", "nethttp,fasthttp",
		"--operations", "ask,insert_data",
		"--runs", "2",
		"--iterations", "3",
		"--seed-entities", "5",
		"--samples-out", filepath.Join(dir, "samples.csv"),
		"--summary-out", filepath.Join(dir, "summary.csv"),
		"--summary-json", filepath.Join(dir, "summary.json"),
		"--log-level", "error",
	)
	r.NoError(err)
	r.Contains(out, "Summary")
	r.Contains(out, "libraries ")

	samples, err := os.ReadFile(filepath.Join(dir, "samples.csv"))
	r.NoError(err)
	// header + 2 libraries * 2 operations * 2 runs * 3 iterations
	r.Len(strings.Split(strings.TrimSpace(string(samples)), "\n"), 25)

	summary, err := os.ReadFile(filepath.Join(dir, "summary.csv"))
	r.NoError(err)
	r.Len(strings.Split(strings.TrimSpace(string(summary)), "\n"), 5)

	_, err = os.Stat(filepath.Join(dir, "summary.json"))
	r.NoError(err)

	// clearing and seeding plus a reset after every insert_data measurement
	srv.mu.Lock()
	defer srv.mu.Unlock()
	r.Equal("CLEAR SILENT GRAPH <http://example.org/benchmark>", srv.updates[0])
	r.True(strings.HasPrefix(srv.updates[1], "INSERT DATA"))
	r.Greater(len(srv.updates), 2+2*(2*3+1))
}

func TestRunCommand_ConfigFile(t *testing.T) {
	r := require.New(t)

	srv := newSPARQLServer(t)
	dir := t.TempDir()

	config := `
runs = 1
iterations = 2
operations = ["ask"]
libraries = ["resty", "async"]
seed-entities = 0
samples-out = "` + filepath.ToSlash(filepath.Join(dir, "samples.csv")) + `"
summary-out = ""
log-level = "error"

[library.async]
endpoint = "` + srv.URL + `/sparql"
total-timeout = "5s"

[library.resty]
endpoint = "` + srv.URL + `/sparql"
pool-size = 2
`
	configPath := filepath.Join(dir, "sparqlbench.toml")
	r.NoError(os.WriteFile(configPath, []byte(config), 0o644))

	// the global endpoint points nowhere, the per library tables win
	_, err := execRoot(t, nil, "run", "--config", configPath, "--endpoint", "http://127.0.0.1:1/sparql")
	r.NoError(err)

	samples, err := os.ReadFile(filepath.Join(dir, "samples.csv"))
	r.NoError(err)
	lines := strings.Split(strings.TrimSpace(string(samples)), "\n")
	r.Len(lines, 5)
	for _, line := range lines[1:] {
		r.Contains(line, ",true,200,")
	}

	_, err = os.Stat(filepath.Join(dir, "summary.csv"))
	r.True(os.IsNotExist(err))
}

func TestRunCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sparqlbench.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("no-such-option = 1\n"), 0o644))

	_, err := execRoot(t, nil, "run", "--config", configPath)
	assert.ErrorContains(t, err, "invalid option in configuration file")
}

func TestRunCommand_UnknownLibrary(t *testing.T) {
	_, err := execRoot(t, nil, "run", "--libraries", "curl", "--seed-entities", "0")
	assert.Error(t, err)
}

func TestRunCommand_Env(t *testing.T) {
	t.Setenv("SPARQLBENCH_RUNS", "0")

	_, err := execRoot(t, nil, "run", "--libraries", "nethttp", "--seed-entities", "0")
	assert.ErrorContains(t, err, "runs must be at least 1")
}

func TestSummarizeCommand(t *testing.T) {
	r := require.New(t)

	in := "run_id,library,operation,category,run,iteration,elapsed_ms,success,status,size_bytes,error\n" +
		"abc,nethttp,ask,ASK,0,0,2,true,200,26,\n" +
		"abc,nethttp,ask,ASK,0,1,4,true,200,26,\n" +
		"abc,fasthttp,ask,ASK,0,0,1,true,200,26,\n" +
		"abc,fasthttp,ask,ASK,0,1,1,false,500,0,boom\n"

	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "summary.csv")

	out, err := execRoot(t, strings.NewReader(in), "summarize", "--summary-out", summaryPath)
	r.NoError(err)
	r.Contains(out, "run abc")
	r.Contains(out, "Fastest library per operation")

	summary, err := os.ReadFile(summaryPath)
	r.NoError(err)
	lines := strings.Split(strings.TrimSpace(string(summary)), "\n")
	r.Len(lines, 3)
	r.True(strings.HasPrefix(lines[1], "fasthttp,ask,ASK,2,1,1,0.5,2,"))
	r.True(strings.HasPrefix(lines[2], "nethttp,ask,ASK,2,2,0,1,6,"))
}
