package modelbench

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mwiater/modelbench/internal/logging"
	"github.com/spf13/afero"
)

var persistentFlagNames = []string{"host", "repeat", "chart", "outputDir", "timeout", "logFile", "debug"}

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points the root command at a temporary config file and resets
// every persistent flag and the shared state once the test ends.
func useConfig(t *testing.T, content string) string {
	t.Helper()
	path := writeTempConfig(t, content)

	prevCfgFile := cfgFile
	prevFs := outputFs
	cfgFile = path
	outputFs = afero.NewMemMapFs()
	for _, name := range persistentFlagNames {
		resetFlag(name)
	}
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		outputFs = prevFs
		currentConfig = nil
		for _, name := range persistentFlagNames {
			resetFlag(name)
		}
		rootCmd.SetArgs([]string{})
		_ = logging.Close()
	})
	return path
}

// ollamaStub serves /api/tags, /api/ps and /api/generate.
type ollamaStub struct {
	mu       sync.Mutex
	models   []string
	loaded   []string
	response string
	requests []map[string]any
}

func newOllamaStub(t *testing.T, models ...string) (*ollamaStub, *httptest.Server) {
	t.Helper()
	stub := &ollamaStub{models: models, response: "ok"}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		entries := make([]map[string]any, 0, len(stub.models))
		for _, name := range stub.models {
			entries = append(entries, map[string]any{"name": name, "size": 1024})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"models": entries})
	})
	mux.HandleFunc("/api/ps", func(w http.ResponseWriter, r *http.Request) {
		entries := make([]map[string]any, 0, len(stub.loaded))
		for _, name := range stub.loaded {
			entries = append(entries, map[string]any{"name": name})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"models": entries})
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		stub.mu.Lock()
		stub.requests = append(stub.requests, req)
		stub.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"model": req["model"], "response": stub.response, "done": true})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return stub, server
}
