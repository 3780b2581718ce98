package models

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/modelbench/internal/providers"
)

type stubInventory struct {
	records   []providers.ModelInfo
	listErr   error
	loaded    []string
	loadedErr error
}

func (s *stubInventory) ListModels(ctx context.Context) ([]providers.ModelInfo, error) {
	return s.records, s.listErr
}

func (s *stubInventory) LoadedModels(ctx context.Context) ([]string, error) {
	return s.loaded, s.loadedErr
}

func infos(names ...string) []providers.ModelInfo {
	out := make([]providers.ModelInfo, len(names))
	for i, n := range names {
		out[i] = providers.ModelInfo{Name: n}
	}
	return out
}

func TestSortedNames(t *testing.T) {
	got := SortedNames(infos("qwen3:1.7b", "gemma3:1b", "llama3.2:1b", "gemma3:1b"))
	want := []string{"gemma3:1b", "gemma3:1b", "llama3.2:1b", "qwen3:1.7b"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("SortedNames = %v, want %v", got, want)
	}

	again := SortedNames(infos(got...))
	if strings.Join(again, ",") != strings.Join(got, ",") {
		t.Fatalf("re-sort changed order: %v", again)
	}
}

func TestSortedNamesRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		var names []string
		n := r.Intn(20)
		for i := 0; i < n; i++ {
			names = append(names, string(rune('a'+r.Intn(26)))+string(rune('a'+r.Intn(26))))
		}
		got := SortedNames(infos(names...))
		if len(got) != len(names) {
			t.Fatalf("expected %d names, got %d", len(names), len(got))
		}
		if !sort.StringsAreSorted(got) {
			t.Fatalf("names not sorted: %v", got)
		}
	}
}

func TestSortedNamesEmpty(t *testing.T) {
	got := SortedNames(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFetchNames(t *testing.T) {
	inv := &stubInventory{records: infos("b", "a")}
	names, err := FetchNames(context.Background(), inv)
	if err != nil {
		t.Fatalf("FetchNames error: %v", err)
	}
	if strings.Join(names, ",") != "a,b" {
		t.Fatalf("unexpected names: %v", names)
	}

	inv = &stubInventory{listErr: providers.ErrModelSourceUnavailable}
	if _, err := FetchNames(context.Background(), inv); !errors.Is(err, providers.ErrModelSourceUnavailable) {
		t.Fatalf("expected ErrModelSourceUnavailable, got %v", err)
	}
}

func TestListModelsOutput(t *testing.T) {
	inv := &stubInventory{
		records: []providers.ModelInfo{
			{Name: "zeta", Size: 2 * 1024 * 1024 * 1024},
			{Name: "alpha", Size: 512, ModifiedAt: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
		},
		loaded: []string{"zeta"},
	}
	var buf bytes.Buffer
	if err := ListModels(context.Background(), &buf, "http://localhost:11434", inv, false); err != nil {
		t.Fatalf("ListModels error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "http://localhost:11434:") {
		t.Fatalf("expected host header, got %s", out)
	}
	if strings.Index(out, "alpha") > strings.Index(out, "zeta") {
		t.Fatalf("expected alpha before zeta, got %s", out)
	}
	if !strings.Contains(out, "zeta (CURRENTLY LOADED)") {
		t.Fatalf("expected loaded marker, got %s", out)
	}
	if !strings.Contains(out, "512 B, modified 2025-03-04") || !strings.Contains(out, "2.0 GB") {
		t.Fatalf("expected details, got %s", out)
	}
}

func TestListModelsErrors(t *testing.T) {
	inv := &stubInventory{listErr: errors.New("down")}
	if err := ListModels(context.Background(), &bytes.Buffer{}, "h", inv, false); err == nil {
		t.Fatalf("expected error")
	}

	inv = &stubInventory{loadedErr: errors.New("ps failed")}
	var buf bytes.Buffer
	if err := ListModels(context.Background(), &buf, "h", inv, false); err != nil {
		t.Fatalf("expected ps failure to be tolerated, got %v", err)
	}
	if !strings.Contains(buf.String(), "no models installed") {
		t.Fatalf("expected empty marker, got %s", buf.String())
	}
}

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		0:               "0 B",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5.0 MB",
		1300000000:      "1.2 GB",
	}
	for in, want := range cases {
		if got := FormatSize(in); got != want {
			t.Fatalf("FormatSize(%d) = %q, want %q", in, got, want)
		}
	}
}
