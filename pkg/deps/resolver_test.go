package deps

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeRegistry struct {
	pkgs    map[string][]string
	failing map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func (r *fakeRegistry) Fetch(ctx context.Context, name string, refresh bool) (*Package, error) {
	r.mu.Lock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[name]++
	r.mu.Unlock()

	if r.failing[name] {
		return nil, errors.New("not found")
	}
	return &Package{Name: name, Dependencies: r.pkgs[name]}, nil
}

func TestResolve(t *testing.T) {
	reg := &fakeRegistry{pkgs: map[string][]string{
		"a": {"b", "c"},
		"b": {"c", "d"},
		"c": {"a"},
	}}

	got, err := Resolve(context.Background(), reg, []string{"a"}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := map[string][]string{
		"a": {"b", "c"},
		"b": {"c", "d"},
		"c": {"a"},
		"d": nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
	for name, n := range reg.calls {
		if n != 1 {
			t.Errorf("Fetch(%q) called %d times, want 1", name, n)
		}
	}
}

func TestResolveMaxDepth(t *testing.T) {
	reg := &fakeRegistry{pkgs: map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"d"},
	}}

	got, err := Resolve(context.Background(), reg, []string{"a"}, Options{MaxDepth: 2})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := map[string][]string{"a": {"b"}, "b": {"c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMaxNodes(t *testing.T) {
	reg := &fakeRegistry{pkgs: map[string][]string{
		"root": {"a", "b", "c", "d"},
	}}

	got, err := Resolve(context.Background(), reg, []string{"root"}, Options{MaxNodes: 3})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len(Resolve()) = %d, want 3", len(got))
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got["root"]); diff != "" {
		t.Errorf("root dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFailedFetchIsLeaf(t *testing.T) {
	reg := &fakeRegistry{
		pkgs:    map[string][]string{"a": {"gone", "b"}},
		failing: map[string]bool{"gone": true},
	}

	got, err := Resolve(context.Background(), reg, []string{"a"}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, ok := got["gone"]; ok {
		t.Error("failed package present in mapping")
	}
	if _, ok := got["b"]; !ok {
		t.Error("sibling of failed package missing from mapping")
	}
}

func TestResolveMultipleRoots(t *testing.T) {
	reg := &fakeRegistry{pkgs: map[string][]string{
		"serde": {"serde_derive"},
		"tokio": {"mio"},
	}}

	got, err := Resolve(context.Background(), reg, []string{"serde", "tokio", "serde"}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, name := range []string{"serde", "tokio", "serde_derive", "mio"} {
		if _, ok := got[name]; !ok {
			t.Errorf("mapping missing %q", name)
		}
	}
	if reg.calls["serde"] != 1 {
		t.Errorf("Fetch(serde) called %d times, want 1", reg.calls["serde"])
	}
}

func TestResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var fetched atomic.Int32
	f := fetchFunc(func(ctx context.Context, name string) (*Package, error) {
		fetched.Add(1)
		cancel()
		return nil, ctx.Err()
	})

	_, err := Resolve(ctx, f, []string{"a"}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want %v", err, context.Canceled)
	}
	if fetched.Load() != 1 {
		t.Errorf("fetched = %d, want 1", fetched.Load())
	}
}

type fetchFunc func(ctx context.Context, name string) (*Package, error)

func (f fetchFunc) Fetch(ctx context.Context, name string, _ bool) (*Package, error) {
	return f(ctx, name)
}
