package snapshot

import (
	"sync"
	"sync/atomic"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := jsoniter.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func TestStore_ReplaceIfChanged(t *testing.T) {
	store := NewStore(map[string]any{})

	first := decodeDoc(t, `{"matches":[{"id":1,"status":"TIMED"}]}`)
	changed, err := store.ReplaceIfChanged(first)
	if err != nil {
		t.Fatalf("replace first: %v", err)
	}
	if !changed {
		t.Fatalf("expected first snapshot to be accepted")
	}

	for i := 0; i < 3; i++ {
		same := decodeDoc(t, `{"matches":[{"status":"TIMED","id":1}]}`)
		changed, err = store.ReplaceIfChanged(same)
		if err != nil {
			t.Fatalf("replace identical: %v", err)
		}
		if changed {
			t.Fatalf("expected reordered identical snapshot to be rejected on poll %d", i)
		}
	}

	next := decodeDoc(t, `{"matches":[{"id":1,"status":"IN_PLAY"}]}`)
	changed, err = store.ReplaceIfChanged(next)
	if err != nil {
		t.Fatalf("replace next: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed snapshot to be accepted")
	}

	entry := store.Entry()
	if entry.Version != 2 {
		t.Fatalf("expected version 2, got %d", entry.Version)
	}
	matches, _ := entry.Value["matches"].([]any)
	if len(matches) != 1 || matches[0].(map[string]any)["status"] != "IN_PLAY" {
		t.Fatalf("unexpected stored value: %#v", entry.Value)
	}
}

func TestStore_FirstReplaceAcceptedEvenWhenEqualToInitial(t *testing.T) {
	store := NewStore([]int{})
	changed, err := store.ReplaceIfChanged([]int{})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !changed {
		t.Fatalf("expected the first successful poll to be accepted")
	}
}

type keyedState struct {
	Doc     map[string]any
	Derived []int
}

func (k keyedState) SnapshotKey() any { return k.Doc }

func TestStore_KeyedValuesCompareByKey(t *testing.T) {
	store := NewStore(keyedState{})

	if changed, _ := store.ReplaceIfChanged(keyedState{Doc: map[string]any{"a": 1}, Derived: []int{1}}); !changed {
		t.Fatalf("expected first keyed value to be accepted")
	}
	if changed, _ := store.ReplaceIfChanged(keyedState{Doc: map[string]any{"a": 1}, Derived: []int{2}}); changed {
		t.Fatalf("expected derived-only change to be ignored")
	}
	if got := store.Get().Derived; len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected original derived value to be kept, got %v", got)
	}
	if changed, _ := store.ReplaceIfChanged(keyedState{Doc: map[string]any{"a": 2}}); !changed {
		t.Fatalf("expected key change to be accepted")
	}
}

func TestStore_Differs(t *testing.T) {
	store := NewStore(map[string]any{})
	if differs, _ := store.Differs(map[string]any{}); !differs {
		t.Fatalf("expected an empty store to accept anything")
	}
	if _, err := store.ReplaceIfChanged(map[string]any{"a": 1}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if differs, _ := store.Differs(map[string]any{"a": 1}); differs {
		t.Fatalf("expected identical value not to differ")
	}
	if differs, _ := store.Differs(map[string]any{"a": 2}); !differs {
		t.Fatalf("expected changed value to differ")
	}
	if store.Entry().Version != 1 {
		t.Fatalf("expected Differs to leave the store untouched")
	}
}

func TestETag(t *testing.T) {
	a := ETag([]byte(`{"a":1}`))
	if a != ETag([]byte(`{"a":1}`)) {
		t.Fatalf("expected stable etag")
	}
	if a == ETag([]byte(`{"a":2}`)) {
		t.Fatalf("expected etag to change with content")
	}
	if len(a) != 18 || a[0] != '"' || a[17] != '"' {
		t.Fatalf("expected quoted 16 hex digit etag, got %s", a)
	}
}

func TestStore_ConcurrentReadersAndWriter(t *testing.T) {
	store := NewStore(map[string]any{"n": 0})

	var accepted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				entry := store.Entry()
				if _, ok := entry.Value["n"]; !ok {
					t.Errorf("reader observed a partial value: %#v", entry.Value)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		for j := 0; j < 100; j++ {
			changed, err := store.ReplaceIfChanged(map[string]any{"n": j % 10})
			if err != nil {
				t.Errorf("replace: %v", err)
				return
			}
			if changed {
				accepted.Add(1)
			}
		}
	}()

	close(start)
	wg.Wait()

	if accepted.Load() != 100 {
		t.Fatalf("expected every distinct consecutive value to be accepted, got %d", accepted.Load())
	}
}

func TestEqual(t *testing.T) {
	equal, err := Equal(
		decodeDoc(t, `{"a":{"x":1,"y":[1,2]},"b":null}`),
		decodeDoc(t, `{"b":null,"a":{"y":[1,2],"x":1}}`),
	)
	if err != nil {
		t.Fatalf("equal: %v", err)
	}
	if !equal {
		t.Fatalf("expected documents to be equal")
	}

	equal, err = Equal([]int{1, 2}, []int{2, 1})
	if err != nil {
		t.Fatalf("equal: %v", err)
	}
	if equal {
		t.Fatalf("expected list order to matter")
	}
}
