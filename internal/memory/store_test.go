package memory

import (
	"strings"
	"testing"
	"time"

	"github.com/memoweave/memoweave/internal/model"
)

func TestKeyStableAcrossFilenames(t *testing.T) {
	a := Key("Alice entered the garden.")
	b := Key("Alice entered the garden.")
	if a != b {
		t.Errorf("same content produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "memoweave:v1:") {
		t.Errorf("key missing version prefix: %q", a)
	}
	if c := Key("Alice entered the castle."); c == a {
		t.Error("different content produced identical keys")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(time.Minute)
	key := Key("some story")

	if _, ok := store.Get(key); ok {
		t.Fatal("empty store returned a hit")
	}

	mem := &model.EventMemory{
		Frames:  []model.EventFrame{{EventID: "event_1", Action: "entered"}},
		BuiltAt: time.Now(),
	}
	store.Put(key, mem)

	got, ok := store.Get(key)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if len(got.Frames) != 1 || got.Frames[0].Action != "entered" {
		t.Errorf("got frames %+v", got.Frames)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}

	store.Flush()
	if _, ok := store.Get(key); ok {
		t.Error("hit after Flush")
	}
}
