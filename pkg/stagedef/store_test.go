package stagedef

import (
	"context"
	"errors"
	"testing"
)

func TestDiskStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) err = %v, want ErrNotFound", err)
	}

	if err := store.Save(ctx, "demo", []byte(sample)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := store.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Parse(data); err != nil {
		t.Errorf("stored definition does not parse: %v", err)
	}

	if err := store.Save(ctx, "alt", []byte(sample)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	names, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "alt" || names[1] != "demo" {
		t.Errorf("List = %v, want [alt demo]", names)
	}
}
