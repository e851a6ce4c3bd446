package providers

import (
	"errors"
	"testing"
)

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&stubProvider{id: IDClaude}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}

	if err := registry.Register(&stubProvider{id: IDClaude}); !errors.Is(err, ErrProviderAlreadyRegistered) {
		t.Errorf("duplicate Register() error = %v, want ErrProviderAlreadyRegistered", err)
	}

	if err := registry.Register(nil); err == nil {
		t.Error("Register(nil) should fail")
	}

	if err := registry.Register(&stubProvider{id: ID("gemini")}); err == nil {
		t.Error("Register() with unknown ID should fail")
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubProvider{id: IDOpenAI})

	provider, err := registry.Get(IDOpenAI)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if provider.ID() != IDOpenAI {
		t.Errorf("Get() returned provider %s, want %s", provider.ID(), IDOpenAI)
	}

	if _, err := registry.Get(IDDeepSeek); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrProviderNotFound", err)
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubProvider{id: IDOpenAI})
	registry.Register(&stubProvider{id: IDClaude})
	registry.Register(&stubProvider{id: IDDeepSeek})

	ids := registry.List()
	want := []ID{IDClaude, IDDeepSeek, IDOpenAI}

	if len(ids) != len(want) {
		t.Fatalf("List() returned %d providers, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}
