package invoices

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDirStore_Lookup(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "s1@b1.json", `{"country":"PL","currency":"PLN","seller":{"name":"ACME"}}`)
	writeConfig(t, dir, "README.md", "ignored")

	store, err := LoadDirStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 config, got %d", store.Len())
	}

	cfg, err := store.Lookup(context.Background(), "b1", "s1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if cfg.Country() != "PL" || cfg.Currency() != "PLN" {
		t.Fatalf("unexpected config: %v", cfg)
	}
}

func TestDirStore_Miss(t *testing.T) {
	store := NewDirStore(map[string]DefaultConfig{"s1@b1": {"currency": "PLN"}})

	_, err := store.Lookup(context.Background(), "s1", "b1")
	if !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestDirStore_LookupReturnsCopy(t *testing.T) {
	store := NewDirStore(map[string]DefaultConfig{
		"s1@b1": {"currency": "PLN", "seller": map[string]interface{}{"name": "ACME"}},
	})

	first, err := store.Lookup(context.Background(), "b1", "s1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	first["currency"] = "EUR"
	first["seller"].(map[string]interface{})["name"] = "changed"

	second, _ := store.Lookup(context.Background(), "b1", "s1")
	if second.Currency() != "PLN" {
		t.Fatalf("store mutated through returned config: %v", second)
	}
	if second["seller"].(map[string]interface{})["name"] != "ACME" {
		t.Fatalf("nested value mutated through returned config: %v", second)
	}
}

func TestLoadDirStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "s1@b1.json", `{"country":`)

	if _, err := LoadDirStore(dir, zap.NewNop()); err == nil {
		t.Fatal("expected parse error")
	}

	dir = t.TempDir()
	writeConfig(t, dir, "s1@b1.json", `null`)
	if _, err := LoadDirStore(dir, zap.NewNop()); err == nil {
		t.Fatal("expected error for non object config")
	}
}

func TestLoadDirStore_MissingDir(t *testing.T) {
	if _, err := LoadDirStore(filepath.Join(t.TempDir(), "nope"), zap.NewNop()); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
