package invoices

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ConfigStore looks up the default configuration for a seller/buyer pair.
type ConfigStore interface {
	Lookup(ctx context.Context, buyerID, sellerID string) (DefaultConfig, error)
}

// Tag builds the composite store key "sellerId@buyerId".
func Tag(buyerID, sellerID string) string {
	return sellerID + "@" + buyerID
}

const configFileExt = ".json"

// DirStore is a read-only table of default configurations loaded from a directory, one
// "<sellerId>@<buyerId>.json" file per pair. It is populated once and never modified.
type DirStore struct {
	configs map[string]DefaultConfig
}

// NewDirStore returns a store over an in-memory table keyed by tag.
func NewDirStore(configs map[string]DefaultConfig) *DirStore {
	table := make(map[string]DefaultConfig, len(configs))
	for tag, cfg := range configs {
		table[tag] = DefaultConfig(deepCopyMap(cfg))
	}
	return &DirStore{configs: table}
}

// LoadDirStore reads every *.json file in dir. A file that is not a JSON object fails the
// whole load.
func LoadDirStore(dir string, log *zap.Logger) (*DirStore, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read config dir: %w", err)
	}

	configs := make(map[string]DefaultConfig)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != configFileExt {
			continue
		}
		tag := strings.TrimSuffix(e.Name(), configFileExt)

		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", tag, err)
		}
		var cfg DefaultConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", tag, err)
		}
		if cfg == nil {
			return nil, fmt.Errorf("parse config %s: not a JSON object", tag)
		}
		configs[tag] = cfg
	}

	log.Info("loaded invoice configurations", zap.String("dir", dir), zap.Int("count", len(configs)))
	return &DirStore{configs: configs}, nil
}

// Lookup returns a copy of the configuration stored under Tag(buyerID, sellerID), or an
// error wrapping ErrInvoiceNotFound.
func (s *DirStore) Lookup(_ context.Context, buyerID, sellerID string) (DefaultConfig, error) {
	tag := Tag(buyerID, sellerID)
	cfg, ok := s.configs[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, tag)
	}
	return DefaultConfig(deepCopyMap(cfg)), nil
}

// Len is the number of stored configurations.
func (s *DirStore) Len() int {
	return len(s.configs)
}
