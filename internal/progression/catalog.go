package progression

//go:generate go run ../../cmd/gen-catalog-keys -catalog ../../configs/catalog.json -output keys.go

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/logger"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// Catalog is the static unlock graph loaded at startup
type Catalog struct {
	Version string       `json:"version"`
	Nodes   []NodeConfig `json:"nodes"`
}

// NodeConfig describes one purchasable node in the catalog
type NodeConfig struct {
	Key         string        `json:"key"`
	DisplayName string        `json:"display_name,omitempty"`
	Description string        `json:"description,omitempty"`
	Kind        string        `json:"kind"` // dropper, floor
	Cost        int           `json:"cost"`
	Position    domain.Point3 `json:"position"`

	// Root nodes are Available from the first tick
	Root bool `json:"root,omitempty"`

	// Keys registered as Available once this node is purchased
	Unlocks []string `json:"unlocks,omitempty"`

	Repeat *RepeatConfig `json:"repeat,omitempty"`
}

// RepeatConfig makes a node re-register its next tier after each purchase
type RepeatConfig struct {
	Enabled    bool    `json:"enabled"`
	CostGrowth float64 `json:"cost_growth,omitempty"` // multiplier per tier, >= 1
	MaxTier    int     `json:"max_tier,omitempty"`    // 0 = unlimited
}

// Repeats reports whether the node re-registers after purchase
func (n NodeConfig) Repeats() bool {
	return n.Repeat != nil && n.Repeat.Enabled
}

// NodeKind returns the parsed kind
func (n NodeConfig) NodeKind() (domain.NodeKind, error) {
	return domain.ParseNodeKind(n.Kind)
}

// Node returns the node config for key
func (c *Catalog) Node(key string) (NodeConfig, bool) {
	for _, n := range c.Nodes {
		if n.Key == key {
			return n, true
		}
	}
	return NodeConfig{}, false
}

// Roots returns the root nodes in catalog order
func (c *Catalog) Roots() []NodeConfig {
	var roots []NodeConfig
	for _, n := range c.Nodes {
		if n.Root {
			roots = append(roots, n)
		}
	}
	return roots
}

// CatalogLoader handles loading and validating unlock catalogs
type CatalogLoader interface {
	Load(path string) (*Catalog, error)
	Validate(catalog *Catalog) error
}

type catalogLoader struct {
	schema     validation.SchemaValidator
	schemaPath string
}

// NewCatalogLoader creates a loader. A nil schema validator skips the
// JSON schema pass and relies on the graph checks alone.
func NewCatalogLoader(schema validation.SchemaValidator, schemaPath string) CatalogLoader {
	if schemaPath == "" {
		schemaPath = CatalogSchemaPath
	}
	return &catalogLoader{schema: schema, schemaPath: schemaPath}
}

// LoadCatalog reads, schema-checks and validates the catalog at path
func LoadCatalog(ctx context.Context, path string, schema validation.SchemaValidator, schemaPath string) (*Catalog, error) {
	loader := NewCatalogLoader(schema, schemaPath)
	catalog, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := loader.Validate(catalog); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		"path", path,
		"version", catalog.Version,
		"nodes", len(catalog.Nodes),
		"roots", len(catalog.Roots()))
	return catalog, nil
}

// Load reads and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadCatalog, err)
	}

	if l.schema != nil {
		if err := l.schema.ValidateBytes(data, l.schemaPath); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
		}
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseCatalog, err)
	}
	return &catalog, nil
}

// Validate checks the catalog graph
func (l *catalogLoader) Validate(catalog *Catalog) error {
	return catalog.Validate()
}

// Validate checks field ranges, key uniqueness, unlock references and
// rejects cycles in the unlock graph
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", domain.ErrInvalidCatalog)
	}
	if len(c.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes defined", domain.ErrInvalidCatalog)
	}

	nodesByKey := make(map[string]*NodeConfig, len(c.Nodes))
	roots := 0
	for i := range c.Nodes {
		node := &c.Nodes[i]

		if node.Key == "" {
			return fmt.Errorf("%w: node at index %d has empty key", domain.ErrInvalidCatalog, i)
		}
		if _, exists := nodesByKey[node.Key]; exists {
			return fmt.Errorf("%w: '%s'", domain.ErrDuplicateNodeKey, node.Key)
		}
		nodesByKey[node.Key] = node

		if _, err := node.NodeKind(); err != nil {
			return fmt.Errorf("%w: node '%s': %w", domain.ErrInvalidCatalog, node.Key, err)
		}
		if node.Cost <= 0 {
			return fmt.Errorf("%w: node '%s' has non-positive cost %d", domain.ErrInvalidCatalog, node.Key, node.Cost)
		}
		if node.Repeats() {
			if !(node.Repeat.CostGrowth >= 1) {
				return fmt.Errorf("%w: node '%s' has cost_growth %.2f, must be >= 1",
					domain.ErrInvalidCatalog, node.Key, node.Repeat.CostGrowth)
			}
			if node.Repeat.MaxTier < 0 {
				return fmt.Errorf("%w: node '%s' has negative max_tier", domain.ErrInvalidCatalog, node.Key)
			}
		}
		if node.Root {
			roots++
		}
	}

	if roots == 0 {
		return fmt.Errorf("%w: no root nodes", domain.ErrInvalidCatalog)
	}

	for _, node := range c.Nodes {
		for _, target := range node.Unlocks {
			if _, exists := nodesByKey[target]; !exists {
				return fmt.Errorf("%w: node '%s' unlocks '%s'", domain.ErrMissingUnlockTarget, node.Key, target)
			}
		}
	}

	return detectCycles(c.Nodes, nodesByKey)
}

// detectCycles runs a DFS over unlock edges
func detectCycles(nodes []NodeConfig, nodesByKey map[string]*NodeConfig) error {
	// 0 = unvisited, 1 = visiting, 2 = visited
	state := make(map[string]int, len(nodes))

	var dfs func(key string) error
	dfs = func(key string) error {
		if state[key] == 1 {
			return fmt.Errorf("%w: at node '%s'", domain.ErrCycleDetected, key)
		}
		if state[key] == 2 {
			return nil
		}

		state[key] = 1
		for _, next := range nodesByKey[key].Unlocks {
			if err := dfs(next); err != nil {
				return err
			}
		}
		state[key] = 2
		return nil
	}

	for _, node := range nodes {
		if state[node.Key] == 0 {
			if err := dfs(node.Key); err != nil {
				return err
			}
		}
	}
	return nil
}
