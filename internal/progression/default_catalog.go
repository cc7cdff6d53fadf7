package progression

import "github.com/osse101/Tycoon_Go/internal/domain"

// DefaultCatalog returns the built-in catalog, identical to configs/catalog.json
func DefaultCatalog() *Catalog {
	return &Catalog{
		Version: "1.0",
		Nodes: []NodeConfig{
			{
				Key:         NodeKeyFloor,
				DisplayName: "Floor",
				Description: "Stacks a new floor on the tower and moves the pad on top of it",
				Kind:        domain.NodeKindNameFloor,
				Cost:        10,
				Position:    domain.Point3{X: 5, Y: 0.01, Z: 5},
				Root:        true,
				Repeat:      &RepeatConfig{Enabled: true, CostGrowth: 1.0},
			},
			{
				Key:         NodeKeyDropperBasic,
				DisplayName: "Basic Dropper",
				Kind:        domain.NodeKindNameDropper,
				Cost:        25,
				Position:    domain.Point3{X: -6, Y: 0.01, Z: 4},
				Root:        true,
				Unlocks:     []string{NodeKeyDropperSecond},
			},
			{
				Key:         NodeKeyDropperSecond,
				DisplayName: "Second Dropper",
				Kind:        domain.NodeKindNameDropper,
				Cost:        75,
				Position:    domain.Point3{X: -3, Y: 0.01, Z: 4},
				Unlocks:     []string{NodeKeyDropperThird},
			},
			{
				Key:         NodeKeyDropperThird,
				DisplayName: "Third Dropper",
				Kind:        domain.NodeKindNameDropper,
				Cost:        200,
				Position:    domain.Point3{X: 0, Y: 0.01, Z: 4},
			},
		},
	}
}
