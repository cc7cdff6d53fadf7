package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NodeKind is the structural consequence a purchasable node produces
type NodeKind int

const (
	NodeKindDropper NodeKind = iota + 1
	NodeKindFloor
)

// String returns the catalog name of the kind
func (k NodeKind) String() string {
	switch k {
	case NodeKindDropper:
		return NodeKindNameDropper
	case NodeKindFloor:
		return NodeKindNameFloor
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// ParseNodeKind parses a catalog kind name (case-insensitive)
func ParseNodeKind(s string) (NodeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case NodeKindNameDropper:
		return NodeKindDropper, nil
	case NodeKindNameFloor:
		return NodeKindFloor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNodeKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k NodeKind) MarshalText() ([]byte, error) {
	switch k {
	case NodeKindDropper, NodeKindFloor:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownNodeKind, int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *NodeKind) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PurchasableNode is a purchase zone in the world. It is Available until
// Purchased flips true, which never reverts.
type PurchasableNode struct {
	ID           string   `json:"id"`
	Key          string   `json:"key"`
	DisplayName  string   `json:"display_name"`
	Position     Point3   `json:"position"`
	Cost         int      `json:"cost"`
	Kind         NodeKind `json:"kind"`
	Tier         int      `json:"tier"`
	Purchased    bool     `json:"purchased"`
	RegisteredAt uint64   `json:"registered_at"`
	PurchasedAt  uint64   `json:"purchased_at,omitempty"`
}

// Dropper periodically spawns items onto the conveyor
type Dropper struct {
	ID                string `json:"id"`
	Position          Point3 `json:"position"`
	CooldownRemaining int    `json:"cooldown_remaining"`
	Period            int    `json:"period"`
	SourceNodeID      string `json:"source_node_id"`
}

// ItemState is the lifecycle state of a conveyor item
type ItemState string

const (
	ItemInTransit ItemState = "in_transit"
	ItemDelivered ItemState = "delivered"
)

// Item is a unit of produce travelling along the conveyor
type Item struct {
	ID        uint64    `json:"id"`
	Position  Point3    `json:"position"`
	State     ItemState `json:"state"`
	DropperID string    `json:"dropper_id"`
	SpawnedAt uint64    `json:"spawned_at"`
}

// FloorRecord is a purchased floor. Elevation = Index * floor height.
type FloorRecord struct {
	Index     int     `json:"index"`
	Elevation float64 `json:"elevation"`
}

// PlayerAgent is the avatar whose position drives proximity checks
type PlayerAgent struct {
	Position Point3  `json:"position"`
	Yaw      float64 `json:"yaw"`
}

// InputSnapshot is the movement input sampled once per tick
type InputSnapshot struct {
	Movement Vec3    `json:"movement"`
	Yaw      float64 `json:"yaw"`
}

// Counters accumulate lifetime totals for observation
type Counters struct {
	ItemsSpawned   uint64         `json:"items_spawned"`
	ItemsDelivered uint64         `json:"items_delivered"`
	Purchases      uint64         `json:"purchases"`
	Earned         map[string]int `json:"earned"`
	Spent          int            `json:"spent"`
}

// Snapshot is a point-in-time copy of everything a presentation layer renders
type Snapshot struct {
	Tick              uint64            `json:"tick"`
	Balance           int               `json:"balance"`
	FloorCount        int               `json:"floor_count"`
	Floors            []FloorRecord     `json:"floors"`
	Droppers          []Dropper         `json:"droppers"`
	Items             []Item            `json:"items"`
	Nodes             []PurchasableNode `json:"nodes"`
	PurchasedNodeIDs  []string          `json:"purchased_node_ids"`
	Player            PlayerAgent       `json:"player"`
	CooldownRemaining uint64            `json:"purchase_cooldown_remaining"`
	Counters          Counters          `json:"counters"`
}

// JSON returns the snapshot encoded as JSON
func (s Snapshot) JSON() ([]byte, error) {
	return json.Marshal(s)
}
