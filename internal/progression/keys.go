package progression

// Node keys of the shipped catalog
// This file is auto-generated from catalog.json
// Do NOT edit manually - run: go generate ./internal/progression

const (
	// Floor
	NodeKeyFloor = "floor"

	// Dropper
	NodeKeyDropperBasic  = "dropper_basic"
	NodeKeyDropperSecond = "dropper_second"
	NodeKeyDropperThird  = "dropper_third"
)
