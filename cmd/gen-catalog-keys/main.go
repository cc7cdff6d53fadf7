package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Node struct {
	Key         string `json:"key"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
}

type Catalog struct {
	Version string `json:"version"`
	Nodes   []Node `json:"nodes"`
}

// kindOrder fixes the order of the generated groups
var kindOrder = []string{"floor", "dropper"}

func main() {
	catalogPath := flag.String("catalog", "configs/catalog.json", "Path to the unlock catalog")
	outputPath := flag.String("output", "internal/progression/keys.go", "Path to output keys.go file")
	flag.Parse()

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		log.Fatalf("Failed to parse catalog: %v", err)
	}

	code, err := generateKeysFile(catalog, filepath.Base(*catalogPath))
	if err != nil {
		log.Fatalf("Failed to generate keys: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	if err := os.WriteFile(*outputPath, []byte(code), 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}

	fmt.Printf("✓ Generated %s with %d keys\n", *outputPath, len(catalog.Nodes))
}

func generateKeysFile(catalog Catalog, source string) (string, error) {
	groups := make(map[string][]Node)
	seen := make(map[string]string)
	for _, node := range catalog.Nodes {
		name := "NodeKey" + pascalCase(node.Key)
		if other, dup := seen[name]; dup {
			return "", fmt.Errorf("keys %q and %q both map to %s", other, node.Key, name)
		}
		seen[name] = node.Key
		groups[node.Kind] = append(groups[node.Kind], node)
	}

	kinds := append([]string(nil), kindOrder...)
	for kind := range groups {
		if !contains(kindOrder, kind) {
			kinds = append(kinds, kind)
		}
	}
	sort.Strings(kinds[len(kindOrder):])

	var sb strings.Builder
	sb.WriteString("package progression\n\n")
	sb.WriteString("// Node keys of the shipped catalog\n")
	fmt.Fprintf(&sb, "// This file is auto-generated from %s\n", source)
	sb.WriteString("// Do NOT edit manually - run: go generate ./internal/progression\n")
	sb.WriteString("\nconst (\n")

	first := true
	for _, kind := range kinds {
		nodes := groups[kind]
		if len(nodes) == 0 {
			continue
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Key < nodes[j].Key })

		if !first {
			sb.WriteString("\n")
		}
		first = false
		fmt.Fprintf(&sb, "\t// %s\n", pascalCase(kind))
		for _, node := range nodes {
			fmt.Fprintf(&sb, "\tNodeKey%s = %q\n", pascalCase(node.Key), node.Key)
		}
	}

	sb.WriteString(")\n")

	formatted, err := format.Source([]byte(sb.String()))
	if err != nil {
		return "", fmt.Errorf("failed to format generated code: %w", err)
	}
	return string(formatted), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// pascalCase converts dropper_basic to DropperBasic. Dashes and dots
// separate words too.
func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return result.String()
}
