// Package hud renders the heads-up display text shown over the game view.
package hud

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/Tycoon_Go/internal/domain"
)

const (
	formatSummary  = "Money: %d / Floors: %d"
	formatNode     = "%s (tier %d): %d"
	formatCooldown = "Purchase cooldown: %d ticks"
)

// View is the HUD in structured form
type View struct {
	Text     string   `json:"text"`
	Lines    []string `json:"lines"`
	Money    int      `json:"money"`
	Floors   int      `json:"floors"`
	Cooldown uint64   `json:"purchase_cooldown_remaining"`
}

// Formatter renders snapshots with locale-aware digit grouping
type Formatter struct {
	tag language.Tag

	mu      sync.Mutex
	printer *message.Printer
}

// NewFormatter creates a formatter for the given language
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Summary returns the one-line HUD, e.g. "Money: 1,250 / Floors: 3"
func (f *Formatter) Summary(snap domain.Snapshot) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.printer.Sprintf(formatSummary, snap.Balance, snap.FloorCount)
}

// Render returns the summary followed by the nodes the player can buy
func (f *Formatter) Render(snap domain.Snapshot) View {
	summary := f.Summary(snap)
	title := cases.Title(f.tag)
	lines := []string{summary}

	f.mu.Lock()
	for _, node := range snap.Nodes {
		if node.Purchased {
			continue
		}
		name := node.DisplayName
		if name == "" {
			name = title.String(node.Kind.String())
		}
		lines = append(lines, f.printer.Sprintf(formatNode, name, node.Tier, node.Cost))
	}
	if snap.CooldownRemaining > 0 {
		lines = append(lines, f.printer.Sprintf(formatCooldown, snap.CooldownRemaining))
	}
	f.mu.Unlock()

	return View{
		Text:     summary,
		Lines:    lines,
		Money:    snap.Balance,
		Floors:   snap.FloorCount,
		Cooldown: snap.CooldownRemaining,
	}
}
