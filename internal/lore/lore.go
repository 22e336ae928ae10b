package lore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/poi"
)

// Request describes one location to write lore for.
type Request struct {
	LocationType string     `json:"location_type"`
	Position     geom.Point `json:"position"`
	IsInitial    bool       `json:"is_initial_node"`
}

type Entry struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Appearance         string   `json:"appearance"`
	KeyCharacteristics []string `json:"key_characteristics"`
	LoreHistory        string   `json:"lore_history"`
	Culture            string   `json:"culture"`
}

// Generator returns one entry per request, in request order.
type Generator interface {
	Generate(ctx context.Context, reqs []Request) ([]Entry, error)
}

func Requests(g *poi.Graph) []Request {
	out := make([]Request, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		out = append(out, Request{
			LocationType: string(n.Type),
			Position:     n.Position,
			IsInitial:    n.IsInitial,
		})
	}
	return out
}

// Enrich fills the lore fields of every node. Failures from gen are logged
// and replaced by placeholder text; blank fields in a good response are
// filled the same way. It reports whether gen's output was used.
func Enrich(ctx context.Context, gen Generator, g *poi.Graph, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	reqs := Requests(g)
	if len(reqs) == 0 {
		return false
	}
	fallback, _ := Placeholder{}.Generate(ctx, reqs)

	entries := fallback
	used := false
	if gen != nil {
		got, err := gen.Generate(ctx, reqs)
		switch {
		case err != nil:
			logger.Warn("lore generation failed, using placeholders", "err", err)
		case len(got) != len(reqs):
			logger.Warn("lore generation returned wrong count, using placeholders",
				"err", fmt.Errorf("expected %d entries, got %d", len(reqs), len(got)))
		default:
			entries = got
			used = true
		}
	}

	for i := range g.Nodes {
		apply(&g.Nodes[i], entries[i], fallback[i])
	}
	return used
}

func apply(n *poi.POI, e, fb Entry) {
	n.Name = firstNonEmpty(e.Name, fb.Name)
	n.Description = firstNonEmpty(e.Description, fb.Description)
	n.Appearance = firstNonEmpty(e.Appearance, fb.Appearance)
	n.LoreHistory = firstNonEmpty(e.LoreHistory, fb.LoreHistory)
	n.Culture = firstNonEmpty(e.Culture, fb.Culture)
	n.KeyCharacteristics = e.KeyCharacteristics
	if len(n.KeyCharacteristics) == 0 {
		n.KeyCharacteristics = fb.KeyCharacteristics
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
