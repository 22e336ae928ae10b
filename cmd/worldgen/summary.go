package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	warn        = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	box         = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)
)

func summary(w *worldgen.World, base string) string {
	s := w.Stats
	var b strings.Builder
	b.WriteString(brightGreen.Render(fmt.Sprintf("World %d", w.Config.Seed)))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(dimGreen.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(green.Render(value))
		b.WriteString("\n")
	}
	row("mesh", fmt.Sprintf("%d cells, %d corners, %d edges", s.Centers, s.Corners, s.Edges))
	row("terrain", fmt.Sprintf("%d land, %d ocean, %d lakes, %d coast", s.Land, s.Ocean, s.Lakes, s.Coast))
	row("elev", fmt.Sprintf("p10 %.2f  p50 %.2f  p90 %.2f", s.ElevP10, s.ElevP50, s.ElevP90))
	row("rivers", fmt.Sprintf("%d rivers over %d edges", s.Rivers, s.RiverEdges))
	row("biomes", topBiomes(s.Biomes, 4))
	row("POIs", fmt.Sprintf("%d placed, %d routes", s.POIs, s.Routes))
	if len(s.POITypes) > 0 {
		row("kinds", topBiomes(s.POITypes, 6))
	}
	if g := w.Graph; g != nil {
		if start, ok := g.Initial(); ok {
			row("start", fmt.Sprintf("%s (%s)", start.Name, start.Type))
		}
	}
	for _, t := range w.Report.Shortfalls() {
		b.WriteString(warn.Render(fmt.Sprintf("only %d of %d %s placed", w.Report.Placed[t], w.Report.Requested[t], t.Title())))
		b.WriteString("\n")
	}
	row("files", base+".{json,geojson,png}")
	return box.Render(strings.TrimRight(b.String(), "\n"))
}

func topBiomes(counts map[string]int, n int) string {
	type kv struct {
		name  string
		count int
	}
	list := make([]kv, 0, len(counts))
	for k, v := range counts {
		list = append(list, kv{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].name < list[j].name
	})
	if len(list) > n {
		list = list[:n]
	}
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = fmt.Sprintf("%s %d", strings.ToLower(e.name), e.count)
	}
	return strings.Join(parts, ", ")
}
