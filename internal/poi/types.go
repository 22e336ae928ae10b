package poi

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/worldforge/internal/geom"
)

type LocationType string

const (
	Town     LocationType = "town"
	Forest   LocationType = "forest"
	Mountain LocationType = "mountain"
	Lake     LocationType = "lake"
	Castle   LocationType = "castle"
	Cave     LocationType = "cave"
	Ruins    LocationType = "ruins"
	Camp     LocationType = "camp"
	Oasis    LocationType = "oasis"
)

// LocationTypes is the fixed placement order.
var LocationTypes = []LocationType{Town, Castle, Forest, Mountain, Lake, Cave, Ruins, Camp, Oasis}

var typeAliases = map[string]LocationType{
	"town":        Town,
	"village":     Town,
	"city":        Town,
	"forest":      Forest,
	"woods":       Forest,
	"mountain":    Mountain,
	"peak":        Mountain,
	"lake":        Lake,
	"pond":        Lake,
	"castle":      Castle,
	"fortress":    Castle,
	"keep":        Castle,
	"cave":        Cave,
	"cavern":      Cave,
	"ruins":       Ruins,
	"ruin":        Ruins,
	"camp":        Camp,
	"encampment":  Camp,
	"outpost":     Camp,
	"oasis":       Oasis,
	"desert well": Oasis,
}

// ParseLocationType resolves a type name, alias or near miss such as
// "castel". Inputs shorter than three letters only match exactly.
func ParseLocationType(s string) (LocationType, bool) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return "", false
	}
	if t, ok := typeAliases[in]; ok {
		return t, true
	}
	if len(in) < 3 {
		return "", false
	}

	aliases := make([]string, 0, len(typeAliases))
	for alias := range typeAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	best := ""
	bestDist := -1
	for _, alias := range aliases {
		dist := levenshtein.ComputeDistance(in, alias)
		if dist > levenshteinLimit(len(alias)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = alias, dist
		}
	}
	if bestDist < 0 {
		return "", false
	}
	return typeAliases[best], true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func (t LocationType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// POI is a placed location. ID is its index in Graph.Nodes.
type POI struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	Type               LocationType `json:"type"`
	Position           geom.Point   `json:"position"`
	Center             int          `json:"center"`
	Description        string       `json:"description,omitempty"`
	Appearance         string       `json:"appearance,omitempty"`
	KeyCharacteristics []string     `json:"key_characteristics,omitempty"`
	LoreHistory        string       `json:"lore_history,omitempty"`
	Culture            string       `json:"culture,omitempty"`
	Connections        []int        `json:"connections"`
	IsInitial          bool         `json:"is_initial,omitempty"`
}
