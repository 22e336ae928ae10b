package lore

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

var (
	namePrefixes = []string{"Ash", "Bel", "Cor", "Dun", "Eld", "Fen", "Gal", "Hol", "Ith", "Kel", "Lor", "Mar", "Nor", "Oak", "Pel", "Rav", "Sil", "Thorn", "Ul", "Wyn"}
	nameSuffixes = []string{"ford", "mere", "wick", "hold", "vale", "stead", "moor", "crest", "holm", "reach", "fall", "gate"}

	typeTraits = map[string][]string{
		"town":     {"market square", "timber houses", "busy well"},
		"castle":   {"curtain walls", "watchtower", "old banners"},
		"forest":   {"old growth", "hunting trails", "dense canopy"},
		"mountain": {"scree slopes", "thin air", "snow line"},
		"lake":     {"still water", "reed beds", "fishing jetties"},
		"cave":     {"narrow entrance", "dripping stone", "echoing halls"},
		"ruins":    {"fallen pillars", "faded carvings", "overgrown courtyard"},
		"camp":     {"cook fires", "canvas tents", "lookout post"},
		"oasis":    {"palm shade", "spring pool", "caravan rest"},
	}
)

// Placeholder derives stable names and flavour text from each location's
// type and position.
type Placeholder struct{}

func (Placeholder) Generate(_ context.Context, reqs []Request) ([]Entry, error) {
	out := make([]Entry, len(reqs))
	for i, r := range reqs {
		out[i] = placeholderEntry(i, r)
	}
	return out, nil
}

func placeholderEntry(i int, r Request) Entry {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%s:%.3f:%.3f", i, r.LocationType, r.Position.X, r.Position.Y)
	sum := h.Sum64()
	base := namePrefixes[sum%uint64(len(namePrefixes))] + nameSuffixes[(sum>>16)%uint64(len(nameSuffixes))]

	kind := r.LocationType
	if kind == "" {
		kind = "place"
	}
	desc := fmt.Sprintf("A %s near (%.0f, %.0f).", kind, r.Position.X, r.Position.Y)
	if r.IsInitial {
		desc = fmt.Sprintf("The %s where the journey begins.", kind)
	}
	traits := typeTraits[kind]
	if traits == nil {
		traits = []string{"quiet surroundings"}
	}
	return Entry{
		Name:               placeholderName(kind, base),
		Description:        desc,
		Appearance:         fmt.Sprintf("Known for its %s.", traits[0]),
		KeyCharacteristics: append([]string(nil), traits...),
		LoreHistory:        "Little is recorded about " + base + ".",
		Culture:            "Local customs are yet to be told.",
	}
}

func placeholderName(kind, base string) string {
	switch kind {
	case "castle":
		return "Castle " + base
	case "forest":
		return base + " Wood"
	case "mountain":
		return "Mount " + base
	case "lake":
		return "Lake " + base
	case "cave":
		return base + " Caverns"
	case "ruins":
		return "Ruins of " + base
	case "camp":
		return base + " Camp"
	case "oasis":
		return base + " Oasis"
	case "town":
		return base
	default:
		return base + " " + strings.ToUpper(kind[:1]) + kind[1:]
	}
}
