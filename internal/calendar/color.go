package calendar

// TripColor is the neutral colour of a trip without an explicit colour.
// Trips stay muted so the subtrips inside them stand out.
const TripColor = "#374151"

// Palette is the ordered fallback list for subtrips without an explicit
// colour. The first twelve match the colour picker offered when editing a
// subtrip.
var Palette = [16]string{
	"#E31A1C", "#FF7F00", "#33A02C", "#1F78B4",
	"#6A3D9A", "#B15928", "#FB9A99", "#FDBF6F",
	"#B2DF8A", "#A6CEE3", "#CAB2D6", "#FFFF99",
	"#1B9E77", "#D95F02", "#7570B3", "#E7298A",
}

// ColorAssigner maps a (location, isTrip, ownerID) triple to a display
// colour. Explicit colours are keyed by the whole triple, so two entities
// sharing an owner id keep their own colours. It is immutable once built
// and safe for concurrent use.
type ColorAssigner struct {
	explicit map[owner]string
	byName   map[string]string
}

// NewColorAssigner indexes the explicit colours declared by trips and
// subtrips. When several entities share a location name, the first one in
// processing order (trips, then subtrips) supplies the by-name colour.
func NewColorAssigner(trips, subtrips []Span) *ColorAssigner {
	c := &ColorAssigner{
		explicit: make(map[owner]string),
		byName:   make(map[string]string),
	}
	c.index(trips, true)
	c.index(subtrips, false)
	return c
}

func (c *ColorAssigner) index(spans []Span, isTrip bool) {
	for _, s := range spans {
		if s.Color == "" {
			continue
		}
		c.explicit[owner{location: s.Location, isTrip: isTrip, ownerID: s.OwnerID}] = s.Color
		if _, ok := c.byName[s.Location]; !ok {
			c.byName[s.Location] = s.Color
		}
	}
}

// ColorFor returns the colour for a location:
//  1. the owning entity's explicit colour,
//  2. TripColor for trips,
//  3. an explicit colour declared for the same location name elsewhere,
//  4. a Palette entry picked by hashing location, kind and owner id.
func (c *ColorAssigner) ColorFor(location string, isTrip bool, ownerID string) string {
	if color, ok := c.explicit[owner{location: location, isTrip: isTrip, ownerID: ownerID}]; ok {
		return color
	}
	if isTrip {
		return TripColor
	}
	if color, ok := c.byName[location]; ok {
		return color
	}
	return Palette[paletteIndex(location+"-"+kindOf(isTrip)+"-"+ownerID)]
}

// paletteIndex hashes key with the shift-and-subtract accumulator
// hash = c + (hash<<5 - hash), wrapping at 32 bits.
func paletteIndex(key string) int {
	var h int32
	for _, r := range key {
		h = int32(r) + (h<<5 - h)
	}
	n := int64(h)
	if n < 0 {
		n = -n
	}
	return int(n % int64(len(Palette)))
}
