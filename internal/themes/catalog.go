package themes

// DefaultSeedsName is the catalog entry used when nothing else is configured
const DefaultSeedsName = "brand"

// Seeds is a named primary/surface seed pair
type Seeds struct {
	Name    string // "brand", "indigo", etc.
	Primary string // hex color #RRGGBB
	Surface string // hex color #RRGGBB
}

var catalog = map[string]*Seeds{
	"brand": {
		Name:    "brand",
		Primary: "#334155",
		Surface: "#64748b",
	},
	"slate": {
		Name:    "slate",
		Primary: "#64748b",
		Surface: "#64748b",
	},
	"indigo": {
		Name:    "indigo",
		Primary: "#4f46e5",
		Surface: "#64748b",
	},
	"rose": {
		Name:    "rose",
		Primary: "#e11d48",
		Surface: "#71717a",
	},
	"emerald": {
		Name:    "emerald",
		Primary: "#059669",
		Surface: "#64748b",
	},
	"navy": {
		Name:    "navy",
		Primary: "#000080",
		Surface: "#6b7280",
	},
	"purple": {
		Name:    "purple",
		Primary: "#a855f7",
		Surface: "#71717a",
	},
	"teal": {
		Name:    "teal",
		Primary: "#14b8a6",
		Surface: "#78716c",
	},
	"amber": {
		Name:    "amber",
		Primary: "#f59e0b",
		Surface: "#78716c",
	},
	"neutral": {
		Name:    "neutral",
		Primary: "#6b7280",
		Surface: "#737373",
	},
}

var catalogOrder = []string{
	"brand", "slate", "indigo", "rose", "emerald", "navy",
	"purple", "teal", "amber", "neutral",
}

// GetSeeds returns a catalog entry by name, or nil
func GetSeeds(name string) *Seeds {
	s, ok := catalog[name]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

// ListSeeds returns all catalog entries in order
func ListSeeds() []*Seeds {
	var seeds []*Seeds
	for _, name := range catalogOrder {
		if s := GetSeeds(name); s != nil {
			seeds = append(seeds, s)
		}
	}
	return seeds
}

// Build derives the preset for this seed pair
func (s *Seeds) Build(interp Interpolation) (*ThemePreset, error) {
	p, err := BuildThemePresetWith(s.Primary, s.Surface, interp)
	if err != nil {
		return nil, err
	}
	p.Name = s.Name
	return p, nil
}
