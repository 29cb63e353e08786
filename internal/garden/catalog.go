package garden

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Profile is the species-level care template. It becomes a plant's
// CareProfile row at creation time.
type Profile struct {
	WaterFrequencyDays       int     `yaml:"water_frequency_days"`
	FertilizeFrequencyDays   int     `yaml:"fertilize_frequency_days"`
	PruneFrequencyDays       int     `yaml:"prune_frequency_days"`
	SunlightFrequencyDays    int     `yaml:"sunlight_frequency_days"`
	MaxHeightCm              float64 `yaml:"max_height_cm"`
	GrowthRatePercentPerWeek float64 `yaml:"growth_rate_percent_per_week"`
}

// DefaultProfile is returned for species the catalog does not know. Unknown
// species are not an error: the catalog is deliberately lenient so that new
// species added on the client keep working with sane cadences.
var DefaultProfile = Profile{
	WaterFrequencyDays:       3,
	FertilizeFrequencyDays:   14,
	PruneFrequencyDays:       30,
	SunlightFrequencyDays:    1,
	MaxHeightCm:              100,
	GrowthRatePercentPerWeek: 5,
}

//go:embed species.yaml
var speciesYAML []byte

type Catalog struct {
	profiles map[string]Profile
}

var (
	catalogOnce sync.Once
	catalog     *Catalog
	catalogErr  error
)

// DefaultCatalog parses the embedded species data once and reuses it.
func DefaultCatalog() (*Catalog, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(speciesYAML)
	})
	return catalog, catalogErr
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var doc struct {
		Species map[string]Profile `yaml:"species"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse species catalog: %w", err)
	}
	profiles := make(map[string]Profile, len(doc.Species))
	for name, p := range doc.Species {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if p.WaterFrequencyDays < 1 || p.FertilizeFrequencyDays < 1 || p.PruneFrequencyDays < 1 || p.SunlightFrequencyDays < 1 {
			return nil, fmt.Errorf("species %q: cadences must be >= 1 day", name)
		}
		if p.MaxHeightCm <= 0 || p.GrowthRatePercentPerWeek <= 0 {
			return nil, fmt.Errorf("species %q: max height and growth rate must be positive", name)
		}
		profiles[key] = p
	}
	return &Catalog{profiles: profiles}, nil
}

// Lookup is case-insensitive and falls back to DefaultProfile for unknown
// species. The second return reports whether the species was in the catalog.
func (c *Catalog) Lookup(species string) (Profile, bool) {
	if c == nil {
		return DefaultProfile, false
	}
	p, ok := c.profiles[strings.ToLower(strings.TrimSpace(species))]
	if !ok {
		return DefaultProfile, false
	}
	return p, true
}

// Species returns the known species keys.
func (c *Catalog) Species() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.profiles))
	for k := range c.profiles {
		out = append(out, k)
	}
	return out
}
