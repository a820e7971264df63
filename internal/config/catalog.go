package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog lists the leagues an operator cares about, read from a YAML file
// by feedctl.
type Catalog struct {
	Leagues []CatalogLeague `yaml:"leagues"`
}

type CatalogLeague struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Current bool     `yaml:"current"`
	Seasons []string `yaml:"seasons"`
}

func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var out Catalog
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	for i := range out.Leagues {
		league := &out.Leagues[i]
		league.ID = strings.TrimSpace(league.ID)
		if _, err := strconv.ParseUint(league.ID, 10, 64); err != nil {
			return Catalog{}, fmt.Errorf("catalog league %d: invalid id %q", i, league.ID)
		}
		for _, season := range league.Seasons {
			if !seasonPattern.MatchString(season) {
				return Catalog{}, fmt.Errorf("catalog league %s: invalid season %q, expected YYYY-YYYY or YYYY", league.ID, season)
			}
		}
	}
	return out, nil
}

// Targets expands every league into one entry per listed season, plus the
// current season when Current is set or no season is listed.
func (c Catalog) Targets() []WarmupLeague {
	out := make([]WarmupLeague, 0, len(c.Leagues))
	for _, league := range c.Leagues {
		if league.Current || len(league.Seasons) == 0 {
			out = append(out, WarmupLeague{LeagueID: league.ID})
		}
		for _, season := range league.Seasons {
			out = append(out, WarmupLeague{LeagueID: league.ID, Season: season})
		}
	}
	return out
}

// Find returns the catalog entry for id.
func (c Catalog) Find(id string) (CatalogLeague, bool) {
	for _, league := range c.Leagues {
		if league.ID == id {
			return league, true
		}
	}
	return CatalogLeague{}, false
}
