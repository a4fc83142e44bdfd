package markers

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// DefaultUserAgents is used when a profile lists none
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:137.0) Gecko/20100101 Firefox/137.0",
}

// Profile bundles the site phrases with the browser identities to present
type Profile struct {
	Markers    Set      `json:"markers" yaml:"markers" toml:"markers"`
	UserAgents []string `json:"user_agents" yaml:"user_agents" toml:"user_agents"`
}

// DefaultProfile returns the built-in profile
func DefaultProfile() *Profile {
	return &Profile{
		Markers:    Default(),
		UserAgents: append([]string(nil), DefaultUserAgents...),
	}
}

// LoadProfile reads a site profile. The format follows the file extension:
// .yaml/.yml, .toml or .json. Blank fields keep their defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return ParseProfile(filepath.Ext(path), data)
}

// ParseProfile decodes profile bytes of the given format (extension with or without dot)
func ParseProfile(format string, data []byte) (*Profile, error) {
	var raw Profile

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid yaml profile: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid toml profile: %w", err)
		}
	case "json":
		if err := parseJSON(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported profile format: %q", format)
	}

	p := &Profile{
		Markers:    raw.Markers.merge(Default()),
		UserAgents: cleanAgents(raw.UserAgents),
	}
	if len(p.UserAgents) == 0 {
		p.UserAgents = append([]string(nil), DefaultUserAgents...)
	}
	return p, nil
}

// parseJSON accepts a full profile object or a bare list of user agents
func parseJSON(data []byte, out *Profile) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var agents []string
		if err := sonic.Unmarshal(trimmed, &agents); err != nil {
			return fmt.Errorf("invalid json user agent list: %w", err)
		}
		out.UserAgents = agents
		return nil
	}

	if err := sonic.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("invalid json profile: %w", err)
	}
	return nil
}

// UserAgent picks one of the profile's user agents
func (p *Profile) UserAgent(r *rand.Rand) string {
	if len(p.UserAgents) == 0 {
		return DefaultUserAgents[0]
	}
	if r == nil {
		return p.UserAgents[rand.IntN(len(p.UserAgents))]
	}
	return p.UserAgents[r.IntN(len(p.UserAgents))]
}

func cleanAgents(agents []string) []string {
	out := make([]string, 0, len(agents))
	for _, a := range agents {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
