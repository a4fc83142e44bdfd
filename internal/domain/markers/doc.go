// Package markers holds the literal phrases teveclub.hu prints for each
// outcome (login accepted, feeding available, trick learned, ...).
//
// All response interpretation is substring matching against these phrases.
// Keeping them in one Set confines the coupling to the site's wording to a
// single place, and a site profile file can override them without a rebuild.
//
// Profile formats:
//   - YAML (.yaml, .yml)
//   - TOML (.toml)
//   - JSON (.json), including a bare list of user agents
//
// Example Usage:
//
//	profile, err := markers.LoadProfile("teveclub.yaml")
//	if markers.Contains(body, profile.Markers.LoginSuccess) { ... }
package markers
