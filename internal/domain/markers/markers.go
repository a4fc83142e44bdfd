package markers

import "strings"

// Set holds the literal phrases the remote site emits for each outcome
type Set struct {
	LoginSuccess   string   `json:"login_success" yaml:"login_success" toml:"login_success"`
	LoginFailure   string   `json:"login_failure" yaml:"login_failure" toml:"login_failure"`
	FeedAvailable  string   `json:"feed_available" yaml:"feed_available" toml:"feed_available"`
	Satiety        []string `json:"satiety" yaml:"satiety" toml:"satiety"`
	Learned        string   `json:"learned" yaml:"learned" toml:"learned"`
	LearnExhausted string   `json:"learn_exhausted" yaml:"learn_exhausted" toml:"learn_exhausted"`
	LearnChoice    string   `json:"learn_choice" yaml:"learn_choice" toml:"learn_choice"`
}

// Default returns the phrases teveclub.hu currently uses
func Default() Set {
	return Set{
		LoginSuccess:   "Teve Legyen Veled!",
		LoginFailure:   "Hibás név vagy jelszó",
		FeedAvailable:  "Mehet!",
		Satiety:        []string{"elég jóllakott", "tele a hasa"},
		Learned:        "megtanulta",
		LearnExhausted: "Nincs több olyan trükk, amit a tevéd meg tud tanulni!",
		LearnChoice:    "Válaszd ki, hogy mit tanuljon a tevéd:",
	}
}

// merge fills blank fields of s from base
func (s Set) merge(base Set) Set {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}

	out := Set{
		LoginSuccess:   pick(s.LoginSuccess, base.LoginSuccess),
		LoginFailure:   pick(s.LoginFailure, base.LoginFailure),
		FeedAvailable:  pick(s.FeedAvailable, base.FeedAvailable),
		Satiety:        base.Satiety,
		Learned:        pick(s.Learned, base.Learned),
		LearnExhausted: pick(s.LearnExhausted, base.LearnExhausted),
		LearnChoice:    pick(s.LearnChoice, base.LearnChoice),
	}
	if len(s.Satiety) > 0 {
		out.Satiety = s.Satiety
	}
	return out
}

// Contains reports whether body carries marker. An empty marker never matches.
func Contains(body, marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(body, marker)
}

// ContainsAny reports whether body carries any of the markers
func ContainsAny(body string, markers []string) bool {
	for _, m := range markers {
		if Contains(body, m) {
			return true
		}
	}
	return false
}
