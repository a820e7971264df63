// Package livestats decodes the pipe delimited live statistics string found in
// the live and today match feeds, for example
// "ICorner=home:5,away:3|IPosession=home:55,away:45".
package livestats

import (
	"regexp"
	"strconv"
	"strings"
)

// JunkMarkers truncate the raw string at the first occurrence of any marker.
// The feed appends a nested structure after these markers that is not part of
// the stat list.
var JunkMarkers = []string{",16:{"}

var homeAwayPattern = regexp.MustCompile(`home:(\d+).*away:(\d+)`)

// Decode parses a raw live stats string. It never fails: malformed pairs are
// dropped and malformed values decode to {0,0}.
func Decode(raw string) Stats {
	out := Stats{}

	cleaned := stripJunk(raw)
	if cleaned == "" {
		return out
	}

	for _, pair := range strings.Split(cleaned, "|") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = normalizeKey(key)
		if key == "" {
			continue
		}
		out[key] = decodeValue(strings.TrimSpace(value))
	}

	return out
}

func stripJunk(raw string) string {
	for _, marker := range JunkMarkers {
		if idx := strings.Index(raw, marker); idx >= 0 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimRight(raw, "|")
	raw = strings.TrimRight(raw, "}")
	return raw
}

// normalizeKey removes every upper case I (the feed prefixes keys with it) and lower cases the rest.
func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "I", ""))
}

func decodeValue(value string) Value {
	if strings.Contains(value, "home:") && strings.Contains(value, "away:") {
		if pair, ok := decodeGroups(value); ok {
			return Value{Pair: pair}
		}
		if match := homeAwayPattern.FindStringSubmatch(value); match != nil {
			return PairValue(digits(match[1]), digits(match[2]))
		}
		return Value{}
	}

	if home, away, ok := strings.Cut(value, ":"); ok {
		if isDigits(home) && isDigits(away) {
			return PairValue(digits(home), digits(away))
		}
		return Value{}
	}

	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return RawValue(value)
	}

	return Value{}
}

// decodeGroups handles "home:5,away:3": the text after the first colon of
// each comma separated group.
func decodeGroups(value string) (StatPair, bool) {
	homeGroup, awayGroup, ok := strings.Cut(value, ",")
	if !ok {
		return StatPair{}, false
	}
	_, home, okHome := strings.Cut(homeGroup, ":")
	_, away, okAway := strings.Cut(awayGroup, ":")
	if !okHome || !okAway {
		return StatPair{}, false
	}
	return StatPair{Home: digits(home), Away: digits(away)}, true
}

func digits(raw string) int {
	raw = strings.TrimSpace(raw)
	if !isDigits(raw) {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func isDigits(raw string) bool {
	if raw == "" {
		return false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
