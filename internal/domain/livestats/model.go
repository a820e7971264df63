package livestats

import "github.com/bytedance/sonic"

// StatPair is a home/away counter.
type StatPair struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Value is either a decoded pair or a raw scalar the feed sent instead of a pair.
type Value struct {
	Pair  StatPair
	Raw   string
	IsRaw bool
}

func PairValue(home, away int) Value {
	return Value{Pair: StatPair{Home: home, Away: away}}
}

func RawValue(raw string) Value {
	return Value{Raw: raw, IsRaw: true}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsRaw {
		return sonic.Marshal(v.Raw)
	}
	return sonic.Marshal(v.Pair)
}

// Stats maps a normalized stat key (for example "corner" or "posession") to its value.
type Stats map[string]Value

// Pair returns the pair stored under key. Missing keys and raw scalars yield {0,0}.
func (s Stats) Pair(key string) StatPair {
	v, ok := s[key]
	if !ok || v.IsRaw {
		return StatPair{}
	}
	return v.Pair
}

// Value returns the value stored under key, or a zero pair.
func (s Stats) Value(key string) Value {
	v, ok := s[key]
	if !ok {
		return Value{}
	}
	return v
}
