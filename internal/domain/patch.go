package domain

import (
	"encoding/json"
	"sort"
)

// Patch is a partial update body keyed by JSON field name.
type Patch map[string]json.RawMessage

// Keys returns the patch keys in sorted order.
func (p Patch) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Disallowed returns the first key not in allowed, or "" when all keys are allowed.
func (p Patch) Disallowed(allowed []string) string {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	for _, k := range p.Keys() {
		if _, ok := set[k]; !ok {
			return k
		}
	}
	return ""
}

// Decode unmarshals the patch into v.
func (p Patch) Decode(v interface{}) error {
	data, err := json.Marshal(map[string]json.RawMessage(p))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
