package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Budgets maps category ids to a monthly spending limit. Limits are
// evergreen: they apply to the current month until overwritten. Insertion
// order is preserved because alerts are reported in that order.
//
// The zero value is an empty, ready to use mapping.
type Budgets struct {
	limits map[string]float64
	order  []string
}

// BudgetsOf builds Budgets from category/limit pairs, in argument order.
func BudgetsOf(pairs ...any) Budgets {
	var b Budgets
	for i := 0; i+1 < len(pairs); i += 2 {
		category, _ := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case float64:
			b.Set(category, v)
		case int:
			b.Set(category, float64(v))
		}
	}
	return b
}

// Set upserts a limit. New categories are appended to the iteration order;
// existing ones keep their position.
func (b *Budgets) Set(category string, limit float64) {
	if b.limits == nil {
		b.limits = make(map[string]float64)
	}
	if _, ok := b.limits[category]; !ok {
		b.order = append(b.order, category)
	}
	b.limits[category] = limit
}

// Get returns the limit for category and whether one is set.
func (b Budgets) Get(category string) (float64, bool) {
	v, ok := b.limits[category]
	return v, ok
}

// Limit returns the limit for category, or 0 when none is set.
func (b Budgets) Limit(category string) float64 {
	return b.limits[category]
}

// Len returns the number of categories with a limit.
func (b Budgets) Len() int {
	return len(b.order)
}

// Categories returns the budgeted category ids in insertion order.
func (b Budgets) Categories() []string {
	if len(b.order) == 0 {
		return nil
	}
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Clone returns an independent copy.
func (b Budgets) Clone() Budgets {
	var out Budgets
	for _, c := range b.order {
		out.Set(c, b.limits[c])
	}
	return out
}

// Merge returns b overlaid with incoming. Incoming limits win on conflict,
// existing-only categories are retained.
func (b Budgets) Merge(incoming Budgets) Budgets {
	out := b.Clone()
	for _, c := range incoming.order {
		out.Set(c, incoming.limits[c])
	}
	return out
}

// Equal reports whether both mappings hold the same limits in the same order.
func (b Budgets) Equal(other Budgets) bool {
	if len(b.order) != len(other.order) {
		return false
	}
	for i, c := range b.order {
		if other.order[i] != c || other.limits[c] != b.limits[c] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the budgets as a JSON object, keys in insertion order.
func (b Budgets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range b.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.limits[c])
		if err != nil {
			return nil, fmt.Errorf("budget %q: %w", c, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of numbers, keeping key order.
// A JSON null decodes to empty budgets.
func (b *Budgets) UnmarshalJSON(data []byte) error {
	*b = Budgets{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("budgets must be an object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected budget key %v", keyTok)
		}
		var limit float64
		if err := dec.Decode(&limit); err != nil {
			return fmt.Errorf("budget %q: %w", key, err)
		}
		b.Set(key, limit)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
