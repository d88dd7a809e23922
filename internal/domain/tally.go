package domain

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Entry is a single key/count pair of a Tally.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Tally is a string-keyed counter that remembers the order in which keys were first seen.
// The zero value is ready to use.
type Tally struct {
	keys   []string
	counts map[string]int
}

// Add accumulates n onto key.
func (t *Tally) Add(key string, n int) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key] += n
}

// Set overwrites the count for key. A key that already exists keeps its original position.
func (t *Tally) Set(key string, n int) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key] = n
}

func (t Tally) Get(key string) (int, bool) {
	n, ok := t.counts[key]
	return n, ok
}

func (t Tally) Len() int {
	return len(t.keys)
}

// Sum returns the total of all counts.
func (t Tally) Sum() int {
	var total int
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Entries returns the pairs in insertion order.
func (t Tally) Entries() []Entry {
	entries := make([]Entry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, Entry{Key: k, Count: t.counts[k]})
	}
	return entries
}

// Top returns a new Tally with at most n entries ordered by descending count.
// Equal counts keep their insertion order. A negative n keeps every entry.
func (t Tally) Top(n int) Tally {
	entries := t.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	var top Tally
	for _, e := range entries {
		top.Set(e.Key, e.Count)
	}
	return top
}

// MarshalJSON encodes the tally as a JSON object with keys in insertion order.
func (t Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(t.counts[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving the order of its keys.
func (t *Tally) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	start, err := dec.Token()
	if err != nil {
		return err
	}
	*t = Tally{}
	if start == nil {
		return nil
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var n int
		if err := dec.Decode(&n); err != nil {
			return err
		}
		t.Set(key, n)
	}
	_, err = dec.Token()
	return err
}
