package util

import (
	"errors"
	"sort"
)

// OrderedMap is a string-keyed map that remembers the order keys were
// given in, so listings come back the way they appear in the file.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

var ErrorKeysDontMatchValues = errors.New("keys don't match values")

func NewOrderedMap(keys []string, values map[string]any) (*OrderedMap, error) {
	if len(keys) != len(values) {
		return nil, ErrorKeysDontMatchValues
	}
	mapKeys := make([]string, 0, len(values))
	for k := range values {
		mapKeys = append(mapKeys, k)
	}
	sort.Strings(mapKeys)

	sortedKeys := make([]string, len(keys))
	copy(sortedKeys, keys)
	sort.Strings(sortedKeys)

	for i := range sortedKeys {
		if mapKeys[i] != sortedKeys[i] {
			return nil, ErrorKeysDontMatchValues
		}
	}
	if values == nil {
		values = map[string]any{}
	}
	return &OrderedMap{keys: keys, values: values}, nil
}

func (om *OrderedMap) Get(key string) (val any, has bool) {
	val, has = om.values[key]
	return
}

func (om *OrderedMap) Keys() []string {
	return om.keys
}
