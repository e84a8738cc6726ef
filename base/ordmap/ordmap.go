// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap implements an ordered map that retains the order of
// items added to a slice, while also providing fast key-based lookup.
// Items are never removed, so the index of an item is a stable handle
// for it.
package ordmap

import "fmt"

// KeyValue represents a key-value pair.
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is a generic ordered map: Order holds the items in the order
// added, and Map holds the index into Order for each key.
type Map[K comparable, V any] struct {

	// Order is the list of keys and values, in the order added.
	Order []KeyValue[K, V]

	// Map is the key to index mapping.
	Map map[K]int
}

// Init initializes the map if it isn't already.
func (om *Map[K, V]) Init() {
	if om.Map == nil {
		om.Map = make(map[K]int)
	}
}

// Add sets the value for the given key and returns its index.
// An existing key keeps its index and has its value replaced;
// a new key is added at the end.
func (om *Map[K, V]) Add(key K, val V) int {
	om.Init()
	if idx, has := om.Map[key]; has {
		om.Order[idx].Value = val
		return idx
	}
	om.Map[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
	return len(om.Order) - 1
}

// IndexByKeyTry returns the index of the given key,
// with false for a missing key.
func (om *Map[K, V]) IndexByKeyTry(key K) (int, bool) {
	idx, ok := om.Map[key]
	return idx, ok
}

// IndexIsValid returns an error if the given index is out of range.
func (om *Map[K, V]) IndexIsValid(idx int) error {
	if idx < 0 || idx >= om.Len() {
		return fmt.Errorf("ordmap.Map: index %d is out of range of a map of length %d", idx, om.Len())
	}
	return nil
}

// ValueByIndex returns the value at the given index.
func (om *Map[K, V]) ValueByIndex(idx int) V {
	return om.Order[idx].Value
}

// Len returns the number of items in the map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// String returns a string representation of the map.
func (om *Map[K, V]) String() string {
	return fmt.Sprintf("%v", om.Order)
}
