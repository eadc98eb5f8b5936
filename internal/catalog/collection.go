package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// The catalog collections simulate arrays on top of maps keyed by stringified
// small integers: insert assigns the next free index, delete renumbers the
// survivors back to a contiguous 0..n-1 range. Renumbering is destructive on
// identity; anything still holding an old key is on its own.

// SortedKeys returns the collection's numeric keys in ascending order.
// Non-numeric keys are ignored.
func SortedKeys[T any](coll map[string]T) []string {
	nums := make([]int, 0, len(coll))
	for k := range coll {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	keys := make([]string, len(nums))
	for i, n := range nums {
		keys[i] = strconv.Itoa(n)
	}
	return keys
}

// NextKey returns max(numeric keys)+1, or "0" for an empty collection.
func NextKey[T any](coll map[string]T) string {
	max := -1
	for k := range coll {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// InsertRecord adds rec at the next free index and returns the assigned key.
func InsertRecord[T any](coll map[string]T, rec T) string {
	key := NextKey(coll)
	coll[key] = rec
	return key
}

// InsertUniqueName adds a named entry, rejecting case-insensitive duplicates.
// Used for the brand and model name collections.
func InsertUniqueName(coll map[string]string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "must not be empty"}
	}
	for _, existing := range coll {
		if strings.EqualFold(existing, name) {
			return "", &ValidationError{Field: "name", Message: "already exists"}
		}
	}
	return InsertRecord(coll, name), nil
}

// UpdateRecord replaces the record at key.
func UpdateRecord[T any](coll map[string]T, key string, rec T) error {
	if _, ok := coll[key]; !ok {
		return ErrNotFound
	}
	coll[key] = rec
	return nil
}

// DeleteRecord removes the record at key and renumbers the remaining records
// to 0..n-1, preserving their prior numeric order. It returns the rebuilt
// collection.
func DeleteRecord[T any](coll map[string]T, key string) (map[string]T, error) {
	if _, ok := coll[key]; !ok {
		return nil, ErrNotFound
	}
	delete(coll, key)
	reindexed := make(map[string]T, len(coll))
	for i, k := range SortedKeys(coll) {
		reindexed[strconv.Itoa(i)] = coll[k]
	}
	return reindexed, nil
}
