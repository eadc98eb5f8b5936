package catalog

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertUniqueName_AssignsSequentialKeys(t *testing.T) {
	brands := map[string]string{}

	key, err := InsertUniqueName(brands, "Toyota")
	require.NoError(t, err)
	assert.Equal(t, "0", key)

	key, err = InsertUniqueName(brands, "Honda")
	require.NoError(t, err)
	assert.Equal(t, "1", key)

	key, err = InsertUniqueName(brands, "BMW")
	require.NoError(t, err)
	assert.Equal(t, "2", key)
}

func TestInsertUniqueName_Validation(t *testing.T) {
	tests := []struct {
		name     string
		existing map[string]string
		insert   string
		wantErr  bool
	}{
		{"empty name", map[string]string{}, "", true},
		{"whitespace name", map[string]string{}, "   ", true},
		{"exact duplicate", map[string]string{"0": "Toyota"}, "Toyota", true},
		{"case-insensitive duplicate", map[string]string{"0": "Toyota"}, "tOYOTA", true},
		{"distinct name", map[string]string{"0": "Toyota"}, "Honda", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InsertUniqueName(tt.existing, tt.insert)
			if tt.wantErr {
				assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeleteRecord_Reindexes(t *testing.T) {
	brands := map[string]string{"0": "Toyota", "1": "Honda", "2": "BMW", "3": "Audi"}

	brands, err := DeleteRecord(brands, "1")
	require.NoError(t, err)

	// Contiguous 0..n-1 keys, prior relative order preserved.
	assert.Equal(t, map[string]string{"0": "Toyota", "1": "BMW", "2": "Audi"}, brands)
}

func TestDeleteRecord_ToyotaHondaScenario(t *testing.T) {
	brands := map[string]string{}

	key, err := InsertUniqueName(brands, "Toyota")
	require.NoError(t, err)
	assert.Equal(t, "0", key)

	key, err = InsertUniqueName(brands, "Honda")
	require.NoError(t, err)
	assert.Equal(t, "1", key)

	brands, err = DeleteRecord(brands, "0")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"0": "Honda"}, brands)
}

func TestDeleteRecord_KeySetAlwaysContiguous(t *testing.T) {
	coll := map[string]int{}
	for i := 0; i < 10; i++ {
		InsertRecord(coll, i*100)
	}

	for _, victim := range []string{"4", "0", "7", "3"} {
		var err error
		coll, err = DeleteRecord(coll, victim)
		require.NoError(t, err)

		for i := 0; i < len(coll); i++ {
			_, ok := coll[strconv.Itoa(i)]
			assert.True(t, ok, "key %d missing after deleting %s", i, victim)
		}
	}
	assert.Len(t, coll, 6)
}

func TestDeleteRecord_NotFound(t *testing.T) {
	_, err := DeleteRecord(map[string]string{"0": "Toyota"}, "5")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecord(t *testing.T) {
	brands := map[string]string{"0": "Toyota"}

	assert.NoError(t, UpdateRecord(brands, "0", "Lexus"))
	assert.Equal(t, "Lexus", brands["0"])

	assert.ErrorIs(t, UpdateRecord(brands, "9", "Mazda"), ErrNotFound)
}

func TestNextKey(t *testing.T) {
	tests := []struct {
		name string
		coll map[string]string
		want string
	}{
		{"empty", map[string]string{}, "0"},
		{"sequential", map[string]string{"0": "a", "1": "b"}, "2"},
		{"gap after manual delete", map[string]string{"0": "a", "5": "b"}, "6"},
		{"ignores non-numeric keys", map[string]string{"0": "a", "junk": "b"}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextKey(tt.coll))
		})
	}
}

func TestSortedKeys_NumericOrder(t *testing.T) {
	coll := map[string]string{"10": "j", "2": "b", "0": "a", "1": "x"}
	assert.Equal(t, []string{"0", "1", "2", "10"}, SortedKeys(coll))
}
