package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vehicle-rental-api-server/internal/models"
)

func TestDocumentIDs(t *testing.T) {
	assert.Equal(t, "brands", brandsDocID(models.CategoryCar))
	assert.Equal(t, "bike-brands", brandsDocID(models.CategoryBike))
	assert.Equal(t, "models", modelsDocID(models.CategoryCar))
	assert.Equal(t, "bike-models", modelsDocID(models.CategoryBike))
	assert.Equal(t, "cars", vehiclesDocID(models.CategoryCar))
	assert.Equal(t, "bikes", vehiclesDocID(models.CategoryBike))
}

func TestLocationsFromDoc_WrappedForm(t *testing.T) {
	raw := bson.M{
		"_id":       "locations",
		"locations": bson.M{"0": "Airport", "1": "Downtown"},
	}

	locations, err := locationsFromDoc(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"0": "Airport", "1": "Downtown"}, locations)
}

func TestLocationsFromDoc_FlatForm(t *testing.T) {
	raw := bson.M{
		"_id": "locations",
		"0":   "Airport",
		"1":   "Harbor",
	}

	locations, err := locationsFromDoc(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"0": "Airport", "1": "Harbor"}, locations)
}

func TestLocationsFromDoc_FlatFormSkipsNonStrings(t *testing.T) {
	raw := bson.M{
		"_id":  "locations",
		"0":    "Airport",
		"junk": int32(7),
	}

	locations, err := locationsFromDoc(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"0": "Airport"}, locations)
}

func TestMarshalSubdocument(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		isDoc bool
	}{
		{"bson.M", bson.M{"a": "b"}, true},
		{"primitive.D", primitive.D{{Key: "a", Value: "b"}}, true},
		{"map", map[string]interface{}{"a": "b"}, true},
		{"string", "not a document", false},
		{"number", int32(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ok := marshalSubdocument(tt.value)
			assert.Equal(t, tt.isDoc, ok)
			if tt.isDoc {
				var out bson.M
				require.NoError(t, bson.Unmarshal(data, &out))
				assert.Equal(t, "b", out["a"])
			}
		})
	}
}
