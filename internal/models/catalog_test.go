package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func intPtr(n int) *int { return &n }

func TestNormalizeStock_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		vehicle Vehicle
		want    int
	}{
		{"vehicleCount wins over all", Vehicle{VehicleCount: intPtr(5), StockCount: intPtr(4), CarCount: intPtr(3), AvailableCount: intPtr(2)}, 5},
		{"stockCount beats carCount", Vehicle{StockCount: intPtr(4), CarCount: intPtr(3)}, 4},
		{"carCount beats availableCount", Vehicle{CarCount: intPtr(3), AvailableCount: intPtr(2)}, 3},
		{"bikeCount beats availableCount", Vehicle{BikeCount: intPtr(6), AvailableCount: intPtr(2)}, 6},
		{"availableCount as last resort", Vehicle{AvailableCount: intPtr(2)}, 2},
		{"no counter at all", Vehicle{}, 0},
		{"vehicleCount zero still wins", Vehicle{VehicleCount: intPtr(0), StockCount: intPtr(9)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.vehicle.NormalizeStock()
			assert.Equal(t, tt.want, tt.vehicle.Stock())
			// Aliases are cleared so a save emits vehicleCount only.
			assert.Nil(t, tt.vehicle.StockCount)
			assert.Nil(t, tt.vehicle.CarCount)
			assert.Nil(t, tt.vehicle.BikeCount)
			assert.Nil(t, tt.vehicle.AvailableCount)
		})
	}
}

func TestSetStock_ClampsAtZero(t *testing.T) {
	var v Vehicle
	v.SetStock(-3)
	assert.Equal(t, 0, v.Stock())

	v.SetStock(2)
	assert.Equal(t, 2, v.Stock())
}

func TestVehicle_LegacyDocumentDecode(t *testing.T) {
	// A legacy document carrying carCount instead of vehicleCount.
	doc := bson.M{
		"id": int32(0), "brandId": int32(1), "modelId": int32(0),
		"gearbox": "Manual", "fuelType": "Gas",
		"year": int32(2019), "pricePerDay": 35.0,
		"carCount": int32(2),
	}
	data, err := bson.Marshal(doc)
	require.NoError(t, err)

	var v Vehicle
	require.NoError(t, bson.Unmarshal(data, &v))
	v.NormalizeStock()

	assert.Equal(t, 2, v.Stock())
	assert.Equal(t, 1, v.BrandID)

	// The rewritten document carries vehicleCount and no aliases.
	out, err := bson.Marshal(v)
	require.NoError(t, err)
	var raw bson.M
	require.NoError(t, bson.Unmarshal(out, &raw))
	assert.Contains(t, raw, "vehicleCount")
	assert.NotContains(t, raw, "carCount")
	assert.NotContains(t, raw, "stockCount")
}

func TestFlexInt_BSON(t *testing.T) {
	tests := []struct {
		name string
		doc  bson.M
		want int
	}{
		{"number brandId", bson.M{"brandId": int32(3), "models": bson.M{}}, 3},
		{"string brandId", bson.M{"brandId": "7", "models": bson.M{}}, 7},
		{"int64 brandId", bson.M{"brandId": int64(2), "models": bson.M{}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(tt.doc)
			require.NoError(t, err)

			var group ModelGroup
			require.NoError(t, bson.Unmarshal(data, &group))
			assert.Equal(t, tt.want, group.BrandID.Int())
		})
	}
}

func TestFlexInt_JSON(t *testing.T) {
	var group ModelGroup
	require.NoError(t, json.Unmarshal([]byte(`{"brandId":"4","models":{"0":"Corolla"}}`), &group))
	assert.Equal(t, 4, group.BrandID.Int())

	require.NoError(t, json.Unmarshal([]byte(`{"brandId":4,"models":{}}`), &group))
	assert.Equal(t, 4, group.BrandID.Int())
}

func TestCategoryIsValid(t *testing.T) {
	assert.True(t, CategoryCar.IsValid())
	assert.True(t, CategoryBike.IsValid())
	assert.False(t, Category("truck").IsValid())
	assert.False(t, Category("").IsValid())
}
