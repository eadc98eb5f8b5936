package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ModelGroup holds the models of one brand. The map key is the model's
// stringified integer index within the group.
type ModelGroup struct {
	BrandID FlexInt           `bson:"brandId" json:"brandId"`
	Models  map[string]string `bson:"models" json:"models"`
}

// FlexInt decodes an integer that legacy documents store either as a number
// or as a string.
type FlexInt int

func (f *FlexInt) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeInt32:
		*f = FlexInt(rv.Int32())
	case bson.TypeInt64:
		*f = FlexInt(rv.Int64())
	case bson.TypeDouble:
		*f = FlexInt(int(rv.Double()))
	case bson.TypeString:
		var n int
		if _, err := fmt.Sscanf(rv.StringValue(), "%d", &n); err != nil {
			return fmt.Errorf("flexint: cannot parse %q as integer", rv.StringValue())
		}
		*f = FlexInt(n)
	default:
		return fmt.Errorf("flexint: unsupported bson type %s", t)
	}
	return nil
}

func (f FlexInt) MarshalBSONValue() (bsontype.Type, []byte, error) {
	t, data, err := bson.MarshalValue(int32(f))
	return t, data, err
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return fmt.Errorf("flexint: cannot parse %s as integer", string(data))
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}

// Vehicle is one record of the per-category vehicle collection. The available
// unit counter is canonically vehicleCount; older documents used stockCount,
// carCount/bikeCount or availableCount instead, so all of them are decoded and
// NormalizeStock picks the winner.
type Vehicle struct {
	ID                 int      `bson:"id" json:"id"`
	BrandID            int      `bson:"brandId" json:"brandId"`
	ModelID            int      `bson:"modelId" json:"modelId"`
	Image              string   `bson:"image" json:"image"`
	BodyType           string   `bson:"bodyType" json:"bodyType"`
	Power              string   `bson:"power" json:"power"`
	EngineSize         string   `bson:"engineSize" json:"engineSize"`
	Gearbox            string   `bson:"gearbox" json:"gearbox"`
	FuelType           string   `bson:"fuelType" json:"fuelType"`
	Year               int      `bson:"year" json:"year"`
	PricePerDay        float64  `bson:"pricePerDay" json:"pricePerDay"`
	VehicleCount       *int     `bson:"vehicleCount,omitempty" json:"vehicleCount"`
	AvailableLocations []string `bson:"availableLocations" json:"availableLocations"`

	// Legacy counter aliases. Never written back; cleared by NormalizeStock.
	StockCount     *int `bson:"stockCount,omitempty" json:"-"`
	CarCount       *int `bson:"carCount,omitempty" json:"-"`
	BikeCount      *int `bson:"bikeCount,omitempty" json:"-"`
	AvailableCount *int `bson:"availableCount,omitempty" json:"-"`
}

// NormalizeStock folds the legacy counter aliases into vehicleCount. The
// precedence is vehicleCount, then stockCount, then carCount/bikeCount, then
// availableCount; the first field present wins. Documents with no counter at
// all normalize to zero.
func (v *Vehicle) NormalizeStock() {
	if v.VehicleCount == nil {
		switch {
		case v.StockCount != nil:
			v.VehicleCount = v.StockCount
		case v.CarCount != nil:
			v.VehicleCount = v.CarCount
		case v.BikeCount != nil:
			v.VehicleCount = v.BikeCount
		case v.AvailableCount != nil:
			v.VehicleCount = v.AvailableCount
		default:
			zero := 0
			v.VehicleCount = &zero
		}
	}
	v.StockCount = nil
	v.CarCount = nil
	v.BikeCount = nil
	v.AvailableCount = nil
}

// Stock returns the available unit count, treating an unnormalized record as
// having none.
func (v *Vehicle) Stock() int {
	if v.VehicleCount == nil {
		return 0
	}
	return *v.VehicleCount
}

// SetStock sets the counter, clamped so it never goes negative.
func (v *Vehicle) SetStock(n int) {
	if n < 0 {
		n = 0
	}
	v.VehicleCount = &n
}
