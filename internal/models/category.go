package models

// Category is the vehicle class namespace. Brands, models and vehicles are
// stored per category.
type Category string

const (
	CategoryCar  Category = "car"
	CategoryBike Category = "bike"
)

func (c Category) IsValid() bool {
	return c == CategoryCar || c == CategoryBike
}
