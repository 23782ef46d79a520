package models

// CarModel is a vehicle listing as served by /api/cars.
type CarModel struct {
	ID           string  `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Image        *string `json:"image"`
	Mileage      *int    `json:"mileage"`
	Fuel         *string `json:"fuel"`
	Transmission *string `json:"transmission"`
	IsFeatured   bool    `json:"is_featured"`
}

// Defaults applied when a stored car document omits the field.
const (
	DefaultCarYear  = 2023
	DefaultCarPrice = 0.0
)
