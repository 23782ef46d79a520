package car

import "github.com/mx-space/showroom/internal/models"

// Fallback returns the demo catalogue served when the store cannot be read.
// Each call builds a fresh slice.
func Fallback() []models.CarModel {
	return []models.CarModel{
		{
			ID:           "demo-1",
			Make:         "Apex",
			Model:        "GT-R Carbon",
			Year:         2024,
			Price:        124990,
			Image:        stringPtr("https://images.unsplash.com/photo-1511919884226-fd3cad34687c?q=80&w=1600&auto=format&fit=crop"),
			Mileage:      intPtr(1200),
			Fuel:         stringPtr("Petrol"),
			Transmission: stringPtr("Automatic"),
			IsFeatured:   true,
		},
		{
			ID:           "demo-2",
			Make:         "Voltera",
			Model:        "E9 Performance",
			Year:         2025,
			Price:        89990,
			Image:        stringPtr("https://images.unsplash.com/photo-1542282088-fe8426682b8f?q=80&w=1600&auto=format&fit=crop"),
			Mileage:      intPtr(50),
			Fuel:         stringPtr("Electric"),
			Transmission: stringPtr("Single-Speed"),
			IsFeatured:   true,
		},
		{
			ID:           "demo-3",
			Make:         "Lumine",
			Model:        "S7 Avant",
			Year:         2023,
			Price:        74990,
			Image:        stringPtr("https://images.unsplash.com/photo-1503376780353-7e6692767b70?q=80&w=1600&auto=format&fit=crop"),
			Mileage:      intPtr(8000),
			Fuel:         stringPtr("Hybrid"),
			Transmission: stringPtr("Automatic"),
			IsFeatured:   false,
		},
	}
}

func stringPtr(s string) *string { return &s }
func intPtr(n int) *int          { return &n }
