package blog

import "github.com/mx-space/showroom/internal/models"

// Fallback returns the demo posts served when the store cannot be read.
func Fallback() []models.BlogPostModel {
	return []models.BlogPostModel{
		{
			ID:         "b1",
			Title:      "Designing the Future of Performance",
			Excerpt:    stringPtr("How aerodynamics and AI are redefining driving."),
			Content:    "Long form content...",
			Author:     "Editorial",
			CoverImage: stringPtr("https://images.unsplash.com/photo-1519125323398-675f0ddb6308?q=80&w=1600&auto=format&fit=crop"),
			Tags:       []string{"design", "performance"},
		},
		{
			ID:         "b2",
			Title:      "Electric Thrill: Why EVs Are Exciting",
			Excerpt:    stringPtr("Torque, silence, and software-defined speed."),
			Content:    "Long form content...",
			Author:     "Editorial",
			CoverImage: stringPtr("https://images.unsplash.com/photo-1525609004556-c46c7d6cf023?q=80&w=1600&auto=format&fit=crop"),
			Tags:       []string{"ev", "innovation"},
		},
	}
}

func stringPtr(s string) *string { return &s }
