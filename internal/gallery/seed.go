package gallery

import "photo-gallery/internal/domain/photo"

// seedPhotos is the static catalog shipped with the gallery
var seedPhotos = []photo.Photo{
	{
		ID:           "1",
		URL:          "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=600&fit=crop&q=80&fm=webp",
		Title:        "Nature's Masterpiece",
		Description:  "Layered ridgelines fading into an evening haze",
		Tags:         []string{"nature", "landscape"},
		Width:        800,
		Height:       600,
		Photographer: "Alex Rivers",
		Location:     "Iceland",
	},
	{
		ID:           "2",
		URL:          "https://images.unsplash.com/photo-1518837695005-2083093ee35b?w=800&h=1000&fit=crop&q=80&fm=webp",
		Title:        "Ocean's Power",
		Description:  "A breaking wave frozen at its peak",
		Tags:         []string{"ocean", "power"},
		Width:        800,
		Height:       1000,
		Photographer: "Sophia Chen",
		Location:     "New Zealand",
	},
	{
		ID:           "3",
		URL:          "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800&h=1200&fit=crop&q=80&fm=webp",
		Title:        "Forest Symphony",
		Description:  "Morning light falling through a quiet forest",
		Tags:         []string{"forest", "music"},
		Width:        800,
		Height:       1200,
		Photographer: "Marcus Wild",
		Location:     "Patagonia",
	},
	{
		ID:           "4",
		URL:          "https://images.unsplash.com/photo-1506502281700-80ba0c2b8be4?w=800&h=800&fit=crop&q=80&fm=webp",
		Title:        "Desert Dreams",
		Description:  "Wind-carved dunes under a pale sky",
		Tags:         []string{"desert", "dreams"},
		Width:        800,
		Height:       800,
		Photographer: "Luna Stone",
		Location:     "Norwegian Fjords",
	},
	{
		ID:           "5",
		URL:          "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=800&h=600&fit=crop&q=80&fm=webp",
		Title:        "Mountain Majesty",
		Description:  "Sunrise breaking over a granite summit",
		Tags:         []string{"mountain", "majesty"},
		Width:        800,
		Height:       600,
		Photographer: "River Phoenix",
		Location:     "Swiss Alps",
	},
	{
		ID:           "6",
		URL:          "https://images.unsplash.com/photo-1501436513145-30f24e19fcc4?w=800&h=1000&fit=crop&q=80&fm=webp",
		Title:        "Urban Pulse",
		Description:  "City lights streaking through a rainy night",
		Tags:         []string{"urban", "pulse"},
		Width:        800,
		Height:       1000,
		Photographer: "Sage Mountains",
		Location:     "Japanese Alps",
	},
	{
		ID:           "7",
		URL:          "https://images.unsplash.com/photo-1447752875215-b2761acb3c5d?w=800&h=800&fit=crop&q=80&fm=webp",
		Title:        "Golden Fields",
		Description:  "Wheat swaying in late afternoon sun",
		Tags:         []string{"fields", "golden"},
		Width:        800,
		Height:       800,
		Photographer: "Aurora Light",
		Location:     "Canadian Rockies",
	},
	{
		ID:           "8",
		URL:          "https://images.unsplash.com/photo-1465146344425-f00d5f5c8f07?w=800&h=1200&fit=crop&q=80&fm=webp",
		Title:        "Misty Dawn",
		Description:  "Fog lifting from a lake at first light",
		Tags:         []string{"misty", "dawn"},
		Width:        800,
		Height:       1200,
		Photographer: "Canyon Explorer",
		Location:     "Scottish Highlands",
	},
	{
		ID:           "9",
		URL:          "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=1000&fit=crop&q=80&sat=1.2&fm=webp",
		Title:        "Alpine Glow",
		Description:  "Snowfields catching the last warm light",
		Tags:         []string{"mountain", "landscape", "sunset"},
		Width:        800,
		Height:       1000,
		Photographer: "Alex Rivers",
		Location:     "Swiss Alps",
	},
	{
		ID:           "10",
		URL:          "https://images.unsplash.com/photo-1518837695005-2083093ee35b?w=800&h=600&fit=crop&q=80&brightness=1.1&fm=webp",
		Title:        "Tidal Rhythm",
		Description:  "Foam patterns left behind by the retreating tide",
		Tags:         []string{"ocean", "beach"},
		Width:        800,
		Height:       600,
		Photographer: "Sophia Chen",
		Location:     "Norwegian Fjords",
	},
	{
		ID:           "11",
		URL:          "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800&h=800&fit=crop&q=80&contrast=1.1&fm=webp",
		Title:        "Emerald Canopy",
		Description:  "Looking straight up through old-growth trees",
		Tags:         []string{"forest", "nature"},
		Width:        800,
		Height:       800,
		Photographer: "Marcus Wild",
		Location:     "Canadian Rockies",
	},
	{
		ID:           "12",
		URL:          "https://images.unsplash.com/photo-1506502281700-80ba0c2b8be4?w=800&h=1200&fit=crop&q=80&hue=15&fm=webp",
		Title:        "Silent Dunes",
		Description:  "A lone ridge of sand in the blue hour",
		Tags:         []string{"desert", "minimal"},
		Width:        800,
		Height:       1200,
		Photographer: "Luna Stone",
		Location:     "Patagonia",
	},
	{
		ID:           "13",
		URL:          "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=800&h=1000&fit=crop&q=80&crop=entropy&fm=webp",
		Title:        "Valley of Light",
		Description:  "Sun rays pouring into a glacial valley",
		Tags:         []string{"mountain", "landscape"},
		Width:        800,
		Height:       1000,
		Photographer: "River Phoenix",
		Location:     "New Zealand",
	},
	{
		ID:           "14",
		URL:          "https://images.unsplash.com/photo-1501436513145-30f24e19fcc4?w=800&h=600&fit=crop&q=80&sat=1.2&fm=webp",
		Title:        "Neon Nights",
		Description:  "Reflections of signage on wet pavement",
		Tags:         []string{"urban", "night"},
		Width:        800,
		Height:       600,
		Photographer: "Sage Mountains",
		Location:     "Japanese Alps",
	},
	{
		ID:           "15",
		URL:          "https://images.unsplash.com/photo-1447752875215-b2761acb3c5d?w=800&h=1200&fit=crop&q=80&brightness=1.1&fm=webp",
		Title:        "Harvest Gold",
		Description:  "Rolling farmland just before the harvest",
		Tags:         []string{"fields", "golden", "sunset"},
		Width:        800,
		Height:       1200,
		Photographer: "Aurora Light",
		Location:     "Scottish Highlands",
	},
	{
		ID:           "16",
		URL:          "https://images.unsplash.com/photo-1465146344425-f00d5f5c8f07?w=800&h=800&fit=crop&q=80&contrast=1.1&fm=webp",
		Title:        "Quiet Morning",
		Description:  "Mist drifting between pine-covered hills",
		Tags:         []string{"misty", "forest"},
		Width:        800,
		Height:       800,
		Photographer: "Canyon Explorer",
		Location:     "Iceland",
	},
}

// Seed returns a copy of the static catalog
func Seed() []photo.Photo {
	return clonePhotos(seedPhotos)
}

func clonePhotos(in []photo.Photo) []photo.Photo {
	out := make([]photo.Photo, len(in))
	for i, p := range in {
		p.Tags = append([]string(nil), p.Tags...)
		out[i] = p
	}
	return out
}
