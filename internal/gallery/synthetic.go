package gallery

import (
	"fmt"
	"strconv"
	"strings"

	"photo-gallery/internal/domain/photo"
)

type baseImage struct {
	url   string
	title string
	tags  []string
}

type dimension struct {
	width, height int
}

var baseImages = [...]baseImage{
	{"https://images.unsplash.com/photo-1506905925346-21bda4d32df4", "Nature's Masterpiece", []string{"nature", "landscape"}},
	{"https://images.unsplash.com/photo-1518837695005-2083093ee35b", "Ocean's Power", []string{"ocean", "power"}},
	{"https://images.unsplash.com/photo-1441974231531-c6227db76b6e", "Forest Symphony", []string{"forest", "music"}},
	{"https://images.unsplash.com/photo-1506502281700-80ba0c2b8be4", "Desert Dreams", []string{"desert", "dreams"}},
	{"https://images.unsplash.com/photo-1469474968028-56623f02e42e", "Mountain Majesty", []string{"mountain", "majesty"}},
	{"https://images.unsplash.com/photo-1501436513145-30f24e19fcc4", "Urban Pulse", []string{"urban", "pulse"}},
	{"https://images.unsplash.com/photo-1447752875215-b2761acb3c5d", "Golden Fields", []string{"fields", "golden"}},
	{"https://images.unsplash.com/photo-1465146344425-f00d5f5c8f07", "Misty Dawn", []string{"misty", "dawn"}},
}

var photographers = [...]string{
	"Alex Rivers", "Sophia Chen", "Marcus Wild", "Luna Stone",
	"River Phoenix", "Sage Mountains", "Aurora Light", "Canyon Explorer",
}

var locations = [...]string{
	"Iceland", "New Zealand", "Patagonia", "Norwegian Fjords",
	"Swiss Alps", "Japanese Alps", "Canadian Rockies", "Scottish Highlands",
}

var dimensions = [...]dimension{
	{800, 600}, {800, 800}, {800, 1000}, {800, 1200},
}

var effects = [...]string{
	"&fm=webp",
	"&sat=1.2&fm=webp",
	"&brightness=1.1&fm=webp",
	"&contrast=1.1&fm=webp",
	"&hue=15&fm=webp",
	"&crop=entropy&fm=webp",
}

// Synthesize generates count placeholder records starting at offset.
// Every field of record offset+i depends only on offset+i.
func Synthesize(offset, count int) []photo.Photo {
	if count <= 0 {
		return []photo.Photo{}
	}

	out := make([]photo.Photo, count)
	for i := range out {
		out[i] = synthesizeOne(offset + i)
	}
	return out
}

func synthesizeOne(n int) photo.Photo {
	base := baseImages[mod(n, len(baseImages))]
	dim := dimensions[mod(n, len(dimensions))]
	effect := effects[mod(n, len(effects))]

	return photo.Photo{
		ID:           strconv.Itoa(n),
		URL:          fmt.Sprintf("%s?w=%d&h=%d&fit=crop&q=80%s", base.url, dim.width, dim.height, effect),
		Title:        fmt.Sprintf("%s %d", base.title, n),
		Description:  fmt.Sprintf("Stunning %s captured in pristine natural beauty", strings.ToLower(base.title)),
		Tags:         append([]string(nil), base.tags...),
		Width:        dim.width,
		Height:       dim.height,
		Photographer: photographers[mod(n, len(photographers))],
		Location:     locations[mod(n, len(locations))],
	}
}

func mod(n, m int) int {
	return ((n % m) + m) % m
}
