// Seeds the backend with a small sample catalogue for local development.
//
// Usage: go run scripts/seed_products.go [baseURL]
package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

var sampleProducts = []model.Product{
	{
		Name:             "Aurora Laptop 14",
		Brand:            "Northwind",
		Description:      "14 inch ultrabook with a 10 hour battery",
		Price:            999.99,
		Category:         "Electronics",
		ReleaseDate:      "2026-03-01",
		ProductAvailable: true,
		StockQuantity:    12,
	},
	{
		Name:             "Trail Mouse",
		Brand:            "Northwind",
		Description:      "Wireless mouse, 6 buttons",
		Price:            24.50,
		Category:         "Electronics",
		ReleaseDate:      "2025-11-15",
		ProductAvailable: true,
		StockQuantity:    80,
	},
	{
		Name:             "Field Notes Hardcover",
		Brand:            "Papyrus",
		Description:      "A5 dotted notebook, 240 pages",
		Price:            14.00,
		Category:         "Stationery",
		ReleaseDate:      "2025-06-01",
		ProductAvailable: true,
		StockQuantity:    200,
	},
	{
		Name:             "Ceramic Mug",
		Brand:            "Hearth",
		Description:      "350ml stoneware mug",
		Price:            9.99,
		Category:         "Kitchen",
		ReleaseDate:      "2024-09-20",
		ProductAvailable: true,
		StockQuantity:    45,
	},
	{
		Name:             "Retired Gadget",
		Brand:            "Northwind",
		Description:      "No longer in production",
		Price:            5.00,
		Category:         "Electronics",
		ReleaseDate:      "2020-01-01",
		ProductAvailable: false,
		StockQuantity:    0,
	},
}

func main() {
	baseURL := "http://localhost:4000"
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	client := catalog.NewHTTPClient(baseURL, 15*time.Second, zerolog.Nop())
	ctx := context.Background()

	for i, product := range sampleProducts {
		img, err := placeholderImage(i)
		if err != nil {
			log.Fatalf("Failed to generate placeholder image: %v", err)
		}

		saved, err := client.Create(ctx, product, img)
		if err != nil {
			log.Fatalf("Failed to create product %q: %v", product.Name, err)
		}
		fmt.Printf("Created %s (%s)\n", saved.Name, saved.ID)
	}

	fmt.Printf("Seeded %d products against %s\n", len(sampleProducts), baseURL)
}

// placeholderImage renders a small solid-colour PNG so every product has
// an image to serve.
func placeholderImage(seed int) (catalog.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill := color.RGBA{
		R: uint8(60 + seed*37),
		G: uint8(120 + seed*23),
		B: uint8(180 + seed*11),
		A: 255,
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return catalog.Image{}, err
	}

	return catalog.Image{
		Filename:    fmt.Sprintf("sample-%d.png", seed),
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}, nil
}
