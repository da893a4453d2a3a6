package product

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxContentSize is the maximum formatted chunk size in bytes.
const MaxContentSize = 32768

// Row is a raw catalog record as it appears in the product CSV export.
type Row struct {
	URL         string
	Name        string
	Size        string
	Category    string
	Price       string
	Color       string
	Description string
	Group       string
	Gender      string
	Brand       string
}

// Embedded is a product paired with its passage embedding.
type Embedded struct {
	Product Product
	Vector  []float32
}

// Product is a validated catalog item ready to be embedded.
type Product struct {
	id  string
	row Row
}

// New validates a catalog row. Name, URL, price and description are required.
// The ID is derived from the URL so re-ingesting the same catalog overwrites instead of duplicating.
func New(row Row) (Product, error) {
	row = trimRow(row)
	switch {
	case row.Name == "":
		return Product{}, fmt.Errorf("product name is required")
	case row.URL == "":
		return Product{}, fmt.Errorf("product URL is required")
	case row.Price == "":
		return Product{}, fmt.Errorf("product price is required")
	case row.Description == "":
		return Product{}, fmt.Errorf("product description is required")
	}

	p := Product{
		id:  uuid.NewSHA1(uuid.NameSpaceURL, []byte(row.URL)).String(),
		row: row,
	}
	if n := len(p.Content()); n > MaxContentSize {
		return Product{}, fmt.Errorf("product content too large (%d bytes, max %d)", n, MaxContentSize)
	}
	return p, nil
}

// ID returns the stable product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.row.Name }

// URL returns the product page address.
func (p *Product) URL() string { return p.row.URL }

// Gender returns the catalog gender column as exported by the shop.
func (p *Product) Gender() string { return p.row.Gender }

// Content renders the retrieval chunk stored next to the embedding.
func (p *Product) Content() string {
	r := p.row
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", r.Name)
	fmt.Fprintf(&b, "Brand: %s\n", r.Brand)
	fmt.Fprintf(&b, "Gender: %s\n", r.Gender)
	fmt.Fprintf(&b, "Category Group: %s\n", r.Group)
	fmt.Fprintf(&b, "Category: %s\n", r.Category)
	fmt.Fprintf(&b, "URL: %s\n", r.URL)
	fmt.Fprintf(&b, "Price: €%s\n", r.Price)
	fmt.Fprintf(&b, "Color: %s\n", r.Color)
	fmt.Fprintf(&b, "Sizes: %s\n", r.Size)
	fmt.Fprintf(&b, "Description: %s", r.Description)
	return b.String()
}

func trimRow(r Row) Row {
	return Row{
		URL:         strings.TrimSpace(r.URL),
		Name:        strings.TrimSpace(r.Name),
		Size:        strings.TrimSpace(r.Size),
		Category:    strings.TrimSpace(r.Category),
		Price:       strings.TrimSpace(r.Price),
		Color:       strings.TrimSpace(r.Color),
		Description: strings.TrimSpace(r.Description),
		Group:       strings.TrimSpace(r.Group),
		Gender:      strings.TrimSpace(r.Gender),
		Brand:       strings.TrimSpace(r.Brand),
	}
}
