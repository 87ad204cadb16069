package services

import (
	"strings"

	"github.com/ArowuTest/conomy-backend/internal/models"
)

var _ ProductCatalog = (*Catalog)(nil)

// Catalog is a fixed list of investment products loaded at startup
type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// NewCatalog creates a Catalog. Products without an ID are skipped; a repeated
// ID keeps the first definition.
func NewCatalog(products []models.Product) *Catalog {
	c := &Catalog{byID: make(map[string]models.Product, len(products))}
	for _, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = p
		c.products = append(c.products, p)
	}
	return c
}

// List returns the products in configured order
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find returns the product with the given ID
func (c *Catalog) Find(id string) (models.Product, error) {
	p, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}
