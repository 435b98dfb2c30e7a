package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

func DefaultProducts() []Product {
	return []Product{
		{Name: "Camiseta", UnitPrice: decimal.RequireFromString("29.90")},
		{Name: "Calca Jeans", UnitPrice: decimal.RequireFromString("89.90")},
		{Name: "Tenis Esportivo", UnitPrice: decimal.RequireFromString("159.90")},
		{Name: "Jaqueta de Couro", UnitPrice: decimal.RequireFromString("199.90")},
		{Name: "Bone", UnitPrice: decimal.RequireFromString("19.90")},
		{Name: "Relogio", UnitPrice: decimal.RequireFromString("120.50")},
		{Name: "Mochila", UnitPrice: decimal.RequireFromString("69.90")},
		{Name: "Fone de Ouvido", UnitPrice: decimal.RequireFromString("79.90")},
		{Name: "Caderno", UnitPrice: decimal.RequireFromString("15.50")},
		{Name: "Caneta", UnitPrice: decimal.RequireFromString("2.50")},
	}
}

// Seed upserts products through the catalog so every entry is validated.
func Seed(ctx context.Context, c *Catalog, products []Product) error {
	for _, p := range products {
		if _, err := c.Upsert(ctx, p.Name, p.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}
