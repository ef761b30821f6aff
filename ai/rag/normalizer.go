// Package rag implements the retrieval-augmented generation pipeline for the
// shopping assistant: product text normalization, semantic retrieval,
// grounded response generation, and the catalog-to-index sync job.
package rag

import (
	"strings"

	"github.com/gabrieloporto/nexoshop/store"
)

// ProductText serializes a product into the canonical text that gets
// embedded at index time. Deterministic and pure: labeled clauses in fixed
// priority order, missing optional fields omitted so they don't pollute the
// embedding with noise tokens.
func ProductText(p *store.Product) string {
	parts := make([]string, 0, 5)

	if p.Name != "" {
		parts = append(parts, "Producto: "+p.Name)
	}
	if p.Description != "" {
		parts = append(parts, "Descripción: "+p.Description)
	}
	if p.Category != "" {
		parts = append(parts, "Categoría: "+p.Category)
	}
	parts = append(parts, "Precio: "+store.FormatPrice(p.Price))

	if p.InStock() {
		parts = append(parts, "Disponible")
	} else {
		parts = append(parts, "Sin stock")
	}

	return strings.Join(parts, ". ")
}
