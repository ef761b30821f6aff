package rag

import (
	"fmt"
	"strconv"

	"github.com/gabrieloporto/nexoshop/ai/vector"
	"github.com/gabrieloporto/nexoshop/store"
)

// VectorID returns the vector index key for a product.
func VectorID(productID int32) string {
	return fmt.Sprintf("product-%d", productID)
}

// ProductMetadata builds the denormalized metadata stored alongside a
// product vector. Optional fields are included only when non-empty.
func ProductMetadata(p *store.Product) map[string]any {
	metadata := map[string]any{
		"id":       p.ID,
		"name":     p.Name,
		"price":    p.Price,
		"category": p.Category,
		"stock":    p.Stock,
	}
	if p.Description != "" {
		metadata["description"] = p.Description
	}
	if p.Image != "" {
		metadata["image"] = p.Image
	}
	return metadata
}

// ProductFromMetadata projects loosely-typed index metadata back into a
// typed product. Unknown or missing fields never fail the projection;
// optional fields fall back to their zero values. The index stores JSON, so
// numbers typically round-trip as float64.
func ProductFromMetadata(metadata map[string]any) *store.Product {
	return &store.Product{
		ID:          metadataInt32(metadata["id"]),
		Name:        metadataString(metadata["name"]),
		Description: metadataString(metadata["description"]),
		Price:       metadataFloat64(metadata["price"]),
		Category:    metadataString(metadata["category"]),
		Stock:       metadataInt32(metadata["stock"]),
		Image:       metadataString(metadata["image"]),
	}
}

// ProductRecord assembles the full vector index record for a product.
func ProductRecord(p *store.Product, embedding []float32) vector.Record {
	return vector.Record{
		ID:       VectorID(p.ID),
		Values:   embedding,
		Metadata: ProductMetadata(p),
	}
}

func metadataString(v any) string {
	s, _ := v.(string)
	return s
}

func metadataInt32(v any) int32 {
	switch n := v.(type) {
	case int32:
		return n
	case int:
		return int32(n)
	case int64:
		return int32(n)
	case float64:
		return int32(n)
	case float32:
		return int32(n)
	case string:
		parsed, err := strconv.ParseInt(n, 10, 32)
		if err != nil {
			return 0
		}
		return int32(parsed)
	default:
		return 0
	}
}

func metadataFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
