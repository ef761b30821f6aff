package memdb

import "github.com/gabrieloporto/nexoshop/store"

func demoCatalog() []*store.Product {
	return []*store.Product{
		{
			Name:        "Zapatillas Running Pro",
			Description: "Zapatillas de alto rendimiento para correr largas distancias. Amortiguación superior.",
			Price:       15000,
			Category:    "Calzado",
			Stock:       50,
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=2070&auto=format&fit=crop",
		},
		{
			Name:        "Remera Deportiva Dry-Fit",
			Description: "Remera transpirable ideal para entrenamientos intensos. Tecnología de secado rápido.",
			Price:       5000,
			Category:    "Indumentaria",
			Stock:       100,
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?q=80&w=2080&auto=format&fit=crop",
		},
		{
			Name:        "Medias de Compresión",
			Description: "Mejoran la circulación sanguínea durante el ejercicio. Pack x3.",
			Price:       3000,
			Category:    "Accesorios",
			Stock:       200,
			Image:       "https://images.unsplash.com/photo-1586350977771-b3b0abd50f82?q=80&w=2070&auto=format&fit=crop",
		},
		{
			Name:        "Gorra Running",
			Description: "Gorra ligera y ajustable. Protección UV.",
			Price:       4500,
			Category:    "Accesorios",
			Stock:       30,
			Image:       "https://images.unsplash.com/photo-1588850561407-ed78c282e89d?q=80&w=1936&auto=format&fit=crop",
		},
		{
			Name:        "Short Deportivo",
			Description: "Short liviano con bolsillos laterales.",
			Price:       6000,
			Category:    "Indumentaria",
			Stock:       75,
			Image:       "https://images.unsplash.com/photo-1539185441755-769473a23570?q=80&w=2071&auto=format&fit=crop",
		},
	}
}

func demoShippingCosts() map[string]float64 {
	return map[string]float64{
		"1001": 1500,
		"1414": 1500,
		"5000": 2500,
		"8000": 3500,
		"9410": 4500,
	}
}
