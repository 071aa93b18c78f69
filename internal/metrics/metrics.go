// metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComprasCreadas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compras_creadas_total",
		Help: "Compras registradas exitosamente.",
	})

	RechazosStock = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compras_rechazos_stock_total",
		Help: "Compras abortadas por falta de stock en alguna línea.",
	})

	CambiosEstado = promauto.NewCounter(prometheus.CounterOpts{
		Name: "compras_cambios_estado_total",
		Help: "Cambios de estado aplicados sobre compras.",
	})

	Busquedas = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "compras_busquedas_total",
		Help: "Búsquedas de compras, por criterio clasificado.",
	}, []string{"criterio"})
)
