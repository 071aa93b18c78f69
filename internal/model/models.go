// models.go
package model

// Estado representa el estado de una compra dentro de su ciclo de vida.
// El flujo normal avanza hacia "Pedido entregado"; "Archivado" y "Cancelado"
// son estados laterales alcanzables desde cualquier otro.
type Estado string

const (
	EstadoPendienteDePago   Estado = "Pendiente de pago"
	EstadoPagoConfirmado    Estado = "Pago confirmado"
	EstadoPedidoEmpaquetado Estado = "Pedido empaquetado"
	EstadoEnvioNotificado   Estado = "Envío notificado"
	EstadoPedidoEntregado   Estado = "Pedido entregado"
	EstadoArchivado         Estado = "Archivado"
	EstadoCancelado         Estado = "Cancelado"
)

// Estados válidos (por nombre). No hay catálogo en BD.
var estadosValidos = map[Estado]bool{
	EstadoPendienteDePago:   true,
	EstadoPagoConfirmado:    true,
	EstadoPedidoEmpaquetado: true,
	EstadoEnvioNotificado:   true,
	EstadoPedidoEntregado:   true,
	EstadoArchivado:         true,
	EstadoCancelado:         true,
}

func (e Estado) EsValido() bool {
	return estadosValidos[e]
}

// EstadosOrdenados lista los estados en el orden del flujo, para la UI.
var EstadosOrdenados = []Estado{
	EstadoPendienteDePago,
	EstadoPagoConfirmado,
	EstadoPedidoEmpaquetado,
	EstadoEnvioNotificado,
	EstadoPedidoEntregado,
	EstadoArchivado,
	EstadoCancelado,
}

// ItemCarrito es una línea de compra. Captura nombre y precio del producto
// al momento de comprar, para que cambios posteriores del catálogo no
// alteren compras históricas.
type ItemCarrito struct {
	IDProducto string  `bson:"id_producto" json:"id_producto"`
	Nombre     string  `bson:"nombre" json:"nombre"`
	Precio     float64 `bson:"precio" json:"precio"`
	Cantidad   int     `bson:"cantidad" json:"cantidad"`
	Subtotal   float64 `bson:"subtotal" json:"subtotal"`
}

// Compra es el documento persistido de una orden.
// IDDoc lo asigna el store al crear el documento; el escritor no lo guarda
// dentro del documento y los lectores lo adjuntan después de leer.
type Compra struct {
	IDDoc  string        `bson:"-" json:"idDoc,omitempty"`
	UserID string        `bson:"userId" json:"userId"`
	Fecha  string        `bson:"fecha" json:"fecha"` // formato YYYY/MM/DD
	Items  []ItemCarrito `bson:"items" json:"items"`
	Total  float64       `bson:"total" json:"total"`
	Estado Estado        `bson:"estado" json:"estado"`
}

// CalcularTotal suma los subtotales de las líneas.
func CalcularTotal(items []ItemCarrito) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	return total
}
