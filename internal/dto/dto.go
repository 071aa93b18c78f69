// dto.go
package dto

import "compras-service/internal/model"

// LineaCarritoDTO es una línea del carrito tal como la envía el cliente.
// Precio y nombre no se aceptan del cliente: se completan desde el catálogo.
type LineaCarritoDTO struct {
	IDProducto string `json:"id_producto" binding:"required"`
	Cantidad   int    `json:"cantidad" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	Items []LineaCarritoDTO `json:"items" binding:"required"`
}

type CheckoutResponse struct {
	Compra  *model.Compra `json:"compra,omitempty"`
	Mensaje string        `json:"mensaje,omitempty"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// CambiarEstadosRequest aplica un estado a todas las compras seleccionadas.
// Trae también la búsqueda activa para refrescar el listado al terminar.
type CambiarEstadosRequest struct {
	IDs    []string `json:"ids" binding:"required"`
	Estado string   `json:"estado"`

	Dato         string `json:"dato"`
	FiltroEstado string `json:"filtroEstado"`
	FechaDesde   string `json:"fechaDesde"`
	FechaHasta   string `json:"fechaHasta"`
}

type BusquedaResponse struct {
	Compras       []model.Compra    `json:"compras"`
	Clientes      map[string]string `json:"clientes"`
	ExisteUsuario bool              `json:"existeUsuario"`
	TieneCompras  bool              `json:"tieneCompras"`
}

type CambiarEstadosResponse struct {
	Aplicadas int              `json:"aplicadas"`
	Mensaje   string           `json:"mensaje,omitempty"`
	Busqueda  BusquedaResponse `json:"busqueda"`
}
