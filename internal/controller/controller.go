package controller

import (
	"net/http"

	"compras-service/internal/dto"
	"compras-service/internal/model"
	"compras-service/internal/search"
	"compras-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CompraController struct {
	Compras  *service.ComprasService
	Checkout *service.CheckoutService
	Buscador *search.Buscador
}

func NewCompraController(compras *service.ComprasService, checkout *service.CheckoutService, buscador *search.Buscador) *CompraController {
	return &CompraController{Compras: compras, Checkout: checkout, Buscador: buscador}
}

// POST /compras/checkout — requiere token
func (ctl *CompraController) RealizarCompra(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")

	lineas := make([]service.LineaCarrito, 0, len(req.Items))
	for _, item := range req.Items {
		lineas = append(lineas, service.LineaCarrito{
			IDProducto: item.IDProducto,
			Cantidad:   item.Cantidad,
		})
	}

	compra, ok, mensaje := ctl.Checkout.RealizarCompra(c.Request.Context(), userID, lineas)
	if !ok {
		// Precondición fallida (stock, carrito vacío) o error degradado:
		// siempre con mensaje para el usuario, nunca compra parcial.
		c.JSON(http.StatusConflict, dto.CheckoutResponse{Mensaje: mensaje})
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{Compra: compra})
}

// GET /compras/mias — las compras del usuario autenticado, más recientes primero
func (ctl *CompraController) MisCompras(c *gin.Context) {
	userID := c.GetString("userID")
	compras := ctl.Compras.GetComprasPorUsuario(c.Request.Context(), userID)
	search.OrdenarPorFecha(compras)
	c.JSON(http.StatusOK, compras)
}

// GET /admin/compras/buscar?dato=&estado=&fechaDesde=&fechaHasta= — admin only
func (ctl *CompraController) BuscarCompras(c *gin.Context) {
	filtros := search.Filtros{
		Estado:     c.Query("estado"),
		FechaDesde: c.Query("fechaDesde"),
		FechaHasta: c.Query("fechaHasta"),
	}

	res := ctl.Buscador.Buscar(c.Request.Context(), c.Query("dato"), filtros)
	c.JSON(http.StatusOK, busquedaResponse(res))
}

// PATCH /admin/compras/:id/estado — admin only
func (ctl *CompraController) CambiarEstado(c *gin.Context) {
	id := c.Param("id")

	var req dto.CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estado := model.Estado(req.Estado)
	if !estado.EsValido() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado inválido"})
		return
	}

	if !ctl.Compras.CambiarEstadoCompra(c.Request.Context(), id, estado) {
		c.JSON(http.StatusNotFound, gin.H{"error": "compra no encontrada"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "estado actualizado"})
}

// POST /admin/compras/estados — admin only, cambio de estado en lote
func (ctl *CompraController) CambiarEstados(c *gin.Context) {
	var req dto.CambiarEstadosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aplicadas, err := ctl.Buscador.CambiarEstados(c.Request.Context(), req.IDs, model.Estado(req.Estado))
	if err == search.ErrAccionVacia {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Con o sin falla a mitad del lote, se refresca la búsqueda activa:
	// lo aplicado quedó aplicado.
	res := ctl.Buscador.Buscar(c.Request.Context(), req.Dato, search.Filtros{
		Estado:     req.FiltroEstado,
		FechaDesde: req.FechaDesde,
		FechaHasta: req.FechaHasta,
	})

	out := dto.CambiarEstadosResponse{
		Aplicadas: aplicadas,
		Busqueda:  busquedaResponse(res),
	}
	if err != nil {
		out.Mensaje = "Algunos cambios no se aplicaron, intente nuevamente"
		c.JSON(http.StatusMultiStatus, out)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GET /compras/estados — catálogo de estados para los selects de la UI
func (ctl *CompraController) ListarEstados(c *gin.Context) {
	c.JSON(http.StatusOK, model.EstadosOrdenados)
}

func busquedaResponse(res search.Resultado) dto.BusquedaResponse {
	compras := res.Compras
	if compras == nil {
		compras = []model.Compra{}
	}
	return dto.BusquedaResponse{
		Compras:       compras,
		Clientes:      res.Clientes,
		ExisteUsuario: res.ExisteUsuario,
		TieneCompras:  res.TieneCompras,
	}
}
