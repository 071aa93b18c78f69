package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"compras-service/internal/model"
)

// LineaCarrito es lo mínimo que envía el cliente: producto y cantidad.
// Nombre, precio y subtotal se completan desde el catálogo al armar la compra.
type LineaCarrito struct {
	IDProducto string
	Cantidad   int
}

// Publicador de eventos de compra (implementado por el paquete rabbit).
type CompraPublisher interface {
	PublicarCompraRealizada(ctx context.Context, compra *model.Compra) error
}

// CheckoutService arma la compra a partir del carrito y la somete al
// flujo de alta: verificación de stock, persistencia, descuento de stock
// y publicación del evento.
type CheckoutService struct {
	compras   *ComprasService
	catalogo  Catalogo
	publisher CompraPublisher
}

func NewCheckoutService(compras *ComprasService, catalogo Catalogo, publisher CompraPublisher) *CheckoutService {
	return &CheckoutService{compras: compras, catalogo: catalogo, publisher: publisher}
}

// ArmarItems construye las líneas de compra consultando nombre y precio
// actuales al catálogo. El snapshot queda congelado en la compra.
func (s *CheckoutService) ArmarItems(ctx context.Context, lineas []LineaCarrito) ([]model.ItemCarrito, error) {
	items := make([]model.ItemCarrito, 0, len(lineas))
	for _, linea := range lineas {
		precio, err := s.catalogo.PrecioProducto(ctx, linea.IDProducto)
		if err != nil {
			return nil, err
		}
		nombre, err := s.catalogo.NombreProducto(ctx, linea.IDProducto)
		if err != nil {
			return nil, err
		}
		items = append(items, model.ItemCarrito{
			IDProducto: linea.IDProducto,
			Nombre:     nombre,
			Precio:     precio,
			Cantidad:   linea.Cantidad,
			Subtotal:   precio * float64(linea.Cantidad),
		})
	}
	return items, nil
}

// RealizarCompra ejecuta el checkout completo para el usuario.
// Devuelve la compra creada cuando ok es true; cuando es false, mensaje
// trae el texto para mostrar al usuario.
//
// El descuento de stock es una llamada por línea posterior al alta de la
// compra: si una falla se loguea y se continúa, la compra ya quedó
// registrada (limitación conocida, sin compensación).
func (s *CheckoutService) RealizarCompra(ctx context.Context, userID string, lineas []LineaCarrito) (*model.Compra, bool, string) {
	if len(lineas) == 0 {
		return nil, false, "El carrito está vacío"
	}

	items, err := s.ArmarItems(ctx, lineas)
	if err != nil {
		log.WithError(err).Error("error armando items del carrito")
		return nil, false, "Hubo un error al consultar el catálogo, intente nuevamente"
	}

	compra := &model.Compra{
		UserID: userID,
		Items:  items,
		Total:  model.CalcularTotal(items),
		Estado: model.EstadoPendienteDePago,
	}

	ok, mensaje := s.compras.PostCompra(ctx, compra)
	if !ok {
		return nil, false, mensaje
	}

	for _, item := range compra.Items {
		if err := s.catalogo.DescontarStock(ctx, item.IDProducto, item.Cantidad); err != nil {
			log.WithError(err).WithField("producto", item.IDProducto).Error("error descontando stock")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublicarCompraRealizada(ctx, compra); err != nil {
			log.WithError(err).WithField("idDoc", compra.IDDoc).Error("error publicando compra_realizada")
		}
	}

	return compra, true, ""
}
