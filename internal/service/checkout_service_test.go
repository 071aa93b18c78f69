package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"compras-service/internal/model"
)

type fakePublisher struct {
	publicadas []model.Compra
}

func (f *fakePublisher) PublicarCompraRealizada(ctx context.Context, compra *model.Compra) error {
	f.publicadas = append(f.publicadas, *compra)
	return nil
}

func nuevoCheckoutDePrueba() (*CheckoutService, *fakeRepo, *fakeCatalogo, *fakePublisher) {
	compras, repo, catalogo, _ := nuevoServicioDePrueba()
	publisher := &fakePublisher{}
	return NewCheckoutService(compras, catalogo, publisher), repo, catalogo, publisher
}

func TestArmarItemsTomaSnapshotDelCatalogo(t *testing.T) {
	checkout, _, catalogo, _ := nuevoCheckoutDePrueba()
	catalogo.precios["p1"] = 150.5
	catalogo.nombres["p1"] = "Vela negra"
	catalogo.precios["p2"] = 20
	catalogo.nombres["p2"] = "Salvia"

	items, err := checkout.ArmarItems(context.Background(), []LineaCarrito{
		{IDProducto: "p1", Cantidad: 2},
		{IDProducto: "p2", Cantidad: 3},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "Vela negra", items[0].Nombre)
	require.Equal(t, 150.5, items[0].Precio)
	require.Equal(t, 301.0, items[0].Subtotal)
	require.Equal(t, 60.0, items[1].Subtotal)

	require.Equal(t, 361.0, model.CalcularTotal(items))
}

func TestRealizarCompraCompleta(t *testing.T) {
	checkout, repo, catalogo, publisher := nuevoCheckoutDePrueba()
	catalogo.precios["p1"] = 100
	catalogo.nombres["p1"] = "Grimorio"
	catalogo.stock["p1"] = 5

	compra, ok, mensaje := checkout.RealizarCompra(context.Background(), "u1", []LineaCarrito{
		{IDProducto: "p1", Cantidad: 2},
	})
	require.True(t, ok, mensaje)
	require.NotNil(t, compra)

	// el total es la suma de subtotales y la compra nace pendiente de pago
	require.Equal(t, 200.0, compra.Total)
	require.Equal(t, model.EstadoPendienteDePago, compra.Estado)
	require.Len(t, repo.creadas, 1)

	// el stock se descuenta después del alta, línea por línea
	require.Equal(t, 2, catalogo.descontados["p1"])

	// y se publica el evento con la compra creada
	require.Len(t, publisher.publicadas, 1)
	require.Equal(t, compra.IDDoc, publisher.publicadas[0].IDDoc)
}

func TestRealizarCompraSinStockNoDescuentaNiPublica(t *testing.T) {
	checkout, repo, catalogo, publisher := nuevoCheckoutDePrueba()
	catalogo.precios["p1"] = 100
	catalogo.nombres["p1"] = "Grimorio"
	catalogo.stock["p1"] = 1

	_, ok, mensaje := checkout.RealizarCompra(context.Background(), "u1", []LineaCarrito{
		{IDProducto: "p1", Cantidad: 3},
	})
	require.False(t, ok)
	require.Contains(t, mensaje, "Grimorio")
	require.Empty(t, repo.creadas)
	require.Empty(t, catalogo.descontados)
	require.Empty(t, publisher.publicadas)
}

func TestRealizarCompraCarritoVacio(t *testing.T) {
	checkout, repo, _, _ := nuevoCheckoutDePrueba()

	_, ok, mensaje := checkout.RealizarCompra(context.Background(), "u1", nil)
	require.False(t, ok)
	require.NotEmpty(t, mensaje)
	require.Empty(t, repo.creadas)
}
