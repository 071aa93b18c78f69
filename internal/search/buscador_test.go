package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"compras-service/internal/model"
)

type fakeRepositorio struct {
	todas      []model.Compra
	porUsuario map[string][]model.Compra
	porEmail   map[string][]model.Compra
	porFecha   map[string][]model.Compra
	porID      map[string]model.Compra

	// ids cuyos cambios de estado fallan
	fallan  map[string]bool
	cambios []string
}

func (f *fakeRepositorio) GetCompras(ctx context.Context) []model.Compra {
	return f.todas
}

func (f *fakeRepositorio) GetComprasPorUsuario(ctx context.Context, userID string) []model.Compra {
	return f.porUsuario[userID]
}

func (f *fakeRepositorio) GetComprasPorEmail(ctx context.Context, email string) []model.Compra {
	return f.porEmail[email]
}

func (f *fakeRepositorio) GetComprasPorFecha(ctx context.Context, fecha string) []model.Compra {
	return f.porFecha[fecha]
}

func (f *fakeRepositorio) GetCompraPorNroCompra(ctx context.Context, id string) *model.Compra {
	if compra, ok := f.porID[id]; ok {
		return &compra
	}
	return nil
}

func (f *fakeRepositorio) CambiarEstadoCompra(ctx context.Context, id string, estado model.Estado) bool {
	if f.fallan[id] {
		return false
	}
	f.cambios = append(f.cambios, id)
	return true
}

type fakeIdentidad struct {
	emails  map[string]string
	dnis    map[string]string
	nombres map[string]string

	resoluciones int
}

func (f *fakeIdentidad) GetUserIdByEmail(ctx context.Context, email string) (string, error) {
	return f.emails[email], nil
}

func (f *fakeIdentidad) GetUserIdByDni(ctx context.Context, dni string) (string, error) {
	return f.dnis[dni], nil
}

func (f *fakeIdentidad) GetUserNameById(ctx context.Context, id string) (string, error) {
	f.resoluciones++
	return f.nombres[id], nil
}

func nuevoBuscadorDePrueba() (*Buscador, *fakeRepositorio, *fakeIdentidad) {
	repo := &fakeRepositorio{
		porUsuario: map[string][]model.Compra{},
		porEmail:   map[string][]model.Compra{},
		porFecha:   map[string][]model.Compra{},
		porID:      map[string]model.Compra{},
		fallan:     map[string]bool{},
	}
	identidad := &fakeIdentidad{
		emails:  map[string]string{},
		dnis:    map[string]string{},
		nombres: map[string]string{},
	}
	return NewBuscador(repo, identidad), repo, identidad
}

func TestBuscarVaciaExcluyeArchivadas(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()
	repo.todas = []model.Compra{
		{IDDoc: "c1", UserID: "u1", Fecha: "2024/01/01", Estado: model.EstadoPendienteDePago},
		{IDDoc: "c2", UserID: "u1", Fecha: "2024/02/01", Estado: model.EstadoArchivado},
	}

	res := b.Buscar(context.Background(), "", Filtros{})
	require.Len(t, res.Compras, 1)
	require.Equal(t, "c1", res.Compras[0].IDDoc)
}

func TestBuscarVaciaConFiltroArchivadoLasIncluye(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()
	repo.todas = []model.Compra{
		{IDDoc: "c1", UserID: "u1", Fecha: "2024/01/01", Estado: model.EstadoPendienteDePago},
		{IDDoc: "c2", UserID: "u1", Fecha: "2024/02/01", Estado: model.EstadoArchivado},
	}

	res := b.Buscar(context.Background(), "", Filtros{Estado: string(model.EstadoArchivado)})
	require.Len(t, res.Compras, 1)
	require.Equal(t, "c2", res.Compras[0].IDDoc)
}

func TestBuscarPorDni(t *testing.T) {
	b, repo, identidad := nuevoBuscadorDePrueba()
	identidad.dnis["12345678"] = "u7"
	repo.porUsuario["u7"] = []model.Compra{
		{IDDoc: "c1", UserID: "u7", Fecha: "2024/01/01", Estado: model.EstadoPendienteDePago},
	}

	res := b.Buscar(context.Background(), "12345678", Filtros{})
	require.True(t, res.ExisteUsuario)
	require.True(t, res.TieneCompras)
	require.Len(t, res.Compras, 1)
}

func TestBuscarPorDniInexistente(t *testing.T) {
	b, _, _ := nuevoBuscadorDePrueba()

	res := b.Buscar(context.Background(), "99999999", Filtros{})
	require.False(t, res.ExisteUsuario)
	require.Empty(t, res.Compras)
}

func TestBuscarPorEmailValidaUsuario(t *testing.T) {
	b, _, identidad := nuevoBuscadorDePrueba()
	identidad.emails["a@b.com"] = "u1"

	res := b.Buscar(context.Background(), "a@b.com", Filtros{})
	require.True(t, res.ExisteUsuario)

	res = b.Buscar(context.Background(), "nadie@b.com", Filtros{})
	require.False(t, res.ExisteUsuario)
}

func TestBuscarPorFechaNormalizaGuiones(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()
	repo.porFecha["2024/01/05"] = []model.Compra{
		{IDDoc: "c1", UserID: "u1", Fecha: "2024/01/05", Estado: model.EstadoPendienteDePago},
	}

	res := b.Buscar(context.Background(), "2024-01-05", Filtros{})
	require.Len(t, res.Compras, 1)
}

func TestBuscarPorNroCompra(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()
	repo.porID["ORDER123"] = model.Compra{IDDoc: "ORDER123", UserID: "u1", Fecha: "2024/01/01"}

	res := b.Buscar(context.Background(), "ORDER123", Filtros{})
	require.Len(t, res.Compras, 1)
	require.Equal(t, "ORDER123", res.Compras[0].IDDoc)

	res = b.Buscar(context.Background(), "NOEXISTE", Filtros{})
	require.Empty(t, res.Compras)
	require.False(t, res.TieneCompras)
}

func TestBuscarResuelveClientesUnaVezPorUsuario(t *testing.T) {
	b, repo, identidad := nuevoBuscadorDePrueba()
	repo.todas = []model.Compra{
		{IDDoc: "c1", UserID: "u1", Fecha: "2024/01/01", Estado: model.EstadoPendienteDePago},
		{IDDoc: "c2", UserID: "u1", Fecha: "2024/02/01", Estado: model.EstadoPendienteDePago},
		{IDDoc: "c3", UserID: "u2", Fecha: "2024/03/01", Estado: model.EstadoPendienteDePago},
	}
	identidad.nombres["u1"] = "Morgana Le Fay"
	identidad.nombres["u2"] = "Circe"

	res := b.Buscar(context.Background(), "", Filtros{})
	require.Equal(t, 2, identidad.resoluciones, "cada userId se resuelve una sola vez")
	require.Equal(t, "Morgana Le Fay", res.Clientes["u1"])
	require.Equal(t, "Circe", res.Clientes["u2"])
}

func TestBuscarOrdenaYRecalculaAmpliacion(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()
	repo.todas = []model.Compra{
		{IDDoc: "c1", UserID: "u1", Fecha: "2024/01/01", Estado: model.EstadoPendienteDePago},
		{IDDoc: "c2", UserID: "u1", Fecha: "2024/03/15", Estado: model.EstadoPendienteDePago},
		{IDDoc: "c3", UserID: "u1", Fecha: "2024/02/10", Estado: model.EstadoPendienteDePago},
	}

	res := b.Buscar(context.Background(), "", Filtros{})
	require.Equal(t, []string{"2024/03/15", "2024/02/10", "2024/01/01"},
		[]string{res.Compras[0].Fecha, res.Compras[1].Fecha, res.Compras[2].Fecha})

	require.Len(t, res.Ampliacion, 3)
	for _, ampliada := range res.Ampliacion {
		require.False(t, ampliada)
	}
}

func TestCambiarEstadosRequiereAccion(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()

	_, err := b.CambiarEstados(context.Background(), []string{"c1"}, "")
	require.ErrorIs(t, err, ErrAccionVacia)
	require.Empty(t, repo.cambios)
}

func TestCambiarEstadosSeCortaEnLaPrimeraFalla(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()
	repo.fallan["c2"] = true

	aplicadas, err := b.CambiarEstados(context.Background(),
		[]string{"c1", "c2", "c3"}, model.EstadoArchivado)

	require.Error(t, err)
	require.Equal(t, 1, aplicadas)
	// c1 quedó aplicada, c2 falló, c3 no se tocó
	require.Equal(t, []string{"c1"}, repo.cambios)
}

func TestCambiarEstadosAplicaTodas(t *testing.T) {
	b, repo, _ := nuevoBuscadorDePrueba()

	aplicadas, err := b.CambiarEstados(context.Background(),
		[]string{"c1", "c2"}, model.EstadoPedidoEmpaquetado)

	require.NoError(t, err)
	require.Equal(t, 2, aplicadas)
	require.Equal(t, []string{"c1", "c2"}, repo.cambios)
}
