package search

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"compras-service/internal/metrics"
	"compras-service/internal/model"
)

// Repositorio es la vista del servicio de compras que necesita el buscador.
type Repositorio interface {
	GetCompras(ctx context.Context) []model.Compra
	GetComprasPorUsuario(ctx context.Context, userID string) []model.Compra
	GetComprasPorEmail(ctx context.Context, email string) []model.Compra
	GetComprasPorFecha(ctx context.Context, fecha string) []model.Compra
	GetCompraPorNroCompra(ctx context.Context, id string) *model.Compra
	CambiarEstadoCompra(ctx context.Context, id string, estado model.Estado) bool
}

// Identidad resuelve usuarios para validar existencia y mostrar nombres.
type Identidad interface {
	GetUserIdByEmail(ctx context.Context, email string) (string, error)
	GetUserIdByDni(ctx context.Context, dni string) (string, error)
	GetUserNameById(ctx context.Context, id string) (string, error)
}

// ErrAccionVacia se devuelve cuando se pide un cambio de estados en lote
// sin haber elegido la acción.
var ErrAccionVacia = errors.New("seleccione una acción")

// Buscador despacha el texto libre a la búsqueda correcta, filtra, ordena
// y enriquece el resultado con los nombres de los compradores.
type Buscador struct {
	compras   Repositorio
	identidad Identidad
}

func NewBuscador(compras Repositorio, identidad Identidad) *Buscador {
	return &Buscador{compras: compras, identidad: identidad}
}

// Resultado de una búsqueda: las compras ya filtradas y ordenadas, el mapa
// de nombres de compradores, las señales de validación y el estado de
// ampliación recalculado para el nuevo listado.
type Resultado struct {
	Compras []model.Compra
	// Clientes mapea userId → nombre para mostrar, deduplicado: cada id
	// se resuelve una sola vez por búsqueda.
	Clientes      map[string]string
	ExisteUsuario bool
	TieneCompras  bool
	Ampliacion    Ampliacion
}

// Buscar clasifica el dato, ejecuta la búsqueda correspondiente y aplica
// los filtros secundarios. TieneCompras refleja el resultado de la búsqueda
// principal, antes de los filtros.
func (b *Buscador) Buscar(ctx context.Context, dato string, filtros Filtros) Resultado {
	res := Resultado{ExisteUsuario: true}
	criterio := Clasificar(dato)
	metrics.Busquedas.WithLabelValues(criterio.String()).Inc()

	switch criterio {
	case CriterioTodas:
		compras := b.compras.GetCompras(ctx)
		if filtros.Estado != string(model.EstadoArchivado) {
			compras = ExcluirArchivadas(compras)
		}
		res.Compras = compras

	case CriterioEmail:
		res.Compras = b.compras.GetComprasPorEmail(ctx, dato)
		res.ExisteUsuario = b.existeUsuarioPorEmail(ctx, dato)

	case CriterioDni:
		userID, err := b.identidad.GetUserIdByDni(ctx, dato)
		if err != nil {
			log.WithError(err).WithField("dni", dato).Error("error resolviendo dni")
		}
		if userID == "" {
			res.ExisteUsuario = false
		} else {
			res.Compras = b.compras.GetComprasPorUsuario(ctx, userID)
		}

	case CriterioFecha:
		res.Compras = b.compras.GetComprasPorFecha(ctx, CorregirFecha(dato))

	case CriterioNroCompra:
		if compra := b.compras.GetCompraPorNroCompra(ctx, dato); compra != nil {
			res.Compras = []model.Compra{*compra}
		}
	}

	res.TieneCompras = len(res.Compras) > 0
	res.Compras = AplicarFiltros(res.Compras, filtros)
	res.Clientes = b.resolverClientes(ctx, res.Compras)
	OrdenarPorFecha(res.Compras)
	res.Ampliacion = NuevaAmpliacion(res.Compras)
	return res
}

func (b *Buscador) existeUsuarioPorEmail(ctx context.Context, email string) bool {
	userID, err := b.identidad.GetUserIdByEmail(ctx, email)
	if err != nil {
		log.WithError(err).WithField("email", email).Error("error validando usuario")
		return false
	}
	return userID != ""
}

// resolverClientes arma el mapa userId → nombre del resultado, resolviendo
// cada id una sola vez.
func (b *Buscador) resolverClientes(ctx context.Context, compras []model.Compra) map[string]string {
	clientes := make(map[string]string)
	for _, compra := range compras {
		if _, ya := clientes[compra.UserID]; ya {
			continue
		}
		nombre, err := b.identidad.GetUserNameById(ctx, compra.UserID)
		if err != nil {
			log.WithError(err).WithField("userId", compra.UserID).Error("error resolviendo nombre de cliente")
			continue
		}
		clientes[compra.UserID] = nombre
	}
	return clientes
}

// CambiarEstados aplica el estado elegido a los ids seleccionados, en
// orden y de a uno. Se corta en la primera falla: los anteriores quedan
// aplicados y los posteriores sin tocar (sin rollback). Devuelve cuántos
// se aplicaron.
func (b *Buscador) CambiarEstados(ctx context.Context, ids []string, estado model.Estado) (int, error) {
	if estado == "" {
		return 0, ErrAccionVacia
	}

	for i, id := range ids {
		if !b.compras.CambiarEstadoCompra(ctx, id, estado) {
			return i, fmt.Errorf("no se pudo cambiar el estado de la compra %s", id)
		}
	}
	return len(ids), nil
}
