package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"compras-service/internal/metrics"
	"compras-service/internal/model"
	"compras-service/internal/repository"
)

// Interfaz que debe implementar repository
type CompraRepository interface {
	Create(ctx context.Context, c *model.Compra) (string, error)
	FindByID(ctx context.Context, id string) (*model.Compra, error)
	FindByUserID(ctx context.Context, userID string) ([]model.Compra, error)
	FindByFecha(ctx context.Context, fecha string) ([]model.Compra, error)
	FindAll(ctx context.Context) ([]model.Compra, error)
	UpdateEstado(ctx context.Context, id string, estado model.Estado) error
}

// Catálogo externo: precio, nombre y stock de productos.
type Catalogo interface {
	HayStock(ctx context.Context, idProducto string, cantidad int) (bool, error)
	DescontarStock(ctx context.Context, idProducto string, cantidad int) error
	PrecioProducto(ctx context.Context, idProducto string) (float64, error)
	NombreProducto(ctx context.Context, idProducto string) (string, error)
}

// Identidad externa: resolución de usuarios.
type Identidad interface {
	GetUserIdByEmail(ctx context.Context, email string) (string, error)
	GetUserIdByDni(ctx context.Context, dni string) (string, error)
	GetUserNameById(ctx context.Context, id string) (string, error)
}

type ComprasService struct {
	repo      CompraRepository
	identidad Identidad
	catalogo  Catalogo
}

func NewComprasService(repo CompraRepository, identidad Identidad, catalogo Catalogo) *ComprasService {
	return &ComprasService{repo: repo, identidad: identidad, catalogo: catalogo}
}

// PostCompra verifica el stock de cada línea y persiste la compra completa.
// Si una sola línea no tiene stock suficiente, se aborta la operación entera
// (sin orden parcial) y se devuelve un mensaje nombrando el producto.
// La fecha la asigna el servidor al crear, nunca el cliente.
// Nunca propaga errores: toda falla se degrada a ok=false.
func (s *ComprasService) PostCompra(ctx context.Context, compra *model.Compra) (bool, string) {
	for _, item := range compra.Items {
		hayStock, err := s.catalogo.HayStock(ctx, item.IDProducto, item.Cantidad)
		if err != nil {
			log.WithError(err).WithField("producto", item.IDProducto).Error("error consultando stock")
			return false, "Hubo un error al verificar el stock, intente nuevamente"
		}
		if !hayStock {
			metrics.RechazosStock.Inc()
			return false, fmt.Sprintf("No hay suficiente stock de %s para realizar la compra", item.Nombre)
		}
	}

	compra.Fecha = time.Now().Format("2006/01/02")

	id, err := s.repo.Create(ctx, compra)
	if err != nil {
		log.WithError(err).Error("error persistiendo compra")
		return false, "Hubo un error al registrar la compra, intente nuevamente"
	}
	compra.IDDoc = id

	metrics.ComprasCreadas.Inc()
	return true, ""
}

// GetComprasPorUsuario devuelve las compras del usuario. Ante una falla del
// backend se loguea y se devuelve una lista vacía, nunca un error.
func (s *ComprasService) GetComprasPorUsuario(ctx context.Context, userID string) []model.Compra {
	compras, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("userId", userID).Error("error listando compras por usuario")
		return []model.Compra{}
	}
	return compras
}

// GetComprasPorEmail resuelve email→userId contra Identidad y delega en
// GetComprasPorUsuario. Un email que no resuelve devuelve lista vacía.
func (s *ComprasService) GetComprasPorEmail(ctx context.Context, email string) []model.Compra {
	userID, err := s.identidad.GetUserIdByEmail(ctx, email)
	if err != nil {
		log.WithError(err).WithField("email", email).Error("error resolviendo email")
		return []model.Compra{}
	}
	if userID == "" {
		return []model.Compra{}
	}
	return s.GetComprasPorUsuario(ctx, userID)
}

func (s *ComprasService) GetComprasPorFecha(ctx context.Context, fecha string) []model.Compra {
	compras, err := s.repo.FindByFecha(ctx, fecha)
	if err != nil {
		log.WithError(err).WithField("fecha", fecha).Error("error listando compras por fecha")
		return []model.Compra{}
	}
	return compras
}

// GetCompraPorNroCompra devuelve nil cuando el id no existe.
func (s *ComprasService) GetCompraPorNroCompra(ctx context.Context, id string) *model.Compra {
	compra, err := s.repo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil
	}
	if err != nil {
		log.WithError(err).WithField("idDoc", id).Error("error buscando compra por número")
		return nil
	}
	return compra
}

func (s *ComprasService) GetCompras(ctx context.Context) []model.Compra {
	compras, err := s.repo.FindAll(ctx)
	if err != nil {
		log.WithError(err).Error("error listando compras")
		return []model.Compra{}
	}
	return compras
}

// CambiarEstadoCompra mergea solo el estado de la compra indicada.
// Devuelve false si el id no existe, el estado destino no es válido, o el
// backend falla; en ninguno de esos casos se modifica nada.
func (s *ComprasService) CambiarEstadoCompra(ctx context.Context, id string, estado model.Estado) bool {
	if !estado.EsValido() {
		log.WithField("estado", estado).Warn("estado destino inválido")
		return false
	}

	err := s.repo.UpdateEstado(ctx, id, estado)
	if err == repository.ErrNotFound {
		return false
	}
	if err != nil {
		log.WithError(err).WithField("idDoc", id).Error("error cambiando estado de compra")
		return false
	}

	metrics.CambiosEstado.Inc()
	return true
}
