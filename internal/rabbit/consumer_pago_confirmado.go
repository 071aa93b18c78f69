package rabbit

import (
	"context"
	"encoding/json"
	"errors"

	log "github.com/sirupsen/logrus"

	"compras-service/internal/model"
	"compras-service/internal/service"
)

// PagoConfirmadoConsumer escucha al servicio de pagos: cuando un pago se
// acredita, la compra pasa a "Pago confirmado" sin intervención del admin.
type PagoConfirmadoConsumer struct {
	Service *service.ComprasService
}

func NewPagoConfirmadoConsumer(s *service.ComprasService) *PagoConfirmadoConsumer {
	return &PagoConfirmadoConsumer{Service: s}
}

type PagoConfirmadoMessage struct {
	CorrelationID string `json:"correlation_id"`
	Exchange      string `json:"exchange"`
	RoutingKey    string `json:"routing_key"`
	Message       struct {
		CompraID string `json:"compraId"`
		UserID   string `json:"userId"`
	} `json:"message"`
}

func (c *PagoConfirmadoConsumer) Handle(msg []byte) error {
	log.Info("[Rabbit] Evento recibido: pago_confirmado")

	var event PagoConfirmadoMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		log.WithError(err).Error("error parseando mensaje pago_confirmado")
		return err
	}

	if event.Message.CompraID == "" {
		return errors.New("mensaje pago_confirmado sin compraId")
	}

	ok := c.Service.CambiarEstadoCompra(context.Background(), event.Message.CompraID, model.EstadoPagoConfirmado)
	if !ok {
		log.WithField("compraId", event.Message.CompraID).Error("no se pudo confirmar el pago de la compra")
		return errors.New("no se pudo cambiar el estado de la compra")
	}

	log.WithField("compraId", event.Message.CompraID).Info("pago confirmado para compra")
	return nil
}
