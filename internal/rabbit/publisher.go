// publisher.go
package rabbit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"compras-service/internal/model"
)

const exchangeCompraRealizada = "compra_realizada"

// Publisher emite el evento compra_realizada al exchange fanout para que
// otros microservicios (pagos, notificaciones) reaccionen al checkout.
type Publisher struct {
	ch *amqp091.Channel
}

func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchangeCompraRealizada,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

type articuloMessage struct {
	IDProducto string `json:"id_producto"`
	Cantidad   int    `json:"cantidad"`
}

// CompraRealizadaMessage es el sobre publicado, con correlation id propio.
type CompraRealizadaMessage struct {
	CorrelationID string `json:"correlation_id"`
	Exchange      string `json:"exchange"`
	RoutingKey    string `json:"routing_key"`
	Message       struct {
		CompraID  string            `json:"compraId"`
		UserID    string            `json:"userId"`
		Fecha     string            `json:"fecha"`
		Total     float64           `json:"total"`
		Articulos []articuloMessage `json:"articulos"`
	} `json:"message"`
}

func (p *Publisher) PublicarCompraRealizada(ctx context.Context, compra *model.Compra) error {
	var event CompraRealizadaMessage
	event.CorrelationID = uuid.NewString()
	event.Exchange = exchangeCompraRealizada
	event.Message.CompraID = compra.IDDoc
	event.Message.UserID = compra.UserID
	event.Message.Fecha = compra.Fecha
	event.Message.Total = compra.Total
	for _, item := range compra.Items {
		event.Message.Articulos = append(event.Message.Articulos, articuloMessage{
			IDProducto: item.IDProducto,
			Cantidad:   item.Cantidad,
		})
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx,
		exchangeCompraRealizada,
		"", // fanout ignora routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
