// setup.go
package rabbit

import (
	log "github.com/sirupsen/logrus"

	"compras-service/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

func SetupConsumers(ch *amqp091.Channel, svc *service.ComprasService) {
	consumer := NewPagoConfirmadoConsumer(svc)

	// 1. Declarar la queue
	q, err := ch.QueueDeclare(
		"compras_service_pagos", // cola exclusiva para este micro
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.WithError(err).Error("error declarando queue")
		return
	}

	// 2. Bindear al exchange fanout
	err = ch.QueueBind(
		q.Name,
		"",                // fanout ignora routing key
		"pago_confirmado", // lo publica el servicio de pagos
		false,
		nil,
	)
	if err != nil {
		log.WithError(err).Error("error binding exchange")
		return
	}

	// 3. Consumir
	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.WithError(err).Error("error al consumir queue")
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	log.Info("Suscrito a exchange pago_confirmado (fanout)")
}
