package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"compras-service/internal/config"
	"compras-service/internal/controller"
	"compras-service/internal/middleware"
	"compras-service/internal/rabbit"
	"compras-service/internal/repository"
	"compras-service/internal/search"
	"compras-service/internal/service"
)

func main() {
	cfg := config.Load()

	// Conexión a MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	// Conexión a RabbitMQ
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("Error conectando a RabbitMQ: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Error creando canal en RabbitMQ: %v", err)
	}

	publisher, err := rabbit.NewPublisher(ch)
	if err != nil {
		log.Fatalf("Error declarando exchange: %v", err)
	}

	// Repositorio y servicios
	repo := repository.NewMongoCompraRepository(db)
	authService := service.NewAuthService(cfg.AuthURL)
	catalogService := service.NewCatalogService(cfg.CatalogURL)
	comprasService := service.NewComprasService(repo, authService, catalogService)
	checkoutService := service.NewCheckoutService(comprasService, catalogService, publisher)
	buscador := search.NewBuscador(comprasService, authService)

	// Handlers
	ctrl := controller.NewCompraController(comprasService, checkoutService, buscador)

	// Router
	r := gin.Default()

	// Rutas públicas
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/compras/estados", ctrl.ListarEstados)

	// Rutas protegidas (requieren token)
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(authService))

	auth.POST("/compras/checkout", ctrl.RealizarCompra)
	auth.GET("/compras/mias", ctrl.MisCompras)

	// Rutas admin
	admin := auth.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/compras/buscar", ctrl.BuscarCompras)
	admin.PATCH("/compras/:id/estado", ctrl.CambiarEstado)
	admin.POST("/compras/estados", ctrl.CambiarEstados)

	rabbit.SetupConsumers(ch, comprasService)

	// Ejecutar servidor
	log.Printf("Compras Service ejecutándose en puerto %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
