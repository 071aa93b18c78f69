// config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	MongoURI    string
	MongoDBName string
	AuthURL     string
	CatalogURL  string
	RabbitURL   string
	Port        string
}

func Load() *Config {
	// .env es opcional: en contenedores las variables vienen del entorno.
	if err := godotenv.Load(); err != nil {
		log.Debug("no se encontró archivo .env, se usa el entorno")
	}

	return &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://host.docker.internal:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "tienda_brujas_db"),
		AuthURL:     getEnv("AUTH_URL", "http://host.docker.internal:3000"),
		CatalogURL:  getEnv("CATALOG_URL", "http://host.docker.internal:3002"),
		RabbitURL:   getEnv("RABBIT_URL", "amqp://host.docker.internal"),
		Port:        getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
