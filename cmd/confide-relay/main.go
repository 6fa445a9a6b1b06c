package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"confide/internal/relayserver"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	_ = godotenv.Load()

	listen := envOr("CONFIDE_RELAY_LISTEN", ":8080")
	redisAddr := envOr("CONFIDE_REDIS_ADDR", "localhost:6379")

	var storage relayserver.Storage
	if os.Getenv("CONFIDE_RELAY_MEMORY") != "" {
		// Single-process development mode; everything is lost on restart.
		storage = relayserver.NewMemoryStorage()
		log.Warn("using in-memory storage, queues will not survive a restart")
	} else {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		storage = relayserver.NewRedisStorage(client)
		log.WithField("addr", redisAddr).Info("using redis storage")
	}

	srv := relayserver.New(storage, log)
	log.WithField("listen", listen).Info("relay listening")
	if err := http.ListenAndServe(listen, srv.Router()); err != nil {
		log.WithError(err).Fatal("relay server stopped")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
