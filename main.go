package main

import (
	"os"

	"github.com/DedS3t/monopoly-ledger/app/controllers"
	"github.com/DedS3t/monopoly-ledger/pkg/routes"
	"github.com/DedS3t/monopoly-ledger/platform/logging"
	socket "github.com/DedS3t/monopoly-ledger/platform/sockets"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	logging.Init()

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(os.Getenv("JWT_SECRET")),
	}))

	app.Get("/user/cur", controllers.Cur)
	go socket.CreateSocketIOServer()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "4101"
	}
	app.Listen(":" + port)
}
