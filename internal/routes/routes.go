package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mithil0407/playernumberone/internal/config"
	"github.com/mithil0407/playernumberone/internal/gateway"
	"github.com/mithil0407/playernumberone/internal/handlers"
	"github.com/mithil0407/playernumberone/internal/repository"
	"github.com/mithil0407/playernumberone/internal/services"
	slotws "github.com/mithil0407/playernumberone/internal/websocket"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, cache *redis.Client) {
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	gatewayClient := gateway.NewClient(cfg.GatewayKeyID, cfg.GatewayKeySecret, cfg.GatewayBaseURL)
	slotCache := services.NewSlotCache(cache)

	slotHub := slotws.NewHub()
	go slotHub.Run()

	paymentService := services.NewPaymentService(gatewayClient, customerRepo, orderRepo)
	webhookService := services.NewWebhookService(cfg.WebhookSecret, orderRepo)
	sessionService := services.NewSessionService(sessionRepo, customerRepo, orderRepo, slotCache, slotHub)

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	webhookHandler := handlers.NewWebhookHandler(webhookService, cfg.AppEnv)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	api := app.Group("/api")

	payment := api.Group("/payment")
	payment.Post("", paymentHandler.CreatePayment)
	payment.Get("/orders/:gatewayOrderID", paymentHandler.GetOrderStatus)
	payment.Post("/webhook", webhookHandler.HandleWebhook)
	payment.Get("/webhook", webhookHandler.VerifyWebhook)

	sessions := api.Group("/sessions")
	sessions.Post("", sessionHandler.BookSession)
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/slots", sessionHandler.ListScheduledSlots)
	sessions.Get("/availability", sessionHandler.CheckAvailability)

	api.Use("/v1/slots/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/v1/slots/ws", websocket.New(func(conn *websocket.Conn) {
		client := slotws.NewClient(slotHub, conn)
		slotHub.Register(client)
		go client.WritePump()
		client.ReadPump()
	}))
}
