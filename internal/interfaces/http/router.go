package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/ai"
	appanalytics "github.com/jhoicas/engage-api/internal/application/analytics"
	"github.com/jhoicas/engage-api/internal/application/auth"
	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/communication"
	"github.com/jhoicas/engage-api/internal/application/integrations"
	"github.com/jhoicas/engage-api/internal/application/inventory"
	"github.com/jhoicas/engage-api/internal/application/offers"
	"github.com/jhoicas/engage-api/internal/application/orders"
	"github.com/jhoicas/engage-api/internal/application/search"
	"github.com/jhoicas/engage-api/internal/application/support"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	InventoryUC     *inventory.UseCase
	OrdersUC        *orders.UseCase
	OffersUC        *offers.UseCase
	SupportUC       *support.UseCase
	AIUC            *ai.UseCase
	CommunicationUC *communication.UseCase
	AnalyticsUC     *appanalytics.AnalyticsUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	SearchUC        *search.UseCase
	IntegrationsUC  *integrations.UseCase
	// LoginLimiter limitador por IP para /auth/login (nil = sin límite).
	LoginLimiter fiber.Handler
}

// Router registra las rutas de la API bajo /v1. Las rutas públicas se registran antes
// del grupo protegido; cada ruta protegida declara su operación de authz.
func Router(app *fiber.App, deps RouterDeps) {
	v1 := app.Group("/v1")

	authHandler := NewAuthHandler(deps.AuthUC)
	supportHandler := NewSupportHandler(deps.SupportUC)

	// Públicas
	login := []fiber.Handler{authHandler.Login}
	if deps.LoginLimiter != nil {
		login = append([]fiber.Handler{deps.LoginLimiter}, login...)
	}
	v1.Post("/auth/login", login...)
	v1.Post("/auth/refresh", authHandler.Refresh)
	v1.Get("/support/faq/categories", supportHandler.FAQCategories)
	v1.Get("/support/faq", supportHandler.ListFAQ)

	// Rutas protegidas (requieren Bearer Token)
	protected := v1.Group("/", AuthMiddleware(deps.AuthUC))
	op := Authorize

	// Auth
	authGroup := protected.Group("/auth")
	authGroup.Post("/logout", op(authz.AuthLogout), authHandler.Logout)
	authGroup.Post("/client", op(authz.AuthRegisterClient), authHandler.RegisterClient)
	authGroup.Get("/client/:clientId", op(authz.AuthGetClient), authHandler.GetClient)
	authGroup.Patch("/users/:userId", op(authz.AuthUpdateUser), authHandler.UpdateUser)

	// Inventory
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/products", op(authz.ProductList), inventoryHandler.ListProducts)
	inv.Post("/products", op(authz.ProductCreate), inventoryHandler.CreateProduct)
	inv.Get("/products/:productId", op(authz.ProductGet), inventoryHandler.GetProduct)
	inv.Put("/products/:productId", op(authz.ProductUpdate), inventoryHandler.UpdateProduct)
	inv.Delete("/products/:productId", op(authz.ProductDelete), inventoryHandler.DeleteProduct)
	inv.Get("/categories", op(authz.CategoryList), inventoryHandler.ListCategories)
	inv.Post("/categories", op(authz.CategoryCreate), inventoryHandler.CreateCategory)
	inv.Get("/stock/:productId", op(authz.StockGet), inventoryHandler.GetStock)
	inv.Put("/stock/:productId", op(authz.StockAdjust), inventoryHandler.AdjustStock)
	inv.Get("/stock/:productId/movements", op(authz.StockMovementList), inventoryHandler.ListMovements)

	// Orders
	ord := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ord.Get("/", op(authz.OrderList), orderHandler.List)
	ord.Post("/", op(authz.OrderCreate), orderHandler.Create)
	ord.Get("/:orderId", op(authz.OrderGet), orderHandler.Get)
	ord.Put("/:orderId/status", op(authz.OrderUpdateStatus), orderHandler.UpdateStatus)
	ord.Post("/:orderId/cancel", op(authz.OrderCancel), orderHandler.Cancel)
	ord.Get("/:orderId/receipt", op(authz.OrderReceipt), orderHandler.Receipt)

	// Offers: las rutas literales van antes de /:offerId
	off := protected.Group("/offers")
	offerHandler := NewOfferHandler(deps.OffersUC)
	off.Get("/", op(authz.OfferList), offerHandler.List)
	off.Post("/", op(authz.OfferCreate), offerHandler.Create)
	off.Post("/validate", op(authz.OfferValidate), offerHandler.Validate)
	off.Post("/redeem", op(authz.OfferRedeem), offerHandler.Redeem)
	off.Get("/user/:userId", op(authz.OfferUserHistory), offerHandler.UserHistory)
	off.Get("/:offerId", op(authz.OfferGet), offerHandler.Get)
	off.Put("/:offerId", op(authz.OfferUpdate), offerHandler.Update)
	off.Delete("/:offerId", op(authz.OfferDelete), offerHandler.Delete)

	// Support
	sup := protected.Group("/support")
	sup.Get("/tickets", op(authz.TicketList), supportHandler.ListTickets)
	sup.Post("/tickets", op(authz.TicketCreate), supportHandler.CreateTicket)
	sup.Get("/tickets/:ticketId", op(authz.TicketGet), supportHandler.GetTicket)
	sup.Put("/tickets/:ticketId/status", op(authz.TicketUpdateStatus), supportHandler.UpdateTicketStatus)
	sup.Post("/tickets/:ticketId/messages", op(authz.TicketAddMessage), supportHandler.AddMessage)
	sup.Post("/faq", op(authz.FAQCreate), supportHandler.CreateFAQ)
	sup.Put("/faq/:faqId", op(authz.FAQUpdate), supportHandler.UpdateFAQ)
	sup.Delete("/faq/:faqId", op(authz.FAQDelete), supportHandler.DeleteFAQ)

	// AI
	aiGroup := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	aiGroup.Get("/agents", op(authz.AgentList), aiHandler.ListAgents)
	aiGroup.Post("/agents", op(authz.AgentCreate), aiHandler.CreateAgent)
	aiGroup.Get("/agents/:agentId", op(authz.AgentGet), aiHandler.GetAgent)
	aiGroup.Put("/agents/:agentId", op(authz.AgentUpdate), aiHandler.UpdateAgent)
	aiGroup.Delete("/agents/:agentId", op(authz.AgentDelete), aiHandler.DeleteAgent)
	aiGroup.Post("/process", op(authz.AIProcess), aiHandler.Process)
	aiGroup.Get("/interactions", op(authz.AIInteractions), aiHandler.Interactions)

	// Communication
	comm := protected.Group("/communication")
	commHandler := NewCommunicationHandler(deps.CommunicationUC)
	comm.Post("/calls", op(authz.CommSend), commHandler.InitiateCall)
	comm.Get("/calls", op(authz.CommRead), commHandler.ListCalls)
	comm.Get("/calls/:callId", op(authz.CommRead), commHandler.GetCall)
	comm.Post("/sms", op(authz.CommSend), commHandler.SendSMS)
	comm.Get("/sms", op(authz.CommRead), commHandler.ListSMS)
	comm.Post("/email", op(authz.CommSend), commHandler.SendEmail)
	comm.Get("/email", op(authz.CommRead), commHandler.ListEmail)
	comm.Post("/social", op(authz.CommSend), commHandler.SendSocial)
	comm.Get("/social", op(authz.CommRead), commHandler.ListSocial)
	// Alias histórico de clientes anteriores
	comm.Post("/socials/message", op(authz.CommSend), commHandler.SendSocial)
	comm.Get("/socials/message", op(authz.CommRead), commHandler.ListSocial)

	// Analytics
	an := protected.Group("/analytics", op(authz.AnalyticsRead))
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	an.Get("/sales", analyticsHandler.Sales)
	an.Get("/inventory", analyticsHandler.Inventory)
	an.Get("/customers", analyticsHandler.Customers)
	an.Get("/products/performance", analyticsHandler.ProductPerformance)
	an.Get("/communications", analyticsHandler.Communications)

	// Dashboard
	dash := protected.Group("/dashboard", op(authz.DashboardRead))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dash.Get("/overview", dashboardHandler.Overview)
	dash.Get("/recent-activity", dashboardHandler.RecentActivity)

	// Search
	srch := protected.Group("/search")
	searchHandler := NewSearchHandler(deps.SearchUC)
	srch.Get("/products", op(authz.SearchProducts), searchHandler.Products)
	srch.Get("/customers", op(authz.SearchCustomers), searchHandler.Customers)
	srch.Get("/orders", op(authz.SearchOrders), searchHandler.Orders)

	// Integrations
	integ := protected.Group("/integrations", op(authz.IntegrationManage))
	integrationHandler := NewIntegrationHandler(deps.IntegrationsUC)
	integ.Get("/", integrationHandler.List)
	integ.Post("/", integrationHandler.Create)
	integ.Get("/:integrationId", integrationHandler.Get)
	integ.Put("/:integrationId", integrationHandler.Update)
	integ.Delete("/:integrationId", integrationHandler.Delete)
	integ.Post("/:integrationId/test", integrationHandler.Test)
	integ.Get("/:integrationId/logs", integrationHandler.Logs)
	integ.Get("/:integrationId/feed", integrationHandler.Feed)
}
