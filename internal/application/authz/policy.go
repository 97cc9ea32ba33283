// Package authz contiene la tabla declarativa de autorización: cada operación de la API
// se asocia a los roles que pueden invocarla. Las rutas referencian la operación, nunca
// listas de roles sueltas.
package authz

import (
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// Operation identificador estable de una operación protegida.
type Operation string

// Operaciones protegidas.
const (
	AuthLogout         Operation = "auth.logout"
	AuthRegisterClient Operation = "auth.register_client"
	AuthGetClient      Operation = "auth.get_client"
	AuthUpdateUser     Operation = "auth.update_user"

	ProductList       Operation = "inventory.product_list"
	ProductGet        Operation = "inventory.product_get"
	ProductCreate     Operation = "inventory.product_create"
	ProductUpdate     Operation = "inventory.product_update"
	ProductDelete     Operation = "inventory.product_delete"
	CategoryList      Operation = "inventory.category_list"
	CategoryCreate    Operation = "inventory.category_create"
	StockGet          Operation = "inventory.stock_get"
	StockAdjust       Operation = "inventory.stock_adjust"
	StockMovementList Operation = "inventory.stock_movements"

	OrderList         Operation = "orders.list"
	OrderGet          Operation = "orders.get"
	OrderCreate       Operation = "orders.create"
	OrderUpdateStatus Operation = "orders.update_status"
	OrderCancel       Operation = "orders.cancel"
	OrderReceipt      Operation = "orders.receipt"

	OfferList        Operation = "offers.list"
	OfferGet         Operation = "offers.get"
	OfferCreate      Operation = "offers.create"
	OfferUpdate      Operation = "offers.update"
	OfferDelete      Operation = "offers.delete"
	OfferValidate    Operation = "offers.validate"
	OfferRedeem      Operation = "offers.redeem"
	OfferUserHistory Operation = "offers.user_history"

	TicketList         Operation = "support.ticket_list"
	TicketCreate       Operation = "support.ticket_create"
	TicketGet          Operation = "support.ticket_get"
	TicketUpdateStatus Operation = "support.ticket_update_status"
	TicketAddMessage   Operation = "support.ticket_add_message"
	FAQCreate          Operation = "support.faq_create"
	FAQUpdate          Operation = "support.faq_update"
	FAQDelete          Operation = "support.faq_delete"

	AgentList       Operation = "ai.agent_list"
	AgentGet        Operation = "ai.agent_get"
	AgentCreate     Operation = "ai.agent_create"
	AgentUpdate     Operation = "ai.agent_update"
	AgentDelete     Operation = "ai.agent_delete"
	AIProcess       Operation = "ai.process"
	AIInteractions  Operation = "ai.interactions"
	CommSend        Operation = "communication.send"
	CommRead        Operation = "communication.read"
	AnalyticsRead   Operation = "analytics.read"
	DashboardRead   Operation = "dashboard.read"
	SearchProducts  Operation = "search.products"
	SearchCustomers Operation = "search.customers"
	SearchOrders    Operation = "search.orders"

	IntegrationManage Operation = "integrations.manage"
)

var (
	anyRole   = []string{entity.RoleAdmin, entity.RoleAnalyst, entity.RoleSupport, entity.RoleViewer, entity.RoleCustomer}
	staff     = []string{entity.RoleAdmin, entity.RoleAnalyst, entity.RoleSupport, entity.RoleViewer}
	adminOnly = []string{entity.RoleAdmin}
	analysts  = []string{entity.RoleAdmin, entity.RoleAnalyst}
	agents    = []string{entity.RoleAdmin, entity.RoleSupport}
	servicing = []string{entity.RoleAdmin, entity.RoleAnalyst, entity.RoleSupport}
)

// policy roles permitidos por operación.
var policy = map[Operation][]string{
	AuthLogout:         anyRole,
	AuthRegisterClient: agents,
	AuthGetClient:      anyRole,
	AuthUpdateUser:     adminOnly,

	ProductList:       anyRole,
	ProductGet:        anyRole,
	ProductCreate:     adminOnly,
	ProductUpdate:     adminOnly,
	ProductDelete:     adminOnly,
	CategoryList:      anyRole,
	CategoryCreate:    adminOnly,
	StockGet:          anyRole,
	StockAdjust:       adminOnly,
	StockMovementList: analysts,

	OrderList:         anyRole,
	OrderGet:          anyRole,
	OrderCreate:       anyRole,
	OrderUpdateStatus: adminOnly,
	OrderCancel:       anyRole,
	OrderReceipt:      anyRole,

	OfferList:        anyRole,
	OfferGet:         anyRole,
	OfferCreate:      adminOnly,
	OfferUpdate:      adminOnly,
	OfferDelete:      adminOnly,
	OfferValidate:    anyRole,
	OfferRedeem:      anyRole,
	OfferUserHistory: anyRole,

	TicketList:         anyRole,
	TicketCreate:       anyRole,
	TicketGet:          anyRole,
	TicketUpdateStatus: agents,
	TicketAddMessage:   anyRole,
	FAQCreate:          adminOnly,
	FAQUpdate:          adminOnly,
	FAQDelete:          adminOnly,

	AgentList:      anyRole,
	AgentGet:       anyRole,
	AgentCreate:    adminOnly,
	AgentUpdate:    adminOnly,
	AgentDelete:    adminOnly,
	AIProcess:      anyRole,
	AIInteractions: anyRole,

	CommSend: agents,
	CommRead: servicing,

	AnalyticsRead: analysts,
	DashboardRead: staff,

	SearchProducts:  anyRole,
	SearchCustomers: servicing,
	SearchOrders:    servicing,

	IntegrationManage: adminOnly,
}

// Roles devuelve los roles permitidos para op (nil si la operación no está registrada).
func Roles(op Operation) []string {
	return policy[op]
}

// Operations todas las operaciones registradas.
func Operations() []Operation {
	ops := make([]Operation, 0, len(policy))
	for op := range policy {
		ops = append(ops, op)
	}
	return ops
}

// Check devuelve ErrForbidden si role no puede invocar op. Una operación no registrada
// se niega siempre.
func Check(op Operation, role string) error {
	for _, r := range policy[op] {
		if r == role {
			return nil
		}
	}
	return domain.ErrForbidden
}

// CanActFor indica si actor puede ver/operar recursos del usuario ownerID:
// él mismo o cualquier rol de servicio (admin, analyst, support).
func CanActFor(actorID, actorRole, ownerID string) bool {
	if actorID == ownerID {
		return true
	}
	switch actorRole {
	case entity.RoleAdmin, entity.RoleAnalyst, entity.RoleSupport:
		return true
	}
	return false
}

// Actor principal autenticado que invoca un caso de uso.
type Actor struct {
	ID   string
	Role string
}
