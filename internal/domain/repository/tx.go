package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  ProductRepository
	Movements InventoryMovementRepository
	Orders    OrderRepository
	Offers    OfferRepository
	Tickets   TicketRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil,
// rollback en cualquier otro caso (error o pánico). El error de fn se devuelve sin cambios.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
