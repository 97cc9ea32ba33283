package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/inventory"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	domaininv "github.com/jhoicas/engage-api/internal/domain/inventory"
	"github.com/jhoicas/engage-api/internal/domain/order"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// UseCase gestor transaccional de órdenes: creación y cancelación mueven stock por el ledger
// dentro de una única transacción.
type UseCase struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	tx       repository.TxRunner
	receipts ports.ReceiptGenerator
	now      func() time.Time
}

// NewUseCase construye el caso de uso. receipts puede ser nil (comprobante deshabilitado).
func NewUseCase(orders repository.OrderRepository, users repository.UserRepository, tx repository.TxRunner, receipts ports.ReceiptGenerator) *UseCase {
	return &UseCase{orders: orders, users: users, tx: tx, receipts: receipts, now: time.Now}
}

// Create crea la orden con todas sus líneas o nada. Cada línea bloquea su producto,
// descuenta stock (sin sobreventa) y toma el precio vigente como snapshot.
// Las líneas repetidas se fusionan y los productos se bloquean en orden de id.
func (uc *UseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order must have at least one item", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrInvalidInput)
		}
	}
	customerID, err := uc.resolveCustomer(ctx, actor, in.CustomerID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	o := &entity.Order{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		Status:          entity.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.OrderNumber = orderNumber(now, o.ID)

	lines := mergeItems(in.Items)
	err = uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		items := make([]entity.OrderItem, 0, len(lines))
		for _, req := range lines {
			p, err := tx.Products.GetForUpdate(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if p == nil || !p.IsActive {
				return fmt.Errorf("%w: product %s not found or inactive", domain.ErrNotFound, req.ProductID)
			}
			if _, err := inventory.RecordLocked(ctx, tx, p, inventory.Entry{
				ProductID:    p.ID,
				Quantity:     req.Quantity,
				Operation:    domaininv.OpDecrement,
				Reason:       entity.MovementReasonOrder,
				ReferenceID:  o.ID,
				ActorID:      actor.ID,
				RequireStock: true,
			}); err != nil {
				return err
			}
			items = append(items, entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     o.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    req.Quantity,
				UnitPrice:   p.Price,
				TotalPrice:  p.Price.Mul(decimalInt(req.Quantity)),
			})
		}
		o.TotalAmount = order.Total(items)
		if err := tx.Orders.Create(ctx, o); err != nil {
			return err
		}
		for i := range items {
			if err := tx.Orders.AddItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		o.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, o.ID)
}

// Cancel repone el stock de cada línea y marca la orden como cancelled. Solo órdenes
// pending/processing; una segunda cancelación es ErrInvalidTransition y no toca stock.
func (uc *UseCase) Cancel(ctx context.Context, actor authz.Actor, id string, in dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	err := uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		o, err := uc.lockVisible(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if err := order.CheckTransition(o.Status, entity.OrderStatusCancelled); err != nil {
			return err
		}
		items, err := tx.Orders.ListItems(ctx, o.ID)
		if err != nil {
			return err
		}
		// mismo orden de bloqueo que Create
		sort.SliceStable(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
		for _, it := range items {
			if _, _, err := inventory.Record(ctx, tx, inventory.Entry{
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				Operation:   domaininv.OpIncrement,
				Reason:      entity.MovementReasonOrderCancellation,
				ReferenceID: o.ID,
				ActorID:     actor.ID,
			}); err != nil {
				return err
			}
		}
		return tx.Orders.UpdateStatus(ctx, o.ID, entity.OrderStatusCancelled, strings.TrimSpace(in.Reason))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, id)
}

// mergeItems suma cantidades por producto y ordena por ProductID. Bloquear siempre
// en el mismo orden evita el interbloqueo entre dos órdenes con los mismos productos.
func mergeItems(in []dto.OrderItemRequest) []dto.OrderItemRequest {
	idx := make(map[string]int, len(in))
	out := make([]dto.OrderItemRequest, 0, len(in))
	for _, it := range in {
		if i, ok := idx[it.ProductID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		idx[it.ProductID] = len(out)
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// UpdateStatus cambio de estado validado contra la tabla de transiciones.
// Pasar a cancelled equivale a Cancel (repone stock).
func (uc *UseCase) UpdateStatus(ctx context.Context, actor authz.Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if in.Status == entity.OrderStatusCancelled {
		return uc.Cancel(ctx, actor, id, dto.CancelOrderRequest{Reason: in.Reason})
	}
	err := uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		o, err := uc.lockVisible(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		if err := order.CheckTransition(o.Status, in.Status); err != nil {
			return err
		}
		return tx.Orders.UpdateStatus(ctx, o.ID, in.Status, "")
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, id)
}

// Get orden con sus líneas. Un customer solo ve las propias.
func (uc *UseCase) Get(ctx context.Context, actor authz.Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// List órdenes, más recientes primero. Para un customer se fuerza su propio id.
func (uc *UseCase) List(ctx context.Context, actor authz.Actor, q dto.OrderListQuery) (*dto.PageResponse[dto.OrderResponse], error) {
	f, err := Filter(q)
	if err != nil {
		return nil, err
	}
	if actor.Role == entity.RoleCustomer {
		f.CustomerID = actor.ID
	}
	page := q.Normalize()
	list, total, err := uc.orders.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToOrderResponse(o))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// Receipt comprobante PDF de la orden.
func (uc *UseCase) Receipt(ctx context.Context, actor authz.Actor, id string) ([]byte, string, error) {
	if uc.receipts == nil {
		return nil, "", fmt.Errorf("receipt generator not configured")
	}
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.receipts.Generate(o)
	if err != nil {
		return nil, "", fmt.Errorf("generate receipt: %w", err)
	}
	return pdf, o.OrderNumber + ".pdf", nil
}

func (uc *UseCase) load(ctx context.Context, actor authz.Actor, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order not found", domain.ErrNotFound)
	}
	if !canSee(actor, o) {
		return nil, domain.ErrForbidden
	}
	if o.Items, err = uc.orders.ListItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *UseCase) lockVisible(ctx context.Context, tx repository.TxRepos, actor authz.Actor, id string) (*entity.Order, error) {
	o, err := tx.Orders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order not found", domain.ErrNotFound)
	}
	if !canSee(actor, o) {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (uc *UseCase) resolveCustomer(ctx context.Context, actor authz.Actor, requested string) (string, error) {
	if actor.Role == entity.RoleCustomer || requested == "" || requested == actor.ID {
		return actor.ID, nil
	}
	u, err := uc.users.GetByID(ctx, requested)
	if err != nil {
		return "", err
	}
	if u == nil || !u.IsActive {
		return "", fmt.Errorf("%w: customer not found", domain.ErrNotFound)
	}
	return u.ID, nil
}

func canSee(actor authz.Actor, o *entity.Order) bool {
	return actor.Role != entity.RoleCustomer || o.CustomerID == actor.ID
}

// orderNumber ORD-YYYYMMDD-XXXXXXXX con los primeros 8 caracteres del id.
func orderNumber(at time.Time, id string) string {
	short := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), short)
}

// Filter convierte la query del listado en filtro de repositorio.
func Filter(q dto.OrderListQuery) (repository.OrderFilter, error) {
	if q.Status != "" && !order.ValidStatus(q.Status) {
		return repository.OrderFilter{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, q.Status)
	}
	from, to, err := q.DateRangeQuery.Parse()
	if err != nil {
		return repository.OrderFilter{}, err
	}
	return repository.OrderFilter{
		Query:  strings.TrimSpace(q.Query),
		Status: q.Status,
		From:   from,
		To:     to,
	}, nil
}

// ToOrderResponse mapea la orden (con sus líneas si están cargadas).
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		CustomerID:         o.CustomerID,
		CustomerEmail:      o.CustomerEmail,
		CustomerName:       o.CustomerName,
		Status:             o.Status,
		TotalAmount:        o.TotalAmount,
		ShippingAddress:    o.ShippingAddress,
		BillingAddress:     o.BillingAddress,
		PaymentMethod:      o.PaymentMethod,
		Notes:              o.Notes,
		CancellationReason: o.CancellationReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return out
}

func decimalInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
