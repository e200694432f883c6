// Package orders implementa el ciclo de vida de los pedidos de venta y la verificación de despacho.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/fulfillment"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/pkg/textfold"
)

// Options reglas configurables del ciclo de pedidos.
type Options struct {
	RequireFullVerification bool
	DefaultPaymentTerms     int
}

// UseCase casos de uso de pedidos.
type UseCase struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	txRunner     TxRunner
	ledger       *inventory.Ledger
	notifier     *notification.UseCase
	metrics      ports.MetricsRecorder
	sessions     *Sessions
	opts         Options
	now          func() time.Time
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	txRunner TxRunner,
	ledger *inventory.Ledger,
	notifier *notification.UseCase,
	metrics ports.MetricsRecorder,
	sessions *Sessions,
	opts Options,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if sessions == nil {
		sessions = NewSessions()
	}
	return &UseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txRunner:     txRunner,
		ledger:       ledger,
		notifier:     notifier,
		metrics:      metrics,
		sessions:     sessions,
		opts:         opts,
		now:          time.Now,
	}
}

// ── Alta y consulta ─────────────────────────────────────────────────────────

type lineKey struct{ product, size, color string }

// Create registra un pedido en estado Pendiente. Las líneas del mismo producto y variante se fusionan.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || in.ShippingCost.IsNegative() || in.InsuranceCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, companyID, strings.TrimSpace(in.CustomerID))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %q no existe: %w", in.CustomerID, domain.ErrInvalidInput)
	}
	terms := uc.opts.DefaultPaymentTerms
	if in.PaymentTerms != nil {
		terms = *in.PaymentTerms
	}
	if terms < 0 {
		return nil, domain.ErrInvalidInput
	}
	date := uc.now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	var created *entity.Order
	var notif *entity.Notification
	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, notifRepo repository.NotificationRepository) error {
		items, err := uc.buildItems(ctx, productRepo, companyID, in.Items)
		if err != nil {
			return err
		}
		id, err := nextOrderID(ctx, orderRepo, companyID, date.Year())
		if err != nil {
			return err
		}
		total := in.ShippingCost.Add(in.InsuranceCost)
		for _, it := range items {
			total = total.Add(it.Total)
		}
		status := entity.PaymentPending
		if terms == 0 {
			status = entity.PaymentPaid
		}
		now := uc.now()
		created = &entity.Order{
			ID:            id,
			CompanyID:     companyID,
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			Date:          date,
			Status:        entity.OrderStatusPending,
			Items:         items,
			ShippingCost:  in.ShippingCost,
			InsuranceCost: in.InsuranceCost,
			TotalAmount:   total,
			PaymentTerms:  terms,
			DueDate:       date.AddDate(0, 0, terms),
			PaymentStatus: status,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := orderRepo.Create(ctx, created); err != nil {
			return err
		}
		notif = uc.notifier.New(companyID, "Nuevo Pedido",
			fmt.Sprintf("Pedido #%s de %s por $%s (%d unidades).", created.ID, created.CustomerName, total.StringFixed(2), created.RequiredUnits()),
			entity.NotificationInfo, notification.RoleSales, notification.RoleWarehouse)
		return uc.notifier.Record(ctx, notifRepo, notif)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Dispatch(ctx, notif)
	uc.metrics.OrderCreated(companyID)
	out := ToOrderResponse(created)
	return &out, nil
}

func (uc *UseCase) buildItems(ctx context.Context, productRepo repository.ProductRepository, companyID string, reqs []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	index := make(map[lineKey]int)
	for _, r := range reqs {
		if r.Quantity < 1 || (r.UnitPrice != nil && r.UnitPrice.IsNegative()) {
			return nil, domain.ErrInvalidInput
		}
		p, err := productRepo.GetByID(ctx, companyID, r.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %q no existe: %w", r.ProductID, domain.ErrInvalidInput)
		}
		price := p.SalePrice
		if r.UnitPrice != nil {
			price = *r.UnitPrice
		}
		k := lineKey{p.ID, strings.TrimSpace(r.SelectedSize), strings.TrimSpace(r.SelectedColor)}
		if i, ok := index[k]; ok {
			items[i].Quantity += r.Quantity
			items[i].Total = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
			continue
		}
		index[k] = len(items)
		items = append(items, entity.OrderItem{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Quantity:      r.Quantity,
			UnitPrice:     price,
			Total:         price.Mul(decimal.NewFromInt(int64(r.Quantity))),
			SelectedSize:  k.size,
			SelectedColor: k.color,
		})
	}
	return items, nil
}

// nextOrderID ORD-<año>-<consecutivo de 3 dígitos>, saltando IDs ya usados.
func nextOrderID(ctx context.Context, orderRepo repository.OrderRepository, companyID string, year int) (string, error) {
	n, err := orderRepo.CountByCompany(ctx, companyID)
	if err != nil {
		return "", err
	}
	for seq := n + 1; ; seq++ {
		id := fmt.Sprintf("ORD-%d-%03d", year, seq)
		existing, err := orderRepo.GetByID(ctx, companyID, id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return id, nil
		}
	}
}

// List pedidos más recientes primero, con búsqueda por ID o cliente y filtro de estado.
func (uc *UseCase) List(ctx context.Context, companyID string, f dto.OrderFilter) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if !textfold.Match(f.Search, o.ID, o.CustomerName) {
			continue
		}
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// Get devuelve un pedido.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

func (uc *UseCase) get(ctx context.Context, companyID, id string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ── Cambio de estado ────────────────────────────────────────────────────────

// RequestStatusChange pasar a Enviado abre (o reinicia) la verificación por escaneo sin cambiar el estado.
// Cualquier otro cambio se aplica de inmediato.
func (uc *UseCase) RequestStatusChange(ctx context.Context, companyID, id, status string) (*dto.StatusChangeResponse, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	o, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if status == entity.OrderStatusShipped && o.Status != entity.OrderStatusShipped {
		v := uc.sessions.Start(o, uc.now())
		return &dto.StatusChangeResponse{VerificationRequired: true, Verification: &v}, nil
	}
	updated, err := uc.CommitStatus(ctx, companyID, id, status, nil)
	if err != nil {
		return nil, err
	}
	return &dto.StatusChangeResponse{Order: updated}, nil
}

// CommitStatus aplica el estado en una transacción. Al pasar a Enviado descuenta el stock del pedido.
// session es la verificación confirmada, si la hubo.
func (uc *UseCase) CommitStatus(ctx context.Context, companyID, id, status string, session *fulfillment.Session) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	var updated *entity.Order
	var notif *entity.Notification
	shippedUnits := -1
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, notifRepo repository.NotificationRepository) error {
		o, err := orderRepo.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		prev := o.Status
		o.Status = status
		o.UpdatedAt = uc.now()
		if err := orderRepo.Update(ctx, o); err != nil {
			return err
		}
		updated = o

		if status == entity.OrderStatusShipped && prev != entity.OrderStatusShipped {
			units, err := uc.ledger.Deduct(ctx, productRepo, o)
			if err != nil {
				return err
			}
			shippedUnits = units
			msg := fmt.Sprintf("Pedido #%s de %s despachado. %d unidades descontadas del inventario.", o.ID, o.CustomerName, units)
			if session != nil {
				p := session.Progress()
				msg += fmt.Sprintf(" Verificación QR: %d/%d (%d%%).", p.Scanned, p.Required, p.Percent)
			}
			notif = uc.notifier.New(companyID, "Pedido Enviado", msg, entity.NotificationSuccess,
				notification.RoleWarehouse, notification.RoleSales, notification.RoleCEO)
		} else {
			notif = uc.notifier.New(companyID, "Actualización de Pedido",
				fmt.Sprintf("Pedido #%s cambió a %s.", o.ID, status), entity.NotificationInfo,
				notification.RoleSales, notification.RoleCEO)
		}
		return uc.notifier.Record(ctx, notifRepo, notif)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Dispatch(ctx, notif)
	if shippedUnits >= 0 {
		uc.metrics.OrderShipped(companyID, shippedUnits)
	}
	out := ToOrderResponse(updated)
	return &out, nil
}

// ── Verificación de despacho ────────────────────────────────────────────────

// Verification estado de la verificación activa del pedido.
func (uc *UseCase) Verification(ctx context.Context, companyID, id string) (*dto.VerificationResponse, error) {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return nil, err
	}
	v, err := uc.sessions.Get(companyID, id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Scan registra una lectura del escáner. Los errores de dominio dejan los conteos y el pedido intactos.
func (uc *UseCase) Scan(ctx context.Context, companyID, id, payload string) (*dto.ScanResponse, error) {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return nil, err
	}
	productID, v, err := uc.sessions.Scan(companyID, id, payload)
	uc.metrics.ScanRecorded(scanResult(err))
	if err != nil {
		return nil, err
	}
	return &dto.ScanResponse{ProductID: productID, Verification: v}, nil
}

func scanResult(err error) string {
	switch err {
	case nil:
		return "ok"
	case domain.ErrForeignProduct:
		return "foreign"
	case domain.ErrItemAlreadyComplete:
		return "complete"
	case domain.ErrInvalidScan:
		return "invalid"
	default:
		return "error"
	}
}

// ConfirmShipment confirma la verificación y marca el pedido como Enviado.
// Con verificación estricta una sesión incompleta se rechaza y queda activa.
func (uc *UseCase) ConfirmShipment(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	sess, ok := uc.sessions.Take(companyID, id)
	if !ok {
		return nil, domain.ErrVerificationNotActive
	}
	if uc.opts.RequireFullVerification && !sess.Progress().Complete {
		uc.sessions.Put(sess)
		return nil, domain.ErrVerificationIncomplete
	}
	out, err := uc.CommitStatus(ctx, companyID, id, entity.OrderStatusShipped, sess)
	if err != nil {
		uc.sessions.Put(sess)
		return nil, err
	}
	return out, nil
}

// CancelVerification descarta la sesión; el pedido conserva su estado.
func (uc *UseCase) CancelVerification(ctx context.Context, companyID, id string) error {
	if !uc.sessions.Cancel(companyID, id) {
		return domain.ErrVerificationNotActive
	}
	return nil
}

// ── Logística, adjuntos y pago ──────────────────────────────────────────────

// UpdateTracking actualiza guía, transportadora y fecha estimada. Los campos nulos no cambian.
func (uc *UseCase) UpdateTracking(ctx context.Context, companyID, id string, in dto.TrackingRequest) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, id, func(o *entity.Order) error {
		if in.TrackingNumber != nil {
			o.TrackingNumber = strings.TrimSpace(*in.TrackingNumber)
		}
		if in.LogisticsProvider != nil {
			o.LogisticsProvider = strings.TrimSpace(*in.LogisticsProvider)
		}
		if in.EstimatedDelivery != nil {
			d := *in.EstimatedDelivery
			o.EstimatedDelivery = &d
		}
		return nil
	})
}

// AddAttachment adjunta un documento al pedido.
func (uc *UseCase) AddAttachment(ctx context.Context, companyID, id, uploadedBy string, in dto.AttachmentRequest) (*dto.OrderAttachmentResponse, error) {
	switch in.Type {
	case entity.OrderAttachmentInvoice, entity.OrderAttachmentImage, entity.OrderAttachmentDocument:
	default:
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return nil, domain.ErrInvalidInput
	}
	att := entity.OrderAttachment{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(in.Name),
		Type:       in.Type,
		URL:        in.URL,
		Date:       uc.now(),
		UploadedBy: uploadedBy,
	}
	if _, err := uc.mutate(ctx, companyID, id, func(o *entity.Order) error {
		o.Attachments = append(o.Attachments, att)
		return nil
	}); err != nil {
		return nil, err
	}
	out := toAttachmentResponse(att)
	return &out, nil
}

// ListAttachments adjuntos del pedido.
func (uc *UseCase) ListAttachments(ctx context.Context, companyID, id string) ([]dto.OrderAttachmentResponse, error) {
	o, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o).Attachments, nil
}

// UpdatePaymentStatus cambio manual del estado de pago (p. ej. registrar el cobro).
func (uc *UseCase) UpdatePaymentStatus(ctx context.Context, companyID, id, status string) (*dto.OrderResponse, error) {
	if !entity.IsValidPaymentStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return uc.mutate(ctx, companyID, id, func(o *entity.Order) error {
		o.PaymentStatus = status
		return nil
	})
}

// mutate lee con bloqueo, aplica fn y guarda dentro de una transacción.
func (uc *UseCase) mutate(ctx context.Context, companyID, id string, fn func(o *entity.Order) error) (*dto.OrderResponse, error) {
	var updated *entity.Order
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, _ repository.ProductRepository, _ repository.NotificationRepository) error {
		o, err := orderRepo.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := fn(o); err != nil {
			return err
		}
		o.UpdatedAt = uc.now()
		updated = o
		return orderRepo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(updated)
	return &out, nil
}
