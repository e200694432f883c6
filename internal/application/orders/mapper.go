package orders

import (
	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// ToOrderResponse convierte la entidad a su DTO de salida.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			Total:         it.Total,
			SelectedSize:  it.SelectedSize,
			SelectedColor: it.SelectedColor,
		})
	}
	atts := make([]dto.OrderAttachmentResponse, 0, len(o.Attachments))
	for _, a := range o.Attachments {
		atts = append(atts, toAttachmentResponse(a))
	}
	return dto.OrderResponse{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		CustomerName:      o.CustomerName,
		Date:              o.Date,
		Status:            o.Status,
		Items:             items,
		ShippingCost:      o.ShippingCost,
		InsuranceCost:     o.InsuranceCost,
		TotalAmount:       o.TotalAmount,
		TrackingNumber:    o.TrackingNumber,
		LogisticsProvider: o.LogisticsProvider,
		EstimatedDelivery: o.EstimatedDelivery,
		Attachments:       atts,
		PaymentTerms:      o.PaymentTerms,
		DueDate:           o.DueDate,
		PaymentStatus:     o.PaymentStatus,
		RemindersSent:     o.RemindersSent,
	}
}

func toAttachmentResponse(a entity.OrderAttachment) dto.OrderAttachmentResponse {
	return dto.OrderAttachmentResponse{
		ID:         a.ID,
		Name:       a.Name,
		Type:       a.Type,
		URL:        a.URL,
		Date:       a.Date,
		UploadedBy: a.UploadedBy,
	}
}
