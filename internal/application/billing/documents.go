package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// DocumentsUseCase genera la representación PDF y XML de una factura.
type DocumentsUseCase struct {
	finance      *UseCase
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	pdf          InvoicePDFGenerator
	xml          InvoiceXMLGenerator
}

// NewDocumentsUseCase construye el caso de uso inyectando los generadores.
func NewDocumentsUseCase(
	finance *UseCase,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	pdf InvoicePDFGenerator,
	xml InvoiceXMLGenerator,
) *DocumentsUseCase {
	return &DocumentsUseCase{
		finance:      finance,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		pdf:          pdf,
		xml:          xml,
	}
}

// load reúne factura, empresa y cliente. Si el cliente ya no existe se usa el nombre del pedido.
func (uc *DocumentsUseCase) load(ctx context.Context, companyID, orderID string) (*entity.Invoice, *entity.Company, *entity.Customer, error) {
	inv, _, err := uc.finance.invoiceFor(ctx, companyID, orderID)
	if err != nil {
		return nil, nil, nil, err
	}
	company, err := uc.finance.company(ctx, companyID)
	if err != nil {
		return nil, nil, nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, companyID, inv.CustomerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("documentos: obtener cliente: %w", err)
	}
	if customer == nil {
		customer = &entity.Customer{ID: inv.CustomerID, CompanyID: companyID, Name: inv.CustomerName}
	}
	return inv, company, customer, nil
}

// InvoicePDF devuelve el PDF de la factura del pedido y su nombre de archivo.
func (uc *DocumentsUseCase) InvoicePDF(ctx context.Context, companyID, orderID string) ([]byte, string, error) {
	inv, company, customer, err := uc.load(ctx, companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateInvoicePDF(ctx, inv, company, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return out, fmt.Sprintf("factura_%s.pdf", inv.ID), nil
}

// InvoiceXML devuelve el XML de la factura del pedido y su nombre de archivo.
func (uc *DocumentsUseCase) InvoiceXML(ctx context.Context, companyID, orderID string) ([]byte, string, error) {
	inv, company, customer, err := uc.load(ctx, companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.xml.GenerateInvoiceXML(ctx, inv, company, customer)
	if err != nil {
		return nil, "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return out, fmt.Sprintf("factura_%s.xml", inv.ID), nil
}
