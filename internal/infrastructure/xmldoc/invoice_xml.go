// Package xmldoc genera el documento XML (UBL 2.1 simplificado) de una factura
// con un digest SHA-256 sobre su forma canónica C14N para detectar alteraciones.
package xmldoc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// Namespaces UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NsExt     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	NsDs      = "http://www.w3.org/2000/09/xmldsig#"

	// Currency moneda de los montos.
	Currency = "USD"
)

// ErrDigestMismatch el contenido no coincide con el digest embebido.
var ErrDigestMismatch = errors.New("xml: digest no coincide")

var _ billing.InvoiceXMLGenerator = (*Generator)(nil)

// Generator construye el XML de la factura.
type Generator struct{}

// NewGenerator crea el generador.
func NewGenerator() *Generator { return &Generator{} }

// GenerateInvoiceXML arma el documento, calcula el digest de la forma canónica
// y lo inserta en ext:UBLExtensions como primer hijo de Invoice.
func (g *Generator) GenerateInvoiceXML(_ context.Context, invoice *entity.Invoice, company *entity.Company, customer *entity.Customer) ([]byte, error) {
	if invoice == nil || company == nil || customer == nil {
		return nil, fmt.Errorf("xml: factura, empresa y cliente son obligatorios")
	}
	root := buildInvoice(invoice, company, customer)

	digest, err := Digest(root)
	if err != nil {
		return nil, err
	}
	root.InsertChildAt(0, extensions(digest))

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(root)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}

// Digest SHA-256 (base64) de la forma canónica C14N del elemento.
func Digest(root *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(root.Copy())
	raw, err := doc.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xml: serializar para digest: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Verify recalcula el digest sin la extensión y lo compara con el embebido.
func Verify(data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("xml: parsear: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("xml: documento sin raíz")
	}
	ext := root.SelectElement("ext:UBLExtensions")
	if ext == nil {
		return fmt.Errorf("xml: no se encontró ext:UBLExtensions")
	}
	value := ext.FindElement("./ext:UBLExtension/ext:ExtensionContent/ds:DigestValue")
	if value == nil {
		return fmt.Errorf("xml: no se encontró ds:DigestValue")
	}
	embedded := value.Text()
	root.RemoveChild(ext)

	got, err := Digest(root)
	if err != nil {
		return err
	}
	if got != embedded {
		return ErrDigestMismatch
	}
	return nil
}

// ── Construcción ──────────────────────────────────────────────────────────────

func buildInvoice(inv *entity.Invoice, company *entity.Company, customer *entity.Customer) *etree.Element {
	root := etree.NewElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)
	root.CreateAttr("xmlns:ext", NsExt)
	root.CreateAttr("xmlns:ds", NsDs)
	root.CreateAttr("Id", inv.ID)

	cbc(root, "UBLVersionID", "2.1")
	cbc(root, "ID", inv.ID)
	cbc(root, "IssueDate", inv.IssueDate.Format("2006-01-02"))
	cbc(root, "DueDate", inv.DueDate.Format("2006-01-02"))
	cbc(root, "InvoiceTypeCode", "380")
	cbc(root, "Note", "Estado de pago: "+inv.Status)
	cbc(root, "DocumentCurrencyCode", Currency)

	ref := root.CreateElement("cac:OrderReference")
	cbc(ref, "ID", inv.OrderID)

	supplier := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")
	cbc(supplier.CreateElement("cac:PartyIdentification"), "ID", company.ID)
	cbc(supplier.CreateElement("cac:PartyName"), "Name", company.Name)

	buyer := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	if customer.ID != "" {
		cbc(buyer.CreateElement("cac:PartyIdentification"), "ID", customer.ID)
	}
	cbc(buyer.CreateElement("cac:PartyName"), "Name", customer.Name)
	if customer.Email != "" || customer.Phone != "" {
		contact := buyer.CreateElement("cac:Contact")
		if customer.Phone != "" {
			cbc(contact, "Telephone", customer.Phone)
		}
		if customer.Email != "" {
			cbc(contact, "ElectronicMail", customer.Email)
		}
	}

	lines := decimal.Zero
	for _, it := range inv.Items {
		lines = lines.Add(it.Total)
	}
	charges := inv.Amount.Sub(lines)
	if charges.IsNegative() {
		charges = decimal.Zero
	}
	total := root.CreateElement("cac:LegalMonetaryTotal")
	amount(total, "LineExtensionAmount", lines)
	amount(total, "ChargeTotalAmount", charges)
	amount(total, "PayableAmount", inv.Amount)

	for i, it := range inv.Items {
		line := root.CreateElement("cac:InvoiceLine")
		cbc(line, "ID", strconv.Itoa(i+1))
		q := cbc(line, "InvoicedQuantity", strconv.Itoa(it.Quantity))
		q.CreateAttr("unitCode", "NIU")
		amount(line, "LineExtensionAmount", it.Total)
		item := line.CreateElement("cac:Item")
		cbc(item, "Description", it.ProductName)
		if it.ProductID != "" {
			cbc(item.CreateElement("cac:SellersItemIdentification"), "ID", it.ProductID)
		}
		property(item, "Talla", it.SelectedSize)
		property(item, "Color", it.SelectedColor)
		amount(line.CreateElement("cac:Price"), "PriceAmount", it.UnitPrice)
	}
	return root
}

func extensions(digest string) *etree.Element {
	ext := etree.NewElement("ext:UBLExtensions")
	content := ext.CreateElement("ext:UBLExtension").CreateElement("ext:ExtensionContent")
	content.CreateElement("ds:DigestMethod").CreateAttr("Algorithm", "http://www.w3.org/2001/04/xmlenc#sha256")
	content.CreateElement("ds:DigestValue").SetText(digest)
	return ext
}

func cbc(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement("cbc:" + tag)
	el.SetText(value)
	return el
}

func amount(parent *etree.Element, tag string, v decimal.Decimal) {
	cbc(parent, tag, v.StringFixed(2)).CreateAttr("currencyID", Currency)
}

func property(item *etree.Element, name, value string) {
	if value == "" {
		return
	}
	p := item.CreateElement("cac:AdditionalItemProperty")
	cbc(p, "Name", name)
	cbc(p, "Value", value)
}
