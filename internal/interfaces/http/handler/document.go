package handler

import (
	"time"

	billingapp "github.com/gstbill/backend/internal/application/billing"
	"github.com/gstbill/backend/internal/domain/billing"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/gstbill/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentHandler handles invoice, credit note and debit note endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *billingapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *billingapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes registers document routes on the API group
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	{
		docs.POST("", h.Create)
		docs.GET("", h.List)
		docs.GET("/next-number", h.NextNumber)
		docs.GET("/:id", h.Get)
		docs.PUT("/:id", h.Update)
		docs.DELETE("/:id", h.Delete)
		docs.POST("/:id/restore", h.Restore)
		docs.PATCH("/:id/status", h.SetStatus)
	}
}

// LineItemRequest is one billable line. Amounts are strings so values
// like "0.1" survive the wire exactly.
type LineItemRequest struct {
	Description string `json:"description" binding:"required,min=1,max=500"`
	HSNCode     string `json:"hsn_code" binding:"max=8"`
	Quantity    string `json:"quantity" binding:"required"`
	Rate        string `json:"rate" binding:"required"`
	GSTRate     string `json:"gst_rate" binding:"required"`
}

// ExportDetailsRequest carries export/SEZ shipping fields
type ExportDetailsRequest struct {
	PortCode           string `json:"port_code" binding:"max=10"`
	ShippingBillNumber string `json:"shipping_bill_number" binding:"max=20"`
	ShippingBillDate   string `json:"shipping_bill_date" binding:"omitempty,datetime=2006-01-02"`
	DestinationCountry string `json:"destination_country" binding:"max=100"`
}

// CreateDocumentRequest represents a request to create a document
type CreateDocumentRequest struct {
	CustomerID string                `json:"customer_id" binding:"required,uuid"`
	Kind       string                `json:"kind" binding:"required,oneof=invoice credit_note debit_note"`
	Date       string                `json:"date" binding:"required,datetime=2006-01-02"`
	Items      []LineItemRequest     `json:"items" binding:"required,min=1,dive"`
	Reason     string                `json:"reason" binding:"max=500"`
	SupplyType string                `json:"supply_type" binding:"omitempty,oneof=B2B B2CS B2CL SEZWP SEZWOP EXPWP EXPWOP DE"`
	Export     *ExportDetailsRequest `json:"export"`
}

// UpdateDocumentRequest represents an edit to an existing document
type UpdateDocumentRequest struct {
	Items         []LineItemRequest     `json:"items" binding:"required,min=1,dive"`
	SupplyType    string                `json:"supply_type" binding:"omitempty,oneof=B2B B2CS B2CL SEZWP SEZWOP EXPWP EXPWOP DE"`
	Export        *ExportDetailsRequest `json:"export"`
	DisplayNumber string                `json:"display_number" binding:"max=50"`
}

// SetStatusRequest represents an invoice settlement status change
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unpaid partial paid"`
}

// MoneyResponse renders a monetary amount
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoneyResponse(m valueobject.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount().String(), Currency: string(m.Currency())}
}

// TaxResponse renders the computed tax split
type TaxResponse struct {
	Subtotal   MoneyResponse `json:"subtotal"`
	TaxAmount  MoneyResponse `json:"tax_amount"`
	CGST       MoneyResponse `json:"cgst"`
	SGST       MoneyResponse `json:"sgst"`
	IGST       MoneyResponse `json:"igst"`
	GrandTotal MoneyResponse `json:"grand_total"`
	InterState bool          `json:"inter_state"`
}

// DocumentResponse renders a billing document
type DocumentResponse struct {
	ID             string                `json:"id"`
	Kind           string                `json:"kind"`
	Number         string                `json:"number"`
	DisplayNumber  string                `json:"display_number"`
	Date           string                `json:"date"`
	CustomerID     string                `json:"customer_id"`
	Items          []billing.LineItem    `json:"items"`
	Tax            TaxResponse           `json:"tax"`
	SupplyType     string                `json:"supply_type"`
	SupplyOverride bool                  `json:"supply_override"`
	Export         billing.ExportDetails `json:"export"`
	Reason         string                `json:"reason,omitempty"`
	Status         string                `json:"status"`
	Deleted        bool                  `json:"deleted"`
}

// DocumentResultResponse renders a document with its ledger effect
type DocumentResultResponse struct {
	Document DocumentResponse `json:"document"`
	Balance  MoneyResponse    `json:"customer_balance"`
}

func toDocumentResponse(doc *billing.Document) DocumentResponse {
	return DocumentResponse{
		ID:             doc.ID.String(),
		Kind:           doc.Kind.String(),
		Number:         doc.Number,
		DisplayNumber:  doc.DisplayNumber,
		Date:           doc.Date.Format("2006-01-02"),
		CustomerID:     doc.CustomerID.String(),
		Items:          doc.LineItems,
		Tax: TaxResponse{
			Subtotal:   toMoneyResponse(doc.Tax.Subtotal),
			TaxAmount:  toMoneyResponse(doc.Tax.TaxAmount),
			CGST:       toMoneyResponse(doc.Tax.CGST),
			SGST:       toMoneyResponse(doc.Tax.SGST),
			IGST:       toMoneyResponse(doc.Tax.IGST),
			GrandTotal: toMoneyResponse(doc.Tax.GrandTotal),
			InterState: doc.Tax.InterState,
		},
		SupplyType:     string(doc.SupplyType),
		SupplyOverride: doc.SupplyOverride,
		Export:         doc.Export,
		Reason:         doc.Reason,
		Status:         doc.Status.String(),
		Deleted:        doc.Deleted,
	}
}

func toResultResponse(result *billingapp.DocumentResult) DocumentResultResponse {
	return DocumentResultResponse{
		Document: toDocumentResponse(result.Document),
		Balance:  toMoneyResponse(result.Balance),
	}
}

// toLineItemInputs parses request lines into application inputs
func toLineItemInputs(lines []LineItemRequest) ([]billingapp.LineItemInput, error) {
	items := make([]billingapp.LineItemInput, 0, len(lines))
	for _, line := range lines {
		quantity, err := decimal.NewFromString(line.Quantity)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity is not a valid decimal")
		}
		rate, err := decimal.NewFromString(line.Rate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Rate is not a valid decimal")
		}
		gstRate, err := decimal.NewFromString(line.GSTRate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate is not a valid decimal")
		}
		items = append(items, billingapp.LineItemInput{
			Description: line.Description,
			HSNCode:     line.HSNCode,
			Quantity:    quantity,
			Rate:        rate,
			GSTRate:     gstRate,
		})
	}
	return items, nil
}

func toExportDetails(req *ExportDetailsRequest) billing.ExportDetails {
	if req == nil {
		return billing.ExportDetails{}
	}
	return billing.ExportDetails{
		PortCode:           req.PortCode,
		ShippingBillNumber: req.ShippingBillNumber,
		ShippingBillDate:   req.ShippingBillDate,
		DestinationCountry: req.DestinationCountry,
	}
}

func toSupplyOverride(value string) *billing.SupplyType {
	if value == "" {
		return nil
	}
	st := billing.SupplyType(value)
	return &st
}

// Create finalizes a new document: number reservation, tax computation,
// supply classification and the ledger posting in one atomic save.
func (h *DocumentHandler) Create(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date")
		return
	}
	items, err := toLineItemInputs(req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.documentService.CreateDocument(c.Request.Context(), billingapp.CreateDocumentInput{
		AccountID:      accountID,
		CustomerID:     customerID,
		Kind:           billing.DocumentKind(req.Kind),
		Date:           date,
		Items:          items,
		Reason:         req.Reason,
		SupplyOverride: toSupplyOverride(req.SupplyType),
		Export:         toExportDetails(req.Export),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.CreatedWithWarnings(c, toResultResponse(result), result.Warnings)
}

// Update edits a document in place. The series number never changes;
// the ledger is reconciled with a delta posting when the total moved.
func (h *DocumentHandler) Update(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	items, err := toLineItemInputs(req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.documentService.EditDocument(c.Request.Context(), billingapp.EditDocumentInput{
		AccountID:      accountID,
		DocumentID:     documentID,
		Items:          items,
		SupplyOverride: toSupplyOverride(req.SupplyType),
		Export:         toExportDetails(req.Export),
		DisplayNumber:  req.DisplayNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithWarnings(c, toResultResponse(result), result.Warnings)
}

// Get returns one document
func (h *DocumentHandler) Get(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), accountID, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDocumentResponse(doc))
}

// ListDocumentsRequest narrows the document listing
type ListDocumentsRequest struct {
	Kind           string `form:"kind" binding:"omitempty,oneof=invoice credit_note debit_note"`
	CustomerID     string `form:"customer_id" binding:"omitempty,uuid"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// List returns documents for the account, soft-deleted ones excluded
// unless include_deleted is set.
func (h *DocumentHandler) List(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var listReq ListDocumentsRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page.Defaults()

	filter := billing.DocumentFilter{
		Filter: shared.Filter{
			Page:     page.Page,
			PageSize: page.PageSize,
			OrderBy:  page.OrderBy,
			OrderDir: page.OrderDir,
		},
		Kind:           billing.DocumentKind(listReq.Kind),
		IncludeDeleted: listReq.IncludeDeleted,
	}
	if listReq.CustomerID != "" {
		id, err := uuid.Parse(listReq.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		filter.CustomerID = &id
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]DocumentResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = toDocumentResponse(&result.Items[i])
	}
	h.SuccessWithMeta(c, responses, result.Total, result.Page, result.PageSize)
}

// Delete soft-deletes a document. Its number stays reserved and its
// ledger posting is kept.
func (h *DocumentHandler) Delete(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.SoftDeleteDocument(c.Request.Context(), accountID, documentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore returns a soft-deleted document to active listings
func (h *DocumentHandler) Restore(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.RestoreDocument(c.Request.Context(), accountID, documentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetStatus updates the settlement status on an invoice
func (h *DocumentHandler) SetStatus(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.documentService.SetInvoiceStatus(c.Request.Context(), accountID, documentID, billing.InvoiceStatus(req.Status)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// NextNumberRequest asks for a preview of the next number in a series
type NextNumberRequest struct {
	Kind string `form:"kind" binding:"required,oneof=invoice credit_note debit_note"`
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// NextNumber previews the next document number without reserving it
func (h *DocumentHandler) NextNumber(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req NextNumberRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	date := time.Now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			h.BadRequest(c, "Invalid date")
			return
		}
	}

	preview, err := h.documentService.PreviewNextNumber(c.Request.Context(), accountID, billing.DocumentKind(req.Kind), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"next_number": preview})
}
