package handler

import (
	"time"

	ledgerapp "github.com/gstbill/backend/internal/application/ledger"
	"github.com/gstbill/backend/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles payment recording and customer statements
type PaymentHandler struct {
	BaseHandler
	paymentService *ledgerapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *ledgerapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment and statement routes on the API group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.RecordPayment)
	rg.GET("/customers/:id/statement", h.Statement)
}

// RecordPaymentRequest represents a received payment
type RecordPaymentRequest struct {
	CustomerID  string `json:"customer_id" binding:"required,uuid"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// EntryResponse renders one ledger posting
type EntryResponse struct {
	ID             string        `json:"id"`
	Date           string        `json:"date"`
	Type           string        `json:"type"`
	Amount         MoneyResponse `json:"amount"`
	Description    string        `json:"description"`
	DocumentID     string        `json:"document_id,omitempty"`
	RunningBalance MoneyResponse `json:"running_balance"`
}

func toEntryResponse(entry *ledger.Entry) EntryResponse {
	resp := EntryResponse{
		ID:             entry.ID.String(),
		Date:           entry.Date.Format("2006-01-02"),
		Type:           entry.Type.String(),
		Amount:         toMoneyResponse(entry.Amount),
		Description:    entry.Description,
		RunningBalance: toMoneyResponse(entry.RunningBalance),
	}
	if entry.DocumentID != nil {
		resp.DocumentID = entry.DocumentID.String()
	}
	return resp
}

// RecordPayment posts a credit entry for a received payment
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req RecordPaymentRequest
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
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Amount is not a valid decimal")
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), ledgerapp.RecordPaymentInput{
		AccountID:   accountID,
		CustomerID:  customerID,
		Date:        date,
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"entry":            toEntryResponse(result.Entry),
		"customer_balance": toMoneyResponse(result.Balance),
	})
}

// StatementResponse renders a customer's ledger statement
type StatementResponse struct {
	Entries        []EntryResponse `json:"entries"`
	ClosingBalance MoneyResponse   `json:"closing_balance"`
	BalanceSide    string          `json:"balance_side"`
}

// Statement returns the customer's chronological ledger with running
// balances.
func (h *PaymentHandler) Statement(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	statement, err := h.paymentService.CustomerStatement(c.Request.Context(), accountID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entries := make([]EntryResponse, len(statement.Entries))
	for i := range statement.Entries {
		entries[i] = toEntryResponse(&statement.Entries[i])
	}
	h.Success(c, StatementResponse{
		Entries:        entries,
		ClosingBalance: toMoneyResponse(statement.ClosingBalance),
		BalanceSide:    statement.BalanceSide,
	})
}
