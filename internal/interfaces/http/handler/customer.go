package handler

import (
	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerRepo partner.CustomerRepository
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerRepo partner.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo}
}

// RegisterRoutes registers customer routes on the API group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
	}
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	State   string `json:"state" binding:"max=100"`
	GSTIN   string `json:"gstin" binding:"omitempty,gstin"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=200"`
	State   string  `json:"state" binding:"max=100"`
	GSTIN   *string `json:"gstin" binding:"omitempty"`
	Phone   string  `json:"phone" binding:"max=50"`
	Email   string  `json:"email" binding:"omitempty,email,max=200"`
	Address string  `json:"address" binding:"max=500"`
}

// CustomerResponse renders a customer
type CustomerResponse struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	State      string        `json:"state"`
	GSTIN      string        `json:"gstin,omitempty"`
	Registered bool          `json:"registered"`
	Phone      string        `json:"phone,omitempty"`
	Email      string        `json:"email,omitempty"`
	Address    string        `json:"address,omitempty"`
	Balance    MoneyResponse `json:"balance"`
}

func toCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         customer.ID.String(),
		Name:       customer.Name,
		State:      customer.State,
		GSTIN:      customer.GSTIN,
		Registered: customer.IsRegistered(),
		Phone:      customer.Phone,
		Email:      customer.Email,
		Address:    customer.Address,
		Balance:    toMoneyResponse(customer.Balance),
	}
}

// Create creates a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := partner.NewCustomer(accountID, req.Name, req.State, req.GSTIN)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address

	if err := h.customerRepo.Save(c.Request.Context(), customer); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCustomerResponse(customer))
}

// Get returns one customer
func (h *CustomerHandler) Get(c *gin.Context) {
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

	customer, err := h.customerRepo.FindByIDForAccount(c.Request.Context(), accountID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCustomerResponse(customer))
}

// List returns the account's customers
func (h *CustomerHandler) List(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var page dto.ListRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page.Defaults()

	customers, err := h.customerRepo.FindAllForAccount(c.Request.Context(), accountID, shared.Filter{
		Page:     page.Page,
		PageSize: page.PageSize,
		OrderBy:  page.OrderBy,
		OrderDir: page.OrderDir,
		Search:   page.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = toCustomerResponse(&customers[i])
	}
	h.Success(c, responses)
}

// Update changes a customer's details. Setting gstin to an empty string
// clears it; omitting the field leaves it unchanged.
func (h *CustomerHandler) Update(c *gin.Context) {
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

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerRepo.FindByIDForAccount(c.Request.Context(), accountID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := customer.Update(req.Name, req.State, req.Phone, req.Email, req.Address); err != nil {
		h.HandleError(c, err)
		return
	}
	if req.GSTIN != nil {
		if err := customer.SetGSTIN(*req.GSTIN); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	if err := h.customerRepo.Save(c.Request.Context(), customer); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCustomerResponse(customer))
}
