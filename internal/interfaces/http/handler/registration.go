package handler

import (
	identityapp "github.com/gstbill/backend/internal/application/identity"
	"github.com/gstbill/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler handles professional registration endpoints
type RegistrationHandler struct {
	BaseHandler
	registrationService *identityapp.RegistrationService
	professionalRepo    identity.ProfessionalRepository
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService *identityapp.RegistrationService, professionalRepo identity.ProfessionalRepository) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		professionalRepo:    professionalRepo,
	}
}

// RegisterRoutes registers professional routes on the API group
func (h *RegistrationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	professionals := rg.Group("/professionals")
	{
		professionals.POST("", h.Register)
		professionals.GET("/:identifier", h.GetByIdentifier)
	}
}

// RegisterProfessionalRequest represents a registration request
type RegisterProfessionalRequest struct {
	DesignationCode string `json:"designation_code" binding:"required,min=1,max=4,uppercase,alpha"`
	Name            string `json:"name" binding:"required,min=1,max=200"`
}

// ProfessionalResponse renders a registered professional
type ProfessionalResponse struct {
	ID              string `json:"id"`
	Identifier      string `json:"identifier"`
	DesignationCode string `json:"designation_code"`
	Name            string `json:"name"`
}

func toProfessionalResponse(p *identity.Professional) ProfessionalResponse {
	return ProfessionalResponse{
		ID:              p.ID.String(),
		Identifier:      p.Identifier,
		DesignationCode: p.DesignationCode,
		Name:            p.Name,
	}
}

// Register allocates the next identifier and registers the professional
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegisterProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	professional, err := h.registrationService.RegisterProfessional(c.Request.Context(), req.DesignationCode, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toProfessionalResponse(professional))
}

// GetByIdentifier looks up a professional by their allocated identifier
func (h *RegistrationHandler) GetByIdentifier(c *gin.Context) {
	professional, err := h.professionalRepo.FindByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProfessionalResponse(professional))
}
