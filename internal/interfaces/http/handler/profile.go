package handler

import (
	"errors"

	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles business profile endpoints
type ProfileHandler struct {
	BaseHandler
	profileRepo partner.BusinessProfileRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo partner.BusinessProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

// RegisterRoutes registers profile routes on the API group
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PUT("", h.Upsert)
		profile.PUT("/prefixes", h.SetPrefix)
	}
}

// UpsertProfileRequest represents the supplier-side business details
type UpsertProfileRequest struct {
	LegalName string `json:"legal_name" binding:"required,min=1,max=200"`
	State     string `json:"state" binding:"required,max=100"`
	GSTIN     string `json:"gstin" binding:"omitempty,gstin"`
	HSNDigits int    `json:"hsn_digits" binding:"omitempty,oneof=4 6 8"`
}

// SetPrefixRequest changes a numbering prefix for one document kind
type SetPrefixRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=invoice credit_note debit_note"`
	Prefix string `json:"prefix" binding:"required,min=1,max=10"`
}

// ProfileResponse renders the business profile
type ProfileResponse struct {
	LegalName string            `json:"legal_name"`
	State     string            `json:"state"`
	GSTIN     string            `json:"gstin,omitempty"`
	Prefixes  map[string]string `json:"prefixes"`
	HSNDigits int               `json:"hsn_digits"`
}

func toProfileResponse(profile *partner.BusinessProfile) ProfileResponse {
	return ProfileResponse{
		LegalName: profile.LegalName,
		State:     profile.State,
		GSTIN:     profile.GSTIN,
		Prefixes:  profile.Prefixes,
		HSNDigits: profile.HSNDigits,
	}
}

// Get returns the account's business profile
func (h *ProfileHandler) Get(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	profile, err := h.profileRepo.FindByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProfileResponse(profile))
}

// Upsert creates or updates the account's business profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileRepo.FindByAccount(c.Request.Context(), accountID)
	if errors.Is(err, shared.ErrNotFound) {
		profile, err = partner.NewBusinessProfile(accountID, req.LegalName, req.State, req.GSTIN)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	profile.LegalName = req.LegalName
	profile.State = req.State
	profile.GSTIN = req.GSTIN
	if req.HSNDigits != 0 {
		profile.HSNDigits = req.HSNDigits
	}

	if err := h.profileRepo.Save(c.Request.Context(), profile); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProfileResponse(profile))
}

// SetPrefix stores a numbering prefix preference. Documents already
// issued keep their numbers; only future reservations use the new
// prefix.
func (h *ProfileHandler) SetPrefix(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req SetPrefixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileRepo.FindByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := profile.SetPrefix(req.Kind, req.Prefix); err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.profileRepo.Save(c.Request.Context(), profile); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProfileResponse(profile))
}
