package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gstbill/backend/internal/domain/billing"
	"github.com/gstbill/backend/internal/domain/ledger"
	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentService drives the document lifecycle: tax computation,
// supply classification, atomic number reservation and ledger posting.
type DocumentService struct {
	documentRepo billing.DocumentRepository
	seriesRepo   billing.SeriesRepository
	customerRepo partner.CustomerRepository
	profileRepo  partner.BusinessProfileRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo billing.DocumentRepository,
	seriesRepo billing.SeriesRepository,
	customerRepo partner.CustomerRepository,
	profileRepo partner.BusinessProfileRepository,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		seriesRepo:   seriesRepo,
		customerRepo: customerRepo,
		profileRepo:  profileRepo,
	}
}

// postingType maps a document kind to its ledger direction: invoices
// and debit notes increase what the customer owes, credit notes
// decrease it.
func postingType(kind billing.DocumentKind) ledger.EntryType {
	if kind == billing.DocumentKindCreditNote {
		return ledger.EntryTypeCredit
	}
	return ledger.EntryTypeDebit
}

// CreateDocument finalizes and persists a new invoice, credit note or
// debit note. Number reservation, the document insert, the ledger
// posting and the customer balance update happen in one atomic unit;
// if any step fails the whole save fails and nothing is reserved.
func (s *DocumentService) CreateDocument(ctx context.Context, input CreateDocumentInput) (*DocumentResult, error) {
	customer, err := s.customerRepo.FindByIDForAccount(ctx, input.AccountID, input.CustomerID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	items, err := toLineItems(input.Items)
	if err != nil {
		return nil, err
	}

	doc, err := billing.NewDocument(input.AccountID, input.Kind, input.Date, customer.ID, items, input.Reason)
	if err != nil {
		return nil, err
	}
	doc.SupplierState = profile.State
	doc.CustomerState = customer.State
	doc.Export = input.Export

	tax := billing.ComputeTax(items, profile.State, customer.State)
	supplyType := billing.ClassifySupply(billing.ClassificationInput{
		CustomerGSTIN: customer.GSTIN,
		CustomerState: customer.State,
		SupplierState: profile.State,
		TotalValue:    tax.GrandTotal,
	}, input.SupplyOverride)

	if err := doc.Finalize(tax, supplyType, input.SupplyOverride != nil); err != nil {
		return nil, err
	}

	posting, err := ledger.NewEntry(
		input.AccountID,
		customer.ID,
		input.Date,
		postingType(input.Kind),
		tax.GrandTotal,
		"",
		nil,
	)
	if err != nil {
		return nil, err
	}

	balance, err := s.documentRepo.CreateFinalized(ctx, doc, posting)
	if err != nil {
		return nil, err
	}

	return &DocumentResult{
		Document: doc,
		Warnings: s.collectWarnings(profile, doc),
		Balance:  balance,
	}, nil
}

// EditDocument recomputes tax and classification for an existing
// document. The series number is never re-reserved. The ledger is
// reconciled with a delta posting: a debit when the edit raised the
// grand total, a credit when it lowered it, nothing when unchanged.
func (s *DocumentService) EditDocument(ctx context.Context, input EditDocumentInput) (*DocumentResult, error) {
	doc, err := s.documentRepo.FindByIDForAccount(ctx, input.AccountID, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if !doc.IsActive() {
		return nil, shared.ErrInvalidState
	}
	customer, err := s.customerRepo.FindByIDForAccount(ctx, input.AccountID, doc.CustomerID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	items, err := toLineItems(input.Items)
	if err != nil {
		return nil, err
	}
	if err := doc.UpdateLineItems(items); err != nil {
		return nil, err
	}
	doc.Export = input.Export
	if input.DisplayNumber != "" {
		if err := doc.SetDisplayNumber(input.DisplayNumber); err != nil {
			return nil, err
		}
	}

	previousTotal := doc.Tax.GrandTotal

	tax := billing.ComputeTax(items, profile.State, customer.State)
	supplyType := billing.ClassifySupply(billing.ClassificationInput{
		CustomerGSTIN: customer.GSTIN,
		CustomerState: customer.State,
		SupplierState: profile.State,
		TotalValue:    tax.GrandTotal,
	}, input.SupplyOverride)

	if err := doc.Finalize(tax, supplyType, input.SupplyOverride != nil); err != nil {
		return nil, err
	}

	var delta *ledger.Entry
	diff := tax.GrandTotal.MustSubtract(previousTotal)
	if !diff.IsZero() {
		deltaType := ledger.EntryTypeDebit
		if diff.IsNegative() {
			deltaType = ledger.EntryTypeCredit
		}
		if postingType(doc.Kind) == ledger.EntryTypeCredit {
			// A credit note's ledger effect is inverted: a larger note
			// credits the customer further.
			if deltaType == ledger.EntryTypeDebit {
				deltaType = ledger.EntryTypeCredit
			} else {
				deltaType = ledger.EntryTypeDebit
			}
		}
		docID := doc.ID
		delta, err = ledger.NewEntry(
			input.AccountID,
			doc.CustomerID,
			time.Now(),
			deltaType,
			diff.Abs(),
			fmt.Sprintf("Adjustment for %s", doc.Number),
			&docID,
		)
		if err != nil {
			return nil, err
		}
	}

	balance, err := s.documentRepo.UpdateFinalized(ctx, doc, delta)
	if err != nil {
		return nil, err
	}

	return &DocumentResult{
		Document: doc,
		Warnings: s.collectWarnings(profile, doc),
		Balance:  balance,
	}, nil
}

// SoftDeleteDocument removes a document from active listings. Its
// series number stays reserved forever and its ledger posting is kept
// for the audit trail, so the closing balance and the active document
// total can legitimately diverge after a delete.
func (s *DocumentService) SoftDeleteDocument(ctx context.Context, accountID, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByIDForAccount(ctx, accountID, documentID)
	if err != nil {
		return err
	}
	if err := doc.SoftDelete(); err != nil {
		return err
	}
	return s.documentRepo.Save(ctx, doc)
}

// RestoreDocument returns a soft-deleted document to active listings
// with its original number.
func (s *DocumentService) RestoreDocument(ctx context.Context, accountID, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByIDForAccount(ctx, accountID, documentID)
	if err != nil {
		return err
	}
	if err := doc.Restore(); err != nil {
		return err
	}
	return s.documentRepo.Save(ctx, doc)
}

// SetInvoiceStatus updates the settlement status shown on an invoice
func (s *DocumentService) SetInvoiceStatus(ctx context.Context, accountID, documentID uuid.UUID, status billing.InvoiceStatus) error {
	doc, err := s.documentRepo.FindByIDForAccount(ctx, accountID, documentID)
	if err != nil {
		return err
	}
	if err := doc.SetStatus(status); err != nil {
		return err
	}
	return s.documentRepo.Save(ctx, doc)
}

// PreviewNextNumber renders the number the next document in the series
// would receive, without reserving it. The preview derives from the
// total-ever-issued counter, so a soft-deleted document's number can
// never be previewed or handed out again.
func (s *DocumentService) PreviewNextNumber(ctx context.Context, accountID uuid.UUID, kind billing.DocumentKind, date time.Time) (string, error) {
	if !kind.IsValid() {
		return "", shared.NewDomainError("INVALID_DOCUMENT_KIND", "Invalid document kind")
	}
	profile, err := s.profileRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return "", err
	}
	series, err := s.seriesRepo.GetOrCreate(ctx, accountID, kind, profile.PrefixFor(kind.String(), kind.DefaultPrefix()))
	if err != nil {
		return "", err
	}
	return series.PreviewNextNumber(date), nil
}

// GetDocument loads one document
func (s *DocumentService) GetDocument(ctx context.Context, accountID, documentID uuid.UUID) (*billing.Document, error) {
	return s.documentRepo.FindByIDForAccount(ctx, accountID, documentID)
}

// ListDocuments lists documents of one kind, excluding soft-deleted
// ones unless asked for.
func (s *DocumentService) ListDocuments(ctx context.Context, accountID uuid.UUID, filter billing.DocumentFilter) (shared.Paginated[billing.Document], error) {
	docs, total, err := s.documentRepo.FindAllForAccount(ctx, accountID, filter)
	if err != nil {
		return shared.Paginated[billing.Document]{}, err
	}
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return shared.NewPaginated(docs, total, page, pageSize), nil
}

// collectWarnings gathers the non-blocking consistency issues on a
// finalized document: short HSN codes for the account's turnover
// bracket and missing export/SEZ shipping fields.
func (s *DocumentService) collectWarnings(profile *partner.BusinessProfile, doc *billing.Document) shared.Warnings {
	var warnings shared.Warnings
	for _, item := range doc.LineItems {
		if w := profile.CheckHSN(item.HSNCode); w != nil {
			warnings = append(warnings, *w)
		}
	}
	warnings = append(warnings, billing.CheckExportDetails(doc.SupplyType, doc.Export)...)
	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
