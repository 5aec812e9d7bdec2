// Package billing contains the GST billing rules: line item tax
// computation and CGST/SGST/IGST splitting, GSTR-1 supply type
// classification, and document numbering with permanent reservation
// across soft deletes.
package billing
