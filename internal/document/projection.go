package document

import (
	"strings"
	"time"
	"unicode"

	"github.com/Suhanikhatrii/user-data-requisition/internal/requisition"
)

// placeholder rendered for absent optional values. Part of the external
// contract: existing consumers of the rendered form depend on it.
const placeholder = "N/A"

// Field is one label/value line in the rendered document
type Field struct {
	Label string
	Value string
}

// Section is a titled group of fields. The leading section has no heading.
type Section struct {
	Heading string
	Fields  []Field
}

// DocumentModel is the flat shape consumed by the rendering capability
type DocumentModel struct {
	Title    string
	Sections []Section
}

// Project maps a persisted requisition to the document model. The field order
// and labels are fixed: consumers depend on the rendered layout. Pure and
// idempotent; it never mutates its input.
func Project(req *requisition.Requisition) DocumentModel {
	decidedBy := placeholder
	if req.DecidedByName != nil && *req.DecidedByName != "" {
		decidedBy = *req.DecidedByName
	} else if req.DecidedByExternalID != nil && *req.DecidedByExternalID != "" {
		decidedBy = *req.DecidedByExternalID
	}

	decisionDate := placeholder
	if req.DecisionAt != nil {
		decisionDate = req.DecisionAt.Format(time.RFC3339)
	}

	return DocumentModel{
		Title: "User Data Requisition Form",
		Sections: []Section{
			{
				Fields: []Field{
					{"Requisition ID", orPlaceholder(req.ID.String())},
					{"Date of Requisition", orPlaceholder(req.RequisitionDate)},
					{"Basin", orPlaceholder(req.Basin)},
					{"Block", orPlaceholder(req.Block)},
					{"Area", orPlaceholder(req.Area)},
					{"2D/3D", orPlaceholder(req.Dimension)},
					{"Return Date", orPlaceholder(req.ReturnDate)},
					{"Type of Data Required", orPlaceholder(req.DataType)},
					{"Objective", orPlaceholder(req.Objective)},
					{"Remarks", orPlaceholder(req.Remarks)},
				},
			},
			{
				Heading: "Requested By",
				Fields: []Field{
					{"Name", orPlaceholder(req.RequesterName)},
					{"Designation", orPlaceholder(req.RequesterDesignation)},
					{"CPF No.", orPlaceholder(req.RequesterCPF)},
					{"Mobile No.", orPlaceholder(req.RequesterMobile)},
					{"Group", orPlaceholder(req.RequesterGroup)},
				},
			},
			{
				Heading: "Approval Details",
				Fields: []Field{
					{"Status", humanizeStatus(string(req.Status))},
					{"Approved/Denied By", decidedBy},
					{"Decision Date", decisionDate},
				},
			},
		},
	}
}

func orPlaceholder(value string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// humanizeStatus turns a stored status into its display form: underscores
// become spaces and every word is capitalized, e.g. "pending_level2" →
// "Pending Level2".
func humanizeStatus(status string) string {
	if status == "" {
		return placeholder
	}
	words := strings.Split(strings.ReplaceAll(status, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
