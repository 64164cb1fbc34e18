package document

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suhanikhatrii/user-data-requisition/internal/requisition"
)

func sampleRequisition() *requisition.Requisition {
	return &requisition.Requisition{
		ID:              uuid.MustParse("3f1d9a5e-0f2c-4a8b-9d4e-1c2b3a4d5e6f"),
		RequisitionDate: "2025-03-14",
		Basin:           "NorthSea",
		Block:           "B-12",
		Area:            "Sector 7",
		Dimension:       "3D",
		DataType:        "Seismic",
		Objective:       "Velocity model update",
		RequesterName:   "Field User",
		RequesterCPF:    "123456",
		RequesterMobile: "9999999999",
		RequesterGroup:  "Exploration",
		Status:          requisition.StatusPendingLevel2,
		CreatedAt:       time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func fieldValue(t *testing.T, doc DocumentModel, label string) string {
	t.Helper()
	for _, section := range doc.Sections {
		for _, field := range section.Fields {
			if field.Label == label {
				return field.Value
			}
		}
	}
	t.Fatalf("field %q not found", label)
	return ""
}

func TestProjectFieldOrder(t *testing.T) {
	doc := Project(sampleRequisition())

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "User Data Requisition Form", doc.Title)
	assert.Empty(t, doc.Sections[0].Heading)
	assert.Equal(t, "Requested By", doc.Sections[1].Heading)
	assert.Equal(t, "Approval Details", doc.Sections[2].Heading)

	wantOrder := []string{
		"Requisition ID", "Date of Requisition", "Basin", "Block", "Area",
		"2D/3D", "Return Date", "Type of Data Required", "Objective", "Remarks",
	}
	require.Len(t, doc.Sections[0].Fields, len(wantOrder))
	for i, label := range wantOrder {
		assert.Equal(t, label, doc.Sections[0].Fields[i].Label)
	}

	wantRequester := []string{"Name", "Designation", "CPF No.", "Mobile No.", "Group"}
	require.Len(t, doc.Sections[1].Fields, len(wantRequester))
	for i, label := range wantRequester {
		assert.Equal(t, label, doc.Sections[1].Fields[i].Label)
	}

	wantApproval := []string{"Status", "Approved/Denied By", "Decision Date"}
	require.Len(t, doc.Sections[2].Fields, len(wantApproval))
	for i, label := range wantApproval {
		assert.Equal(t, label, doc.Sections[2].Fields[i].Label)
	}
}

func TestProjectMissingFieldsRenderPlaceholder(t *testing.T) {
	doc := Project(sampleRequisition())

	assert.Equal(t, "N/A", fieldValue(t, doc, "Return Date"))
	assert.Equal(t, "N/A", fieldValue(t, doc, "Remarks"))
	assert.Equal(t, "N/A", fieldValue(t, doc, "Designation"))
	assert.Equal(t, "N/A", fieldValue(t, doc, "Approved/Denied By"))
	assert.Equal(t, "N/A", fieldValue(t, doc, "Decision Date"))
}

func TestProjectHumanizesStatus(t *testing.T) {
	req := sampleRequisition()
	assert.Equal(t, "Pending Level2", fieldValue(t, Project(req), "Status"))

	req.Status = requisition.StatusApproved
	assert.Equal(t, "Approved", fieldValue(t, Project(req), "Status"))

	req.Status = requisition.Status("escalated_level3")
	assert.Equal(t, "Escalated Level3", fieldValue(t, Project(req), "Status"))
}

func TestProjectDecidedByFallback(t *testing.T) {
	req := sampleRequisition()
	name := "Level Two"
	external := "emp900"
	at := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	req.Status = requisition.StatusApproved
	req.DecidedByName = &name
	req.DecidedByExternalID = &external
	req.DecisionAt = &at

	doc := Project(req)
	assert.Equal(t, "Level Two", fieldValue(t, doc, "Approved/Denied By"))
	assert.Equal(t, "2025-03-15T09:00:00Z", fieldValue(t, doc, "Decision Date"))

	// falls back to the external id when no name was recorded
	req.DecidedByName = nil
	assert.Equal(t, "emp900", fieldValue(t, Project(req), "Approved/Denied By"))
}

func TestProjectIsIdempotent(t *testing.T) {
	req := sampleRequisition()

	first := Project(req)
	second := Project(req)
	assert.Equal(t, first, second)
}

func TestRenderProducesPDF(t *testing.T) {
	doc := Project(sampleRequisition())

	data, err := NewRenderer().Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
