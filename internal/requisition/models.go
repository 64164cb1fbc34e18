package requisition

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a requisition. The three constants are the
// expected domain vocabulary; arbitrary strings are stored as-is for
// compatibility with records migrated from the source system.
type Status string

const (
	StatusPendingLevel2 Status = "pending_level2"
	StatusApproved      Status = "approved"
	StatusDenied        Status = "denied"
)

// Requisition is a data-access request routed through the single approval
// gate. Descriptive fields and the requester snapshot are immutable once
// created; the decision fields are either all nil (pending) or all set.
type Requisition struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`

	RequisitionDate string `json:"requisitionDate,omitempty"`
	Basin           string `json:"basin,omitempty"`
	Block           string `json:"block,omitempty"`
	Area            string `json:"area,omitempty"`
	Dimension       string `json:"dimension,omitempty"`
	ReturnDate      string `json:"returnDate,omitempty"`
	DataType        string `json:"dataType,omitempty"`
	Objective       string `json:"objective,omitempty"`
	Remarks         string `json:"remarks,omitempty"`

	// Requester identity captured as a point-in-time snapshot, independent of
	// later changes to the user record
	RequesterName        string `json:"requesterName,omitempty"`
	RequesterDesignation string `json:"requesterDesignation,omitempty"`
	RequesterCPF         string `json:"requesterCpf,omitempty"`
	RequesterMobile      string `json:"requesterMobile,omitempty"`
	RequesterGroup       string `json:"requesterGroup,omitempty"`
	RequestedByUserID    string `json:"requestedByUserId,omitempty"`
	RequestedByExternalID string `json:"requestedByExternalId,omitempty"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`

	DecidedByUserID     *string    `json:"decidedByUserId,omitempty"`
	DecidedByExternalID *string    `json:"decidedByExternalId,omitempty"`
	DecidedByName       *string    `json:"decidedByName,omitempty"`
	DecisionAt          *time.Time `json:"decisionAt,omitempty"`
}

// SubmitRequest carries the fields supplied when a requisition is created
type SubmitRequest struct {
	RequisitionDate string `json:"requisitionDate,omitempty"`
	Basin           string `json:"basin"`
	Block           string `json:"block,omitempty"`
	Area            string `json:"area,omitempty"`
	Dimension       string `json:"dimension,omitempty"`
	ReturnDate      string `json:"returnDate,omitempty"`
	DataType        string `json:"dataType,omitempty"`
	Objective       string `json:"objective,omitempty"`
	Remarks         string `json:"remarks,omitempty"`

	RequesterName         string `json:"requesterName,omitempty"`
	RequesterDesignation  string `json:"requesterDesignation,omitempty"`
	RequesterCPF          string `json:"requesterCpf"`
	RequesterMobile       string `json:"requesterMobile"`
	RequesterGroup        string `json:"requesterGroup"`
	RequestedByUserID     string `json:"requestedByUserId,omitempty"`
	RequestedByExternalID string `json:"requestedByExternalId,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Decider identifies who approved or denied a requisition. The transport
// layer builds one only after authorizing the caller; the engine records it
// without re-checking roles.
type Decider struct {
	UserID     string `json:"decidedByUserId"`
	ExternalID string `json:"decidedByExternalId"`
	Name       string `json:"decidedByName"`
}

// Filter selects requisitions in List. All fields are optional and combine
// conjunctively.
type Filter struct {
	Status            string
	RequestedByUserID string
	Basin             string
	UserGroup         string
}
