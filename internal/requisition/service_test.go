package requisition

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

func validSubmit() *SubmitRequest {
	return &SubmitRequest{
		RequisitionDate:       "2025-03-14",
		Basin:                 "NorthSea",
		Block:                 "B-12",
		Area:                  "Sector 7",
		Dimension:             "3D",
		DataType:              "Seismic",
		Objective:             "Velocity model update",
		RequesterName:         "Field User",
		RequesterDesignation:  "Geologist",
		RequesterCPF:          "123456",
		RequesterMobile:       "9999999999",
		RequesterGroup:        "Exploration",
		RequestedByUserID:     "user-1",
		RequestedByExternalID: "emp001",
	}
}

func TestSubmitCreatesPendingRecord(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	created, err := engine.Submit(ctx, validSubmit())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, StatusPendingLevel2, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	// decision fields must all be nil while pending
	assert.Nil(t, created.DecidedByUserID)
	assert.Nil(t, created.DecidedByExternalID)
	assert.Nil(t, created.DecidedByName)
	assert.Nil(t, created.DecisionAt)
}

func TestSubmitComputesDefaults(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	t.Run("title and description derived", func(t *testing.T) {
		created, err := engine.Submit(ctx, validSubmit())
		require.NoError(t, err)
		assert.Equal(t, "Requisition for NorthSea - Sector 7", created.Title)
		assert.Equal(t, "Velocity model update", created.Description)
	})

	t.Run("missing area renders as N/A in title", func(t *testing.T) {
		req := validSubmit()
		req.Area = ""
		created, err := engine.Submit(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Requisition for NorthSea - N/A", created.Title)
	})

	t.Run("explicit title and description kept", func(t *testing.T) {
		req := validSubmit()
		req.Title = "Custom title"
		req.Description = "Custom description"
		created, err := engine.Submit(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Custom title", created.Title)
		assert.Equal(t, "Custom description", created.Description)
	})
}

func TestSubmitMandatoryFields(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	tests := []struct {
		name    string
		mutate  func(*SubmitRequest)
		field   string
		message string
	}{
		{"missing basin", func(r *SubmitRequest) { r.Basin = "" }, "basin", "Basin is missing"},
		{"missing cpf", func(r *SubmitRequest) { r.RequesterCPF = "" }, "requesterCpf", "Requester CPF is missing"},
		{"missing mobile", func(r *SubmitRequest) { r.RequesterMobile = "" }, "requesterMobile", "Requester mobile is missing"},
		{"missing group", func(r *SubmitRequest) { r.RequesterGroup = "" }, "requesterGroup", "Requester group is missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmit()
			tt.mutate(req)

			_, err := engine.Submit(ctx, req)
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, tt.message, vErr.Message)
		})
	}
}

func TestDecidePopulatesDecisionFields(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	created, err := engine.Submit(ctx, validSubmit())
	require.NoError(t, err)

	decider := Decider{UserID: "approver-1", ExternalID: "emp900", Name: "Level Two"}
	err = engine.Decide(ctx, created.ID, StatusApproved, decider)
	require.NoError(t, err)

	listed, err := engine.List(ctx, Filter{Status: string(StatusApproved)})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, StatusApproved, got.Status)
	require.NotNil(t, got.DecidedByUserID)
	require.NotNil(t, got.DecidedByExternalID)
	require.NotNil(t, got.DecidedByName)
	require.NotNil(t, got.DecisionAt)
	assert.Equal(t, "approver-1", *got.DecidedByUserID)
	assert.Equal(t, "emp900", *got.DecidedByExternalID)
	assert.Equal(t, "Level Two", *got.DecidedByName)
	assert.False(t, got.DecisionAt.Before(got.CreatedAt))
}

func TestDecideRequiresStatus(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	created, err := engine.Submit(ctx, validSubmit())
	require.NoError(t, err)

	err = engine.Decide(ctx, created.ID, "", Decider{UserID: "approver-1"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	// no write happened
	got, err := engine.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingLevel2, got.Status)
	assert.Nil(t, got.DecisionAt)
}

func TestDecideUnknownRequisition(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	err := engine.Decide(ctx, uuid.New(), StatusApproved, Decider{UserID: "approver-1"})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDecideOverwritesPreviousDecision(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	created, err := engine.Submit(ctx, validSubmit())
	require.NoError(t, err)

	err = engine.Decide(ctx, created.ID, StatusApproved, Decider{UserID: "approver-1", ExternalID: "emp900", Name: "First"})
	require.NoError(t, err)

	first, err := engine.Get(ctx, created.ID)
	require.NoError(t, err)

	// deciding again is a defined outcome: the later decision wins
	err = engine.Decide(ctx, created.ID, StatusDenied, Decider{UserID: "approver-2", ExternalID: "emp901", Name: "Second"})
	require.NoError(t, err)

	second, err := engine.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, second.Status)
	assert.Equal(t, "approver-2", *second.DecidedByUserID)
	assert.Equal(t, "Second", *second.DecidedByName)
	assert.False(t, second.DecisionAt.Before(*first.DecisionAt))
}

func TestDecideAcceptsArbitraryStatusStrings(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(NewMemoryStore())

	created, err := engine.Submit(ctx, validSubmit())
	require.NoError(t, err)

	err = engine.Decide(ctx, created.ID, Status("escalated_level3"), Decider{UserID: "approver-1"})
	require.NoError(t, err)

	got, err := engine.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, Status("escalated_level3"), got.Status)
}

func TestListFiltersCombineConjunctively(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	engine := NewEngine(store)

	submit := func(basin, group, userID string) *Requisition {
		req := validSubmit()
		req.Basin = basin
		req.RequesterGroup = group
		req.RequestedByUserID = userID
		created, err := engine.Submit(ctx, req)
		require.NoError(t, err)
		return created
	}

	first := submit("NorthSea-A", "Exploration", "user-1")
	second := submit("South", "Exploration", "user-2")
	third := submit("NorthSea-B", "Development", "user-1")

	require.NoError(t, engine.Decide(ctx, first.ID, StatusApproved, Decider{UserID: "a"}))
	require.NoError(t, engine.Decide(ctx, second.ID, StatusApproved, Decider{UserID: "a"}))

	t.Run("basin substring and status", func(t *testing.T) {
		listed, err := engine.List(ctx, Filter{Basin: "NorthSea", Status: string(StatusApproved)})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, first.ID, listed[0].ID)
	})

	t.Run("basin match is case-insensitive", func(t *testing.T) {
		listed, err := engine.List(ctx, Filter{Basin: "northsea"})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("requester user id exact match", func(t *testing.T) {
		listed, err := engine.List(ctx, Filter{RequestedByUserID: "user-1"})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("user group substring", func(t *testing.T) {
		listed, err := engine.List(ctx, Filter{UserGroup: "explor"})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		listed, err := engine.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, listed, 3)
	})

	_ = third
}

func TestListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	engine := NewEngine(store)

	// insert directly so creation times are controlled
	base := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	ids := make([]uuid.UUID, 3)
	for i := 0; i < 3; i++ {
		req := &Requisition{
			ID:        uuid.New(),
			Basin:     "NorthSea",
			Status:    StatusPendingLevel2,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.Insert(ctx, req))
		ids[i] = req.ID
	}

	listed, err := engine.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, ids[2], listed[0].ID)
	assert.Equal(t, ids[1], listed[1].ID)
	assert.Equal(t, ids[0], listed[2].ID)
}
