package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	service := New()

	// Validation
	assert.ErrorIs(t, service.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, service.Save(ctx, &transfer.Report{}), dao.ErrInvalidID)
	_, err := service.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
	_, err = service.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	// Round trip
	report := &transfer.Report{ID: "run-1", State: transfer.StateComplete, Success: true}
	assert.NoError(t, service.Save(ctx, report))
	loaded, err := service.Load(ctx, "run-1")
	assert.NoError(t, err)
	assert.Equal(t, report, loaded)

	// State filtering
	assert.NoError(t, service.Save(ctx, &transfer.Report{ID: "run-2", State: transfer.StateFailed}))
	completed, err := service.List(ctx, dao.NewParameter("State", transfer.StateComplete))
	assert.NoError(t, err)
	assert.Len(t, completed, 1)
	assert.Equal(t, "run-1", completed[0].ID)

	all, err := service.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	// Delete
	assert.NoError(t, service.Delete(ctx, "run-1"))
	assert.ErrorIs(t, service.Delete(ctx, "run-1"), dao.ErrNotFound)
}
