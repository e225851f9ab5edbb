package fs

import (
	"context"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	service, err := New(path.Join(t.TempDir(), "reports"))
	assert.NoError(t, err)

	_, err = New("")
	assert.Error(t, err)

	// Round trip through JSON files
	report := &transfer.Report{
		ID:       "run-1",
		Scenario: "backpressure",
		State:    transfer.StateComplete,
		Expected: 8,
		Capacity: 3,
		Success:  true,
	}
	assert.NoError(t, service.Save(ctx, report))

	loaded, err := service.Load(ctx, "run-1")
	assert.NoError(t, err)
	assert.Equal(t, report.Scenario, loaded.Scenario)
	assert.Equal(t, report.Expected, loaded.Expected)
	assert.True(t, loaded.Success)

	// Missing reports surface the sentinel
	_, err = service.Load(ctx, "missing")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	// State filtering over the listed documents
	assert.NoError(t, service.Save(ctx, &transfer.Report{ID: "run-2", State: transfer.StateFailed}))
	failed, err := service.List(ctx, dao.NewParameter("State", transfer.StateFailed))
	assert.NoError(t, err)
	assert.Len(t, failed, 1)
	assert.Equal(t, "run-2", failed[0].ID)

	all, err := service.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	// Delete
	assert.NoError(t, service.Delete(ctx, "run-2"))
	assert.ErrorIs(t, service.Delete(ctx, "run-2"), dao.ErrNotFound)
}
