package conveyor_test

import (
	"context"
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	_ "github.com/viant/afs/embed"
	"github.com/viant/conveyor"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/dao"
)

//go:embed testdata/*
var embedFS embed.FS

func newService(t *testing.T, options ...conveyor.Option) *conveyor.Service {
	t.Helper()
	options = append([]conveyor.Option{
		conveyor.WithMetaFsOptions(&embedFS),
		conveyor.WithMetaBaseURL("embed:///testdata"),
	}, options...)
	srv, err := conveyor.New(options...)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return srv
}

func TestService(t *testing.T) {
	srv := newService(t)
	runtime := srv.Runtime()
	ctx := context.Background()

	scenario, err := runtime.LoadScenario(ctx, "basic.yaml")
	assert.Nil(t, err)
	if !assert.NotNil(t, scenario) {
		return
	}
	assert.Equal(t, 2, scenario.Capacity)
	assert.Equal(t, 5, scenario.Expected())

	run, err := runtime.RunDefinition(ctx, scenario)
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, []any{1, 2, 3, 4, 5}, run.GetOutput())
}

func TestServiceCatalog(t *testing.T) {
	srv := newService(t)
	runtime := srv.Runtime()
	ctx := context.Background()

	testCases := []struct {
		location string
		expected int
	}{
		{location: "basic", expected: 5},
		{location: "empty", expected: 0},
		{location: "singleton", expected: 1},
		{location: "volume", expected: 50},
		{location: "stress", expected: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.location, func(t *testing.T) {
			run, err := runtime.RunScenario(ctx, tc.location)
			assert.Nil(t, err, tc.location)
			assert.True(t, run.Succeeded(), tc.location)
			assert.Equal(t, transfer.StateComplete, run.GetState())
			assert.Equal(t, tc.expected, run.Consumed)
			assert.Equal(t, tc.expected, run.Acknowledged)
			assert.Equal(t, tc.expected, len(run.GetOutput()))
		})
	}

	reports, err := runtime.Reports(ctx, dao.NewParameter("State", transfer.StateComplete))
	assert.Nil(t, err)
	assert.Equal(t, len(testCases), len(reports))
}

func TestServiceTransfer(t *testing.T) {
	srv := newService(t, conveyor.WithCapacity(2))
	runtime := srv.Runtime()
	ctx := context.Background()

	source := []interface{}{"a", "b", "c", "d"}
	run, err := runtime.Transfer(ctx, source)
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, source, run.GetOutput())
	assert.LessOrEqual(t, run.HighWater, 2)

	report, err := runtime.Report(ctx, run.ID)
	assert.Nil(t, err)
	assert.True(t, report.Success)
}

func TestServiceStartTransfer(t *testing.T) {
	srv := newService(t, conveyor.WithCapacity(3))
	runtime := srv.Runtime()
	ctx := context.Background()

	run, wait, err := runtime.StartTransfer(ctx, []interface{}{1, 2, 3})
	assert.Nil(t, err)
	assert.NotNil(t, run)

	output, err := wait(ctx, 5*time.Second)
	assert.Nil(t, err)
	assert.False(t, output.Timeout)
	assert.True(t, output.Success)
	assert.Equal(t, []any{1, 2, 3}, output.Output)

	assert.Nil(t, runtime.Shutdown(ctx))
}

func TestServiceConfig(t *testing.T) {
	config := conveyor.DefaultConfig()
	assert.Nil(t, config.Validate())

	srv := newService(t, conveyor.WithConfig(config))
	run, err := srv.Runtime().Transfer(context.Background(), []interface{}{7})
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())

	invalid := &conveyor.Config{Capacity: -1}
	assert.NotNil(t, invalid.Validate())
}
