package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/conveyor/progress"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/channel"
	"github.com/viant/conveyor/service/dao/report/memory"
	"github.com/viant/conveyor/service/journal"
)

func sequence(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// awaitRun guards against a deadlocked transfer hanging the suite
func awaitRun(t *testing.T, ctx context.Context, service *Service[int], source []int) (*transfer.Run[int], error) {
	t.Helper()
	type result struct {
		run *transfer.Run[int]
		err error
	}
	done := make(chan result, 1)
	go func() {
		run, err := service.Run(ctx, source)
		done <- result{run: run, err: err}
	}()
	select {
	case r := <-done:
		return r.run, r.err
	case <-time.After(5 * time.Second):
		t.Fatal("transfer timed out")
		return nil, nil
	}
}

func TestNewInvalidCapacity(t *testing.T) {
	_, err := New[int](WithCapacity[int](-1))
	assert.True(t, errors.Is(err, channel.ErrInvalidCapacity))
}

func TestRunTransfersInOrder(t *testing.T) {
	source := sequence(1, 8)
	service, err := New[int](WithCapacity[int](3), WithScenario[int]("backpressure"))
	if !assert.Nil(t, err) {
		return
	}

	run, err := awaitRun(t, context.Background(), service, source)
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, transfer.StateComplete, run.GetState())
	assert.Equal(t, source, run.GetOutput())
	assert.Equal(t, 8, run.Produced)
	assert.Equal(t, 8, run.Consumed)
	assert.Equal(t, 8, run.Acknowledged)
	assert.LessOrEqual(t, run.HighWater, 3)
	assert.GreaterOrEqual(t, run.HighWater, 1)
}

func TestRunHighVolume(t *testing.T) {
	source := sequence(1, 100)
	service, err := New[int](WithCapacity[int](10))
	if !assert.Nil(t, err) {
		return
	}

	run, err := awaitRun(t, context.Background(), service, source)
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, source, run.GetOutput())
	assert.Equal(t, 100, run.Acknowledged)
	assert.LessOrEqual(t, run.HighWater, 10)
}

func TestRunCapacityOneStress(t *testing.T) {
	source := sequence(1, 100)
	service, err := New[int](WithCapacity[int](1))
	if !assert.Nil(t, err) {
		return
	}

	run, err := awaitRun(t, context.Background(), service, source)
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, source, run.GetOutput())
	// a single slot forces strict put/take alternation
	assert.Equal(t, 1, run.HighWater)
}

func TestRunSingleItem(t *testing.T) {
	service, err := New[int](WithCapacity[int](1))
	if !assert.Nil(t, err) {
		return
	}

	run, err := awaitRun(t, context.Background(), service, []int{42})
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, []int{42}, run.GetOutput())
	assert.Equal(t, 1, run.Produced)
}

func TestRunEmptySource(t *testing.T) {
	service, err := New[int]()
	if !assert.Nil(t, err) {
		return
	}

	run, err := awaitRun(t, context.Background(), service, nil)
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())
	assert.Equal(t, transfer.StateComplete, run.GetState())
	assert.Equal(t, 0, run.Expected)
	assert.Empty(t, run.GetOutput())
	assert.Equal(t, 0, run.Produced)
	assert.Equal(t, 0, run.HighWater)
}

func TestRunCancellation(t *testing.T) {
	reports := memory.New()
	service, err := New[int](
		WithCapacity[int](2),
		WithProducerThrottle[int](10*time.Millisecond),
		WithReportDAO[int](reports),
	)
	if !assert.Nil(t, err) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()
	run, err := awaitRun(t, ctx, service, sequence(1, 100))
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, transfer.StateFailed, run.GetState())
	assert.False(t, run.Succeeded())
	assert.NotEmpty(t, run.GetError())

	// the terminal report is persisted even for failed runs
	report, err := reports.Load(context.Background(), run.ID)
	assert.Nil(t, err)
	assert.Equal(t, transfer.StateFailed, report.State)
	assert.False(t, report.Success)
}

func TestRunPersistsReport(t *testing.T) {
	reports := memory.New()
	service, err := New[int](WithCapacity[int](3), WithScenario[int]("catalog"), WithReportDAO[int](reports))
	if !assert.Nil(t, err) {
		return
	}

	run, err := awaitRun(t, context.Background(), service, sequence(1, 5))
	assert.Nil(t, err)

	report, err := reports.Load(context.Background(), run.ID)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "catalog", report.Scenario)
	assert.Equal(t, transfer.StateComplete, report.State)
	assert.True(t, report.Success)
	assert.Equal(t, 5, report.Produced)
	assert.Equal(t, 5, report.Acknowledged)
}

func TestRunProgressHook(t *testing.T) {
	var updates atomic.Int32
	var last atomic.Value
	service, err := New[int](
		WithCapacity[int](3),
		WithProgressHook[int](func(p progress.Progress) {
			updates.Add(1)
			last.Store(p)
		}),
	)
	if !assert.Nil(t, err) {
		return
	}

	_, err = awaitRun(t, context.Background(), service, sequence(1, 8))
	assert.Nil(t, err)

	// one update per put plus one per take/ack pair
	assert.Equal(t, int32(16), updates.Load())
	final := last.Load().(progress.Progress)
	assert.Equal(t, 8, final.ProducedItems)
	assert.Equal(t, 8, final.ConsumedItems)
	assert.Equal(t, 8, final.AcknowledgedItems)
}

func TestStartAndWait(t *testing.T) {
	service, err := New[int](WithCapacity[int](3))
	if !assert.Nil(t, err) {
		return
	}

	run, wait, err := service.Start(context.Background(), sequence(1, 8))
	assert.Nil(t, err)
	if !assert.NotNil(t, run) {
		return
	}

	output, err := wait(context.Background(), 5*time.Second)
	assert.Nil(t, err)
	assert.False(t, output.Timeout)
	assert.Equal(t, transfer.StateComplete, output.State)
	assert.True(t, output.Success)
	assert.Equal(t, sequence(1, 8), output.Output)
	assert.Equal(t, run.ID, output.RunID)
}

func TestStartWaitTimeout(t *testing.T) {
	service, err := New[int](WithCapacity[int](1), WithProducerThrottle[int](20*time.Millisecond))
	if !assert.Nil(t, err) {
		return
	}

	_, wait, err := service.Start(context.Background(), sequence(1, 20))
	assert.Nil(t, err)

	early, err := wait(context.Background(), 30*time.Millisecond)
	assert.Nil(t, err)
	assert.True(t, early.Timeout)
	assert.NotEqual(t, transfer.StateComplete, early.State)

	final, err := wait(context.Background(), 5*time.Second)
	assert.Nil(t, err)
	assert.False(t, final.Timeout)
	assert.True(t, final.Success)
}

func TestRunJournals(t *testing.T) {
	var buf bytes.Buffer
	aJournal, err := journal.New(journal.WithWriter(&buf))
	if !assert.Nil(t, err) {
		return
	}
	service, err := New[int](WithCapacity[int](3), WithScenario[int]("journaled"), WithJournal[int](aJournal))
	if !assert.Nil(t, err) {
		return
	}

	run, err := awaitRun(t, context.Background(), service, sequence(1, 4))
	assert.Nil(t, err)
	assert.True(t, run.Succeeded())

	counts := map[string]int{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var event map[string]interface{}
		if !assert.Nil(t, json.Unmarshal(line, &event)) {
			return
		}
		assert.Equal(t, run.ID, event["run_id"])
		counts[event["event"].(string)]++
	}
	assert.Equal(t, 1, counts["start"])
	assert.Equal(t, 4, counts["put"])
	assert.Equal(t, 4, counts["take"])
	assert.Equal(t, 4, counts["ack"])
	// idle>running, running>draining, draining>complete
	assert.Equal(t, 3, counts["state"])
	assert.Equal(t, 1, counts["finish"])
}
