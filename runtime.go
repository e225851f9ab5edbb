package conveyor

import (
	"context"
	"fmt"

	"github.com/viant/conveyor/model"
	"github.com/viant/conveyor/progress"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/coordinator"
	"github.com/viant/conveyor/service/dao"
	"github.com/viant/conveyor/service/dao/scenario"
	"github.com/viant/conveyor/service/journal"
)

// Runtime represents a transfer runtime.  Facade runs carry items as plain
// interface values; use the coordinator service directly for typed runs.
type Runtime struct {
	scenarioDAO *scenario.Service
	reportDAO   dao.Service[string, transfer.Report]
	journal     *journal.Journal
	config      coordinator.Config
	onChange    func(progress.Progress)
}

// newCoordinator builds a coordinator bound to the runtime collaborators
func (r *Runtime) newCoordinator(config coordinator.Config, scenarioName string) (*coordinator.Service[any], error) {
	return coordinator.New[any](
		coordinator.WithConfig[any](config),
		coordinator.WithScenario[any](scenarioName),
		coordinator.WithJournal[any](r.journal),
		coordinator.WithReportDAO[any](r.reportDAO),
		coordinator.WithProgressHook[any](r.onChange),
	)
}

// Transfer moves the source sequence through a bounded channel and blocks
// until the run is terminal
func (r *Runtime) Transfer(ctx context.Context, source []interface{}) (*transfer.Run[any], error) {
	service, err := r.newCoordinator(r.config, "")
	if err != nil {
		return nil, err
	}
	return service.Run(ctx, source)
}

// StartTransfer launches a run asynchronously and returns it together with a
// wait function polling for its terminal state
func (r *Runtime) StartTransfer(ctx context.Context, source []interface{}) (*transfer.Run[any], transfer.Wait[any], error) {
	service, err := r.newCoordinator(r.config, "")
	if err != nil {
		return nil, nil, err
	}
	return service.Start(ctx, source)
}

// LoadScenario loads a scenario definition
func (r *Runtime) LoadScenario(ctx context.Context, location string) (*model.Scenario, error) {
	return r.scenarioDAO.Load(ctx, location)
}

// DecodeYAMLScenario decodes a scenario definition
func (r *Runtime) DecodeYAMLScenario(data []byte) (*model.Scenario, error) {
	return r.scenarioDAO.DecodeYAML(data)
}

// RunScenario loads the scenario at the supplied location and executes it
func (r *Runtime) RunScenario(ctx context.Context, location string) (*transfer.Run[any], error) {
	aScenario, err := r.scenarioDAO.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return r.RunDefinition(ctx, aScenario)
}

// RunDefinition executes a parsed scenario definition.  The scenario capacity
// and pacing override the runtime defaults for this run.
func (r *Runtime) RunDefinition(ctx context.Context, aScenario *model.Scenario) (*transfer.Run[any], error) {
	if aScenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	config := coordinator.Config{
		Capacity:         aScenario.Capacity,
		ProducerThrottle: aScenario.ProducerThrottle,
		ConsumerThrottle: aScenario.ConsumerThrottle,
	}
	service, err := r.newCoordinator(config, aScenario.Name)
	if err != nil {
		return nil, err
	}
	return service.Run(ctx, aScenario.Source)
}

// Report returns a terminal run report
func (r *Runtime) Report(ctx context.Context, id string) (*transfer.Report, error) {
	return r.reportDAO.Load(ctx, id)
}

// Reports returns terminal run reports
func (r *Runtime) Reports(ctx context.Context, parameter ...*dao.Parameter) ([]*transfer.Report, error) {
	return r.reportDAO.List(ctx, parameter...)
}

// Shutdown releases runtime resources, the journal file sink included
func (r *Runtime) Shutdown(ctx context.Context) error {
	return r.journal.Close()
}
