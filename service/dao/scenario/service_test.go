package scenario

import (
	"context"
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"

	"github.com/viant/conveyor/model"
	"github.com/viant/conveyor/service/meta"
)

// testFS holds our test YAML files
//
//go:embed testdata/*
var testFS embed.FS

func newTestService() *Service {
	return New(WithMetaService(meta.New(afs.New(), "embed:///testdata", &testFS)))
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		url         string
		expectedErr bool
		expect      *model.Scenario
	}{
		{
			name: "range expression",
			url:  "backpressure",
			expect: &model.Scenario{
				Origin:      &model.Origin{URL: "backpressure.yaml"},
				Name:        "backpressure",
				Description: "eight items through a three slot channel",
				Capacity:    3,
				Source:      []interface{}{1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		{
			name: "inline list with kind and pacing",
			url:  "labels.yaml",
			expect: &model.Scenario{
				Origin:           &model.Origin{URL: "labels.yaml"},
				Name:             "labels",
				Kind:             model.KindString,
				Capacity:         2,
				Source:           []interface{}{"alpha", "beta", "42"},
				ProducerThrottle: 5 * time.Millisecond,
				ConsumerThrottle: 10 * time.Millisecond,
			},
		},
		{
			name:        "invalid capacity",
			url:         "broken.yaml",
			expectedErr: true,
		},
		{
			name:        "missing document",
			url:         "no-such-scenario",
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		service := newTestService()

		t.Run(tc.name, func(t *testing.T) {
			actual, err := service.Load(ctx, tc.url)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual, tc.name)
		})
	}
}

func TestService_LoadCaches(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	first, err := service.Load(ctx, "backpressure")
	assert.Nil(t, err)
	first.Source[0] = 99

	second, err := service.Load(ctx, "backpressure")
	assert.Nil(t, err)
	assert.Equal(t, 1, second.Source[0])
}

func TestService_DecodeYAML(t *testing.T) {
	service := New()

	scenario, err := service.DecodeYAML([]byte(`
capacity: 1
kind: int
source: "42"
`))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, []interface{}{42}, scenario.Source)
	assert.Equal(t, 1, scenario.Capacity)
	// document supplied no name
	assert.Contains(t, scenario.Name, "anonymous-")

	_, err = service.DecodeYAML([]byte(`capacity: [3]`))
	assert.NotNil(t, err)
}
