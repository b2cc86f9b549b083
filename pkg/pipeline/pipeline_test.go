package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gasession/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (x *recorder) step(name string, err error) pipeline.Step {
	return pipeline.Step{
		Name: name,
		Run: func(ctx context.Context) error {
			x.calls = append(x.calls, name)
			return err
		},
	}
}

func TestPipeline(t *testing.T) {
	errStep := errors.New("step failed")

	t.Run("Run all stages in order", func(tt *testing.T) {
		r := &recorder{}
		p := &pipeline.Pipeline{
			PreChecks:   []pipeline.Step{r.step("check1", nil), r.step("check2", nil)},
			Transform:   []pipeline.Step{r.step("transform", nil)},
			PostActions: []pipeline.Step{r.step("post", nil)},
		}

		require.NoError(tt, p.Execute(context.Background()))
		assert.Equal(tt, []string{"check1", "check2", "transform", "post"}, r.calls)
		assert.False(tt, p.Failed)
	})

	t.Run("Failed precheck skips transform but runs post actions", func(tt *testing.T) {
		r := &recorder{}
		p := &pipeline.Pipeline{
			PreChecks:   []pipeline.Step{r.step("check1", errStep), r.step("check2", nil)},
			Transform:   []pipeline.Step{r.step("transform", nil)},
			PostActions: []pipeline.Step{r.step("post", nil)},
		}

		err := p.Execute(context.Background())
		require.Error(tt, err)
		assert.Contains(tt, err.Error(), "precheck/check1")
		assert.Equal(tt, []string{"check1", "post"}, r.calls)
		assert.True(tt, p.Failed)
	})

	t.Run("Error of post action is not returned", func(tt *testing.T) {
		r := &recorder{}
		p := &pipeline.Pipeline{
			Transform:   []pipeline.Step{r.step("transform", nil)},
			PostActions: []pipeline.Step{r.step("post1", errStep), r.step("post2", nil)},
		}

		require.NoError(tt, p.Execute(context.Background()))
		assert.Equal(tt, []string{"transform", "post1", "post2"}, r.calls)
	})

	t.Run("Canceled context stops transform", func(tt *testing.T) {
		r := &recorder{}
		p := &pipeline.Pipeline{
			Transform:   []pipeline.Step{r.step("transform", nil)},
			PostActions: []pipeline.Step{r.step("post", nil)},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(tt, p.Execute(ctx))
		assert.Equal(tt, []string{"post"}, r.calls)
	})
}
