package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
	"github.com/custodia-labs/wcgraph/internal/core/ports/driving"
)

func testResult() *driving.RunResult {
	return &driving.RunResult{
		NodesByType:  map[string]int{"wcProducts": 3, "wcProductsCategories": 1},
		NodesEmitted: 4,
		Warnings:     2,
		Duration:     1500 * time.Millisecond,
	}
}

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync", syncCmd.Use)
	assert.Contains(t, syncCmd.Long, "warnings")
}

func TestSyncCmd_Executes(t *testing.T) {
	pipeline := &mockPipeline{result: testResult()}
	validator := &mockValidator{}
	useServices(t, &Services{Pipeline: pipeline, Validator: validator})

	out, err := execute(t, "sync")
	require.NoError(t, err)

	assert.Equal(t, 1, pipeline.runs)
	assert.Equal(t, 1, validator.calls)
	assert.Contains(t, out, "Synchronising catalog...")
	assert.Contains(t, out, "Sync complete")
	assert.Contains(t, out, "wcProductsCategories 1")
	assert.Contains(t, out, "Emitted 4 nodes in 1.5s")
	assert.Contains(t, out, "2 warnings")
}

func TestSyncCmd_ValidationFailure(t *testing.T) {
	pipeline := &mockPipeline{result: testResult()}
	useServices(t, &Services{Pipeline: pipeline, Validator: &mockValidator{err: errors.New("401 Unauthorized")}})

	_, err := execute(t, "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog check failed")
	assert.Zero(t, pipeline.runs)
}

func TestSyncCmd_SkipValidate(t *testing.T) {
	pipeline := &mockPipeline{result: testResult()}
	validator := &mockValidator{err: errors.New("offline")}
	useServices(t, &Services{Pipeline: pipeline, Validator: validator})
	t.Cleanup(func() { skipValidate = false })

	_, err := execute(t, "sync", "--skip-validate")
	require.NoError(t, err)
	assert.Zero(t, validator.calls)
	assert.Equal(t, 1, pipeline.runs)
}

func TestSyncCmd_PipelineFailure(t *testing.T) {
	useServices(t, &Services{Pipeline: &mockPipeline{err: domain.ErrNodeSink}})

	_, err := execute(t, "sync")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNodeSink)
}

func TestSyncCmd_NotConfigured(t *testing.T) {
	useServices(t, &Services{})

	_, err := execute(t, "sync")
	assert.EqualError(t, err, "pipeline not configured")
}

func TestSyncCmd_ReportsPipelineErr(t *testing.T) {
	useServices(t, &Services{PipelineErr: domain.ErrMissingCredentials})

	_, err := execute(t, "sync")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestPrinter_SummaryPlain(t *testing.T) {
	result := testResult()
	result.Warnings = 0

	out := printer{}.summary(result)

	assert.Contains(t, out, "wcProducts           3")
	assert.NotContains(t, out, "warnings")
	assert.NotContains(t, out, "\x1b[")
}
