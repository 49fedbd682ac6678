package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLedgerProbeJob_TracksLastOutcome(t *testing.T) {
	pinger := new(MockPinger)
	pinger.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()
	pinger.On("Ping", mock.Anything).Return(nil).Once()
	registry := prometheus.NewRegistry()

	job := NewLedgerProbeJob(pinger, "", time.Second, registry, discardLogger())
	assert.True(t, job.Healthy())

	job.Probe()
	assert.False(t, job.Healthy())
	assert.Equal(t, float64(0), testutil.ToFloat64(job.gauge))

	job.Probe()
	assert.True(t, job.Healthy())
	assert.Equal(t, float64(1), testutil.ToFloat64(job.gauge))

	pinger.AssertExpectations(t)
}

func TestLedgerProbeJob_PingCarriesDeadline(t *testing.T) {
	pinger := new(MockPinger)
	pinger.On("Ping", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(nil).Once()

	NewLedgerProbeJob(pinger, "", time.Second, nil, discardLogger()).Probe()

	pinger.AssertExpectations(t)
}

func TestLedgerProbeJob_InvalidSchedule(t *testing.T) {
	job := NewLedgerProbeJob(new(MockPinger), "not a schedule", time.Second, nil, discardLogger())

	assert.Error(t, job.Start())
}

type recordingJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j recordingJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j recordingJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager_StopsStartedJobsOnFailure(t *testing.T) {
	var log []string
	manager := NewJobManager(
		recordingJob{name: "a", log: &log},
		recordingJob{name: "b", log: &log},
		recordingJob{name: "c", startErr: errors.New("boom"), log: &log},
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Equal(t, []string{"start a", "start b", "start c", "stop b", "stop a"}, log)
}

func TestJobManager_StopAllReverseOrder(t *testing.T) {
	var log []string
	manager := NewJobManager(recordingJob{name: "a", log: &log}, recordingJob{name: "b", log: &log})

	require.NoError(t, manager.StartAll())
	manager.StopAll()
	manager.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}
