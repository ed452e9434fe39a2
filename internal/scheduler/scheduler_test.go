package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omarshaarawi/tempad/internal/config"
	"github.com/omarshaarawi/tempad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *countingWarmer) RefreshBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error) {
	w.calls.Add(1)
	if w.err != nil {
		return nil, w.err
	}
	return &models.BootstrapStatic{}, nil
}

type stubReporter struct {
	text string
	err  error
}

func (r stubReporter) TimelineText(ctx context.Context, managerID int) (string, error) {
	return r.text, r.err
}

type outbox struct {
	mu   sync.Mutex
	sent []string
}

func (o *outbox) send(text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, text)
	return nil
}

func testConfig(managerID int) *config.Config {
	return &config.Config{
		FPLAPI: config.FPLAPI{BootstrapTTL: time.Hour},
		Report: config.Report{ManagerID: managerID, Schedule: "30 7 * * 2", Timezone: "UTC"},
	}
}

func TestNewScheduler_BadTimezone(t *testing.T) {
	cfg := testConfig(0)
	cfg.Report.Timezone = "Mars/Olympus_Mons"

	_, err := NewScheduler(cfg, &countingWarmer{}, nil, nil)
	assert.Error(t, err)
}

func TestStart_RegistersJobs(t *testing.T) {
	tests := []struct {
		name      string
		managerID int
		send      bool
		wantJobs  int
	}{
		{name: "warm only", managerID: 0, send: true, wantJobs: 1},
		{name: "no bot", managerID: 1234, send: false, wantJobs: 1},
		{name: "warm and report", managerID: 1234, send: true, wantJobs: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var send func(string) error
			if tt.send {
				send = (&outbox{}).send
			}
			warmer := &countingWarmer{}

			s, err := NewScheduler(testConfig(tt.managerID), warmer, stubReporter{}, send)
			require.NoError(t, err)
			require.NoError(t, s.Start())
			defer func() { assert.NoError(t, s.Stop()) }()

			assert.Len(t, s.s.Jobs(), tt.wantJobs)
			assert.Eventually(t, func() bool { return warmer.calls.Load() >= 1 }, time.Second, 10*time.Millisecond)
		})
	}
}

func TestSendTimelineReport(t *testing.T) {
	box := &outbox{}
	s, err := NewScheduler(testConfig(1234), &countingWarmer{}, stubReporter{text: "report"}, box.send)
	require.NoError(t, err)

	s.sendTimelineReport()
	assert.Equal(t, []string{"report"}, box.sent)
}

func TestSendTimelineReport_ErrorSendsNothing(t *testing.T) {
	box := &outbox{}
	s, err := NewScheduler(testConfig(1234), &countingWarmer{}, stubReporter{err: errors.New("boom")}, box.send)
	require.NoError(t, err)

	s.sendTimelineReport()
	assert.Empty(t, box.sent)
}

func TestWarmCache_ErrorIsLogged(t *testing.T) {
	warmer := &countingWarmer{err: errors.New("upstream down")}
	s, err := NewScheduler(testConfig(0), warmer, nil, nil)
	require.NoError(t, err)

	s.warmCache()
	assert.Equal(t, int32(1), warmer.calls.Load())
}
