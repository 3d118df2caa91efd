package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iulianpascalau/site-monitoring/services/evaluator"
	probeCommon "github.com/iulianpascalau/site-monitoring/services/probe/common"
	probeCfg "github.com/iulianpascalau/site-monitoring/services/probe/config"
	probeFactory "github.com/iulianpascalau/site-monitoring/services/probe/factory"
	recorderCommon "github.com/iulianpascalau/site-monitoring/services/recorder/common"
	recorderCfg "github.com/iulianpascalau/site-monitoring/services/recorder/config"
	recorderFactory "github.com/iulianpascalau/site-monitoring/services/recorder/factory"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/stretchr/testify/require"
)

var log = logger.GetOrCreate("e2e-test")

// capturingSink collects the measurement payloads the probe emits, standing in
// for the external metrics backend
type capturingSink struct {
	mut      sync.Mutex
	payloads []probeCommon.MetricsPayload
}

func (sink *capturingSink) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-service-key", r.Header.Get("X-Api-Key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload probeCommon.MetricsPayload
		require.NoError(t, json.Unmarshal(body, &payload))

		sink.mut.Lock()
		sink.payloads = append(sink.payloads, payload)
		sink.mut.Unlock()

		w.WriteHeader(http.StatusOK)
	}
}

func (sink *capturingSink) averageOf(metricName string) (float64, int) {
	sink.mut.Lock()
	defer sink.mut.Unlock()

	sum := float64(0)
	count := 0
	for _, payload := range sink.payloads {
		for _, datum := range payload.Metrics {
			if datum.MetricName == metricName {
				sum += datum.Value
				count++
			}
		}
	}

	if count == 0 {
		return 0, 0
	}

	return sum / float64(count), count
}

func TestE2EOutageToHistoryFlow(t *testing.T) {
	log.Info("======== 1. Start a mock target site that answers HTTP 500 (an outage)")
	var targetHealthy atomic.Bool
	mockTarget := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if targetHealthy.Load() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`ok`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockTarget.Close()

	log.Info("======== 2. Start a capturing metrics sink in place of the external metrics backend")
	sink := &capturingSink{}
	mockSink := httptest.NewServer(sink.handler(t))
	defer mockSink.Close()

	log.Info("======== 3. Start the recorder service via componentsHandler")
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "e2e_alarm_history.db")

	recorderConfig := recorderCfg.Config{
		ListenAddress: "127.0.0.1:0",
		TTLDays:       90,
	}

	recorderHandler, err := recorderFactory.NewComponentsHandler(
		dbPath,
		"test-service-key",
		recorderConfig,
	)
	require.NoError(t, err)

	recorderHandler.Start()
	defer recorderHandler.Close()

	_, port, err := net.SplitHostPort(recorderHandler.GetServer().Address())
	require.NoError(t, err)
	recorderURL := fmt.Sprintf("http://127.0.0.1:%s", port)

	log.Info("======== 3.1. Wait a moment for server to start")
	time.Sleep(100 * time.Millisecond)

	log.Info("======== 4. Start the probe service via componentsHandler")
	probeConfig := probeCfg.Config{
		SiteName:               "example-com",
		TargetURL:              mockTarget.URL,
		Namespace:              "WebsiteMonitoring",
		ProbeIntervalInSeconds: 1,
		ProbeTimeoutInSeconds:  5,
		MetricsEndpoint:        mockSink.URL,
		EmitTimeoutInSeconds:   5,
	}

	probeHandler, err := probeFactory.NewComponentsHandler(
		"test-service-key",
		probeConfig,
	)
	require.NoError(t, err)

	probeHandler.Start()
	defer probeHandler.Close()

	log.Info("======== 5. Wait for the probe to measure the failing target a few times")
	time.Sleep(2500 * time.Millisecond)

	avg, count := sink.averageOf(probeCommon.MetricAvailability)
	require.GreaterOrEqual(t, count, 2)
	require.Equal(t, float64(0), avg) // every probe of the outage classifies as unavailable

	avgLatency, _ := sink.averageOf(probeCommon.MetricLatencyMs)
	require.Equal(t, float64(0), avgLatency) // failed probes report the zero sentinel

	log.Info("======== 6. Simulate the external evaluator over the captured period average")
	rule := evaluator.AvailabilityRule("WebsiteMonitoring")
	firedAt := time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)
	transition, changed := evaluator.NextTransition(rule, evaluator.StateOK, avg, firedAt)
	require.True(t, changed)
	require.Equal(t, "ALARM", transition.NewStateValue)

	rawTransition, err := transition.Marshal()
	require.NoError(t, err)

	log.Info("======== 7. Deliver the notification batch to the recorder")
	postNotifications(t, recorderURL, rawTransition)

	log.Info("======== 8. Recover the target and emit the recovery transition")
	targetHealthy.Store(true)
	sink.mut.Lock()
	sink.payloads = nil
	sink.mut.Unlock()

	time.Sleep(2500 * time.Millisecond)

	avg, count = sink.averageOf(probeCommon.MetricAvailability)
	require.GreaterOrEqual(t, count, 2)
	require.Greater(t, avg, evaluator.DefaultAvailabilityThreshold)

	recoveredAt := firedAt.Add(25 * time.Minute)
	recovery, changed := evaluator.NextTransition(rule, evaluator.StateAlarm, avg, recoveredAt)
	require.True(t, changed)
	require.Equal(t, "OK", recovery.NewStateValue)

	rawRecovery, err := recovery.Marshal()
	require.NoError(t, err)
	postNotifications(t, recorderURL, rawRecovery)

	log.Info("======== 9. Query the recorded history and verify the chronology")
	req, err := http.NewRequest(http.MethodGet, recorderURL+"/api/alarms/AvailabilityAlarm/history", nil)
	require.NoError(t, err)
	req.Header.Set("X-Api-Key", "test-service-key")

	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var historyData struct {
		AlarmName string                         `json:"alarmName"`
		History   []recorderCommon.HistoryRecord `json:"history"`
	}
	body, _ := io.ReadAll(resp.Body)
	err = json.Unmarshal(body, &historyData)
	require.NoError(t, err)

	require.Equal(t, "AvailabilityAlarm", historyData.AlarmName)
	require.Len(t, historyData.History, 2)

	outage := historyData.History[0]
	require.Equal(t, "AvailabilityAlarm", outage.AlarmName)
	require.Equal(t, "2024-01-01T00:05:00Z", outage.StateChangeTime)
	require.Equal(t, "ALARM", outage.NewState)
	require.Equal(t, "OK", outage.OldState)
	require.Equal(t, "Availability", outage.MetricName)
	require.Equal(t, 0.5, outage.Threshold)
	require.Equal(t, "LessThanThreshold", outage.Comparison)
	require.NotEmpty(t, outage.RecordID)
	require.Greater(t, outage.ExpiresAt, time.Now().Add(89*24*time.Hour).Unix())

	recovered := historyData.History[1]
	require.Equal(t, "OK", recovered.NewState)
	require.Equal(t, "ALARM", recovered.OldState)

	log.Info("======== 10. Redeliver the first notification and verify idempotence by key")
	postNotifications(t, recorderURL, rawTransition)

	resp2, err := client.Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp2.Body.Close()
	}()

	body, _ = io.ReadAll(resp2.Body)
	err = json.Unmarshal(body, &historyData)
	require.NoError(t, err)
	require.Len(t, historyData.History, 2) // still one row per key

	redelivered := historyData.History[0]
	require.NotEqual(t, outage.RecordID, redelivered.RecordID) // fresh record id on the re-upsert
}

func postNotifications(t *testing.T, recorderURL string, messages ...string) {
	payload, err := json.Marshal(map[string][]string{"messages": messages})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, recorderURL+"/api/notifications", bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", "test-service-key")

	resp, err := (&http.Client{}).Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved struct {
		Saved []recorderCommon.RecordSummary `json:"saved"`
	}
	body, _ := io.ReadAll(resp.Body)
	err = json.Unmarshal(body, &saved)
	require.NoError(t, err)
	require.Len(t, saved.Saved, len(messages))
}
