package recaptcha

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-recaptcha/pkg/testsupport"
)

func TestMetrics_RecordVerifications(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	server := testsupport.NewSiteverifyServer(t, testsupport.SiteverifyPayload{
		Success: true,
		Score:   testsupport.Score(0.2),
	})
	c := MustNew(
		WithSecretKey("secret"),
		WithVerifyURL(server.URL),
		WithVersion(V3),
		WithMetrics(metrics),
	)

	if _, err := c.Verify(context.Background(), "token"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, err := c.Verify(context.Background(), ""); err != nil {
		t.Fatalf("verify empty: %v", err)
	}

	expected := map[string]float64{
		outcomeFailure: 1,
		outcomeEmpty:   1,
		outcomeSuccess: 0,
	}
	for outcome, want := range expected {
		got := testutil.ToFloat64(metrics.verifications.WithLabelValues("v3", outcome))
		if got != want {
			t.Fatalf("outcome %s: want %v, got %v", outcome, want, got)
		}
	}

	if got := testutil.ToFloat64(metrics.errorCodes.WithLabelValues(CodeScoreBelowThreshold)); got != 1 {
		t.Fatalf("expected one score-below-threshold, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.errorCodes.WithLabelValues(CodeInternalEmptyResponse)); got != 1 {
		t.Fatalf("expected one internal-empty-response, got %v", got)
	}
	if got := testutil.CollectAndCount(metrics.duration); got != 1 {
		t.Fatalf("expected one duration series, got %d", got)
	}
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	second, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
	if first.verifications != second.verifications {
		t.Fatalf("expected the registered collector to be reused")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.observe(V2, outcomeSuccess, nil, 0, true)
}
