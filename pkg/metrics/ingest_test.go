package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestIngestMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewIngestMetrics(reg)
	metrics.IncAccepted("webhook")
	metrics.IncAccepted("webhook")
	metrics.IncRejected("unauthorized")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "sales_ingested_total", "source", "webhook"); err != nil {
		t.Fatalf("fetch accepted: %v", err)
	} else if got != 2 {
		t.Fatalf("expected accepted=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "sales_rejected_total", "reason", "unauthorized"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}
}

func TestIngestMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *IngestMetrics
	metrics.IncAccepted("webhook")
	metrics.IncRejected("validation")

	empty := NewIngestMetrics(nil)
	empty.IncAccepted("webhook")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == label && l.GetValue() == value {
					return metric.GetCounter().GetValue(), nil
				}
			}
		}
		return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
	}
	return 0, fmt.Errorf("metric %q not found", name)
}
