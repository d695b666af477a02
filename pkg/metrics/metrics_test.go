package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestManagerRegistersOnCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager(WithPrometheusRegistry(reg), WithNamespace("test"), WithSubsystem("q"))
	if m == nil {
		t.Fatal("expected manager")
	}

	m.toolInvocations.WithLabelValues("get_summary", "ok").Inc()
	m.datasetRecords.Set(42)

	names := []string{
		"test_q_tool_invocations_total",
		"test_q_dataset_records",
	}
	got, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range got {
		found[mf.GetName()] = true
	}
	for _, n := range names {
		if !found[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}

func TestPackageHelpers(t *testing.T) {
	RecordToolInvocation("search_university", "ok")
	RecordToolInvocation("search_university", "error")
	RecordToolDuration("search_university", 1.5)
	RecordToolError("search_university", "not_found")
	UpdateDatasetStats(100, 40, 3, 12)
	RecordDatasetLoad(12.5, 1700000000)
	RecordHTTPRequest("healthz", "GET", "200")
	RecordHTTPRequestDuration("healthz", "GET", "200", 0.3)
	UpdateSystemMemoryUsage(1024)
	UpdateSystemGoroutineCount(8)
	RecordSystemGCPauseTime(0.2)

	if v := testutil.ToFloat64(globalManager.datasetRecords); v != 100 {
		t.Errorf("dataset_records = %v, want 100", v)
	}

	// A couple of spot checks against the rendered registry output.
	count, err := testutil.GatherAndCount(GetRegistry(),
		"unirank_rankings_tool_invocations_total",
		"unirank_rankings_dataset_records",
	)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count == 0 {
		t.Error("expected gathered metrics on the custom registry")
	}
}

func TestGetRegistryServesOurNamespace(t *testing.T) {
	mfs, err := GetRegistry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "unirank_rankings_") {
			t.Errorf("unexpected metric on registry: %s", mf.GetName())
		}
	}
}
