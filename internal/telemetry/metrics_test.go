package telemetry

import (
	"strings"
	"testing"
	"time"
)

func TestRenderPrometheusToolCalls(t *testing.T) {
	IncToolCall("create_incident", "ok")
	IncToolCall("create_incident", "ok")
	IncToolCall("create_incident", "fail")

	out := RenderPrometheus()
	if !strings.Contains(out, "# TYPE snowgate_tool_calls_total counter\n") {
		t.Error("missing type header")
	}
	if !strings.Contains(out, `snowgate_tool_calls_total{tool="create_incident",status="ok"} 2`) {
		t.Errorf("missing ok counter:\n%s", out)
	}
	if !strings.Contains(out, `snowgate_tool_calls_total{tool="create_incident",status="fail"} 1`) {
		t.Errorf("missing fail counter:\n%s", out)
	}
}

func TestObserveToolDurationBuckets(t *testing.T) {
	ObserveToolDuration("get_users", 50*time.Millisecond)
	ObserveToolDuration("get_users", 700*time.Millisecond)
	ObserveToolDuration("get_users", 2*time.Minute)

	out := RenderPrometheus()
	if !strings.Contains(out, `snowgate_tool_duration_seconds_bucket{tool="get_users",le="0.1"} 1`) {
		t.Errorf("missing 0.1 bucket:\n%s", out)
	}
	if !strings.Contains(out, `snowgate_tool_duration_seconds_bucket{tool="get_users",le="1"} 1`) {
		t.Errorf("missing 1 bucket:\n%s", out)
	}
	if !strings.Contains(out, `snowgate_tool_duration_seconds_bucket{tool="get_users",le="+Inf"} 1`) {
		t.Errorf("missing +Inf bucket:\n%s", out)
	}
}

func TestAuditWriteFailures(t *testing.T) {
	before := defaultRegistry.auditWriteFailures
	IncAuditWriteFailure()
	IncAuditWriteFailure()
	if got := defaultRegistry.auditWriteFailures; got != before+2 {
		t.Fatalf("auditWriteFailures = %d, want %d", got, before+2)
	}
	if !strings.Contains(RenderPrometheus(), "snowgate_audit_write_failures_total ") {
		t.Error("missing audit write failure counter")
	}
}

func TestServiceNowAPIErrors(t *testing.T) {
	IncServiceNowAPIError("api/now/table/incident", 403)
	IncServiceNowAPIError("api/now/table/incident", 403)
	IncServiceNowAPIError("api/now/table/incident", 500)

	out := RenderPrometheus()
	if !strings.Contains(out, `snowgate_servicenow_api_errors_total{endpoint="api/now/table/incident",status_code="403"} 2`) {
		t.Errorf("missing 403 counter:\n%s", out)
	}
	if !strings.Contains(out, `snowgate_servicenow_api_errors_total{endpoint="api/now/table/incident",status_code="500"} 1`) {
		t.Errorf("missing 500 counter:\n%s", out)
	}
}
