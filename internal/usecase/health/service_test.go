package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %s, want ok", report.Status)
	}
	if report.Checks["database"] != CheckOK {
		t.Errorf("database = %s, want ok", report.Checks["database"])
	}
	if report.Checks["llm"] != CheckOK {
		t.Errorf("llm = %s, want ok", report.Checks["llm"])
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("Status = %s, want degraded", report.Status)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("database = %s, want error", report.Checks["database"])
	}
}

func TestCheck_LLMDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("unauthorized")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("Status = %s, want degraded", report.Status)
	}
	if report.Checks["llm"] != CheckError {
		t.Errorf("llm = %s, want error", report.Checks["llm"])
	}
}

func TestCheck_NilLLMChecker(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %s, want ok", report.Status)
	}
	if _, ok := report.Checks["llm"]; ok {
		t.Error("llm check should be absent when no checker is configured")
	}
}
