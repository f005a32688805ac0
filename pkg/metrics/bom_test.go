package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBOMMetrics_ExportaContadoresEHistograma(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBOMMetrics(reg)

	m.ObserveOperation("create_template", "ok", 120*time.Millisecond)
	m.ObserveOperation("create_template", "duplicate", 10*time.Millisecond)
	m.IncStockUpdate("procedure")
	m.IncStockUpdate("procedure")
	m.IncAuditFailure()
	m.IncAuditDropped()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "bom_operations_total", map[string]string{"operation": "create_template", "result": "ok"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "bom_stock_updates_total", map[string]string{"path": "procedure"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	got, err = counterValue(mfs, "bom_audit_failures_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	mf := findFamily(mfs, "bom_operation_duration_seconds")
	require.NotNil(t, mf)
	require.Len(t, mf.GetMetric(), 1)
	assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestBOMMetrics_NilEsSeguro(t *testing.T) {
	var m *BOMMetrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("x", "ok", time.Second)
		m.IncStockUpdate("direct")
		m.IncAuditFailure()
		m.IncAuditDropped()
	})
	assert.NotPanics(t, func() {
		NewBOMMetrics(nil).IncStockUpdate("direct")
	})
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("métrica %q no encontrada", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("métrica %q sin etiquetas %v", name, labels)
}

func findFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	found := 0
	for _, p := range pairs {
		if v, ok := want[p.GetName()]; ok {
			if v != p.GetValue() {
				return false
			}
			found++
		}
	}
	return found == len(want)
}
