package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLedgerOp(t *testing.T) {
	LedgerOpsTotal.Reset()

	RecordLedgerOp("start", nil)
	RecordLedgerOp("start", errors.New("boom"))
	RecordLedgerOp("stop", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(LedgerOpsTotal.WithLabelValues("start", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(LedgerOpsTotal.WithLabelValues("start", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(LedgerOpsTotal.WithLabelValues("stop", StatusSuccess)))
}

func TestRecordCategoryOp(t *testing.T) {
	CategoryOpsTotal.Reset()

	RecordCategoryOp("add", nil)
	RecordCategoryOp("add", errors.New("duplicate"))

	assert.Equal(t, 1.0, testutil.ToFloat64(CategoryOpsTotal.WithLabelValues("add", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(CategoryOpsTotal.WithLabelValues("add", StatusError)))
}

func TestActiveSessionGauge(t *testing.T) {
	ActiveSessionGauge.Set(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(ActiveSessionGauge))

	ActiveSessionGauge.Set(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(ActiveSessionGauge))
}
