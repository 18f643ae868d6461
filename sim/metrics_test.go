package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServiceRecords_ZeroedForEveryCell(t *testing.T) {
	r := NewServiceRecords([]int{1, 2})
	for _, id := range []int{1, 2} {
		for _, class := range AllClasses {
			for _, kind := range AllKinds {
				n, ok := r.Completed[id][class][kind]
				assert.True(t, ok, "%d/%s/%s missing", id, class, kind)
				assert.Equal(t, 0, n)
			}
		}
		assert.NotNil(t, r.CompletionTimes[id])
		assert.Empty(t, r.CompletionTimes[id])
	}
	assert.Equal(t, 0, r.Total())
}

func TestServiceRecords_RecordCompletion(t *testing.T) {
	r := NewServiceRecords([]int{1, 2})
	r.RecordCompletion(1, ClassWithdrawal, KindFast, 3.5)
	r.RecordCompletion(1, ClassWithdrawal, KindFast, 4)
	r.RecordCompletion(2, ClassPayment, KindVerySlow, 10)

	assert.Equal(t, 2, r.Completed[1][ClassWithdrawal][KindFast])
	assert.Equal(t, 1, r.Completed[2][ClassPayment][KindVerySlow])
	assert.Equal(t, []float64{3.5, 4}, r.CompletionTimes[1])
	assert.Equal(t, 2, r.StationTotal(1))
	assert.Equal(t, 1, r.StationTotal(2))
	assert.Equal(t, 3, r.Total())
	assert.Equal(t, 2, r.CountByKind(ClassWithdrawal, KindFast))
	assert.Equal(t, 0, r.CountByKind(ClassPayment, KindFast))
}

func TestMeanCompletionTime(t *testing.T) {
	assert.Equal(t, 0.0, MeanCompletionTime(nil))
	assert.Equal(t, 0.0, MeanCompletionTime([]float64{}))
	assert.InDelta(t, 5.0, MeanCompletionTime([]float64{4, 6}), 1e-12)
	assert.InDelta(t, 2.5, MeanCompletionTime([]float64{1, 2, 3, 4}), 1e-12)
}

func TestReplicationResult_StationIDs(t *testing.T) {
	res := &ReplicationResult{Assignment: map[int]TransactionClass{1: ClassPayment, 2: ClassWithdrawal, 3: ClassPayment}}
	assert.Equal(t, []int{1, 2, 3}, res.StationIDs())
}
