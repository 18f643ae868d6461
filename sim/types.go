package sim

// TransactionClass is the kind of business a teller handles for a whole run.
type TransactionClass string

const (
	ClassWithdrawal TransactionClass = "withdrawal"
	ClassPayment    TransactionClass = "payment"
)

// CustomerKind is a speed profile that determines arrival gap and service time means.
type CustomerKind string

const (
	KindFast     CustomerKind = "fast"
	KindNormal   CustomerKind = "normal"
	KindSlow     CustomerKind = "slow"
	KindVerySlow CustomerKind = "very_slow"
)

// AllClasses lists transaction classes in reporting order.
var AllClasses = []TransactionClass{ClassWithdrawal, ClassPayment}

// AllKinds lists customer kinds in table order. The categorical draw scans
// kinds in this order, so it is part of the reproducibility contract.
var AllKinds = []CustomerKind{KindFast, KindNormal, KindSlow, KindVerySlow}

var validClasses = map[TransactionClass]bool{
	ClassWithdrawal: true,
	ClassPayment:    true,
}

var validKinds = map[CustomerKind]bool{
	KindFast:     true,
	KindNormal:   true,
	KindSlow:     true,
	KindVerySlow: true,
}
