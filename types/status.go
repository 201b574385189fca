package types

// Status is the canonical qualitative classification of a measurement
// relative to its reference range. No other values are allowed downstream.
type Status string

const (
	StatusNormal Status = "normal"
	StatusLow    Status = "low"
	StatusHigh   Status = "high"
	StatusBorder Status = "border"
)

func (s Status) Abnormal() bool {
	return s == StatusLow || s == StatusHigh || s == StatusBorder
}
