package report

import "github.com/shopspring/decimal"

// FormatMetric renders a metric value with four decimal places.
func FormatMetric(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(4)
}

// FormatChange renders a signed metric change with four decimal places.
func FormatChange(value float64) string {
	change := decimal.NewFromFloat(value).Round(4)
	if change.IsPositive() {
		return "+" + change.StringFixed(4)
	}
	if change.IsZero() {
		return decimal.Zero.StringFixed(4)
	}
	return change.StringFixed(4)
}
