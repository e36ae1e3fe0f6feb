package respond

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Int with thousands separators
func Int(n int) string {
	return printer.Sprint(number.Decimal(n))
}

// Float with thousands separators and at most three fraction digits
func Float(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// GPA shortest form, e.g. 3.4 or 3.97
func GPA(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percent one decimal
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
