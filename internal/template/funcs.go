package template

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// clock renders a stored HH:MM:SS slot as 3:04 PM, other input is returned as is
//
//	{{ clock .Time }}
func clock(slot string) string {
	t, err := time.Parse(time.TimeOnly, slot)
	if err != nil {
		return slot
	}
	return t.Format(time.Kitchen)
}

// weekday names the day of a YYYY-MM-DD date
func weekday(date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// money formats an amount with two decimals, unparsable amounts render empty
func money(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return ""
	}
	return d.StringFixed(2)
}

// addon reads a gjson path out of the appointment's addons document.
// A missing path yields an empty string.
//
//	{{ addon "recording" .Addons }}
func addon(path, addons string) string {
	return gjson.Get(addons, path).String()
}
