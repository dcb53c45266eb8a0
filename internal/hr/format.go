package hr

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func ref(id *uint) string {
	if id == nil {
		return ""
	}
	return "#" + strconv.FormatUint(uint64(*id), 10)
}

func idPtr(id uint) *uint { return &id }

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }
