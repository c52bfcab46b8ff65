package services

import (
	"strconv"
	"strings"
)

// Dimensions of a variant in centimetres.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

func (d Dimensions) zero() bool { return d.Length == 0 && d.Width == 0 && d.Height == 0 }

// colorCodes maps a color name to its two-letter SKU fragment by substring
// containment. Order matters: more specific names first, so brass does not
// collapse into gold, nor blue into silver.
var colorCodes = []struct {
	contains string
	code     string
}{
	{"ทองเหลือง", "BS"},
	{"ทองแดง", "CP"},
	{"ทอง", "GD"},
	{"น้ำเงิน", "BL"},
	{"เงิน", "SV"},
	{"ดำ", "BK"},
	{"ขาว", "WH"},
	{"ใส", "CL"},
	{"ชา", "SM"},
	{"ชมพู", "PK"},
	{"เขียว", "GN"},
	{"แดง", "RD"},
	{"brass", "BS"},
	{"copper", "CP"},
	{"gold", "GD"},
	{"silver", "SV"},
	{"black", "BK"},
	{"white", "WH"},
	{"clear", "CL"},
	{"smoke", "SM"},
	{"pink", "PK"},
	{"blue", "BL"},
	{"green", "GN"},
	{"red", "RD"},
}

// colorUnknown is the sentinel for names the table does not cover.
const colorUnknown = "XX"

func colorCode(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}
	for _, c := range colorCodes {
		if strings.Contains(s, c.contains) {
			return c.code
		}
	}
	return colorUnknown
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SKU derives the display code for a variant:
// BASE[-D{l}x{w}x{h}][-{color}][-{secondary}]. It is presentational identity
// only; it is recomputed from mutable fields, so it must never be used as an
// aggregation key (variantKey in aggregate.go is).
func SKU(baseCode string, dims *Dimensions, colorName, secondaryName string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(baseCode))
	if dims != nil && !dims.zero() {
		b.WriteString("-D")
		b.WriteString(formatDim(dims.Length))
		b.WriteString("x")
		b.WriteString(formatDim(dims.Width))
		b.WriteString("x")
		b.WriteString(formatDim(dims.Height))
	}
	if c := colorCode(colorName); c != "" {
		b.WriteString("-")
		b.WriteString(c)
	}
	if c := colorCode(secondaryName); c != "" {
		b.WriteString("-")
		b.WriteString(c)
	}
	return b.String()
}
