package protocol

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Keeps the first MaxStringLength characters of input
func truncate(input string) (output string) {
	output = input
	if utf8.RuneCountInString(input) <= MaxStringLength {
		return
	}

	var count int
	for index := range input {
		if count == MaxStringLength {
			output = input[:index]
			return
		}
		count++
	}
	return
}

// Percent-encodes a value so it can be joined with & and =.
// Spaces become %20 rather than +.
func escape(value string) (escaped string) {
	escaped = strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
	return
}

// Reverses escape, falling back to the raw text when it is not valid percent-encoding
func unescape(value string) (unescaped string) {
	unescaped, err := url.PathUnescape(value)
	if err != nil {
		unescaped = value
	}
	return
}

// Formats a float the way the collector expects, including the non-finite literals
func formatDouble(value float64) (text string) {
	switch {
	case math.IsNaN(value):
		text = "NaN"
	case math.IsInf(value, 1):
		text = "Infinity"
	case math.IsInf(value, -1):
		text = "-Infinity"
	default:
		abs := math.Abs(value)
		if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
			text = strconv.FormatFloat(value, 'e', -1, 64)
		} else {
			text = strconv.FormatFloat(value, 'f', -1, 64)
		}
	}
	return
}

// Accumulates key=value pairs joined by &
type fieldWriter struct {
	builder strings.Builder
}

func (writer *fieldWriter) raw(key string, value string) {
	if writer.builder.Len() > 0 {
		writer.builder.WriteByte(fieldSeparator)
	}
	writer.builder.WriteString(key)
	writer.builder.WriteByte(pairSeparator)
	writer.builder.WriteString(value)
}

// Adds an escaped string field
func (writer *fieldWriter) str(key string, value string) {
	writer.raw(key, escape(value))
}

// Adds an escaped string field cut to MaxStringLength characters
func (writer *fieldWriter) text(key string, value string) {
	writer.raw(key, escape(truncate(value)))
}

func (writer *fieldWriter) num(key string, value int64) {
	writer.raw(key, strconv.FormatInt(value, 10))
}

func (writer *fieldWriter) record() (record Record) {
	record = Record(writer.builder.String())
	return
}

func (writer *fieldWriter) String() (text string) {
	text = writer.builder.String()
	return
}
