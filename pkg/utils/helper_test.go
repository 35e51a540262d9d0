package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()
	assert.Regexp(t, `^SO-\d{8}-\d{6}-\d{4}$`, number)
}

func TestFormatTicketCode(t *testing.T) {
	assert.Equal(t, "TKT/00001", FormatTicketCode(1))
	assert.Equal(t, "TKT/12345", FormatTicketCode(12345))
	assert.Equal(t, "TKT/100000", FormatTicketCode(100000))
}
