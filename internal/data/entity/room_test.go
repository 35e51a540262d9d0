package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RowLabel(tt.index), "index %d", tt.index)
	}
}
