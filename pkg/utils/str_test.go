package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		seps []rune
		want []string
	}{
		{"a,b;c", []rune{',', ';'}, []string{"a", "b", "c"}},
		{"redis-1:6379; redis-2:6379 ,", []rune{',', ';'}, []string{"redis-1:6379", "redis-2:6379"}},
		{"a,b=c", []rune{',', ';'}, []string{"a", "b=c"}},
		{"single", []rune{','}, []string{"single"}},
		{"a,b", nil, []string{"a,b"}},
		{" , ;", []rune{',', ';'}, []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitList(tt.in, tt.seps...), tt.in)
	}
}
