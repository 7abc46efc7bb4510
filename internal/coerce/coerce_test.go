package coerce

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBool(t *testing.T) {
	tests := []struct {
		in     any
		want   bool
		wantOK bool
	}{
		{"yes", true, true},
		{" Y ", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"no", false, true},
		{"N", false, true},
		{"false", false, true},
		{"0", false, true},
		{true, true, true},
		{false, false, true},
		{1, true, true},
		{0, false, true},
		{"maybe", false, false},
		{"", false, false},
		{nil, false, false},
	}
	for _, tc := range tests {
		got, ok := Bool(tc.in)
		assert.Equal(t, tc.wantOK, ok, "Bool(%#v) ok", tc.in)
		if ok {
			assert.Equal(t, tc.want, got, "Bool(%#v)", tc.in)
		}
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{"12.5", 12.5, true},
		{" 3 ", 3, true},
		{42, 42, true},
		{int64(7), 7, true},
		{2.25, 2.25, true},
		{json.Number("8.125"), 8.125, true},
		{"", 0, false},
		{"n/a", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tc := range tests {
		got, ok := Float(tc.in)
		assert.Equal(t, tc.wantOK, ok, "Float(%#v) ok", tc.in)
		if ok {
			assert.Equal(t, tc.want, got, "Float(%#v)", tc.in)
		}
	}
}

func TestString(t *testing.T) {
	got, ok := String("  padded  ")
	assert.True(t, ok)
	assert.Equal(t, "padded", got)

	_, ok = String("   ")
	assert.False(t, ok)

	_, ok = String(nil)
	assert.False(t, ok)

	got, ok = String(12)
	assert.True(t, ok)
	assert.Equal(t, "12", got)
}
