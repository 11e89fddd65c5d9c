package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float64", float64(1.5), 1.5},
		{"float32", float32(2), 2},
		{"int64", int64(70), 70},
		{"int", 3, 3},
		{"nil", nil, 0},
		{"string", "70", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsFloat64(tt.in))
		})
	}
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int64", int64(85), 85},
		{"int", 4, 4},
		{"float64截断", 2.9, 2},
		{"nil", nil, 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsInt64(tt.in))
		})
	}
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "react", AsString("react"))
	assert.Equal(t, "", AsString(nil))
	assert.Equal(t, "", AsString(42))
}

func TestAsBool(t *testing.T) {
	assert.True(t, AsBool(true))
	assert.False(t, AsBool(nil))
	assert.False(t, AsBool("true"))
}

func TestAsStringSlice(t *testing.T) {
	got := AsStringSlice([]interface{}{"a", "b", 1, nil, "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)

	assert.Empty(t, AsStringSlice(nil))
	assert.Empty(t, AsStringSlice("not-a-list"))
}
