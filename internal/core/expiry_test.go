package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	created := int64(1_000)
	tests := []struct {
		name   string
		window int64
		age    int64
		want   bool
	}{
		{"unbounded, fresh", 0, 0, false},
		{"unbounded, ancient", 0, 1 << 40, false},
		{"inside window", 10, 9, false},
		{"at window edge", 10, 10, false},
		{"one past window", 10, 11, true},
		{"clock behind creation", 10, -5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{CreatedAt: created, ExpiresAfter: tt.window}
			assert.Equal(t, tt.want, IsExpired(r, time.Unix(created+tt.age, 0)))
		})
	}
	assert.False(t, IsExpired(nil, time.Now()))
}

func TestCacheMaxAge(t *testing.T) {
	assert.EqualValues(t, 0, CacheMaxAge(&Record{ExpiresAfter: 0}))
	assert.EqualValues(t, 3600, CacheMaxAge(&Record{ExpiresAfter: 3600}))
}
