package renderer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestReadInfoLog(t *testing.T) {
	t.Parallel()

	driverLog := "0:3: error: syntax error\n"
	fill := func(text string) func(int32, *uint8) {
		return func(size int32, buf *uint8) {
			dst := unsafe.Slice(buf, size)
			n := copy(dst, text)
			if n < len(dst) {
				dst[n] = 0
			}
		}
	}

	tests := []struct {
		name   string
		length int32
		fetch  func(int32, *uint8)
		want   string
	}{
		{name: "full log", length: int32(len(driverLog) + 1), fetch: fill(driverLog), want: driverLog},
		{name: "shorter than reported", length: 64, fetch: fill("warning"), want: "warning"},
		{name: "truncated", length: 5, fetch: fill(driverLog), want: "0:3: "},
		{name: "empty", length: 0, fetch: func(int32, *uint8) { t.Fatal("fetch called for an empty log") }, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readInfoLog(tt.length, tt.fetch))
		})
	}
}
