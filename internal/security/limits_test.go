package security

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSafeUint8(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{
		{in: -5, want: 0},
		{in: 0, want: 0},
		{in: 128, want: 128},
		{in: 255, want: 255},
		{in: 300, want: 255},
	}

	for _, tt := range tests {
		if got := SafeUint8(tt.in); got != tt.want {
			t.Errorf("SafeUint8(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLimitedReader(t *testing.T) {
	t.Run("under limit", func(t *testing.T) {
		data, err := io.ReadAll(NewLimitedReader(strings.NewReader("hello"), 64))
		if err != nil {
			t.Fatalf("ReadAll() error: %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("ReadAll() = %q, want %q", data, "hello")
		}
	})

	t.Run("exactly at limit", func(t *testing.T) {
		data, err := io.ReadAll(NewLimitedReader(bytes.NewReader([]byte("abcd")), 4))
		if err != nil {
			t.Fatalf("ReadAll() error: %v", err)
		}
		if len(data) != 4 {
			t.Errorf("ReadAll() read %d bytes, want 4", len(data))
		}
	})

	t.Run("one past limit", func(t *testing.T) {
		_, err := io.ReadAll(NewLimitedReader(bytes.NewReader([]byte("abcde")), 4))
		if !errors.Is(err, ErrSizeLimit) {
			t.Errorf("ReadAll() error = %v, want ErrSizeLimit", err)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := io.ReadAll(NewLimitedReader(strings.NewReader(strings.Repeat("x", 100)), 10))
		if !errors.Is(err, ErrSizeLimit) {
			t.Errorf("ReadAll() error = %v, want ErrSizeLimit", err)
		}
	})
}
