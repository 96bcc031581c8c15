package advance

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{50, "50.00"},
		{123, "123.00"},
		{1234.5, "1,234.50"},
		{999999.99, "999,999.99"},
		{1000000, "1,000,000.00"},
		{1126.83, "1,126.83"},
		{-1234.5, "-1,234.50"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
