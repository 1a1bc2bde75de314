package core

import "testing"

func TestColorByName(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"gold", ColorGold, true},
		{"silver", ColorSilver, true},
		{"red", ColorBrightRed, true},
		{"plaid", ColorDefault, false},
	}
	for _, tt := range tests {
		got, ok := ColorByName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ColorByName(%q) = %v, %v; expected %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
