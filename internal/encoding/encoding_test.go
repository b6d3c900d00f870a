package encoding

import (
	"strings"
	"testing"
)

func TestResolveValidUTF8(t *testing.T) {
	got := Resolve([]byte("12/05/2023, 09:15 - Alice: Bom dia, não esqueçam a reunião!"))
	if !strings.Contains(got.Text, "não esqueçam") {
		t.Fatalf("utf-8 input mangled: %q", got.Text)
	}
}

func TestResolveLatin1Input(t *testing.T) {
	// "não" in Latin-1: 0xE3 for "ã" is invalid UTF-8.
	raw := []byte("12/05/2023, 09:15 - Alice: n\xe3o vou hoje, at\xe9 amanh\xe3")
	got := Resolve(raw)
	if !strings.Contains(got.Text, "não vou hoje") {
		t.Fatalf("latin-1 input not recovered: %q", got.Text)
	}
	if !strings.Contains(got.Text, "até amanhã") {
		t.Fatalf("accented text lost: %q", got.Text)
	}
}

func TestResolveStripsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("oi")...)
	got := Resolve(raw)
	if got.Text != "oi" {
		t.Fatalf("BOM not stripped: %q", got.Text)
	}
}

func TestResolveNeverFails(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0xFF, 0xFE, 0x00, 0x01},
		{0x80, 0x81, 0x82},
	}
	for _, raw := range inputs {
		got := Resolve(raw)
		if got.Charset == "" {
			t.Fatalf("missing charset for input %v", raw)
		}
	}
}
