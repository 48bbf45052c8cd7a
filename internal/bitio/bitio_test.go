package bitio

import (
	"bytes"
	"testing"
)

func TestBytesToBitsRoundTrip(t *testing.T) {
	data := []byte{0xFF, 0x00, 0xAA}
	bits := BytesToBits(data)
	want := []byte{1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0}
	if !bytes.Equal(bits, want) {
		t.Fatalf("BytesToBits(%v) = %v, want %v", data, bits, want)
	}
	back := BitsToBytes(bits)
	if !bytes.Equal(back, data) {
		t.Fatalf("BitsToBytes round-trip = %v, want %v", back, data)
	}
}

func TestPackUnpackGroupRoundTrip(t *testing.T) {
	for k := 1; k <= 4; k++ {
		data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		bits := BytesToBits(data)

		var carriers []byte
		for off := 0; off < len(bits); off += k {
			group := PackGroup(bits, off, k)
			carriers = append(carriers, WriteCarrier(0xF0, group, k))
		}

		var recovered []byte
		for _, c := range carriers {
			recovered = UnpackGroup(recovered, ReadCarrier(c, k), k)
		}
		recovered = recovered[:len(bits)]

		if !bytes.Equal(recovered, bits) {
			t.Fatalf("k=%d: round-trip bits = %v, want %v", k, recovered, bits)
		}
	}
}

func TestWriteCarrierPreservesHighBits(t *testing.T) {
	carrier := byte(0b11110101)
	out := WriteCarrier(carrier, 0b11, 2)
	if out != 0b11110111 {
		t.Fatalf("WriteCarrier = %08b, want %08b", out, 0b11110111)
	}
}

func TestPackGroupPadsShortFinalGroup(t *testing.T) {
	bits := []byte{1, 1}
	got := PackGroup(bits, 0, 4)
	// first two bits taken MSB-first, remaining two padded with 0: 1100
	if got != 0b1100 {
		t.Fatalf("PackGroup short group = %04b, want 1100", got)
	}
}
