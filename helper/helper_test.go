package helper

import (
	"bytes"
	"testing"
)

func TestWriteVarInt(t *testing.T) {
	cases := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{0xfc, []byte{0xfc}},
		{0xfd, []byte{0xfd, 0xfd, 0x00}},
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		{0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		{0x100000000, []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}},
	}

	for _, c := range cases {
		buf := new(bytes.Buffer)
		WriteVarInt(buf, c.n)
		if !bytes.Equal(buf.Bytes(), c.want) {
			t.Errorf("WriteVarInt(%d) = %x, want %x", c.n, buf.Bytes(), c.want)
		}
	}
}

func TestHexToBytesFixed32(t *testing.T) {
	// short input pads left
	b, err := HexToBytesFixed32("abcd")
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 32 {
		t.Fatalf("length = %d, want 32", len(b))
	}
	if b[30] != 0xab || b[31] != 0xcd {
		t.Errorf("padding wrong: %x", b)
	}

	// too long rejected
	long := make([]byte, 33)
	if _, err := HexToBytesFixed32(string(bytes.Repeat([]byte("ab"), len(long)))); err == nil {
		t.Error("expected error for >32 bytes")
	}

	// invalid hex rejected
	if _, err := HexToBytesFixed32("zz"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestReverseBytes(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	got := ReverseBytes(in)
	want := []byte{4, 3, 2, 1}
	if !bytes.Equal(got, want) {
		t.Errorf("ReverseBytes = %v, want %v", got, want)
	}
	// input untouched
	if !bytes.Equal(in, []byte{1, 2, 3, 4}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestParseUTXOKey(t *testing.T) {
	txid, idx := ParseUTXOKey([]byte("utxo:deadbeef:7"))
	if txid != "deadbeef" || idx != 7 {
		t.Errorf("ParseUTXOKey = %q, %d", txid, idx)
	}
}
