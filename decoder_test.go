package huffpack

import (
	"bytes"
	"errors"
	"testing"
)

func mustCompress(data []byte) []byte {
	blob, err := Compress(data)
	if err != nil {
		panic(err)
	}
	return blob
}

func TestDecompress(t *testing.T) {
	blob := mustCompress([]byte(mixedInput))

	output, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal([]byte(mixedInput), output) {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", mixedInput, output)
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	type testRow struct {
		name   string
		mutate func(blob []byte) []byte
	}

	// Every row mutates a valid serialization of mixedInput in a way
	// that must surface as ErrCorruptContainer, never as a panic or as
	// silently wrong output.
	testData := [...]testRow{
		{
			name: "payload truncated by one byte",
			mutate: func(blob []byte) []byte {
				return blob[:len(blob)-1]
			},
		},
		{
			name: "payload extended by one byte",
			mutate: func(blob []byte) []byte {
				return append(blob, 0x00)
			},
		},
		{
			name: "declared count one high",
			mutate: func(blob []byte) []byte {
				blob[13]++
				return blob
			},
		},
		{
			name: "declared count one low",
			mutate: func(blob []byte) []byte {
				blob[13]--
				return blob
			},
		},
		{
			name: "pad count shifted",
			mutate: func(blob []byte) []byte {
				blob[5] = 1
				return blob
			},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			blob := row.mutate(mustCompress([]byte(mixedInput)))
			_, err := Decompress(blob)
			if !errors.Is(err, ErrCorruptContainer) {
				t.Errorf("expected ErrCorruptContainer, got %v", err)
			}
		})
	}
}

func TestDecompress_SingleLeafCorrupt(t *testing.T) {
	type testRow struct {
		name   string
		mutate func(blob []byte) []byte
	}

	// A single-leaf container's payload must be exactly SymbolCount
	// zero bits plus padding.
	testData := [...]testRow{
		{
			name: "all one bits",
			mutate: func(blob []byte) []byte {
				blob[16] = 0xff
				return blob
			},
		},
		{
			name: "one flipped bit",
			mutate: func(blob []byte) []byte {
				blob[16] = 0x20
				return blob
			},
		},
		{
			name: "payload extended by one byte",
			mutate: func(blob []byte) []byte {
				return append(blob, 0x00)
			},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			blob := row.mutate(goldenSingleSymbol())
			_, err := Decompress(blob)
			if !errors.Is(err, ErrCorruptContainer) {
				t.Errorf("expected ErrCorruptContainer, got %v", err)
			}
		})
	}
}

func TestDecode_NoTree(t *testing.T) {
	_, err := Decode(nil)
	if !errors.Is(err, ErrCorruptContainer) {
		t.Errorf("Decode(nil): expected ErrCorruptContainer, got %v", err)
	}

	_, err = Decode(new(Container))
	if !errors.Is(err, ErrCorruptContainer) {
		t.Errorf("Decode(empty): expected ErrCorruptContainer, got %v", err)
	}
}

func TestDecode_EmitsDeclaredCount(t *testing.T) {
	input := bytes.Repeat([]byte("abadcab"), 37)
	c, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	output, err := Decode(c)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if uint64(len(output)) != c.SymbolCount() {
		t.Errorf("decoded %d symbols, container declares %d", len(output), c.SymbolCount())
	}
	if !bytes.Equal(input, output) {
		t.Error("decoded output differs from the encoded input")
	}
}
