package huffpack

import (
	"bytes"
	"testing"
)

func benchInput() []byte {
	return bytes.Repeat([]byte(mixedInput), 2048)
}

func BenchmarkCompress(b *testing.B) {
	data := benchInput()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compress(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	blob := mustCompress(benchInput())
	b.SetBytes(int64(len(blob)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decompress(blob); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildTree(b *testing.B) {
	h, err := NewHistogram(benchInput())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildTree(h); err != nil {
			b.Fatal(err)
		}
	}
}
