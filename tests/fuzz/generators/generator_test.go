package generators

import (
	"testing"
)

func TestOpsDeterminism(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 200, 99}
	ops1 := NewOpsGenerator(data).Ops(64)
	ops2 := NewOpsGenerator(data).Ops(64)

	if len(ops1) != len(ops2) {
		t.Fatalf("same data, different op counts: %d vs %d", len(ops1), len(ops2))
	}
	for i := range ops1 {
		if ops1[i] != ops2[i] {
			t.Fatalf("same data, different op %d: %+v vs %+v", i, ops1[i], ops2[i])
		}
	}
}

func TestOpsRespectsMax(t *testing.T) {
	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i * 7)
	}
	if ops := NewOpsGenerator(data).Ops(32); len(ops) != 32 {
		t.Errorf("Ops(32) produced %d ops", len(ops))
	}
}

func TestOpsStopsOnEmptyData(t *testing.T) {
	if ops := NewOpsGenerator(nil).Ops(64); len(ops) != 0 {
		t.Errorf("no data produced %d ops", len(ops))
	}
	// A short stream ends early instead of looping on zeros.
	if ops := NewOpsGenerator([]byte{5}).Ops(64); len(ops) > 1 {
		t.Errorf("one byte produced %d ops", len(ops))
	}
}

func TestByteSourceExhaustion(t *testing.T) {
	src := &ByteSource{data: []byte{250}}
	src.Intn(10)
	if !src.Exhausted() {
		t.Fatalf("source not exhausted after consuming its byte")
	}
	if got := src.Intn(10); got != 0 {
		t.Errorf("exhausted Intn = %d, want 0", got)
	}
	if got := src.Float64(); got != 0 {
		t.Errorf("exhausted Float64 = %g, want 0", got)
	}
}
