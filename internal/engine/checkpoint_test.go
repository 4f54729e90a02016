package engine

import (
	"bytes"
	"testing"

	"sedimentology/internal/accountstore"
)

func TestProgramBlobRoundTrip(t *testing.T) {
	program := []byte{0x7f, 'E', 'L', 'F', 0, 1, 2, 3, 0xff}

	blob, err := EncodeProgram(program)
	if err != nil {
		t.Fatalf("EncodeProgram: %v", err)
	}
	restored, err := DecodeProgram(blob)
	if err != nil {
		t.Fatalf("DecodeProgram: %v", err)
	}
	if !bytes.Equal(restored, program) {
		t.Errorf("round trip mismatch: %x != %x", restored, program)
	}
}

func TestProgramBlobDeterministic(t *testing.T) {
	program := bytes.Repeat([]byte{1, 2, 3, 4, 5}, 1000)

	a, err := EncodeProgram(program)
	if err != nil {
		t.Fatalf("EncodeProgram: %v", err)
	}
	b, err := EncodeProgram(program)
	if err != nil {
		t.Fatalf("EncodeProgram: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two encodings of the same program differ")
	}
}

func TestAccountBlobRoundTrip(t *testing.T) {
	src := accountstore.NewMemoryStore()
	defer src.Close()
	src.Upsert("whirlpoolB", []byte{4, 5, 6})
	src.Upsert("whirlpoolA", []byte{1, 2, 3})
	src.Upsert("oracle", []byte{})

	blob, err := EncodeAccounts(src)
	if err != nil {
		t.Fatalf("EncodeAccounts: %v", err)
	}

	dst := accountstore.NewMemoryStore()
	defer dst.Close()
	if err := DecodeAccounts(blob, dst); err != nil {
		t.Fatalf("DecodeAccounts: %v", err)
	}

	var srcRows, dstRows []string
	src.Traverse(func(a string, d []byte) error {
		srcRows = append(srcRows, a+":"+string(d))
		return nil
	})
	dst.Traverse(func(a string, d []byte) error {
		dstRows = append(dstRows, a+":"+string(d))
		return nil
	})
	if len(srcRows) != len(dstRows) {
		t.Fatalf("restored %d accounts, want %d", len(dstRows), len(srcRows))
	}
	for i := range srcRows {
		if srcRows[i] != dstRows[i] {
			t.Errorf("row %d: %q != %q", i, dstRows[i], srcRows[i])
		}
	}
}

func TestAccountBlobDeterministic(t *testing.T) {
	// insertion order must not leak into the blob
	a := accountstore.NewMemoryStore()
	a.Upsert("x", []byte{1})
	a.Upsert("a", []byte{2})
	a.Upsert("m", []byte{3})

	b := accountstore.NewMemoryStore()
	b.Upsert("m", []byte{3})
	b.Upsert("x", []byte{1})
	b.Upsert("a", []byte{2})

	blobA, err := EncodeAccounts(a)
	if err != nil {
		t.Fatalf("EncodeAccounts: %v", err)
	}
	blobB, err := EncodeAccounts(b)
	if err != nil {
		t.Fatalf("EncodeAccounts: %v", err)
	}
	if !bytes.Equal(blobA, blobB) {
		t.Error("blobs differ across insertion orders")
	}
}
