package engine

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"sedimentology/internal/accountstore"
)

// Daily checkpoint codec.
//
// Program blob:  gzip(base64(program binary)).
// Account blob:  gzip(csv), one "<address>,<base64(data)>" row per live
// account in ascending address order.
//
// Both encodings are byte-deterministic: fixed gzip level, zero gzip
// header metadata, traversal order fixed by the store contract. Two
// runs over identical inputs must produce identical blobs, since the
// archiver's idempotence checks compare artifact hashes.

// EncodeProgram compresses the program binary into the checkpoint blob.
func EncodeProgram(programData []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := gz.Write([]byte(base64.StdEncoding.EncodeToString(programData))); err != nil {
		return nil, fmt.Errorf("compress program data: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("compress program data: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeProgram restores the program binary from a checkpoint blob.
func DecodeProgram(compressed []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("decompress program data: %w", err)
	}
	defer gz.Close()
	encoded, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("decompress program data: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(encoded)))
	if err != nil {
		return nil, fmt.Errorf("decode program data: %w", err)
	}
	return data, nil
}

// EncodeAccounts serializes the full account set into the checkpoint
// blob, in store traversal (ascending address) order.
func EncodeAccounts(accounts accountstore.Store) ([]byte, error) {
	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(gz)
	err = accounts.Traverse(func(address string, data []byte) error {
		return w.Write([]string{address, base64.StdEncoding.EncodeToString(data)})
	})
	if err != nil {
		return nil, fmt.Errorf("encode accounts: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode accounts: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("encode accounts: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeAccounts restores a checkpoint account blob into the store.
func DecodeAccounts(compressed []byte, accounts accountstore.Store) error {
	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("decompress accounts: %w", err)
	}
	defer gz.Close()

	r := csv.NewReader(gz)
	r.FieldsPerRecord = 2
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode accounts csv: %w", err)
		}
		data, err := base64.StdEncoding.DecodeString(record[1])
		if err != nil {
			return fmt.Errorf("decode account %s: %w", record[0], err)
		}
		if err := accounts.Upsert(record[0], data); err != nil {
			return fmt.Errorf("restore account %s: %w", record[0], err)
		}
	}
}
