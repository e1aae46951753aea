package coinfolio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DecodeLedger decodes transactions from a stream of JSONL data, one
// transaction per line, and returns them in a Ledger in the same order.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("could not decode transaction in line %d %q: %w", line, string(lineBytes), err)
		}
		if _, err := ledger.Append(tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %q: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger writes all the transactions of the ledger to w in JSONL
// format, in insertion order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// TransactionsFile is the name of the transactions file in a data directory.
const TransactionsFile = "transactions.jsonl"

// FileStore is a Ledger persisted to a JSONL file after each change.
type FileStore struct {
	*Ledger
	path string
}

// OpenFileStore loads the transactions file of a data directory. A missing
// file is an empty store, it is created on the first change.
func OpenFileStore(dir string) (*FileStore, error) {
	path := filepath.Join(dir, TransactionsFile)
	s := &FileStore{Ledger: NewLedger(), path: path}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open transactions: %w", err)
	}
	defer f.Close()

	if s.Ledger, err = DecodeLedger(f); err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return s, nil
}

// Path returns the path of the transactions file.
func (s *FileStore) Path() string { return s.path }

// Append implements TransactionStore.
func (s *FileStore) Append(tx Transaction) (Transaction, error) {
	tx, err := s.Ledger.Append(tx)
	if err != nil {
		return tx, err
	}
	return tx, s.save()
}

// Remove implements TransactionStore.
func (s *FileStore) Remove(id string) error {
	if err := s.Ledger.Remove(id); err != nil {
		return err
	}
	return s.save()
}

// Update implements TransactionStore.
func (s *FileStore) Update(id string, tx Transaction) error {
	if err := s.Ledger.Update(id, tx); err != nil {
		return err
	}
	return s.save()
}

// Clear implements TransactionStore.
func (s *FileStore) Clear() error {
	if err := s.Ledger.Clear(); err != nil {
		return err
	}
	return s.save()
}

// save writes the whole ledger to a temporary file then renames it over the
// transactions file.
func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".transactions-*.jsonl")
	if err != nil {
		return fmt.Errorf("could not save transactions: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := EncodeLedger(w, s.Ledger); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("could not save transactions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not save transactions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not save transactions: %w", err)
	}
	return nil
}
