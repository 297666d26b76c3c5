package trace

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// BranchReader yields BranchRecord values from a semicolon-delimited trace
// file, one per call to Next. The file is opened lazily on the first call
// and held open, past EOF, until Close is called.
type BranchReader struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	lineNo  int
}

// NewBranchReader returns a reader over path. The file is not opened until
// the first call to Next.
func NewBranchReader(path string) *BranchReader {
	return &BranchReader{path: path}
}

func (r *BranchReader) ensureOpen() error {
	if r.file != nil {
		return nil
	}
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOpenFile, r.path)
	}
	r.file = f
	r.scanner = bufio.NewScanner(f)
	return nil
}

// Next returns the next branch record. ok is false at EOF, with err nil.
func (r *BranchReader) Next() (rec BranchRecord, ok bool, err error) {
	if err = r.ensureOpen(); err != nil {
		return BranchRecord{}, false, err
	}

	for r.scanner.Scan() {
		r.lineNo++
		line := r.scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) != 5 {
			return BranchRecord{}, false, &MalformedLineError{
				Line: line, LineNo: r.lineNo, Want: 5, Got: len(fields),
			}
		}

		address, err := strconv.ParseUint(fields[2], 0, 64)
		if err != nil {
			return BranchRecord{}, false, fmt.Errorf("line %d: bad address: %w", r.lineNo, err)
		}
		size, err := strconv.ParseUint(fields[3], 0, 64)
		if err != nil {
			return BranchRecord{}, false, fmt.Errorf("line %d: bad size: %w", r.lineNo, err)
		}

		rec = BranchRecord{
			Assembly:      fields[0],
			Opcode:        fields[1],
			Address:       address,
			Size:          size,
			IsConditional: fields[4] == "C",
		}
		return rec, true, nil
	}

	if err := r.scanner.Err(); err != nil {
		return BranchRecord{}, false, fmt.Errorf("reading %s: %w", r.path, err)
	}
	return BranchRecord{}, false, nil
}

// Close releases the underlying file handle, if one was opened.
func (r *BranchReader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// MemoryReader yields MemoryRecord values from a semicolon-delimited trace
// file, one per call to Next.
type MemoryReader struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	lineNo  int
}

// NewMemoryReader returns a reader over path. The file is not opened until
// the first call to Next.
func NewMemoryReader(path string) *MemoryReader {
	return &MemoryReader{path: path}
}

func (r *MemoryReader) ensureOpen() error {
	if r.file != nil {
		return nil
	}
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOpenFile, r.path)
	}
	r.file = f
	r.scanner = bufio.NewScanner(f)
	return nil
}

// Next returns the next memory record. ok is false at EOF, with err nil.
func (r *MemoryReader) Next() (rec MemoryRecord, ok bool, err error) {
	if err = r.ensureOpen(); err != nil {
		return MemoryRecord{}, false, err
	}

	for r.scanner.Scan() {
		r.lineNo++
		line := r.scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) != 6 {
			return MemoryRecord{}, false, &MalformedLineError{
				Line: line, LineNo: r.lineNo, Want: 6, Got: len(fields),
			}
		}

		address, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return MemoryRecord{}, false, fmt.Errorf("line %d: bad address: %w", r.lineNo, err)
		}
		read1, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return MemoryRecord{}, false, fmt.Errorf("line %d: bad read1: %w", r.lineNo, err)
		}
		read2, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return MemoryRecord{}, false, fmt.Errorf("line %d: bad read2: %w", r.lineNo, err)
		}
		write, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			return MemoryRecord{}, false, fmt.Errorf("line %d: bad write: %w", r.lineNo, err)
		}

		rec = MemoryRecord{
			Assembly: fields[0],
			Address:  address,
			Opcode:   fields[2],
			Read1:    read1,
			Read2:    read2,
			Write:    write,
		}
		return rec, true, nil
	}

	if err := r.scanner.Err(); err != nil {
		return MemoryRecord{}, false, fmt.Errorf("reading %s: %w", r.path, err)
	}
	return MemoryRecord{}, false, nil
}

// Close releases the underlying file handle, if one was opened.
func (r *MemoryReader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}
