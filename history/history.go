package history

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
)

// MaxRowSize bounds a single row so a corrupt size prefix cannot force a
// huge allocation.
const MaxRowSize = 1 << 20

var ErrRowTooLarge = errors.New("row too large")

type Status byte

const (
	StatusValue Status = iota + 1
	StatusEmpty
	StatusFailed
)

// Entry is one evaluated line.
type Entry struct {
	ID     uint32
	Source string
	Status Status
	Value  int32
	Error  string
}

func (e *Entry) String() string {
	switch e.Status {
	case StatusValue:
		return e.Source + " = " + strconv.FormatInt(int64(e.Value), 10)
	case StatusFailed:
		return e.Source + " ! " + e.Error
	}

	return e.Source
}

// Log is an append-only file of entries. Every row is prefixed with its
// size; fields are little endian.
type Log struct {
	mu sync.Mutex

	fs   billy.Filesystem
	name string
}

func NewLog(fs billy.Filesystem, name string) *Log {
	return &Log{fs: fs, name: name}
}

func (l *Log) Name() string {
	return l.fs.Join(l.fs.Root(), l.name)
}

// Append writes e to the end of the log, assigning it an ID when it has
// none.
func (l *Log) Append(e *Entry) error {
	if e.ID == 0 {
		e.ID = uuid.New().ID()
	}

	row := encodeEntry(e)
	if len(row) > MaxRowSize {
		return fmt.Errorf("%w: entry takes %d bytes, at most %d allowed", ErrRowTooLarge, len(row), MaxRowSize)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.fs.OpenFile(l.name, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	rowSizeBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(rowSizeBytes, uint32(len(row)))
	blob := append(rowSizeBytes, row...)

	_, err = file.Write(blob)
	if err != nil {
		return fmt.Errorf("an error occurred writing entry to %s: %w", l.name, err)
	}

	return nil
}

// Read calls fn for every entry in write order. It stops at the first
// error returned by fn or when ctx is done.
func (l *Log) Read(ctx context.Context, fn func(*Entry) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for row := range l.createReader(ctx) {
		switch r := row.(type) {
		case []byte:
			e, err := decodeEntry(r)
			if err != nil {
				return err
			}

			if err := fn(e); err != nil {
				return err
			}
		case error:
			return r
		}
	}

	return ctx.Err()
}

func (l *Log) createReader(ctx context.Context) chan any {
	ch := make(chan any, 1)

	send := func(v any) bool {
		select {
		case ch <- v:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(ch)

		file, err := l.fs.Open(l.name)
		if errors.Is(err, os.ErrNotExist) {
			return
		}

		if err != nil {
			send(err)
			return
		}
		defer file.Close()

		for {
			select {
			case <-ctx.Done():
				send(ctx.Err())
				return
			default:
				rowSizeBytes := make([]byte, 4)
				_, err := io.ReadFull(file, rowSizeBytes)
				if errors.Is(err, io.EOF) {
					return
				}

				if err != nil {
					send(fmt.Errorf("read invalid amount of bytes: %w", err))
					return
				}

				rowSize := binary.LittleEndian.Uint32(rowSizeBytes)
				if rowSize > MaxRowSize {
					send(fmt.Errorf("%w: %d bytes in %s", ErrRowTooLarge, rowSize, l.name))
					return
				}

				rowBytes := make([]byte, rowSize)
				_, err = io.ReadFull(file, rowBytes)
				if err != nil {
					send(fmt.Errorf("read invalid amount of bytes: %w", err))
					return
				}

				if !send(rowBytes) {
					return
				}
			}
		}
	}()

	return ch
}

func encodeEntry(e *Entry) []byte {
	var row []byte
	int32Bytes := make([]byte, 4)

	binary.LittleEndian.PutUint32(int32Bytes, e.ID)
	row = append(row, int32Bytes...)

	row = append(row, byte(e.Status))

	binary.LittleEndian.PutUint32(int32Bytes, uint32(e.Value))
	row = append(row, int32Bytes...)

	row = appendString(row, e.Source)
	row = appendString(row, e.Error)

	return row
}

func appendString(row []byte, s string) []byte {
	size := make([]byte, 4)
	binary.LittleEndian.PutUint32(size, uint32(len(s)))
	row = append(row, size...)

	return append(row, s...)
}

func decodeEntry(row []byte) (*Entry, error) {
	r := bytes.NewReader(row)
	e := &Entry{}

	int32Bytes := make([]byte, 4)
	if _, err := io.ReadFull(r, int32Bytes); err != nil {
		return nil, fmt.Errorf("corrupt entry id: %w", err)
	}
	e.ID = binary.LittleEndian.Uint32(int32Bytes)

	status, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("corrupt entry status: %w", err)
	}
	e.Status = Status(status)

	if _, err := io.ReadFull(r, int32Bytes); err != nil {
		return nil, fmt.Errorf("corrupt entry value: %w", err)
	}
	e.Value = int32(binary.LittleEndian.Uint32(int32Bytes))

	if e.Source, err = readString(r); err != nil {
		return nil, fmt.Errorf("corrupt entry source: %w", err)
	}

	if e.Error, err = readString(r); err != nil {
		return nil, fmt.Errorf("corrupt entry error: %w", err)
	}

	return e, nil
}

func readString(r *bytes.Reader) (string, error) {
	size := make([]byte, 4)
	if _, err := io.ReadFull(r, size); err != nil {
		return "", err
	}

	n := binary.LittleEndian.Uint32(size)
	if int64(n) > int64(r.Len()) {
		return "", io.ErrUnexpectedEOF
	}

	s := make([]byte, n)
	if _, err := io.ReadFull(r, s); err != nil {
		return "", err
	}

	return string(s), nil
}
