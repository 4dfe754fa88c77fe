package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	// ErrClosed is returned when using a closed journal.
	ErrClosed = errors.New("journal is closed")
	// errTorn marks a partial or corrupt record at the tail of the file.
	errTorn = errors.New("torn record")
)

// Journal is an append-only file of put and delete records.
type Journal struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	seq    uint64 // last sequence number written
	sync   bool   // fsync after each append
	closed bool
	now    func() time.Time
}

// Open opens or creates the journal at path. A torn record left by a crash
// is cut off so appends continue from the last complete record.
func Open(path string, syncWrites bool) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}

	var last uint64
	valid, err := scan(file, func(r *Record) error {
		last = r.Seq
		return nil
	})
	if err != nil && !errors.Is(err, errTorn) {
		file.Close()
		return nil, fmt.Errorf("failed to scan journal %s: %w", path, err)
	}
	if errors.Is(err, errTorn) {
		if err := file.Truncate(valid); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to truncate torn journal: %w", err)
		}
	}
	if _, err := file.Seek(valid, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to seek journal: %w", err)
	}

	return &Journal{
		path: path,
		file: file,
		seq:  last,
		sync: syncWrites,
		now:  time.Now,
	}, nil
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Append writes a record and returns its sequence number.
func (j *Journal) Append(typ RecordType, key, value []byte) (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return 0, ErrClosed
	}

	r := &Record{
		Header: Header{Seq: j.seq + 1, Stamp: j.now().UnixNano(), Type: typ},
		Key:    key,
		Value:  value,
	}
	data, err := r.Encode()
	if err != nil {
		return 0, err
	}

	if _, err := j.file.Write(data); err != nil {
		return 0, fmt.Errorf("failed to append record: %w", err)
	}
	if j.sync {
		if err := j.file.Sync(); err != nil {
			return 0, fmt.Errorf("failed to sync journal: %w", err)
		}
	}

	j.seq = r.Seq
	return r.Seq, nil
}

// Replay calls fn for every record in append order.
func (j *Journal) Replay(fn func(*Record) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}

	f, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("failed to open journal for replay: %w", err)
	}
	defer f.Close()

	_, err = scan(f, fn)
	return err
}

// Rewrite atomically replaces the journal contents with records,
// renumbering them from 1. Stamps are kept.
func (j *Journal) Rewrite(records []*Record) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}

	tmpPath := j.path + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create rewrite file: %w", err)
	}

	w := bufio.NewWriter(tmp)
	var seq uint64
	for _, r := range records {
		seq++
		out := &Record{
			Header: Header{Seq: seq, Stamp: r.Stamp, Type: r.Type},
			Key:    r.Key,
			Value:  r.Value,
		}
		data, err := out.Encode()
		if err == nil {
			_, err = w.Write(data)
		}
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write record %d: %w", seq, err)
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush rewrite file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync rewrite file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := j.file.Close(); err != nil {
		return fmt.Errorf("failed to close journal: %w", err)
	}
	if err := os.Rename(tmpPath, j.path); err != nil {
		return fmt.Errorf("failed to replace journal: %w", err)
	}

	file, err := os.OpenFile(j.path, os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		j.closed = true
		return fmt.Errorf("failed to reopen journal: %w", err)
	}
	j.file = file
	j.seq = seq
	return nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	return j.file.Close()
}

// scan reads records from r until EOF. It returns the number of bytes
// belonging to complete records, and errTorn if the tail is incomplete,
// oversized, of an unknown type or fails its checksum.
func scan(r io.Reader, fn func(*Record) error) (int64, error) {
	br := bufio.NewReader(r)
	var offset int64

	header := make([]byte, HeaderSize)
	for {
		n, err := io.ReadFull(br, header)
		if err == io.EOF {
			return offset, nil
		}
		if err == io.ErrUnexpectedEOF {
			return offset, fmt.Errorf("%w: %d byte header at offset %d", errTorn, n, offset)
		}
		if err != nil {
			return offset, err
		}

		h, err := decodeHeader(header)
		if err != nil {
			return offset, err
		}

		if h.ValueLen > MaxValueSize {
			return offset, fmt.Errorf("%w: %d byte value at offset %d", errTorn, h.ValueLen, offset)
		}

		size := HeaderSize + int(h.KeyLen) + int(h.ValueLen)
		buf := make([]byte, size)
		copy(buf, header)
		if _, err := io.ReadFull(br, buf[HeaderSize:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return offset, fmt.Errorf("%w: short payload at offset %d", errTorn, offset)
			}
			return offset, err
		}

		rec := &Record{}
		if err := rec.Decode(buf); err != nil {
			return offset, fmt.Errorf("%w: %v at offset %d", errTorn, err, offset)
		}
		if err := fn(rec); err != nil {
			return offset, err
		}
		offset += int64(size)
	}
}
