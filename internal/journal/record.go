package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

var (
	// ErrChecksum is returned when a record does not match its checksum.
	ErrChecksum = errors.New("checksum mismatch")
	// ErrUnknownType is returned for a record type this package does not write.
	ErrUnknownType = errors.New("unknown record type")
	// ErrTooLarge is returned when a value exceeds MaxValueSize.
	ErrTooLarge = errors.New("record too large")
)

// RecordType represents the type of a journal record.
type RecordType byte

const (
	// RecordTypePut stores a value under a key.
	RecordTypePut RecordType = iota + 1
	// RecordTypeDelete removes a key.
	RecordTypeDelete
)

func (t RecordType) valid() bool {
	return t == RecordTypePut || t == RecordTypeDelete
}

func (t RecordType) String() string {
	switch t {
	case RecordTypePut:
		return "put"
	case RecordTypeDelete:
		return "delete"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

const (
	// HeaderSize is the size of the record header in bytes.
	// Seq (8) + Stamp (8) + Type (1) + KeyLen (2) + ValueLen (4) + Checksum (4) = 27 bytes
	HeaderSize = 27
	// MaxKeySize is the largest key a record can carry.
	MaxKeySize = 1<<16 - 1
	// MaxValueSize is the largest value a record can carry.
	MaxValueSize = 1 << 20

	// checksumOffset is where the checksum sits in the header.
	checksumOffset = 23
)

// Header represents the header of a journal record.
type Header struct {
	Seq      uint64     // Sequence number (8 bytes)
	Stamp    int64      // Unix nanoseconds at append time (8 bytes)
	Type     RecordType // Record type (1 byte)
	KeyLen   uint16     // Length of the key (2 bytes)
	ValueLen uint32     // Length of the value (4 bytes)
	Checksum uint32     // CRC32 of the rest of the header, key and value (4 bytes)
}

// Record is a single journal entry.
type Record struct {
	Header
	Key   []byte
	Value []byte
}

// Encode encodes the record into a byte slice.
func (r *Record) Encode() ([]byte, error) {
	if len(r.Key) > MaxKeySize {
		return nil, fmt.Errorf("%w: %d byte key", ErrTooLarge, len(r.Key))
	}
	if len(r.Value) > MaxValueSize {
		return nil, fmt.Errorf("%w: %d byte value", ErrTooLarge, len(r.Value))
	}

	r.KeyLen = uint16(len(r.Key))
	r.ValueLen = uint32(len(r.Value))

	buf := make([]byte, HeaderSize+len(r.Key)+len(r.Value))
	binary.BigEndian.PutUint64(buf[0:], r.Seq)
	binary.BigEndian.PutUint64(buf[8:], uint64(r.Stamp))
	buf[16] = byte(r.Type)
	binary.BigEndian.PutUint16(buf[17:], r.KeyLen)
	binary.BigEndian.PutUint32(buf[19:], r.ValueLen)

	copy(buf[HeaderSize:], r.Key)
	copy(buf[HeaderSize+len(r.Key):], r.Value)

	r.Checksum = checksum(buf)
	binary.BigEndian.PutUint32(buf[checksumOffset:], r.Checksum)

	return buf, nil
}

// checksum covers every byte of an encoded record except the checksum itself
func checksum(record []byte) uint32 {
	crc := crc32.ChecksumIEEE(record[:checksumOffset])
	return crc32.Update(crc, crc32.IEEETable, record[HeaderSize:])
}

// decodeHeader parses the fixed-size header at the start of data.
func decodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, io.ErrShortBuffer
	}
	return Header{
		Seq:      binary.BigEndian.Uint64(data[0:]),
		Stamp:    int64(binary.BigEndian.Uint64(data[8:])),
		Type:     RecordType(data[16]),
		KeyLen:   binary.BigEndian.Uint16(data[17:]),
		ValueLen: binary.BigEndian.Uint32(data[19:]),
		Checksum: binary.BigEndian.Uint32(data[checksumOffset:]),
	}, nil
}

// Decode decodes a byte slice into a Record.
func (r *Record) Decode(data []byte) error {
	h, err := decodeHeader(data)
	if err != nil {
		return err
	}

	if h.ValueLen > MaxValueSize {
		return fmt.Errorf("%w: %d byte value", ErrTooLarge, h.ValueLen)
	}
	end := HeaderSize + int(h.KeyLen) + int(h.ValueLen)
	if len(data) < end {
		return io.ErrUnexpectedEOF
	}
	if checksum(data[:end]) != h.Checksum {
		return ErrChecksum
	}
	if !h.Type.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownType, h.Type)
	}

	r.Header = h
	r.Key = make([]byte, h.KeyLen)
	copy(r.Key, data[HeaderSize:HeaderSize+int(h.KeyLen)])
	r.Value = make([]byte, h.ValueLen)
	copy(r.Value, data[HeaderSize+int(h.KeyLen):end])

	return nil
}
