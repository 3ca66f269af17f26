package etf

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	maxSmallAtomLen = 255
	maxAtomLen      = math.MaxUint16
)

// Encode serializes a term to External Term Format, including the
// leading version byte.
func Encode(t Term) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(Version)
	if err := encodeTerm(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTerm(buf *bytes.Buffer, t Term) error {
	switch v := t.(type) {
	case Nil:
		return encodeAtom(buf, "nil")
	case Bool:
		if v {
			return encodeAtom(buf, "true")
		}
		return encodeAtom(buf, "false")
	case Int:
		encodeInt(buf, int64(v))
		return nil
	case Float:
		buf.WriteByte(tagNewFloatExt)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(float64(v)))
		buf.Write(b[:])
		return nil
	case Binary:
		return encodeBinary(buf, v)
	case Atom:
		return encodeAtom(buf, string(v))
	case List:
		return encodeList(buf, v)
	case Tuple:
		return encodeTuple(buf, v)
	case Map:
		return encodeMap(buf, v)
	default:
		return &EncodeError{Message: "unsupported term type", Term: t}
	}
}

func encodeAtom(buf *bytes.Buffer, name string) error {
	n := len(name)
	switch {
	case n > maxAtomLen:
		return &EncodeError{Message: "atom name exceeds 65535 bytes", Term: Atom(name)}
	case n > maxSmallAtomLen:
		buf.WriteByte(tagAtomUTF8Ext)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		buf.Write(b[:])
	default:
		buf.WriteByte(tagSmallAtomUTF8Ext)
		buf.WriteByte(byte(n))
	}
	buf.WriteString(name)
	return nil
}

func encodeInt(buf *bytes.Buffer, v int64) {
	switch {
	case v >= 0 && v <= 255:
		buf.WriteByte(tagSmallIntegerExt)
		buf.WriteByte(byte(v))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		buf.WriteByte(tagIntegerExt)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(int32(v)))
		buf.Write(b[:])
	default:
		// SMALL_BIG_EXT: length, sign, little-endian magnitude.
		var sign byte
		mag := uint64(v)
		if v < 0 {
			sign = 1
			mag = uint64(-v)
		}
		var le [8]byte
		binary.LittleEndian.PutUint64(le[:], mag)
		n := 8
		for n > 1 && le[n-1] == 0 {
			n--
		}
		buf.WriteByte(tagSmallBigExt)
		buf.WriteByte(byte(n))
		buf.WriteByte(sign)
		buf.Write(le[:n])
	}
}

func encodeBinary(buf *bytes.Buffer, b Binary) error {
	if len(b) > math.MaxUint32 {
		return &EncodeError{Message: "binary exceeds 4 GiB", Term: b}
	}
	buf.WriteByte(tagBinaryExt)
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(b)))
	buf.Write(l[:])
	buf.Write(b)
	return nil
}

func encodeList(buf *bytes.Buffer, l List) error {
	if len(l) == 0 {
		buf.WriteByte(tagNilExt)
		return nil
	}
	buf.WriteByte(tagListExt)
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(l)))
	buf.Write(n[:])
	for _, e := range l {
		if err := encodeTerm(buf, e); err != nil {
			return err
		}
	}
	// Proper list tail.
	buf.WriteByte(tagNilExt)
	return nil
}

func encodeTuple(buf *bytes.Buffer, t Tuple) error {
	if len(t) <= 255 {
		buf.WriteByte(tagSmallTupleExt)
		buf.WriteByte(byte(len(t)))
	} else {
		buf.WriteByte(tagLargeTupleExt)
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(t)))
		buf.Write(n[:])
	}
	for _, e := range t {
		if err := encodeTerm(buf, e); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(buf *bytes.Buffer, m Map) error {
	buf.WriteByte(tagMapExt)
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(m)))
	buf.Write(n[:])
	for _, p := range m {
		if err := encodeTerm(buf, p.Key); err != nil {
			return err
		}
		if err := encodeTerm(buf, p.Value); err != nil {
			return err
		}
	}
	return nil
}
