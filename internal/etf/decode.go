package etf

import (
	"encoding/binary"
	"math"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode deserializes one External Term Format payload, version byte
// included. The payload must contain exactly one term: trailing bytes are
// a decode error, since each stream frame carries a single term.
func Decode(data []byte) (Term, error) {
	d := &decoder{buf: data}
	v, err := d.readByte("version byte")
	if err != nil {
		return nil, err
	}
	if v != Version {
		return nil, &DecodeError{Message: "unsupported version byte " + strconv.Itoa(int(v)), Offset: 0}
	}
	t, err := d.term()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.buf) {
		return nil, &DecodeError{
			Message: strconv.Itoa(len(d.buf)-d.pos) + " trailing bytes after term",
			Offset:  d.pos,
		}
	}
	return t, nil
}

type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) fail(tag byte, msg string) error {
	return &DecodeError{Message: msg, Offset: d.pos, Tag: tag}
}

func (d *decoder) readByte(what string) (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, &DecodeError{Message: "truncated: missing " + what, Offset: d.pos}
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readN(n int, what string) ([]byte, error) {
	if len(d.buf)-d.pos < n {
		return nil, &DecodeError{Message: "truncated: missing " + what, Offset: d.pos}
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readUint16(what string) (uint16, error) {
	b, err := d.readN(2, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) readUint32(what string) (uint32, error) {
	b, err := d.readN(4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) term() (Term, error) {
	tag, err := d.readByte("term tag")
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagSmallIntegerExt:
		b, err := d.readByte("small integer")
		if err != nil {
			return nil, err
		}
		return Int(b), nil

	case tagIntegerExt:
		u, err := d.readUint32("integer")
		if err != nil {
			return nil, err
		}
		return Int(int32(u)), nil

	case tagSmallBigExt:
		n, err := d.readByte("big integer length")
		if err != nil {
			return nil, err
		}
		return d.bigInt(tag, int(n))

	case tagLargeBigExt:
		n, err := d.readUint32("big integer length")
		if err != nil {
			return nil, err
		}
		return d.bigInt(tag, int(n))

	case tagNewFloatExt:
		b, err := d.readN(8, "float bits")
		if err != nil {
			return nil, err
		}
		return Float(math.Float64frombits(binary.BigEndian.Uint64(b))), nil

	case tagFloatExt:
		// Legacy text float: 31 bytes, NUL padded.
		b, err := d.readN(31, "float string")
		if err != nil {
			return nil, err
		}
		s := string(b)
		for i := 0; i < len(s); i++ {
			if s[i] == 0 {
				s = s[:i]
				break
			}
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return nil, d.fail(tag, "malformed FLOAT_EXT string")
		}
		return Float(f), nil

	case tagAtomUTF8Ext, tagAtomExt:
		n, err := d.readUint16("atom length")
		if err != nil {
			return nil, err
		}
		return d.atom(tag, int(n))

	case tagSmallAtomUTF8Ext, tagSmallAtomExt:
		n, err := d.readByte("atom length")
		if err != nil {
			return nil, err
		}
		return d.atom(tag, int(n))

	case tagBinaryExt:
		n, err := d.readUint32("binary length")
		if err != nil {
			return nil, err
		}
		b, err := d.readN(int(n), "binary data")
		if err != nil {
			return nil, err
		}
		out := make(Binary, n)
		copy(out, b)
		return out, nil

	case tagNilExt:
		return List{}, nil

	case tagStringExt:
		// Erlang's compact form for a list of bytes.
		n, err := d.readUint16("string length")
		if err != nil {
			return nil, err
		}
		b, err := d.readN(int(n), "string data")
		if err != nil {
			return nil, err
		}
		l := make(List, n)
		for i, c := range b {
			l[i] = Int(c)
		}
		return l, nil

	case tagListExt:
		n, err := d.readUint32("list length")
		if err != nil {
			return nil, err
		}
		if err := d.checkCount(tag, int(n), 1); err != nil {
			return nil, err
		}
		l := make(List, 0, n)
		for i := uint32(0); i < n; i++ {
			e, err := d.term()
			if err != nil {
				return nil, err
			}
			l = append(l, e)
		}
		tail, err := d.term()
		if err != nil {
			return nil, err
		}
		if t, ok := tail.(List); !ok || len(t) != 0 {
			return nil, d.fail(tag, "improper list tail")
		}
		return l, nil

	case tagSmallTupleExt:
		n, err := d.readByte("tuple arity")
		if err != nil {
			return nil, err
		}
		return d.tuple(tag, int(n))

	case tagLargeTupleExt:
		n, err := d.readUint32("tuple arity")
		if err != nil {
			return nil, err
		}
		return d.tuple(tag, int(n))

	case tagMapExt:
		n, err := d.readUint32("map arity")
		if err != nil {
			return nil, err
		}
		// Each pair needs at least two bytes of payload.
		if err := d.checkCount(tag, int(n), 2); err != nil {
			return nil, err
		}
		m := make(Map, 0, n)
		for i := uint32(0); i < n; i++ {
			k, err := d.term()
			if err != nil {
				return nil, err
			}
			v, err := d.term()
			if err != nil {
				return nil, err
			}
			m = append(m, Pair{Key: k, Value: v})
		}
		return m, nil

	default:
		return nil, d.fail(tag, "unsupported term tag")
	}
}

// checkCount rejects a declared element count that cannot possibly fit
// the remaining payload: every element costs at least minElemSize bytes.
// Containers pre-allocate from the declared count, so a hostile length
// must fail here as a decode error, not as a runtime allocation fault.
func (d *decoder) checkCount(tag byte, count, minElemSize int) error {
	if count > (len(d.buf)-d.pos)/minElemSize {
		return d.fail(tag, "element count exceeds remaining payload")
	}
	return nil
}

func (d *decoder) tuple(tag byte, arity int) (Term, error) {
	if err := d.checkCount(tag, arity, 1); err != nil {
		return nil, err
	}
	t := make(Tuple, 0, arity)
	for i := 0; i < arity; i++ {
		e, err := d.term()
		if err != nil {
			return nil, err
		}
		t = append(t, e)
	}
	return t, nil
}

// atom reads an atom name, converting Latin-1 tags to UTF-8 and mapping
// the reserved atoms nil/true/false to their native terms.
func (d *decoder) atom(tag byte, n int) (Term, error) {
	b, err := d.readN(n, "atom name")
	if err != nil {
		return nil, err
	}
	var name string
	switch tag {
	case tagAtomExt, tagSmallAtomExt:
		decoded, cerr := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if cerr != nil {
			return nil, d.fail(tag, "malformed Latin-1 atom name")
		}
		name = string(decoded)
	default:
		if !utf8.Valid(b) {
			return nil, d.fail(tag, "atom name is not valid UTF-8")
		}
		name = string(b)
	}
	switch name {
	case "nil":
		return Nil{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	return Atom(name), nil
}

func (d *decoder) bigInt(tag byte, n int) (Term, error) {
	sign, err := d.readByte("big integer sign")
	if err != nil {
		return nil, err
	}
	b, err := d.readN(n, "big integer magnitude")
	if err != nil {
		return nil, err
	}
	var mag uint64
	for i := len(b) - 1; i >= 0; i-- {
		if i >= 8 {
			if b[i] != 0 {
				return nil, d.fail(tag, "integer exceeds int64 range")
			}
			continue
		}
		mag = mag<<8 | uint64(b[i])
	}
	if sign == 0 {
		if mag > math.MaxInt64 {
			return nil, d.fail(tag, "integer exceeds int64 range")
		}
		return Int(mag), nil
	}
	if mag == uint64(math.MaxInt64)+1 {
		return Int(math.MinInt64), nil
	}
	if mag > math.MaxInt64 {
		return nil, d.fail(tag, "integer exceeds int64 range")
	}
	return Int(-int64(mag)), nil
}
