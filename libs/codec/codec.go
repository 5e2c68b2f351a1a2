// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package codec

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrInvalidField       = errors.New("invalid field")
	ErrUnexpectedWireType = errors.New("unexpected wire type")
)

// Encoder appends protobuf wire encoded fields to a buffer.
// Zero values are skipped like proto3 scalars.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Uint(num protowire.Number, v uint64) *Encoder {
	if v == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
	return e
}

func (e *Encoder) Bool(num protowire.Number, v bool) *Encoder {
	if !v {
		return e
	}
	return e.Uint(num, 1)
}

func (e *Encoder) Bytes(num protowire.Number, v []byte) *Encoder {
	if len(v) == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, v)
	return e
}

func (e *Encoder) String(num protowire.Number, v string) *Encoder {
	if len(v) == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, v)
	return e
}

// Message appends a nested message. Unlike scalars an empty nested
// message is still written so repeated entries keep their position.
func (e *Encoder) Message(num protowire.Number, m *Encoder) *Encoder {
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, m.buf)
	return e
}

func (e *Encoder) Encode() []byte {
	return e.buf
}

// Field is a single decoded field. Only one of Varint or Bytes is set,
// depending on the wire type.
type Field struct {
	Num    protowire.Number
	Type   protowire.Type
	Varint uint64
	Bytes  []byte
}

// Decode walks the fields in b in order and calls fn for each of them.
func Decode(b []byte, fn func(f Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(ErrInvalidField, protowire.ParseError(n).Error())
		}
		b = b[n:]
		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return errors.Wrap(ErrInvalidField, protowire.ParseError(n).Error())
			}
			f.Varint = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return errors.Wrap(ErrInvalidField, protowire.ParseError(n).Error())
			}
			f.Bytes = v
			b = b[n:]
		default:
			return errors.Wrapf(ErrUnexpectedWireType, "field %d has wire type %d", num, typ)
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// Expect returns ErrUnexpectedWireType when the field was not encoded with typ.
func (f Field) Expect(typ protowire.Type) error {
	if f.Type != typ {
		return errors.Wrapf(ErrUnexpectedWireType, "field %d: got %d, want %d", f.Num, f.Type, typ)
	}
	return nil
}
