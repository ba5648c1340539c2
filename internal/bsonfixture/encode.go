// Copyright 2013 Seth Bunce. All rights reserved. Use of this source code is
// governed by a BSD-style license that can be found in the LICENSE file.

package bsonfixture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// encodeMap encodes a BSON document. path tracks where in the Map we are
// for error reporting.
func encodeMap(path string, m Map) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))

	if err := binary.Write(buf, binary.LittleEndian, uint32(0)); err != nil {
		return nil, err
	}

	for name, v := range m {
		if err := encodeVal(buf, catpath(path, name), name, v); err != nil {
			return nil, err
		}
	}

	if err := buf.WriteByte(0x00); err != nil {
		return nil, err
	}

	binary.LittleEndian.PutUint32(buf.Bytes(), uint32(buf.Len()))

	return buf.Bytes(), nil
}

// encodeSlice encodes a BSON document, preserving Slice's key order.
func encodeSlice(path string, s Slice) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))

	if err := binary.Write(buf, binary.LittleEndian, uint32(0)); err != nil {
		return nil, err
	}

	for _, pair := range s {
		if err := encodeVal(buf, catpath(path, pair.Key), pair.Key, pair.Val); err != nil {
			return nil, err
		}
	}

	if err := buf.WriteByte(0x00); err != nil {
		return nil, err
	}

	binary.LittleEndian.PutUint32(buf.Bytes(), uint32(buf.Len()))

	return buf.Bytes(), nil
}

// encodeVal encodes one document value. Plain Go bool/int/int64/float64/
// string/time.Time/[]byte are accepted directly so fixtures can be
// written without wrapping every field in a fixture type.
func encodeVal(buf *bytes.Buffer, path, name string, src interface{}) error {
	if src == nil {
		return encodeNull(buf, name)
	}
	rvsrc := reflect.ValueOf(src)
	if rvsrc.Kind() == reflect.Ptr && rvsrc.IsNil() {
		return encodeNull(buf, name)
	}
	src = indirect(rvsrc).Interface()

	switch srct := src.(type) {
	case Float:
		return encodeFloat(buf, name, srct)
	case String:
		return encodeString(buf, name, srct)
	case Map:
		return encodeEmbeddedDocument(buf, path, name, srct)
	case Slice:
		return encodeEmbeddedDocument(buf, path, name, srct)
	case BSON:
		_, err := buf.Write(srct)
		return err
	case Array:
		return encodeArray(buf, path, name, srct)
	case Binary:
		return encodeBinary(buf, name, srct)
	case Undefined:
		return encodeUndefined(buf, name)
	case ObjectId:
		return encodeObjectId(buf, path, name, srct)
	case Bool:
		return encodeBool(buf, name, srct)
	case UTCDateTime:
		return encodeUTCDateTime(buf, name, srct)
	case Null:
		return encodeNull(buf, name)
	case Regexp:
		return encodeRegexp(buf, name, srct)
	case DBPointer:
		return encodeDBPointer(buf, path, name, srct)
	case Javascript:
		return encodeJavascript(buf, name, srct)
	case Symbol:
		return encodeSymbol(buf, name, srct)
	case JavascriptScope:
		return encodeJavascriptScope(buf, path, name, srct)
	case Int32:
		return encodeInt32(buf, name, srct)
	case Timestamp:
		return encodeTimestamp(buf, name, srct)
	case Int64:
		return encodeInt64(buf, name, srct)
	case MinKey:
		return encodeMinKey(buf, name)
	case MaxKey:
		return encodeMaxKey(buf, name)
	case bool:
		return encodeBool(buf, name, Bool(srct))
	case int8:
		return encodeInt32(buf, name, Int32(srct))
	case int16:
		return encodeInt32(buf, name, Int32(srct))
	case int32:
		return encodeInt32(buf, name, Int32(srct))
	case int:
		return encodeInt64(buf, name, Int64(srct))
	case int64:
		return encodeInt64(buf, name, Int64(srct))
	case float64:
		return encodeFloat(buf, name, Float(srct))
	case string:
		return encodeString(buf, name, String(srct))
	case time.Time:
		return encodeUTCDateTime(buf, name, UTCDateTime(srct.UnixNano()/1000/1000))
	case []byte:
		return encodeBinary(buf, name, srct)
	}
	return fmt.Errorf("%v, cannot encode %T.", path, src)
}

// encodeArray encodes a BSON Array, a document with incrementing numeric
// keys "0", "1", "2", ...
func encodeArray(buf *bytes.Buffer, path, name string, val Array) error {
	if err := buf.WriteByte(tagArray); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}

	tmp := bytes.NewBuffer(make([]byte, 0))
	if err := binary.Write(tmp, binary.LittleEndian, uint32(0)); err != nil {
		return err
	}
	for i := 0; i < len(val); i++ {
		idxName := strconv.Itoa(i)
		newpath := idxName
		if path != "" {
			newpath = strings.Join([]string{path, idxName}, ".")
		}
		if err := encodeVal(tmp, newpath, idxName, val[i]); err != nil {
			return err
		}
	}
	if err := tmp.WriteByte(0x00); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(tmp.Bytes(), uint32(tmp.Len()))
	_, err := buf.Write(tmp.Bytes())
	return err
}

// encodeBinary encodes BSON binary data as generic subtype 0x00.
func encodeBinary(buf *bytes.Buffer, name string, val Binary) error {
	if err := buf.WriteByte(tagBinary); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(val))); err != nil {
		return err
	}
	if err := buf.WriteByte(0x00); err != nil {
		return err
	}
	_, err := buf.Write(val)
	return err
}

func encodeBool(buf *bytes.Buffer, name string, val Bool) error {
	if err := buf.WriteByte(tagBool); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	if val {
		return buf.WriteByte(0x01)
	}
	return buf.WriteByte(0x00)
}

func encodeDBPointer(buf *bytes.Buffer, path, name string, val DBPointer) error {
	if len(val.ObjectId) != 12 {
		return fmt.Errorf("%v, DBPointer must be 12 bytes.", path)
	}
	if err := buf.WriteByte(tagDBPointer); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	if err := writeString(buf, val.Name); err != nil {
		return err
	}
	_, err := buf.Write(val.ObjectId)
	return err
}

func encodeEmbeddedDocument(buf *bytes.Buffer, path, name string, val Doc) error {
	if err := buf.WriteByte(tagDocument); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}

	switch a := val.(type) {
	case Map:
		b, err := encodeMap(catpath(path, name), a)
		if err != nil {
			return err
		}
		_, err = buf.Write(b)
		return err
	case Slice:
		b, err := encodeSlice(catpath(path, name), a)
		if err != nil {
			return err
		}
		_, err = buf.Write(b)
		return err
	default:
		panic("bsonfixture: unhandled Doc type")
	}
}

func encodeFloat(buf *bytes.Buffer, name string, val Float) error {
	if err := buf.WriteByte(tagFloat); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	u := math.Float64bits(float64(val))
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, u)
	_, err := buf.Write(b)
	return err
}

func encodeInt32(buf *bytes.Buffer, name string, val Int32) error {
	if err := buf.WriteByte(tagInt32); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, val)
}

func encodeInt64(buf *bytes.Buffer, name string, val Int64) error {
	if err := buf.WriteByte(tagInt64); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, val)
}

func encodeJavascript(buf *bytes.Buffer, name string, val Javascript) error {
	if err := buf.WriteByte(tagJavascript); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	return writeString(buf, string(val))
}

func encodeJavascriptScope(buf *bytes.Buffer, path, name string, val JavascriptScope) error {
	if err := buf.WriteByte(tagJSScope); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}

	tmp := bytes.NewBuffer(make([]byte, 0))
	if err := binary.Write(tmp, binary.LittleEndian, uint32(0)); err != nil {
		return err
	}
	if err := writeString(tmp, val.Javascript); err != nil {
		return err
	}
	b, err := encodeMap(catpath(path, name), val.Scope)
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(tmp.Bytes(), uint32(tmp.Len()))
	_, err = buf.Write(tmp.Bytes())
	return err
}

func encodeMaxKey(buf *bytes.Buffer, name string) error {
	if err := buf.WriteByte(tagMaxKey); err != nil {
		return err
	}
	return writeCstring(buf, name)
}

func encodeMinKey(buf *bytes.Buffer, name string) error {
	if err := buf.WriteByte(tagMinKey); err != nil {
		return err
	}
	return writeCstring(buf, name)
}

func encodeNull(buf *bytes.Buffer, name string) error {
	if err := buf.WriteByte(tagNull); err != nil {
		return err
	}
	return writeCstring(buf, name)
}

func encodeObjectId(buf *bytes.Buffer, path, name string, val ObjectId) error {
	if len(val) != 12 {
		return fmt.Errorf("%v, ObjectId must be 12 bytes.", path)
	}
	if err := buf.WriteByte(tagObjectID); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	_, err := buf.Write(val)
	return err
}

func encodeRegexp(buf *bytes.Buffer, name string, val Regexp) error {
	if err := buf.WriteByte(tagRegexp); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	if err := writeCstring(buf, val.Pattern); err != nil {
		return err
	}
	return writeCstring(buf, val.Options)
}

func encodeString(buf *bytes.Buffer, name string, val String) error {
	if err := buf.WriteByte(tagString); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	return writeString(buf, string(val))
}

func encodeSymbol(buf *bytes.Buffer, name string, val Symbol) error {
	if err := buf.WriteByte(tagSymbol); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	return writeString(buf, string(val))
}

func encodeTimestamp(buf *bytes.Buffer, name string, val Timestamp) error {
	if err := buf.WriteByte(tagTimestamp); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, uint64(val))
}

func encodeUndefined(buf *bytes.Buffer, name string) error {
	if err := buf.WriteByte(tagUndefined); err != nil {
		return err
	}
	return writeCstring(buf, name)
}

func encodeUTCDateTime(buf *bytes.Buffer, name string, val UTCDateTime) error {
	if err := buf.WriteByte(tagUTCDateTime); err != nil {
		return err
	}
	if err := writeCstring(buf, name); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, val)
}

// writeCstring writes a BSON cstring: raw bytes, NUL-terminated.
func writeCstring(buf *bytes.Buffer, s string) error {
	if _, err := buf.WriteString(s); err != nil {
		return err
	}
	return buf.WriteByte(0x00)
}

// writeString writes a BSON string: int32 length (including the NUL)
// followed by the bytes and a trailing NUL.
func writeString(buf *bytes.Buffer, s string) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(s)+1)); err != nil {
		return err
	}
	if _, err := buf.WriteString(s); err != nil {
		return err
	}
	return buf.WriteByte(0x00)
}
