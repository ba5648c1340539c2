// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bsonfixture

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"os"
	"reflect"
	"strings"
	"sync/atomic"
	"time"
)

// lastCount is the incrementing counter component of NewObjectId.
var lastCount int32

// catpath concatenates name onto path for error-message reporting.
func catpath(path, name string) string {
	if path == "" {
		return name
	}
	return strings.Join([]string{path, name}, ".")
}

// indirect unwraps interfaces/pointers down to the concrete value.
func indirect(v reflect.Value) reflect.Value {
	for {
		switch v.Kind() {
		case reflect.Interface, reflect.Ptr:
			v = v.Elem()
		default:
			return v
		}
	}
}

// NewObjectId creates a unique incrementing ObjectId, the same format
// MongoDB itself uses:
//
//	+---+---+---+---+---+---+---+---+---+---+---+---+
//	|       A       |     B     |   C   |     D     |
//	+---+---+---+---+---+---+---+---+---+---+---+---+
//	  0   1   2   3   4   5   6   7   8   9  10  11
//	A = unix time (big endian), B = machine ID (first 3 bytes of md5 host
//	name), C = PID, D = incrementing counter (big endian)
func NewObjectId() (ObjectId, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 12))
	if err := binary.Write(buf, binary.BigEndian, int32(time.Now().Unix())); err != nil {
		return nil, err
	}
	name, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	hash := md5.New()
	if _, err := hash.Write([]byte(name)); err != nil {
		return nil, err
	}
	if _, err := buf.Write(hash.Sum(nil)[:3]); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, int16(os.Getpid())); err != nil {
		return nil, err
	}
	// Wrap at 2^24 because we only use 3 bytes.
	cnt := atomic.AddInt32(&lastCount, 1) % 16777216
	cntbuf := make([]byte, 4)
	binary.BigEndian.PutUint32(cntbuf, uint32(cnt))
	if _, err := buf.Write(cntbuf[1:]); err != nil {
		return nil, err
	}
	return ObjectId(buf.Bytes()), nil
}
