// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedding

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// npyMagic prefixes every NPY file.
const npyMagic = "\x93NUMPY"

// maxHeaderLen bounds the header dictionary to reject corrupt files early.
const maxHeaderLen = 1 << 20

// npyHeader is the decoded header dictionary of an NPY file.
type npyHeader struct {
	descr        string
	fortranOrder bool
	shape        []int
	// dataOffset is the byte offset of the array payload.
	dataOffset int64
}

// elements returns the number of values the shape describes, or false if
// the product overflows.
func (h npyHeader) elements() (int, bool) {
	n := 1
	for _, d := range h.shape {
		if d != 0 && n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// payloadElements checks the shape against the bytes left after the header
// and returns the element count. Readers call it before allocating from the
// shape.
func payloadElements(f *os.File, h npyHeader) (int, error) {
	size, err := itemSize(h.descr)
	if err != nil {
		return 0, err
	}
	n, ok := h.elements()
	if !ok {
		return 0, fmt.Errorf("%w: shape %v overflows", ErrArtifactInvalid, h.shape)
	}
	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat: %w", err)
	}
	remaining := info.Size() - h.dataOffset
	if remaining < 0 || int64(n) > remaining/int64(size) {
		return 0, fmt.Errorf("%w: shape %v needs %d-byte elements, file has %d data bytes",
			ErrArtifactInvalid, h.shape, size, remaining)
	}
	return n, nil
}

// itemSize returns the byte width of one element of descr.
func itemSize(descr string) (int, error) {
	switch descr[1:] {
	case "f4", "i4", "u4":
		return 4, nil
	case "f8", "i8", "u8":
		return 8, nil
	}
	return 0, fmt.Errorf("%w: unsupported dtype %q", ErrArtifactInvalid, descr)
}

// readHeader consumes the magic, version and header dictionary.
func readHeader(r io.Reader) (npyHeader, error) {
	var h npyHeader

	prefix := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return h, fmt.Errorf("%w: short header: %v", ErrArtifactInvalid, err)
	}
	if string(prefix[:len(npyMagic)]) != npyMagic {
		return h, fmt.Errorf("%w: not an NPY file", ErrArtifactInvalid)
	}

	var headerLen, lenWidth int
	switch major := prefix[len(npyMagic)]; major {
	case 1:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return h, fmt.Errorf("%w: header length: %v", ErrArtifactInvalid, err)
		}
		headerLen, lenWidth = int(n), 2
	case 2, 3:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return h, fmt.Errorf("%w: header length: %v", ErrArtifactInvalid, err)
		}
		headerLen, lenWidth = int(n), 4
	default:
		return h, fmt.Errorf("%w: unsupported NPY version %d", ErrArtifactInvalid, major)
	}
	if headerLen <= 0 || headerLen > maxHeaderLen {
		return h, fmt.Errorf("%w: header length %d", ErrArtifactInvalid, headerLen)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return h, fmt.Errorf("%w: header: %v", ErrArtifactInvalid, err)
	}
	h, err := parseHeaderDict(string(raw))
	if err != nil {
		return h, err
	}
	h.dataOffset = int64(len(prefix) + lenWidth + headerLen)
	return h, nil
}

// parseHeaderDict parses the Python literal dictionary written by numpy, e.g.
// {'descr': '<f4', 'fortran_order': False, 'shape': (120, 384), }
func parseHeaderDict(s string) (npyHeader, error) {
	var h npyHeader
	s = strings.TrimSpace(s)

	descr, ok := dictValue(s, "descr")
	if !ok {
		return h, fmt.Errorf("%w: header missing descr", ErrArtifactInvalid)
	}
	h.descr = strings.Trim(descr, `'"`)
	if len(h.descr) < 3 {
		return h, fmt.Errorf("%w: bad descr %q", ErrArtifactInvalid, h.descr)
	}
	switch h.descr[0] {
	case '<', '|':
	default:
		return h, fmt.Errorf("%w: only little-endian arrays are supported, got %q", ErrArtifactInvalid, h.descr)
	}

	order, ok := dictValue(s, "fortran_order")
	if !ok {
		return h, fmt.Errorf("%w: header missing fortran_order", ErrArtifactInvalid)
	}
	h.fortranOrder = order == "True"

	shape, ok := dictValue(s, "shape")
	if !ok {
		return h, fmt.Errorf("%w: header missing shape", ErrArtifactInvalid)
	}
	shape = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(shape, "("), ")"))
	if shape != "" {
		for _, part := range strings.Split(shape, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			d, err := strconv.Atoi(strings.TrimSuffix(part, "L"))
			if err != nil || d < 0 {
				return h, fmt.Errorf("%w: bad shape %q", ErrArtifactInvalid, shape)
			}
			h.shape = append(h.shape, d)
		}
	}
	return h, nil
}

// dictValue extracts the raw value text for key from a header dictionary.
// Tuples are returned with their parentheses.
func dictValue(s, key string) (string, bool) {
	idx := strings.Index(s, "'"+key+"'")
	if idx < 0 {
		idx = strings.Index(s, `"`+key+`"`)
		if idx < 0 {
			return "", false
		}
	}
	rest := s[idx+len(key)+2:]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return "", false
	}
	rest = strings.TrimSpace(rest[colon+1:])
	if strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return "", false
		}
		return rest[:end+1], true
	}
	end := strings.IndexAny(rest, ",}")
	if end < 0 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}

// readValues decodes n little-endian elements of descr as float64.
func readValues(r io.Reader, descr string, n int) ([]float64, error) {
	size, err := itemSize(descr)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	out := make([]float64, n)
	kind := descr[1]
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: truncated data at element %d of %d", ErrArtifactInvalid, i, n)
		}
		switch {
		case kind == 'f' && size == 4:
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
		case kind == 'f' && size == 8:
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
		case kind == 'i' && size == 4:
			out[i] = float64(int32(binary.LittleEndian.Uint32(buf)))
		case kind == 'i' && size == 8:
			out[i] = float64(int64(binary.LittleEndian.Uint64(buf)))
		case kind == 'u' && size == 4:
			out[i] = float64(binary.LittleEndian.Uint32(buf))
		default:
			v := binary.LittleEndian.Uint64(buf)
			if v > math.MaxInt64 {
				return nil, fmt.Errorf("%w: element %d overflows int64", ErrArtifactInvalid, i)
			}
			out[i] = float64(v)
		}
	}
	return out, nil
}

// openArtifact opens path, mapping a missing file to ErrArtifactMissing.
func openArtifact(path string) (*os.File, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// ReadMatrix reads a 2-D float NPY file into row slices of float32.
func ReadMatrix(path string) ([][]float32, error) {
	f, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	h, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if h.descr[1] != 'f' {
		return nil, fmt.Errorf("%s: %w: matrix dtype must be float, got %q", path, ErrArtifactInvalid, h.descr)
	}
	if len(h.shape) != 2 {
		return nil, fmt.Errorf("%s: %w: matrix must be 2-D, got shape %v", path, ErrArtifactInvalid, h.shape)
	}
	if h.fortranOrder {
		return nil, fmt.Errorf("%s: %w: fortran-ordered arrays are not supported", path, ErrArtifactInvalid)
	}

	n, err := payloadElements(f, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rows, cols := h.shape[0], h.shape[1]
	if rows > 0 && cols == 0 {
		return nil, fmt.Errorf("%s: %w: matrix has zero-width rows", path, ErrArtifactInvalid)
	}
	values, err := readValues(r, h.descr, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	matrix := make([][]float32, rows)
	backing := make([]float32, rows*cols)
	for i := range backing {
		backing[i] = float32(values[i])
	}
	for i := 0; i < rows; i++ {
		matrix[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return matrix, nil
}

// ReadIDs reads a 1-D NPY array of article identifiers.
// Integer dtypes are preferred; float arrays are accepted when every value is integral.
func ReadIDs(path string) ([]int64, error) {
	f, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	h, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(h.shape) != 1 {
		return nil, fmt.Errorf("%s: %w: id array must be 1-D, got shape %v", path, ErrArtifactInvalid, h.shape)
	}

	n, err := payloadElements(f, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// 64-bit integers are read directly to avoid float64 precision loss.
	if h.descr[1:] == "i8" || h.descr[1:] == "u8" {
		raw := make([]uint64, n)
		if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
			return nil, fmt.Errorf("%s: %w: truncated data", path, ErrArtifactInvalid)
		}
		ids := make([]int64, n)
		for i, v := range raw {
			if h.descr[1] == 'u' && v > math.MaxInt64 {
				return nil, fmt.Errorf("%s: %w: id %d at %d overflows int64", path, ErrArtifactInvalid, v, i)
			}
			ids[i] = int64(v)
		}
		return ids, nil
	}

	values, err := readValues(r, h.descr, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ids := make([]int64, len(values))
	for i, v := range values {
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%s: %w: non-integral id %v at %d", path, ErrArtifactInvalid, v, i)
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return nil, fmt.Errorf("%s: %w: id %v at %d overflows int64", path, ErrArtifactInvalid, v, i)
		}
		ids[i] = int64(v)
	}
	return ids, nil
}
