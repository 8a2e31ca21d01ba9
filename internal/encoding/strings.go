package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/marcozanotti/utilsforecast/errs"
)

// AppendStrings appends each string as a uvarint byte length followed by its bytes.
func AppendStrings(dst []byte, strs []string) []byte {
	for _, s := range strs {
		dst = binary.AppendUvarint(dst, uint64(len(s)))
		dst = append(dst, s...)
	}

	return dst
}

// DecodeStrings reads count strings written by AppendStrings and returns
// them with the number of bytes consumed. The strings are copies.
func DecodeStrings(data []byte, count int) ([]string, int, error) {
	if err := checkCount(data, count, "strings"); err != nil {
		return nil, 0, err
	}

	out := make([]string, count)
	offset := 0
	for i := range out {
		n, next, ok := decodeVarint64(data, offset)
		if !ok {
			return nil, 0, fmt.Errorf("%w: length of string %d at offset %d", errs.ErrMalformedPayload, i, offset)
		}
		end := next + int(n) //nolint:gosec
		if n > uint64(len(data)) || end > len(data) {
			return nil, 0, fmt.Errorf("%w: string %d needs %d bytes at offset %d, have %d",
				errs.ErrMalformedPayload, i, n, next, len(data)-next)
		}
		out[i] = string(data[next:end])
		offset = end
	}

	return out, offset, nil
}
