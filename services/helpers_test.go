package services

import "bytes"

// bytesReader wraps generated export bytes for excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
