// FILE: lixenwraith/unilog/compress.go
package unilog

import (
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// removeFile deletes the source of a finished compression
var removeFile = os.Remove

// compressFile writes src to src.zst through a temporary file, removes src
// and returns the compressed size. The modification time is carried over so
// mtime-based decisions see the original period.
func (t *Target) compressFile(src string) (int64, error) {
	dst := src + zstdSuffix
	if fileExists(dst) {
		return 0, fmtErrorf("compressed file '%s' already exists", dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	cleanup := func(err error) (int64, error) {
		out.Close()
		os.Remove(tmp)
		return 0, err
	}

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return cleanup(err)
	}
	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		return cleanup(err)
	}
	if err := enc.Close(); err != nil {
		return cleanup(err)
	}
	if err := out.Sync(); err != nil {
		return cleanup(err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return 0, err
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		t.internalLog("failed to set modification time of '%s': %v\n", dst, err)
	}

	in.Close()
	// src stays authoritative until it is gone
	if err := removeFile(src); err != nil {
		os.Remove(dst)
		return 0, err
	}

	st, err := os.Stat(dst)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}

// ReadCompressed writes the decompressed content of a rotated .zst logfile to w
func ReadCompressed(src string, w io.Writer) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return err
	}
	defer dec.Close()

	_, err = io.Copy(w, dec)
	return err
}
