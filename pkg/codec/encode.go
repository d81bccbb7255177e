package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"

	"github.com/Fepozopo/textools/pkg/texture"
)

// Write encodes buf as a PNG whose colour type and bit depth follow the
// buffer's mode exactly. An opaque RGBA8 buffer is still written with an
// alpha channel and Gray16 keeps all 16 bits.
func Write(w io.Writer, buf *texture.Buffer) error {
	if err := texture.Validate(buf, texture.Modes...); err != nil {
		return err
	}
	if buf.Width == 0 || buf.Height == 0 {
		return fmt.Errorf("%w: cannot encode a %dx%d image", texture.ErrInvalidArgument, buf.Width, buf.Height)
	}
	info, err := texture.Describe(buf.Mode)
	if err != nil {
		return err
	}
	ct, err := colorTypeOf(buf.Mode)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(pngSignature); err != nil {
		return err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(buf.Width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(buf.Height))
	ihdr[8] = byte(info.BitDepth)
	ihdr[9] = ct
	if err := writeChunk(bw, "IHDR", ihdr); err != nil {
		return err
	}

	idat, err := compressRows(buf, info)
	if err != nil {
		return err
	}
	if err := writeChunk(bw, "IDAT", idat); err != nil {
		return err
	}
	if err := writeChunk(bw, "IEND", nil); err != nil {
		return err
	}
	return bw.Flush()
}

// compressRows lays out scanlines with filter type 0 and deflates them.
func compressRows(buf *texture.Buffer, info texture.ModeInfo) ([]byte, error) {
	bytesPerSample := info.BitDepth / 8
	rowLen := buf.Width * info.Channels
	line := make([]byte, 1+rowLen*bytesPerSample)

	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	for y := 0; y < buf.Height; y++ {
		row := buf.Samples[y*rowLen : (y+1)*rowLen]
		line[0] = 0
		if bytesPerSample == 2 {
			for i, v := range row {
				binary.BigEndian.PutUint16(line[1+2*i:], v)
			}
		} else {
			for i, v := range row {
				line[1+i] = byte(v)
			}
		}
		if _, err := zw.Write(line); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeChunk(w io.Writer, typ string, data []byte) error {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(data)))
	copy(hdr[4:8], typ)
	crc := crc32.NewIEEE()
	crc.Write(hdr[4:8])
	crc.Write(data)

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	_, err := w.Write(sum[:])
	return err
}

// Encode writes buf to path as a PNG. The image is fully encoded before the
// file is touched and replaces path with a rename, so a failed call leaves no
// partial output behind.
func Encode(path string, buf *texture.Buffer) error {
	var data bytes.Buffer
	if err := Write(&data, buf); err != nil {
		return err
	}
	if err := writeFileAtomic(path, data.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: error saving image: %v", texture.ErrIO, err)
	}
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory. An existing file keeps its permission bits; perm applies to new
// files only.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		perm = fi.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	cleanup := func() { os.Remove(name) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
