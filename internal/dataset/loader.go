package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/verieval/verieval/internal/domain"
)

func domainNotFound(name string) error {
	return domain.ErrDatasetNotFound.WithError(fmt.Errorf("dataset %q", name))
}

func invalidFile(err error) error {
	return domain.ErrInvalidDatasetFile.WithError(err)
}

// Packed pair-set file layout, little endian:
//
//	magic   uint32  "VEPS"
//	version uint16
//	count   uint32  number of images (even)
//	height  uint16
//	width   uint16
//	labels  count/2 bytes (0 = different, 1 = same)
//	pixels  count * height * width * 3 bytes, HWC uint8
const (
	packMagic   uint32 = 0x56455053 // "VEPS"
	packVersion uint16 = 1
)

// Loader reads packed pair sets from a directory, one file per named
// dataset (<name>.bin).
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Path returns the file backing a named dataset.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.dir, name+".bin")
}

// Load reads and validates a named dataset. A missing file maps to
// ErrDatasetNotFound so callers can skip it and keep going.
func (l *Loader) Load(name string) (*PairSet, error) {
	f, err := os.Open(l.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domainNotFound(name)
		}
		return nil, fmt.Errorf("open dataset %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	set, err := Decode(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}
	set.Name = name
	return set, nil
}

// Decode reads a packed pair set from a stream.
func Decode(r io.Reader) (*PairSet, error) {
	var header struct {
		Magic   uint32
		Version uint16
		Count   uint32
		Height  uint16
		Width   uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, invalidFile(fmt.Errorf("read header: %w", err))
	}
	if header.Magic != packMagic {
		return nil, invalidFile(fmt.Errorf("bad magic %#x", header.Magic))
	}
	if header.Version != packVersion {
		return nil, invalidFile(fmt.Errorf("unsupported version %d", header.Version))
	}
	if header.Count == 0 || header.Count%2 != 0 {
		return nil, invalidFile(fmt.Errorf("image count %d must be even and non-zero", header.Count))
	}

	count := int(header.Count)
	height := int(header.Height)
	width := int(header.Width)

	rawLabels := make([]byte, count/2)
	if _, err := io.ReadFull(r, rawLabels); err != nil {
		return nil, invalidFile(fmt.Errorf("read labels: %w", err))
	}
	same := make([]bool, count/2)
	for i, b := range rawLabels {
		same[i] = b != 0
	}

	pixelsPer := height * width * 3
	images := make([][]float32, count)
	buf := make([]byte, pixelsPer)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, invalidFile(fmt.Errorf("read image %d: %w", i, err))
		}
		img := make([]float32, pixelsPer)
		for j, b := range buf {
			img[j] = float32(b)
		}
		images[i] = img
	}

	set := &PairSet{
		Images: images,
		Height: height,
		Width:  width,
		Same:   same,
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Encode writes a pair set in the packed layout. Pixel values are rounded
// into uint8 range, so only freshly loaded (un-normalized) sets round-trip.
func Encode(w io.Writer, set *PairSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	header := struct {
		Magic   uint32
		Version uint16
		Count   uint32
		Height  uint16
		Width   uint16
	}{
		Magic:   packMagic,
		Version: packVersion,
		Count:   uint32(len(set.Images)),
		Height:  uint16(set.Height),
		Width:   uint16(set.Width),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	labels := make([]byte, len(set.Same))
	for i, s := range set.Same {
		if s {
			labels[i] = 1
		}
	}
	if _, err := w.Write(labels); err != nil {
		return fmt.Errorf("write labels: %w", err)
	}

	buf := make([]byte, set.Height*set.Width*3)
	for i, img := range set.Images {
		for j, v := range img {
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			buf[j] = byte(v)
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write image %d: %w", i, err)
		}
	}
	return nil
}
