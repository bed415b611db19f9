package export

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// EncodeOptions control post-processing of rasterized frames.
type EncodeOptions struct {
	// Format is output image format, PNG or JPEG.
	Format imaging.Format
	// Quality of JPEG output.
	Quality int
	// Width resizes frames keeping aspect ratio, 0 keeps captured size.
	Width int
	// DPI written into JPEG JFIF header, 0 leaves header as encoded.
	DPI int
}

// Ext returns file extension of the output format.
func (o EncodeOptions) Ext() string {
	if o.Format == imaging.JPEG {
		return "jpg"
	}
	return "png"
}

// Encode resizes and encodes image.
func Encode(img image.Image, opts EncodeOptions) ([]byte, error) {
	if opts.Width > 0 && img.Bounds().Dx() != opts.Width {
		img = imaging.Resize(img, opts.Width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	switch opts.Format {
	case imaging.JPEG:
		q := opts.Quality
		if q <= 0 || q > 100 {
			q = 90
		}
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
			return nil, fmt.Errorf("unable to encode jpeg: %w", err)
		}
		if opts.DPI > 0 {
			return withJFIF(buf.Bytes(), opts.DPI)
		}
	case imaging.PNG:
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("unable to encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %s", opts.Format)
	}
	return buf.Bytes(), nil
}

// withJFIF inserts JFIF APP0 segment carrying density in dots per inch when
// encoder did not write one.
func withJFIF(data []byte, dpi int) ([]byte, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, errors.New("not a jpeg")
	}
	if data[2] == 0xFF && data[3] == 0xE0 {
		return data, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + 18)
	buf.Write(data[:2])
	buf.Write([]byte{0xFF, 0xE0})
	_ = binary.Write(&buf, binary.BigEndian, uint16(16))
	buf.Write([]byte{'J', 'F', 'I', 'F', 0x00, 0x01, 0x02})
	buf.WriteByte(1) // dots per inch
	_ = binary.Write(&buf, binary.BigEndian, uint16(dpi))
	_ = binary.Write(&buf, binary.BigEndian, uint16(dpi))
	buf.Write([]byte{0, 0}) // no thumbnail
	buf.Write(data[2:])
	return buf.Bytes(), nil
}
