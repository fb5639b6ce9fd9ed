package pacer

import (
	"bufio"
	"io"
)

const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8 // start of image
	markerEOI    = 0xD9 // end of image
)

// frameScanner splits an ffmpeg image2pipe mjpeg byte stream into individual
// JPEG images using the SOI/EOI markers
type frameScanner struct {
	r *bufio.Reader
}

func newFrameScanner(r io.Reader) *frameScanner {
	return &frameScanner{r: bufio.NewReaderSize(r, 256*1024)}
}

// Next returns the next complete JPEG image, including its markers.
// io.EOF signals a cleanly exhausted stream.
func (s *frameScanner) Next() ([]byte, error) {
	// Seek the start-of-image marker
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != markerPrefix {
			continue
		}
		b, err = s.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == markerSOI {
			break
		}
	}

	frame := make([]byte, 2, 64*1024)
	frame[0], frame[1] = markerPrefix, markerSOI

	// Accumulate until the end-of-image marker. Within entropy-coded data
	// a 0xFF byte is always stuffed or a restart marker, so a literal
	// FFD9 pair terminates the image.
	prev := byte(0)
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		frame = append(frame, b)
		if prev == markerPrefix && b == markerEOI {
			return frame, nil
		}
		prev = b
	}
}
