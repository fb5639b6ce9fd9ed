package pacer

import (
	"bytes"
	"io"
	"testing"
)

// jpegFixture builds a minimal marker-delimited image with the given payload
func jpegFixture(payload []byte) []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	b.Write(payload)
	b.Write([]byte{0xFF, 0xD9})
	return b.Bytes()
}

func TestFrameScannerSingleFrame(t *testing.T) {
	frame := jpegFixture([]byte{0x01, 0x02, 0x03})
	s := newFrameScanner(bytes.NewReader(frame))

	got, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Errorf("Next() = % X, want % X", got, frame)
	}

	if _, err := s.Next(); err != io.EOF {
		t.Errorf("Next() after stream end error = %v, want io.EOF", err)
	}
}

func TestFrameScannerMultipleFrames(t *testing.T) {
	f1 := jpegFixture([]byte{0x11})
	f2 := jpegFixture([]byte{0x22, 0x33})
	f3 := jpegFixture(nil)

	var stream bytes.Buffer
	stream.Write(f1)
	stream.Write(f2)
	stream.Write(f3)

	s := newFrameScanner(&stream)
	for i, want := range [][]byte{f1, f2, f3} {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("frame %d: Next() error = %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d = % X, want % X", i, got, want)
		}
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("final Next() error = %v, want io.EOF", err)
	}
}

func TestFrameScannerStuffedFF(t *testing.T) {
	// A stuffed 0xFF 0x00 inside the payload must not terminate the frame
	frame := jpegFixture([]byte{0xAA, 0xFF, 0x00, 0xBB})
	s := newFrameScanner(bytes.NewReader(frame))

	got, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Errorf("Next() = % X, want % X", got, frame)
	}
}

func TestFrameScannerSkipsLeadingGarbage(t *testing.T) {
	frame := jpegFixture([]byte{0x01})
	stream := append([]byte{0x00, 0xDE, 0xAD}, frame...)

	s := newFrameScanner(bytes.NewReader(stream))
	got, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Errorf("Next() = % X, want % X", got, frame)
	}
}

func TestFrameScannerTruncatedFrame(t *testing.T) {
	// SOI without EOI: the stream died mid-frame
	stream := []byte{0xFF, 0xD8, 0x01, 0x02}
	s := newFrameScanner(bytes.NewReader(stream))

	if _, err := s.Next(); err != io.ErrUnexpectedEOF {
		t.Errorf("Next() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestFrameScannerEmptyStream(t *testing.T) {
	s := newFrameScanner(bytes.NewReader(nil))
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}
