package frame

import (
	"errors"
	"io"
	"testing"
)

func TestMapFramePresentButNull(t *testing.T) {
	f := NewMapFrame(KindRecord).Set(FieldPositionLat, nil)

	if !f.HasField(FieldPositionLat) {
		t.Fatalf("expected null field to be present")
	}
	v, ok := f.Value(FieldPositionLat)
	if !ok || v != nil {
		t.Fatalf("expected (nil, true), got (%v, %v)", v, ok)
	}
	if f.HasField(FieldPositionLong) {
		t.Fatalf("expected unset field to be absent")
	}
}

func TestSliceStream(t *testing.T) {
	s := NewSliceStream(NewMapFrame(KindLap), NewMapFrame(KindRecord))

	for _, want := range []string{KindLap, KindRecord} {
		f, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Kind() != want {
			t.Fatalf("expected %s, got %s", want, f.Kind())
		}
	}
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}

	_ = s.Close()
	if !s.Closed() {
		t.Fatalf("expected stream to be closed")
	}
}

func TestSliceStreamFailAfter(t *testing.T) {
	boom := errors.New("boom")
	s := NewSliceStream(NewMapFrame(KindRecord)).FailAfter(boom)

	if _, err := s.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Next(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
