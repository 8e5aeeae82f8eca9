// Package frame defines the generic decoded-frame abstraction consumed by the
// session pipeline. Decoders adapt their own message types to Frame.
package frame

import "io"

// Frame kinds
const (
	KindRecord = "record"
	KindLap    = "lap"
)

// Field names, following the FIT profile naming
const (
	FieldPositionLat      = "position_lat"
	FieldPositionLong     = "position_long"
	FieldAltitude         = "altitude"
	FieldTimestamp        = "timestamp"
	FieldHeartRate        = "heart_rate"
	FieldCadence          = "cadence"
	FieldSpeed            = "speed"
	FieldStartTime        = "start_time"
	FieldTotalDistance    = "total_distance"
	FieldTotalElapsedTime = "total_elapsed_time"
	FieldMaxSpeed         = "max_speed"
	FieldMaxHeartRate     = "max_heart_rate"
	FieldAvgHeartRate     = "avg_heart_rate"
	FieldMessageIndex     = "message_index"
)

// Frame is one decoded message. A field that is present but null
// reports HasField true and Value (nil, true).
type Frame interface {
	Kind() string
	HasField(name string) bool
	Value(name string) (any, bool)
}

// Stream is a forward-only sequence of frames.
// Next returns io.EOF once the stream is exhausted.
type Stream interface {
	Next() (Frame, error)
	Close() error
}

// Decoder opens the frame stream of a session file
type Decoder interface {
	Open(path string) (Stream, error)
}

// MapFrame is an in-memory Frame backed by a field map
type MapFrame struct {
	kind   string
	fields map[string]any
}

// NewMapFrame creates an empty frame of the given kind
func NewMapFrame(kind string) *MapFrame {
	return &MapFrame{kind: kind, fields: make(map[string]any)}
}

// Set stores a field value. A nil value marks the field as present but null.
func (f *MapFrame) Set(name string, value any) *MapFrame {
	f.fields[name] = value
	return f
}

// Kind returns the frame kind
func (f *MapFrame) Kind() string {
	return f.kind
}

// HasField reports whether the field is present, null or not
func (f *MapFrame) HasField(name string) bool {
	_, ok := f.fields[name]
	return ok
}

// Value returns the field value and whether the field is present
func (f *MapFrame) Value(name string) (any, bool) {
	v, ok := f.fields[name]
	return v, ok
}

// SliceStream replays a fixed list of frames, optionally failing at the end
type SliceStream struct {
	frames []Frame
	pos    int
	err    error
	closed bool
}

// NewSliceStream creates a stream over frames
func NewSliceStream(frames ...Frame) *SliceStream {
	return &SliceStream{frames: frames}
}

// FailAfter makes the stream return err instead of io.EOF once frames run out
func (s *SliceStream) FailAfter(err error) *SliceStream {
	s.err = err
	return s
}

// Next returns the next frame
func (s *SliceStream) Next() (Frame, error) {
	if s.closed {
		return nil, io.ErrClosedPipe
	}
	if s.pos >= len(s.frames) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

// Close releases the stream. It is safe to call more than once.
func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called
func (s *SliceStream) Closed() bool {
	return s.closed
}
