package analysis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jengzang/fit-session-stats/internal/frame"
	"github.com/jengzang/fit-session-stats/internal/models"
)

// DecodeError wraps a failure of the frame decoder for one session file
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode session: %v", e.Err)
	}
	return fmt.Sprintf("decode session %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// BuildSession consumes the whole stream and assembles a session.
// Points are tagged with the lap open when they were recorded, starting at lap 1.
// A stream failure aborts the build; no partial session is returned.
func BuildSession(stream frame.Stream) (*models.Session, error) {
	session := &models.Session{
		Laps:   []models.LapRecord{},
		Points: []models.TrackPoint{},
	}
	lapNo := 1

	for {
		f, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DecodeError{Err: err}
		}

		switch f.Kind() {
		case frame.KindRecord:
			point, ok := ExtractPoint(f)
			if !ok {
				continue
			}
			point.Lap = lapNo
			session.Points = append(session.Points, point)
		case frame.KindLap:
			lap := ExtractLap(f)
			lap.Number = lapNo
			session.Laps = append(session.Laps, lap)
			lapNo++
		}
	}

	return session, nil
}

// LoadSession opens path with the decoder and builds its session.
// The stream is closed whether or not the build succeeds.
func LoadSession(dec frame.Decoder, path string) (session *models.Session, err error) {
	stream, err := dec.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = &DecodeError{Path: path, Err: cerr}
		}
	}()

	session, err = BuildSession(stream)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return session, nil
}
