// Package decoder adapts github.com/tormoder/fit activity files to the
// generic frame stream consumed by the session pipeline.
package decoder

import (
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/tormoder/fit"

	"github.com/jengzang/fit-session-stats/internal/frame"
)

// FitDecoder opens FIT activity files
type FitDecoder struct{}

// NewFitDecoder creates a FIT decoder
func NewFitDecoder() *FitDecoder {
	return &FitDecoder{}
}

// Open decodes the whole file and returns its record and lap frames in recording order.
// The file handle is released before Open returns.
func (d *FitDecoder) Open(path string) (frame.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}

	frames, err := framesFor(decoded.Type(), decoded.Activity)
	if err != nil {
		return nil, err
	}
	if frames == nil {
		log.Printf("[Decoder] %s is a %v file, not an activity; reading it as an empty session", path, decoded.Type())
	}
	return frame.NewSliceStream(frames...), nil
}

// framesFor returns nil frames for files that carry no activity data
func framesFor(fileType fit.FileType, activity func() (*fit.ActivityFile, error)) ([]frame.Frame, error) {
	if fileType != fit.FileTypeActivity {
		return nil, nil
	}
	a, err := activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	return Frames(a.Records, a.Laps), nil
}

// Frames merges records and laps into one ordered frame sequence. A lap message is
// written when its lap ends, so it follows every record stamped at or before its end time.
func Frames(records []*fit.RecordMsg, laps []*fit.LapMsg) []frame.Frame {
	frames := make([]frame.Frame, 0, len(records)+len(laps))

	i := 0
	for _, lap := range laps {
		end := lapEnd(lap)
		for i < len(records) && !records[i].Timestamp.After(end) {
			frames = append(frames, RecordFrame(records[i]))
			i++
		}
		frames = append(frames, LapFrame(lap))
	}
	for ; i < len(records); i++ {
		frames = append(frames, RecordFrame(records[i]))
	}

	return frames
}

// RecordFrame converts a record message. Invalid values become null fields.
func RecordFrame(r *fit.RecordMsg) *frame.MapFrame {
	f := frame.NewMapFrame(frame.KindRecord)

	if r.PositionLat.Invalid() {
		f.Set(frame.FieldPositionLat, nil)
	} else {
		f.Set(frame.FieldPositionLat, r.PositionLat.Semicircles())
	}
	if r.PositionLong.Invalid() {
		f.Set(frame.FieldPositionLong, nil)
	} else {
		f.Set(frame.FieldPositionLong, r.PositionLong.Semicircles())
	}

	f.Set(frame.FieldAltitude, firstFinite(r.GetEnhancedAltitudeScaled(), r.GetAltitudeScaled()))
	f.Set(frame.FieldSpeed, firstFinite(r.GetEnhancedSpeedScaled(), r.GetSpeedScaled()))
	f.Set(frame.FieldTimestamp, validTime(r.Timestamp))
	f.Set(frame.FieldHeartRate, validUint8(r.HeartRate))
	f.Set(frame.FieldCadence, validUint8(r.Cadence))
	return f
}

// LapFrame converts a lap message. Invalid values become null fields.
func LapFrame(l *fit.LapMsg) *frame.MapFrame {
	f := frame.NewMapFrame(frame.KindLap)
	f.Set(frame.FieldMessageIndex, uint16(l.MessageIndex))
	f.Set(frame.FieldStartTime, validTime(l.StartTime))
	f.Set(frame.FieldTotalDistance, firstFinite(l.GetTotalDistanceScaled()))
	f.Set(frame.FieldTotalElapsedTime, firstFinite(l.GetTotalElapsedTimeScaled()))
	f.Set(frame.FieldMaxSpeed, firstFinite(l.GetEnhancedMaxSpeedScaled(), l.GetMaxSpeedScaled()))
	f.Set(frame.FieldMaxHeartRate, validUint8(l.MaxHeartRate))
	f.Set(frame.FieldAvgHeartRate, validUint8(l.AvgHeartRate))
	return f
}

// lapEnd is the lap timestamp, or start plus elapsed time when the timestamp is unset
func lapEnd(l *fit.LapMsg) time.Time {
	if validTime(l.Timestamp) != nil {
		return l.Timestamp
	}
	if validTime(l.StartTime) != nil {
		if elapsed := l.GetTotalElapsedTimeScaled(); isFinite(elapsed) {
			return l.StartTime.Add(time.Duration(elapsed * float64(time.Second)))
		}
	}
	return l.Timestamp
}

func firstFinite(values ...float64) any {
	for _, v := range values {
		if isFinite(v) {
			return v
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validTime(t time.Time) any {
	if t.IsZero() || fit.IsBaseTime(t) {
		return nil
	}
	return t
}

func validUint8(v uint8) any {
	if v == math.MaxUint8 {
		return nil
	}
	return v
}
