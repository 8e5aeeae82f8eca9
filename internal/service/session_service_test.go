package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jengzang/fit-session-stats/internal/frame"
	"github.com/jengzang/fit-session-stats/internal/stats"
)

// fakeDecoder serves frames by file base name and tracks open streams
type fakeDecoder struct {
	mu       sync.Mutex
	sessions map[string][]frame.Frame
	failures map[string]error
	streams  []*frame.SliceStream
}

func (d *fakeDecoder) Open(path string) (frame.Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := filepath.Base(path)
	if err, ok := d.failures[name]; ok {
		s := frame.NewSliceStream().FailAfter(err)
		d.streams = append(d.streams, s)
		return s, nil
	}
	frames, ok := d.sessions[name]
	if !ok {
		return nil, errors.New("unknown file")
	}
	s := frame.NewSliceStream(frames...)
	d.streams = append(d.streams, s)
	return s, nil
}

func lap(distance, seconds float64) frame.Frame {
	return frame.NewMapFrame(frame.KindLap).
		Set(frame.FieldTotalDistance, distance).
		Set(frame.FieldTotalElapsedTime, seconds)
}

func point(altitude float64) frame.Frame {
	return frame.NewMapFrame(frame.KindRecord).
		Set(frame.FieldPositionLat, int32(0)).
		Set(frame.FieldPositionLong, int32(0)).
		Set(frame.FieldAltitude, altitude)
}

func sessionDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}

func newDecoder() *fakeDecoder {
	return &fakeDecoder{
		sessions: map[string][]frame.Frame{
			// 30 min, gain 50, loss 20
			"a.fit": {point(100), point(150), point(130), lap(10, 1800)},
			// 35 min, no gain, loss 15
			"b.fit": {point(100), point(85), lap(12, 2100)},
			// 28 min, gain 20, loss 10
			"c.fit": {point(100), point(90), point(110), lap(8, 1680)},
			// 71 min, excluded
			"d.fit": {point(0), point(500), lap(1000, 4260)},
		},
		failures: map[string]error{},
	}
}

func TestAnalyzeDirectory(t *testing.T) {
	dir := sessionDir(t, "a.fit", "b.fit", "c.fit", "d.fit")
	dec := newDecoder()
	svc := NewSessionService(dec, Options{Workers: 3})

	report, err := svc.AnalyzeDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Sessions) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(report.Sessions))
	}
	if filepath.Base(report.Sessions[0].Path) != "a.fit" || filepath.Base(report.Sessions[3].Path) != "d.fit" {
		t.Fatalf("expected sessions in directory order")
	}
	if report.Sessions[3].Accepted {
		t.Fatalf("expected the 71 minute session to be excluded")
	}

	st := report.Statistics
	if st.Count != 3 {
		t.Fatalf("expected 3 retained sessions, got %d", st.Count)
	}
	if st.Distance.Mean != 10 || st.Duration.Mean != 31 || st.Loss.Mean != 15 {
		t.Fatalf("unexpected means: %+v", st)
	}
	if st.Gain.Count != 2 || st.Gain.Mean != 35 {
		t.Fatalf("unexpected gain statistics: %+v", st.Gain)
	}

	for _, s := range dec.streams {
		if !s.Closed() {
			t.Fatalf("expected every stream to be closed")
		}
	}
}

func TestAnalyzeDirectoryAbortsOnDecodeFailure(t *testing.T) {
	dir := sessionDir(t, "a.fit", "b.fit", "broken.fit")
	dec := newDecoder()
	dec.failures["broken.fit"] = errors.New("invalid header")
	svc := NewSessionService(dec, Options{Workers: 2})

	_, err := svc.AnalyzeDirectory(context.Background(), dir)
	if !IsDecodeError(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestAnalyzeDirectorySkipsFailures(t *testing.T) {
	dir := sessionDir(t, "a.fit", "broken.fit", "c.fit")
	dec := newDecoder()
	dec.failures["broken.fit"] = errors.New("invalid header")
	svc := NewSessionService(dec, Options{Workers: 2, SkipFailed: true})

	report, err := svc.AnalyzeDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Failed) != 1 || filepath.Base(report.Failed[0].Path) != "broken.fit" {
		t.Fatalf("expected broken.fit to be reported as failed: %+v", report.Failed)
	}
	if report.Statistics.Count != 2 {
		t.Fatalf("expected 2 retained sessions, got %d", report.Statistics.Count)
	}
}

func TestAnalyzeDirectoryEmptyCohort(t *testing.T) {
	dir := sessionDir(t, "d.fit")
	svc := NewSessionService(newDecoder(), Options{})

	report, err := svc.AnalyzeDirectory(context.Background(), dir)
	if !errors.Is(err, stats.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if report == nil || len(report.Sessions) != 1 {
		t.Fatalf("expected partial report with the excluded session")
	}
	if report.Statistics == nil || report.Statistics.Count != 0 || report.Statistics.Distance.Error == "" {
		t.Fatalf("expected empty statistics marked with their error, got %+v", report.Statistics)
	}
}

func TestAnalyzeDirectoryCustomDurationLimit(t *testing.T) {
	dir := sessionDir(t, "a.fit", "b.fit", "c.fit", "d.fit")
	svc := NewSessionService(newDecoder(), Options{MaxDurationMinutes: 120})

	report, err := svc.AnalyzeDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Statistics.Count != 4 {
		t.Fatalf("expected 4 retained sessions, got %d", report.Statistics.Count)
	}
}

func TestAnalyzeDirectoryCancelled(t *testing.T) {
	dir := sessionDir(t, "a.fit")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewSessionService(newDecoder(), Options{})
	if _, err := svc.AnalyzeDirectory(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeDirectoryMissing(t *testing.T) {
	svc := NewSessionService(newDecoder(), Options{})
	if _, err := svc.AnalyzeDirectory(context.Background(), filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrInvalidDirectory) {
		t.Fatalf("expected ErrInvalidDirectory, got %v", err)
	}
}
