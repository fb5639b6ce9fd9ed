package pacer

// schedule tracks the audio-chunk cursor over the source media. Chunks are
// contiguous half-open intervals covering [0, duration); the final chunk may
// be shorter than the nominal length. Scheduling is driven by computed
// playback time, not wall clock, so coverage holds even under frame drift.
type schedule struct {
	chunkLen float64
	duration float64

	start  float64
	end    float64
	primed bool
}

func newSchedule(chunkLen, duration float64) *schedule {
	s := &schedule{
		chunkLen: chunkLen,
		duration: duration,
		start:    0,
	}
	s.end = minf(chunkLen, duration)
	return s
}

// next returns the chunk due at playback time t, if any. The first chunk is
// due immediately at t=0; each later chunk becomes due once playback reaches
// its end boundary.
func (s *schedule) next(t float64) (float64, float64, bool) {
	if s.exhausted() {
		return 0, 0, false
	}
	if !s.primed {
		s.primed = true
		return s.advance()
	}
	if t >= s.end {
		return s.advance()
	}
	return 0, 0, false
}

// flush returns the next not-yet-emitted chunk regardless of playback time.
// Called repeatedly once the source is exhausted so the tail of the media is
// always covered.
func (s *schedule) flush() (float64, float64, bool) {
	if s.exhausted() {
		return 0, 0, false
	}
	if !s.primed {
		s.primed = true
	}
	return s.advance()
}

func (s *schedule) advance() (float64, float64, bool) {
	start, end := s.start, s.end
	if end <= start {
		// Zero-length tail, nothing to emit
		return 0, 0, false
	}
	s.start = s.end
	s.end = minf(s.end+s.chunkLen, s.duration)
	return start, end, true
}

func (s *schedule) exhausted() bool {
	return s.start >= s.duration
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
