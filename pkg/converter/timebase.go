package converter

import "github.com/asticode/go-astiav"

const millis = 1000

// Packet timestamps enter the pipeline as whole milliseconds and leave
// it in the container's 90kHz clock.
var (
	decodeTimeBase = astiav.NewRational(1, millis)
	outputTimeBase = astiav.NewRational(1, 90000)
)

// encodeTimeBaseFor derives the run-wide encoder time base from the
// smallest display delay: one tick per shortest slide, making the
// nominal frame rate 1000/lowestDelay fps.
func encodeTimeBaseFor(frames []FrameSpec) (astiav.Rational, error) {
	d, err := lowestDelay(frames)
	if err != nil {
		return astiav.Rational{}, err
	}
	return astiav.NewRational(d, millis), nil
}

// rescale moves a timestamp/duration pair between time bases using
// correctly-rounded integer arithmetic.
func rescale(ts, dur int64, from, to astiav.Rational) (int64, int64) {
	return astiav.RescaleQ(ts, from, to), astiav.RescaleQ(dur, from, to)
}
