package haptics

import "testing"

func TestRecorder(t *testing.T) {
	var r Recorder
	var sink Sink = &r
	sink.Trigger(Light)
	sink.Trigger(Medium)
	sink.Trigger(Light)

	if got := r.Count(Light); got != 2 {
		t.Errorf("expected 2 light, got %d", got)
	}
	if got := r.Count(Error); got != 0 {
		t.Errorf("expected 0 error, got %d", got)
	}
	if got := r.Feedback(); len(got) != 3 || got[1] != Medium {
		t.Errorf("unexpected feedback log %v", got)
	}
}

func TestFunc(t *testing.T) {
	var seen Feedback = 255
	Func(func(f Feedback) { seen = f }).Trigger(Error)
	if seen != Error {
		t.Errorf("expected error feedback, got %v", seen)
	}
	Nop{}.Trigger(Error)
}

func TestFeedbackText(t *testing.T) {
	for f, want := range map[Feedback]string{Light: "light", Medium: "medium", Error: "error"} {
		text, _ := f.MarshalText()
		if string(text) != want {
			t.Errorf("expected %q, got %q", want, text)
		}
	}
}
