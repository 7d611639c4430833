package temporal

import (
	"testing"

	"github.com/memoweave/memoweave/internal/model"
)

func TestClassifyAbsolute(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1865-07-04", "1865-07-04"},
		{"on 3/7/1865", "1865-03-07"},
		{"March 3rd, 1865", "1865-03-03"},
		{"July 14", "--07-14"},
		{"in 1865", "1865"},
	}
	c := NewClassifier()
	for _, tc := range cases {
		timeType, norm := c.Classify(tc.in)
		if timeType != model.TimeAbsolute {
			t.Errorf("Classify(%q) type = %q, want absolute", tc.in, timeType)
		}
		if norm != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.in, norm, tc.want)
		}
	}
}

func TestClassifyClockTime(t *testing.T) {
	c := NewClassifier()
	timeType, norm := c.Classify("at 5 o'clock")
	if timeType != model.TimeAbsolute {
		t.Errorf("type = %q, want absolute", timeType)
	}
	if norm == "" || norm[:2] != "T-" {
		t.Errorf("norm = %q, want T- prefix", norm)
	}
}

func TestClassifyRelativeOffset(t *testing.T) {
	cases := []struct{ in, want string }{
		{"three days later", "REL+3D"},
		{"two weeks ago", "REL-2W"},
		{"a year earlier", "REL-1Y"},
		{"5 hours after", "REL+5H"},
		{"three months later", "REL+3M"},
		{"two mornings later", "REL+2MORN"},
		{"ten minutes later", "REL+10MIN"},
	}
	c := NewClassifier()
	for _, tc := range cases {
		timeType, norm := c.Classify(tc.in)
		if timeType != model.TimeRelative {
			t.Errorf("Classify(%q) type = %q, want relative", tc.in, timeType)
		}
		if norm != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.in, norm, tc.want)
		}
	}
}

func TestClassifyRelativeWords(t *testing.T) {
	c := NewClassifier()

	timeType, norm := c.Classify("the next morning")
	if timeType != model.TimeRelative {
		t.Errorf("type = %q, want relative", timeType)
	}
	if norm != "REL-THE-NEXT-MORNING" {
		t.Errorf("norm = %q", norm)
	}

	timeType, norm = c.Classify("yesterday")
	if timeType != model.TimeRelative || norm != "REL-YESTERDAY" {
		t.Errorf("yesterday = %q / %q", timeType, norm)
	}

	timeType, norm = c.Classify("dawn")
	if timeType != model.TimeRelative || norm != "TOD-DAWN" {
		t.Errorf("dawn = %q / %q", timeType, norm)
	}
}

func TestClassifyUnresolved(t *testing.T) {
	c := NewClassifier()
	for _, in := range []string{"", "the feast", "when the bell rang"} {
		timeType, norm := c.Classify(in)
		if timeType != model.TimeUnresolved {
			t.Errorf("Classify(%q) type = %q, want unresolved", in, timeType)
		}
		if norm != "" {
			t.Errorf("Classify(%q) norm = %q, want empty", in, norm)
		}
	}
}

func TestApplySetsTypesAndWarns(t *testing.T) {
	frames := []model.EventFrame{
		{EventID: "event_1", SentenceID: 1, TimeRaw: "three days later"},
		{EventID: "event_2", SentenceID: 2, TimeRaw: "the feast"},
		{EventID: "event_3", SentenceID: 3},
	}

	updated, warnings := NewClassifier().Apply(frames)

	if updated[0].TimeType != model.TimeRelative || updated[0].TimeNormalized != "REL+3D" {
		t.Errorf("frame 0 = %+v", updated[0])
	}
	if updated[1].TimeType != model.TimeUnresolved {
		t.Errorf("frame 1 = %+v", updated[1])
	}
	if updated[2].TimeType != "" {
		t.Errorf("frame without TimeRaw must stay untyped: %+v", updated[2])
	}

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].SentenceID != 2 {
		t.Errorf("warning = %+v", warnings[0])
	}

	// Input slice untouched.
	if frames[0].TimeType != "" {
		t.Errorf("input mutated: %+v", frames[0])
	}
}
