package parsers

import (
	"testing"

	"github.com/proftrace/proftrace/model"
)

func TestDetectChromeArray(t *testing.T) {
	data := []byte(`[{"name":"a","ph":"B","ts":0,"pid":1,"tid":1},{"name":"a","ph":"E","ts":10,"pid":1,"tid":1}]`)
	if f := Detect(data); f != model.FormatChrome {
		t.Fatalf("Detect = %v, want chrome", f)
	}
}

func TestDetectSpeedscope(t *testing.T) {
	data := []byte(`{"$schema":"https://www.speedscope.app/file-format-schema.json","shared":{"frames":[]},"profiles":[]}`)
	if f := Detect(data); f != model.FormatSpeedscope {
		t.Fatalf("Detect = %v, want speedscope", f)
	}
}

func TestDetectCollapsed(t *testing.T) {
	data := []byte("a;b;c 5\na;b;d 3\n")
	if f := Detect(data); f != model.FormatCollapsed {
		t.Fatalf("Detect = %v, want collapsed", f)
	}
}

func TestParseChromeBeginEnd(t *testing.T) {
	data := []byte(`{"traceEvents":[
		{"name":"outer","ph":"B","ts":0,"pid":1,"tid":1},
		{"name":"inner","ph":"B","ts":100,"pid":1,"tid":1},
		{"name":"inner","ph":"E","ts":400,"pid":1,"tid":1},
		{"name":"outer","ph":"E","ts":1000,"pid":1,"tid":1}
	]}`)

	p, err := ParseChrome(data)
	if err != nil {
		t.Fatalf("ParseChrome: %v", err)
	}
	if got, want := p.NumSpans(), 2; got != want {
		t.Fatalf("NumSpans = %d, want %d", got, want)
	}
	if len(p.Threads) != 1 || len(p.Threads[0].RootSpans) != 1 {
		t.Fatalf("expected one thread with one root span, got %+v", p.Threads)
	}
	outer := p.Span(p.Threads[0].RootSpans[0])
	if outer.Name != "outer" || outer.StartUS != 0 || outer.EndUS != 1000 {
		t.Fatalf("outer span = %+v", outer)
	}
	if outer.FirstChild == model.NoFrame {
		t.Fatal("expected outer to have a child")
	}
	inner := p.Span(outer.FirstChild)
	if inner.Name != "inner" || inner.StartUS != 100 || inner.EndUS != 400 {
		t.Fatalf("inner span = %+v", inner)
	}
}

func TestParseCollapsedWeightsDuration(t *testing.T) {
	data := []byte("a;b 10\na;c 5\n")
	p, err := ParseCollapsed(data)
	if err != nil {
		t.Fatalf("ParseCollapsed: %v", err)
	}
	if p.EndTimeUS != 15 {
		t.Fatalf("EndTimeUS = %d, want 15", p.EndTimeUS)
	}
	if got := p.NumSpans(); got != 4 {
		t.Fatalf("NumSpans = %d, want 4 (two 2-frame stacks)", got)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse([]byte("not a recognizable profile at all"))
	if err == nil {
		t.Fatal("expected an error for unrecognized input")
	}
	pe, ok := err.(*model.ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *model.ParseError", err)
	}
	if pe.Kind != model.InvalidFormat {
		t.Fatalf("Kind = %v, want InvalidFormat", pe.Kind)
	}
}
