package colormap

import (
	"testing"

	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/theme"
)

func TestResolveByNameStable(t *testing.T) {
	a := &model.Span{Name: "foo"}
	b := &model.Span{Name: "foo"}
	if Resolve(a, ByName) != Resolve(b, ByName) {
		t.Fatal("same name should resolve to the same token across calls")
	}
}

func TestResolveByDepthCycles(t *testing.T) {
	s := &model.Span{Depth: uint16(len(ramp))}
	if got, want := Resolve(s, ByDepth), ramp[0]; got != want {
		t.Fatalf("Resolve(depth=%d) = %v, want %v (wraps to index 0)", len(ramp), got, want)
	}
}

func TestCategoryOverridesMode(t *testing.T) {
	s := &model.Span{Name: "whatever", Category: "gc"}
	if got := Resolve(s, ByName); got != theme.FrameWarning {
		t.Fatalf("Resolve(category=gc) = %v, want FrameWarning", got)
	}
}
