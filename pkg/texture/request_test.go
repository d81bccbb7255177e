package texture

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOperationsTable(t *testing.T) {
	cases := []struct {
		op      string
		accepts []Mode
	}{
		{OpInvertChannels, []Mode{RGB8, RGBA8, Gray8, Gray16}},
		{OpRemoveAlpha, []Mode{RGBA8}},
		{OpClassifyHandedness, []Mode{RGB8, RGBA8}},
		{OpConvertHandedness, []Mode{RGB8, RGBA8}},
		{OpInvertDisplacement, []Mode{RGB8, Gray16}},
	}
	for _, c := range cases {
		spec, ok := LookupOperation(c.op)
		if !ok {
			t.Fatalf("operation %q not registered", c.op)
		}
		for _, m := range Modes {
			want := containsMode(c.accepts, m)
			if spec.Accepted(m) != want {
				t.Fatalf("%s accepts %v = %v, want %v", c.op, m, spec.Accepted(m), want)
			}
		}
		if spec.Usage == "" || spec.Description == "" {
			t.Fatalf("%s missing help text", c.op)
		}
	}
	if _, ok := LookupOperation("sharpen"); ok {
		t.Fatalf("unexpected operation found")
	}
}

func TestApplyInvertDefaultsToColourChannels(t *testing.T) {
	b := makeSolid(t, 2, 1, RGBA8, 10, 20, 30, 40)
	res, err := Apply(b, InvertChannelsRequest{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff([]uint16{245, 235, 225, 40, 245, 235, 225, 40}, res.Buffer.Samples); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if res.Classification != nil {
		t.Fatalf("unexpected classification")
	}
}

func TestApplyConvertHandedness(t *testing.T) {
	b := makeSolid(t, 1, 1, RGB8, 10, 20, 30)
	res, err := Apply(b, ConvertHandedness())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff([]uint16{10, 235, 30}, res.Buffer.Samples); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	gray := makeSolid(t, 1, 1, Gray8, 10)
	if _, err := Apply(gray, ConvertHandedness()); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestApplyInvertDisplacement(t *testing.T) {
	b := makeSolid(t, 2, 2, Gray16, 0, 65535, 32768, 1)
	res, err := Apply(b, InvertDisplacement())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Buffer.Mode != Gray16 {
		t.Fatalf("mode changed to %v", res.Buffer.Mode)
	}
	if diff := cmp.Diff([]uint16{65535, 0, 32767, 65534}, res.Buffer.Samples); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	rgba := makeSolid(t, 1, 1, RGBA8, 1, 2, 3, 4)
	if _, err := Apply(rgba, InvertDisplacement()); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestApplyRemoveAlpha(t *testing.T) {
	b := makeSolid(t, 1, 1, RGBA8, 9, 9, 9, 0)
	res, err := Apply(b, RemoveAlphaRequest{Background: Color{1, 2, 3}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Buffer.Mode != RGB8 {
		t.Fatalf("expected RGB8, got %v", res.Buffer.Mode)
	}
	if diff := cmp.Diff([]uint16{1, 2, 3}, res.Buffer.Samples); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	rgb := makeSolid(t, 1, 1, RGB8, 9, 9, 9)
	res, err = Apply(rgb, RemoveAlphaRequest{Background: White})
	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if res.Buffer != nil {
		t.Fatalf("expected no buffer on error")
	}
}

func TestApplyClassify(t *testing.T) {
	b := makeSolid(t, 3, 3, RGB8, 0, 204, 0)
	res, err := Apply(b, ClassifyHandednessRequest{Threshold: DefaultThreshold})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Buffer != nil || res.Classification == nil {
		t.Fatalf("expected classification only, got %+v", res)
	}
	if res.Classification.Handedness != OpenGL {
		t.Fatalf("expected OpenGL, got %v", res.Classification)
	}

	gray := makeSolid(t, 1, 1, Gray16, 0)
	if _, err := Apply(gray, ClassifyHandednessRequest{Threshold: DefaultThreshold}); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestApplyNilRequest(t *testing.T) {
	b := makeSolid(t, 1, 1, RGB8, 0, 0, 0)
	if _, err := Apply(b, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
