package joint

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/dovetail/pkg/units"
)

func TestNewParametersNormalizesUnits(t *testing.T) {
	in := Input{
		BoardWidth:     4,
		TailThickness:  0.75,
		PinThickness:   0.75,
		BitHalfAngle:   7,
		BitTipDiameter: 0.25,
		TailCount:      3,
		TailWidthRatio: 0.5,
		Unit:           units.Inch,
	}
	p, err := NewParameters(in)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	if math.Abs(p.BoardWidth-101.6) > 1e-9 {
		t.Errorf("BoardWidth = %g, want 101.6", p.BoardWidth)
	}
	if math.Abs(p.TailThickness-19.05) > 1e-9 {
		t.Errorf("TailThickness = %g, want 19.05", p.TailThickness)
	}
	if math.Abs(p.BitTipDiameter-6.35) > 1e-9 {
		t.Errorf("BitTipDiameter = %g, want 6.35", p.BitTipDiameter)
	}
	// The angle is not a length and must not be converted.
	if p.BitHalfAngle != 7 {
		t.Errorf("BitHalfAngle = %g, want 7", p.BitHalfAngle)
	}
}

func TestNewParametersFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"zero width", func(in *Input) { in.BoardWidth = 0 }, "boardWidth"},
		{"negative width", func(in *Input) { in.BoardWidth = -10 }, "boardWidth"},
		{"zero tail thickness", func(in *Input) { in.TailThickness = 0 }, "tailThickness"},
		{"zero pin thickness", func(in *Input) { in.PinThickness = 0 }, "pinThickness"},
		{"zero angle", func(in *Input) { in.BitHalfAngle = 0 }, "bitHalfAngle"},
		{"right angle", func(in *Input) { in.BitHalfAngle = 90 }, "bitHalfAngle"},
		{"negative bit", func(in *Input) { in.BitTipDiameter = -1 }, "bitTipDiameter"},
		{"zero tails", func(in *Input) { in.TailCount = 0 }, "tailCount"},
		{"ratio zero", func(in *Input) { in.TailWidthRatio = 0 }, "tailWidthRatio"},
		{"ratio one", func(in *Input) { in.TailWidthRatio = 1 }, "tailWidthRatio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := drawerInput()
			tt.mutate(&in)
			_, err := NewParameters(in)
			var paramErr *InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("got %v, want InvalidParameterError", err)
			}
			if paramErr.Field != tt.field {
				t.Errorf("field = %q, want %q", paramErr.Field, tt.field)
			}
		})
	}
}

func TestParametersDerived(t *testing.T) {
	p := drawerParams(t)

	if got := p.Pitch(); math.Abs(got-25) > 1e-9 {
		t.Errorf("Pitch() = %g, want 25", got)
	}
	if got := p.TailBoardCutDepth(); got != p.PinThickness {
		t.Errorf("TailBoardCutDepth() = %g, want pin thickness %g", got, p.PinThickness)
	}
	if got := p.PinBoardCutDepth(); got != p.TailThickness {
		t.Errorf("PinBoardCutDepth() = %g, want tail thickness %g", got, p.TailThickness)
	}

	// 6mm tip, 7° half-angle, 18mm deep: 6 - 2·18·tan(7°) ≈ 1.580mm.
	want := 6 - 2*18*math.Tan(7*math.Pi/180)
	if got := p.BitFaceDiameter(); math.Abs(got-want) > 1e-9 {
		t.Errorf("BitFaceDiameter() = %g, want %g", got, want)
	}
}

func TestParametersAsymmetricThickness(t *testing.T) {
	in := drawerInput()
	in.TailThickness = 12
	p, err := NewParameters(in)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	if p.PinBoardCutDepth() != 12 {
		t.Errorf("PinBoardCutDepth() = %g, want 12", p.PinBoardCutDepth())
	}
	if p.TailBoardCutDepth() != 18 {
		t.Errorf("TailBoardCutDepth() = %g, want 18", p.TailBoardCutDepth())
	}
}
