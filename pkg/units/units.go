// Package units normalizes user-facing length units to the solver's
// internal unit, which is always millimeters.
package units

import "fmt"

// Unit is a length unit selected in the host document.
type Unit int

const (
	Millimeter Unit = iota
	Centimeter
	Inch
)

// MillimetersPerInch is the exact conversion factor.
const MillimetersPerInch = 25.4

func (u Unit) String() string {
	switch u {
	case Millimeter:
		return "mm"
	case Centimeter:
		return "cm"
	case Inch:
		return "in"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// Parse converts a unit designator string to a Unit.
func Parse(s string) (Unit, error) {
	switch s {
	case "mm", "millimeter", "millimeters":
		return Millimeter, nil
	case "cm", "centimeter", "centimeters":
		return Centimeter, nil
	case "in", "inch", "inches":
		return Inch, nil
	}
	return 0, fmt.Errorf("unknown length unit %q", s)
}

// ToMillimeters converts a value expressed in u to millimeters.
func (u Unit) ToMillimeters(v float64) float64 {
	switch u {
	case Centimeter:
		return v * 10
	case Inch:
		return v * MillimetersPerInch
	default:
		return v
	}
}

// FromMillimeters converts a millimeter value to u.
func (u Unit) FromMillimeters(v float64) float64 {
	switch u {
	case Centimeter:
		return v / 10
	case Inch:
		return v / MillimetersPerInch
	default:
		return v
	}
}
