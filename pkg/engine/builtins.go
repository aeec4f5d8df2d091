package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/dovetail/pkg/anchor"
	"github.com/chazu/dovetail/pkg/joint"
	"github.com/chazu/dovetail/pkg/units"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms plan script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: tail-thickness -> tail_thickness
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus
		// operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_mm) and plain strings ("mm").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// floatArg fetches a required numeric keyword argument.
func floatArg(pa kwArgs, fn, key string) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing required argument :%s", fn, key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return f, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the plan DSL builtins into a zygomys environment.
// The builtins populate the provided Plan during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, plan *Plan) {

	// -----------------------------------------------------------------------
	// (units :mm) | (units "in")
	// Sets the length unit for every subsequent form in the script.
	// -----------------------------------------------------------------------
	env.AddFunction("units", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("units: expected one argument, got %d", len(args))
		}
		s, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("units: %w", err)
		}
		u, err := units.Parse(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("units: %w", err)
		}
		plan.Unit = u
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (dovetail :name "drawer-side"
	//           :width 100 :tail-thickness 18 :pin-thickness 18
	//           :angle 7 :bit 6 :tails 4 :ratio 0.6)
	// Solves one joint and appends it to the plan. Lengths are read in the
	// plan's current unit.
	// -----------------------------------------------------------------------
	env.AddFunction("dovetail", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		in := joint.Input{Unit: plan.Unit, TailWidthRatio: 0.5}

		var err error
		if in.BoardWidth, err = floatArg(pa, "dovetail", "width"); err != nil {
			return zygo.SexpNull, err
		}
		if in.TailThickness, err = floatArg(pa, "dovetail", "tail-thickness"); err != nil {
			return zygo.SexpNull, err
		}
		if in.PinThickness, err = floatArg(pa, "dovetail", "pin-thickness"); err != nil {
			return zygo.SexpNull, err
		}
		if in.BitHalfAngle, err = floatArg(pa, "dovetail", "angle"); err != nil {
			return zygo.SexpNull, err
		}
		if in.BitTipDiameter, err = floatArg(pa, "dovetail", "bit"); err != nil {
			return zygo.SexpNull, err
		}

		v, ok := pa.kw["tails"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("dovetail: missing required argument :tails")
		}
		if in.TailCount, err = toInt(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("dovetail: tails: %w", err)
		}

		if v, ok := pa.kw["ratio"]; ok {
			if in.TailWidthRatio, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("dovetail: ratio: %w", err)
			}
		}

		jointName := fmt.Sprintf("joint-%d", len(plan.Joints)+1)
		if v, ok := pa.kw["name"]; ok {
			if jointName, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("dovetail: name: %w", err)
			}
		}
		if plan.Joint(jointName) != nil {
			return zygo.SexpNull, fmt.Errorf("dovetail: duplicate joint name %q", jointName)
		}

		params, err := joint.NewParameters(in)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dovetail %q: %w", jointName, err)
		}
		sol, err := joint.Solve(params)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dovetail %q: %w", jointName, err)
		}

		plan.Joints = append(plan.Joints, PlanJoint{Name: jointName, Solution: sol})
		return &zygo.SexpStr{S: jointName}, nil
	})

	// -----------------------------------------------------------------------
	// (anchor :orientation :RT :x 0 :y 0 :size 5)
	// Stages the custom anchor triangle. A later anchor form replaces an
	// earlier one; a plan carries at most one anchor.
	// -----------------------------------------------------------------------
	env.AddFunction("anchor", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		v, ok := pa.kw["orientation"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("anchor: missing required argument :orientation")
		}
		s, err := toKeywordString(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("anchor: orientation: %w", err)
		}
		orient, err := anchor.ParseOrientation(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("anchor: %w", err)
		}

		spec := anchor.Spec{Orientation: orient}
		if spec.X, err = floatArg(pa, "anchor", "x"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.Y, err = floatArg(pa, "anchor", "y"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.XSize, err = floatArg(pa, "anchor", "size"); err != nil {
			return zygo.SexpNull, err
		}
		if spec.XSize <= 0 {
			return zygo.SexpNull, fmt.Errorf("anchor: size must be positive, got %g", spec.XSize)
		}

		// Lengths arrive in the plan's unit; the spec is stored in mm.
		spec.X = plan.Unit.ToMillimeters(spec.X)
		spec.Y = plan.Unit.ToMillimeters(spec.Y)
		spec.XSize = plan.Unit.ToMillimeters(spec.XSize)

		plan.Anchor = &spec
		return zygo.SexpNull, nil
	})
}
