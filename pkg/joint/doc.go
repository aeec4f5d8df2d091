// Package joint solves dovetail joint geometry: it turns a validated set of
// joinery parameters into the cut outlines for the two mating boards.
package joint
