package bsonjson

import "golang.org/x/sys/cpu"

// isaVariant identifies which StringEscaper inner loop a Transcoder uses.
// The variant only changes how fast escapeBytes finds the next
// escape-triggering byte; it never changes the bytes that are written.
type isaVariant int

const (
	variantScalar isaVariant = iota
	variantWide
)

// selectedVariant is probed once, at package init, the Go-idiomatic
// equivalent of spec's "process-wide initialization that selects a SIMD
// variant." A fully scalar implementation is always correct, so a probe
// failure or an unrecognized CPU never blocks startup — it just leaves
// the scalar path selected.
var selectedVariant = detectVariant()

func detectVariant() isaVariant {
	if cpu.X86.HasAVX2 || cpu.X86.HasSSE42 {
		return variantWide
	}
	return variantScalar
}

func init() {
	name := "scalar"
	if selectedVariant == variantWide {
		name = "wide"
	}
	defaultLogger.WithField("variant", name).Info("bsonjson: escaper variant selected")
}
