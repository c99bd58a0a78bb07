package entity

// Terrain codes as they appear in a map file
const (
	CodeWall  byte = 'W'
	CodeVoid  byte = 'X' // solid and never drawn
	CodeFloor byte = 'F'

	// Smart floors pick their edge variant from same-type neighbors.
	CodeFloorBrown  byte = 'B'
	CodeFloorMoss   byte = 'M'
	CodeFloorGrass  byte = 'G'
	CodeFloorCobble byte = 'C'

	// Portal and arrival markers, resolved by entry direction
	CodePlayer    byte = 'P'
	CodeExit      byte = 'O'
	CodeEntry     byte = 'Y'
	CodeAltPlayer byte = 'A'
)

// Decoration codes
const (
	CodeNone byte = '.'
	CodeRail byte = 'R'
)

// MaskUnset in a mask file asks the loader to derive the variant
const MaskUnset byte = '0'

// IsSolidCode reports whether a terrain code blocks movement
func IsSolidCode(c byte) bool {
	return c == CodeWall || c == CodeVoid
}

// IsSmartFloor reports whether a terrain code uses the floor classifier
func IsSmartFloor(c byte) bool {
	switch c {
	case CodeFloorBrown, CodeFloorMoss, CodeFloorGrass, CodeFloorCobble:
		return true
	}
	return false
}

// Variant selects which pre-authored tile image a cell shows. 0 means unset.
type Variant uint8

const VariantUnset Variant = 0

// VariantFromMask decodes a mask character ('0'..'9', then ':' ';' '<' '=')
func VariantFromMask(b byte) Variant {
	if b < MaskUnset {
		return VariantUnset
	}
	return Variant(b - MaskUnset)
}

// Mask encodes the variant back into its mask character
func (v Variant) Mask() byte {
	return MaskUnset + byte(v)
}

// Cell is one grid unit with its terrain and decoration layers
type Cell struct {
	Terrain           byte
	TerrainVariant    Variant
	Decoration        byte
	DecorationVariant Variant
}

// Solid reports whether the cell blocks movement
func (c Cell) Solid() bool {
	return IsSolidCode(c.Terrain)
}
