// Package vr defines DICOM Value Representations (VRs) and their encoding
// properties.
//
// A Value Representation is the two-letter type code attached to every data
// element in an explicit-VR stream. The property that matters most while
// parsing is the width of the length field: "short" VRs carry a 16-bit
// length, "long" VRs carry two reserved bytes followed by a 32-bit length.
//
// See DICOM Part 5, Section 6.2:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
package vr

import "fmt"

// VR represents a DICOM Value Representation.
type VR uint8

// Standard DICOM Value Representations as defined in Part 5, Section 6.2.
const (
	// ApplicationEntity (AE) - Application Entity title
	ApplicationEntity VR = iota + 1
	// AgeString (AS) - Age in nnnD/nnnW/nnnM/nnnY form
	AgeString
	// AttributeTag (AT) - a (group,element) tag pair
	AttributeTag
	// CodeString (CS) - coded value, uppercase
	CodeString
	// Date (DA) - YYYYMMDD
	Date
	// DecimalString (DS) - decimal number encoded as text
	DecimalString
	// DateTime (DT) - date and time
	DateTime
	// FloatingPointDouble (FD) - 64-bit IEEE float
	FloatingPointDouble
	// FloatingPointSingle (FL) - 32-bit IEEE float
	FloatingPointSingle
	// IntegerString (IS) - integer encoded as text
	IntegerString
	// LongString (LO) - character string, max 64 chars
	LongString
	// LongText (LT) - text, max 10240 chars
	LongText
	// OtherByte (OB) - byte stream
	OtherByte
	// OtherDouble (OD) - 64-bit float array
	OtherDouble
	// OtherFloat (OF) - 32-bit float array
	OtherFloat
	// OtherLong (OL) - 32-bit integer array
	OtherLong
	// OtherVeryLong (OV) - 64-bit integer array
	OtherVeryLong
	// OtherWord (OW) - 16-bit word stream
	OtherWord
	// PersonName (PN) - name in Last^First^Middle^Prefix^Suffix form
	PersonName
	// ShortString (SH) - character string, max 16 chars
	ShortString
	// SignedLong (SL) - signed 32-bit integer
	SignedLong
	// SequenceOfItems (SQ) - sequence of nested datasets
	SequenceOfItems
	// SignedShort (SS) - signed 16-bit integer
	SignedShort
	// ShortText (ST) - text, max 1024 chars
	ShortText
	// SignedVeryLong (SV) - signed 64-bit integer
	SignedVeryLong
	// Time (TM) - HHMMSS.FFFFFF
	Time
	// UnlimitedCharacters (UC) - unbounded character string
	UnlimitedCharacters
	// UniqueIdentifier (UI) - UID in dotted notation
	UniqueIdentifier
	// UnsignedLong (UL) - unsigned 32-bit integer
	UnsignedLong
	// Unknown (UN) - unknown value type
	Unknown
	// UniversalResourceIdentifier (UR) - URI or URL
	UniversalResourceIdentifier
	// UnsignedShort (US) - unsigned 16-bit integer
	UnsignedShort
	// UnlimitedText (UT) - unbounded text
	UnlimitedText
	// UnsignedVeryLong (UV) - unsigned 64-bit integer
	UnsignedVeryLong
)

var vrStrings = map[VR]string{
	ApplicationEntity: "AE", AgeString: "AS", AttributeTag: "AT", CodeString: "CS",
	Date: "DA", DecimalString: "DS", DateTime: "DT", FloatingPointDouble: "FD",
	FloatingPointSingle: "FL", IntegerString: "IS", LongString: "LO", LongText: "LT",
	OtherByte: "OB", OtherDouble: "OD", OtherFloat: "OF", OtherLong: "OL",
	OtherVeryLong: "OV", OtherWord: "OW", PersonName: "PN", ShortString: "SH",
	SignedLong: "SL", SequenceOfItems: "SQ", SignedShort: "SS", ShortText: "ST",
	SignedVeryLong: "SV", Time: "TM", UnlimitedCharacters: "UC", UniqueIdentifier: "UI",
	UnsignedLong: "UL", Unknown: "UN", UniversalResourceIdentifier: "UR", UnsignedShort: "US",
	UnlimitedText: "UT", UnsignedVeryLong: "UV",
}

var stringToVR = func() map[string]VR {
	m := make(map[string]VR, len(vrStrings))
	for v, s := range vrStrings {
		m[s] = v
	}
	return m
}()

// String returns the two-character code for the VR.
func (v VR) String() string {
	if s, ok := vrStrings[v]; ok {
		return s
	}
	return "UN"
}

// IsValid reports whether s is a recognized two-character VR code.
func IsValid(s string) bool {
	_, ok := stringToVR[s]
	return ok
}

// Parse converts a two-character VR code to its VR constant.
func Parse(s string) (VR, error) {
	if v, ok := stringToVR[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("invalid VR: %q", s)
}

// UsesLongLength reports whether this VR is encoded with two reserved bytes
// followed by a 32-bit length field in explicit VR streams. All other VRs
// use a 16-bit length field immediately after the VR code.
//
// See DICOM Part 5, Section 7.1.2:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (v VR) UsesLongLength() bool {
	switch v {
	case OtherByte, OtherDouble, OtherFloat, OtherLong, OtherVeryLong, OtherWord,
		SequenceOfItems, UnlimitedCharacters, Unknown, UniversalResourceIdentifier, UnlimitedText:
		return true
	default:
		return false
	}
}

// IsString reports whether values of this VR are character data.
func (v VR) IsString() bool {
	switch v {
	case ApplicationEntity, AgeString, CodeString, Date, DecimalString, DateTime,
		IntegerString, LongString, LongText, PersonName, ShortString, ShortText,
		Time, UnlimitedCharacters, UniqueIdentifier, UniversalResourceIdentifier, UnlimitedText:
		return true
	default:
		return false
	}
}

// IsBinary reports whether values of this VR are opaque binary data.
func (v VR) IsBinary() bool {
	switch v {
	case OtherByte, OtherDouble, OtherFloat, OtherLong, OtherVeryLong, OtherWord, Unknown:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether values of this VR are binary-encoded numbers.
func (v VR) IsNumeric() bool {
	switch v {
	case SignedShort, UnsignedShort, SignedLong, UnsignedLong, AttributeTag,
		SignedVeryLong, UnsignedVeryLong, FloatingPointSingle, FloatingPointDouble:
		return true
	default:
		return false
	}
}

// PaddingByte returns the byte used to pad odd-length values of this VR.
// UI and the binary VRs pad with NUL; string VRs pad with space.
func (v VR) PaddingByte() byte {
	switch v {
	case UniqueIdentifier, OtherByte, OtherDouble, OtherFloat, OtherLong,
		OtherVeryLong, OtherWord, Unknown:
		return 0x00
	default:
		return ' '
	}
}
