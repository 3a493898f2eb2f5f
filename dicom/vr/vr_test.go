package vr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	for _, code := range []string{
		"AE", "AS", "AT", "CS", "DA", "DS", "DT", "FD", "FL", "IS", "LO", "LT",
		"OB", "OD", "OF", "OL", "OV", "OW", "PN", "SH", "SL", "SQ", "SS", "ST",
		"SV", "TM", "UC", "UI", "UL", "UN", "UR", "US", "UT", "UV",
	} {
		v, err := Parse(code)
		require.NoError(t, err, code)
		assert.Equal(t, code, v.String())
		assert.True(t, IsValid(code))
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, code := range []string{"", "X", "XX", "ab", "us"} {
		_, err := Parse(code)
		assert.Error(t, err, code)
		assert.False(t, IsValid(code))
	}
}

func TestUsesLongLength(t *testing.T) {
	long := []VR{OtherByte, OtherDouble, OtherFloat, OtherLong, OtherVeryLong,
		OtherWord, SequenceOfItems, UnlimitedCharacters, Unknown,
		UniversalResourceIdentifier, UnlimitedText}
	for _, v := range long {
		assert.True(t, v.UsesLongLength(), v.String())
	}

	short := []VR{ApplicationEntity, CodeString, DecimalString, PersonName,
		SignedShort, UnsignedShort, UniqueIdentifier, FloatingPointDouble}
	for _, v := range short {
		assert.False(t, v.UsesLongLength(), v.String())
	}
}

func TestTypeClasses(t *testing.T) {
	assert.True(t, PersonName.IsString())
	assert.True(t, UniqueIdentifier.IsString())
	assert.False(t, UnsignedShort.IsString())

	assert.True(t, OtherWord.IsBinary())
	assert.True(t, Unknown.IsBinary())
	assert.False(t, CodeString.IsBinary())

	assert.True(t, UnsignedShort.IsNumeric())
	assert.True(t, FloatingPointSingle.IsNumeric())
	assert.True(t, AttributeTag.IsNumeric())
	assert.False(t, SequenceOfItems.IsNumeric())
}

func TestPaddingByte(t *testing.T) {
	assert.Equal(t, byte(0x00), UniqueIdentifier.PaddingByte())
	assert.Equal(t, byte(0x00), OtherByte.PaddingByte())
	assert.Equal(t, byte(' '), PersonName.PaddingByte())
	assert.Equal(t, byte(' '), CodeString.PaddingByte())
}
