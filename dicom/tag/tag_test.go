package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medview/go-dicom/dicom/vr"
)

func TestTag_Basics(t *testing.T) {
	pd := New(0x7FE0, 0x0010)

	assert.Equal(t, "(7FE0,0010)", pd.String())
	assert.Equal(t, uint32(0x7FE00010), pd.Uint32())
	assert.Equal(t, pd, FromUint32(0x7FE00010))
	assert.True(t, pd.Equals(PixelData))
	assert.False(t, pd.IsPrivate())
	assert.False(t, pd.IsMetaElement())

	assert.True(t, New(0x0009, 0x0001).IsPrivate())
	assert.True(t, TransferSyntaxUID.IsMetaElement())
}

func TestTag_Compare(t *testing.T) {
	a := New(0x0008, 0x0060)
	b := New(0x0010, 0x0010)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestTag_IsDelimiter(t *testing.T) {
	assert.True(t, Item.IsDelimiter())
	assert.True(t, ItemDelimitationItem.IsDelimiter())
	assert.True(t, SequenceDelimitationItem.IsDelimiter())
	assert.False(t, PixelData.IsDelimiter())
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{in: "(7FE0,0010)", want: New(0x7FE0, 0x0010)},
		{in: "0028,0010", want: New(0x0028, 0x0010)},
		{in: " (0002,0010) ", want: New(0x0002, 0x0010)},
		{in: "no comma", wantErr: true},
		{in: "(zzzz,0010)", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFind(t *testing.T) {
	info, err := Find(PixelData)
	require.NoError(t, err)
	assert.Equal(t, "PixelData", info.Keyword)
	assert.Equal(t, vr.OtherByte, info.VRs[0])
	assert.Len(t, info.VRs, 2)

	info, err = Find(Rows)
	require.NoError(t, err)
	assert.Equal(t, []vr.VR{vr.UnsignedShort}, info.VRs)
	assert.Equal(t, "Rows", info.Keyword)
}

func TestFind_GenericGroupLength(t *testing.T) {
	info, err := Find(New(0x0008, 0x0000))
	require.NoError(t, err)
	assert.Equal(t, "GenericGroupLength", info.Keyword)
	assert.Equal(t, []vr.VR{vr.UnsignedLong}, info.VRs)

	// Odd groups get no synthesized entry.
	_, err = Find(New(0x0009, 0x0000))
	assert.Error(t, err)
}

func TestFind_Unknown(t *testing.T) {
	_, err := Find(New(0x0051, 0x1001))
	assert.Error(t, err)
}

func TestFindByKeyword(t *testing.T) {
	info, err := FindByKeyword("PatientName")
	require.NoError(t, err)
	assert.Equal(t, PatientName, info.Tag)

	_, err = FindByKeyword("")
	assert.Error(t, err)
	_, err = FindByKeyword("NoSuchKeyword")
	assert.Error(t, err)
}

func TestMustFind(t *testing.T) {
	assert.NotPanics(t, func() { MustFind(TransferSyntaxUID) })
	assert.Panics(t, func() { MustFind(New(0x0051, 0x1001)) })
}
