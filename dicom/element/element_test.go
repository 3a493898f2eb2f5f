package element

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medview/go-dicom/dicom/tag"
	"github.com/medview/go-dicom/dicom/vr"
)

func TestElement_Strings(t *testing.T) {
	e := New(tag.PatientName, vr.PersonName, binary.LittleEndian, 0, 10, []byte("Doe^Jane \x00"))
	assert.Equal(t, []string{"Doe^Jane"}, e.Strings())

	multi := New(tag.PixelSpacing, vr.DecimalString, binary.LittleEndian, 0, 8, []byte("0.5\\0.7 "))
	assert.Equal(t, []string{"0.5", "0.7"}, multi.Strings())

	empty := New(tag.PatientID, vr.LongString, binary.LittleEndian, 0, 0, nil)
	assert.Empty(t, empty.Strings())

	// Non-string VRs have no string interpretation.
	us := New(tag.Rows, vr.UnsignedShort, binary.LittleEndian, 0, 2, []byte{0x00, 0x02})
	assert.Nil(t, us.Strings())
}

func TestElement_Ints(t *testing.T) {
	le := binary.LittleEndian

	us := New(tag.Rows, vr.UnsignedShort, le, 0, 2, []byte{0x00, 0x02})
	assert.Equal(t, []int64{512}, us.Ints())

	ss := New(tag.New(0x0028, 0x0106), vr.SignedShort, le, 0, 2, []byte{0xFF, 0xFF})
	assert.Equal(t, []int64{-1}, ss.Ints())

	ul := New(tag.FileMetaInformationGroupLength, vr.UnsignedLong, le, 0, 4, []byte{0x10, 0x00, 0x00, 0x00})
	assert.Equal(t, []int64{16}, ul.Ints())

	is := New(tag.NumberOfFrames, vr.IntegerString, le, 0, 2, []byte("12"))
	assert.Equal(t, []int64{12}, is.Ints())

	// Big-endian decoding honors the element's byte order.
	usBE := New(tag.Rows, vr.UnsignedShort, binary.BigEndian, 0, 2, []byte{0x02, 0x00})
	assert.Equal(t, []int64{512}, usBE.Ints())

	// Multi-valued.
	multi := New(tag.Rows, vr.UnsignedShort, le, 0, 4, []byte{0x01, 0x00, 0x02, 0x00})
	assert.Equal(t, []int64{1, 2}, multi.Ints())
}

func TestElement_Floats(t *testing.T) {
	le := binary.LittleEndian

	ds := New(tag.RescaleIntercept, vr.DecimalString, le, 0, 6, []byte("-1024 "))
	assert.Equal(t, []float64{-1024}, ds.Floats())

	fl := make([]byte, 4)
	le.PutUint32(fl, 0x3F800000)
	f := New(tag.New(0x0018, 0x0088), vr.FloatingPointSingle, le, 0, 4, fl)
	assert.Equal(t, []float64{1.0}, f.Floats())

	fd := make([]byte, 8)
	le.PutUint64(fd, 0x4000000000000000)
	d := New(tag.New(0x0018, 0x0088), vr.FloatingPointDouble, le, 0, 8, fd)
	assert.Equal(t, []float64{2.0}, d.Floats())
}

func TestElement_FirstAccessors(t *testing.T) {
	e := New(tag.Modality, vr.CodeString, binary.LittleEndian, 0, 2, []byte("CT"))

	s, ok := e.FirstString()
	require.True(t, ok)
	assert.Equal(t, "CT", s)

	_, ok = e.FirstInt()
	assert.False(t, ok)

	empty := New(tag.Modality, vr.CodeString, binary.LittleEndian, 0, 0, nil)
	_, ok = empty.FirstString()
	assert.False(t, ok)
}

func TestElement_Sequence(t *testing.T) {
	inner := New(tag.Modality, vr.CodeString, binary.LittleEndian, 0, 2, []byte("MR"))
	item := &Item{Elements: []*Element{inner}}
	seq := NewSequence(tag.New(0x0008, 0x1140), binary.LittleEndian, 100, []*Item{item})

	assert.True(t, seq.IsSequence())
	require.Len(t, seq.Items(), 1)

	got, ok := seq.Items()[0].Get(tag.Modality)
	require.True(t, ok)
	assert.Same(t, inner, got)

	_, ok = seq.Items()[0].Get(tag.PatientName)
	assert.False(t, ok)
}

func TestElement_Name(t *testing.T) {
	e := New(tag.PatientName, vr.PersonName, binary.LittleEndian, 0, 0, nil)
	assert.Equal(t, "Patient's Name", e.Name())

	private := New(tag.New(0x0051, 0x1001), vr.Unknown, binary.LittleEndian, 0, 0, nil)
	assert.Empty(t, private.Name())
}
