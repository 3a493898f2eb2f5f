package dicom

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/medview/go-dicom/dicom/tag"
)

// ValidationStatus summarizes structural validation of a parsed file.
// Soft issues (missing recommended tags, unusual but legal attributes) are
// reported here; they never prevent construction of a Decoder.
type ValidationStatus struct {
	IsValid      bool
	Width        int
	Height       int
	HasPixels    bool
	IsCompressed bool
	Issues       []string
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func imageValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// recommendedTags are attributes whose absence is reported as a soft issue.
var recommendedTags = []struct {
	t    tag.Tag
	name string
}{
	{tag.PatientName, "PatientName"},
	{tag.PatientID, "PatientID"},
	{tag.StudyInstanceUID, "StudyInstanceUID"},
	{tag.SeriesInstanceUID, "SeriesInstanceUID"},
	{tag.Modality, "Modality"},
}

// Validate checks the parsed file's image attributes for structural
// consistency: the validator-tagged constraints on ImageInfo, the pixel
// buffer length invariant for uncompressed data, and the presence of
// recommended identifying attributes.
func (d *Decoder) Validate() ValidationStatus {
	status := ValidationStatus{
		HasPixels:    d.file.HasPixelData(),
		IsCompressed: d.IsCompressed(),
	}
	status.Width, status.Height = d.Dimensions()

	for _, rec := range recommendedTags {
		if !d.file.DataSet.Contains(rec.t) {
			status.Issues = append(status.Issues, fmt.Sprintf("missing recommended attribute %s %s", rec.name, rec.t))
		}
	}

	if !status.HasPixels {
		status.IsValid = len(status.Issues) == 0
		return status
	}

	info, err := d.file.ImageInfo()
	if err != nil {
		status.Issues = append(status.Issues, err.Error())
		return status
	}

	if err := imageValidator().Struct(info); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				status.Issues = append(status.Issues,
					fmt.Sprintf("attribute %s violates %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
		} else {
			status.Issues = append(status.Issues, err.Error())
		}
		return status
	}

	if info.SamplesPerPixel == 3 && (info.PixelRepresentation != 0 || info.BitsAllocated != 8) {
		status.Issues = append(status.Issues,
			"color images require unsigned 8-bit samples")
	}

	// For native pixel data the declared dimensions must account for the
	// recorded byte length exactly.
	if !status.IsCompressed && d.file.PixelDataLength != info.TotalSizeBytes() {
		status.Issues = append(status.Issues,
			fmt.Sprintf("pixel data length %d does not match %dx%dx%d frames of %d-byte samples",
				d.file.PixelDataLength, info.Columns, info.Rows, info.NumberOfFrames, info.BytesPerSample()))
	}

	status.IsValid = len(status.Issues) == 0
	return status
}
