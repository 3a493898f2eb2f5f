package tag

// Structural tags used by the stream encoding itself.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
var (
	// Item marks the start of a sequence item.
	Item = New(0xFFFE, 0xE000)
	// ItemDelimitationItem ends an undefined-length item.
	ItemDelimitationItem = New(0xFFFE, 0xE00D)
	// SequenceDelimitationItem ends an undefined-length sequence.
	SequenceDelimitationItem = New(0xFFFE, 0xE0DD)
)

// Well-known data element tags resolved by name throughout the library.
var (
	FileMetaInformationGroupLength = New(0x0002, 0x0000)
	MediaStorageSOPClassUID        = New(0x0002, 0x0002)
	MediaStorageSOPInstanceUID     = New(0x0002, 0x0003)
	TransferSyntaxUID              = New(0x0002, 0x0010)
	ImplementationClassUID         = New(0x0002, 0x0012)
	ImplementationVersionName      = New(0x0002, 0x0013)

	SpecificCharacterSet = New(0x0008, 0x0005)
	SOPClassUID          = New(0x0008, 0x0016)
	SOPInstanceUID       = New(0x0008, 0x0018)
	StudyDate            = New(0x0008, 0x0020)
	Modality             = New(0x0008, 0x0060)

	PatientName      = New(0x0010, 0x0010)
	PatientID        = New(0x0010, 0x0020)
	PatientBirthDate = New(0x0010, 0x0030)
	PatientSex       = New(0x0010, 0x0040)

	SliceThickness = New(0x0018, 0x0050)

	StudyInstanceUID  = New(0x0020, 0x000D)
	SeriesInstanceUID = New(0x0020, 0x000E)
	InstanceNumber    = New(0x0020, 0x0013)

	SamplesPerPixel           = New(0x0028, 0x0002)
	PhotometricInterpretation = New(0x0028, 0x0004)
	PlanarConfiguration       = New(0x0028, 0x0006)
	NumberOfFrames            = New(0x0028, 0x0008)
	Rows                      = New(0x0028, 0x0010)
	Columns                   = New(0x0028, 0x0011)
	PixelSpacing              = New(0x0028, 0x0030)
	BitsAllocated             = New(0x0028, 0x0100)
	BitsStored                = New(0x0028, 0x0101)
	HighBit                   = New(0x0028, 0x0102)
	PixelRepresentation       = New(0x0028, 0x0103)
	WindowCenter              = New(0x0028, 0x1050)
	WindowWidth               = New(0x0028, 0x1051)
	RescaleIntercept          = New(0x0028, 0x1052)
	RescaleSlope              = New(0x0028, 0x1053)

	PixelData = New(0x7FE0, 0x0010)
)
