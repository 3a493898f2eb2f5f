package uid

// Transfer Syntax UIDs recognized by this library.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndian is the DICOM default transfer syntax.
	ImplicitVRLittleEndian = "1.2.840.10008.1.2"

	// ExplicitVRLittleEndian is the preferred uncompressed transfer syntax.
	ExplicitVRLittleEndian = "1.2.840.10008.1.2.1"

	// ExplicitVRBigEndian is retired but still seen in archives.
	//
	// Deprecated: This UID has been retired from the DICOM standard.
	ExplicitVRBigEndian = "1.2.840.10008.1.2.2"

	// JPEGBaselineProcess1 is 8-bit lossy JPEG.
	JPEGBaselineProcess1 = "1.2.840.10008.1.2.4.50"

	// JPEGLosslessProcess14 is JPEG Lossless, Non-Hierarchical (Process 14).
	JPEGLosslessProcess14 = "1.2.840.10008.1.2.4.57"

	// JPEGLosslessProcess14SV1 is JPEG Lossless, Non-Hierarchical,
	// First-Order Prediction (Process 14 [Selection Value 1]). The most
	// common lossless syntax in medical archives.
	JPEGLosslessProcess14SV1 = "1.2.840.10008.1.2.4.70"

	// JPEG2000Lossless is JPEG 2000 Image Compression (Lossless Only).
	JPEG2000Lossless = "1.2.840.10008.1.2.4.90"

	// JPEG2000 is JPEG 2000 Image Compression (lossless or lossy).
	JPEG2000 = "1.2.840.10008.1.2.4.91"
)

var transferSyntaxNames = map[string]string{
	ImplicitVRLittleEndian:   "Implicit VR Little Endian",
	ExplicitVRLittleEndian:   "Explicit VR Little Endian",
	ExplicitVRBigEndian:      "Explicit VR Big Endian (Retired)",
	JPEGBaselineProcess1:     "JPEG Baseline (Process 1)",
	JPEGLosslessProcess14:    "JPEG Lossless, Non-Hierarchical (Process 14)",
	JPEGLosslessProcess14SV1: "JPEG Lossless, Non-Hierarchical, First-Order Prediction (Process 14 [Selection Value 1])",
	JPEG2000Lossless:         "JPEG 2000 Image Compression (Lossless Only)",
	JPEG2000:                 "JPEG 2000 Image Compression",
}

// TransferSyntaxName returns the human-readable name of a recognized
// transfer syntax UID, or the empty string for unknown UIDs.
func TransferSyntaxName(uid string) string {
	return transferSyntaxNames[uid]
}
