package tag

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/medview/go-dicom/dicom/vr"
)

// Info describes a tag as defined in the PS3.6 data dictionary.
type Info struct {
	Tag Tag
	// VRs lists the possible value representations for the tag, e.g. the
	// pixel data element may be encoded as OB or OW. At least one entry
	// is present; the first is the canonical choice for implicit VR.
	VRs []vr.VR
	// Keyword is the machine-readable identifier, e.g. "PixelData".
	Keyword string
	// Name is the human-readable name, e.g. "Pixel Data".
	Name string
	// VM is the value multiplicity, e.g. "1" or "1-n".
	VM string
}

//go:embed dictionary.txt
var dictionaryData string

var (
	dictOnce      sync.Once
	dictByTag     map[Tag]Info
	dictByKeyword map[string]Tag
)

// loadDictionary parses the embedded dictionary exactly once. Malformed
// lines are a programming error in the embedded resource, so they panic.
func loadDictionary() {
	dictOnce.Do(func() {
		byTag := make(map[Tag]Info, 128)
		byKeyword := make(map[string]Tag, 128)

		for lineNo, line := range strings.Split(dictionaryData, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Split(line, "\t")
			if len(fields) != 5 {
				panic(fmt.Sprintf("tag dictionary line %d: expected 5 fields, got %d", lineNo+1, len(fields)))
			}

			t, err := Parse(fields[0])
			if err != nil {
				panic(fmt.Sprintf("tag dictionary line %d: %v", lineNo+1, err))
			}

			var vrs []vr.VR
			for _, code := range strings.Split(fields[1], "/") {
				v, err := vr.Parse(code)
				if err != nil {
					panic(fmt.Sprintf("tag dictionary line %d: %v", lineNo+1, err))
				}
				vrs = append(vrs, v)
			}

			info := Info{
				Tag:     t,
				VRs:     vrs,
				VM:      fields[2],
				Keyword: fields[3],
				Name:    fields[4],
			}
			byTag[t] = info
			byKeyword[info.Keyword] = t
		}

		dictByTag = byTag
		dictByKeyword = byKeyword
	})
}

// Find returns dictionary information for the given tag.
//
// For even-numbered groups with element 0x0000 that are not listed
// explicitly, a generic group-length entry (VR UL) is synthesized, per the
// (gggg,0000) convention.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_6
func Find(t Tag) (Info, error) {
	loadDictionary()

	if info, ok := dictByTag[t]; ok {
		return info, nil
	}
	if t.Group%2 == 0 && t.Element == 0x0000 {
		return Info{
			Tag:     t,
			VRs:     []vr.VR{vr.UnsignedLong},
			Keyword: "GenericGroupLength",
			Name:    "Generic Group Length",
			VM:      "1",
		}, nil
	}
	return Info{}, fmt.Errorf("tag %s not found in dictionary", t)
}

// FindByKeyword returns dictionary information for the given keyword,
// e.g. "PatientName".
func FindByKeyword(keyword string) (Info, error) {
	loadDictionary()

	if keyword == "" {
		return Info{}, fmt.Errorf("keyword cannot be empty")
	}
	if t, ok := dictByKeyword[keyword]; ok {
		return dictByTag[t], nil
	}
	return Info{}, fmt.Errorf("tag with keyword %q not found in dictionary", keyword)
}

// MustFind is Find, panicking when the tag is absent. Use only for tags
// guaranteed to be in the embedded dictionary.
func MustFind(t Tag) Info {
	info, err := Find(t)
	if err != nil {
		panic(err)
	}
	return info
}
