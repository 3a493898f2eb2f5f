package dicom

import (
	"fmt"
	"strings"

	"github.com/medview/go-dicom/dicom/element"
	"github.com/medview/go-dicom/dicom/tag"
)

// DataSet is an ordered collection of top-level data elements with
// tag-indexed lookup. Elements keep stream order, which for a parsed file
// is ascending tag order.
type DataSet struct {
	ordered []*element.Element
	byTag   map[tag.Tag]*element.Element
}

// NewDataSet creates an empty dataset.
func NewDataSet() *DataSet {
	return &DataSet{byTag: make(map[tag.Tag]*element.Element)}
}

// Add appends an element, replacing any previous element with the same tag.
func (ds *DataSet) Add(e *element.Element) error {
	if e == nil {
		return fmt.Errorf("cannot add nil element")
	}
	if _, exists := ds.byTag[e.Tag()]; exists {
		for i, prev := range ds.ordered {
			if prev.Tag() == e.Tag() {
				ds.ordered[i] = e
				break
			}
		}
	} else {
		ds.ordered = append(ds.ordered, e)
	}
	ds.byTag[e.Tag()] = e
	return nil
}

// Get retrieves an element by tag.
func (ds *DataSet) Get(t tag.Tag) (*element.Element, bool) {
	e, ok := ds.byTag[t]
	return e, ok
}

// GetByKeyword retrieves an element by its dictionary keyword, e.g.
// "PatientName".
func (ds *DataSet) GetByKeyword(keyword string) (*element.Element, error) {
	info, err := tag.FindByKeyword(keyword)
	if err != nil {
		return nil, fmt.Errorf("unknown keyword %q: %w", keyword, err)
	}
	e, ok := ds.byTag[info.Tag]
	if !ok {
		return nil, fmt.Errorf("element with tag %s not found", info.Tag)
	}
	return e, nil
}

// Contains reports whether an element with the given tag is present.
func (ds *DataSet) Contains(t tag.Tag) bool {
	_, ok := ds.byTag[t]
	return ok
}

// Len returns the number of elements.
func (ds *DataSet) Len() int { return len(ds.ordered) }

// Elements returns the elements in stream order. The slice is shared;
// callers must not modify it.
func (ds *DataSet) Elements() []*element.Element { return ds.ordered }

// Tags returns the element tags in stream order.
func (ds *DataSet) Tags() []tag.Tag {
	tags := make([]tag.Tag, len(ds.ordered))
	for i, e := range ds.ordered {
		tags[i] = e.Tag()
	}
	return tags
}

// String renders the dataset for debugging, one element per line.
func (ds *DataSet) String() string {
	var sb strings.Builder
	switch ds.Len() {
	case 0:
		return "DataSet with 0 elements"
	case 1:
		sb.WriteString("DataSet with 1 element:\n")
	default:
		fmt.Fprintf(&sb, "DataSet with %d elements:\n", ds.Len())
	}
	for _, e := range ds.ordered {
		sb.WriteString("  ")
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
