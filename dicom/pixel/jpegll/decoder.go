package jpegll

import "fmt"

// component is one color component of the frame being decoded.
type component struct {
	id        byte
	tableID   int
	samples   []int // reconstructed samples, row-major
	predReset bool  // next sample uses the default predictor
}

type decoder struct {
	data []byte

	width      int
	height     int
	precision  int
	components []*component

	dcTables        [4]*huffmanTable
	restartInterval int
}

func (d *decoder) decode() (*Frame, error) {
	s := &segmentScanner{data: d.data}

	m, err := s.readMarker()
	if err != nil {
		return nil, err
	}
	if m != markerSOI {
		return nil, &CorruptError{Offset: 0, Reason: "missing SOI marker"}
	}

	for {
		m, err := s.readMarker()
		if err != nil {
			return nil, err
		}

		switch {
		case m == markerSOF3:
			if err := d.parseSOF3(s); err != nil {
				return nil, err
			}

		case m == markerSOF0:
			return nil, &CorruptError{Offset: int64(s.pos), Reason: "baseline SOF0 frame in lossless stream"}

		case m == markerDHT:
			if err := d.parseDHT(s); err != nil {
				return nil, err
			}

		case m == markerDRI:
			if err := d.parseDRI(s); err != nil {
				return nil, err
			}

		case m == markerSOS:
			if err := d.parseSOS(s); err != nil {
				return nil, err
			}
			if err := d.decodeScan(s); err != nil {
				return nil, err
			}
			return d.frame(), nil

		case m == markerEOI:
			return nil, &CorruptError{Offset: int64(s.pos), Reason: "EOI before scan data"}

		default:
			// Tolerated marker: consume its segment if it has one.
			if hasSegment(m) {
				if _, err := s.readSegment(); err != nil {
					return nil, err
				}
			}
		}
	}
}

// parseSOF3 reads the lossless start-of-frame: precision, dimensions, and
// component layout. Per T.81 B.2.2.
func (d *decoder) parseSOF3(s *segmentScanner) error {
	start := int64(s.pos)
	body, err := s.readSegment()
	if err != nil {
		return err
	}
	if len(body) < 6 {
		return &CorruptError{Offset: start, Reason: "SOF3 segment too short"}
	}

	d.precision = int(body[0])
	if d.precision < 2 || d.precision > 16 {
		return &CorruptError{Offset: start, Reason: fmt.Sprintf("precision %d out of range", d.precision)}
	}
	d.height = int(body[1])<<8 | int(body[2])
	d.width = int(body[3])<<8 | int(body[4])
	if d.width <= 0 || d.height <= 0 {
		return &CorruptError{Offset: start, Reason: "zero frame dimensions"}
	}

	nf := int(body[5])
	if nf != 1 && nf != 3 {
		return &CorruptError{Offset: start, Reason: fmt.Sprintf("%d components unsupported", nf)}
	}
	if len(body) < 6+nf*3 {
		return &CorruptError{Offset: start, Reason: "SOF3 component list truncated"}
	}

	d.components = make([]*component, nf)
	for i := 0; i < nf; i++ {
		spec := body[6+i*3:]
		h, v := int(spec[1]>>4), int(spec[1]&0x0F)
		if h != 1 || v != 1 {
			return &CorruptError{Offset: start, Reason: "subsampling unsupported in lossless mode"}
		}
		d.components[i] = &component{
			id:      spec[0],
			samples: make([]int, d.width*d.height),
		}
	}
	return nil
}

// parseDHT reads one or more Huffman table definitions from a DHT segment.
// Lossless scans use only class-0 (DC) tables. Per T.81 B.2.4.2.
func (d *decoder) parseDHT(s *segmentScanner) error {
	start := int64(s.pos)
	body, err := s.readSegment()
	if err != nil {
		return err
	}

	for off := 0; off < len(body); {
		if off+17 > len(body) {
			return &CorruptError{Offset: start, Reason: "DHT segment truncated"}
		}
		class := body[off] >> 4
		id := int(body[off] & 0x0F)
		if id > 3 {
			return &CorruptError{Offset: start, Reason: fmt.Sprintf("Huffman table id %d out of range", id)}
		}
		off++

		table := &huffmanTable{}
		total := 0
		for l := 1; l <= 16; l++ {
			table.bits[l] = int(body[off])
			total += table.bits[l]
			off++
		}
		if off+total > len(body) {
			return &CorruptError{Offset: start, Reason: "DHT symbol list truncated"}
		}
		table.vals = make([]byte, total)
		copy(table.vals, body[off:off+total])
		off += total

		if err := table.build(start); err != nil {
			return err
		}
		if class == 0 {
			d.dcTables[id] = table
		}
	}
	return nil
}

// parseDRI reads the restart interval. Per T.81 B.2.4.4.
func (d *decoder) parseDRI(s *segmentScanner) error {
	start := int64(s.pos)
	body, err := s.readSegment()
	if err != nil {
		return err
	}
	if len(body) != 2 {
		return &CorruptError{Offset: start, Reason: "DRI segment malformed"}
	}
	d.restartInterval = int(body[0])<<8 | int(body[1])
	return nil
}

// parseSOS reads the scan header: component table selectors and the
// predictor selection value, which must be 1. Per T.81 B.2.3.
func (d *decoder) parseSOS(s *segmentScanner) error {
	start := int64(s.pos)
	body, err := s.readSegment()
	if err != nil {
		return err
	}
	if len(d.components) == 0 {
		return &CorruptError{Offset: start, Reason: "SOS before SOF3"}
	}
	if len(body) < 1 {
		return &CorruptError{Offset: start, Reason: "SOS segment too short"}
	}

	ns := int(body[0])
	if len(body) < 1+ns*2+3 {
		return &CorruptError{Offset: start, Reason: "SOS component list truncated"}
	}
	for i := 0; i < ns; i++ {
		cs := body[1+i*2]
		td := int(body[1+i*2+1] >> 4)

		var comp *component
		for _, c := range d.components {
			if c.id == cs {
				comp = c
				break
			}
		}
		if comp == nil {
			return &CorruptError{Offset: start, Reason: fmt.Sprintf("scan selects unknown component %d", cs)}
		}
		if td > 3 {
			return &CorruptError{Offset: start, Reason: fmt.Sprintf("table selector %d out of range", td)}
		}
		comp.tableID = td
	}

	predictor := int(body[1+ns*2])
	if predictor != 1 {
		return &CorruptError{Offset: start, Reason: fmt.Sprintf("predictor selection %d, only 1 supported", predictor)}
	}
	return nil
}

// decodeScan runs the entropy decoding loop: for every sample in row-major
// order, decode a Huffman-coded difference category, read the difference
// bits, and reconstruct the sample from its predictor modulo 2^P.
func (d *decoder) decodeScan(s *segmentScanner) error {
	br := newBitReader(d.data, s.pos)
	modulus := 1 << uint(d.precision)
	defaultPred := 1 << uint(d.precision-1)

	mcu := 0
	for row := 0; row < d.height; row++ {
		for col := 0; col < d.width; col++ {
			if d.restartInterval > 0 && mcu > 0 && mcu%d.restartInterval == 0 {
				if err := br.restart(); err != nil {
					return err
				}
				for _, comp := range d.components {
					comp.predReset = true
				}
			}
			mcu++

			for _, comp := range d.components {
				table := d.dcTables[comp.tableID]
				if table == nil {
					return &CorruptError{Offset: br.position(), Reason: fmt.Sprintf("no Huffman table %d defined", comp.tableID)}
				}

				ssss, err := table.decode(br)
				if err != nil {
					return err
				}
				diff, err := receiveExtend(br, int(ssss))
				if err != nil {
					return err
				}

				// Selection value 1: predict from the left neighbor; the
				// first sample of a row predicts from the sample above,
				// and the very first sample (or the first after a
				// restart) from 2^(P-1).
				var predicted int
				switch {
				case comp.predReset:
					predicted = defaultPred
					comp.predReset = false
				case col == 0 && row == 0:
					predicted = defaultPred
				case col == 0:
					predicted = comp.samples[(row-1)*d.width]
				default:
					predicted = comp.samples[row*d.width+col-1]
				}

				sample := predicted + diff
				if sample < 0 {
					sample += modulus
				} else if sample >= modulus {
					sample -= modulus
				}
				comp.samples[row*d.width+col] = sample
			}
		}
	}

	s.pos = br.endPos()
	return nil
}

// receiveExtend reads ssss difference bits and sign-extends them per T.81
// F.2.2.1. A category of 0 is a zero difference; 16 encodes 32768 with no
// extra bits (Annex G.1).
func receiveExtend(br *bitReader, ssss int) (int, error) {
	switch {
	case ssss == 0:
		return 0, nil
	case ssss == 16:
		return 32768, nil
	case ssss > 16:
		return 0, &CorruptError{Offset: br.position(), Reason: fmt.Sprintf("difference category %d out of range", ssss)}
	}

	v, err := br.readBits(ssss)
	if err != nil {
		return 0, err
	}
	if v < 1<<uint(ssss-1) {
		// Negative difference: the complement encoding.
		return v - (1 << uint(ssss)) + 1, nil
	}
	return v, nil
}

// frame packs decoded component samples into the interleaved output
// layout: one byte per sample for precision <= 8, two bytes little endian
// otherwise.
func (d *decoder) frame() *Frame {
	nc := len(d.components)
	bytesPer := 1
	if d.precision > 8 {
		bytesPer = 2
	}
	pix := make([]byte, d.width*d.height*nc*bytesPer)

	if bytesPer == 1 {
		for i := 0; i < d.width*d.height; i++ {
			for c, comp := range d.components {
				pix[i*nc+c] = byte(comp.samples[i])
			}
		}
	} else {
		off := 0
		for i := 0; i < d.width*d.height; i++ {
			for _, comp := range d.components {
				v := comp.samples[i]
				pix[off] = byte(v)
				pix[off+1] = byte(v >> 8)
				off += 2
			}
		}
	}

	return &Frame{
		Width:      d.width,
		Height:     d.height,
		Components: nc,
		Precision:  d.precision,
		Pix:        pix,
	}
}
