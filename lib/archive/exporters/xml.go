package exporters

import (
	"encoding/xml"

	"ljexport/lib/archive"
)

type xmlCodec struct{}

func (xmlCodec) Marshal(e *archive.Export) ([]byte, error) {
	data, err := xml.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')
	return out, nil
}

func (xmlCodec) Unmarshal(data []byte, e *archive.Export) error {
	return xml.Unmarshal(data, e)
}
