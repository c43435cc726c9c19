package exporters

import (
	"encoding/json"

	"ljexport/lib/archive"
)

type jsonCodec struct{}

func (jsonCodec) Marshal(e *archive.Export) ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Unmarshal(data []byte, e *archive.Export) error {
	return json.Unmarshal(data, e)
}
