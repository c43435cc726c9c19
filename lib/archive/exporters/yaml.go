package exporters

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"ljexport/lib/archive"
)

type yamlCodec struct{}

func (yamlCodec) Marshal(e *archive.Export) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err := enc.Encode(e)
	if err != nil {
		return nil, err
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(data []byte, e *archive.Export) error {
	return yaml.Unmarshal(data, e)
}
