package yaml

import (
	"os"

	"rpltopo/pkg/api"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Parser interface {
	Parse(file string) (*api.Config, error)
}

type YamlParser struct{}

func NewParser() Parser {
	return &YamlParser{}
}

func (p *YamlParser) Parse(file string) (*api.Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", file)
	}

	var config api.Config
	if err = yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", file)
	}
	return &config, nil
}
