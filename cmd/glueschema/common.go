package main

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/m-mizutani/glueschema/pkg/schema"
)

type arguments struct {
	DescriptorFile string
}

func (x arguments) generate() (*models.TableSchema, error) {
	raw, err := ioutil.ReadFile(x.DescriptorFile)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to read descriptor file: %s", x.DescriptorFile)
	}

	var desc models.RecordDescriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, errors.Wrapf(err, "Fail to parse descriptor file: %s", x.DescriptorFile)
	}

	table, err := schema.Generate(desc)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to generate schema of %s", desc.Name)
	}

	return table, nil
}
