package schema

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
)

type glueColumn struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Comment string `json:"comment"`
	// Mapping is a jq expression extracting the partition value from a
	// serialized record. Only partition keys carry it.
	Mapping string `json:"mapping,omitempty"`
}

type glueSchema struct {
	Name          string       `json:"name"`
	PartitionKeys []glueColumn `json:"partition_keys"`
	Columns       []glueColumn `json:"columns"`
}

// BuildGlueSchema renders the flat catalog schema of one record type as
// pretty-printed JSON. Column order equals declaration order with date
// index expansion inline; partition keys are an annotation on top of the
// column list, not a reordering of it. Output is byte-stable for identical
// input.
func BuildGlueSchema(tableName string, columns []models.ColumnSpec, partitions models.PartitionKeySpec) (string, error) {
	out := glueSchema{
		Name:          tableName,
		PartitionKeys: []glueColumn{},
		Columns:       []glueColumn{},
	}

	glueTypes := map[string]string{}
	for _, col := range columns {
		out.Columns = append(out.Columns, glueColumn{
			Name:    col.Name,
			Type:    col.GlueType,
			Comment: col.Comment,
		})
		glueTypes[col.Name] = col.GlueType
	}

	for _, p := range partitions {
		col := glueColumn{
			Name:    p.Name,
			Comment: fmt.Sprintf("Extracted from '%s'", p.Source),
			Mapping: partitionMapping(p),
		}

		switch p.Kind {
		case models.PartitionKeyYear:
			col.Type = "smallint"
		case models.PartitionKeyMonth, models.PartitionKeyDay:
			col.Type = "tinyint"
		default:
			glueType, ok := glueTypes[p.Source]
			if !ok {
				return "", errors.Errorf("partition key '%s' has no emitted column", p.Source)
			}
			col.Type = glueType
		}

		if _, err := gojq.Parse(col.Mapping); err != nil {
			return "", errors.Wrapf(err, "invalid mapping of partition key '%s'", p.Name)
		}

		out.PartitionKeys = append(out.PartitionKeys, col)
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "Fail to marshal glue schema")
	}

	return string(raw), nil
}

// partitionMapping builds the metadata extraction query of one partition
// key. Date segments split the RFC3339 text of the source field, index
// fields pass through as-is.
func partitionMapping(p models.PartitionKey) string {
	switch p.Kind {
	case models.PartitionKeyYear:
		return fmt.Sprintf(`(.%s|split("-")[0])`, p.Source)
	case models.PartitionKeyMonth:
		return fmt.Sprintf(`(.%s|split("-")[1])`, p.Source)
	case models.PartitionKeyDay:
		return fmt.Sprintf(`(.%s|split("-")[2]|split("T")[0])`, p.Source)
	default:
		return "." + p.Source
	}
}
