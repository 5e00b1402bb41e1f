package catalog

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/glueschema/pkg/models"
	"github.com/pkg/errors"
)

// glueTypeOf resolves the registered glue type of one partition key. Date
// segments have fixed integer types, index keys inherit the type of the
// emitted column.
func glueTypeOf(table *models.TableSchema, p models.PartitionKey) (string, error) {
	switch p.Kind {
	case models.PartitionKeyYear:
		return "smallint", nil
	case models.PartitionKeyMonth, models.PartitionKeyDay:
		return "tinyint", nil
	default:
		for _, col := range table.Columns {
			if col.Name == p.Source {
				return col.GlueType, nil
			}
		}
		return "", errors.Errorf("partition key '%s' has no emitted column", p.Source)
	}
}

// CreateTableQuery builds DDL registering the table of a generated schema.
// Data files are parquet objects under location.
func CreateTableQuery(dbName string, table *models.TableSchema, location string) (string, error) {
	var columns []string
	for _, col := range table.Columns {
		columns = append(columns, fmt.Sprintf("`%s` %s", col.Name, col.GlueType))
	}

	var partitions []string
	for _, p := range table.PartitionKeys {
		glueType, err := glueTypeOf(table, p)
		if err != nil {
			return "", err
		}
		partitions = append(partitions, fmt.Sprintf("`%s` %s", p.Name, glueType))
	}

	sql := fmt.Sprintf("CREATE EXTERNAL TABLE IF NOT EXISTS %s.%s (%s)",
		dbName, table.TableName, strings.Join(columns, ", "))
	if len(partitions) > 0 {
		sql += fmt.Sprintf(" PARTITIONED BY (%s)", strings.Join(partitions, ", "))
	}
	sql += " STORED AS PARQUET"
	sql += fmt.Sprintf(" LOCATION '%s'", location)
	sql += " TBLPROPERTIES ('parquet.compression'='SNAPPY')"

	return sql, nil
}

// AddPartitionQuery builds DDL registering one partition of the table.
func AddPartitionQuery(dbName, tableName string, values []models.PartitionValue, location string) (string, error) {
	if len(values) == 0 {
		return "", errors.New("no partition values")
	}

	var keys []string
	for _, v := range values {
		keys = append(keys, fmt.Sprintf("%s='%s'", v.Name, v.Value))
	}

	sql := fmt.Sprintf("ALTER TABLE %s.%s ADD IF NOT EXISTS PARTITION (%s) LOCATION '%s'",
		dbName, tableName, strings.Join(keys, ", "), location)

	return sql, nil
}
