package spec

import (
	"math/rand"
)

// ColumnType is one tag of the closed column-type catalog.
type ColumnType string

const (
	TypeTinyInt   ColumnType = "TINYINT"
	TypeSmallInt  ColumnType = "SMALLINT"
	TypeInt       ColumnType = "INT"
	TypeBigInt    ColumnType = "BIGINT"
	TypeFloat     ColumnType = "FLOAT"
	TypeDouble    ColumnType = "DOUBLE"
	TypeDecimal   ColumnType = "DECIMAL"
	TypeVarchar   ColumnType = "VARCHAR"
	TypeText      ColumnType = "TEXT"
	TypeDate      ColumnType = "DATE"
	TypeTimestamp ColumnType = "TIMESTAMP"
)

// AllTypes lists the catalog in its canonical order.
var AllTypes = []ColumnType{
	TypeTinyInt, TypeSmallInt, TypeInt, TypeBigInt,
	TypeFloat, TypeDouble, TypeDecimal,
	TypeVarchar, TypeText,
	TypeDate, TypeTimestamp,
}

// RandomSchema draws one column type per column, uniformly from the catalog.
// The schema is resolved once per run and reused for every row of every
// file.
func RandomSchema(columns int, rng *rand.Rand) []ColumnType {
	schema := make([]ColumnType, columns)
	for i := range schema {
		schema[i] = AllTypes[rng.Intn(len(AllTypes))]
	}
	return schema
}
