package spec

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

func describeType(t ColumnType, c *ConstraintSet) string {
	switch t {
	case TypeDecimal:
		return fmt.Sprintf("precision %d, scale %d", c.DecimalPrecision, c.DecimalScale)
	case TypeVarchar:
		return fmt.Sprintf("length %d..%d", c.VarcharMin, c.VarcharMax)
	case TypeText:
		return fmt.Sprintf("length %d..%d", c.TextMin, c.TextMax)
	case TypeDate:
		return fmt.Sprintf("last %d days, %s", c.DaysAgo, c.DateFormat)
	case TypeTimestamp:
		return fmt.Sprintf("last %d days, %s", c.DaysAgo, c.TimestampFormat)
	}
	return "-"
}

// FormatSchemaTable renders a human-readable table for the resolved schema.
func FormatSchemaTable(schema []ColumnType, c *ConstraintSet) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Name\tType\tConstraints")
	for i, t := range schema {
		fmt.Fprintf(w, "field%d\t%s\t%s\n", i+1, t, describeType(t, c))
	}

	_ = w.Flush()
	return buf.String()
}
