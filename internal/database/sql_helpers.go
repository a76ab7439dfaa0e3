package database

import "database/sql"

// nullableString maps "" to NULL so absent text (completion notes, goal
// notes) never round-trips as an empty string.
func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

// toNullableArg passes an optional field (parent IDs, timestamps, notes) as a
// query argument: a nil pointer becomes SQL NULL, anything else the
// pointed-to value.
func toNullableArg[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
