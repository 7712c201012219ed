package models

// Setting is a row of the settings key/value table.
type Setting struct {
	Key      string `db:"key"`
	Value    string `db:"value"`
	Category string `db:"category"`
	AuditFields
}
