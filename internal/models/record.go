package models

// Record is one reconstructed transaction: canonical output key → cleaned value.
type Record map[string]string

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// ProfileID identifies a supported bank layout profile.
type ProfileID string

const (
	ProfileHDFC      ProfileID = "hdfc"
	ProfileUnionBank ProfileID = "unionbank"
)

// Statement bundles extraction output with its profile metadata,
// ready for serialization to CSV, JSON or XLSX.
type Statement struct {
	Bank    string    `json:"bank"`
	Profile ProfileID `json:"profile"`
	Columns []string  `json:"columns"` // canonical output keys in declaration order
	Records []Record  `json:"records"`
}
