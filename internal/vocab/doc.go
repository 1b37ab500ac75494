// Package vocab loads mCIDE controlled-vocabulary definitions.
//
// The vocabulary directory is keyed by table name, with one CSV file per
// categorical column:
//
//	mcide/
//	  vitals/
//	    vital_category.csv
//	  microbiology_culture/
//	    organism_category.csv
//	    organism_group.csv
//
// File names tolerate the legacy clif_ prefix and a redundant table-name
// prefix (clif_vitals_vital_category.csv resolves to vital_category).
//
// Row order in a CSV file is the authoring order of the category set and is
// preserved verbatim; duplicate labels keep their first occurrence with a
// warning. Columns are consumed by header: the first column is the category
// label, a column whose header mentions "description" supplies the
// description, up to three "example" columns supply representative source
// values, and a non-leading "group" column supplies the group label.
package vocab
