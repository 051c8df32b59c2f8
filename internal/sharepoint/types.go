// Package sharepoint declares the request models for SharePoint list and
// file operations. No tool consumes them yet; they carry structural
// validation only.
package sharepoint

import "fmt"

// Location identifies where a file lives.
type Location struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// File pairs a location with the raw file details returned by Graph.
type File struct {
	Location Location       `json:"location"`
	File     map[string]any `json:"file"`
}

// FileList is a collection of files.
type FileList struct {
	Files []File `json:"files"`
}

// ColumnType enumerates the column types a SharePoint list supports.
type ColumnType string

const (
	ColumnTypeText     ColumnType = "text"
	ColumnTypeBoolean  ColumnType = "boolean"
	ColumnTypeDateTime ColumnType = "dateTime"
	ColumnTypeNumber   ColumnType = "number"
)

// validColumnTypes is the allowlist of accepted ColumnType values.
var validColumnTypes = map[ColumnType]bool{
	ColumnTypeText:     true,
	ColumnTypeBoolean:  true,
	ColumnTypeDateTime: true,
	ColumnTypeNumber:   true,
}

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	return validColumnTypes[t]
}

// ListColumn describes one column of a SharePoint list.
type ListColumn struct {
	ColumnName string     `json:"column_name"`
	ColumnType ColumnType `json:"column_type"`
}

// Validate checks that the column has a name and a known type.
func (c ListColumn) Validate() error {
	if c.ColumnName == "" {
		return fmt.Errorf("the column_name must be provided")
	}
	if !c.ColumnType.Valid() {
		return fmt.Errorf("invalid column type %q: must be text, boolean, dateTime, or number", string(c.ColumnType))
	}
	return nil
}

// SharepointList describes a SharePoint list to be created.
type SharepointList struct {
	ListName string       `json:"list_name"`
	Columns  []ListColumn `json:"columns"`
}

// Validate checks that the list has a name and that every column is valid.
func (l SharepointList) Validate() error {
	if l.ListName == "" {
		return fmt.Errorf("the list_name must be provided")
	}
	for i, col := range l.Columns {
		if err := col.Validate(); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}
