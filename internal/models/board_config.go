package models

import "gorm.io/datatypes"

// BoardConfigID is the fixed id of the singleton board configuration
const BoardConfigID = "main_board_config"

// ColumnNames maps each status column to its display name
type ColumnNames map[TaskStatus]string

// DefaultColumnNames returns a fresh copy of the default column titles
func DefaultColumnNames() ColumnNames {
	names := make(ColumnNames, len(AllTaskStatuses))
	for _, s := range AllTaskStatuses {
		names[s] = string(s)
	}
	return names
}

// Clone copies the map
func (c ColumnNames) Clone() ColumnNames {
	out := make(ColumnNames, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

type BoardConfig struct {
	ID          string                          `gorm:"primaryKey;size:64" json:"id"`
	ColumnNames datatypes.JSONType[ColumnNames] `json:"column_names"`
}

// TableName keeps the collection name used by the schema
func (BoardConfig) TableName() string {
	return "config"
}

// NewBoardConfig builds the singleton record holding names
func NewBoardConfig(names ColumnNames) *BoardConfig {
	return &BoardConfig{
		ID:          BoardConfigID,
		ColumnNames: datatypes.NewJSONType(names),
	}
}
