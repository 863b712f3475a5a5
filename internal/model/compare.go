package model

// MaxCompareItems bounds the comparison list.
const MaxCompareItems = 4

type CompareItem struct {
	ID       string `json:"id"`
	Category Slot   `json:"category"`
	Record   Record `json:"record"`
}
