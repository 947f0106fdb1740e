package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetTypeStock     AssetType = "stock"
	AssetTypeETF       AssetType = "etf"
	AssetTypeCrypto    AssetType = "crypto"
	AssetTypeBond      AssetType = "bond"
	AssetTypeCommodity AssetType = "commodity"
)

var AssetTypes = []AssetType{AssetTypeStock, AssetTypeETF, AssetTypeCrypto, AssetTypeBond, AssetTypeCommodity}

func (t AssetType) Valid() bool {
	for _, at := range AssetTypes {
		if t == at {
			return true
		}
	}
	return false
}

type Asset struct {
	ID           int64
	Symbol       string
	Name         string
	Type         AssetType
	Platform     string
	CurrentPrice decimal.Decimal // EUR
	LastUpdated  time.Time
}

type AssetInput struct {
	Symbol   string
	Name     string
	Type     AssetType
	Platform string
}

// AssetSuggestion is an instrument offered for quick selection or returned by a search.
type AssetSuggestion struct {
	Symbol string
	Name   string
	Type   AssetType
}
