package coinGeckoModel

type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SimplePrice is the /simple/price payload: coin id -> vs currency -> price.
type SimplePrice map[string]map[string]float64
