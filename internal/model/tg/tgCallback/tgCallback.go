package tgCallback

// Callback buttons uniques
const (
	RefreshAll string = "refresh_all"
	Export     string = "export"
	History    string = "history" // data carries the symbol
)
