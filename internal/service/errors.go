package service

import "errors"

var (
	ErrNotFound               = errors.New("error not found")
	ErrAssetNotFound          = errors.New("error asset not found")
	ErrTransactionNotFound    = errors.New("error transaction not found")
	ErrInvalidSymbol          = errors.New("error invalid symbol")
	ErrInvalidAssetType       = errors.New("error invalid asset type")
	ErrInvalidTransactionType = errors.New("error invalid transaction type")
	ErrNonPositiveAmount      = errors.New("error amount must be positive")
	ErrNonPositivePrice       = errors.New("error price must be positive")
	ErrNegativeFees           = errors.New("error fees must not be negative")
	ErrPriceNotResolved       = errors.New("error price not resolved")
	ErrCloudStorageDisabled   = errors.New("error cloud storage is not configured")
)
