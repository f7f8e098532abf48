package constants

import "time"

const (
	CacheKeyProductList  = "shop:products:list"
	CacheKeyCatalogSetup = "shop:catalog:setup"
)

const (
	CacheExpireProductList  = 1 * time.Hour
	CacheExpireCatalogSetup = 1 * time.Hour
)
