package types

// 分类与配置的操作类型，对应 CatalogSetupRequest.Type
const (
	CatalogTypeCreateCategory = "create_category"
	CatalogTypeDeleteCategory = "delete_category"
	CatalogTypeUpdateConfig   = "update_config"
)

type CatalogSetupRequest struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	ID    uint   `json:"id"`
	Value string `json:"value"`
}

type CategoryInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AffiliateLink struct {
	Value string `json:"value"`
}

type CatalogSetupResponse struct {
	Categories    []CategoryInfo `json:"categories"`
	AffiliateLink AffiliateLink  `json:"affiliateLink"`
}
