package types

type ProductCategory struct {
	Name string `json:"name"`
}

type ProductInfo struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	Price      float64          `json:"price"`
	Image      string           `json:"image"`
	Rating     int              `json:"rating"`
	URL        string           `json:"url"`
	CategoryID *uint            `json:"categoryId"`
	Category   *ProductCategory `json:"category"`
}

type ProductCreateResponse struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}

type ProductDeleteResponse struct {
	Message string `json:"message"`
}
