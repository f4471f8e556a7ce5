package domain

type ProductEdition struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

type ProductStatus string

const (
	ProductAvailable  ProductStatus = "available"
	ProductComingSoon ProductStatus = "coming-soon"
)

type Product struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Tagline     string                    `json:"tagline"`
	Description string                    `json:"description"`
	Platforms   []string                  `json:"platforms"`
	Status      ProductStatus             `json:"status"`
	Href        string                    `json:"href"`
	Editions    map[string]ProductEdition `json:"editions"`
}

type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type SiteInfo struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	CompanyName  string    `json:"companyName"`
	LegalName    string    `json:"legalName"`
	ContactEmail string    `json:"contactEmail"`
	SupportEmail string    `json:"supportEmail"`
	NavLinks     []NavLink `json:"navLinks"`
	Platforms    []string  `json:"platforms"`
}

type CatalogUsecase interface {
	Products() []Product
	Site() SiteInfo
}
