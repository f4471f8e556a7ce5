package usecase

import "area1337-backend/internal/domain"

// SiteConfig carries the configurable parts of the site metadata
type SiteConfig struct {
	Title       string
	Description string
	URL         string
}

var platforms = []string{"Windows", "macOS", "Linux"}

var navLinks = []domain.NavLink{
	{Label: "Products", Href: "/products"},
	{Label: "Pricing", Href: "/pricing"},
	{Label: "Blog", Href: "/blog"},
	{Label: "About", Href: "/about"},
	{Label: "Contact", Href: "/contact"},
}

var products = []domain.Product{
	{
		ID:          "v1337-registry",
		Name:        "V1337 Registry",
		Tagline:     "Encrypted Compliance Evidence Registry",
		Description: "Local-first encrypted compliance evidence registry for UK tax & international regulatory compliance. Manage document vaults, audit trails, risk scoring, and evidence exports with zero external dependencies.",
		Platforms:   platforms,
		Status:      domain.ProductAvailable,
		Href:        "/products",
		Editions: map[string]domain.ProductEdition{
			"business": {
				Name:  "Business",
				Price: "Contact Sales",
				Features: []string{
					"AES-256-CBC encrypted vaults",
					"Full-text search (FTS5)",
					"Immutable audit trail",
					"Compliance risk scoring",
					"Retention policy management",
					"7 jurisdiction templates",
					"AI-powered analysis (local + remote)",
					"Evidence relationship graph",
					"Email evidence capture",
					"Prepare for Audit wizard",
					"CSV & encrypted export packages",
					"Application logging & diagnostics",
				},
			},
			"enterprise": {
				Name:  "Enterprise",
				Price: "Contact Sales",
				Features: []string{
					"Everything in Business, plus:",
					"Team / multi-user server mode",
					"TLS-encrypted server communication",
					"Mutual TLS (mTLS) support",
					"Centralized vault management",
					"Real-time collaboration features",
					"Document locking & sync",
					"Server push notifications",
					"Role-based access control",
					"TOTP two-factor authentication",
					"Dedicated support & SLA",
					"Custom integration assistance",
				},
			},
		},
	},
}

type catalogUsecase struct {
	site SiteConfig
}

func NewCatalogUsecase(site SiteConfig) domain.CatalogUsecase {
	return &catalogUsecase{site: site}
}

func (uc *catalogUsecase) Products() []domain.Product {
	return products
}

func (uc *catalogUsecase) Site() domain.SiteInfo {
	return domain.SiteInfo{
		Title:        uc.site.Title,
		Description:  uc.site.Description,
		URL:          uc.site.URL,
		CompanyName:  "Area 1337",
		LegalName:    "Mecanik Dev Ltd",
		ContactEmail: "contact@area1337.com",
		SupportEmail: "support@area1337.com",
		NavLinks:     navLinks,
		Platforms:    platforms,
	}
}
