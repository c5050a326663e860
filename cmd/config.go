package cmd

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	CustomerDirectoryURL string
	ProductCatalogURL    string
	PriceFilePath        string
	PriceCronSpec        string
}
