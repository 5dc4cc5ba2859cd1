package models

import "gorm.io/gorm"

// All lists every model in dependency order, parents before children.
func All() []any {
	return []any{
		&MediaAsset{},
		&MediaUsage{},
		&Category{},
		&CategoryAttribute{},
		&Product{},
		&ProductAttributeValue{},
		&Collection{},
		&ProductCollection{},
		&NavbarLink{},
		&CarouselSlide{},
		&FooterLink{},
		&SocialIcon{},
		&DashboardSection{},
		&RecentlyVisitedProduct{},
	}
}

// AutoMigrate creates or updates the schema for every model. Production uses
// the SQL migrations; this path serves local development and the sqlite test
// databases.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(All()...)
}
