package schema

// PrizeCategory groups prizes in the catalog
type PrizeCategory string

const (
	PrizeCategoryCertificate     PrizeCategory = "certificate"
	PrizeCategoryBeautyService   PrizeCategory = "beauty_service"
	PrizeCategoryTelegramPremium PrizeCategory = "telegram_premium"
)

// Prize represents the prize_catalog table - static reference data seeded by migrations
type Prize struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the display name of the prize
	Name string `gorm:"column:name;not null;uniqueIndex:idx_prize_catalog_name;type:text"`
	// Description is a short human description
	Description string `gorm:"column:description;not null;default:'';type:text"`
	// Value is the prize value in rubles
	Value int64 `gorm:"column:value;not null;default:0"`
	// Category groups prizes of the same kind
	Category PrizeCategory `gorm:"column:category;not null;type:text"`
	// ImageURL is an optional picture for the mini-app
	ImageURL string `gorm:"column:image_url;not null;default:'';type:text"`
}

// TableName specifies the table name for the Prize model
func (Prize) TableName() string {
	return "prize_catalog"
}
