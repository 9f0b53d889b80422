package models

// Category is a fixed taxonomy node. Reference data — loaded once, never
// mutated after seeding.
type Category struct {
	ID            string   `json:"id" gorm:"primaryKey"`
	Name          string   `json:"name" gorm:"not null"`
	Icon          string   `json:"icon"`
	Subcategories []string `json:"subcategories" gorm:"serializer:json"`
}
