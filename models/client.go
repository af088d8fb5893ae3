package models

import "time"

const (
	LoyaltyStandard = "Standard"
	LoyaltyVIP      = "VIP"
	LoyaltyGold     = "Gold"
)

type Client struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LastName    string    `gorm:"column:last_name;size:100;not null" json:"last_name"`
	FirstName   string    `gorm:"column:first_name;size:100;not null" json:"first_name"`
	Phone       string    `gorm:"column:phone;size:30" json:"phone"`
	Email       string    `gorm:"column:email;uniqueIndex;size:150;not null" json:"email"`
	Address     string    `gorm:"column:address;size:255" json:"address"`
	LoyaltyTier string    `gorm:"column:loyalty_tier;size:20;not null;default:Standard" json:"loyalty_tier"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c Client) FullName() string {
	return c.LastName + " " + c.FirstName
}

func IsLoyaltyTier(t string) bool {
	return t == LoyaltyStandard || t == LoyaltyVIP || t == LoyaltyGold
}
