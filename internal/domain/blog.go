package domain

import "time"

type Blog struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"` // HTML body
	ImageURL     string    `json:"imageUrl"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categories_name"`
	CreatedAt    time.Time `json:"createdAt"`
}
