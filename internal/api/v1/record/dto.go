package record

import "github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"

// PlaceOrderRequest 注文登録リクエスト
type PlaceOrderRequest struct {
	UserID string `json:"userId" binding:"required"`
	Date   string `json:"date"`
	Notes  string `json:"notes"`
}

// RateRequest 喫食率登録リクエスト
type RateRequest struct {
	Ratio int    `json:"ratio" binding:"required,min=1,max=10"`
	Notes string `json:"notes"`
}

// RecordListResponse 記録一覧レスポンス
type RecordListResponse struct {
	Records []models.MealRecord `json:"records"`
	Total   int                 `json:"total"`
}
