package user

import "github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"

// CreateUserRequest 利用者登録リクエスト
type CreateUserRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	Group     string `json:"group" binding:"required,oneof=A型 B型 職員 体験"`
	Price     *int   `json:"price" binding:"omitempty,min=0"`
	TrialUser bool   `json:"trialUser"`
	Notes     string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateUserRequest 利用者更新リクエスト (partial)
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Group         *string `json:"group,omitempty" binding:"omitempty,oneof=A型 B型 職員 体験"`
	Price         *int    `json:"price,omitempty" binding:"omitempty,min=0"`
	IsActive      *bool   `json:"isActive,omitempty"`
	TrialUser     *bool   `json:"trialUser,omitempty"`
	Notes         *string `json:"notes,omitempty" binding:"omitempty,max=500"`
	DisplayNumber *int    `json:"displayNumber,omitempty" binding:"omitempty,min=1"`
}

// BulkActionRequest 一括操作リクエスト
type BulkActionRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Action string   `json:"action" binding:"required,oneof=activate deactivate delete change-group"`
	Group  string   `json:"group"`
}

// UserListResponse 利用者一覧レスポンス
type UserListResponse struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
}

// ImportResponse CSV取込結果
type ImportResponse struct {
	Imported int      `json:"imported"`
	Warnings []string `json:"warnings"`
}
