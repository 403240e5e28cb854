package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/database"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/models"
	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/utils"
)

var ErrAccountAlreadyExists = errors.New("account with this username already exists")
var ErrAccountNotFound = errors.New("account not found")

func RegisterAccount(username, password string) (*models.Account, error) {
	var existing models.Account
	result := database.DB.Where("username = ?", username).First(&existing)
	if result.Error == nil {
		return nil, ErrAccountAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username: username,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := database.DB.Create(account).Error; err != nil {
		return nil, err
	}

	return account, nil
}

func LoginAccount(username, password string) (string, *models.Account, error) {
	var account models.Account
	if err := database.DB.Where("username = ?", username).First(&account).Error; err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(account.ID, account.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &account, nil
}

func FindAccountByID(id uint) (models.Account, error) {
	var account models.Account
	if err := database.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, ErrAccountNotFound
		}
		return account, err
	}
	return account, nil
}
