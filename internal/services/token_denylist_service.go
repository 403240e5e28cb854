package services

import (
	"time"

	"github.com/mokemoke0821/aoba-meal-app-sub000/internal/database"
)

const denylistPrefix = "denylist:"

// AddToDenylist revokes a token until its natural expiry.
func AddToDenylist(tokenString string, expiration time.Duration) error {
	if database.RedisClient == nil {
		// Running without redis: logout revocation is unavailable,
		// tokens simply expire.
		return nil
	}
	key := denylistPrefix + tokenString
	return database.RedisClient.Set(database.Ctx, key, 1, expiration).Err()
}

func IsDenylisted(tokenString string) (bool, error) {
	if database.RedisClient == nil {
		// Running without redis: logout revocation is unavailable,
		// tokens simply expire.
		return false, nil
	}
	key := denylistPrefix + tokenString
	val, err := database.RedisClient.Get(database.Ctx, key).Result()
	if err != nil {
		if err.Error() == "redis: nil" { // key does not exist
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
