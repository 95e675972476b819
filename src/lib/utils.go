package lib

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageResponse returns a map with a message key for API responses.
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}

// TokenTTL is how long issued tokens stay valid.
const TokenTTL = 72 * time.Hour

// GenerateJWT generates a signed token carrying the user id.
func GenerateJWT(userID primitive.ObjectID, secret string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"exp":    time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyJWT verifies and decodes a token, returning the user id it carries.
func VerifyJWT(tokenString, secret string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return primitive.NilObjectID, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	userIDHex, ok := claims["userId"].(string)
	if !ok {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	return primitive.ObjectIDFromHex(userIDHex)
}
