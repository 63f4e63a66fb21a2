package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"shopverse/database"
	"shopverse/models"
)

// AuthController handles register/login for the three account kinds. Each
// role has its own collection; the issued token carries the resolved role so
// nothing downstream has to guess it.
type AuthController struct {
	secret []byte
}

func NewAuthController(secret []byte) *AuthController {
	return &AuthController{secret: secret}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	ShopName string `json:"shopName"`
}

func (ctl *AuthController) Register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleBuyer
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection := collectionForRole(role)
	if collection == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	err := collection.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	id := primitive.NewObjectID()
	now := time.Now()

	var account interface{}
	switch role {
	case models.RoleBuyer:
		account = models.User{ID: id, Name: input.Name, Email: input.Email, Password: string(hashed), CreatedAt: now}
	case models.RoleSeller:
		if input.ShopName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shopName is required for sellers"})
			return
		}
		account = models.Seller{ID: id, Name: input.Name, ShopName: input.ShopName, Email: input.Email, Password: string(hashed), Status: "active", CreatedAt: now}
	case models.RoleAdmin:
		account = models.Admin{ID: id, Name: input.Name, Email: input.Email, Password: string(hashed), CreatedAt: now}
	}

	if _, err := collection.InsertOne(ctx, account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	token, err := ctl.signToken(id, role, input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"account": gin.H{"id": id.Hex(), "name": input.Name, "email": input.Email, "role": role},
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleBuyer
	}
	collection := collectionForRole(role)
	if collection == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var account struct {
		ID       primitive.ObjectID `bson:"_id"`
		Name     string             `bson:"name"`
		Email    string             `bson:"email"`
		Password string             `bson:"password"`
	}
	err := collection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&account)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := ctl.signToken(account.ID, role, account.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": gin.H{"id": account.ID.Hex(), "name": account.Name, "email": account.Email, "role": role},
		"token":   token,
	})
}

func (ctl *AuthController) signToken(id primitive.ObjectID, role, name string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   id.Hex(),
		"role": role,
		"name": name,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(ctl.secret)
}

func collectionForRole(role string) *mongo.Collection {
	switch role {
	case models.RoleBuyer:
		return database.UserCollection
	case models.RoleSeller:
		return database.SellerCollection
	case models.RoleAdmin:
		return database.AdminCollection
	}
	return nil
}
