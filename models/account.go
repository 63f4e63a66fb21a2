package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleBuyer  = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Actor is the authenticated identity carried through a request. The role is
// resolved once by the auth middleware and never re-derived downstream.
type Actor struct {
	ID   primitive.ObjectID
	Role string
	Name string
}

func (a Actor) IsBuyer() bool  { return a.Role == RoleBuyer }
func (a Actor) IsSeller() bool { return a.Role == RoleSeller }
func (a Actor) IsAdmin() bool  { return a.Role == RoleAdmin }

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Seller struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	ShopName  string             `bson:"shopName" json:"shopName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
