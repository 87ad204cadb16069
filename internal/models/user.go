package models

import (
	"time"
)

// User represents an investor account in the system
type User struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	FullName      string    `bson:"fullName" json:"fullName"`
	Email         string    `bson:"email" json:"email"`
	Contact       string    `bson:"contact" json:"contact"`
	District      string    `bson:"district" json:"district"`
	Balance       int64     `bson:"balance" json:"balance"`
	JoinDate      time.Time `bson:"joinDate,omitempty" json:"joinDate"`
	ReferralCode  string    `bson:"referralCode" json:"referralCode"`
	ReferredBy    *string   `bson:"referredBy" json:"referredBy"`
	ReferralCount int       `bson:"referralCount" json:"referralCount"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	IsAdmin       bool      `bson:"isAdmin" json:"isAdmin"`
}

// DisplayName returns the name shown on the profile page.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		return u.Email
	}
	return "Investment User"
}

// Role returns the token role for the user
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// TeamMember is a user that registered with another user's referral code.
// Stored under the referrer, keyed by the member's user ID.
type TeamMember struct {
	ID       string    `bson:"_id,omitempty" json:"-"`
	OwnerID  string    `bson:"ownerId" json:"-"`
	MemberID string    `bson:"memberId" json:"memberId"`
	FullName string    `bson:"fullName" json:"fullName"`
	JoinDate time.Time `bson:"joinDate,omitempty" json:"joinDate"`
}
