package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type UserType string

const (
	UserTypeRegular UserType = "regular"
	UserTypeHead    UserType = "head"
)

// ReviewStatus is the moderation lifecycle shared by skills and certifications.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

type User struct {
	Id               primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name             string               `json:"name" bson:"name"`
	Username         string               `json:"username" bson:"username"`
	Email            string               `json:"email" bson:"email"`
	Password         string               `json:"password,omitempty" bson:"password"`
	Role             Role                 `json:"role" bson:"role"`
	UserType         UserType             `json:"userType,omitempty" bson:"userType,omitempty"`
	ProfilePicture   string               `json:"profilePicture" bson:"profilePicture"`
	BannerImg        string               `json:"bannerImg" bson:"bannerImg"`
	Headline         string               `json:"headline" bson:"headline"`
	Location         string               `json:"location" bson:"location"`
	About            string               `json:"about" bson:"about"`
	Skills           []Skill              `json:"skills" bson:"skills"`
	Experience       []Experience         `json:"experience" bson:"experience"`
	Education        []Education          `json:"education" bson:"education"`
	Certifications   []Certification      `json:"certifications" bson:"certifications"`
	IsVerified       bool                 `json:"isVerified" bson:"isVerified"`
	IsSkillsVerified bool                 `json:"isSkillsVerified" bson:"isSkillsVerified"`
	Connections      []primitive.ObjectID `json:"connections" bson:"connections"`
	CreatedAt        time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type Skill struct {
	Id              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Description     string             `json:"description" bson:"description"`
	Image           string             `json:"image" bson:"image"`
	IsSkillVerified bool               `json:"isSkillVerified" bson:"isSkillVerified"`
	SkillStatus     ReviewStatus       `json:"skillStatus" bson:"skillStatus"`
}

type Certification struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Institute   string             `json:"institute" bson:"institute"`
	StartDate   time.Time          `json:"startDate" bson:"startDate"`
	EndDate     time.Time          `json:"endDate" bson:"endDate"`
	Description string             `json:"description" bson:"description"`
	File        string             `json:"file" bson:"file"`
	Status      ReviewStatus       `json:"status" bson:"status"`
	IsVerified  bool               `json:"isVerified" bson:"isVerified"`
}

type Experience struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Company     string             `json:"company" bson:"company"`
	StartDate   time.Time          `json:"startDate" bson:"startDate"`
	EndDate     time.Time          `json:"endDate" bson:"endDate"`
	Description string             `json:"description" bson:"description"`
}

type Education struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	School       string             `json:"school" bson:"school"`
	FieldOfStudy string             `json:"fieldOfStudy" bson:"fieldOfStudy"`
	StartYear    int                `json:"startYear" bson:"startYear"`
	EndYear      int                `json:"endYear" bson:"endYear"`
}

// UserDto is the trimmed shape embedded in suggestion lists, populated
// request senders and chat participants.
type UserDto struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Username       string             `json:"username" bson:"username"`
	ProfilePicture string             `json:"profilePicture" bson:"profilePicture"`
	Headline       string             `json:"headline,omitempty" bson:"headline,omitempty"`
}

// Dto returns the trimmed public shape of a user.
func (u *User) Dto() UserDto {
	return UserDto{
		ID:             u.Id,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Headline:       u.Headline,
	}
}

// IsConnectedTo reports whether other is in the user's connections list.
func (u *User) IsConnectedTo(other primitive.ObjectID) bool {
	for _, conn := range u.Connections {
		if conn == other {
			return true
		}
	}
	return false
}

// Sanitize strips fields that must never leave the server.
func (u *User) Sanitize() {
	u.Password = ""
}

// FilterUnverified removes skills and certifications that have not been
// approved yet. Applied when somebody other than the owner views a profile.
func (u *User) FilterUnverified() {
	verifiedSkills := make([]Skill, 0, len(u.Skills))
	for _, s := range u.Skills {
		if s.IsSkillVerified {
			verifiedSkills = append(verifiedSkills, s)
		}
	}
	u.Skills = verifiedSkills

	verifiedCerts := make([]Certification, 0, len(u.Certifications))
	for _, c := range u.Certifications {
		if c.IsVerified {
			verifiedCerts = append(verifiedCerts, c)
		}
	}
	u.Certifications = verifiedCerts
}

// AllCertificationsVerified reports whether every certification on the user
// has been approved. An empty list counts as not verified.
func (u *User) AllCertificationsVerified() bool {
	if len(u.Certifications) == 0 {
		return false
	}
	for _, c := range u.Certifications {
		if !c.IsVerified {
			return false
		}
	}
	return true
}
