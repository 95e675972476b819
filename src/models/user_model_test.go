package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterUnverified(t *testing.T) {
	user := User{
		Skills: []Skill{
			{Name: "Go", IsSkillVerified: true},
			{Name: "Rust", IsSkillVerified: false},
		},
		Certifications: []Certification{
			{Title: "Approved", IsVerified: true},
			{Title: "Pending", IsVerified: false},
		},
	}

	user.FilterUnverified()

	assert.Len(t, user.Skills, 1)
	assert.Equal(t, "Go", user.Skills[0].Name)
	assert.Len(t, user.Certifications, 1)
	assert.Equal(t, "Approved", user.Certifications[0].Title)
}

func TestAllCertificationsVerified(t *testing.T) {
	var user User
	assert.False(t, user.AllCertificationsVerified())

	user.Certifications = []Certification{{IsVerified: true}, {IsVerified: false}}
	assert.False(t, user.AllCertificationsVerified())

	user.Certifications[1].IsVerified = true
	assert.True(t, user.AllCertificationsVerified())
}

func TestPostToggleLike(t *testing.T) {
	post := Post{}
	user := post.Author

	liked := post.ToggleLike(user)
	assert.True(t, liked)
	assert.Len(t, post.Likes, 1)

	liked = post.ToggleLike(user)
	assert.False(t, liked)
	assert.Empty(t, post.Likes)
}
