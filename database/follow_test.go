package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warbler/domain"
	"warbler/errs"
)

func TestFollow(t *testing.T) {
	services := setupServices(t)
	user1 := signupTestUser(t, services.User, "tes1", "test1@test.com")
	user2 := signupTestUser(t, services.User, "tes2", "test2@test.com")

	isFollowing, err := services.Follow.IsFollowing(user1.ID, user2.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)

	isFollowedBy, err := services.Follow.IsFollowedBy(user2.ID, user1.ID)
	require.NoError(t, err)
	assert.False(t, isFollowedBy)

	require.NoError(t, services.Follow.Create(&domain.Follow{
		FollowerID: user1.ID,
		FollowedID: user2.ID,
	}))

	isFollowing, err = services.Follow.IsFollowing(user1.ID, user2.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)

	isFollowedBy, err = services.Follow.IsFollowedBy(user2.ID, user1.ID)
	require.NoError(t, err)
	assert.True(t, isFollowedBy)

	// The reverse direction stays untouched.
	isFollowing, err = services.Follow.IsFollowing(user2.ID, user1.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)

	followers, err := services.Follow.Followers(user2.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, user1.ID, followers[0].ID)

	followings, err := services.Follow.Followings(user1.ID)
	require.NoError(t, err)
	require.Len(t, followings, 1)
	assert.Equal(t, user2.ID, followings[0].ID)

	followers, err = services.Follow.Followers(user1.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	followings, err = services.Follow.Followings(user2.ID)
	require.NoError(t, err)
	assert.Empty(t, followings)
}

func TestFollowTwice(t *testing.T) {
	services := setupServices(t)
	user1 := signupTestUser(t, services.User, "tes1", "test1@test.com")
	user2 := signupTestUser(t, services.User, "tes2", "test2@test.com")

	follow := domain.Follow{FollowerID: user1.ID, FollowedID: user2.ID}
	require.NoError(t, services.Follow.Create(&follow))

	err := services.Follow.Create(&domain.Follow{FollowerID: user1.ID, FollowedID: user2.ID})
	require.Error(t, err)
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))

	followers, err := services.Follow.Followers(user2.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

func TestFollowMissingUser(t *testing.T) {
	services := setupServices(t)
	user1 := signupTestUser(t, services.User, "tes1", "test1@test.com")

	err := services.Follow.Create(&domain.Follow{FollowerID: user1.ID, FollowedID: 9999})
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestUnfollow(t *testing.T) {
	services := setupServices(t)
	user1 := signupTestUser(t, services.User, "tes1", "test1@test.com")
	user2 := signupTestUser(t, services.User, "tes2", "test2@test.com")

	require.NoError(t, services.Follow.Create(&domain.Follow{FollowerID: user1.ID, FollowedID: user2.ID}))
	require.NoError(t, services.Follow.Delete(&domain.Follow{FollowerID: user1.ID, FollowedID: user2.ID}))

	isFollowing, err := services.Follow.IsFollowing(user1.ID, user2.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)

	// Removing an edge that does not exist is a distinct failure.
	err = services.Follow.Delete(&domain.Follow{FollowerID: user1.ID, FollowedID: user2.ID})
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}
