package redis

import (
	"fmt"

	"github.com/quizhall/quizhall/internal/model"
)

// Key prefix for all quiz-related data
const keyPrefix = "quizhall"

// Key generation functions for each entity type

// identityKey returns the Redis key for an Identity
func identityKey(id model.IdentityID) string {
	return fmt.Sprintf("%s:identity:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> identity_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playerProfileKey returns the Redis key for a PlayerProfile
func playerProfileKey(id model.IdentityID) string {
	return fmt.Sprintf("%s:player_profile:%s", keyPrefix, id)
}

// adminProfileKey returns the Redis key for an AdminProfile
func adminProfileKey(id model.IdentityID) string {
	return fmt.Sprintf("%s:admin_profile:%s", keyPrefix, id)
}

// questionKey returns the Redis key for a Question
func questionKey(id model.QuestionID) string {
	return fmt.Sprintf("%s:question:%d", keyPrefix, id)
}

// questionSeqKey is the counter used to allocate ascending question ids
func questionSeqKey() string {
	return keyPrefix + ":seq:question"
}

// questionIndexKey is the sorted set of question ids, scored by id
func questionIndexKey() string {
	return keyPrefix + ":idx:questions"
}
