package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TeacherSessionKey returns the cache key holding a teacher's active token ID.
func (r *CacheKeyStruct) TeacherSessionKey(userID string) string {
	return fmt.Sprintf("session:teacher:%s", userID)
}

// TeacherKey returns the cache key for a teacher record fetched from the backend.
func (r *CacheKeyStruct) TeacherKey(userID string) string {
	return fmt.Sprintf("teacher:%s", userID)
}

// AdminClassesKey returns the cache key for the class-session snapshot visible to an admin.
func (r *CacheKeyStruct) AdminClassesKey(adminUserID string) string {
	return fmt.Sprintf("classes:admin:%s", adminUserID)
}

var CacheKey = NewCacheKeyStruct()
