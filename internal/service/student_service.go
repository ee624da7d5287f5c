package service

import (
	"context"
)

// StudentBackend is the part of the backend API that deals with new-student signups.
type StudentBackend interface {
	HideNewStudent(ctx context.Context, adminUserID, newStudentID string) error
}

// StudentService handles the admin's new-student queue.
type StudentService struct {
	backend StudentBackend
}

// NewStudentService creates a new StudentService.
func NewStudentService(backend StudentBackend) *StudentService {
	return &StudentService{backend: backend}
}

// HideNewStudent removes a signup from the admin's queue.
func (s *StudentService) HideNewStudent(ctx context.Context, adminUserID, newStudentID string) error {
	return s.backend.HideNewStudent(ctx, adminUserID, newStudentID)
}
