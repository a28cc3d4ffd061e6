package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/mfurukawa/girder/internal/repository"
)

type employeeService struct {
	employees repository.EmployeeRepo
	members   repository.MemberRepo
}

func NewEmployeeService(employees repository.EmployeeRepo, members repository.MemberRepo) EmployeeService {
	return &employeeService{employees: employees, members: members}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	if e.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.employees.Create(ctx, e)
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

func (s *employeeService) Members(ctx context.Context) ([]*domain.Member, error) {
	return s.members.List(ctx)
}
