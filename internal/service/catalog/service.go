package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
	"github.com/mindwell/clinic-scheduler/internal/service/audit"
)

// Service manages the session offerings patients can book.
type Service struct {
	repo    repository.ServiceRepository
	auditor *audit.Service
}

func NewService(repo repository.ServiceRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		BufferMinutes:   req.BufferMinutes,
		Price:           req.Price,
		Status:          "active",
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate, model.AuditEntityService, svc.ID, svc)
	return svc, nil
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.BufferMinutes != nil {
		svc.BufferMinutes = *req.BufferMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Status != nil {
		svc.Status = *req.Status
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate, model.AuditEntityService, svc.ID, req)
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Service, error) {
	return s.repo.List(ctx)
}
