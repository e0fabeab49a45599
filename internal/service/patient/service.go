package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
	"github.com/mindwell/clinic-scheduler/internal/service/audit"
)

type Service struct {
	repo    repository.PatientRepository
	auditor *audit.Service
}

func NewService(repo repository.PatientRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreatePatientRequest) (*model.Patient, error) {
	p := &model.Patient{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: model.PatientStatusActive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate, model.AuditEntityPatient, p.ID, nil)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Status != nil {
		p.Status = model.PatientStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate, model.AuditEntityPatient, p.ID, req)
	return p, nil
}

func (s *Service) List(ctx context.Context, status model.PatientStatus) ([]*model.Patient, error) {
	return s.repo.List(ctx, status)
}
