package psychologist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/repository"
	"github.com/mindwell/clinic-scheduler/internal/service/audit"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
	"github.com/mindwell/clinic-scheduler/pkg/security"
)

type Service struct {
	repo    repository.PsychologistRepository
	auditor *audit.Service
}

func NewService(repo repository.PsychologistRepository, auditor *audit.Service) *Service {
	return &Service{repo: repo, auditor: auditor}
}

func (s *Service) Create(ctx context.Context, actor audit.Actor, req *model.CreatePsychologistRequest) (*model.Psychologist, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, apperrors.Validation("timezone must be a valid IANA zone", err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	psy := &model.Psychologist{
		Name:                req.Name,
		Email:               req.Email,
		PasswordHash:        hash,
		Timezone:            req.Timezone,
		TelehealthAvailable: req.TelehealthAvailable,
		InPersonAvailable:   req.InPersonAvailable,
		Status:              model.PsychologistStatusActive,
	}

	if err := s.repo.Create(ctx, psy); err != nil {
		return nil, fmt.Errorf("failed to create psychologist: %w", err)
	}

	s.auditor.Log(ctx, actor, model.AuditActionCreate, model.AuditEntityPsychologist, psy.ID, nil)
	return psy, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Psychologist, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, req *model.UpdatePsychologistRequest) (*model.Psychologist, error) {
	psy, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		psy.Name = *req.Name
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, apperrors.Validation("timezone must be a valid IANA zone", err)
		}
		psy.Timezone = *req.Timezone
	}
	if req.TelehealthAvailable != nil {
		psy.TelehealthAvailable = *req.TelehealthAvailable
	}
	if req.InPersonAvailable != nil {
		psy.InPersonAvailable = *req.InPersonAvailable
	}
	if req.Status != nil {
		psy.Status = model.PsychologistStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, psy); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, actor, model.AuditActionUpdate, model.AuditEntityPsychologist, psy.ID, req)
	return psy, nil
}

func (s *Service) List(ctx context.Context, status model.PsychologistStatus) ([]*model.Psychologist, error) {
	return s.repo.List(ctx, status)
}
