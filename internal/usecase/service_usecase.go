package usecase

import (
	"context"
	"errors"

	"city-services-backend/internal/converter"
	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound    = errors.New("service not found")
	ErrServiceNameTaken   = errors.New("service name already exists")
	ErrDepartmentNotFound = errors.New("department not found")
)

type ServiceUsecase interface {
	ListActive(ctx context.Context, departmentID *int) (*dto.ServiceListResponse, error)
	CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	UpdateService(ctx context.Context, serviceID int, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeactivateService(ctx context.Context, serviceID int) (*dto.ServiceResponse, error)
}

type serviceUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	serviceRepo    repository.ServiceRepository
	departmentRepo repository.DepartmentRepository
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	departmentRepo repository.DepartmentRepository,
) ServiceUsecase {
	return &serviceUsecase{
		db:             db,
		log:            log,
		serviceRepo:    serviceRepo,
		departmentRepo: departmentRepo,
	}
}

// ListActive returns active services, optionally scoped to a department.
func (u *serviceUsecase) ListActive(ctx context.Context, departmentID *int) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindActive(u.db.WithContext(ctx), departmentID)
	if err != nil {
		u.log.Warnf("Failed to list active services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	db := u.db.WithContext(ctx)

	department, err := u.departmentRepo.FindByID(db, req.DepartmentID)
	if err != nil {
		u.log.Warnf("Failed to find department %d: %+v", req.DepartmentID, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	existing, err := u.serviceRepo.FindByName(db, req.Name)
	if err != nil {
		u.log.Warnf("Failed to check service name %q: %+v", req.Name, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrServiceNameTaken
	}

	active := true
	svc := &entity.Service{
		Name:            req.Name,
		DepartmentID:    req.DepartmentID,
		Description:     req.Description,
		DurationMin:     req.DurationMin,
		CapacityPerSlot: req.CapacityPerSlot,
		IsActive:        &active,
	}

	if err := u.serviceRepo.Create(db, svc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrServiceNameTaken
		}
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	u.log.Infof("Service created: id=%d, name=%s, department=%d", svc.ID, svc.Name, svc.DepartmentID)
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) UpdateService(ctx context.Context, serviceID int, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	db := u.db.WithContext(ctx)

	svc, err := u.serviceRepo.FindByID(db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if req.Name != "" && req.Name != svc.Name {
		clash, err := u.serviceRepo.FindByName(db, req.Name)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, ErrServiceNameTaken
		}
		svc.Name = req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.CapacityPerSlot != nil {
		svc.CapacityPerSlot = *req.CapacityPerSlot
	}
	if req.IsActive != nil {
		svc.IsActive = req.IsActive
	}

	if err := u.serviceRepo.Update(db, svc); err != nil {
		u.log.Warnf("Failed to update service %d: %+v", serviceID, err)
		return nil, err
	}

	return converter.ServiceToResponse(svc), nil
}

// DeactivateService retires a service without deleting it, preserving
// its historical appointments.
func (u *serviceUsecase) DeactivateService(ctx context.Context, serviceID int) (*dto.ServiceResponse, error) {
	db := u.db.WithContext(ctx)

	svc, err := u.serviceRepo.FindByID(db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	inactive := false
	svc.IsActive = &inactive
	if err := u.serviceRepo.Update(db, svc); err != nil {
		u.log.Warnf("Failed to deactivate service %d: %+v", serviceID, err)
		return nil, err
	}

	u.log.Infof("Service deactivated: id=%d, name=%s", svc.ID, svc.Name)
	return converter.ServiceToResponse(svc), nil
}
